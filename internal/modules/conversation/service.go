package conversation

import (
	"github.com/gamdel/core/internal/models"
	"github.com/gamdel/core/internal/pkg/pagination"
	"github.com/gamdel/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Service is the append-only conversation log. Records are never updated or
// deleted individually; the whole history goes away with its tenant.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Append records one question/answer exchange.
func (s *Service) Append(tenant, question, answer string, sources []string) error {
	rec := models.ConversationModel{
		Tenant:   tenant,
		Question: question,
		Answer:   answer,
		Sources:  sources,
	}
	return s.db.Create(&rec).Error
}

// Page returns one page of a tenant's exchanges, most recent first.
func (s *Service) Page(tenant string, q pagination.Query) ([]models.ConversationModel, response.Pagination, error) {
	query := s.db.Model(&models.ConversationModel{}).
		Where("tenant = ?", tenant).
		Order("created_at DESC")
	var recs []models.ConversationModel
	meta, err := pagination.Paginate(query, q, &recs)
	return recs, meta, err
}

// Recent returns up to limit exchanges, most recent first.
func (s *Service) Recent(tenant string, limit int) ([]models.ConversationModel, error) {
	if limit <= 0 {
		limit = pagination.DefaultSize
	}
	var recs []models.ConversationModel
	err := s.db.Where("tenant = ?", tenant).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}

// CountQuestions returns the number of exchanges logged for a tenant.
func (s *Service) CountQuestions(tenant string) (int64, error) {
	var n int64
	err := s.db.Model(&models.ConversationModel{}).Where("tenant = ?", tenant).Count(&n).Error
	return n, err
}
