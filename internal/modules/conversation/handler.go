package conversation

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gamdel/core/internal/pkg/pagination"
	"github.com/gamdel/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.history)
}

type historyEntry struct {
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources"`
	Timestamp string   `json:"timestamp"`
}

// GET /history?tenant=&page=&limit=
func (h *Handler) history(c *gin.Context) {
	tenant := c.Query("tenant")
	if tenant == "" {
		response.BadRequest(c, "tenant is required")
		return
	}

	recs, meta, err := h.svc.Page(tenant, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	entries := make([]historyEntry, 0, len(recs))
	for _, rec := range recs {
		sources := rec.Sources
		if sources == nil {
			sources = []string{}
		}
		entries = append(entries, historyEntry{
			Question:  rec.Question,
			Answer:    rec.Answer,
			Sources:   sources,
			Timestamp: rec.CreatedAt.Format(time.RFC3339),
		})
	}
	response.OK(c, gin.H{"ok": true, "tenant": tenant, "history": entries, "pagination": meta})
}
