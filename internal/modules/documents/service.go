package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gamdel/core/internal/models"
	"github.com/gamdel/core/internal/modules/extract"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

// Service owns the document lifecycle: raw bytes on disk, extracted text in
// the Store, metadata rows in MySQL. All three move together.
type Service struct {
	db        *gorm.DB
	store     *Store
	extractor extract.TextExtractor
	dataDir   string
	log       *zap.Logger
}

func NewService(db *gorm.DB, store *Store, extractor extract.TextExtractor, dataDir string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, store: store, extractor: extractor, dataDir: dataDir, log: log}
}

// Store exposes the in-memory store for the resolution flow.
func (s *Service) Store() *Store { return s.store }

func (s *Service) tenantDir(tenant string) string {
	return filepath.Join(s.dataDir, tenant)
}

// Upload ingests a batch of files for a tenant. Failures are isolated per
// file: a bad PDF reports its own error and the rest of the batch continues.
func (s *Service) Upload(ctx context.Context, tenant string, files []*multipart.FileHeader) []UploadResult {
	results := make([]UploadResult, 0, len(files))
	for _, fh := range files {
		name := safeName(fh.Filename)
		if name == "" {
			continue
		}
		res := UploadResult{Filename: name}
		if err := s.ingestOne(ctx, tenant, name, fh, &res); err != nil {
			res.Error = err.Error()
			s.log.Warn("document ingestion failed",
				zap.String("tenant", tenant),
				zap.String("file", name),
				zap.Error(err),
			)
		}
		results = append(results, res)
	}
	return results
}

func (s *Service) ingestOne(ctx context.Context, tenant, name string, fh *multipart.FileHeader, res *UploadResult) error {
	dir := s.tenantDir(tenant)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create tenant dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := saveMultipart(fh, path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}

	text, pages, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return err
	}
	res.Pages = pages

	info, statErr := os.Stat(path)
	if statErr == nil {
		res.Size = info.Size()
	}

	if strings.TrimSpace(text) != "" {
		if err := s.store.Put(tenant, name, text); err != nil {
			return err
		}
		// Sidecar caches the extraction for fast reloads.
		sidecar := filepath.Join(dir, stem(name)+".txt")
		if err := os.WriteFile(sidecar, []byte(text), 0o644); err != nil {
			s.log.Warn("sidecar write failed", zap.String("file", sidecar), zap.Error(err))
		}
	}

	if err := s.saveMetadata(tenant, name, res.Size, pages); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}
	res.Indexed = strings.TrimSpace(text) != ""
	return nil
}

// saveMetadata inserts the document row, updating it in place on re-upload.
func (s *Service) saveMetadata(tenant, name string, size int64, pages int) error {
	row := models.DocumentModel{
		Tenant:     tenant,
		Filename:   name,
		UploadDate: time.Now(),
		FileSize:   size,
		PageCount:  pages,
	}
	err := s.db.Create(&row).Error
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return s.db.Model(&models.DocumentModel{}).
			Where("tenant = ? AND filename = ?", tenant, name).
			Updates(map[string]interface{}{
				"upload_date": row.UploadDate,
				"file_size":   size,
				"page_count":  pages,
			}).Error
	}
	return err
}

// List returns the tenant's metadata rows, newest upload first.
func (s *Service) List(tenant string) ([]models.DocumentModel, error) {
	var rows []models.DocumentModel
	err := s.db.Where("tenant = ?", tenant).Order("upload_date DESC").Find(&rows).Error
	return rows, err
}

// Delete removes one document: raw file, sidecar, in-memory text, metadata
// row. Absent documents are a no-op.
func (s *Service) Delete(tenant, name string) error {
	name = safeName(name)
	if name == "" {
		return nil
	}
	dir := s.tenantDir(tenant)
	for _, path := range []string{
		filepath.Join(dir, name),
		filepath.Join(dir, stem(name)+".txt"),
	} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	s.store.Remove(tenant, name)
	return s.db.Where("tenant = ? AND filename = ?", tenant, name).
		Delete(&models.DocumentModel{}).Error
}

// DeleteAll destroys the tenant: files, in-memory state, metadata rows, and
// conversation history.
func (s *Service) DeleteAll(tenant string) error {
	if err := os.RemoveAll(s.tenantDir(tenant)); err != nil {
		return fmt.Errorf("remove tenant dir: %w", err)
	}
	s.store.RemoveAll(tenant)
	if err := s.db.Where("tenant = ?", tenant).Delete(&models.DocumentModel{}).Error; err != nil {
		return err
	}
	return s.db.Where("tenant = ?", tenant).Delete(&models.ConversationModel{}).Error
}

// EnsureLoaded lazily hydrates a tenant's in-memory state from its data
// directory: text sidecars first, then PDFs without a sidecar.
func (s *Service) EnsureLoaded(ctx context.Context, tenant string) error {
	if s.store.Count(tenant) > 0 {
		return nil
	}
	dir := s.tenantDir(tenant)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	loaded := make(map[string]struct{})
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, ent.Name()))
		if err != nil || strings.TrimSpace(string(data)) == "" {
			continue
		}
		pdfName := stem(ent.Name()) + ".pdf"
		if err := s.store.Put(tenant, pdfName, string(data)); err == nil {
			loaded[pdfName] = struct{}{}
		}
	}
	for _, ent := range entries {
		name := ent.Name()
		if ent.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".pdf") {
			continue
		}
		if _, ok := loaded[name]; ok {
			continue
		}
		text, _, err := s.extractor.Extract(ctx, filepath.Join(dir, name))
		if err != nil {
			s.log.Warn("reload extraction failed",
				zap.String("tenant", tenant), zap.String("file", name), zap.Error(err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		_ = s.store.Put(tenant, name, text)
	}
	if n := s.store.Count(tenant); n > 0 {
		s.log.Info("tenant reloaded from disk", zap.String("tenant", tenant), zap.Int("documents", n))
	}
	return nil
}

func saveMultipart(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

// safeName strips any path components out of a client-supplied filename.
func safeName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
