package documents

import (
	"strings"

	"github.com/gamdel/core/internal/modules/docmeta"
	"github.com/gamdel/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents", h.list)
	rg.POST("/upload", h.upload)
	rg.POST("/delete-document", h.deleteDocument)
	rg.POST("/delete-all-documents", h.deleteAll)
}

// GET /documents?tenant=
func (h *Handler) list(c *gin.Context) {
	tenant := strings.TrimSpace(c.Query("tenant"))
	if tenant == "" {
		response.BadRequest(c, "tenant is required")
		return
	}
	if err := h.svc.EnsureLoaded(c.Request.Context(), tenant); err != nil {
		response.InternalError(c, err)
		return
	}

	rows, err := h.svc.List(tenant)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	texts := h.svc.Store().List(tenant)
	out := make([]documentResponse, 0, len(rows))
	for _, row := range rows {
		meta := docmeta.Extract(row.Filename)
		out = append(out, documentResponse{
			Filename:   row.Filename,
			UploadDate: row.UploadDate,
			FileSize:   row.FileSize,
			PageCount:  row.PageCount,
			Chars:      len(texts[row.Filename]),
			Version:    meta.Version,
			Date:       meta.Date,
		})
	}
	response.OK(c, out)
}

// POST /upload — multipart: tenant + files
func (h *Handler) upload(c *gin.Context) {
	tenant := strings.TrimSpace(c.PostForm("tenant"))
	if tenant == "" {
		response.BadRequest(c, "tenant is required")
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "invalid multipart form")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		response.BadRequest(c, "no files provided")
		return
	}

	results := h.svc.Upload(c.Request.Context(), tenant, files)
	response.OK(c, gin.H{"ok": true, "files": results})
}

// POST /delete-document
func (h *Handler) deleteDocument(c *gin.Context) {
	var dto deleteDocumentDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, "tenant and filename are required")
		return
	}
	if err := h.svc.Delete(strings.TrimSpace(dto.Tenant), dto.Filename); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"ok": true})
}

// POST /delete-all-documents
func (h *Handler) deleteAll(c *gin.Context) {
	var dto tenantDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, "tenant is required")
		return
	}
	if err := h.svc.DeleteAll(strings.TrimSpace(dto.Tenant)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"ok": true})
}
