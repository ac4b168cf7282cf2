package ask

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gamdel/core/internal/modules/answer"
	"github.com/gamdel/core/internal/modules/resolver"
	"github.com/gamdel/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ask", h.ask)
}

func (h *Handler) ask(c *gin.Context) {
	var dto askDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "tenant y q requeridos")
		return
	}
	tenant := strings.TrimSpace(dto.Tenant)
	question := strings.TrimSpace(dto.Question)
	if tenant == "" || question == "" {
		response.BadRequest(c, "tenant y q requeridos")
		return
	}

	result, err := h.svc.Ask(c.Request.Context(), tenant, question)
	if err != nil {
		switch {
		case errors.Is(err, resolver.ErrNoDocuments):
			response.BadRequest(c, "No hay documentos cargados para este cliente")
		case errors.Is(err, resolver.ErrNoMatch):
			response.BadRequest(c, "No se encontraron documentos relevantes")
		case errors.Is(err, ErrEmptyDocument):
			response.BadRequest(c, err.Error())
		case errors.Is(err, answer.ErrGeneration):
			response.GatewayTimeout(c, "answer generation failed")
		default:
			response.InternalError(c, err)
		}
		return
	}

	response.OK(c, gin.H{"ok": true, "answer": result.Answer, "sources": result.Sources})
}
