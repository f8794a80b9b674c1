package feedback

import (
	"encoding/json"
	"errors"

	"github.com/fieldpost/core/internal/models"
	"github.com/fieldpost/core/internal/pkg/pagination"
	"github.com/fieldpost/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler exposes the moderation API. Every route is admin-only.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/feedbacks", authMW)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.delete)
	g.PATCH("/:id/spam", h.markSpam)
	g.PATCH("/:id/ham", h.markHam)
}

func (h *Handler) list(c *gin.Context) {
	query := h.svc.Query(c.Query("status"))

	items, meta, err := pagination.List[models.FeedbackModel](c, query)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, meta)
}

func (h *Handler) get(c *gin.Context) {
	fb, err := h.svc.Get(c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		response.NotFoundMsg(c, "feedback not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	var extra map[string]string
	if err := h.svc.GetMeta(fb.ID, models.MetaExtraFields, &extra); err != nil {
		extra = nil
	}
	var email json.RawMessage
	if err := h.svc.GetMeta(fb.ID, models.MetaEmailSnapshot, &email); err != nil {
		email = nil
	}

	response.OK(c, gin.H{
		"feedback":     fb,
		"extra_fields": extra,
		"email":        email,
	})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		response.NotFoundMsg(c, "feedback not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) markSpam(c *gin.Context) {
	h.setStatus(c, models.FeedbackSpam)
}

func (h *Handler) markHam(c *gin.Context) {
	h.setStatus(c, models.FeedbackPublished)
}

func (h *Handler) setStatus(c *gin.Context, status models.FeedbackStatus) {
	err := h.svc.SetStatus(c.Param("id"), status)
	if errors.Is(err, ErrNotFound) {
		response.NotFoundMsg(c, "feedback not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"id": c.Param("id"), "status": status})
}
