package widget

import (
	"errors"

	"github.com/fieldpost/core/internal/middleware"
	"github.com/fieldpost/core/internal/models"
	"github.com/fieldpost/core/internal/modules/configs"
	"github.com/fieldpost/core/internal/modules/form"
	"github.com/fieldpost/core/internal/modules/render"
	"github.com/fieldpost/core/internal/modules/submission"
	"github.com/fieldpost/core/internal/pkg/pagination"
	"github.com/fieldpost/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("widget not found")

// Service is the widget store.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Get(id string) (*models.WidgetModel, error) {
	var w models.WidgetModel
	err := s.db.Where("id = ?", id).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Service) Delete(id string) error {
	res := s.db.Where("id = ?", id).Delete(&models.WidgetModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Handler exposes widget rendering, submission and admin CRUD. Forms hosted
// in a widget carry the synthetic "widget-<id>" identity instead of a page id.
type Handler struct {
	svc  *Service
	cfg  *configs.Service
	proc *submission.Processor
}

func NewHandler(svc *Service, cfg *configs.Service, proc *submission.Processor) *Handler {
	return &Handler{svc: svc, cfg: cfg, proc: proc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/widgets")
	g.GET("/:id/render", h.render)
	g.POST("/:id/contact", middleware.OptionalAuth(), h.contact)

	a := g.Group("", authMW)
	a.GET("", h.list)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func (h *Handler) host(w *models.WidgetModel) (form.Host, error) {
	opts, err := h.cfg.Get()
	if err != nil {
		return form.Host{}, err
	}
	return form.Host{
		SiteName:   opts.Site.Name,
		AdminEmail: opts.Site.AdminEmail,
		WidgetID:   w.ID,
	}, nil
}

func (h *Handler) render(c *gin.Context) {
	w, err := h.svc.Get(c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		response.NotFoundMsg(c, "widget not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	host, err := h.host(w)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	pass := form.NewRenderPass()
	action := "/api/v2/widgets/" + w.ID + "/contact"
	html, err := render.Blocks(pass, w.Blocks, host, action)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	resp := gin.H{
		"id":    w.ID,
		"title": w.Title,
		"html":  string(html),
	}
	active := pass.Active(c.Query("form-id"))
	if summary := h.proc.SummaryForToken(active, c.Query("submission-id"), c.Query("token")); summary != "" {
		resp["summary"] = summary
	}
	response.OK(c, resp)
}

func (h *Handler) contact(c *gin.Context) {
	w, err := h.svc.Get(c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		response.NotFoundMsg(c, "widget not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	host, err := h.host(w)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	req, err := submission.BindRequest(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pass := form.NewRenderPass()
	forms := render.Forms(pass, w.Blocks, host)
	submission.Dispatch(c, h.proc, forms, req)
}

func (h *Handler) list(c *gin.Context) {
	query := h.svc.db.Model(&models.WidgetModel{}).Order("created_at DESC")

	items, meta, err := pagination.List[models.WidgetModel](c, query)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, meta)
}

type widgetRequest struct {
	Title  string         `json:"title" binding:"required"`
	Blocks []models.Block `json:"blocks"`
}

func (h *Handler) create(c *gin.Context) {
	var req widgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	w := models.WidgetModel{Title: req.Title, Blocks: req.Blocks}
	if err := h.svc.db.Create(&w).Error; err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, w)
}

func (h *Handler) update(c *gin.Context) {
	w, err := h.svc.Get(c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		response.NotFoundMsg(c, "widget not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	var req widgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	w.Title = req.Title
	w.Blocks = req.Blocks
	if err := h.svc.db.Save(w).Error; err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, w)
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		response.NotFoundMsg(c, "widget not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
