package page

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

var ErrNotFound = errors.New("page not found")

// Service is the page store.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Get(id string) (*models.PageModel, error) {
	var page models.PageModel
	err := s.db.Where("id = ?", id).Or("slug = ?", id).First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *Service) Create(page *models.PageModel) error {
	return s.db.Create(page).Error
}

func (s *Service) Update(page *models.PageModel) error {
	return s.db.Save(page).Error
}

func (s *Service) Delete(id string) error {
	res := s.db.Where("id = ?", id).Delete(&models.PageModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Handler exposes page rendering, the submission endpoint and the admin CRUD.
type Handler struct {
	svc  *Service
	cfg  *configs.Service
	proc *submission.Processor
}

func NewHandler(svc *Service, cfg *configs.Service, proc *submission.Processor) *Handler {
	return &Handler{svc: svc, cfg: cfg, proc: proc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/pages")
	g.GET("/:id/render", h.render)
	g.POST("/:id/contact", middleware.OptionalAuth(), h.contact)

	a := g.Group("", authMW)
	a.GET("", h.list)
	a.GET("/:id", h.get)
	a.POST("", h.create)
	a.PUT("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

// host derives the form defaults for a page from the site options.
func (h *Handler) host(page *models.PageModel) (form.Host, error) {
	opts, err := h.cfg.Get()
	if err != nil {
		return form.Host{}, err
	}
	adminEmail := page.AuthorEmail
	if adminEmail == "" {
		adminEmail = opts.Site.AdminEmail
	}
	return form.Host{
		SiteName:   opts.Site.Name,
		AdminEmail: adminEmail,
		PageID:     page.ID,
		PageTitle:  page.Title,
	}, nil
}

// GET /pages/:id/render — block tree to HTML.
func (h *Handler) render(c *gin.Context) {
	page, err := h.svc.Get(c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		response.NotFoundMsg(c, "page not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	host, err := h.host(page)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	pass := form.NewRenderPass()
	action := "/api/v2/pages/" + page.ID + "/contact"
	html, err := render.Blocks(pass, page.Blocks, host, action)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	resp := gin.H{
		"id":    page.ID,
		"title": page.Title,
		"html":  string(html),
	}
	// A redirect back from a submission carries form-id, submission-id and the
	// freshness token; a valid trio gets the success summary inlined.
	active := pass.Active(c.Query("form-id"))
	if summary := h.proc.SummaryForToken(active, c.Query("submission-id"), c.Query("token")); summary != "" {
		resp["summary"] = summary
	}
	response.OK(c, resp)
}

// POST /pages/:id/contact — re-evaluate the page's forms and offer them the
// submission.
func (h *Handler) contact(c *gin.Context) {
	page, err := h.svc.Get(c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		response.NotFoundMsg(c, "page not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	host, err := h.host(page)
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
	forms := render.Forms(pass, page.Blocks, host)
	submission.Dispatch(c, h.proc, forms, req)
}

func (h *Handler) list(c *gin.Context) {
	query := h.svc.db.Model(&models.PageModel{}).Order("created_at DESC")

	items, meta, err := pagination.List[models.PageModel](c, query)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, meta)
}

func (h *Handler) get(c *gin.Context) {
	page, err := h.svc.Get(c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		response.NotFoundMsg(c, "page not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, page)
}

type pageRequest struct {
	Title       string         `json:"title" binding:"required"`
	Slug        string         `json:"slug"`
	AuthorEmail string         `json:"author_email"`
	Blocks      []models.Block `json:"blocks"`
}

func (h *Handler) create(c *gin.Context) {
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	page := models.PageModel{
		Title:       req.Title,
		Slug:        req.Slug,
		AuthorEmail: req.AuthorEmail,
		Blocks:      req.Blocks,
	}
	if err := h.svc.Create(&page); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, page)
}

func (h *Handler) update(c *gin.Context) {
	page, err := h.svc.Get(c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		response.NotFoundMsg(c, "page not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	page.Title = req.Title
	page.Slug = req.Slug
	page.AuthorEmail = req.AuthorEmail
	page.Blocks = req.Blocks
	if err := h.svc.Update(page); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, page)
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		response.NotFoundMsg(c, "page not found")
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
