package user

import (
	"errors"
	"time"

	"github.com/fieldpost/core/internal/middleware"
	"github.com/fieldpost/core/internal/models"
	"github.com/fieldpost/core/internal/pkg/jwt"
	"github.com/fieldpost/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 7 * 24 * time.Hour

// Service manages the owner account.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Register creates the owner account. Only one account exists; a second
// registration is rejected.
func (s *Service) Register(username, name, mail, password string) (*models.UserModel, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("owner account already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := models.UserModel{
		Username: username,
		Name:     name,
		Mail:     mail,
		Password: string(hash),
	}
	if err := s.db.Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Login verifies credentials and issues a JWT.
func (s *Service) Login(username, password string) (string, *models.UserModel, error) {
	var u models.UserModel
	err := s.db.Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, errors.New("invalid username or password")
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", nil, errors.New("invalid username or password")
	}

	token, err := jwt.Sign(u.ID, tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

func (s *Service) Get(id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/user")
	g.POST("/register", h.register)
	g.POST("/login", h.login)

	a := g.Group("", authMW)
	a.GET("", h.current)
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name"`
	Mail     string `json:"mail"     binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Register(req.Username, req.Name, req.Mail, req.Password)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, u)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, u, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, gin.H{"token": token, "user": u})
}

func (h *Handler) current(c *gin.Context) {
	u, err := h.svc.Get(middleware.CurrentUserID(c))
	if err != nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, u)
}
