package app

import (
	"github.com/fieldpost/core/internal/middleware"
	"github.com/fieldpost/core/internal/modules/configs"
	"github.com/fieldpost/core/internal/modules/feedback"
	"github.com/fieldpost/core/internal/modules/page"
	"github.com/fieldpost/core/internal/modules/submission"
	"github.com/fieldpost/core/internal/modules/user"
	"github.com/fieldpost/core/internal/modules/widget"
	pkgredis "github.com/fieldpost/core/internal/pkg/redis"
	"github.com/fieldpost/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFoundMsg(c, "not found")
	})

	api := r.Group("/api/v2")
	api.Use(middleware.Idempotence(rc.Raw()))

	configsSvc := configs.NewService(db)
	feedbackSvc := feedback.NewService(db, a.logger)
	processor := submission.NewProcessor(feedbackSvc, configsSvc, a.sched, a.logger)

	pageSvc := page.NewService(db)
	widgetSvc := widget.NewService(db)
	userSvc := user.NewService(db)

	configs.NewHandler(configsSvc).RegisterRoutes(api, authMW)
	feedback.NewHandler(feedbackSvc).RegisterRoutes(api, authMW)
	page.NewHandler(pageSvc, configsSvc, processor).RegisterRoutes(api, authMW)
	widget.NewHandler(widgetSvc, configsSvc, processor).RegisterRoutes(api, authMW)
	user.NewHandler(userSvc).RegisterRoutes(api, authMW)

	a.registerCronRoutes(api, authMW)

	api.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})
}

// registerCronRoutes exposes the background job list and a manual trigger.
func (a *App) registerCronRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/cron", authMW)

	g.GET("", func(c *gin.Context) {
		response.OK(c, a.sched.List())
	})

	g.POST("/:name/run", func(c *gin.Context) {
		if err := a.sched.Run(c.Request.Context(), c.Param("name")); err != nil {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.OK(c, gin.H{"triggered": c.Param("name")})
	})
}
