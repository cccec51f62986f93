package api

import (
	"Postcraft/internal/api/middleware"
	"Postcraft/internal/pkg/consts"
	"Postcraft/internal/pkg/logger"
	"Postcraft/internal/pkg/metrics"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS & Metrics
	r.Use(gin.Recovery())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware("/metrics", "/healthz"))
	r.Use(middleware.CORSMiddleware(group.AllowedOrigins...))
	r.Use(metrics.Middleware())
	logger.SetupGin(r)

	r.GET("/metrics", metrics.Handler())
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	auth := middleware.AuthMiddleware(group.Accounts)
	adminOnly := middleware.CheckRoles(consts.RoleAdmin)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		authGroup.Use(auth)
		{
			authGroup.POST("/logout", group.UserHandler.Logout)
		}

		promptGroup := apiGroup.Group("/prompts")
		promptGroup.Use(auth)
		{
			promptGroup.GET("", group.PromptHandler.List)
			promptGroup.PUT("/:id/schedule", group.PromptHandler.UpdateSchedule)
			promptGroup.POST("/:id/archive", group.PromptHandler.Archive)
		}

		draftGroup := apiGroup.Group("/drafts")
		draftGroup.Use(auth)
		{
			draftGroup.POST("/generate", group.DraftHandler.Generate)
			draftGroup.GET("/history", group.DraftHandler.History)
		}

		postGroup := apiGroup.Group("/posts")
		postGroup.Use(auth)
		{
			postGroup.GET("", group.PostHandler.List)
			postGroup.POST("", group.PostHandler.Save)
			postGroup.GET("/:id", group.PostHandler.Get)
			postGroup.PUT("/:id", group.PostHandler.Update)
			postGroup.POST("/:id/status", group.PostHandler.UpdateStatus)
			postGroup.DELETE("/:id", group.PostHandler.Delete)
		}

		editGroup := apiGroup.Group("/edits")
		editGroup.Use(auth)
		{
			editGroup.POST("/track", group.EditHandler.Track)
		}

		insightsGroup := apiGroup.Group("/insights")
		insightsGroup.Use(auth)
		{
			insightsGroup.GET("/edits", group.EditHandler.Insights)
		}

		prefsGroup := apiGroup.Group("/preferences")
		prefsGroup.Use(auth)
		{
			prefsGroup.GET("", group.PreferencesHandler.Get)
			prefsGroup.PUT("", group.PreferencesHandler.Update)
		}

		feedbackGroup := apiGroup.Group("/feedback")
		feedbackGroup.Use(auth)
		{
			feedbackGroup.POST("", group.FeedbackHandler.SubmitUser)
			feedbackGroup.POST("/posts/:id", group.FeedbackHandler.SubmitPost)
		}

		// 需要登录 & 拥有 admin 角色
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(auth, adminOnly)
		{
			adminGroup.POST("/prompts/generate", group.PromptHandler.Generate)
			adminGroup.GET("/feedback", group.FeedbackHandler.ListAll)
			adminGroup.GET("/users", group.UserHandler.ListUsers)
			adminGroup.PUT("/users/:id/role", group.UserHandler.UpdateRole)
			adminGroup.PUT("/users/:id/disabled", group.UserHandler.SetDisabled)
		}
	}

	return r
}
