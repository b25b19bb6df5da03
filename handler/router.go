package handler

import (
	"net/http"
	"time"

	"github.com/dondoffy/contract-copilot-canvas/config"
	"github.com/dondoffy/contract-copilot-canvas/middleware"
	"github.com/dondoffy/contract-copilot-canvas/service"
	"github.com/gin-gonic/gin"
)

// Services are the view-model services exposed by the API
type Services struct {
	Conversations *service.ConversationService
	Documents     *service.DocumentService
	Uploads       *service.UploadService
	Catalog       *service.CatalogService
}

// NewRouter wires middleware and routes
func NewRouter(cfg *config.Config, svc *Services) *gin.Engine {
	authHandler := NewAuthHandler(cfg)
	conversationHandler := NewConversationHandler(svc.Conversations)
	documentHandler := NewDocumentHandler(svc.Documents)
	uploadHandler := NewUploadHandler(svc.Uploads, int64(cfg.Server.MaxUploadSizeMB)<<20)
	templateHandler := NewTemplateHandler(svc.Catalog)

	router := gin.New()
	router.MaxMultipartMemory = int64(cfg.Server.MaxUploadSizeMB) << 20

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())
	router.Use(middleware.NoCache())
	router.Use(middleware.RateLimit(cfg.Server.RateLimit, time.Minute))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.POST("/conversations", conversationHandler.Create)
		protected.GET("/conversations", conversationHandler.List)
		protected.GET("/conversations/:id", conversationHandler.Get)
		protected.POST("/conversations/:id/messages", conversationHandler.Submit)
		protected.POST("/conversations/:id/reset", conversationHandler.Reset)
		protected.DELETE("/conversations/:id", conversationHandler.Delete)

		protected.POST("/documents", documentHandler.Create)
		protected.GET("/documents", documentHandler.List)
		protected.GET("/documents/:id", documentHandler.Get)
		protected.PUT("/documents/:id/version", documentHandler.SelectVersion)
		protected.PUT("/documents/:id/sections/:section", documentHandler.EditSection)
		protected.POST("/documents/:id/sections/:section/autofill", documentHandler.AutoFill)
		protected.POST("/documents/:id/save", documentHandler.Save)
		protected.DELETE("/documents/:id", documentHandler.Delete)

		protected.POST("/files", uploadHandler.Upload)
		protected.GET("/files", uploadHandler.List)
		protected.GET("/files/:id", uploadHandler.Get)
		protected.GET("/files/:id/status", uploadHandler.GetStatus)
		protected.GET("/files/:id/download", uploadHandler.Download)
		protected.DELETE("/files/:id", uploadHandler.Remove)

		protected.GET("/templates", templateHandler.List)
		protected.GET("/templates/categories", templateHandler.Categories)
		protected.GET("/templates/popular", templateHandler.Popular)
		protected.GET("/templates/preview", templateHandler.Preview)
		protected.DELETE("/templates/preview", templateHandler.ClearPreview)
		protected.GET("/templates/:id", templateHandler.Get)
		protected.POST("/templates/:id/select", templateHandler.Select)
		protected.POST("/templates/:id/use", templateHandler.Use)
	}

	return router
}
