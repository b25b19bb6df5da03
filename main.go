package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dondoffy/contract-copilot-canvas/config"
	"github.com/dondoffy/contract-copilot-canvas/handler"
	"github.com/dondoffy/contract-copilot-canvas/pkg/logger"
	"github.com/dondoffy/contract-copilot-canvas/service"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.Info("configuration loaded successfully", "path", *configPath)

	// Object storage is optional; without it uploads keep metadata only
	var storage service.FileStorage
	if cfg.Minio.Enabled() {
		minioSvc, err := service.NewMinioService(&cfg.Minio)
		if err != nil {
			slog.Error("failed to initialize MINIO service", "error", err)
			os.Exit(1)
		}
		if err := minioSvc.EnsureBucket(context.Background()); err != nil {
			slog.Error("failed to ensure MINIO bucket", "error", err)
			os.Exit(1)
		}
		storage = minioSvc
	} else {
		slog.Warn("object storage disabled, uploaded content will not be stored")
	}

	services := &handler.Services{
		Conversations: service.NewConversationService(&cfg.Store, &cfg.Assistant),
		Documents:     service.NewDocumentService(&cfg.Store, &cfg.Assistant),
		Uploads:       service.NewUploadService(storage, &cfg.Store, &cfg.Assistant),
		Catalog:       service.NewCatalogService(),
	}

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(cfg, services)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	// Stop pending replies, saves and upload pipelines
	services.Conversations.Close()
	services.Documents.Close()
	services.Uploads.Close()

	slog.Info("server exited gracefully")
}
