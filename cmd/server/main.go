package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kdas/shopkart-backend/config"
	"github.com/kdas/shopkart-backend/internal/app/controller"
	"github.com/kdas/shopkart-backend/internal/app/repository"
	"github.com/kdas/shopkart-backend/internal/app/service"
	"github.com/kdas/shopkart-backend/internal/cache"
	"github.com/kdas/shopkart-backend/internal/db"
	"github.com/kdas/shopkart-backend/internal/middleware"
	"github.com/kdas/shopkart-backend/internal/router"
	"github.com/kdas/shopkart-backend/internal/storage"
	"github.com/kdas/shopkart-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Shopkart backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Single startup decision point: without the store there is no
	// degraded mode, so a connection failure aborts the process.
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	commentRepo := repository.NewCommentRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Core services
	verificationService := service.NewVerificationService(orderRepo)
	ratingService := service.NewRatingService(commentRepo, productRepo)

	// One-shot legacy reconciliation; errors inside the pipeline are
	// logged, never fatal.
	migration := service.NewMigrationService(productRepo, commentRepo, verificationService, cfg.Legacy.ProductsFile)
	if err := migration.Run(); err != nil {
		logger.Warn("Legacy migration finished with errors", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Optional product cache
	var productCache service.ProductCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.New(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, running without product cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redisCache.Close()
			productCache = redisCache
		}
	}

	productService := service.NewProductService(productRepo, commentRepo, ratingService, productCache)
	reviewService := service.NewReviewService(productRepo, commentRepo, verificationService, ratingService)
	orderService := service.NewOrderService(orderRepo, productRepo)

	imageStorage := storage.NewImageStorage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Controllers
	productController := controller.NewProductController(productService)
	reviewController := controller.NewReviewController(reviewService)
	orderController := controller.NewOrderController(orderService)
	uploadController := controller.NewUploadController(imageStorage)

	adminMiddleware := middleware.NewAdminMiddleware(cfg.Admin.Secret)

	r := router.NewRouter(
		productController,
		reviewController,
		orderController,
		uploadController,
		adminMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
