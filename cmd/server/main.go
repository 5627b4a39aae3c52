// Package main runs the property-management HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/societyhub/backend/config"
	"github.com/societyhub/backend/internal/auth"
	"github.com/societyhub/backend/internal/dashboard"
	"github.com/societyhub/backend/internal/documents"
	"github.com/societyhub/backend/internal/maintenance"
	"github.com/societyhub/backend/internal/middleware"
	"github.com/societyhub/backend/internal/models"
	"github.com/societyhub/backend/internal/notices"
	"github.com/societyhub/backend/internal/payments"
	"github.com/societyhub/backend/internal/properties"
	"github.com/societyhub/backend/internal/societies"
	"github.com/societyhub/backend/internal/tenants"
	"github.com/societyhub/backend/internal/worker"
	"github.com/societyhub/backend/pkg/database"
	"github.com/societyhub/backend/pkg/queue"
	"github.com/societyhub/backend/pkg/redis"
	"github.com/societyhub/backend/pkg/response"
	"github.com/societyhub/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	var jobQueue *queue.Queue
	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Warn("redis unavailable, payment reminders disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		jobQueue = queue.NewQueue(rdb.Client, logger)
	}

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			DocumentsBucket:      cfg.AWS.DocumentsBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	// Societies
	societyRepo := societies.NewRepository(pool)
	societyHandler := societies.NewHandler(societyRepo)

	// Properties
	propertyRepo := properties.NewRepository(pool)
	propertyHandler := properties.NewHandler(propertyRepo)

	// Tenants
	tenantRepo := tenants.NewRepository(pool)
	tenantHandler := tenants.NewHandler(tenantRepo)

	// Maintenance
	maintenanceRepo := maintenance.NewRepository(pool)
	maintenanceHandler := maintenance.NewHandler(maintenanceRepo, propertyRepo)

	// Notices
	noticeRepo := notices.NewRepository(pool)
	noticeHandler := notices.NewHandler(noticeRepo)

	// Payments
	paymentRepo := payments.NewRepository(pool)
	paymentHandler := payments.NewHandler(paymentRepo, jobQueue, logger)
	reminderProcessor := worker.NewReminderProcessor(paymentRepo, jobQueue, logger)

	// Documents (S3-backed)
	documentRepo := documents.NewRepository(pool)
	documentHandler := documents.NewHandler(documentRepo, s3Client, logger)

	// Dashboard
	dashboardHandler := dashboard.NewHandler(pool, societyRepo)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/admin-signup", authHandler.AdminSignup)
	}

	// Protected API (JWT required)
	api := router.Group("/api")
	api.Use(middleware.JWT(jwtService))
	{
		adminOnly := middleware.RequireRole(string(models.RoleAdmin))
		tenantOnly := middleware.RequireRole(string(models.RoleTenant))

		// Session
		api.GET("/auth/me", authHandler.Me)
		api.PATCH("/auth/me", authHandler.UpdateMe)
		api.GET("/users", adminOnly, authHandler.List)

		// Societies
		api.GET("/societies", adminOnly, societyHandler.ListMine)
		api.POST("/societies", adminOnly, societyHandler.Create)
		api.GET("/societies/:id", societyHandler.GetByID)
		api.PUT("/societies/:id", adminOnly, societyHandler.Update)
		api.DELETE("/societies/:id", adminOnly, societyHandler.Delete)
		api.GET("/societies/user/:userId", societyHandler.ListByUser)
		api.GET("/societies/:id/summary", adminOnly, dashboardHandler.GetBySociety)

		// Properties
		api.POST("/societies/:id/properties", adminOnly, propertyHandler.Create)
		api.GET("/societies/:id/properties", propertyHandler.ListBySociety)
		api.GET("/properties/mine", tenantOnly, propertyHandler.Mine)
		api.GET("/properties/:id", propertyHandler.GetByID)
		api.PATCH("/properties/:id", adminOnly, propertyHandler.Update)
		api.DELETE("/properties/:id", adminOnly, propertyHandler.Delete)
		api.POST("/properties/:id/tenant", adminOnly, propertyHandler.AssignTenant)
		api.DELETE("/properties/:id/tenant", adminOnly, propertyHandler.UnassignTenant)

		// Tenants (admin)
		api.GET("/societies/:id/tenants", adminOnly, tenantHandler.ListBySociety)
		api.GET("/tenants/unassigned", adminOnly, tenantHandler.ListUnassigned)
		api.GET("/tenants/:id", adminOnly, tenantHandler.GetByID)

		// Maintenance
		api.POST("/maintenance", tenantOnly, maintenanceHandler.Create)
		api.GET("/maintenance", tenantOnly, maintenanceHandler.ListMine)
		api.GET("/maintenance/:id", maintenanceHandler.GetByID)
		api.GET("/societies/:id/maintenance", adminOnly, maintenanceHandler.ListBySociety)
		api.PATCH("/maintenance/:id/status", adminOnly, maintenanceHandler.SetStatus)
		api.PATCH("/maintenance/:id/assign", adminOnly, maintenanceHandler.Assign)
		api.DELETE("/maintenance/:id", adminOnly, maintenanceHandler.Delete)

		// Notices
		api.POST("/societies/:id/notices", adminOnly, noticeHandler.Create)
		api.GET("/societies/:id/notices", noticeHandler.ListBySociety)
		api.GET("/notices/:id", noticeHandler.GetByID)
		api.PATCH("/notices/:id", adminOnly, noticeHandler.Update)
		api.DELETE("/notices/:id", adminOnly, noticeHandler.Delete)
		api.POST("/notices/:id/comments", noticeHandler.CreateComment)
		api.GET("/notices/:id/comments", noticeHandler.ListComments)

		// Payments
		api.POST("/societies/:id/payments", adminOnly, paymentHandler.Create)
		api.GET("/societies/:id/payments", adminOnly, paymentHandler.ListBySociety)
		api.GET("/payments", tenantOnly, paymentHandler.ListMine)
		api.GET("/payments/:id", paymentHandler.GetByID)
		api.PATCH("/payments/:id/status", adminOnly, paymentHandler.Transition)
		api.GET("/payments/:id/history", paymentHandler.History)
		api.GET("/payments/:id/receipt", paymentHandler.Receipt)
		api.POST("/payments/:id/remind", adminOnly, paymentHandler.Remind)
		api.GET("/payments/:id/reminders", adminOnly, paymentHandler.Reminders)

		// Documents
		api.POST("/documents", documentHandler.Upload)
		api.GET("/documents", documentHandler.ListMine)
		api.GET("/documents/:id/download-url", documentHandler.DownloadURL)
		api.DELETE("/documents/:id", documentHandler.Delete)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Background worker (payment reminders)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	if jobQueue != nil {
		go reminderProcessor.Run(workerCtx)
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
