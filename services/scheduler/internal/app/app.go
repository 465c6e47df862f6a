package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orbit-scheduler/pkg/activity"
	"orbit-scheduler/pkg/config"
	"orbit-scheduler/pkg/gemini"
	"orbit-scheduler/pkg/jwt"
	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/pkg/middleware"
	"orbit-scheduler/pkg/queue"
	"orbit-scheduler/pkg/s3"
	schedulerHTTP "orbit-scheduler/services/scheduler/internal/controller/http"
	"orbit-scheduler/services/scheduler/internal/repo/persistent"
	"orbit-scheduler/services/scheduler/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "orbit-scheduler/services/scheduler/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	postRepo := persistent.NewPostRepository(db)

	// Initialize use cases
	postUseCase := usecase.NewPostUseCase(postRepo, s3Client, redisClient, queueClient, log)
	assistUseCase := usecase.NewAssistUseCase(gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiAPIURL), log)

	// Initialize the reconciler with its production sinks
	reconciler := usecase.NewReconciler(
		postRepo,
		usecase.NewQueueNotificationSink(queueClient),
		usecase.NewRedisActivityLog(activity.NewLog(redisClient)),
		time.Duration(cfg.ReconcileIntervalSeconds)*time.Second,
		log,
	)
	go reconciler.Start()

	// Initialize HTTP handlers
	postHandler := schedulerHTTP.NewPostHandler(postUseCase, log)
	assistHandler := schedulerHTTP.NewAssistHandler(assistUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	{
		api.POST("/posts", postHandler.CreatePost)
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPost)
		api.GET("/posts/owner/:owner_id", postHandler.GetOwnerPosts)
		api.POST("/assist/caption", assistHandler.GenerateCaption)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Scheduler service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down scheduler service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop the reconcile loop; in-flight writes are single atomic operations
	reconciler.Stop()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Scheduler service exited")
}
