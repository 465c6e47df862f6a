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
	"orbit-scheduler/pkg/jwt"
	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/pkg/middleware"
	"orbit-scheduler/pkg/queue"
	notificationHTTP "orbit-scheduler/services/notification/internal/controller/http"
	"orbit-scheduler/services/notification/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "orbit-scheduler/services/notification/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize use case
	notificationUseCase := usecase.NewNotificationUseCase(redisClient, activity.NewLog(redisClient), log)

	// Start draining post lifecycle events into notifications
	consumer := usecase.NewConsumer(queueClient, notificationUseCase, log)
	go func() {
		if err := consumer.Start(); err != nil {
			log.Error("Notification consumer failed: %v", err)
		}
	}()

	// Initialize HTTP handlers
	notificationHandler := notificationHTTP.NewNotificationHandler(notificationUseCase, redisClient, log, jwtService)

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

	// WebSocket authenticates via query token since browsers cannot set
	// headers on the upgrade request
	r.GET("/api/v1/notifications/ws", notificationHandler.HandleWebSocket)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService))

	{
		api.GET("/notifications", notificationHandler.GetNotifications)
		api.GET("/activity", notificationHandler.GetActivity)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Notification service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down notification service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	consumer.Stop()

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

	log.Info("Notification service exited")
}
