package main

import (
	"orbit-scheduler/pkg/cache"
	"orbit-scheduler/pkg/config"
	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/pkg/queue"
	notificationApp "orbit-scheduler/services/notification/internal/app"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           Orbit Notification Service API
// @version         1.0
// @description     Notification and activity feed service for the Orbit platform

// @host      localhost:8003
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "" {
		panic("JWT_SECRET is required")
	}

	log := logger.New()

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		panic(err)
	}

	notificationApp.Run(cfg, log, redisClient, queueClient)
}
