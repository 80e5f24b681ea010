package main

import (
	"postcraft/pkg/cache"
	"postcraft/pkg/config"
	"postcraft/pkg/logger"
	"postcraft/pkg/queue"
	distributionApp "postcraft/services/distribution/internal/app"

	"github.com/gin-gonic/gin"
)

// @title           Distribution Service API
// @version         1.0
// @description     Delivers submitted posts to connected platforms
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (delivery status disabled)", err)
		redisClient = nil
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		panic(err)
	}

	distributionApp.Run(cfg, log, redisClient, queueClient)
}
