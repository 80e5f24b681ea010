package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postcraft/pkg/config"
	"postcraft/pkg/jwt"
	"postcraft/pkg/logger"
	"postcraft/pkg/middleware"
	"postcraft/pkg/queue"
	distributionHTTP "postcraft/services/distribution/internal/controller/http"
	"postcraft/services/distribution/internal/discord"
	"postcraft/services/distribution/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "postcraft/services/distribution/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Connected platforms
	senders := map[string]usecase.Sender{}
	if cfg.DiscordWebhookURL != "" {
		sender, err := discord.NewWebhookSender(cfg.DiscordWebhookURL)
		if err != nil {
			log.Error("Discord webhook disabled: %v", err)
		} else {
			senders["discord"] = sender
			log.Info("Discord webhook connected")
		}
	}

	// Initialize UseCase
	distributionUseCase := usecase.NewDistributionUseCase(senders, redisClient, queueClient, log)

	// Initialize HTTP handlers
	distributionHandler := distributionHTTP.NewDistributionHandler(distributionUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "OPTIONS"},
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
	{
		api.GET("/distribution/posts/:post_id", distributionHandler.GetDeliveries)
		api.GET("/distribution/queue", middleware.RequireRole(middleware.RoleAdmin), distributionHandler.QueueDepth)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	consumeCtx, stopConsuming := context.WithCancel(context.Background())
	defer stopConsuming()

	// Start consuming post_submitted tasks
	go func() {
		log.Info("Starting distribution queue consumer...")
		if err := queueClient.ConsumePostSubmitted(consumeCtx, distributionUseCase.HandlePostSubmitted); err != nil {
			log.Error("Error starting distribution queue consumer: %v", err)
		}
	}()

	// Start server in a goroutine
	go func() {
		log.Info("Distribution service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down distribution service...")

	stopConsuming()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if queueClient != nil {
		queueClient.Close()
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Distribution service exited")
}
