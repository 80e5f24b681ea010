package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postcraft/pkg/ai"
	"postcraft/pkg/cache"
	"postcraft/pkg/config"
	"postcraft/pkg/database"
	"postcraft/pkg/jwt"
	"postcraft/pkg/logger"
	"postcraft/pkg/middleware"
	"postcraft/pkg/queue"
	"postcraft/pkg/s3"
	"postcraft/services/post/internal/composer"
	postHTTP "postcraft/services/post/internal/controller/http"
	"postcraft/services/post/internal/repo/persistent"
	"postcraft/services/post/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "postcraft/services/post/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	queueClient *queue.Client
	gemini      *ai.GeminiClient
	jwtService  *jwt.Service
	sessions    *usecase.SessionTable
	scheduler   *cron.Cron
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v (generated images stay inline)", err)
		s3Client = nil
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	gemini, err := ai.NewGeminiClient(context.Background(), cfg, log)
	if err != nil {
		log.Error("Failed to create Gemini client: %v", err)
		return nil, err
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		queueClient: queueClient,
		gemini:      gemini,
		jwtService:  jwt.NewService(cfg.JWTSecret),
	}, nil
}

func (a *App) brandResolver(directory *usecase.BrandDirectory) (composer.BrandResolver, error) {
	switch a.cfg.BrandMode {
	case "directory":
		return composer.NewDirectoryResolver(directory), nil
	case "inline":
		return composer.InlineResolver{}, nil
	default:
		return nil, fmt.Errorf("unknown BRAND_MODE %q", a.cfg.BrandMode)
	}
}

func (a *App) Run() error {
	// Initialize repositories
	postRepo := persistent.NewPostRepository(a.db)
	templateRepo := persistent.NewTemplateRepository(a.db)

	directory, err := usecase.NewBrandDirectory(templateRepo, a.cfg.SessionCapacity, a.cfg.DirectoryTTL, a.log.With("component", "directory"))
	if err != nil {
		return err
	}
	resolver, err := a.brandResolver(directory)
	if err != nil {
		return err
	}

	// Optional collaborators stay nil interfaces when their client is missing.
	var uploader usecase.ObjectUploader
	if a.s3Client != nil {
		uploader = a.s3Client
	}
	var publisher usecase.TaskPublisher
	if a.queueClient != nil {
		publisher = a.queueClient
	}
	store := usecase.NewPostStore(postRepo, uploader, a.redisClient, publisher, a.log)

	postComposer := composer.New(a.gemini, a.gemini, store, resolver, a.log, composer.Options{
		Policy:  composer.ParseSubmitPolicy(a.cfg.SubmitPolicy),
		Timeout: a.cfg.AITimeout,
	})

	a.sessions, err = usecase.NewSessionTable(postComposer, a.cfg.SessionCapacity, a.log)
	if err != nil {
		return err
	}

	// Initialize use cases
	var composerDirectory *usecase.BrandDirectory
	if resolver.Required() {
		composerDirectory = directory
	}
	composerUseCase := usecase.NewComposerUseCase(postComposer, a.sessions, composerDirectory, a.log)
	postUseCase := usecase.NewPostUseCase(postRepo, templateRepo, a.redisClient, a.cfg.HistoryCacheTTL, a.log)

	// Initialize HTTP handlers
	composerHandler := postHTTP.NewComposerHandler(composerUseCase, a.log)
	postHandler := postHTTP.NewPostHandler(postUseCase, a.log)

	a.scheduler = cron.New()
	if _, err := a.scheduler.AddFunc("@every 1m", func() {
		a.sessions.SweepIdle(time.Now(), a.cfg.SessionIdleTTL)
	}); err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}
	a.scheduler.Start()

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "sessions": a.sessions.Len()})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(a.jwtService))
	api.Use(middleware.RateLimitMiddleware(a.redisClient, 100, time.Minute))

	{
		api.POST("/composer/sessions", composerHandler.CreateSession)
		api.GET("/composer/sessions/:id", composerHandler.GetSession)
		api.DELETE("/composer/sessions/:id", composerHandler.CloseSession)
		api.PATCH("/composer/sessions/:id/draft", composerHandler.UpdateDraft)
		api.POST("/composer/sessions/:id/platforms/:platform", composerHandler.TogglePlatform)
		api.POST("/composer/sessions/:id/improve", composerHandler.ImproveWriting)
		api.POST("/composer/sessions/:id/image", composerHandler.GenerateImage)
		api.POST("/composer/sessions/:id/submit", composerHandler.Submit)
		api.GET("/composer/brand-templates", composerHandler.BrandTemplates)

		api.GET("/posts/history", postHandler.History)
		api.GET("/posts/:id", postHandler.GetPost)
	}

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Post service starting on port %s (brand mode %s, submit policy %s)", a.cfg.ServerPort, a.cfg.BrandMode, a.cfg.SubmitPolicy)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down post service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	if a.scheduler != nil {
		<-a.scheduler.Stop().Done()
	}
	// Closing sessions cancels in-flight AI calls.
	if a.sessions != nil {
		a.sessions.Purge()
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		a.queueClient.Close()
	}

	a.log.Info("Post service exited")
	return nil
}
