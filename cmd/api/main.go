// @title Lingo Quiz API
// @version 1.0
// @description Quiz results, statistics, vocabulary and media for the language learning app.
// @host localhost:5000
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "lingo-quiz/cmd/api/docs"
	"lingo-quiz/database"
	"lingo-quiz/internal/adapter"
	"lingo-quiz/internal/adapter/dictionary"
	"lingo-quiz/internal/adapter/mailer"
	"lingo-quiz/internal/adapter/storage"
	"lingo-quiz/internal/cache"
	"lingo-quiz/internal/config"
	dblogic "lingo-quiz/internal/database"
	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/handler"
	"lingo-quiz/internal/logger"
	"lingo-quiz/internal/middleware"
	"lingo-quiz/internal/observability"
	"lingo-quiz/internal/repository"
	"lingo-quiz/internal/service"
	"lingo-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

const (
	shutdownTimeout     = 10 * time.Second
	rateLimitSweepEvery = time.Minute
	rateLimitMaxIdle    = 10 * time.Minute
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	shutdownTracing, err := observability.InitTracing(rootCtx, cfg.Tracing, cfg.Logger.Env)
	if err != nil {
		appLogger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	db, err := dblogic.NewSQLXPostgresDB(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := dblogic.RunMigrations(db.DB, database.Migrations, database.MigrationsDir); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis is optional: without it stats and dictionary lookups are served uncached.
	var cacheAdapter domain.Cache
	var cachePinger handler.Pinger
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		cachePinger = handler.PingFunc(cacheAdapter.Ping)
		appLogger.Info("Successfully connected to Redis")
	} else {
		appLogger.Warn("REDIS_ADDRESS not set, running without cache")
	}

	fileStorage, err := storage.NewFileStorage(cfg.Storage)
	if err != nil {
		appLogger.Fatal("Failed to initialize file storage", zap.Error(err))
	}

	var mail domain.Mailer
	if cfg.Mail.Enabled() {
		mail, err = mailer.NewSMTPMailer(cfg.Mail)
		if err != nil {
			appLogger.Fatal("Failed to initialize mailer", zap.Error(err))
		}
	} else {
		appLogger.Warn("Mail is not configured, password reset links will not be emailed")
	}

	metrics := observability.NewMetrics()
	validator := validation.NewValidator()

	// Repositories
	userRepository := repository.NewSQLXUserRepository(db)
	resultRepository := repository.NewQuizResultRepository(db)
	progressRepository := repository.NewProgressRepository(db)
	vocabularyRepository := repository.NewVocabularyRepository(db)
	mediaRepository := repository.NewMediaRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Services
	var statsCache service.StatsCacheService
	if cacheAdapter != nil {
		statsCache = service.NewStatsCacheService(cacheAdapter, cfg.Cache.StatsTTL)
	}
	dictionaryClient := dictionary.NewFreeDictionaryClient(cfg.Dictionary, cfg.Cache.DictionaryTTL, cacheAdapter)

	resultService := service.NewQuizResultService(resultRepository, progressRepository, txManager, validator, statsCache, metrics)
	statsService := service.NewQuizStatsService(resultRepository, progressRepository, statsCache)
	authService, err := service.NewAuthService(userRepository, mail, validator, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	dictionaryService := service.NewDictionaryService(dictionaryClient)
	vocabularyService := service.NewVocabularyService(vocabularyRepository, dictionaryClient, validator)
	mediaService := service.NewMediaService(mediaRepository, fileStorage, validator)

	// Handlers
	quizHandler := handler.NewQuizHandler(resultService, statsService)
	authHandler := handler.NewAuthHandler(authService)
	dictionaryHandler := handler.NewDictionaryHandler(dictionaryService)
	vocabularyHandler := handler.NewVocabularyHandler(vocabularyService)
	mediaHandler := handler.NewMediaHandler(mediaService)
	adminHandler := handler.NewAdminHandler(mediaService)
	healthHandler := handler.NewHealthHandler(db, cachePinger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		AllowCredentials: !strings.Contains(cfg.Server.CORSOrigins, "*"),
		MaxAge:           300,
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.Metrics(metrics))
	app.Use(middleware.RequestLogger())
	app.Use(middleware.Tracing())

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)
	if local, ok := fileStorage.(*storage.LocalStorage); ok {
		app.Static(local.PublicPrefix(), local.Dir())
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.RunCleanup(rootCtx, rateLimitSweepEvery, rateLimitMaxIdle)

	protected := middleware.Protected(authService)
	adminOnly := middleware.RequireAdmin(userRepository)

	api := app.Group("/api")
	api.Get("/health", healthHandler.Health)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", limiter.Handler(), authHandler.Register)
	authGroup.Post("/login", limiter.Handler(), authHandler.Login)
	authGroup.Post("/forgot-password", limiter.Handler(), authHandler.ForgotPassword)
	authGroup.Post("/reset-password", limiter.Handler(), authHandler.ResetPassword)
	authGroup.Get("/me", protected, authHandler.Me)
	authGroup.Post("/reset-auth", protected, adminOnly, authHandler.ResetAuth)
	authGroup.Get("/dictionary/:word", dictionaryHandler.Lookup)

	quizGroup := api.Group("/quiz", protected)
	quizGroup.Post("/submit-result", quizHandler.SubmitResult)
	quizGroup.Get("/history", middleware.Pagination(), quizHandler.GetHistory)
	quizGroup.Get("/stats", quizHandler.GetStats)
	quizGroup.Get("/result/:id", quizHandler.GetResult)
	quizGroup.Get("/analytics", quizHandler.GetAnalytics)

	vocabGroup := api.Group("/vocab", protected)
	vocabGroup.Get("/", vocabularyHandler.List)
	vocabGroup.Post("/", vocabularyHandler.Upsert)
	vocabGroup.Put("/:id", vocabularyHandler.Update)
	vocabGroup.Delete("/:id", vocabularyHandler.Delete)

	mediaGroup := api.Group("/media", protected)
	mediaGroup.Get("/content", middleware.Pagination(), mediaHandler.ListContent)
	mediaGroup.Get("/content/:id", mediaHandler.GetContent)
	mediaGroup.Get("/categories", mediaHandler.GetCategories)

	adminGroup := api.Group("/admin", protected, adminOnly)
	adminGroup.Post("/upload-media", adminHandler.UploadMedia)
	adminGroup.Get("/media", middleware.Pagination(), adminHandler.ListMedia)
	adminGroup.Get("/media/:id", adminHandler.GetMedia)
	adminGroup.Put("/media/:id", adminHandler.UpdateMedia)
	adminGroup.Delete("/media/:id", adminHandler.DeleteMedia)
	adminGroup.Patch("/media/:id/toggle", adminHandler.ToggleMedia)
	adminGroup.Put("/media/:id/files", adminHandler.ReplaceMediaFiles)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Outstanding reset links die with the process.
	if cleared, err := authService.ClearResetTokens(ctx); err != nil {
		appLogger.Error("Failed to clear password reset tokens", zap.Error(err))
	} else {
		appLogger.Info("Cleared password reset tokens", zap.Int64("count", cleared))
	}

	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		appLogger.Error("Failed to shut down tracing", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
