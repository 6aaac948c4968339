package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/meeting-insights/pkg/validator"

	"github.com/johnquangdev/meeting-insights/internal/adapter/handler"
	"github.com/johnquangdev/meeting-insights/internal/adapter/repository"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/meeting-insights/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-insights/internal/usecase/analysis"
	"github.com/johnquangdev/meeting-insights/internal/usecase/prompt"
	"github.com/johnquangdev/meeting-insights/internal/usecase/transcript"
	pkgai "github.com/johnquangdev/meeting-insights/pkg/ai"
	"github.com/johnquangdev/meeting-insights/pkg/config"
	"github.com/johnquangdev/meeting-insights/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database. The API stays up without one; analysis history is
	// then not persisted.
	log.Println("📦 Connecting to database...")
	var meetingRepo repositories.MeetingRepository
	var analysisRepo repositories.AnalysisRepository
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		log.Printf("⚠️  Database unavailable, running without persistence: %v", err)
	} else {
		defer database.CloseDB(db)
		if err := database.Migrate(db, logger); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		meetingRepo = repository.NewMeetingRepository(db)
		analysisRepo = repository.NewAnalysisRepository(db)
	}

	// Initialize cache. Redis when reachable, in-memory otherwise.
	log.Println("📦 Connecting to Redis...")
	var cacheStore cache.Store
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Printf("⚠️  Redis unavailable, falling back to in-memory cache: %v", err)
		cacheStore = cache.NewMemoryStore()
	} else {
		defer redisClient.Close()
		cacheStore = cache.NewRedisStore(redisClient, logger)
	}

	// Initialize the Gemini client
	log.Println("🤖 Initializing Gemini client...")
	geminiClient := pkgai.NewGeminiClient(&cfg.Gemini)

	// Initialize the analysis pipeline
	log.Println("📝 Initializing analysis pipeline...")
	aliases := map[string]string{}
	if cfg.Analysis.AliasFile != "" {
		aliases, err = transcript.LoadAliases(cfg.Analysis.AliasFile)
		if err != nil {
			log.Fatalf("Failed to load speaker aliases: %v", err)
		}
	}
	normalizer := transcript.NewNormalizer(aliases)

	registry, err := prompt.NewRegistry(logger)
	if err != nil {
		log.Fatalf("Failed to load prompt templates: %v", err)
	}

	analysisService := analysis.NewService(normalizer, registry, geminiClient, cacheStore, logger, analysis.Config{
		DefaultTemplate: cfg.Analysis.DefaultTemplate,
		DefaultVersion:  cfg.Analysis.DefaultVersion,
		MaxConcurrency:  cfg.Analysis.MaxConcurrency,
		MaxRetries:      cfg.Analysis.MaxRetries,
		CacheTTL:        cfg.Analysis.CacheTTL,
	})

	// Initialize report storage. Optional; exports are returned inline when
	// object storage is not reachable.
	log.Println("🗄️  Initializing report storage...")
	reportStore, err := storage.NewReportStore(&cfg.Storage)
	if err != nil {
		log.Printf("⚠️  Object storage unavailable, reports will be returned inline: %v", err)
		reportStore = nil
	}

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	analysisHandler := handler.NewAnalysisHandler(analysisService, meetingRepo, analysisRepo, logger)
	templateHandler := handler.NewTemplateHandler(registry, logger)
	reportHandler := handler.NewReportHandler(analysisService, reportStore, logger)

	// Auth middleware guards /v1 outside development
	var authMW *httpmw.AuthMiddleware
	if cfg.Server.Environment != "development" {
		jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)
		authMW = httpmw.NewAuthMiddleware(jwtManager)
	} else {
		log.Println("⚠️  Development mode: API routes are unauthenticated")
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, analysisHandler, templateHandler, reportHandler, authMW)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server exited gracefully")
}
