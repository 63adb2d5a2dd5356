package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/meetinglabs/meeting-summarizer/pkg/validator"

	"github.com/meetinglabs/meeting-summarizer/internal/adapter/handler"
	"github.com/meetinglabs/meeting-summarizer/internal/adapter/repository"
	"github.com/meetinglabs/meeting-summarizer/internal/infrastructure/database"
	"github.com/meetinglabs/meeting-summarizer/internal/infrastructure/storage"
	chatuc "github.com/meetinglabs/meeting-summarizer/internal/usecase/chat"
	meetinguc "github.com/meetinglabs/meeting-summarizer/internal/usecase/meeting"
	"github.com/meetinglabs/meeting-summarizer/internal/usecase/summarization"
	"github.com/meetinglabs/meeting-summarizer/internal/usecase/transcription"
	pkgai "github.com/meetinglabs/meeting-summarizer/pkg/ai"
	"github.com/meetinglabs/meeting-summarizer/pkg/config"
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
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewSQLiteDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Schema migration is additive only; safe to run on every start.
	log.Println("🔄 Running schema migration...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)

	// Initialize AI gateways
	log.Println("🤖 Initializing AI components...")
	asmClient := pkgai.NewAssemblyAIClient(&cfg.Assembly)
	geminiClient := pkgai.NewGeminiClient(&cfg.Gemini)
	transcriptionService := transcription.NewService(asmClient, &cfg.Assembly, logger)
	summarizationService := summarization.NewService(geminiClient, logger)

	if !cfg.AssemblyConfigured() {
		log.Println("⚠️  ASSEMBLYAI_API_KEY not set; transcription will use fallback output")
	}
	if !cfg.GeminiConfigured() {
		log.Println("⚠️  GEMINI_API_KEY not set; summaries will use fallback output")
	}

	// Initialize optional audio archive
	var archive *storage.AudioArchive
	if cfg.Storage.Enabled() {
		log.Println("🗄️  Initializing audio archive...")
		archive, err = storage.NewAudioArchive(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize audio archive: %v", err)
		}
		log.Printf("✅ Audio archive ready: %s/%s", cfg.Storage.Endpoint, cfg.Storage.BucketName)
	}

	// Initialize services
	log.Println("✨ Initializing meeting service...")
	meetingService := meetinguc.NewService(
		transcriptionService,
		summarizationService,
		meetingRepo,
		archive,
		os.TempDir(),
		logger,
	)
	chatService := chatuc.NewService(geminiClient, logger)

	// Initialize handler
	log.Println("🚀 Initializing meeting handler...")
	meetingHandler := handler.NewMeeting(meetingService, chatService, logger)
	log.Println("✅ Meeting handler initialized successfully")

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, meetingHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
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
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
