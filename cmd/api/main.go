package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/handlers"
	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.JSON, cfg.Logging.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	// Initialize database
	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return err
	}

	sessionRepo := repositories.NewSessionRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		return fmt.Errorf("create upload directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gateway, err := services.NewGeminiService(ctx, cfg.Gemini, log)
	if err != nil {
		return fmt.Errorf("initialize gemini: %w", err)
	}
	log.Info("gemini initialized", zap.String("model", cfg.Gemini.Model))

	extractor := services.NewDocumentExtractor(log)
	orchestrator := services.NewOrchestrator(gateway, extractor, cfg.Analysis.Concurrency, log)
	analysisService := services.NewAnalysisService(sessionRepo, docRepo, storageService, orchestrator, log)

	worker := services.NewWorker(
		sessionRepo,
		analysisService,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
		log,
	)
	worker.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "Resume Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		// Multiple resumes share one request.
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 4,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.Routes{
		Sessions: handlers.NewSessionHandler(sessionRepo, docRepo, storageService, log),
		Uploads:  handlers.NewUploadHandler(sessionRepo, docRepo, storageService, extractor, cfg.Storage.MaxFileSize, log),
		Analyze:  handlers.NewAnalyzeHandler(sessionRepo, docRepo, worker),
		Results:  handlers.NewResultHandler(sessionRepo, candidateRepo),
		Exports:  handlers.NewExportHandler(sessionRepo, candidateRepo),
	}.Register(app.Group("/api/v1"))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Resume Matcher API",
			"version":   "1.0.0",
			"endpoints": handlers.Endpoints,
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		worker.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Server.Env))

	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return nil
}
