// @title Study Notes Assistant API
// @version 1.0
// @description Generates study notes, summaries and multiple-choice quizzes.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_SESSION_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"notes-assistant/internal/adapter"
	"notes-assistant/internal/adapter/extractor"
	"notes-assistant/internal/adapter/generation"
	"notes-assistant/internal/cache"
	"notes-assistant/internal/config"
	"notes-assistant/internal/handler"
	"notes-assistant/internal/logger"
	"notes-assistant/internal/middleware"
	"notes-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Generation backend
	client, err := generation.NewClient(ctx, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create generation client", zap.Error(err))
	}
	appLogger.Info("Generation client initialized", zap.String("backend", client.Name()))

	// Initialize Redis Client
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize services
	tokens, err := service.NewSessionTokenService(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		appLogger.Fatal("Failed to create session token service", zap.Error(err))
	}
	store := service.NewSessionStore(cacheAdapter, cfg.Session.TTL)

	var writer service.ArtifactWriter
	if cfg.Artifacts.Enabled {
		writer = service.NewArtifactWriter(afero.NewOsFs(), cfg.Artifacts.OutputDir, true)
		appLogger.Info("Artifact files enabled", zap.String("output_dir", cfg.Artifacts.OutputDir))
	}
	assistantService := service.NewAssistantService(client, store, writer)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization,Content-Disposition", ExposeHeaders: "Content-Disposition", MaxAge: 300}))
	app.Use(recover.New())

	handler.SetupRoutes(app, handler.Handlers{
		Assistant: handler.NewAssistantHandler(assistantService, extractor.New()),
		Session:   handler.NewSessionHandler(tokens),
		Health:    handler.NewHealthHandler(cacheAdapter),
		Tokens:    tokens,
	})

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
