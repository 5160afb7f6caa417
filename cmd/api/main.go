// @title PDF Quiz API
// @version 1.0
// @description Generates multiple-choice quizzes from uploaded PDF documents with a large language model.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "pdf-quiz/cmd/api/docs"
	"pdf-quiz/internal/app"
	"pdf-quiz/internal/config"
	"pdf-quiz/internal/logger"
	"pdf-quiz/internal/server"

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

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 15*time.Second)
	components, err := app.Build(startupCtx, cfg)
	cancelStartup()
	if err != nil {
		appLogger.Fatal("Failed to initialize quiz pipeline", zap.Error(err))
	}
	defer func() {
		if err := components.Close(); err != nil {
			appLogger.Warn("Failed to release resources", zap.Error(err))
		}
	}()

	fiberApp := server.New(cfg.Server, server.Deps{
		QuizService:  components.QuizService,
		Cache:        components.Cache,
		MaxQuestions: cfg.Quiz.MaxQuestions,
	})

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := fiberApp.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fiberApp.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	appLogger.Info("Server exited gracefully")
}
