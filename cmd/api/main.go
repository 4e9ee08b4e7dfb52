package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/Dan9191/deploy-mock/internal/config"
	"github.com/Dan9191/deploy-mock/internal/handler"
	"github.com/Dan9191/deploy-mock/internal/repository"
	"github.com/Dan9191/deploy-mock/internal/scheduler"
	"github.com/Dan9191/deploy-mock/internal/service"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Optional .env file
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Fatalf("Failed to load .env: %v", err)
	}

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize layers
	repo := repository.NewRepository()
	svc := service.NewService(repo, logger)
	h, err := handler.NewHandler(svc, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize handler: %v", err)
	}

	if cfg.StatsSchedule != "" {
		reporter, err := scheduler.NewStatsReporter(cfg.StatsSchedule, repo, logger)
		if err != nil {
			logger.Fatalf("Failed to start stats reporter: %v", err)
		}
		reporter.Start()
		defer reporter.Stop()
	}

	// Start server
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.NewRouter(h, svc, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Server is running at http://localhost%s", cfg.Addr())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
