package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gradesync/internal/config"
	"gradesync/internal/database"
	"gradesync/internal/github"
	"gradesync/internal/handler"
	"gradesync/internal/jira"
	"gradesync/internal/repository"
	"gradesync/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	// База данных (database/sql)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	// Репозитории
	projectRepo := repository.NewProjectRepository(db)
	featureRepo := repository.NewFeatureRepository(db)
	evalRepo := repository.NewEvaluationRepository(db)

	// Провайдеры upstream
	commitProvider := github.NewClient(cfg.GithubToken, cfg.GithubRateLimit, cfg.SyncPageSize)
	statusProvider := jira.NewClient(cfg.JiraBaseURL, cfg.JiraEmail, cfg.JiraAPIToken)

	// Use Cases
	locks := usecase.NewProjectLocks()
	projectUC := usecase.NewProjectUseCase(projectRepo, featureRepo, evalRepo)
	syncUC := usecase.NewSyncUseCase(projectRepo, featureRepo, evalRepo, commitProvider, statusProvider, locks)
	evalUC := usecase.NewEvaluationUseCase(projectRepo, evalRepo, locks)
	statsUC := usecase.NewStatsUseCase(commitProvider)

	// Echo + Handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(handler.LoggingMiddleware(logger))

	apiHandler := handler.NewAPIHandler(projectUC, syncUC, evalUC, statsUC, logger)
	handler.RegisterRoutes(e, apiHandler)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
