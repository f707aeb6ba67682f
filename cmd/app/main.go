package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-management-api/internal/config"
	"github.com/BuzzLyutic/task-management-api/internal/handler"
	"github.com/BuzzLyutic/task-management-api/internal/middleware"
	"github.com/BuzzLyutic/task-management-api/internal/repo"
	"github.com/BuzzLyutic/task-management-api/internal/service"
	"github.com/BuzzLyutic/task-management-api/migrations"
)

func main() {
	// Конфигурация валидируется до всего остального: без нее работать нельзя
	cfg, err := config.Load()
	if err != nil {
		boot, _ := zap.NewProduction()
		boot.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger := newLogger(cfg)
	defer logger.Sync()
	logger = logger.Named("Task-Management").With(zap.String("stage", cfg.Stage))

	dbURL := cfg.DB.DatabaseURL()
	if cfg.MigrateOnStart {
		if err := migrations.Up(dbURL); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		logger.Info("Migrations applied")
	}

	// Подключаем БД
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		logger.Fatal("Failed to connect to Database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to ping the Database", zap.Error(err))
	}
	logger.Info("Successfully connected to the Database!")

	// Явная сборка зависимостей: репозитории -> сервисы -> роутер
	authService := service.NewAuthService(repo.NewUserRepo(pool), service.AuthConfig{
		Secret:     []byte(cfg.JWT.Secret),
		TokenTTL:   cfg.JWT.ExpiresIn,
		BcryptCost: cfg.BcryptCost,
	}, logger.Named("AuthService"))
	taskService := service.NewTaskService(repo.NewTaskRepo(pool), logger.Named("TaskService"))

	router := handler.NewRouter(handler.RouterDeps{
		Auth:        authService,
		Tasks:       taskService,
		DB:          pool,
		AuthLimiter: middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, logger),
		Logger:      logger,
	})

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Application is listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
		return
	}
	logger.Info("Server stopped successfully!")
}

func newLogger(cfg config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
