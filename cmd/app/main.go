package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-service/internal/config"
	"github.com/BuzzLyutic/task-service/internal/handler"
	"github.com/BuzzLyutic/task-service/internal/mapper"
	"github.com/BuzzLyutic/task-service/internal/repo"
	"github.com/BuzzLyutic/task-service/internal/service"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg := config.Load()

	var taskRepo repo.TaskRepository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to connect to Database", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			logger.Fatal("Failed to ping the Database", zap.Error(err))
		}
		logger.Info("Successfully connected to the Database!")
		taskRepo = repo.NewTaskRepo(pool)
	} else {
		logger.Warn("DATABASE_URL is not set, tasks are kept in memory")
		taskRepo = repo.NewMemoryRepo()
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()

		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis is unreachable, cache will fall through", zap.Error(err))
		}
		taskRepo = repo.NewCachedRepo(taskRepo, client, cfg.CacheTTL, logger)
		logger.Info("Task cache enabled", zap.String("redis", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	}

	var opts []service.Option
	if cfg.StrictUpdate {
		opts = append(opts, service.WithStrictUpdate())
	}
	taskService := service.NewTaskService(taskRepo, mapper.NewTaskMapper(), opts...)
	taskHandler := handler.NewTaskHandler(taskService, logger, cfg.DefaultPageSize, cfg.MaxPageSize)

	srv := http.Server{ // Создаем сервер
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(taskHandler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		logger.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Info("Server stopped successfully!")
}
