package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	config "task-tracker.com/task-tracker/internal/configs"
	httpapi "task-tracker.com/task-tracker/internal/http"
	"task-tracker.com/task-tracker/internal/ratelimit"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Starts the task tracker web pages backed by the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		database := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN)
		taskRepo := repository.NewTaskRepository(database)
		taskService := services.NewTaskService(taskRepo)

		var limiter ratelimit.Limiter
		switch cfg.RateLimitBackend {
		case config.RateLimitRedis:
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RedisKeyPrefix, cfg.RateLimit, time.Minute)
		default:
			limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit, time.Minute)
		}

		e, err := httpapi.NewServer(taskService, limiter)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("server stopped: %v", err)
				stop()
			}
		}()

		<-ctx.Done()

		echoCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(echoCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}

		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
