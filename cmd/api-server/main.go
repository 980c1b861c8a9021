// cmd/api-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"social-support-portal/internal/assistant/catalog"
	"social-support-portal/internal/assistant/llm"
	"social-support-portal/internal/assistant/router"
	"social-support-portal/internal/common/config"
	"social-support-portal/internal/common/database"
	"social-support-portal/internal/common/logger"
	"social-support-portal/internal/common/observability"
	"social-support-portal/internal/notify"
	"social-support-portal/internal/server"
	"social-support-portal/internal/wizard/persist"
	"social-support-portal/internal/wizard/submit"
	"social-support-portal/internal/wizard/tracker"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting api server...")

	obs := observability.New("api-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Draft / chat storage ---
	var store persist.Store
	if cfg.Database.Redis.Enabled {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		store = persist.NewRedisStore(redis)
		zapLog.Info("Redis connected successfully")
	} else {
		store = persist.NewMemoryStore()
		zapLog.Info("Using in-memory storage, data is lost on restart")
	}

	// --- Submission backend ---
	var submitter submit.Submitter
	if cfg.Database.Postgres.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		submitter = submit.NewRecorder(pg.DB, log)
		zapLog.Info("PostgreSQL connected successfully")
	} else {
		submitter = submit.NewMockSubmitter()
		zapLog.Info("Using mock submission backend")
	}

	// --- Service directory search ---
	var esClient *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	}
	searcher := catalog.NewSearcher(esClient, cfg.Database.Elasticsearch.Index, log)

	// --- Notifications ---
	var notifier submit.ConfirmationSender
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		notifier = notify.New(ctx, cfg.Notifications, log)
		zapLog.Info("Notification channels initialized")
	}

	// --- Assemble the application ---
	completer := llm.NewClient(cfg.OpenAI, log)
	assistant := router.New(completer, store, log)
	tr := tracker.New(store, log)
	pipeline := submit.NewPipeline(submitter, store, tr, notifier, log)

	srv := server.New(assistant, pipeline, tr, searcher, store, obs, log)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Routes(cfg.Server.CORSOrigin),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zapLog.Info("API server listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down server", zap.Error(err))
	}

	zapLog.Info("API server stopped gracefully")
}
