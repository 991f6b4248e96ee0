package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okrause/recallflow/internal/api"
	"github.com/okrause/recallflow/internal/config"
	"github.com/okrause/recallflow/internal/db"
	"github.com/okrause/recallflow/internal/logger"
	"github.com/okrause/recallflow/internal/repository/sqlite"
	"github.com/okrause/recallflow/internal/services"
	"github.com/okrause/recallflow/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("recallflow review engine starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("due_queue_limit=%d", cfg.DueQueueLimit)
	log.Debug("history_worker_count=%d", cfg.HistoryWorkerCount)
	log.Debug("history_queue_size=%d", cfg.HistoryQueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	itemRepo := sqlite.NewReviewItemRepository(database.DB)
	historyRepo := sqlite.NewReviewHistoryRepository(database.DB)

	historyPool := worker.NewPool(cfg.HistoryWorkerCount, cfg.HistoryQueueSize)
	historyQueue := worker.NewQueue(historyPool, historyRepo)

	itemService := services.NewItemService(itemRepo)
	reviewService := services.NewReviewService(itemRepo, historyQueue, cfg.DueQueueLimit)
	statsService := services.NewStatsService(historyRepo)

	srv := &api.Server{
		ItemService:   itemService,
		ReviewService: reviewService,
		StatsService:  statsService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	historyPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping history pool")
	cancel()
	historyPool.Stop()

	log.Info("recallflow review engine stopped")
}
