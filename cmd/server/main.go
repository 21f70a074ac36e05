package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/userdirectory/internal/api"
	"github.com/vytor/userdirectory/internal/config"
	"github.com/vytor/userdirectory/internal/db"
	"github.com/vytor/userdirectory/internal/logger"
	"github.com/vytor/userdirectory/internal/randomuser"
	"github.com/vytor/userdirectory/internal/repository/sqlite"
	"github.com/vytor/userdirectory/internal/services"
	"github.com/vytor/userdirectory/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Employee Directory Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("profile_api_url=%s", cfg.ProfileAPIURL)
	log.Debug("result_count=%d", cfg.ResultCount)
	log.Debug("nationalities=%v", cfg.Nationalities)
	log.Debug("fetch_timeout=%s", cfg.FetchTimeout)
	log.Debug("request_timeout=%s", cfg.RequestTimeout())
	log.Debug("page_ttl=%s", cfg.PageTTL)
	log.Debug("prune_interval=%s", cfg.PruneInterval)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("worker_queue_size=%d", cfg.WorkerQueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	tmpl, err := api.LoadTemplates()
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}

	client := randomuser.New(cfg.ProfileAPIURL,
		randomuser.WithHTTPClient(&http.Client{Timeout: cfg.FetchTimeout}),
	)
	directoryService := services.NewDirectoryService(
		client,
		sqlite.NewPageRepository(database.DB),
		randomuser.FetchRequest{Count: cfg.ResultCount, Nationalities: cfg.Nationalities},
		cfg.PageTTL,
	)

	srv := &api.Server{
		DirectoryService: directoryService,
		DB:               database.DB,
		Templates:        tmpl,
		RequestTimeout:   cfg.RequestTimeout(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start(ctx)
	pruneDone := pool.Every(ctx, cfg.PruneInterval, func() worker.Job {
		return &worker.PrunePagesJob{Pruner: directoryService}
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout() + 5*time.Second,
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

	log.Debug("stopping worker pool")
	cancel()
	<-pruneDone
	pool.Stop()

	log.Info("===========================================")
	log.Info("Employee Directory Stopped")
	log.Info("===========================================")
}
