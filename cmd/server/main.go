package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/api"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/api/handler"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/api/middleware"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/capture"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/metrics"
	filestore "github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/repository/file"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/repository/memory"
	pgstore "github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/repository/postgres"
	redisstore "github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/repository/redis"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/upstream"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/pkg/config"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/pkg/logger"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/usecase"

	_ "github.com/lib/pq" // postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	m := metrics.NewCaptureMetrics()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Record Store ---
	store, closeStore, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize record store", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	defer closeStore()

	// --- Use Cases ---
	queryUC := usecase.NewQueryLogsUseCase(store, log)
	exportUC, err := usecase.NewExportLogsUseCase(store, cfg.ExportDir, log)
	if err != nil {
		log.Error("failed to initialize export service", "error", err)
		os.Exit(1)
	}
	synthUC := usecase.NewSynthesizeAPIUseCase(store, cfg.UpstreamBaseURL, log)

	// --- Handlers ---
	logsHandler := handler.NewLogsHandler(queryUC, exportUC, synthUC, m, log)

	var proxyHandler *handler.ProxyHandler
	if cfg.UpstreamBaseURL != "" {
		httpClient := &http.Client{
			Transport: capture.NewTransport(nil, store, log, m),
			Timeout:   30 * time.Second,
		}
		creds := upstream.NewStaticCredentialSource(cfg.AuthCredential)
		client, err := upstream.NewClient(cfg.UpstreamBaseURL, httpClient, creds, cfg.ServiceAccount, cfg.AuthCookieName, cfg.AuthRefreshPath, log)
		if err != nil {
			log.Error("failed to initialize upstream client", "error", err)
			os.Exit(1)
		}
		proxyHandler = handler.NewProxyHandler(client, log)
	} else {
		log.Warn("UPSTREAM_BASE_URL not set, backend proxy disabled")
	}

	// --- Server ---
	router := api.NewRouter(cfg, log, logsHandler, proxyHandler)
	chain := middleware.Logging(log)(capture.Middleware(store, log, m)(router))

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      chain,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting server", "addr", server.Addr, "store_backend", cfg.StoreBackend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}

	log.Info("server shut down gracefully")
}

// buildStore selects the record store backend from configuration.
func buildStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (domain.RecordStore, func(), error) {
	switch cfg.StoreBackend {
	case "file":
		s, err := filestore.NewStore(cfg.LogStorePath, log)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil

	case "memory":
		return memory.NewStore(), func() {}, nil

	case "postgres":
		if cfg.PostgresURL == "" {
			return nil, nil, fmt.Errorf("POSTGRES_URL is required for the postgres backend")
		}
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		s, err := pgstore.NewStore(ctx, db, log)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return s, func() { db.Close() }, nil

	case "redis":
		if cfg.RedisAddr == "" {
			return nil, nil, fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisstore.NewStore(client, log), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
