package api

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/api/handler"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/api/middleware"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/pkg/config"
)

// NewRouter wires the developer console, the backend proxy, and the
// operational endpoints. Path patterns require Go 1.22+.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	logsHandler *handler.LogsHandler,
	proxyHandler *handler.ProxyHandler,
) http.Handler {
	mux := http.NewServeMux()

	rateLimit := middleware.RateLimit(cfg.ConsoleRateRPS, cfg.ConsoleRateBurst, logger)

	// Developer console
	mux.Handle("GET /api/dev/logs", rateLimit(http.HandlerFunc(logsHandler.List)))
	mux.Handle("POST /api/dev/logs/export", rateLimit(http.HandlerFunc(logsHandler.Export)))
	mux.Handle("GET /api/dev/logs/export/{name}", rateLimit(http.HandlerFunc(logsHandler.Download)))
	mux.Handle("GET /api/dev/openapi.json", rateLimit(http.HandlerFunc(logsHandler.OpenAPIDoc)))

	// Backend proxy
	if proxyHandler != nil {
		mux.Handle("/api/backend/", proxyHandler)
	}

	// Operational endpoints
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return mux
}
