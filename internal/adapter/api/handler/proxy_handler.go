package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/upstream"
)

// proxyPrefix is stripped from console paths before forwarding upstream.
const proxyPrefix = "/api/backend"

// ProxyHandler forwards dashboard requests to the logistics backend through
// the upstream client. Proxied traffic is captured by the client's
// transport, not here.
type ProxyHandler struct {
	client *upstream.Client
	logger *slog.Logger
}

// NewProxyHandler creates a new ProxyHandler.
func NewProxyHandler(client *upstream.Client, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{client: client, logger: logger}
}

func (h *ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid_request_body", "could not read request body")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, proxyPrefix)
	if path == "" {
		path = "/"
	}

	resp, err := h.client.Forward(r.Context(), r.Method, path, r.URL.RawQuery, body, r.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("upstream request failed", "error", err, "path", path)
		respondError(w, h.logger, http.StatusBadGateway, "upstream_unreachable", "the backend did not respond")
		return
	}
	defer resp.Body.Close()

	for name, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Warn("proxy response interrupted", "error", err, "path", path)
	}
}
