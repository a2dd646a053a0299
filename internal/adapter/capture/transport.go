package capture

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/metrics"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
)

// Transport is an http.RoundTripper that records every outgoing exchange.
// Transport errors are recorded with no status and returned unchanged.
type Transport struct {
	Base    http.RoundTripper
	Store   domain.RecordStore
	Logger  *slog.Logger
	Metrics *metrics.CaptureMetrics
}

// NewTransport wraps base (http.DefaultTransport when nil).
func NewTransport(base http.RoundTripper, store domain.RecordStore, logger *slog.Logger, m *metrics.CaptureMetrics) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		Base:    base,
		Store:   store,
		Logger:  logger.With("component", "capture_transport"),
		Metrics: m,
	}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	rec := domain.Record{
		ID:             uuid.NewString(),
		Timestamp:      start.UTC(),
		Direction:      domain.DirectionOutgoing,
		Method:         req.Method,
		URL:            req.URL.String(),
		RequestHeaders: redactHeaders(req.Header),
	}

	if req.Body != nil {
		raw, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err == nil {
			req.Body = io.NopCloser(bytes.NewReader(raw))
			rec.RequestBody = captureBody(raw, req.Header.Get("Content-Type"))
		} else {
			rec.RequestBody = map[string]any{
				"unparsed":    true,
				"contentType": req.Header.Get("Content-Type"),
			}
		}
	}

	resp, err := t.Base.RoundTrip(req)
	rec.DurationMs = time.Since(start).Milliseconds()

	if err != nil {
		rec.Error = err.Error()
		appendRecord(req.Context(), t.Store, t.Logger, t.Metrics, rec)
		return nil, err
	}

	rec.Status = resp.StatusCode
	rec.ResponseHeaders = redactHeaders(resp.Header)
	if resp.Body != nil {
		raw, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr == nil {
			resp.Body = io.NopCloser(bytes.NewReader(raw))
			rec.ResponseBody = captureBody(raw, resp.Header.Get("Content-Type"))
		} else {
			resp.Body = io.NopCloser(bytes.NewReader(nil))
			rec.ResponseBody = map[string]any{
				"unparsed":    true,
				"contentType": resp.Header.Get("Content-Type"),
			}
		}
	}

	appendRecord(req.Context(), t.Store, t.Logger, t.Metrics, rec)
	return resp, nil
}
