package capture

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/metrics"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
)

// responseRecorder passes writes through to the client while keeping the
// status code and a bounded copy of the body for the record.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *responseRecorder) WriteHeader(code int) {
	if rw.statusCode == 0 {
		rw.statusCode = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseRecorder) Write(p []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	if rw.body.Len() <= maxBodyBytes {
		rw.body.Write(p)
	}
	return rw.ResponseWriter.Write(p)
}

// Middleware wraps a handler so that exactly one record is appended per
// request, whether the handler succeeds, panics, or the client goes away.
// Capture is observational: it never alters the handler's error semantics,
// and a failed append only logs.
func Middleware(store domain.RecordStore, logger *slog.Logger, m *metrics.CaptureMetrics) func(http.Handler) http.Handler {
	log := logger.With("component", "capture_middleware")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := domain.Record{
				ID:             uuid.NewString(),
				Timestamp:      start.UTC(),
				Direction:      domain.DirectionIncoming,
				Method:         r.Method,
				URL:            r.URL.RequestURI(),
				RequestHeaders: redactHeaders(r.Header),
			}

			if r.Body != nil {
				raw, err := io.ReadAll(r.Body)
				if err == nil {
					r.Body = io.NopCloser(bytes.NewReader(raw))
					rec.RequestBody = captureBody(raw, r.Header.Get("Content-Type"))
				} else {
					rec.RequestBody = map[string]any{
						"unparsed":    true,
						"contentType": r.Header.Get("Content-Type"),
					}
				}
			}

			rw := &responseRecorder{ResponseWriter: w}

			defer func() {
				rec.DurationMs = time.Since(start).Milliseconds()

				if p := recover(); p != nil {
					// The handler failed before producing a response.
					// Record the failure, then let the panic continue
					// unchanged.
					rec.Status = 0
					rec.Error = fmt.Sprint(p)
					appendRecord(r.Context(), store, log, m, rec)
					panic(p)
				}

				rec.Status = rw.statusCode
				if rec.Status == 0 {
					// Handler returned without writing; net/http sends 200.
					rec.Status = http.StatusOK
				}
				rec.ResponseHeaders = redactHeaders(rw.Header())
				rec.ResponseBody = captureBody(rw.body.Bytes(), rw.Header().Get("Content-Type"))
				if err := r.Context().Err(); err != nil {
					rec.Error = "request aborted: " + err.Error()
				}
				appendRecord(r.Context(), store, log, m, rec)
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

// appendRecord persists best-effort. The append context is detached from the
// request so an aborted request still gets logged.
func appendRecord(ctx context.Context, store domain.RecordStore, log *slog.Logger, m *metrics.CaptureMetrics, rec domain.Record) {
	outcome := "ok"
	if rec.Error != "" {
		outcome = "error"
	}
	m.RecordCaptured(string(rec.Direction), outcome)

	if err := store.Append(context.WithoutCancel(ctx), rec); err != nil {
		m.RecordAppendError()
		log.Error("failed to append capture record", "error", err, "record_id", rec.ID)
	}
}
