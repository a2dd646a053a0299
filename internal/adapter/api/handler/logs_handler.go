package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/metrics"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/usecase"
)

// LogsHandler serves the developer console: listing, export, artifact
// download, and the synthesized API document.
type LogsHandler struct {
	query   *usecase.QueryLogsUseCase
	export  *usecase.ExportLogsUseCase
	synth   *usecase.SynthesizeAPIUseCase
	metrics *metrics.CaptureMetrics
	logger  *slog.Logger
}

// NewLogsHandler creates a new LogsHandler. Metrics may be nil.
func NewLogsHandler(query *usecase.QueryLogsUseCase, export *usecase.ExportLogsUseCase, synth *usecase.SynthesizeAPIUseCase, m *metrics.CaptureMetrics, logger *slog.Logger) *LogsHandler {
	return &LogsHandler{query: query, export: export, synth: synth, metrics: m, logger: logger}
}

func criteriaFromQuery(r *http.Request) domain.FilterCriteria {
	q := r.URL.Query()
	return domain.FilterCriteria{
		Q:         q.Get("q"),
		Method:    q.Get("method"),
		Status:    q.Get("status"),
		Direction: q.Get("direction"),
		From:      q.Get("from"),
		To:        q.Get("to"),
	}
}

// List handles GET /api/dev/logs.
func (h *LogsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	result, err := h.query.List(r.Context(), criteriaFromQuery(r), page, pageSize)
	if err != nil {
		h.logger.Error("failed to list records", "error", err)
		respondError(w, h.logger, http.StatusInternalServerError, "store_read_failed", "could not read the request log")
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, result)
}

// Export handles POST /api/dev/logs/export.
func (h *LogsHandler) Export(w http.ResponseWriter, r *http.Request) {
	artifact, count, err := h.export.Export(r.Context(), criteriaFromQuery(r))
	if err != nil {
		h.logger.Error("failed to export records", "error", err)
		respondError(w, h.logger, http.StatusInternalServerError, "export_failed", "could not write the export artifact")
		return
	}

	h.metrics.RecordExport()
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"count":    count,
		"artifact": artifact,
	})
}

// Download handles GET /api/dev/logs/export/{name}.
func (h *LogsHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	path, err := h.export.Resolve(name)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidArtifactName):
			respondError(w, h.logger, http.StatusBadRequest, "invalid_artifact_name", "artifact name must be a plain filename")
		case errors.Is(err, usecase.ErrArtifactNotFound):
			respondError(w, h.logger, http.StatusNotFound, "artifact_not_found", "no such export artifact")
		default:
			h.logger.Error("failed to resolve artifact", "error", err)
			respondError(w, h.logger, http.StatusInternalServerError, "export_failed", "could not resolve the artifact")
		}
		return
	}

	f, err := os.Open(path)
	if err != nil {
		respondError(w, h.logger, http.StatusNotFound, "artifact_not_found", "no such export artifact")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Warn("artifact download interrupted", "error", err, "artifact", name)
	}
}

// OpenAPIDoc handles GET /api/dev/openapi.json.
func (h *LogsHandler) OpenAPIDoc(w http.ResponseWriter, r *http.Request) {
	scope := usecase.Scope(r.URL.Query().Get("scope"))
	switch scope {
	case "":
		scope = usecase.ScopeAll
	case usecase.ScopeAll, usecase.ScopeBackend, usecase.ScopeInternal:
	default:
		respondError(w, h.logger, http.StatusBadRequest, "invalid_scope", "scope must be one of all, backend, internal")
		return
	}

	doc, err := h.synth.Synthesize(r.Context(), scope)
	if err != nil {
		h.logger.Error("failed to synthesize API document", "error", err)
		respondError(w, h.logger, http.StatusInternalServerError, "synthesis_failed", "could not synthesize the API document")
		return
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		h.logger.Error("failed to marshal API document", "error", err)
		respondError(w, h.logger, http.StatusInternalServerError, "synthesis_failed", "could not serialize the API document")
		return
	}

	h.metrics.RecordSynthesis()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
