package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
)

var (
	// ErrInvalidArtifactName rejects names carrying directory components.
	ErrInvalidArtifactName = errors.New("invalid artifact name")
	// ErrArtifactNotFound reports an unknown artifact.
	ErrArtifactNotFound = errors.New("artifact not found")
)

// ExportLogsUseCase materializes filtered record sets as downloadable JSON
// artifacts in a dedicated directory.
type ExportLogsUseCase struct {
	store  domain.RecordStore
	dir    string
	logger *slog.Logger
	seq    atomic.Uint64
}

// NewExportLogsUseCase creates the artifact directory if needed.
func NewExportLogsUseCase(store domain.RecordStore, dir string, logger *slog.Logger) (*ExportLogsUseCase, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}
	return &ExportLogsUseCase{store: store, dir: dir, logger: logger.With("component", "export")}, nil
}

// Export writes the filtered set as indented JSON and returns the artifact
// name and the number of records it holds. Names are timestamp-derived with
// a sequence suffix so rapid successive exports never collide.
func (uc *ExportLogsUseCase) Export(ctx context.Context, criteria domain.FilterCriteria) (string, int, error) {
	records, err := uc.store.ReadAll(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read record store: %w", err)
	}

	matched := FilterRecords(records, criteria)
	if matched == nil {
		matched = []domain.Record{}
	}

	data, err := json.MarshalIndent(matched, "", "  ")
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal export: %w", err)
	}

	name := uc.artifactName(time.Now().UTC())
	path := filepath.Join(uc.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", 0, fmt.Errorf("failed to write export artifact: %w", err)
	}

	uc.logger.Info("export artifact written", "artifact", name, "records", len(matched))
	return name, len(matched), nil
}

// Resolve maps an artifact name to its on-disk path. Only plain filenames
// are accepted: anything with directory components is rejected before the
// filesystem is consulted.
func (uc *ExportLogsUseCase) Resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", ErrInvalidArtifactName
	}
	path := filepath.Join(uc.dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", ErrArtifactNotFound
	}
	return path, nil
}

func (uc *ExportLogsUseCase) artifactName(t time.Time) string {
	// Colons never reach the filesystem.
	stamp := strings.ReplaceAll(t.Format("2006-01-02T15:04:05.000Z"), ":", "-")
	return fmt.Sprintf("logs-export-%s-%d.json", stamp, uc.seq.Add(1))
}
