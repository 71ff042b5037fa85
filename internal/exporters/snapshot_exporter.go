package exporters

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"logpulse/internal/models"
	"logpulse/internal/shared/svcerrors"
)

var ErrInvalidPath = errors.New("invalid export path")

//go:generate mockgen -source=snapshot_exporter.go -destination=./mocks/snapshot_exporter_mock.go -package=mocks
type SnapshotExporter interface {
	// Export replaces the file at the configured path with s rendered as
	// JSON. The file is a live cell for external renderers: readers always
	// see either the previous snapshot or the new one, never a partial write.
	Export(s models.StatsSnapshot) *svcerrors.ServiceError
}

type snapshotExporter struct {
	path string
}

func NewSnapshotExporter(path string) (SnapshotExporter, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrInvalidPath)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve absolute path: %w", ErrInvalidPath, err)
	}

	return &snapshotExporter{path: absPath}, nil
}

func (e *snapshotExporter) Export(s models.StatsSnapshot) *svcerrors.ServiceError {
	if err := e.write(s); err != nil {
		return errInternalExportFailed(err)
	}
	return nil
}

func (e *snapshotExporter) write(s models.StatsSnapshot) error {
	dir := filepath.Dir(e.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Still write to temp to avoid partial files
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() { _ = tmp.Close(); _ = os.Remove(tmpPath) }()

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s); err != nil {
		return err
	}

	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Atomic replace (POSIX)
	return os.Rename(tmpPath, e.path)
}
