package localstorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ExportStore implements ports.ExportSink on the local filesystem.
type ExportStore struct {
	BaseDir string
}

// NewExportStore creates an ExportStore rooted at baseDir.
func NewExportStore(baseDir string) *ExportStore {
	return &ExportStore{BaseDir: baseDir}
}

// SaveExport writes the artifact under baseDir with the given name. A
// partially written file is removed when the copy fails, so a failed export
// never leaves a truncated artifact behind.
func (s *ExportStore) SaveExport(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.BaseDir, 0755); err != nil {
		return "", fmt.Errorf("create export directory %s: %w", s.BaseDir, err)
	}

	path := filepath.Join(s.BaseDir, filename)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file %s: %w", path, err)
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("write export file %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close export file %s: %w", path, err)
	}
	return path, nil
}
