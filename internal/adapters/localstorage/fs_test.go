package localstorage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/woxyben19-maker/emlak/internal/adapters/localstorage"
)

func TestSaveExport(t *testing.T) {
	dir := t.TempDir()
	store := localstorage.NewExportStore(filepath.Join(dir, "exports"))

	path, err := store.SaveExport(context.Background(), "emlak_listesi_J1.xlsx", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("SaveExport() error: %v", err)
	}
	if filepath.Base(path) != "emlak_listesi_J1.xlsx" {
		t.Fatalf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("content = %q", data)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("stream interrupted")
}

func TestSaveExportRemovesPartialFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	store := localstorage.NewExportStore(dir)

	_, err := store.SaveExport(context.Background(), "emlak_listesi_J1.pdf", failingReader{})
	if err == nil {
		t.Fatal("expected error from interrupted stream")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "emlak_listesi_J1.pdf")); !os.IsNotExist(statErr) {
		t.Fatal("partial file left behind after failed save")
	}
}
