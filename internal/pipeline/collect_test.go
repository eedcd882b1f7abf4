package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCollectTIFFsFromDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.tif", "b.TIFF", "readme.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := CollectTIFFs(dir)
	if err != nil {
		t.Fatalf("CollectTIFFs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tif files, got %v", got)
	}
}

func TestCollectTIFFsSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dem.tif")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := CollectTIFFs(path)
	if err != nil {
		t.Fatalf("CollectTIFFs: %v", err)
	}
	if len(got) != 1 || got[0] != path {
		t.Fatalf("expected [%s], got %v", path, got)
	}
}

func TestCollectTIFFsEmptyDirectoryIsConfigError(t *testing.T) {
	dir := t.TempDir()
	_, err := CollectTIFFs(dir)
	if err == nil {
		t.Fatal("expected an error for an empty directory")
	}
	pe, ok := err.(*Error)
	if !ok || pe.Kind != ConfigError {
		t.Fatalf("expected ConfigError, got %#v", err)
	}
}

func TestCollectTIFFsMissingPathIsIoError(t *testing.T) {
	_, err := CollectTIFFs(filepath.Join(t.TempDir(), "does-not-exist"))
	pe, ok := err.(*Error)
	if !ok || pe.Kind != IoError {
		t.Fatalf("expected IoError, got %#v", err)
	}
}
