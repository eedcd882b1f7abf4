package meta

import (
	"os"
	"strings"
	"testing"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	d := NewDocument(1000, 2000, 0, 100, 0, 100, 50, 150)

	if err := Write(dir, d); err != nil {
		t.Fatal(err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got.OriginModelX != d.OriginModelX || got.MaxHeight != d.MaxHeight {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, d)
	}
}

func TestWriteTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	if err := Write(dir, NewDocument(0, 0, 0, 0, 0, 0, 0, 0)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Errorf("expected trailing newline")
	}
}

func TestNewDocumentIsDeterministic(t *testing.T) {
	a := NewDocument(1000, 2000, 0, 100, 0, 100, 50, 150)
	b := NewDocument(1000, 2000, 0, 100, 0, 100, 50, 150)
	if a != b {
		t.Errorf("NewDocument with identical arguments produced different documents: %+v vs %+v", a, b)
	}
}
