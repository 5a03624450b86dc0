package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-stationreg/pkg/openapi"
)

func TestLoadFromFS(t *testing.T) {
	files := fstest.MapFS{
		"api/registration.json": &fstest.MapFile{Data: []byte(`{"openapi":"3.0.3"}`)},
	}
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("api/registration.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `{"openapi":"3.0.3"}` {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Location() != "api/registration.json" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoadFromFSWithoutFilesystem(t *testing.T) {
	l := New(pkgopenapi.NewLoaderOptions())
	if _, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("x.json")); err == nil {
		t.Fatalf("expected error when no filesystem is configured")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := New(pkgopenapi.NewLoaderOptions())
	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `{}` {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(fstest.MapFS{})))
	if _, err := l.Load(ctx, pkgopenapi.SourceFromFS("x.json")); err == nil {
		t.Fatalf("expected context error")
	}
}
