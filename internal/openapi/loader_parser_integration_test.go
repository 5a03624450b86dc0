package openapi_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	stationreg "github.com/goliatone/go-stationreg"
	pkgopenapi "github.com/goliatone/go-stationreg/pkg/openapi"
	"github.com/goliatone/go-stationreg/pkg/schemas"
)

func TestLoaderParserIntegration(t *testing.T) {
	ctx := context.Background()

	tmp := t.TempDir()
	filePath := filepath.Join(tmp, "station-registration.json")
	if err := os.WriteFile(filePath, schemas.Registration(), 0o644); err != nil {
		t.Fatalf("write temp fixture: %v", err)
	}

	parser := stationreg.NewParser()

	// File source
	docFile, err := stationreg.NewLoader().Load(ctx, pkgopenapi.SourceFromFile(filePath))
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	fromFile, err := parser.Operations(ctx, docFile)
	if err != nil {
		t.Fatalf("parse file document: %v", err)
	}

	// Embedded source
	loaderFS := stationreg.NewLoader(pkgopenapi.WithFileSystem(schemas.FS()))
	docFS, err := loaderFS.Load(ctx, pkgopenapi.SourceFromFS(schemas.RegistrationDocument))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	fromFS, err := parser.Operations(ctx, docFS)
	if err != nil {
		t.Fatalf("parse fs document: %v", err)
	}

	op, ok := fromFS[schemas.RegistrationOperation]
	if !ok {
		t.Fatalf("expected %s operation, got %v", schemas.RegistrationOperation, fromFS)
	}
	if op.Method != "POST" || op.Path != "/registrations/stations/step-1" {
		t.Fatalf("unexpected operation route %s %s", op.Method, op.Path)
	}
	if diff := cmp.Diff(fromFS, fromFile); diff != "" {
		t.Fatalf("file and fs sources disagree (-fs +file):\n%s", diff)
	}
}
