package uischema_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-stationreg/pkg/uischema"
)

func TestLoadFS_Embedded(t *testing.T) {
	store, err := uischema.LoadFS(uischema.EmbeddedFS())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	op, ok := store.Operation("registerStation")
	if !ok {
		t.Fatalf("operation registerStation not found")
	}
	if op.Form.Title != "Police Station Registration" {
		t.Fatalf("title mismatch: %q", op.Form.Title)
	}
	if op.Form.Progress.Step != 1 || op.Form.Progress.Steps != 2 {
		t.Fatalf("progress mismatch: %+v", op.Form.Progress)
	}
	if op.Form.Location.HelpText != "This helps emergency services locate your station" {
		t.Fatalf("location help text mismatch: %q", op.Form.Location.HelpText)
	}
	if got := len(op.Fields); got != 7 {
		t.Fatalf("expected 7 field configs, got %d", got)
	}
	if op.Fields["address"].Section != "address" {
		t.Fatalf("address section mismatch: %+v", op.Fields["address"])
	}
}

func TestLoadFS_JSON(t *testing.T) {
	files := fstest.MapFS{
		"form.json": &fstest.MapFile{Data: []byte(`{"operations":{"op":{"form":{"title":"T"},"fields":{"city":{"label":"Town"}}}}}`)},
		"README.md": &fstest.MapFile{Data: []byte("ignored")},
	}
	store, err := uischema.LoadFS(files)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	op, ok := store.Operation("op")
	if !ok || op.Form.Title != "T" || op.Fields["city"].Label != "Town" {
		t.Fatalf("unexpected operation: %+v", op)
	}
	if op.Source != "form.json" {
		t.Fatalf("source mismatch: %q", op.Source)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]struct {
		files fstest.MapFS
		want  string
	}{
		"duplicate operation": {
			files: fstest.MapFS{
				"a.yaml": &fstest.MapFile{Data: []byte("operations:\n  op: {}\n")},
				"b.yaml": &fstest.MapFile{Data: []byte("operations:\n  op: {}\n")},
			},
			want: "duplicate operation",
		},
		"unknown section": {
			files: fstest.MapFS{
				"a.yaml": &fstest.MapFile{Data: []byte("operations:\n  op:\n    fields:\n      city:\n        section: missing\n")},
			},
			want: "unknown section",
		},
		"empty file": {
			files: fstest.MapFS{"a.yaml": &fstest.MapFile{Data: []byte("  \n")}},
			want:  "is empty",
		},
		"invalid yaml": {
			files: fstest.MapFS{"a.yaml": &fstest.MapFile{Data: []byte("operations: [\n")}},
			want:  "parse a.yaml",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uischema.LoadFS(tc.files)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFS_Nil(t *testing.T) {
	store, err := uischema.LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func fstestFS(yamlDoc string) fstest.MapFS {
	return fstest.MapFS{"ui.yaml": &fstest.MapFile{Data: []byte(yamlDoc)}}
}
