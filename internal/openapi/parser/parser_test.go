package parser

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-stationreg/pkg/openapi"
)

const fixture = `{
  "openapi": "3.0.3",
  "info": {"title": "fixture", "version": "1.0.0"},
  "paths": {
    "/stations": {
      "post": {
        "operationId": "createStation",
        "summary": "Create station",
        "x-formgen": {"submitLabel": "Next"},
        "requestBody": {
          "content": {
            "application/x-www-form-urlencoded": {
              "schema": {"$ref": "#/components/schemas/Station"}
            }
          }
        },
        "responses": {"303": {"description": "see other"}}
      }
    }
  },
  "components": {
    "schemas": {
      "Station": {
        "type": "object",
        "required": ["stationName", "district"],
        "properties": {
          "stationName": {
            "type": "string",
            "minLength": 1,
            "maxLength": 120,
            "x-formgen": {"label": "Police Station Name", "order": 1}
          },
          "district": {
            "type": "string",
            "enum": ["Kolkata", "Howrah"],
            "x-formgen-widget": "select"
          }
        }
      }
    }
  }
}`

func document(t *testing.T, raw string) pkgopenapi.Document {
	t.Helper()
	return pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("fixture.json"), []byte(raw))
}

func TestOperationsExtractsRequestBody(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions())
	ops, err := p.Operations(context.Background(), document(t, fixture))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	op, ok := ops["createStation"]
	if !ok {
		t.Fatalf("createStation not extracted: %v", ops)
	}
	if op.Method != "POST" || op.Path != "/stations" {
		t.Fatalf("unexpected method/path %s %s", op.Method, op.Path)
	}
	if op.ContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", op.ContentType)
	}
	if diff := cmp.Diff(map[string]any{"x-formgen": map[string]any{"submitLabel": "Next"}}, op.Extensions); diff != "" {
		t.Fatalf("operation extensions mismatch (-want +got):\n%s", diff)
	}

	body := op.RequestBody
	if body.Ref != "#/components/schemas/Station" {
		t.Fatalf("unexpected ref %q", body.Ref)
	}
	if diff := cmp.Diff([]string{"stationName", "district"}, body.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	name := body.Properties["stationName"]
	if name.MinLength == nil || *name.MinLength != 1 {
		t.Fatalf("expected minLength 1, got %v", name.MinLength)
	}
	if name.MaxLength == nil || *name.MaxLength != 120 {
		t.Fatalf("expected maxLength 120, got %v", name.MaxLength)
	}
	wantExt := map[string]any{"x-formgen": map[string]any{"label": "Police Station Name", "order": float64(1)}}
	if diff := cmp.Diff(wantExt, name.Extensions); diff != "" {
		t.Fatalf("property extensions mismatch (-want +got):\n%s", diff)
	}

	district := body.Properties["district"]
	if diff := cmp.Diff([]any{"Kolkata", "Howrah"}, district.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	if district.Extensions["x-formgen-widget"] != "select" {
		t.Fatalf("expected widget extension, got %v", district.Extensions)
	}
}

func TestOperationsRejectsEmptyPaths(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions(pkgopenapi.WithValidation(false)))
	raw := `{"openapi":"3.0.3","info":{"title":"x","version":"1"},"paths":{}}`
	if _, err := p.Operations(context.Background(), document(t, raw)); err == nil {
		t.Fatalf("expected error for document without paths")
	}
}

func TestOperationsValidatesDocument(t *testing.T) {
	raw := `{"openapi":"3.0.3","paths":{"/x":{"post":{"operationId":"x","responses":{"200":{"description":"ok"}}}}}}`

	strict := New(pkgopenapi.NewParserOptions())
	if _, err := strict.Operations(context.Background(), document(t, raw)); err == nil {
		t.Fatalf("expected validation error for missing info block")
	}

	lenient := New(pkgopenapi.NewParserOptions(pkgopenapi.WithValidation(false)))
	ops, err := lenient.Operations(context.Background(), document(t, raw))
	if err != nil {
		t.Fatalf("lenient operations: %v", err)
	}
	if _, ok := ops["x"]; !ok {
		t.Fatalf("expected operation x, got %v", ops)
	}
}

func TestOperationsFallsBackToMethodPathID(t *testing.T) {
	raw := `{"openapi":"3.0.3","info":{"title":"x","version":"1"},"paths":{"/y":{"post":{"responses":{"200":{"description":"ok"}}}}}}`
	p := New(pkgopenapi.NewParserOptions())
	ops, err := p.Operations(context.Background(), document(t, raw))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if _, ok := ops["post:/y"]; !ok {
		t.Fatalf("expected synthesized id, got %v", ops)
	}
}
