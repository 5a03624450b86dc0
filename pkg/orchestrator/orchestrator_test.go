package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-stationreg/internal/openapi/loader"
	pkgmodel "github.com/goliatone/go-stationreg/pkg/model"
	pkgopenapi "github.com/goliatone/go-stationreg/pkg/openapi"
	"github.com/goliatone/go-stationreg/pkg/orchestrator"
	"github.com/goliatone/go-stationreg/pkg/render"
	"github.com/goliatone/go-stationreg/pkg/schemas"
)

func registrationRequest() orchestrator.Request {
	return orchestrator.Request{
		Source:      pkgopenapi.SourceFromFS(schemas.RegistrationDocument),
		OperationID: schemas.RegistrationOperation,
	}
}

func newFSLoader() pkgopenapi.Loader {
	return loader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(schemas.FS())))
}

func fsOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	loader := orchestrator.WithLoader(newFSLoader())
	return orchestrator.New(append([]orchestrator.Option{loader}, options...)...)
}

func TestOrchestrator_FormFromEmbeddedDocument(t *testing.T) {
	form, err := fsOrchestrator().Form(context.Background(), registrationRequest())
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	names := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		names = append(names, field.Name)
		if !field.Required {
			t.Errorf("field %s should be required", field.Name)
		}
	}
	want := []string{"stationName", "officerName", "contactNumber", "email", "address", "city", "district"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if got := form.UIHints["layout.title"]; got != "Police Station Registration" {
		t.Fatalf("expected ui schema title, got %q", got)
	}
}

func TestOrchestrator_GenerateDefaultRenderer(t *testing.T) {
	output, err := fsOrchestrator().Generate(context.Background(), registrationRequest())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(output)
	for _, fragment := range []string{"<!DOCTYPE html>", "Police Station Registration", `name="district"`} {
		if !strings.Contains(html, fragment) {
			t.Errorf("expected output to contain %q", fragment)
		}
	}
}

func TestOrchestrator_DecoratorsRunAfterUISchema(t *testing.T) {
	var seen string
	decorator := pkgmodel.DecoratorFunc(func(form *pkgmodel.FormModel) error {
		seen = form.UIHints["layout.title"]
		return nil
	})

	if _, err := fsOrchestrator(orchestrator.WithUIDecorators(decorator)).Form(context.Background(), registrationRequest()); err != nil {
		t.Fatalf("form: %v", err)
	}
	if seen != "Police Station Registration" {
		t.Fatalf("decorator saw title %q", seen)
	}
}

func TestOrchestrator_Transformer(t *testing.T) {
	transformer := orchestrator.TransformerFunc(func(_ context.Context, form *pkgmodel.FormModel) error {
		form.Summary = "rewritten"
		return nil
	})
	form, err := fsOrchestrator(orchestrator.WithTransformer(transformer), orchestrator.WithUISchemaFS(nil)).
		Form(context.Background(), registrationRequest())
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if form.Summary != "rewritten" {
		t.Fatalf("transformer not applied, summary %q", form.Summary)
	}
	if _, ok := form.UIHints["layout.title"]; ok {
		t.Fatalf("ui schema should be disabled")
	}
}

func TestOrchestrator_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing operation id", func(t *testing.T) {
		if _, err := fsOrchestrator().Generate(ctx, orchestrator.Request{Source: registrationRequest().Source}); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("unknown operation", func(t *testing.T) {
		req := registrationRequest()
		req.OperationID = "missing"
		_, err := fsOrchestrator().Generate(ctx, req)
		if err == nil || !strings.Contains(err.Error(), `operation "missing" not found`) {
			t.Fatalf("expected not found error, got %v", err)
		}
	})

	t.Run("unknown renderer", func(t *testing.T) {
		req := registrationRequest()
		req.Renderer = "pdf"
		if _, err := fsOrchestrator().Generate(ctx, req); err == nil {
			t.Fatalf("expected renderer error")
		}
	})

	t.Run("no source", func(t *testing.T) {
		if _, err := fsOrchestrator().Generate(ctx, orchestrator.Request{OperationID: "x"}); err == nil {
			t.Fatalf("expected source error")
		}
	})

	t.Run("builder failure", func(t *testing.T) {
		sentinel := errors.New("boom")
		orch := fsOrchestrator(orchestrator.WithModelBuilder(stubBuilder{err: sentinel}))
		if _, err := orch.Generate(ctx, registrationRequest()); !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped builder error, got %v", err)
		}
	})
}

func TestOrchestrator_RendererSelection(t *testing.T) {
	capture := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(capture)

	orch := fsOrchestrator(orchestrator.WithRegistry(registry), orchestrator.WithDefaultRenderer("missing"))
	req := registrationRequest()
	req.RenderOptions = render.RenderOptions{Values: map[string]string{"city": "Kolkata"}}

	output, err := orch.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(output) != schemas.RegistrationOperation {
		t.Fatalf("unexpected output %q", output)
	}
	if capture.options.Values["city"] != "Kolkata" {
		t.Fatalf("render options not forwarded: %+v", capture.options)
	}
	if capture.options.Theme != nil {
		t.Fatalf("theme should be nil without a selector")
	}
}

type stubBuilder struct {
	err error
}

func (s stubBuilder) Build(pkgopenapi.Operation) (pkgmodel.FormModel, error) {
	return pkgmodel.FormModel{}, s.err
}

type captureRenderer struct {
	options render.RenderOptions
}

func (r *captureRenderer) Name() string {
	return "capture"
}

func (r *captureRenderer) ContentType() string {
	return "text/plain"
}

func (r *captureRenderer) Render(_ context.Context, form pkgmodel.FormModel, opts render.RenderOptions) ([]byte, error) {
	r.options = opts
	return []byte(form.OperationID), nil
}
