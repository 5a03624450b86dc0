// Package stationreg renders and serves the police station registration
// form (step 1 of 2) from its embedded OpenAPI document.
package stationreg

import (
	"context"

	theme "github.com/goliatone/go-theme"

	pkgopenapi "github.com/goliatone/go-stationreg/pkg/openapi"
	"github.com/goliatone/go-stationreg/pkg/orchestrator"
	"github.com/goliatone/go-stationreg/pkg/render"
	"github.com/goliatone/go-stationreg/pkg/schemas"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RegistrationOrchestrator returns an orchestrator that loads documents from
// the embedded schema bundle.
func RegistrationOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	loader := orchestrator.WithLoader(NewLoader(pkgopenapi.WithFileSystem(schemas.FS())))
	return orchestrator.New(append([]orchestrator.Option{loader}, options...)...)
}

// RegistrationRequest targets the embedded step 1 operation.
func RegistrationRequest() orchestrator.Request {
	return orchestrator.Request{
		Source:      pkgopenapi.SourceFromFS(schemas.RegistrationDocument),
		OperationID: schemas.RegistrationOperation,
	}
}

// GenerateHTML loads the OpenAPI source, builds a form model for the requested
// operation, and renders it using the named renderer.
func GenerateHTML(ctx context.Context, source pkgopenapi.Source, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}

// GenerateRegistrationHTML renders the embedded step 1 form with the default
// vanilla renderer.
func GenerateRegistrationHTML(ctx context.Context, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	req := RegistrationRequest()
	req.RenderOptions = opts
	return RegistrationOrchestrator(options...).Generate(ctx, req)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// DefaultThemeSelector registers the built-in brand manifest.
func DefaultThemeSelector(defaultVariant string) (*orchestrator.ManifestSelector, error) {
	return orchestrator.NewManifestSelector(orchestrator.DefaultThemeName, defaultVariant, orchestrator.DefaultTheme())
}
