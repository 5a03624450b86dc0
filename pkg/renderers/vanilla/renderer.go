package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-stationreg/pkg/model"
	"github.com/goliatone/go-stationreg/pkg/render"
	rendertemplate "github.com/goliatone/go-stationreg/pkg/render/template"
	"github.com/goliatone/go-stationreg/pkg/render/template/gotemplate"
)

// Name is the registry key of the vanilla renderer.
const Name = "vanilla"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetsURL        string
	validateURL      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAssetsURL links the stylesheet and runtime script from prefix instead
// of inlining the stylesheet. The runtime script is only emitted when assets
// are served.
func WithAssetsURL(prefix string) Option {
	return func(cfg *config) {
		cfg.assetsURL = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// WithFieldValidationURL sets the blur validation endpoint. The "{field}"
// placeholder is replaced with each field name.
func WithFieldValidationURL(pattern string) Option {
	return func(cfg *config) {
		cfg.validateURL = strings.TrimSpace(pattern)
	}
}

// Renderer produces a server-side HTML page for a form model.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	assetsURL   string
	validateURL string
	stylesheet  string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:   templates,
		assetsURL:   cfg.assetsURL,
		validateURL: cfg.validateURL,
		stylesheet:  defaultStylesheet(),
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the full HTML page for form.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := r.buildPage(form, opts)
	if err != nil {
		return nil, err
	}
	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{"page": page})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
