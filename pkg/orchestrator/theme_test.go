package orchestrator_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-stationreg/pkg/orchestrator"
	"github.com/goliatone/go-stationreg/pkg/render"
)

func TestManifestSelector_Defaults(t *testing.T) {
	selector, err := orchestrator.NewManifestSelector("", "", orchestrator.DefaultTheme())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != orchestrator.DefaultThemeName || selection.Variant != "" {
		t.Fatalf("unexpected selection %s/%s", selection.Theme, selection.Variant)
	}

	if _, err := selector.Select("missing", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
	if _, err := selector.Select(orchestrator.DefaultThemeName, "sepia"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if err := selector.Register(orchestrator.DefaultTheme()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if diff := cmp.Diff([]string{orchestrator.DefaultThemeName}, selector.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestManifestSelector_RejectsUnknownDefaultVariant(t *testing.T) {
	if _, err := orchestrator.NewManifestSelector(orchestrator.DefaultThemeName, "sepia", orchestrator.DefaultTheme()); err == nil {
		t.Fatalf("expected error for unknown default variant")
	}
}

func TestThemeConfig_MergesVariant(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-primary": "#123456",
			"color-muted":   "#777777",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"color-primary": "#654321",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"stylesheet": "theme.dark.css",
					},
				},
			},
		},
	}

	cfg := orchestrator.ThemeConfig(&theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest})
	want := &render.ThemeConfig{
		Name:    "acme",
		Variant: "dark",
		Tokens: map[string]string{
			"color-primary": "#654321",
			"color-muted":   "#777777",
		},
		CSSVars: map[string]string{
			"--sr-color-primary": "#654321",
			"--sr-color-muted":   "#777777",
		},
		Assets: map[string]string{
			"stylesheet": "/assets/themes/acme/theme.dark.css",
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("theme config mismatch (-want +got):\n%s", diff)
	}

	if orchestrator.ThemeConfig(nil) != nil {
		t.Fatalf("nil selection should produce nil config")
	}
}

func TestOrchestrator_PassesThemeToRenderer(t *testing.T) {
	selector, err := orchestrator.NewManifestSelector(orchestrator.DefaultThemeName, "", orchestrator.DefaultTheme())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	capture := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(capture)

	req := registrationRequest()
	req.ThemeVariant = "dark"
	orch := fsOrchestrator(orchestrator.WithRegistry(registry), orchestrator.WithThemeSelector(selector))
	if _, err := orch.Generate(context.Background(), req); err != nil {
		t.Fatalf("generate: %v", err)
	}

	cfg := capture.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Name != orchestrator.DefaultThemeName || cfg.Variant != "dark" {
		t.Fatalf("unexpected theme %s/%s", cfg.Name, cfg.Variant)
	}
	if got := cfg.CSSVars["--sr-color-page"]; got != "#0F172A" {
		t.Fatalf("expected dark page colour, got %q", got)
	}
}

func TestOrchestrator_ThemedHTML(t *testing.T) {
	selector, err := orchestrator.NewManifestSelector("", "", orchestrator.DefaultTheme())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	req := registrationRequest()
	req.ThemeVariant = "high-contrast"

	output, err := fsOrchestrator(orchestrator.WithThemeSelector(selector)).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(output)
	if !strings.Contains(html, "--sr-color-text: #000000;") {
		t.Fatalf("expected high contrast variables in output")
	}
	if !strings.Contains(html, `data-theme-variant="high-contrast"`) {
		t.Fatalf("expected variant marker in output")
	}
}

func TestOrchestrator_ThemeSelectionError(t *testing.T) {
	selector, err := orchestrator.NewManifestSelector("", "", orchestrator.DefaultTheme())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	req := registrationRequest()
	req.ThemeName = "unknown"
	if _, err := fsOrchestrator(orchestrator.WithThemeSelector(selector)).Generate(context.Background(), req); err == nil {
		t.Fatalf("expected theme selection error")
	}
}
