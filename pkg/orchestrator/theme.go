package orchestrator

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-stationreg/pkg/render"
)

// CSSVarPrefix is prepended to token names when deriving custom properties.
const CSSVarPrefix = "--sr-"

// DefaultThemeName names the built-in brand manifest.
const DefaultThemeName = "emergensync"

// DefaultTheme returns the built-in brand manifest with its dark and
// high-contrast variants.
func DefaultTheme() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-primary":   "#0052CC",
			"color-danger":    "#DC2625",
			"color-muted":     "#666666",
			"color-text":      "#1A1A1A",
			"color-border":    "#E0E0E0",
			"color-page":      "#F5F7FA",
			"color-surface":   "#FFFFFF",
			"color-highlight": "#F0F5FF",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"color-primary":   "#4C9AFF",
					"color-danger":    "#F87171",
					"color-muted":     "#A3A3A3",
					"color-text":      "#F1F5F9",
					"color-border":    "#334155",
					"color-page":      "#0F172A",
					"color-surface":   "#1E293B",
					"color-highlight": "#1E3A8A",
				},
			},
			"high-contrast": {
				Tokens: map[string]string{
					"color-primary": "#003A99",
					"color-muted":   "#333333",
					"color-text":    "#000000",
					"color-border":  "#000000",
				},
			},
		},
	}
}

// ManifestSelector picks among registered go-theme manifests, falling back to
// a default theme and variant when a request leaves them empty.
type ManifestSelector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector registers manifests and records the defaults. The
// first manifest becomes the default theme when defaultTheme is empty.
func NewManifestSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{
		manifests:      make(map[string]*theme.Manifest),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	if s.defaultTheme != "" {
		if _, err := s.Select(s.defaultTheme, s.defaultVariant); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds manifest. Duplicate names return an error.
func (s *ManifestSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil {
		return fmt.Errorf("orchestrator: theme manifest is required")
	}
	name := strings.TrimSpace(manifest.Name)
	if name == "" {
		return fmt.Errorf("orchestrator: theme name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[name]; exists {
		return fmt.Errorf("orchestrator: theme %q already registered", name)
	}
	s.manifests[name] = manifest
	if s.defaultTheme == "" {
		s.defaultTheme = name
	}
	return nil
}

// Select resolves name and variant into a selection. Unknown themes and
// variants are errors.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	variant = strings.TrimSpace(variant)
	if name == "" {
		name = s.defaultTheme
		if variant == "" {
			variant = s.defaultVariant
		}
	}

	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("orchestrator: theme %q not registered", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("orchestrator: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Names lists registered themes in sorted order.
func (s *ManifestSelector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeConfig flattens a selection into the renderer-facing config. Variant
// tokens and assets override the base manifest; every token also becomes a
// CSS custom property.
func ThemeConfig(selection *theme.Selection) *render.ThemeConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := mergeStrings(nil, manifest.Tokens)
	prefix := manifest.Assets.Prefix
	files := mergeStrings(nil, manifest.Assets.Files)
	if selection.Variant != "" {
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			tokens = mergeStrings(tokens, variant.Tokens)
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
			files = mergeStrings(files, variant.Assets.Files)
		}
	}

	cfg := &render.ThemeConfig{
		Name:    selection.Theme,
		Variant: selection.Variant,
		Tokens:  tokens,
	}
	if len(tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cfg.CSSVars[CSSVarPrefix+key] = value
		}
	}
	if len(files) > 0 {
		cfg.Assets = make(map[string]string, len(files))
		for key, file := range files {
			cfg.Assets[key] = assetURL(prefix, file)
		}
	}
	return cfg
}

func (o *Orchestrator) resolveTheme(name, variant string) (*render.ThemeConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return ThemeConfig(selection), nil
}

func assetURL(prefix, file string) string {
	if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
		return file
	}
	return path.Join(prefix, file)
}

func mergeStrings(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
