package render

import "github.com/goliatone/go-stationreg/pkg/registration"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model pipeline.
type RenderOptions struct {
	// Action overrides the form model endpoint as the submit target.
	Action string
	// Values pre-populates controls keyed by field name.
	Values map[string]string
	// Errors surfaces field validation feedback keyed by field name.
	Errors map[string][]string
	// FormErrors are messages that belong to no single field.
	FormErrors []string
	// Hidden emits extra hidden inputs (CSRF tokens, session hints).
	Hidden map[string]string
	// Location is the state of the location picker placeholder.
	Location LocationOptions
	// Theme carries resolved design tokens and asset hints.
	Theme *ThemeConfig
}

// LocationOptions mirrors registration.LocationPicker for templates.
type LocationOptions struct {
	Marked      bool
	Coordinates string
	// ToggleAction is where the picker posts; empty renders it inert.
	ToggleAction string
}

// LocationFromPicker converts the engine's picker into render options.
func LocationFromPicker(picker *registration.LocationPicker, toggleAction string) LocationOptions {
	opts := LocationOptions{ToggleAction: toggleAction}
	if picker == nil {
		return opts
	}
	if coords, ok := picker.Coordinates(); ok {
		opts.Marked = true
		opts.Coordinates = coords.String()
	}
	return opts
}

// ThemeConfig is the renderer-facing view of a selected theme.
type ThemeConfig struct {
	Name    string
	Variant string
	Tokens  map[string]string
	// CSSVars maps tokens onto custom property names (e.g. "--color-primary").
	CSSVars map[string]string
	// Assets resolves logical asset names into URLs.
	Assets map[string]string
}

// OptionsFromForm seeds RenderOptions from an engine form: its values and its
// current error set.
func OptionsFromForm(form *registration.Form) RenderOptions {
	if form == nil {
		return RenderOptions{}
	}
	return RenderOptions{
		Values: form.Values().Map(),
		Errors: form.Errors().Messages(),
	}
}
