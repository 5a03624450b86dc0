package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-stationreg/pkg/model"
	"github.com/goliatone/go-stationreg/pkg/registration"
	"github.com/goliatone/go-stationreg/pkg/render"
)

// Name identifies the renderer in registries.
const Name = "tui"

// Renderer runs a terminal intake session against a registration form and
// serializes the validated values.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	maxAttempts       int
	next              registration.NextStep
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every field of form, committing each answer and
// re-prompting while it fails validation. The advance gate then re-checks
// all values before anything is serialized.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	state := NewState(opts.Values, opts.Errors)
	if opts.Location.Marked {
		state.Form().Location().Mark()
	}

	if title := form.UIHints["layout.title"]; title != "" {
		if err := r.info(ctx, title); err != nil {
			return nil, err
		}
	}

	for _, field := range form.Fields {
		key, err := registration.ParseField(field.Name)
		if err != nil {
			return nil, fmt.Errorf("tui: field %q: %w", field.Name, err)
		}
		if err := r.promptField(ctx, field, key, state); err != nil {
			return nil, err
		}
	}

	if locationEnabled(form, opts) {
		if err := r.promptLocation(ctx, form, state); err != nil {
			return nil, err
		}
	}

	outcome, err := r.advance(ctx, state.Form())
	if err != nil {
		return nil, err
	}
	if !outcome.Advance {
		return nil, fmt.Errorf("%w: %s", ErrIncomplete, summarize(outcome.Errors))
	}

	values := state.Values()
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(form, values, state.Form().Location())
}

func (r *Renderer) advance(ctx context.Context, form *registration.Form) (registration.Outcome, error) {
	if r.next == nil {
		return form.AttemptAdvance(), nil
	}
	outcome, err := form.Advance(ctx, r.next)
	if err != nil {
		return outcome, fmt.Errorf("tui: %w", err)
	}
	return outcome, nil
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, key registration.Field, state *State) error {
	for _, msg := range state.ErrorsFor(field.Name) {
		if err := r.fail(ctx, msg); err != nil {
			return err
		}
	}

	form := state.Form()
	for {
		if attempt := state.Attempt(key); r.maxAttempts > 0 && attempt > r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
		}

		response, err := r.ask(ctx, field, form.Value(key))
		if err != nil {
			return err
		}
		if err := form.SetValue(key, response); err != nil {
			return fmt.Errorf("tui: set %s: %w", field.Name, err)
		}
		fieldErr, err := form.Commit(key)
		if err != nil {
			return fmt.Errorf("tui: commit %s: %w", field.Name, err)
		}
		state.ClearErrors(field.Name)
		if fieldErr == nil {
			return nil
		}
		if err := r.fail(ctx, fieldErr.Message); err != nil {
			return err
		}
	}
}

func (r *Renderer) ask(ctx context.Context, field model.Field, current string) (string, error) {
	label := displayLabel(field)
	help := displayHelp(field)

	switch field.Widget() {
	case "select":
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      field.Enum,
			DefaultIndex: indexOf(field.Enum, current),
			Help:         help,
			PageSize:     10,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Enum) {
			return "", nil
		}
		return field.Enum[idx], nil
	case "textarea":
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: current,
			Help:    help,
		})
	default:
		return r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: current,
			Help:    help,
		})
	}
}

func (r *Renderer) promptLocation(ctx context.Context, form model.FormModel, state *State) error {
	picker := state.Form().Location()
	_, marked := picker.Coordinates()

	message := firstNonEmpty(form.UIHints["location.prompt"], form.UIHints["location.label"], "Mark station location?")
	answer, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: message,
		Default: marked,
		Help:    form.UIHints["location.helpText"],
	})
	if err != nil {
		return err
	}
	if !answer {
		picker.Clear()
		return nil
	}

	picker.Mark()
	coords, _ := picker.Coordinates()
	return r.info(ctx, fmt.Sprintf("%s (%s)", firstNonEmpty(form.UIHints["location.markedText"], "Location marked"), coords))
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) fail(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func (r *Renderer) serialize(form model.FormModel, values map[string]string, picker *registration.LocationPicker) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for name, value := range values {
			encoded.Set(name, value)
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(form, values, picker)), nil
	default:
		return json.Marshal(values)
	}
}

func prettyPrint(form model.FormModel, values map[string]string, picker *registration.LocationPicker) string {
	var b strings.Builder
	for _, field := range form.Fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", displayLabel(field), value)
	}
	if coords, ok := picker.Coordinates(); ok {
		fmt.Fprintf(&b, "%s: %s\n", firstNonEmpty(form.UIHints["location.label"], "Location"), coords)
	}
	return b.String()
}

func summarize(errs registration.FieldErrors) string {
	list := errs.List()
	parts := make([]string, 0, len(list))
	for _, fe := range list {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

func locationEnabled(form model.FormModel, opts render.RenderOptions) bool {
	return form.UIHints["location.label"] != "" || opts.Location.ToggleAction != "" || opts.Location.Marked
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field model.Field) string {
	if h := field.UIHints["helpText"]; h != "" {
		return h
	}
	if p := field.Placeholder; p != "" && field.Widget() != "select" {
		return "e.g. " + p
	}
	return field.Description
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
