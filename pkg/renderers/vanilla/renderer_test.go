package vanilla_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-stationreg/internal/openapi/parser"
	pkgmodel "github.com/goliatone/go-stationreg/pkg/model"
	pkgopenapi "github.com/goliatone/go-stationreg/pkg/openapi"
	"github.com/goliatone/go-stationreg/pkg/registration"
	"github.com/goliatone/go-stationreg/pkg/render"
	"github.com/goliatone/go-stationreg/pkg/renderers/vanilla"
	"github.com/goliatone/go-stationreg/pkg/schemas"
	"github.com/goliatone/go-stationreg/pkg/uischema"
)

func registrationForm(t *testing.T) pkgmodel.FormModel {
	t.Helper()
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS(schemas.RegistrationDocument), schemas.Registration())
	ops, err := parser.New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	form, err := pkgmodel.NewBuilder().Build(ops[schemas.RegistrationOperation])
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	store, err := uischema.LoadFS(uischema.EmbeddedFS())
	if err != nil {
		t.Fatalf("load ui schema: %v", err)
	}
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	return form
}

func renderPage(t *testing.T, renderer *vanilla.Renderer, opts render.RenderOptions) string {
	t.Helper()
	out, err := renderer.Render(context.Background(), registrationForm(t), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func newRenderer(t *testing.T, options ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Errorf("expected output to contain %q", fragment)
		}
	}
}

func TestRenderEmptyForm(t *testing.T) {
	html := renderPage(t, newRenderer(t), render.RenderOptions{})

	assertContains(t, html,
		"<title>Police Station Registration · EmergenSync</title>",
		"Step 1 of 2 – Enter your station and officer details",
		"Emergency Response Platform",
		`action="/registrations/stations/step-1"`,
		`<label class="sr-label" for="sr-field-stationName"><span>Police Station Name</span>`,
		`placeholder="+91 98765-43210"`,
		`type="email"`,
		`<textarea class="sr-control sr-control--textarea" id="sr-field-address" name="address" rows="3"`,
		`<option value="">Select District</option>`,
		`<option value="North Dinajpur">North Dinajpur</option>`,
		"Click to set station location on map",
		"This helps emergency services locate your station",
		`formaction="/register/cancel"`,
		"Next Step →",
		`<a href="mailto:support@emergensync.gov.in">support@emergensync.gov.in</a>`,
		`aria-current="step"`,
	)

	if got := strings.Count(html, `<option value="`); got != len(registration.Districts())+1 {
		t.Fatalf("expected %d district options, got %d", len(registration.Districts())+1, got)
	}
	if got := strings.Count(html, `<span class="sr-required" aria-hidden="true">*</span>`); got != 7 {
		t.Fatalf("expected 7 required markers, got %d", got)
	}
	if strings.Contains(html, "aria-invalid") {
		t.Fatalf("fresh form should not mark fields invalid")
	}
	if strings.Contains(html, "<script") {
		t.Fatalf("runtime script should only be linked when assets are served")
	}
	if !strings.Contains(html, "--sr-color-primary") {
		t.Fatalf("expected inlined stylesheet")
	}
}

func TestRenderValuesAndErrors(t *testing.T) {
	form := registration.NewForm()
	_ = form.SetValue(registration.FieldStationName, `<b>Lalbazar</b>`)
	_ = form.SetValue(registration.FieldEmail, "a@b")
	_ = form.SetValue(registration.FieldDistrict, "Howrah")
	form.AttemptAdvance()

	html := renderPage(t, newRenderer(t), render.OptionsFromForm(form))

	assertContains(t, html,
		`value="&lt;b&gt;Lalbazar&lt;/b&gt;"`,
		`<option value="Howrah" selected>Howrah</option>`,
		"Please enter a valid email address",
		"Officer-in-charge name is required",
		"Contact number is required",
		`data-error-count="5"`,
		`aria-invalid="true"`,
	)
	if strings.Contains(html, "Police station name is required") {
		t.Fatalf("station name is filled and must not carry an error")
	}
	if strings.Contains(html, "District is required") {
		t.Fatalf("district is filled and must not carry an error")
	}
}

func TestRenderLocationStates(t *testing.T) {
	renderer := newRenderer(t)
	picker := &registration.LocationPicker{}

	unset := renderPage(t, renderer, render.RenderOptions{Location: render.LocationFromPicker(picker, "/register/location")})
	assertContains(t, unset, `data-location-state="unset"`, `formaction="/register/location"`)

	picker.Mark()
	set := renderPage(t, renderer, render.RenderOptions{Location: render.LocationFromPicker(picker, "/register/location")})
	assertContains(t, set,
		`data-location-state="set"`,
		"Location marked successfully",
		"Lat: 22.5726, Lng: 88.3639",
		`aria-label="Clear location"`,
	)
}

func TestRenderAssetsThemeAndHidden(t *testing.T) {
	renderer := newRenderer(t,
		vanilla.WithAssetsURL("/assets/"),
		vanilla.WithFieldValidationURL("/register/fields/{field}"),
	)
	html := renderPage(t, renderer, render.RenderOptions{
		Action:     "/register",
		Hidden:     map[string]string{"_csrf": "token-1"},
		FormErrors: []string{"Session expired, please review your details"},
		Theme: &render.ThemeConfig{
			Name:    "emergensync",
			Variant: "dark",
			CSSVars: map[string]string{"--sr-color-primary": "#4C9AFF"},
		},
	})

	assertContains(t, html,
		`<link rel="stylesheet" href="/assets/stationreg.css">`,
		`<script src="/assets/stationreg-runtime.js" defer></script>`,
		`data-validate-url="/register/fields/email"`,
		`action="/register"`,
		`<input type="hidden" name="_csrf" value="token-1">`,
		"Session expired, please review your details",
		`data-theme="emergensync"`,
		`data-theme-variant="dark"`,
		"--sr-color-primary: #4C9AFF;",
	)
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newRenderer(t).Render(ctx, registrationForm(t), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestAssetsFS(t *testing.T) {
	for _, name := range []string{vanilla.StylesheetName, vanilla.RuntimeScriptName} {
		data, err := fs.ReadFile(vanilla.AssetsFS(), name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}
