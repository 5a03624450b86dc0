package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-stationreg/pkg/model"
	"github.com/goliatone/go-stationreg/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{{Name: "email"}, {Name: "city"}, {Name: "district"}}}

	mapping := render.MapErrorPayload(form, map[string][]string{
		"email":           {" Please enter a valid email address "},
		"/city":           {"City is required"},
		"#/body/district": {"District is required", "District is required"},
		"body.pincode":    {"unknown field"},
		"":                {"Registration is closed"},
		"officerName":     {"   "},
	})

	want := map[string][]string{
		"email":    {"Please enter a valid email address"},
		"city":     {"City is required"},
		"district": {"District is required"},
	}
	if diff := cmp.Diff(want, mapping.Fields); diff != "" {
		t.Fatalf("field mapping mismatch (-want +got):\n%s", diff)
	}

	formErrors := render.MergeFormErrors(mapping.Form)
	if len(formErrors) != 2 {
		t.Fatalf("expected two form-level messages, got %v", formErrors)
	}
}

func TestMapErrorPayloadEmpty(t *testing.T) {
	mapping := render.MapErrorPayload(model.FormModel{}, nil)
	if mapping.Fields != nil || mapping.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapping)
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := render.MergeFormErrors([]string{"a", " b "}, "a", "", "c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}
