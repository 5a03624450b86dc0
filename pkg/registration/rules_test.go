package registration_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-stationreg/pkg/registration"
)

func TestValidate_RequiredForBlankInput(t *testing.T) {
	want := map[registration.Field]string{
		registration.FieldStationName:   "Police station name is required",
		registration.FieldOfficerName:   "Officer-in-charge name is required",
		registration.FieldContactNumber: "Contact number is required",
		registration.FieldEmail:         "Email address is required",
		registration.FieldAddress:       "Station address is required",
		registration.FieldCity:          "City is required",
		registration.FieldDistrict:      "District is required",
	}

	for _, field := range registration.Fields() {
		for _, input := range []string{"", "   ", "\t\n "} {
			got := registration.Validate(field, input)
			if got == nil {
				t.Fatalf("%s: expected required error for %q", field, input)
			}
			wantErr := registration.FieldError{Field: field, Kind: registration.KindRequired, Message: want[field]}
			if diff := cmp.Diff(wantErr, *got); diff != "" {
				t.Fatalf("%s %q mismatch (-want +got):\n%s", field, input, diff)
			}
		}
	}
}

func TestValidate_ContactNumber(t *testing.T) {
	cases := []struct {
		input string
		kind  registration.ErrorKind
	}{
		{input: "+91 98765-43210"},
		{input: "9876543210"},
		{input: "98765 43210"},
		{input: " 9876543210 "},
		{input: "(987) 654-3210"},
		{input: "12345", kind: registration.KindInvalidFormat},
		{input: "+91 98765-43210-1", kind: registration.KindInvalidFormat},
		{input: "phone", kind: registration.KindInvalidFormat},
		{input: "  ", kind: registration.KindRequired},
	}

	for _, tc := range cases {
		got := registration.Validate(registration.FieldContactNumber, tc.input)
		if tc.kind == "" {
			if got != nil {
				t.Fatalf("%q: expected pass, got %+v", tc.input, *got)
			}
			continue
		}
		if got == nil {
			t.Fatalf("%q: expected %s, got pass", tc.input, tc.kind)
		}
		if got.Kind != tc.kind {
			t.Fatalf("%q: expected kind %s, got %s", tc.input, tc.kind, got.Kind)
		}
		if tc.kind == registration.KindInvalidFormat && got.Message != "Please enter a valid contact number" {
			t.Fatalf("%q: unexpected message %q", tc.input, got.Message)
		}
	}
}

func TestValidate_Email(t *testing.T) {
	cases := []struct {
		input string
		valid bool
	}{
		{input: "a@b.co", valid: true},
		{input: "station@police.gov.in", valid: true},
		{input: "a@b", valid: false},
		{input: "a b@c.com", valid: false},
		{input: "a@b.co ", valid: false},
		{input: "a@@b.co", valid: false},
		{input: "@b.co", valid: false},
		{input: "a@b.", valid: false},
		{input: "a@b c.com", valid: false},
	}

	for _, tc := range cases {
		got := registration.Validate(registration.FieldEmail, tc.input)
		if tc.valid {
			if got != nil {
				t.Fatalf("%q: expected pass, got %+v", tc.input, *got)
			}
			continue
		}
		if got == nil {
			t.Fatalf("%q: expected failure", tc.input)
		}
		want := registration.FieldError{
			Field:   registration.FieldEmail,
			Kind:    registration.KindInvalidFormat,
			Message: "Please enter a valid email address",
		}
		if diff := cmp.Diff(want, *got); diff != "" {
			t.Fatalf("%q mismatch (-want +got):\n%s", tc.input, diff)
		}
	}
}

func TestValidate_DistrictNeedsNoMembership(t *testing.T) {
	if got := registration.Validate(registration.FieldDistrict, "Atlantis"); got != nil {
		t.Fatalf("expected any non-blank district to pass, got %+v", *got)
	}
}

func TestValidate_UnknownFieldPasses(t *testing.T) {
	if got := registration.Validate(registration.Field("badge"), ""); got != nil {
		t.Fatalf("expected unknown field to pass, got %+v", *got)
	}
}

func TestParseField(t *testing.T) {
	field, err := registration.ParseField(" contactNumber ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if field != registration.FieldContactNumber {
		t.Fatalf("expected contactNumber, got %s", field)
	}

	if _, err := registration.ParseField("ContactNumber"); err == nil {
		t.Fatalf("expected case-sensitive lookup to fail")
	}
}

func TestDistricts(t *testing.T) {
	got := registration.Districts()
	if len(got) != 18 {
		t.Fatalf("expected 18 districts, got %d", len(got))
	}
	if got[0] != "Kolkata" || got[17] != "North Dinajpur" {
		t.Fatalf("unexpected district order: first=%q last=%q", got[0], got[17])
	}

	got[0] = "mutated"
	if registration.Districts()[0] != "Kolkata" {
		t.Fatalf("Districts must return a copy")
	}
}
