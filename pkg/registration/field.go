package registration

import (
	"fmt"
	"strings"
)

// Field names one independently validated input. The string value is the wire
// name used by the OpenAPI document, HTML inputs and JSON payloads.
type Field string

const (
	FieldStationName   Field = "stationName"
	FieldOfficerName   Field = "officerName"
	FieldContactNumber Field = "contactNumber"
	FieldEmail         Field = "email"
	FieldAddress       Field = "address"
	FieldCity          Field = "city"
	FieldDistrict      Field = "district"
)

var fieldOrder = []Field{
	FieldStationName,
	FieldOfficerName,
	FieldContactNumber,
	FieldEmail,
	FieldAddress,
	FieldCity,
	FieldDistrict,
}

// Fields returns every field in display order.
func Fields() []Field {
	return append([]Field(nil), fieldOrder...)
}

// ParseField resolves a wire name into a Field. Surrounding whitespace is
// ignored; matching is case sensitive.
func ParseField(name string) (Field, error) {
	candidate := Field(strings.TrimSpace(name))
	if candidate.Known() {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Known reports whether f is one of the seven intake fields.
func (f Field) Known() bool {
	_, ok := rules[f]
	return ok
}

func (f Field) String() string {
	return string(f)
}
