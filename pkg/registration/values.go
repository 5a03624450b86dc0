package registration

import (
	"fmt"
	"strings"
)

// Values is the FormValues record: the seven raw strings exactly as the user
// typed them. The zero value is the initial state (every field empty).
type Values struct {
	StationName   string `json:"stationName" schema:"stationName"`
	OfficerName   string `json:"officerName" schema:"officerName"`
	ContactNumber string `json:"contactNumber" schema:"contactNumber"`
	Email         string `json:"email" schema:"email"`
	Address       string `json:"address" schema:"address"`
	City          string `json:"city" schema:"city"`
	District      string `json:"district" schema:"district"`
}

// Get returns the raw value stored for field. Unknown fields read as "".
func (v Values) Get(field Field) string {
	if ptr := v.slot(field); ptr != nil {
		return *ptr
	}
	return ""
}

// Set overwrites the raw value stored for field.
func (v *Values) Set(field Field, raw string) error {
	ptr := v.slot(field)
	if ptr == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
	*ptr = raw
	return nil
}

// Blank reports whether field is empty after trimming whitespace.
func (v Values) Blank(field Field) bool {
	return strings.TrimSpace(v.Get(field)) == ""
}

// Complete reports whether every field holds non-blank content.
func (v Values) Complete() bool {
	for _, field := range fieldOrder {
		if v.Blank(field) {
			return false
		}
	}
	return true
}

// Map returns the values keyed by wire name.
func (v Values) Map() map[string]string {
	out := make(map[string]string, len(fieldOrder))
	for _, field := range fieldOrder {
		out[string(field)] = v.Get(field)
	}
	return out
}

// ValuesFromMap builds a Values record from wire-named entries. Unknown keys
// are ignored.
func ValuesFromMap(src map[string]string) Values {
	var out Values
	for key, value := range src {
		field, err := ParseField(key)
		if err != nil {
			continue
		}
		_ = out.Set(field, value)
	}
	return out
}

func (v *Values) slot(field Field) *string {
	switch field {
	case FieldStationName:
		return &v.StationName
	case FieldOfficerName:
		return &v.OfficerName
	case FieldContactNumber:
		return &v.ContactNumber
	case FieldEmail:
		return &v.Email
	case FieldAddress:
		return &v.Address
	case FieldCity:
		return &v.City
	case FieldDistrict:
		return &v.District
	default:
		return nil
	}
}
