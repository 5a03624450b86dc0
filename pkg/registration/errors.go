package registration

import "errors"

// ErrUnknownField is returned when a caller names a field outside the intake
// record.
var ErrUnknownField = errors.New("registration: unknown field")

// ErrorKind classifies a validation failure.
type ErrorKind string

const (
	// KindRequired marks a field that is empty after trimming whitespace.
	KindRequired ErrorKind = "required"
	// KindInvalidFormat marks a non-empty contact number or email that fails
	// its pattern.
	KindInvalidFormat ErrorKind = "invalid_format"
)

// FieldError is the user-facing failure attached to a single field.
type FieldError struct {
	Field   Field     `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e FieldError) Error() string {
	return string(e.Field) + ": " + e.Message
}

// FieldErrors maps fields to their current failure. A field without an entry
// is valid; entries are deleted, never blanked, when a field becomes valid.
type FieldErrors map[Field]FieldError

// Lookup returns the failure recorded for field, if any.
func (e FieldErrors) Lookup(field Field) (FieldError, bool) {
	fe, ok := e[field]
	return fe, ok
}

// Message returns the recorded message for field or "" when the field is valid.
func (e FieldErrors) Message(field Field) string {
	return e[field].Message
}

// Empty reports whether no field currently fails.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// List returns the failures in field display order.
func (e FieldErrors) List() []FieldError {
	if len(e) == 0 {
		return nil
	}
	out := make([]FieldError, 0, len(e))
	for _, field := range fieldOrder {
		if fe, ok := e[field]; ok {
			out = append(out, fe)
		}
	}
	return out
}

// Messages flattens the failures into the dotted-path payload renderers
// consume (field name → messages).
func (e FieldErrors) Messages() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e))
	for field, fe := range e {
		out[string(field)] = []string{fe.Message}
	}
	return out
}

// Clone returns an independent copy.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for field, fe := range e {
		out[field] = fe
	}
	return out
}

func (e FieldErrors) apply(field Field, fe *FieldError) {
	if fe == nil {
		delete(e, field)
		return
	}
	e[field] = *fe
}
