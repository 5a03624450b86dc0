package registration

import (
	"context"
	"errors"
	"fmt"
)

// Outcome is the result of an advance attempt. Errors holds every failure
// found by the full re-validation; it is empty when Advance is true.
type Outcome struct {
	Advance bool        `json:"advance"`
	Errors  FieldErrors `json:"errors,omitempty"`
}

// Advanceable is the validity predicate: no recorded errors and every field
// non-blank. It is evaluated on demand and never cached.
func Advanceable(values Values, errs FieldErrors) bool {
	return errs.Empty() && values.Complete()
}

// AttemptAdvance re-validates every field of values from scratch and reports
// whether the wizard may move on. It never trusts errors accumulated by
// earlier commits.
func AttemptAdvance(values Values) Outcome {
	errs := make(FieldErrors)
	for _, field := range fieldOrder {
		errs.apply(field, Validate(field, values.Get(field)))
	}
	return Outcome{
		Advance: Advanceable(values, errs),
		Errors:  errs,
	}
}

// Form is the state owned by one mounted registration form. It is not safe
// for concurrent use; callers that share a Form must serialise access.
type Form struct {
	values   Values
	errors   FieldErrors
	location LocationPicker
}

// NewForm returns a form with every field empty and no errors.
func NewForm() *Form {
	return &Form{errors: make(FieldErrors)}
}

// SetValue overwrites field's stored value. It does not validate.
func (f *Form) SetValue(field Field, raw string) error {
	return f.values.Set(field, raw)
}

// Value returns field's stored raw value.
func (f *Form) Value(field Field) string {
	return f.values.Get(field)
}

// Values returns a copy of the stored values.
func (f *Form) Values() Values {
	return f.values
}

// Errors returns a copy of the current error mapping.
func (f *Form) Errors() FieldErrors {
	return f.errors.Clone()
}

// ValidateField validates value for field and updates only that field's entry:
// the failure is recorded, or any existing entry is removed.
func (f *Form) ValidateField(field Field, value string) (*FieldError, error) {
	if !field.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, string(field))
	}
	if f.errors == nil {
		f.errors = make(FieldErrors)
	}
	fe := Validate(field, value)
	f.errors.apply(field, fe)
	return fe, nil
}

// Commit validates the stored value of field (the blur event).
func (f *Form) Commit(field Field) (*FieldError, error) {
	return f.ValidateField(field, f.values.Get(field))
}

// CanAdvance evaluates the validity predicate over the current state without
// re-validating. Use AttemptAdvance to gate navigation.
func (f *Form) CanAdvance() bool {
	return Advanceable(f.values, f.errors)
}

// AttemptAdvance re-validates every field, replaces the error mapping with the
// fresh result and reports whether the form may advance.
func (f *Form) AttemptAdvance() Outcome {
	outcome := AttemptAdvance(f.values)
	f.errors = outcome.Errors.Clone()
	return outcome
}

// Advance runs the advance gate and, when it passes, hands a copy of the
// values to next. A rejected attempt is not an error.
func (f *Form) Advance(ctx context.Context, next NextStep) (Outcome, error) {
	if next == nil {
		return Outcome{}, errors.New("registration: next step is nil")
	}
	outcome := f.AttemptAdvance()
	if !outcome.Advance {
		return outcome, nil
	}
	if err := next.Begin(ctx, f.values); err != nil {
		return outcome, fmt.Errorf("registration: begin next step: %w", err)
	}
	return outcome, nil
}

// Location returns the form's location placeholder.
func (f *Form) Location() *LocationPicker {
	return &f.location
}

// Reset returns the form to its mounted state.
func (f *Form) Reset() {
	f.values = Values{}
	f.errors = make(FieldErrors)
	f.location = LocationPicker{}
}
