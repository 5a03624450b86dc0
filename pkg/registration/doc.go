// Package registration implements the validation engine behind step 1 of the
// police station registration wizard.
//
// A Form owns the seven intake values, the current per-field errors and the
// location placeholder. Field changes (SetValue) never validate; field
// commits (Commit, the blur event) validate one field and update only that
// field's entry. AttemptAdvance always re-validates every field from scratch
// before deciding whether the wizard may move to step 2, so fields the user
// never touched are caught as well.
//
// Validation failures are data (FieldErrors), never Go errors. Go errors are
// reserved for programming mistakes such as unknown field names and for
// failures reported by the step 2 collaborator.
package registration
