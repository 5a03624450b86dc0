package tui

import "github.com/goliatone/go-stationreg/pkg/registration"

// State owns the registration form driven by one terminal session, together
// with errors handed in by a previous submission and per-field attempt
// counters.
type State struct {
	form     *registration.Form
	errors   map[string][]string
	attempts map[registration.Field]int
}

// NewState seeds a fresh form with prefilled values and errors. Unknown
// names in either map are ignored.
func NewState(prefill map[string]string, errs map[string][]string) *State {
	form := registration.NewForm()
	for name, value := range prefill {
		field, err := registration.ParseField(name)
		if err != nil {
			continue
		}
		_ = form.SetValue(field, value)
	}
	return &State{
		form:     form,
		errors:   cloneErrors(errs),
		attempts: make(map[registration.Field]int),
	}
}

// Form returns the underlying registration form.
func (s *State) Form() *registration.Form {
	if s == nil {
		return nil
	}
	return s.form
}

// ErrorsFor returns the prefilled errors attached to a field name.
func (s *State) ErrorsFor(name string) []string {
	if s == nil || len(s.errors) == 0 {
		return nil
	}
	return s.errors[name]
}

// ClearErrors drops the prefilled errors for name once the field was
// answered again.
func (s *State) ClearErrors(name string) {
	if s == nil {
		return
	}
	delete(s.errors, name)
}

// Attempt records another prompt for field and returns the running count.
func (s *State) Attempt(field registration.Field) int {
	s.attempts[field]++
	return s.attempts[field]
}

// Values returns the collected values keyed by wire name.
func (s *State) Values() map[string]string {
	if s == nil {
		return nil
	}
	return s.form.Values().Map()
}

func cloneErrors(src map[string][]string) map[string][]string {
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}
