package registration

import "context"

// NextStep receives the validated values once step 1 passes the advance gate.
// What the receiver does with them is outside this package.
type NextStep interface {
	Begin(ctx context.Context, values Values) error
}

// NextStepFunc adapts a function into a NextStep.
type NextStepFunc func(ctx context.Context, values Values) error

// Begin calls the underlying function.
func (fn NextStepFunc) Begin(ctx context.Context, values Values) error {
	return fn(ctx, values)
}
