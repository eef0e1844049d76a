package launcher

import (
	"errors"
	"fmt"

	"deploy-launcher/core/process"
)

// StepError reports the step that stopped the launch and the exit code the
// launcher should terminate with.
type StepError struct {
	// Step is the name of the failing step.
	Step string
	// Code is the exit code of the failing external program, or 1 when the
	// step failed inside the launcher.
	Code int
	// Err is the underlying failure.
	Err error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func newStepError(step string, err error) *StepError {
	code := 1
	if c, ok := process.ExitCode(err); ok && c != 0 {
		code = c
	}
	return &StepError{Step: step, Code: code, Err: err}
}

// ExitCode maps an error returned by Run (or anything wrapping one) to a
// process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Code
	}
	if code, ok := process.ExitCode(err); ok && code != 0 {
		return code
	}
	return 1
}
