package inoctl

import (
	"errors"
	"fmt"
)

// Process exit codes. Errors are mapped to these at the outermost
// boundary only; library code returns typed errors.
const (
	ExitOK         = 0
	ExitUsage      = 1  // bad arguments, missing file, unknown board
	ExitResolution = 10 // ambiguous or missing board/port/device
	ExitInternal   = 99 // "should never happen" guard
)

// Predefined error types for robust error handling
var (
	ErrNoBoard        = errors.New("no board found")
	ErrAmbiguousBoard = errors.New("devices for more than one board family present, cannot auto-select")
	ErrUnknownBoard   = errors.New("unknown board")
	ErrNoPort         = errors.New("no serial port found for board")
	ErrAmbiguousPort  = errors.New("more than one serial port candidate, cannot auto-select")
	ErrPortNotFound   = errors.New("serial port does not exist")
	ErrInvalidSpeed   = errors.New("unsupported baud rate")
	ErrMissingSketch  = errors.New("sketch file does not exist")
)

// ExitError carries the process exit code an error should terminate with.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

func resolutionError(err error) error {
	return &ExitError{Code: ExitResolution, Err: err}
}

// internalError marks a branch that is unreachable unless resolution logic
// is defective. The marker code identifies the guard that fired.
func internalError(marker string) error {
	return &ExitError{Code: ExitInternal, Err: fmt.Errorf("internal error (%s)", marker)}
}

// collaboratorError propagates an external tool's exit status verbatim.
func collaboratorError(status int, err error) error {
	return &ExitError{Code: status, Err: err}
}

// ExitStatus returns the process exit code for err: 0 for nil, the carried
// code for an ExitError, and ExitUsage for anything else.
func ExitStatus(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitUsage
}
