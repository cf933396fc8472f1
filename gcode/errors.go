package gcode

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned by Interpret when the input has no content.
var ErrEmptyInput = errors.New("gcode: empty input")

// A LineError reports a failure while handling a specific command line.
// Line is 1-based; Text is the offending line verbatim.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("gcode: line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
