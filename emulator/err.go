package emulator

import (
	"github.com/ezrec/procsim/translate"
)

var f = translate.From

// ErrParseExpression is a $(...) expression that did not evaluate to an
// integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrLine indicates the source line of a load error.
type ErrLine struct {
	LineNo int
	Err    error
}

func (err *ErrLine) Error() string {
	return f("line %d: %v", err.LineNo, err.Err)
}

func (err *ErrLine) Unwrap() error {
	return err.Err
}

// ErrRuntime indicates the command that failed at runtime.
type ErrRuntime struct {
	Index   int    // Index of the command in the program.
	Command string // Text of the command.
	Err     error
}

func (err *ErrRuntime) Error() string {
	return f("command %d (%v): %v", err.Index, err.Command, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
