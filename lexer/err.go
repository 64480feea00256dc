package lexer

import (
	"errors"

	"github.com/ezrec/procsim/translate"
)

var f = translate.From

var (
	ErrInvalidArgument = errors.New(f("invalid argument"))
)

// ErrPattern reports a token rule that could not be compiled.
type ErrPattern struct {
	Pattern string
	Err     error
}

func (err *ErrPattern) Error() string {
	return f("pattern '%v' %v", err.Pattern, err.Err)
}

func (err *ErrPattern) Unwrap() error {
	return err.Err
}
