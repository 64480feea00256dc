package cpu

import (
	"errors"

	"github.com/ezrec/procsim/lexer"
	"github.com/ezrec/procsim/translate"
)

var f = translate.From

var (
	// Configuration errors
	ErrInvalidArgument       = lexer.ErrInvalidArgument
	ErrSpecialTokenUndefined = errors.New(f("special token undefined"))

	// Grammar and execution errors
	ErrCommandInvalid         = errors.New(f("command invalid"))
	ErrCommandArgumentInvalid = errors.New(f("command argument invalid"))

	// Details
	ErrCommandName        = errors.New(f("command must start from a command name"))
	ErrArgumentExpected   = errors.New(f("expected register or number"))
	ErrSeparatorExpected  = errors.New(f("expected concatenation or termination token"))
	ErrArgumentsMissing   = errors.New(f("command must have at least two arguments"))
	ErrRegisterExpected   = errors.New(f("expected register argument"))
	ErrCommandTypeUnknown = errors.New(f("command type is unknown"))
)

// ErrToken reports the token at which parsing failed.
type ErrToken struct {
	Token lexer.Token
	Err   error
}

func (err *ErrToken) Error() string {
	return f("invalid command at token '%v': %v", err.Token.Text, err.Err)
}

func (err *ErrToken) Unwrap() error {
	return err.Err
}

// ErrIncomplete reports a command left open at the end of the tokens.
type ErrIncomplete string

func (err ErrIncomplete) Error() string {
	return f("invalid command '%v'", string(err))
}

func (err ErrIncomplete) Is(target error) bool {
	return target == ErrCommandInvalid
}

// ErrSpecialToken names a delimiter role without a binding.
type ErrSpecialToken SpecialToken

func (err ErrSpecialToken) Error() string {
	return f("special token '%v' must be defined", SpecialToken(err).String())
}

func (err ErrSpecialToken) Is(target error) bool {
	return target == ErrSpecialTokenUndefined
}

// ErrRegister names a register that does not exist.
type ErrRegister int64

func (err ErrRegister) Error() string {
	return f("register R%v does not exist", int64(err))
}

func (err ErrRegister) Is(target error) bool {
	return target == ErrCommandArgumentInvalid
}

// ErrParseNumber reports a numeric token that does not fit a register word.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Is(target error) bool {
	return target == ErrCommandInvalid
}
