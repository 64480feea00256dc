package lexer

import (
	"errors"
	"fmt"
	"regexp"
)

// Kind is the lexical class of a token.
type Kind int

const (
	KIND_UNKNOWN   = Kind(0) // Unknown
	KIND_COMMAND   = Kind(1) // Command
	KIND_REGISTER  = Kind(2) // Register
	KIND_NUMBER    = Kind(3) // Number
	KIND_DELIMITER = Kind(4) // Delimiter
)

var kindName = map[Kind]string{
	KIND_UNKNOWN:   "Unknown",
	KIND_COMMAND:   "Command",
	KIND_REGISTER:  "Register",
	KIND_NUMBER:    "Number",
	KIND_DELIMITER: "Delimiter",
}

func (kind Kind) String() string {
	name, ok := kindName[kind]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(kind))
	}
	return name
}

// Token is a single lexeme. Tokens compare equal with ==.
type Token struct {
	Kind Kind
	Text string
}

func (tok Token) String() string {
	return fmt.Sprintf("{%v %q}", tok.Kind, tok.Text)
}

// Definition is a token rule: a pattern anchored at the lexer cursor,
// and the kind of token it produces.
type Definition struct {
	Kind    Kind
	Pattern string

	re *regexp.Regexp
}

// NewDefinition compiles a token rule.
func NewDefinition(pattern string, kind Kind) (def Definition, err error) {
	if len(pattern) == 0 {
		err = &ErrPattern{Pattern: pattern, Err: ErrInvalidArgument}
		return
	}

	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		err = &ErrPattern{Pattern: pattern, Err: errors.Join(ErrInvalidArgument, err)}
		return
	}

	def = Definition{
		Kind:    kind,
		Pattern: pattern,
		re:      re,
	}
	return
}

// MustDefinition is like NewDefinition, but panics on a bad pattern.
func MustDefinition(pattern string, kind Kind) Definition {
	def, err := NewDefinition(pattern, kind)
	if err != nil {
		panic(err)
	}
	return def
}

// match returns the length of the rule's match at the start of text,
// or -1 if the rule does not match there. Empty matches never count,
// or the cursor would never advance.
func (def *Definition) match(text string) int {
	if def.re == nil {
		return -1
	}
	loc := def.re.FindStringIndex(text)
	if loc == nil || loc[1] == 0 {
		return -1
	}
	return loc[1]
}

// DefaultDefinitions returns the standard rules, in tie-break order.
func DefaultDefinitions() []Definition {
	return []Definition{
		MustDefinition(`[a-zA-Z][a-zA-Z_-]*`, KIND_COMMAND),
		MustDefinition(`R[1-9][0-9]*`, KIND_REGISTER),
		MustDefinition(`-?[0-9]+`, KIND_NUMBER),
		MustDefinition(`[,;]`, KIND_DELIMITER),
	}
}

// DefaultSpace is the standard set of skipped characters.
var DefaultSpace = []rune{' ', '\n', '\r', '\t'}
