// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/procsim/lexer"
)

// asmState is the state of the command grammar.
type asmState int

const (
	stateCommand   = asmState(0) // Expecting a command name.
	stateArgument  = asmState(1) // Expecting a register or number.
	stateSeparator = asmState(2) // Expecting concatenation or termination.
)

// Predefined command names.
var defaultCommandTypes = map[string]CommandType{
	"add":       COMMAND_ADD,
	"load":      COMMAND_LOAD,
	"rightmove": COMMAND_RIGHT_MOVE,
	"leftmove":  COMMAND_LEFT_MOVE,
	"xor":       COMMAND_XOR,
}

// Predefined delimiter roles.
var defaultSpecialTokens = map[SpecialToken]lexer.Token{
	SPECIAL_CONCATENATION: {Kind: lexer.KIND_DELIMITER, Text: ","},
	SPECIAL_TERMINATION:   {Kind: lexer.KIND_DELIMITER, Text: ";"},
}

// Assembler groups a token stream into commands.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	tokens        []lexer.Token
	current       int
	state         asmState
	commandTypes  map[string]CommandType
	specialTokens map[SpecialToken]lexer.Token
}

// NewAssembler creates an assembler with the standard command names,
// and ',' and ';' as the concatenation and termination tokens.
func NewAssembler() (asm *Assembler) {
	asm = &Assembler{
		commandTypes:  maps.Clone(defaultCommandTypes),
		specialTokens: maps.Clone(defaultSpecialTokens),
	}

	return
}

// Tokens returns a copy of the tokens to assemble.
func (asm *Assembler) Tokens() []lexer.Token {
	return slices.Clone(asm.tokens)
}

// SetTokens sets the tokens to assemble, and rewinds the cursor.
func (asm *Assembler) SetTokens(tokens []lexer.Token) {
	asm.tokens = slices.Clone(tokens)
	asm.current = 0
}

// CommandTypes returns a copy of the command name lookup table.
func (asm *Assembler) CommandTypes() map[string]CommandType {
	return maps.Clone(asm.commandTypes)
}

// SetCommandTypes replaces the command name lookup table.
// Names are matched without regard to case.
func (asm *Assembler) SetCommandTypes(types map[string]CommandType) (err error) {
	if types == nil {
		err = ErrInvalidArgument
		return
	}

	lookup := make(map[string]CommandType, len(types))
	for name, ct := range types {
		lookup[strings.ToLower(name)] = ct
	}
	asm.commandTypes = lookup

	return
}

// SpecialTokens returns a copy of the delimiter role bindings.
func (asm *Assembler) SpecialTokens() map[SpecialToken]lexer.Token {
	return maps.Clone(asm.specialTokens)
}

// SetSpecialTokens replaces the delimiter role bindings. Every role must
// be bound, otherwise the prior bindings are kept.
func (asm *Assembler) SetSpecialTokens(special map[SpecialToken]lexer.Token) (err error) {
	if special == nil {
		err = ErrInvalidArgument
		return
	}

	for _, role := range specialTokens {
		if _, ok := special[role]; !ok {
			err = ErrSpecialToken(role)
			return
		}
	}

	asm.specialTokens = maps.Clone(special)

	return
}

// Parse assembles all of the tokens into commands. No commands are
// returned if the token stream is malformed.
func (asm *Assembler) Parse() (commands []Command, err error) {
	asm.current = 0
	asm.state = stateCommand

	commands = []Command{}
	var open *Command

	for ; asm.current < len(asm.tokens); asm.current++ {
		token := asm.tokens[asm.current]

		switch asm.state {
		case stateCommand:
			open, err = asm.commandStep(token)
		case stateArgument:
			err = asm.argumentStep(open, token)
		case stateSeparator:
			var done bool
			done, err = asm.separatorStep(token)
			if err == nil && done {
				if asm.Verbose {
					log.Printf("asm: %v", open)
				}
				commands = append(commands, *open)
				open = nil
			}
		}

		if err != nil {
			commands = nil
			return
		}
	}

	if asm.state != stateCommand {
		commands = nil
		err = ErrIncomplete(open.String())
		return
	}

	return
}

// commandStep opens a new command.
func (asm *Assembler) commandStep(token lexer.Token) (cmd *Command, err error) {
	if token.Kind != lexer.KIND_COMMAND {
		err = &ErrToken{Token: token, Err: errors.Join(ErrCommandInvalid, ErrCommandName)}
		return
	}

	ct, ok := asm.commandTypes[strings.ToLower(token.Text)]
	if !ok {
		ct = COMMAND_UNKNOWN
	}

	cmd = &Command{Type: ct, Arguments: []Argument{}}
	asm.state = stateArgument

	return
}

// argumentStep appends an argument to the open command.
func (asm *Assembler) argumentStep(cmd *Command, token lexer.Token) (err error) {
	var arg Argument

	switch token.Kind {
	case lexer.KIND_REGISTER:
		arg.Type = ARG_REGISTER
		arg.Value, err = parseNumber(strings.TrimPrefix(token.Text, "R"))
	case lexer.KIND_NUMBER:
		arg.Type = ARG_NUMBER
		arg.Value, err = parseNumber(token.Text)
	default:
		err = errors.Join(ErrCommandInvalid, ErrArgumentExpected)
	}

	if err != nil {
		err = &ErrToken{Token: token, Err: err}
		return
	}

	cmd.Arguments = append(cmd.Arguments, arg)
	asm.state = stateSeparator

	return
}

// separatorStep handles the token after an argument, returning done
// if the open command was terminated.
func (asm *Assembler) separatorStep(token lexer.Token) (done bool, err error) {
	switch token {
	case asm.specialTokens[SPECIAL_CONCATENATION]:
		asm.state = stateArgument
	case asm.specialTokens[SPECIAL_TERMINATION]:
		asm.state = stateCommand
		done = true
	default:
		err = &ErrToken{Token: token, Err: errors.Join(ErrCommandInvalid, ErrSeparatorExpected)}
	}

	return
}

// parseNumber parses a signed decimal that fits a 32-bit register word.
func parseNumber(text string) (value int64, err error) {
	value, err = strconv.ParseInt(text, 10, 32)
	if err != nil {
		err = ErrParseNumber(text)
	}
	return
}
