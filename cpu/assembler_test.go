package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/procsim/lexer"
)

var (
	tokComma = lexer.Token{Kind: lexer.KIND_DELIMITER, Text: ","}
	tokSemi  = lexer.Token{Kind: lexer.KIND_DELIMITER, Text: ";"}
)

func tokCommand(text string) lexer.Token {
	return lexer.Token{Kind: lexer.KIND_COMMAND, Text: text}
}

func tokRegister(text string) lexer.Token {
	return lexer.Token{Kind: lexer.KIND_REGISTER, Text: text}
}

func tokNumber(text string) lexer.Token {
	return lexer.Token{Kind: lexer.KIND_NUMBER, Text: text}
}

func assemble(tokens ...lexer.Token) ([]Command, error) {
	asm := NewAssembler()
	asm.SetCommandTypes(map[string]CommandType{
		"CommandA": COMMAND_ADD,
		"commandb": COMMAND_XOR,
	})
	asm.SetTokens(tokens)
	return asm.Parse()
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()

	assert.False(asm.Verbose)
	assert.Equal(defaultCommandTypes, asm.CommandTypes())
	assert.Equal(defaultSpecialTokens, asm.SpecialTokens())

	commands, err := asm.Parse()
	assert.NoError(err)
	assert.Equal([]Command{}, commands)
}

func TestAssemblerCommand(t *testing.T) {
	assert := assert.New(t)

	commands, err := assemble(
		tokCommand("CommandA"), tokRegister("R1"), tokComma, tokNumber("1234"), tokSemi,
	)
	assert.NoError(err)

	expected := []Command{
		{COMMAND_ADD, []Argument{Register(1), Number(1234)}},
	}
	assert.Equal(expected, commands)
}

func TestAssemblerCommands(t *testing.T) {
	assert := assert.New(t)

	commands, err := assemble(
		tokCommand("CommandA"), tokRegister("R1"), tokComma, tokRegister("R2"), tokSemi,
		tokCommand("COMMANDB"), tokNumber("1234"), tokSemi,
		tokCommand("CommandC"), tokRegister("R2"), tokComma, tokNumber("-1"), tokComma, tokNumber("0"), tokSemi,
	)
	assert.NoError(err)

	expected := []Command{
		{COMMAND_ADD, []Argument{Register(1), Register(2)}},
		{COMMAND_XOR, []Argument{Number(1234)}},
		{COMMAND_UNKNOWN, []Argument{Register(2), Number(-1), Number(0)}},
	}
	assert.Equal(expected, commands)
}

func TestAssemblerIdempotent(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()
	asm.SetTokens([]lexer.Token{
		tokCommand("Load"), tokRegister("R1"), tokComma, tokNumber("1234"), tokSemi,
	})

	first, err := asm.Parse()
	assert.NoError(err)
	second, err := asm.Parse()
	assert.NoError(err)
	assert.Equal(first, second)

	asm.SetTokens(asm.Tokens())
	third, err := asm.Parse()
	assert.NoError(err)
	assert.Equal(first, third)
}

func TestAssemblerInvalid(t *testing.T) {
	table := [](struct {
		name   string
		tokens []lexer.Token
		detail error
	}){
		{"no command name",
			[]lexer.Token{tokRegister("R1"), tokNumber("1234")},
			ErrCommandName},
		{"missing argument",
			[]lexer.Token{tokCommand("CommandA"), tokSemi},
			ErrArgumentExpected},
		{"argument is a command",
			[]lexer.Token{tokCommand("CommandA"), tokCommand("CommandB")},
			ErrArgumentExpected},
		{"missing concatenation",
			[]lexer.Token{tokCommand("CommandA"), tokRegister("R1"), tokNumber("1234")},
			ErrSeparatorExpected},
		{"wrong concatenation",
			[]lexer.Token{tokCommand("CommandA"), tokRegister("R1"), {Kind: lexer.KIND_UNKNOWN, Text: ","}},
			ErrSeparatorExpected},
		{"unknown token",
			[]lexer.Token{{Kind: lexer.KIND_UNKNOWN, Text: "."}},
			ErrCommandName},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			commands, err := assemble(entry.tokens...)
			assert.Nil(commands)
			assert.True(errors.Is(err, ErrCommandInvalid), err)
			assert.True(errors.Is(err, entry.detail), err)

			var etok *ErrToken
			assert.True(errors.As(err, &etok))
		})
	}
}

func TestAssemblerIncomplete(t *testing.T) {
	assert := assert.New(t)

	commands, err := assemble(
		tokCommand("CommandA"), tokRegister("R1"), tokSemi,
		tokCommand("CommandA"), tokRegister("R1"), tokComma, tokNumber("7"),
	)
	assert.Nil(commands)
	assert.True(errors.Is(err, ErrCommandInvalid))

	var incomplete ErrIncomplete
	assert.True(errors.As(err, &incomplete))
	assert.Equal("Add {Register; 1}, {Number; 7}", string(incomplete))

	// A trailing concatenation also leaves the command open.
	_, err = assemble(tokCommand("CommandA"), tokRegister("R1"), tokComma)
	assert.True(errors.Is(err, ErrCommandInvalid))
}

func TestAssemblerNumberRange(t *testing.T) {
	assert := assert.New(t)

	commands, err := assemble(tokCommand("Load"), tokRegister("R1"), tokComma, tokNumber("-2147483648"), tokSemi)
	assert.NoError(err)
	assert.Equal(int64(-2147483648), commands[0].Arguments[1].Value)

	_, err = assemble(tokCommand("Load"), tokRegister("R1"), tokComma, tokNumber("2147483648"), tokSemi)
	assert.True(errors.Is(err, ErrCommandInvalid))

	var enum ErrParseNumber
	assert.True(errors.As(err, &enum))
	assert.Equal("2147483648", string(enum))
}

func TestAssemblerSpecialTokens(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()

	err := asm.SetSpecialTokens(map[SpecialToken]lexer.Token{
		SPECIAL_CONCATENATION: tokComma,
	})
	assert.True(errors.Is(err, ErrSpecialTokenUndefined))
	assert.Equal(ErrSpecialToken(SPECIAL_TERMINATION), err)
	assert.Equal(defaultSpecialTokens, asm.SpecialTokens())

	err = asm.SetSpecialTokens(nil)
	assert.True(errors.Is(err, ErrInvalidArgument))

	// Swap the roles of ',' and ';'.
	err = asm.SetSpecialTokens(map[SpecialToken]lexer.Token{
		SPECIAL_CONCATENATION: tokSemi,
		SPECIAL_TERMINATION:   tokComma,
	})
	assert.NoError(err)

	asm.SetTokens([]lexer.Token{
		tokCommand("xor"), tokRegister("R3"), tokSemi, tokNumber("5"), tokComma,
	})
	commands, err := asm.Parse()
	assert.NoError(err)
	assert.Equal([]Command{{COMMAND_XOR, []Argument{Register(3), Number(5)}}}, commands)
}

func TestAssemblerCommandTypes(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler()

	err := asm.SetCommandTypes(nil)
	assert.True(errors.Is(err, ErrInvalidArgument))

	err = asm.SetCommandTypes(map[string]CommandType{
		"PLUS": COMMAND_ADD,
		"nop":  CommandType(99),
	})
	assert.NoError(err)
	assert.Equal(map[string]CommandType{"plus": COMMAND_ADD, "nop": CommandType(99)}, asm.CommandTypes())

	asm.SetTokens([]lexer.Token{
		tokCommand("Plus"), tokRegister("R1"), tokComma, tokNumber("1"), tokSemi,
		tokCommand("NOP"), tokNumber("0"), tokSemi,
		tokCommand("add"), tokNumber("0"), tokSemi,
	})
	commands, err := asm.Parse()
	assert.NoError(err)
	assert.Equal(COMMAND_ADD, commands[0].Type)
	assert.Equal(CommandType(99), commands[1].Type)
	assert.Equal(COMMAND_UNKNOWN, commands[2].Type)
}

func TestCommandString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("Load {Register; 1}, {Number; 3}", NewCommand(COMMAND_LOAD, Register(1), Number(3)).String())
	assert.Equal("RightMove {Register; 2}, {Register; 4}", NewCommand(COMMAND_RIGHT_MOVE, Register(2), Register(4)).String())
	assert.Equal("Unknown ", NewCommand(COMMAND_UNKNOWN).String())
	assert.Equal("CommandType(99) {Number; -1}", NewCommand(CommandType(99), Number(-1)).String())
}
