package cpu

import (
	"iter"
	"strings"

	"github.com/ezrec/procsim/lexer"
)

// Program is an assembled list of commands.
type Program struct {
	Commands []Command
}

// Parse tokenizes and assembles source text with the default grammar.
func Parse(source string) (prog *Program, err error) {
	return ParseWith(lexer.NewLexer(), NewAssembler(), source)
}

// ParseWith tokenizes and assembles source text with the given lexer and
// assembler, which may be reused across calls.
func ParseWith(lx *lexer.Lexer, asm *Assembler, source string) (prog *Program, err error) {
	lx.SetSource(source)
	asm.SetTokens(lx.Parse())

	commands, err := asm.Parse()
	if err != nil {
		return
	}

	prog = &Program{Commands: commands}
	return
}

// All iterates over the commands, by index.
func (prog *Program) All() iter.Seq2[int, *Command] {
	return func(yield func(index int, cmd *Command) bool) {
		for n := range prog.Commands {
			if !yield(n, &prog.Commands[n]) {
				return
			}
		}
	}
}

// String lists one command per line.
func (prog *Program) String() string {
	var sb strings.Builder

	for _, cmd := range prog.All() {
		sb.WriteString(cmd.String())
		sb.WriteString("\n")
	}

	return sb.String()
}
