// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/procsim/cpu"
	"github.com/ezrec/procsim/internal"
	"github.com/ezrec/procsim/lexer"
)

const (
	BITS      = 14 // Default register word width.
	REGISTERS = 4  // Default register count.
)

var reExpression = regexp.MustCompile(`\$\([^\$]*\)`)

// Emulator state. CPU + loaded program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program.

	predefines map[string]string
	index      int
	lexer      *lexer.Lexer
	asm        *cpu.Assembler
}

// NewEmulator creates a new emulator.
func NewEmulator(bits int, registers int) (emu *Emulator, err error) {
	proc, err := cpu.NewCpu(bits, registers)
	if err != nil {
		return
	}

	emu = &Emulator{
		Cpu:        proc,
		Program:    &cpu.Program{},
		predefines: map[string]string{},
		lexer:      lexer.NewLexer(),
		asm:        cpu.NewAssembler(),
	}

	return
}

// Predefine sets a constant visible to $(...) expressions.
func (emu *Emulator) Predefine(name string, value string) {
	emu.predefines[name] = value
}

func (emu *Emulator) constants() map[string]string {
	bits := emu.Cpu.Bits()
	return map[string]string{
		"BITS":      strconv.Itoa(bits),
		"REGISTERS": strconv.Itoa(len(emu.Cpu.Registers())),
		"MIN_VALUE": strconv.FormatInt(-(int64(1) << (bits - 1)), 10),
		"MAX_VALUE": strconv.FormatInt(int64(1)<<(bits-1)-1, 10),
	}
}

// Defines returns an iterator over all of the defines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.ConcatSeq2(maps.All(emu.constants()), maps.All(emu.predefines))
}

// Index returns the index of the next command to perform.
func (emu *Emulator) Index() int {
	return emu.index
}

// parenEval evaluates a starlark expression to an integer.
func parenEval(expr string, defines iter.Seq2[string, string]) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range defines {
		number, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Non-integer defines are not visible to expressions.
			continue
		}
		pred[key] = starlark.MakeInt64(number)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// expand replaces every $(...) on a line with its value.
func (emu *Emulator) expand(line string, lineno int) (text string, err error) {
	defines := internal.ConcatSeq2(emu.Defines(), maps.All(map[string]string{
		"LINENO": strconv.Itoa(lineno),
	}))

	text = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := parenEval(str[2:len(str)-1], defines)
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return fmt.Sprintf("%d", value)
	})

	return
}

// Load reads, assembles, and installs a program, then resets the CPU.
func (emu *Emulator) Load(input io.Reader) (err error) {
	var lines []string

	scanner := bufio.NewScanner(input)
	for lineno := 1; scanner.Scan(); lineno++ {
		var line string
		line, err = emu.expand(scanner.Text(), lineno)
		if err != nil {
			err = &ErrLine{LineNo: lineno, Err: err}
			return
		}
		lines = append(lines, line)
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	emu.lexer.Verbose = emu.Verbose
	emu.asm.Verbose = emu.Verbose

	prog, err := cpu.ParseWith(emu.lexer, emu.asm, strings.TrimSpace(strings.Join(lines, "\n")))
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %d commands", len(prog.Commands))
	}

	emu.Program = prog
	emu.Reset()

	return
}

// Reset rewinds the program and resets the CPU.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.index = 0
}

// Tick performs the next command of the program.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.index >= len(emu.Program.Commands) {
		done = true
		return
	}

	index := emu.index
	command := &emu.Program.Commands[index]
	emu.index++

	err = emu.Cpu.PerformCommand(command)
	if err != nil {
		err = &ErrRuntime{Index: index, Command: command.String(), Err: err}
		if emu.Verbose {
			log.Printf("emulator: %v", err)
		}
	}

	return
}

// Run performs commands until the program is done, or a command fails.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
