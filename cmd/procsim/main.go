// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/procsim/cpu"
	"github.com/ezrec/procsim/emulator"
	"github.com/ezrec/procsim/translate"
)

const SEPARATOR = "\n-------------------------\n"

var (
	bits      int
	registers int
	defines   []string
	quiet     bool
	step      bool
	verbose   bool
	language  string
)

var rootCmd = &cobra.Command{
	Use:   "procsim [flags] FILE",
	Short: "Register processor simulator",
	Long: `Procsim assembles a program of register commands and runs it,
printing the processor state after every tick.

Expressions of the form $(...) are evaluated before assembly, with
BITS, REGISTERS, MIN_VALUE, MAX_VALUE, LINENO and every --define in
scope.
`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		simulate(args[0])
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.IntVarP(&bits, "bits", "b", emulator.BITS, "Register word width")
	flags.IntVarP(&registers, "registers", "r", emulator.REGISTERS, "Number of registers")
	flags.StringArrayVarP(&defines, "define", "D", nil, "Define NAME=VALUE for expressions")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Do not print the state after each tick")
	flags.BoolVarP(&step, "step", "s", false, "Wait for a key press before each command")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
	flags.StringVar(&language, "lang", "", "Message language, ie 'en-US'")
}

// stepper waits for a key press on a raw terminal.
type stepper struct {
	fd    int
	state *term.State
}

func newStepper() (st *stepper, err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}

	st = &stepper{fd: fd, state: state}
	return
}

// Wait for a key; returns false if the user asked to quit.
func (st *stepper) Wait() bool {
	if st == nil {
		return true
	}

	fmt.Print("[press a key, q to quit]\r\n")

	key := make([]byte, 1)
	_, err := os.Stdin.Read(key)
	if err != nil {
		return false
	}

	switch key[0] {
	case 'q', 'Q', 0x03, 0x04:
		return false
	}

	return true
}

func (st *stepper) Close() {
	if st != nil {
		term.Restore(st.fd, st.state)
	}
}

func simulate(path string) {
	if len(language) != 0 {
		err := translate.SetLanguage(language)
		if err != nil {
			log.Fatalf("--lang %v: %v", language, err)
		}
	}

	emu, err := emulator.NewEmulator(bits, registers)
	if err != nil {
		log.Fatalf("%v", err)
	}
	emu.Verbose = verbose

	for _, define := range defines {
		name, value, ok := strings.Cut(define, "=")
		if !ok || len(name) == 0 {
			log.Fatalf("--define %v: expected NAME=VALUE", define)
		}
		emu.Predefine(name, value)
	}

	inf, err := os.Open(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	defer inf.Close()

	err = emu.Load(inf)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	var st *stepper
	if step {
		st, err = newStepper()
		if err != nil {
			log.Fatalf("--step: %v", err)
		}
		defer st.Close()
	}

	if !quiet {
		emu.AddListener(func(proc *cpu.Cpu) {
			text := proc.String() + SEPARATOR + "\n"
			if st != nil {
				text = strings.ReplaceAll(text, "\n", "\r\n")
			}
			fmt.Print(text)
		})
	}

	for st.Wait() {
		done, err := emu.Tick()
		if err != nil {
			st.Close()
			log.Fatalf("%v: %v", path, err)
		}
		if done {
			break
		}
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
