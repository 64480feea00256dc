package cpu

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	MAX_BITS = 32 // Widest supported register word.
)

// TickListener is called on every tick of the Cpu. It must not add or
// remove listeners.
type TickListener func(cpu *Cpu)

// ListenerID identifies a registered TickListener.
type ListenerID int

type listener struct {
	id ListenerID
	fn TickListener
}

// Cpu is the simulation context of the register processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	bits     int     // Register word width.
	register []int64 // Register bank; R1 is register[0].
	overflow bool    // Last command overflowed the word width.
	sign     bool    // Last command stored a negative value.
	commands int     // Commands performed, including failed ones.
	ticks    int     // Ticks of the last command.
	text     string  // Text of the last command.

	listeners []listener
	nextID    ListenerID
}

// NewCpu creates a processor with the given word width and register count.
// The word width must be from 1 to MAX_BITS.
func NewCpu(bits int, registers int) (cpu *Cpu, err error) {
	if bits <= 0 || bits > MAX_BITS || registers <= 0 {
		err = ErrInvalidArgument
		return
	}

	cpu = &Cpu{
		bits:     bits,
		register: make([]int64, registers),
	}

	return
}

// Bits returns the register word width.
func (cpu *Cpu) Bits() int {
	return cpu.bits
}

// Registers returns a copy of the register bank.
func (cpu *Cpu) Registers() []int64 {
	return slices.Clone(cpu.register)
}

// OverflowFlag is set if the last command stored a truncated value.
func (cpu *Cpu) OverflowFlag() bool {
	return cpu.overflow
}

// SignFlag is set if the last command stored a negative value.
func (cpu *Cpu) SignFlag() bool {
	return cpu.sign
}

// CommandsCounter returns the number of commands attempted since reset.
func (cpu *Cpu) CommandsCounter() int {
	return cpu.commands
}

// Ticks returns the number of ticks fired by the last command.
func (cpu *Cpu) Ticks() int {
	return cpu.ticks
}

// CurrentCommandText returns the text of the last command.
func (cpu *Cpu) CurrentCommandText() string {
	return cpu.text
}

// AddListener registers a listener for ticks. Listeners are called in
// the order they were added.
func (cpu *Cpu) AddListener(fn TickListener) (id ListenerID, err error) {
	if fn == nil {
		err = ErrInvalidArgument
		return
	}

	cpu.nextID++
	id = cpu.nextID
	cpu.listeners = append(cpu.listeners, listener{id: id, fn: fn})

	return
}

// RemoveListener unregisters a listener.
func (cpu *Cpu) RemoveListener(id ListenerID) {
	cpu.listeners = slices.DeleteFunc(cpu.listeners, func(l listener) bool {
		return l.id == id
	})
}

// Reset clears the registers, counters, and flags. Listeners are kept.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.register)
	cpu.commands = 0
	cpu.clearState()
}

func (cpu *Cpu) clearState() {
	cpu.overflow = false
	cpu.sign = false
	cpu.ticks = 0
	cpu.text = ""
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "CurrentCommandText = %s\n\n", cpu.text)

	for n, value := range cpu.register {
		binary, _ := BinaryString(value, cpu.bits)
		fmt.Fprintf(&sb, "R%d = %s (%d)\n", n+1, binary, value)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "CommandsCounter = %s\n", humanize.Comma(int64(cpu.commands)))
	fmt.Fprintf(&sb, "TactsCounter = %s\n", humanize.Comma(int64(cpu.ticks)))
	fmt.Fprintf(&sb, "OverflowFlag = %v\n", cpu.overflow)
	fmt.Fprintf(&sb, "SignFlag = %v\n", cpu.sign)

	text = sb.String()
	return
}

// PerformCommand executes a single command, firing a tick before and
// after it. A failed command still counts, and its first tick stands.
func (cpu *Cpu) PerformCommand(command *Command) (err error) {
	if command == nil {
		err = ErrInvalidArgument
		return
	}

	cpu.clearState()
	cpu.commands++
	cpu.text = command.String()

	if cpu.Verbose {
		log.Printf("cpu: %d: %v", cpu.commands, cpu.text)
		defer func() {
			if err != nil {
				log.Printf("cpu: %d: %v", cpu.commands, err)
			}
		}()
	}

	cpu.tick()

	switch command.Type {
	case COMMAND_ADD, COMMAND_LOAD, COMMAND_LEFT_MOVE, COMMAND_RIGHT_MOVE, COMMAND_XOR:
		err = cpu.execute(command)
	default:
		err = errors.Join(ErrCommandInvalid, ErrCommandTypeUnknown)
	}
	if err != nil {
		return
	}

	cpu.tick()

	return
}

// execute performs one of the two-argument commands.
func (cpu *Cpu) execute(command *Command) (err error) {
	if len(command.Arguments) < 2 {
		err = errors.Join(ErrCommandInvalid, ErrArgumentsMissing)
		return
	}

	dst := command.Arguments[0]
	src := command.Arguments[1]

	if dst.Type != ARG_REGISTER {
		err = errors.Join(ErrCommandArgumentInvalid, ErrRegisterExpected)
		return
	}

	value, err := cpu.Resolve(src)
	if err != nil {
		return
	}
	casted := cast(value, cpu.bits)

	var result int64
	if command.Type == COMMAND_LOAD {
		result = value
	} else {
		var input int64
		input, err = cpu.Resolve(dst)
		if err != nil {
			return
		}

		switch command.Type {
		case COMMAND_ADD:
			result = input + casted
		case COMMAND_LEFT_MOVE:
			result = shiftLeft(input, casted)
		case COMMAND_RIGHT_MOVE:
			result = shiftRight(input, casted)
		case COMMAND_XOR:
			result = input ^ casted
		}
	}

	err = cpu.store(dst.Value, result)

	return
}

// Resolve returns the value of an argument: the contents of a register,
// or the literal number.
func (cpu *Cpu) Resolve(arg Argument) (value int64, err error) {
	if arg.Type != ARG_REGISTER {
		value = arg.Value
		return
	}

	err = cpu.checkRegister(arg.Value)
	if err != nil {
		return
	}

	value = cpu.register[arg.Value-1]
	return
}

func (cpu *Cpu) checkRegister(index int64) (err error) {
	if index < 1 || index > int64(len(cpu.register)) {
		err = ErrRegister(index)
	}
	return
}

// store writes value, cast to the word width, to a register and
// raises the overflow and sign flags as needed.
func (cpu *Cpu) store(index int64, value int64) (err error) {
	err = cpu.checkRegister(index)
	if err != nil {
		return
	}

	casted := cast(value, cpu.bits)
	cpu.register[index-1] = casted

	if casted != value {
		cpu.overflow = true
	}
	if casted < 0 {
		cpu.sign = true
	}

	return
}

// tick counts a tick and notifies the listeners.
func (cpu *Cpu) tick() {
	cpu.ticks++

	for _, l := range cpu.listeners {
		l.fn(cpu)
	}
}
