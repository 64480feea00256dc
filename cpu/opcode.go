package cpu

import (
	"fmt"
	"strings"
)

// CommandType is the operation of a command.
type CommandType int

const (
	COMMAND_UNKNOWN    = CommandType(0) // Unknown
	COMMAND_ADD        = CommandType(1) // Add
	COMMAND_LOAD       = CommandType(2) // Load
	COMMAND_LEFT_MOVE  = CommandType(3) // LeftMove
	COMMAND_RIGHT_MOVE = CommandType(4) // RightMove
	COMMAND_XOR        = CommandType(5) // Xor
)

var commandTypeName = map[CommandType]string{
	COMMAND_UNKNOWN:    "Unknown",
	COMMAND_ADD:        "Add",
	COMMAND_LOAD:       "Load",
	COMMAND_LEFT_MOVE:  "LeftMove",
	COMMAND_RIGHT_MOVE: "RightMove",
	COMMAND_XOR:        "Xor",
}

func (ct CommandType) String() string {
	name, ok := commandTypeName[ct]
	if !ok {
		return fmt.Sprintf("CommandType(%d)", int(ct))
	}
	return name
}

// ArgumentType is the type of a command argument.
type ArgumentType int

const (
	ARG_REGISTER = ArgumentType(0) // Register
	ARG_NUMBER   = ArgumentType(1) // Number
)

func (at ArgumentType) String() string {
	switch at {
	case ARG_REGISTER:
		return "Register"
	case ARG_NUMBER:
		return "Number"
	}
	return fmt.Sprintf("ArgumentType(%d)", int(at))
}

// SpecialToken is a grammatical role played by a delimiter.
type SpecialToken int

const (
	SPECIAL_CONCATENATION = SpecialToken(0) // Concatenation
	SPECIAL_TERMINATION   = SpecialToken(1) // Termination
)

// specialTokens lists every role that must be bound.
var specialTokens = []SpecialToken{SPECIAL_CONCATENATION, SPECIAL_TERMINATION}

func (st SpecialToken) String() string {
	switch st {
	case SPECIAL_CONCATENATION:
		return "Concatenation"
	case SPECIAL_TERMINATION:
		return "Termination"
	}
	return fmt.Sprintf("SpecialToken(%d)", int(st))
}

// Argument is a register index (1-based) or a literal number.
type Argument struct {
	Type  ArgumentType
	Value int64
}

// Register makes a register argument.
func Register(index int64) Argument {
	return Argument{Type: ARG_REGISTER, Value: index}
}

// Number makes a literal number argument.
func Number(value int64) Argument {
	return Argument{Type: ARG_NUMBER, Value: value}
}

func (arg Argument) String() string {
	return fmt.Sprintf("{%v; %d}", arg.Type, arg.Value)
}

// Command is a parsed instruction and its arguments.
type Command struct {
	Type      CommandType
	Arguments []Argument
}

// NewCommand makes a command.
func NewCommand(ct CommandType, args ...Argument) *Command {
	return &Command{Type: ct, Arguments: args}
}

// String renders the command as "Type {Register; 1}, {Number; 3}".
func (cmd *Command) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%v ", cmd.Type)
	for n, arg := range cmd.Arguments {
		if n > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}

	return sb.String()
}
