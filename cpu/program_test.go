package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram(t *testing.T) {
	assert := assert.New(t)

	prog, err := Parse("Load R1, 3; Load R2, -3;")
	assert.NoError(err)

	expected := []Command{
		{COMMAND_LOAD, []Argument{Register(1), Number(3)}},
		{COMMAND_LOAD, []Argument{Register(2), Number(-3)}},
	}
	assert.Equal(expected, prog.Commands)

	assert.Equal("Load {Register; 1}, {Number; 3}\nLoad {Register; 2}, {Number; -3}\n", prog.String())

	cpu, err := NewCpu(4, 4)
	assert.NoError(err)
	for _, cmd := range prog.All() {
		err = cpu.PerformCommand(cmd)
		assert.NoError(err)
	}

	assert.Equal([]int64{3, -3, 0, 0}, cpu.Registers())
	assert.True(cpu.SignFlag())
	assert.False(cpu.OverflowFlag())
	assert.Equal(2, cpu.CommandsCounter())
}

func TestProgramEmpty(t *testing.T) {
	assert := assert.New(t)

	prog, err := Parse("")
	assert.NoError(err)
	assert.Equal(0, len(prog.Commands))
	assert.Equal("", prog.String())
}

func TestProgramAll(t *testing.T) {
	assert := assert.New(t)

	prog, err := Parse("xor R1, 1; add R2, R1; rightmove R1, 1; leftmove R2, 2;")
	assert.NoError(err)

	var types []CommandType
	for n, cmd := range prog.All() {
		assert.Same(&prog.Commands[n], cmd)
		types = append(types, cmd.Type)
		if n == 2 {
			break
		}
	}
	assert.Equal([]CommandType{COMMAND_XOR, COMMAND_ADD, COMMAND_RIGHT_MOVE}, types)
}

func TestProgramInvalid(t *testing.T) {
	assert := assert.New(t)

	prog, err := Parse("Load R1, 3 Load R2, 4;")
	assert.Nil(prog)
	assert.True(errors.Is(err, ErrCommandInvalid))

	prog, err = Parse("Load R1, 3; .")
	assert.Nil(prog)
	assert.True(errors.Is(err, ErrCommandInvalid))
}
