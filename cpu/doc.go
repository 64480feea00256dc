// Package cpu implements the command assembler and the processor simulator
// of procsim.
//
// The Assembler groups lexer tokens into commands: a command name, then one
// or more register or number arguments separated by a concatenation token,
// ended by a termination token.
//
// The Cpu holds a bank of fixed-width signed registers, an overflow flag and
// a sign flag. Every stored result is truncated to the configured bit width
// and sign extended. Each command fires a tick before and after it executes,
// and every registered TickListener is called on each tick.
package cpu
