package internal

import (
	"errors"
	"fmt"
)

// Errors reported by the VM. Step wraps them in an InstructionError so callers
// can match with errors.Is and still recover the failing PC and opcode.
var (
	ErrDecode                 = errors.New("decode error")
	ErrUnsupportedInstruction = errors.New("unsupported instruction")
	ErrStackOverflow          = errors.New("stack overflow")
	ErrStackUnderflow         = errors.New("stack underflow")
	ErrOutOfBounds            = errors.New("address out of bounds")
	ErrInvalidCount           = errors.New("cycle count must be positive")
	ErrProgramTooLarge        = errors.New("program size exceeds the maximum size")
	ErrInvalidEntryAddress    = errors.New("invalid entry address")
)

// InstructionError describes a failed cycle.
type InstructionError struct {
	PC     uint16 // address of the failing instruction
	Opcode uint16 // instruction word, zero if it could not be fetched
	Err    error
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("instruction %04X at %03X: %v", e.Opcode, e.PC, e.Err)
}

func (e *InstructionError) Unwrap() error {
	return e.Err
}
