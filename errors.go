package mos6502

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrUnknownOpcode = errors.New("mos6502: unknown opcode")
	ErrOperandCount  = errors.New("mos6502: operand count mismatch")
	ErrUnsupported   = errors.New("mos6502: unsupported instruction")
)

// UnknownOpcodeError is returned for a byte that has no opcode table entry.
type UnknownOpcodeError struct {
	Opcode uint8
}

func (err *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("mos6502: unknown opcode $%02X", err.Opcode)
}

// Is matches ErrUnknownOpcode.
func (err *UnknownOpcodeError) Is(target error) bool {
	return target == ErrUnknownOpcode
}

// EncodingError is returned when a mnemonic has no opcode in an address mode.
type EncodingError struct {
	Mnemonic Mnemonic
	Mode     AddressMode
}

func (err *EncodingError) Error() string {
	return fmt.Sprintf("mos6502: no opcode for %s in %s mode", err.Mnemonic, err.Mode)
}

// Is matches ErrUnknownOpcode.
func (err *EncodingError) Is(target error) bool {
	return target == ErrUnknownOpcode
}

// OperandCountError is returned when an instruction is encoded with the
// wrong number of operand bytes.
type OperandCountError struct {
	Opcode   uint8
	Expected int
	Got      int
}

func (err *OperandCountError) Error() string {
	what := "many"
	if err.Got < err.Expected {
		what = "few"
	}
	return fmt.Sprintf("mos6502: too %s operands for opcode $%02X: expected %d, got %d",
		what, err.Opcode, err.Expected, err.Got)
}

// Is matches ErrOperandCount.
func (err *OperandCountError) Is(target error) bool {
	return target == ErrOperandCount
}

// UnsupportedError is returned for documented instructions the CPU decodes
// but does not execute, such as the stack operations.
type UnsupportedError struct {
	Mnemonic Mnemonic
}

func (err *UnsupportedError) Error() string {
	return fmt.Sprintf("mos6502: %s is not supported", err.Mnemonic)
}

// Is matches ErrUnsupported.
func (err *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// StepError records where a step failed.
type StepError struct {
	PC  uint16
	Err error
}

func (err *StepError) Error() string {
	return fmt.Sprintf("%v at $%04X", err.Err, err.PC)
}

func (err *StepError) Unwrap() error {
	return err.Err
}
