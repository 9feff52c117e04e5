package mos6502

import "fmt"

// Registers are the CPU registers
type Registers struct {
	PC uint16 // Program counter
	P  uint8  // Processor status register
	A  uint8  // Accumulator register
	X  uint8  // X index register
	Y  uint8  // Y index register
	IR uint8  // Last fetched opcode
}

// Flag reports if a processor status register flag is set
func (reg Registers) Flag(flag uint8) bool {
	return reg.P&flag == flag
}

// setFlag sets a process status register flag
func setFlag(mask, flag uint8, set bool) uint8 {
	if set {
		return mask | flag
	}
	return mask & ^flag
}

func (reg *Registers) setZ(value uint8) {
	reg.P = setFlag(reg.P, Z, value == 0x00)
}

func (reg *Registers) setN(value uint8) {
	reg.P = setFlag(reg.P, N, value&0x80 != 0x00)
}

// setZN sets the Z and N flags based on the value
func (reg *Registers) setZN(value uint8) {
	reg.setZ(value)
	reg.setN(value)
}

// cmp compares two values and updates the Z, N and C flags accordingly
func (reg *Registers) cmp(a, b uint8) {
	reg.P = setFlag(reg.P, C, a >= b)
	reg.P = setFlag(reg.P, Z, a == b)
	reg.P = setFlag(reg.P, N, (a-b)&0x80 == 0x80)
}

func (reg Registers) String() string {
	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X P:%02X(%s)",
		reg.PC, reg.A, reg.X, reg.Y, reg.P, fmtP(reg.P))
}

// Processor status register flags
const (
	C uint8 = 1 << iota // Carry flag, 1 = true
	Z                   // Zero, 1 = Result zero
	I                   // IRQ disable, 1 = disable
	D                   // Decimal mode, 1 = true
	B                   // BRK command
	U                   // Unused
	V                   // Overflow, 1 = true
	N                   // Negative, 1 = true
)

func fmtP(p uint8) string {
	var o = []rune("········")
	for i, c := range []rune("NV-BDIZC") {
		if c != '-' && p&(1<<uint(7-i)) != 0 {
			o[i] = c
		}
	}
	return string(o)
}
