package mos6502

import (
	"fmt"
	"io"
)

// Mnemonic is an instruction
type Mnemonic uint8

// mnemonics
const (
	ADC Mnemonic = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
	mnemonics // For counting
)

var mnemonicName = [mnemonics]string{
	"ADC", "AND", "ASL", "BCC", "BCS", "BEQ", "BIT", "BMI", "BNE", "BPL",
	"BRK", "BVC", "BVS", "CLC", "CLD", "CLI", "CLV", "CMP", "CPX", "CPY",
	"DEC", "DEX", "DEY", "EOR", "INC", "INX", "INY", "JMP", "JSR", "LDA",
	"LDX", "LDY", "LSR", "NOP", "ORA", "PHA", "PHP", "PLA", "PLP", "ROL",
	"ROR", "RTI", "RTS", "SBC", "SEC", "SED", "SEI", "STA", "STX", "STY",
	"TAX", "TAY", "TSX", "TXA", "TXS", "TYA",
}

func (m Mnemonic) String() string {
	if m < mnemonics {
		return mnemonicName[m]
	}
	return "???"
}

// ParseMnemonic returns the Mnemonic for its three letter name.
func ParseMnemonic(name string) (Mnemonic, bool) {
	for i, s := range mnemonicName {
		if s == name {
			return Mnemonic(i), true
		}
	}
	return 0, false
}

// opcode is a CPU operation code
type opcode struct {
	Mnemonic
	Size    int
	Cycles  int
	Mode    AddressMode
	defined bool
}

// opcodes are the documented NMOS 6502 operation codes with their published
// size and base cycle count; page crossing penalties are not included.
var opcodes = [0x100]opcode{
	0x00: {BRK, 1, 7, Implied, true},
	0x01: {ORA, 2, 6, IndexedIndirect, true},
	0x05: {ORA, 2, 3, ZeroPage, true},
	0x06: {ASL, 2, 5, ZeroPage, true},
	0x08: {PHP, 1, 3, Implied, true},
	0x09: {ORA, 2, 2, Immediate, true},
	0x0a: {ASL, 1, 2, Accumulator, true},
	0x0d: {ORA, 3, 4, Absolute, true},
	0x0e: {ASL, 3, 6, Absolute, true},
	0x10: {BPL, 2, 2, Relative, true},
	0x11: {ORA, 2, 5, IndirectIndexed, true},
	0x15: {ORA, 2, 4, ZeroPageX, true},
	0x16: {ASL, 2, 6, ZeroPageX, true},
	0x18: {CLC, 1, 2, Implied, true},
	0x19: {ORA, 3, 4, AbsoluteY, true},
	0x1d: {ORA, 3, 4, AbsoluteX, true},
	0x1e: {ASL, 3, 7, AbsoluteX, true},
	0x20: {JSR, 3, 6, Absolute, true},
	0x21: {AND, 2, 6, IndexedIndirect, true},
	0x24: {BIT, 2, 3, ZeroPage, true},
	0x25: {AND, 2, 3, ZeroPage, true},
	0x26: {ROL, 2, 5, ZeroPage, true},
	0x28: {PLP, 1, 4, Implied, true},
	0x29: {AND, 2, 2, Immediate, true},
	0x2a: {ROL, 1, 2, Accumulator, true},
	0x2c: {BIT, 3, 4, Absolute, true},
	0x2d: {AND, 3, 4, Absolute, true},
	0x2e: {ROL, 3, 6, Absolute, true},
	0x30: {BMI, 2, 2, Relative, true},
	0x31: {AND, 2, 5, IndirectIndexed, true},
	0x35: {AND, 2, 4, ZeroPageX, true},
	0x36: {ROL, 2, 6, ZeroPageX, true},
	0x38: {SEC, 1, 2, Implied, true},
	0x39: {AND, 3, 4, AbsoluteY, true},
	0x3d: {AND, 3, 4, AbsoluteX, true},
	0x3e: {ROL, 3, 7, AbsoluteX, true},
	0x40: {RTI, 1, 6, Implied, true},
	0x41: {EOR, 2, 6, IndexedIndirect, true},
	0x45: {EOR, 2, 3, ZeroPage, true},
	0x46: {LSR, 2, 5, ZeroPage, true},
	0x48: {PHA, 1, 3, Implied, true},
	0x49: {EOR, 2, 2, Immediate, true},
	0x4a: {LSR, 1, 2, Accumulator, true},
	0x4c: {JMP, 3, 3, Absolute, true},
	0x4d: {EOR, 3, 4, Absolute, true},
	0x4e: {LSR, 3, 6, Absolute, true},
	0x50: {BVC, 2, 2, Relative, true},
	0x51: {EOR, 2, 5, IndirectIndexed, true},
	0x55: {EOR, 2, 4, ZeroPageX, true},
	0x56: {LSR, 2, 6, ZeroPageX, true},
	0x58: {CLI, 1, 2, Implied, true},
	0x59: {EOR, 3, 4, AbsoluteY, true},
	0x5d: {EOR, 3, 4, AbsoluteX, true},
	0x5e: {LSR, 3, 7, AbsoluteX, true},
	0x60: {RTS, 1, 6, Implied, true},
	0x61: {ADC, 2, 6, IndexedIndirect, true},
	0x65: {ADC, 2, 3, ZeroPage, true},
	0x66: {ROR, 2, 5, ZeroPage, true},
	0x68: {PLA, 1, 4, Implied, true},
	0x69: {ADC, 2, 2, Immediate, true},
	0x6a: {ROR, 1, 2, Accumulator, true},
	0x6c: {JMP, 3, 5, Indirect, true},
	0x6d: {ADC, 3, 4, Absolute, true},
	0x6e: {ROR, 3, 6, Absolute, true},
	0x70: {BVS, 2, 2, Relative, true},
	0x71: {ADC, 2, 5, IndirectIndexed, true},
	0x75: {ADC, 2, 4, ZeroPageX, true},
	0x76: {ROR, 2, 6, ZeroPageX, true},
	0x78: {SEI, 1, 2, Implied, true},
	0x79: {ADC, 3, 4, AbsoluteY, true},
	0x7d: {ADC, 3, 4, AbsoluteX, true},
	0x7e: {ROR, 3, 7, AbsoluteX, true},
	0x81: {STA, 2, 6, IndexedIndirect, true},
	0x84: {STY, 2, 3, ZeroPage, true},
	0x85: {STA, 2, 3, ZeroPage, true},
	0x86: {STX, 2, 3, ZeroPage, true},
	0x88: {DEY, 1, 2, Implied, true},
	0x8a: {TXA, 1, 2, Implied, true},
	0x8c: {STY, 3, 4, Absolute, true},
	0x8d: {STA, 3, 4, Absolute, true},
	0x8e: {STX, 3, 4, Absolute, true},
	0x90: {BCC, 2, 2, Relative, true},
	0x91: {STA, 2, 6, IndirectIndexed, true},
	0x94: {STY, 2, 4, ZeroPageX, true},
	0x95: {STA, 2, 4, ZeroPageX, true},
	0x96: {STX, 2, 4, ZeroPageY, true},
	0x98: {TYA, 1, 2, Implied, true},
	0x99: {STA, 3, 5, AbsoluteY, true},
	0x9a: {TXS, 1, 2, Implied, true},
	0x9d: {STA, 3, 5, AbsoluteX, true},
	0xa0: {LDY, 2, 2, Immediate, true},
	0xa1: {LDA, 2, 6, IndexedIndirect, true},
	0xa2: {LDX, 2, 2, Immediate, true},
	0xa4: {LDY, 2, 3, ZeroPage, true},
	0xa5: {LDA, 2, 3, ZeroPage, true},
	0xa6: {LDX, 2, 3, ZeroPage, true},
	0xa8: {TAY, 1, 2, Implied, true},
	0xa9: {LDA, 2, 2, Immediate, true},
	0xaa: {TAX, 1, 2, Implied, true},
	0xac: {LDY, 3, 4, Absolute, true},
	0xad: {LDA, 3, 4, Absolute, true},
	0xae: {LDX, 3, 4, Absolute, true},
	0xb0: {BCS, 2, 2, Relative, true},
	0xb1: {LDA, 2, 5, IndirectIndexed, true},
	0xb4: {LDY, 2, 4, ZeroPageX, true},
	0xb5: {LDA, 2, 4, ZeroPageX, true},
	0xb6: {LDX, 2, 4, ZeroPageY, true},
	0xb8: {CLV, 1, 2, Implied, true},
	0xb9: {LDA, 3, 4, AbsoluteY, true},
	0xba: {TSX, 1, 2, Implied, true},
	0xbc: {LDY, 3, 4, AbsoluteX, true},
	0xbd: {LDA, 3, 4, AbsoluteX, true},
	0xbe: {LDX, 3, 4, AbsoluteY, true},
	0xc0: {CPY, 2, 2, Immediate, true},
	0xc1: {CMP, 2, 6, IndexedIndirect, true},
	0xc4: {CPY, 2, 3, ZeroPage, true},
	0xc5: {CMP, 2, 3, ZeroPage, true},
	0xc6: {DEC, 2, 5, ZeroPage, true},
	0xc8: {INY, 1, 2, Implied, true},
	0xc9: {CMP, 2, 2, Immediate, true},
	0xca: {DEX, 1, 2, Implied, true},
	0xcc: {CPY, 3, 4, Absolute, true},
	0xcd: {CMP, 3, 4, Absolute, true},
	0xce: {DEC, 3, 6, Absolute, true},
	0xd0: {BNE, 2, 2, Relative, true},
	0xd1: {CMP, 2, 5, IndirectIndexed, true},
	0xd5: {CMP, 2, 4, ZeroPageX, true},
	0xd6: {DEC, 2, 6, ZeroPageX, true},
	0xd8: {CLD, 1, 2, Implied, true},
	0xd9: {CMP, 3, 4, AbsoluteY, true},
	0xdd: {CMP, 3, 4, AbsoluteX, true},
	0xde: {DEC, 3, 7, AbsoluteX, true},
	0xe0: {CPX, 2, 2, Immediate, true},
	0xe1: {SBC, 2, 6, IndexedIndirect, true},
	0xe4: {CPX, 2, 3, ZeroPage, true},
	0xe5: {SBC, 2, 3, ZeroPage, true},
	0xe6: {INC, 2, 5, ZeroPage, true},
	0xe8: {INX, 1, 2, Implied, true},
	0xe9: {SBC, 2, 2, Immediate, true},
	0xea: {NOP, 1, 2, Implied, true},
	0xec: {CPX, 3, 4, Absolute, true},
	0xed: {SBC, 3, 4, Absolute, true},
	0xee: {INC, 3, 6, Absolute, true},
	0xf0: {BEQ, 2, 2, Relative, true},
	0xf1: {SBC, 2, 5, IndirectIndexed, true},
	0xf5: {SBC, 2, 4, ZeroPageX, true},
	0xf6: {INC, 2, 6, ZeroPageX, true},
	0xf8: {SED, 1, 2, Implied, true},
	0xf9: {SBC, 3, 4, AbsoluteY, true},
	0xfd: {SBC, 3, 4, AbsoluteX, true},
	0xfe: {INC, 3, 7, AbsoluteX, true},
}

type pair struct {
	Mnemonic
	AddressMode
}

// encodings maps a mnemonic and address mode back to its opcode
var encodings = make(map[pair]uint8)

func init() {
	for i, op := range opcodes {
		if op.defined {
			encodings[pair{op.Mnemonic, op.Mode}] = uint8(i)
		}
	}
}

// Descriptor describes a decoded operation code.
type Descriptor struct {
	Opcode   uint8
	Mnemonic Mnemonic
	Mode     AddressMode
	Size     int // Instruction size in bytes, including the opcode
	Cycles   int // Base cycle cost
}

func (d Descriptor) String() string {
	return fmt.Sprintf("$%02X %s %s (%d bytes, %d cycles)", d.Opcode, d.Mnemonic, d.Mode, d.Size, d.Cycles)
}

// Decode looks up the descriptor for an opcode byte.
func Decode(code uint8) (Descriptor, error) {
	op := opcodes[code]
	if !op.defined {
		return Descriptor{}, &UnknownOpcodeError{Opcode: code}
	}
	return Descriptor{
		Opcode:   code,
		Mnemonic: op.Mnemonic,
		Mode:     op.Mode,
		Size:     op.Size,
		Cycles:   op.Cycles,
	}, nil
}

// Lookup returns the opcode byte for a mnemonic in the given address mode.
func Lookup(m Mnemonic, mode AddressMode) (code uint8, ok bool) {
	code, ok = encodings[pair{m, mode}]
	return
}

// Instruction is an encoded instruction: a descriptor plus its operand bytes.
type Instruction struct {
	Descriptor
	operands []uint8
}

// Encode builds an instruction from an opcode byte and its operands. The
// number of operands must match the size of the instruction minus one.
func Encode(code uint8, operands ...uint8) (Instruction, error) {
	d, err := Decode(code)
	if err != nil {
		return Instruction{}, err
	}
	if want := d.Size - 1; len(operands) != want {
		return Instruction{}, &OperandCountError{
			Opcode:   code,
			Expected: want,
			Got:      len(operands),
		}
	}
	in := Instruction{Descriptor: d}
	if len(operands) > 0 {
		in.operands = append([]uint8(nil), operands...)
	}
	return in, nil
}

// Assemble builds an instruction from a mnemonic, address mode and operands.
func Assemble(m Mnemonic, mode AddressMode, operands ...uint8) (Instruction, error) {
	code, ok := Lookup(m, mode)
	if !ok {
		return Instruction{}, &EncodingError{Mnemonic: m, Mode: mode}
	}
	return Encode(code, operands...)
}

// MustAssemble is like Assemble but panics on error, for use in static
// program listings.
func MustAssemble(m Mnemonic, mode AddressMode, operands ...uint8) Instruction {
	in, err := Assemble(m, mode, operands...)
	if err != nil {
		panic(err)
	}
	return in
}

// Operands returns a copy of the operand bytes.
func (in Instruction) Operands() []uint8 {
	return append([]uint8(nil), in.operands...)
}

// Bytes returns the memory layout of the instruction: opcode then operands.
func (in Instruction) Bytes() []byte {
	b := make([]byte, 0, in.Size)
	b = append(b, in.Opcode)
	return append(b, in.operands...)
}

// WriteTo writes the memory layout of the instruction to w.
func (in Instruction) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(in.Bytes())
	return int64(n), err
}

func (in Instruction) String() string {
	return in.Mnemonic.String() + formatOperand(in.Mode, in.operands)
}

// Program concatenates the memory layout of instructions.
func Program(ins ...Instruction) []byte {
	var b []byte
	for _, in := range ins {
		b = append(b, in.Bytes()...)
	}
	return b
}
