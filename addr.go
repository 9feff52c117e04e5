package mos6502

import "github.com/tehmaze/mos6502/memory"

// AddressMode determines how the CPU will fetch the address
type AddressMode uint8

// Address modes
const (
	Implied AddressMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect
	IndirectIndexed
	addressModes // For counting
)

var addressModeName = [addressModes]string{
	Implied:         "implied",
	Accumulator:     "accumulator",
	Immediate:       "immediate",
	ZeroPage:        "zero-page",
	ZeroPageX:       "zero-page indexed X",
	ZeroPageY:       "zero-page indexed Y",
	Relative:        "relative",
	Absolute:        "absolute",
	AbsoluteX:       "absolute indexed X",
	AbsoluteY:       "absolute indexed Y",
	Indirect:        "indirect",
	IndexedIndirect: "indexed indirect",
	IndirectIndexed: "indirect indexed",
}

// operandSize is the number of operand bytes following the opcode
var operandSize = [addressModes]int{
	Implied:         0,
	Accumulator:     0,
	Immediate:       1,
	ZeroPage:        1,
	ZeroPageX:       1,
	ZeroPageY:       1,
	Relative:        1,
	Absolute:        2,
	AbsoluteX:       2,
	AbsoluteY:       2,
	Indirect:        2,
	IndexedIndirect: 1,
	IndirectIndexed: 1,
}

func (mode AddressMode) String() string {
	if mode < addressModes {
		return addressModeName[mode]
	}
	return "Invalid"
}

// Operands is the number of operand bytes an instruction in this mode carries.
func (mode AddressMode) Operands() int {
	if mode < addressModes {
		return operandSize[mode]
	}
	return 0
}

// HasAddress reports if the mode resolves to an effective address; implied
// and accumulator operations act on registers only.
func (mode AddressMode) HasAddress() bool {
	return mode != Implied && mode != Accumulator && mode < addressModes
}

// FetchWord is a helper to fetch a 16-bit little-endian word from memory
func FetchWord(mem memory.Memory, addr uint16) uint16 {
	var (
		lo = uint16(mem.Fetch(addr))
		hi = uint16(mem.Fetch(addr+1)) << 8
	)
	return lo | hi
}

// fetchZeroPageWord fetches a 16-bit pointer from the zero page, the high
// byte wraps within page zero.
func fetchZeroPageWord(mem memory.Memory, ptr uint8) uint16 {
	var (
		lo = uint16(mem.Fetch(memory.ZeroPageStart + uint16(ptr)))
		hi = uint16(mem.Fetch(memory.ZeroPageStart+uint16(ptr+1))) << 8
	)
	return lo | hi
}

// StoreWord is a helper to store a 16-bit word on a bus
func StoreWord(mem memory.Memory, addr, value uint16) {
	mem.Store(addr+0, uint8(value))
	mem.Store(addr+1, uint8(value>>8))
}

// Resolve computes the effective address for an instruction in the given
// mode located at pc. The operand bytes are read from pc+1 and pc+2. For
// implied and accumulator modes ok is false.
func Resolve(mem memory.Memory, mode AddressMode, pc uint16, x, y uint8) (addr uint16, ok bool) {
	switch mode {
	case Immediate:
		addr = pc + 1
	case ZeroPage:
		addr = memory.ZeroPageStart + uint16(mem.Fetch(pc+1))
	case ZeroPageX:
		addr = memory.ZeroPageStart + uint16(mem.Fetch(pc+1)+x)
	case ZeroPageY:
		addr = memory.ZeroPageStart + uint16(mem.Fetch(pc+1)+y)
	case Relative:
		off := int8(mem.Fetch(pc + 1))
		addr = pc + 2 + uint16(off)
	case Absolute:
		addr = FetchWord(mem, pc+1)
	case AbsoluteX:
		addr = FetchWord(mem, pc+1) + uint16(x)
	case AbsoluteY:
		addr = FetchWord(mem, pc+1) + uint16(y)
	case Indirect:
		addr = FetchWord(mem, FetchWord(mem, pc+1))
	case IndexedIndirect:
		addr = fetchZeroPageWord(mem, mem.Fetch(pc+1)+x)
	case IndirectIndexed:
		addr = fetchZeroPageWord(mem, mem.Fetch(pc+1)) + uint16(y)
	default:
		return 0, false
	}
	return addr, true
}
