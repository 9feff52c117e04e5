package mos6502

import "github.com/tehmaze/mos6502/memory"

// CPU is a MOS Technology 6502 interpreter. It is not timing accurate: every
// instruction costs its base cycle count.
//
// The CPU does not own memory, it is handed to every Step.
type CPU struct {
	reg     Registers
	cycles  uint64
	halted  bool
	monitor Monitor

	// address mode of the instruction being executed
	addressMode AddressMode
}

// operation executes an instruction on an already resolved address
type operation func(cpu *CPU, mem memory.Memory, addr uint16)

// operations are indexed by mnemonic; nil entries are decoded but not
// executed
var operations = [mnemonics]operation{
	ADC: (*CPU).adc,
	AND: (*CPU).and,
	ASL: (*CPU).asl,
	BCC: (*CPU).bcc,
	BCS: (*CPU).bcs,
	BEQ: (*CPU).beq,
	BIT: (*CPU).bit,
	BMI: (*CPU).bmi,
	BNE: (*CPU).bne,
	BPL: (*CPU).bpl,
	BRK: (*CPU).brk,
	BVC: (*CPU).bvc,
	BVS: (*CPU).bvs,
	CLC: (*CPU).clc,
	CLD: (*CPU).cld,
	CLI: (*CPU).cli,
	CLV: (*CPU).clv,
	CMP: (*CPU).cmp,
	CPX: (*CPU).cpx,
	CPY: (*CPU).cpy,
	DEC: (*CPU).dec,
	DEX: (*CPU).dex,
	DEY: (*CPU).dey,
	EOR: (*CPU).eor,
	INC: (*CPU).inc,
	INX: (*CPU).inx,
	INY: (*CPU).iny,
	JMP: (*CPU).jmp,
	LDA: (*CPU).lda,
	LDX: (*CPU).ldx,
	LDY: (*CPU).ldy,
	LSR: (*CPU).lsr,
	NOP: (*CPU).nop,
	ORA: (*CPU).ora,
	ROL: (*CPU).rol,
	ROR: (*CPU).ror,
	SBC: (*CPU).sbc,
	SEC: (*CPU).sec,
	SED: (*CPU).sed,
	SEI: (*CPU).sei,
	STA: (*CPU).sta,
	STX: (*CPU).stx,
	STY: (*CPU).sty,
	TAX: (*CPU).tax,
	TAY: (*CPU).tay,
	TXA: (*CPU).txa,
	TYA: (*CPU).tya,
	// Stack: JSR, RTS, RTI, PHA, PHP, PLA, PLP, TSX, TXS
}

// Supported reports if the CPU executes the mnemonic.
func Supported(m Mnemonic) bool {
	return m < mnemonics && operations[m] != nil
}

// New creates a new CPU with the program counter at the start of program ROM
// and all flags cleared.
func New(a, x, y uint8) *CPU {
	return &CPU{
		reg: Registers{
			PC: memory.ROMStart,
			A:  a,
			X:  x,
			Y:  y,
		},
	}
}

// Registers returns a copy of the CPU registers
func (cpu *CPU) Registers() Registers { return cpu.reg }

// PC is the program counter
func (cpu *CPU) PC() uint16 { return cpu.reg.PC }

// A is the accumulator
func (cpu *CPU) A() uint8 { return cpu.reg.A }

// X is the X index register
func (cpu *CPU) X() uint8 { return cpu.reg.X }

// Y is the Y index register
func (cpu *CPU) Y() uint8 { return cpu.reg.Y }

// Opcode is the most recently fetched opcode byte
func (cpu *CPU) Opcode() uint8 { return cpu.reg.IR }

func (cpu *CPU) Negative() bool  { return cpu.reg.Flag(N) }
func (cpu *CPU) Overflow() bool  { return cpu.reg.Flag(V) }
func (cpu *CPU) Break() bool     { return cpu.reg.Flag(B) }
func (cpu *CPU) Decimal() bool   { return cpu.reg.Flag(D) }
func (cpu *CPU) Interrupt() bool { return cpu.reg.Flag(I) }
func (cpu *CPU) Zero() bool      { return cpu.reg.Flag(Z) }
func (cpu *CPU) Carry() bool     { return cpu.reg.Flag(C) }

// Cycles is the total number of cycles spent since the CPU was created
func (cpu *CPU) Cycles() uint64 { return cpu.cycles }

// Halted returns true if the last step executed a BRK, or if the attached
// monitor stopped execution
func (cpu *CPU) Halted() bool { return cpu.halted }

// Attach a monitor
func (cpu *CPU) Attach(m Monitor) { cpu.monitor = m }

// Step fetches and executes the instruction at PC, returning the number of
// cycles spent. A failed step leaves the CPU state untouched, apart from the
// fetched opcode.
func (cpu *CPU) Step(mem memory.Memory) (int, error) {
	cpu.halted = false

	pc := cpu.reg.PC
	cpu.reg.IR = mem.Fetch(pc)

	d, err := Decode(cpu.reg.IR)
	if err != nil {
		return 0, &StepError{PC: pc, Err: err}
	}

	op := operations[d.Mnemonic]
	if op == nil {
		return 0, &StepError{PC: pc, Err: &UnsupportedError{Mnemonic: d.Mnemonic}}
	}

	if cpu.monitor != nil {
		if !cpu.monitor.BeforeExecute(cpu, cpu.trace(mem, d)) {
			cpu.halted = true
			return 0, nil
		}
	}

	addr, _ := Resolve(mem, d.Mode, pc, cpu.reg.X, cpu.reg.Y)
	cpu.addressMode = d.Mode

	// Jumps and taken branches overwrite PC after this
	cpu.reg.PC += uint16(d.Size)
	op(cpu, mem, addr)
	cpu.cycles += uint64(d.Cycles)

	return d.Cycles, nil
}

// Run steps until the CPU halts, a step fails, or limit steps have been
// executed. A limit of zero or less runs unbounded.
func (cpu *CPU) Run(mem memory.Memory, limit int) (steps int, err error) {
	for limit <= 0 || steps < limit {
		var cycles int
		if cycles, err = cpu.Step(mem); err != nil {
			return
		}
		if cycles > 0 {
			steps++
		}
		if cpu.halted {
			return
		}
	}
	return
}

func (cpu *CPU) trace(mem memory.Memory, d Descriptor) Trace {
	raw := make([]byte, d.Size)
	for i := range raw {
		raw[i] = mem.Fetch(cpu.reg.PC + uint16(i))
	}
	return Trace{
		Cycles:     cpu.cycles,
		Registers:  cpu.reg,
		Descriptor: d,
		Raw:        raw,
	}
}

// operand fetches the value an instruction operates on: the accumulator in
// accumulator mode, memory otherwise
func (cpu *CPU) operand(mem memory.Memory, addr uint16) uint8 {
	if cpu.addressMode == Accumulator {
		return cpu.reg.A
	}
	return mem.Fetch(addr)
}

// writeback stores the result of a read-modify-write instruction
func (cpu *CPU) writeback(mem memory.Memory, addr uint16, v uint8) {
	if cpu.addressMode == Accumulator {
		cpu.reg.A = v
	} else {
		mem.Store(addr, v)
	}
}

// Load/store

func (cpu *CPU) lda(mem memory.Memory, addr uint16) {
	cpu.reg.A = mem.Fetch(addr)
	cpu.reg.setZN(cpu.reg.A)
}

func (cpu *CPU) ldx(mem memory.Memory, addr uint16) {
	cpu.reg.X = mem.Fetch(addr)
	cpu.reg.setZN(cpu.reg.X)
}

func (cpu *CPU) ldy(mem memory.Memory, addr uint16) {
	cpu.reg.Y = mem.Fetch(addr)
	cpu.reg.setZN(cpu.reg.Y)
}

func (cpu *CPU) sta(mem memory.Memory, addr uint16) { mem.Store(addr, cpu.reg.A) }
func (cpu *CPU) stx(mem memory.Memory, addr uint16) { mem.Store(addr, cpu.reg.X) }
func (cpu *CPU) sty(mem memory.Memory, addr uint16) { mem.Store(addr, cpu.reg.Y) }

// Transfer

func (cpu *CPU) tax(_ memory.Memory, _ uint16) {
	cpu.reg.X = cpu.reg.A
	cpu.reg.setZN(cpu.reg.X)
}

func (cpu *CPU) tay(_ memory.Memory, _ uint16) {
	cpu.reg.Y = cpu.reg.A
	cpu.reg.setZN(cpu.reg.Y)
}

func (cpu *CPU) txa(_ memory.Memory, _ uint16) {
	cpu.reg.A = cpu.reg.X
	cpu.reg.setZN(cpu.reg.A)
}

func (cpu *CPU) tya(_ memory.Memory, _ uint16) {
	cpu.reg.A = cpu.reg.Y
	cpu.reg.setZN(cpu.reg.A)
}

// Increment/decrement

func (cpu *CPU) dec(mem memory.Memory, addr uint16) {
	v := mem.Fetch(addr) - 1
	mem.Store(addr, v)
	cpu.reg.setZN(v)
}

func (cpu *CPU) dex(_ memory.Memory, _ uint16) {
	cpu.reg.X--
	cpu.reg.setZN(cpu.reg.X)
}

func (cpu *CPU) dey(_ memory.Memory, _ uint16) {
	cpu.reg.Y--
	cpu.reg.setZN(cpu.reg.Y)
}

func (cpu *CPU) inc(mem memory.Memory, addr uint16) {
	v := mem.Fetch(addr) + 1
	mem.Store(addr, v)
	cpu.reg.setZN(v)
}

func (cpu *CPU) inx(_ memory.Memory, _ uint16) {
	cpu.reg.X++
	cpu.reg.setZN(cpu.reg.X)
}

func (cpu *CPU) iny(_ memory.Memory, _ uint16) {
	cpu.reg.Y++
	cpu.reg.setZN(cpu.reg.Y)
}

// Compare

func (cpu *CPU) cmp(mem memory.Memory, addr uint16) { cpu.reg.cmp(cpu.reg.A, mem.Fetch(addr)) }
func (cpu *CPU) cpx(mem memory.Memory, addr uint16) { cpu.reg.cmp(cpu.reg.X, mem.Fetch(addr)) }
func (cpu *CPU) cpy(mem memory.Memory, addr uint16) { cpu.reg.cmp(cpu.reg.Y, mem.Fetch(addr)) }

// Processor status register

func (cpu *CPU) clc(_ memory.Memory, _ uint16) { cpu.reg.P &= ^C }
func (cpu *CPU) cld(_ memory.Memory, _ uint16) { cpu.reg.P &= ^D }
func (cpu *CPU) cli(_ memory.Memory, _ uint16) { cpu.reg.P &= ^I }
func (cpu *CPU) clv(_ memory.Memory, _ uint16) { cpu.reg.P &= ^V }
func (cpu *CPU) sec(_ memory.Memory, _ uint16) { cpu.reg.P |= C }
func (cpu *CPU) sed(_ memory.Memory, _ uint16) { cpu.reg.P |= D }
func (cpu *CPU) sei(_ memory.Memory, _ uint16) { cpu.reg.P |= I }

// Logical operations

func (cpu *CPU) and(mem memory.Memory, addr uint16) {
	cpu.reg.A &= mem.Fetch(addr)
	cpu.reg.setZN(cpu.reg.A)
}

func (cpu *CPU) eor(mem memory.Memory, addr uint16) {
	cpu.reg.A ^= mem.Fetch(addr)
	cpu.reg.setZN(cpu.reg.A)
}

func (cpu *CPU) ora(mem memory.Memory, addr uint16) {
	cpu.reg.A |= mem.Fetch(addr)
	cpu.reg.setZN(cpu.reg.A)
}

func (cpu *CPU) bit(mem memory.Memory, addr uint16) {
	v := mem.Fetch(addr)
	cpu.reg.P = setFlag(cpu.reg.P, V, v&0x40 == 0x40)
	cpu.reg.P = setFlag(cpu.reg.P, N, v&0x80 == 0x80)
	cpu.reg.P = setFlag(cpu.reg.P, Z, v&cpu.reg.A == 0)
}

// Shift and rotate

func (cpu *CPU) shift(mem memory.Memory, addr uint16, v uint8, carry bool) {
	cpu.reg.P = setFlag(cpu.reg.P, C, carry)
	cpu.reg.setZN(v)
	cpu.writeback(mem, addr, v)
}

func (cpu *CPU) asl(mem memory.Memory, addr uint16) {
	v, c := asl(cpu.operand(mem, addr))
	cpu.shift(mem, addr, v, c)
}

func (cpu *CPU) lsr(mem memory.Memory, addr uint16) {
	v, c := lsr(cpu.operand(mem, addr))
	cpu.shift(mem, addr, v, c)
}

func (cpu *CPU) rol(mem memory.Memory, addr uint16) {
	v, c := rol(cpu.operand(mem, addr), cpu.reg.Flag(C))
	cpu.shift(mem, addr, v, c)
}

func (cpu *CPU) ror(mem memory.Memory, addr uint16) {
	v, c := ror(cpu.operand(mem, addr), cpu.reg.Flag(C))
	cpu.shift(mem, addr, v, c)
}

// Arithmetic

func (cpu *CPU) arith(r uint8, n, v, z, c bool) {
	cpu.reg.A = r
	cpu.reg.P = setFlag(cpu.reg.P, N, n)
	cpu.reg.P = setFlag(cpu.reg.P, V, v)
	cpu.reg.P = setFlag(cpu.reg.P, Z, z)
	cpu.reg.P = setFlag(cpu.reg.P, C, c)
}

func (cpu *CPU) adc(mem memory.Memory, addr uint16) {
	cpu.arith(adc(cpu.reg.A, mem.Fetch(addr)))
}

func (cpu *CPU) sbc(mem memory.Memory, addr uint16) {
	cpu.arith(sbc(cpu.reg.A, mem.Fetch(addr)))
}

// Branching, addr is the branch target relative to the next instruction

func (cpu *CPU) branch(taken bool, pc uint16) {
	if taken {
		cpu.reg.PC = pc
	}
}

func (cpu *CPU) bcc(_ memory.Memory, addr uint16) { cpu.branch(cpu.reg.P&C == 0, addr) }
func (cpu *CPU) bcs(_ memory.Memory, addr uint16) { cpu.branch(cpu.reg.P&C == C, addr) }
func (cpu *CPU) bne(_ memory.Memory, addr uint16) { cpu.branch(cpu.reg.P&Z == 0, addr) }
func (cpu *CPU) beq(_ memory.Memory, addr uint16) { cpu.branch(cpu.reg.P&Z == Z, addr) }
func (cpu *CPU) bpl(_ memory.Memory, addr uint16) { cpu.branch(cpu.reg.P&N == 0, addr) }
func (cpu *CPU) bmi(_ memory.Memory, addr uint16) { cpu.branch(cpu.reg.P&N == N, addr) }
func (cpu *CPU) bvc(_ memory.Memory, addr uint16) { cpu.branch(cpu.reg.P&V == 0, addr) }
func (cpu *CPU) bvs(_ memory.Memory, addr uint16) { cpu.branch(cpu.reg.P&V == V, addr) }

// Jumps

func (cpu *CPU) jmp(_ memory.Memory, addr uint16) {
	cpu.reg.PC = addr
}

// Misc.

func (cpu *CPU) nop(_ memory.Memory, _ uint16) {}

// brk halts; interrupt vectors are not dispatched
func (cpu *CPU) brk(_ memory.Memory, _ uint16) {
	cpu.halted = true
}

// Interface checks
var _ Monitor = InstructionPrinter(nil)
