/*
Package mos6502 is an instruction level interpreter for the MOS Technology
6502 CPU.

Decoding and execution are split in two: the opcode table maps every
documented opcode byte to a mnemonic, an address mode, a size and a base
cycle cost; the CPU resolves the effective address for the mode and hands
it to a per mnemonic operation that does not know which mode was used.

Decimal mode, interrupts and the stack instructions are not executed. The
stack instructions decode, but Step reports them as unsupported.

A minimal program run:

	mem := memory.NewSpace()
	mem.Write(mos6502.Program(
		mos6502.MustAssemble(mos6502.LDA, mos6502.Immediate, 0x12),
		mos6502.MustAssemble(mos6502.STA, mos6502.ZeroPage, 0x10),
		mos6502.MustAssemble(mos6502.BRK, mos6502.Implied),
	))
	cpu := mos6502.New(0, 0, 0)
	if _, err := cpu.Run(mem, 0); err != nil {
		// handle err
	}
*/
package mos6502
