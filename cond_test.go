package mos6502

import (
	"fmt"
	"testing"

	"github.com/tehmaze/mos6502/memory"
)

const (
	condPass  = "    \x1b[1;32m✓\x1b[0m "
	condFail  = "    \x1b[1;31m✗\x1b[0m "
	condEqual = "\x1b[1;37m=\x1b[0m"
	condRange = "\x1b[1;37m∈\x1b[0m"
)

// state is what conditions are checked against
type state struct {
	CPU *CPU
	Mem memory.Memory
}

// cond is a condition checker for our test harness
type cond interface {
	Cond(state) bool
	String() string
}

// conds are multiple conditions combined
type conds struct {
	Any   bool   // Any condition that returns true will make this pass
	Conds []cond // conditions

	met, not []cond
}

func (t *conds) Cond(s state) bool {
	t.met = make([]cond, 0, len(t.Conds))
	t.not = make([]cond, 0, len(t.Conds))

	for _, c := range t.Conds {
		if c.Cond(s) {
			t.met = append(t.met, c)
		} else {
			t.not = append(t.not, c)
		}
	}

	if t.Any {
		return len(t.met) > 0
	}
	return len(t.met) == len(t.Conds)
}

func (t *conds) String() string {
	return fmt.Sprintf("%d/%d conditions met", len(t.met), len(t.Conds))
}

func (t *conds) Print(f func(...interface{})) {
	for _, c := range t.met {
		f(condPass + c.String())
	}
	for _, c := range t.not {
		f(condFail + c.String())
	}
}

// Register value conditions
type (
	condPC uint16
	condA  uint8
	condX  uint8
	condY  uint8
)

func (t condPC) Cond(s state) bool { return s.CPU.PC() == uint16(t) }
func (t condPC) String() string    { return fmt.Sprintf("PC     %s $%04X", condEqual, uint16(t)) }
func (t condA) Cond(s state) bool  { return s.CPU.A() == uint8(t) }
func (t condA) String() string     { return fmt.Sprintf("A      %s $%02X", condEqual, uint8(t)) }
func (t condX) Cond(s state) bool  { return s.CPU.X() == uint8(t) }
func (t condX) String() string     { return fmt.Sprintf("X      %s $%02X", condEqual, uint8(t)) }
func (t condY) Cond(s state) bool  { return s.CPU.Y() == uint8(t) }
func (t condY) String() string     { return fmt.Sprintf("Y      %s $%02X", condEqual, uint8(t)) }

// condFlag matches a single status flag
type condFlag struct {
	Flag uint8
	Set  bool
}

func (t condFlag) Cond(s state) bool { return s.CPU.Registers().Flag(t.Flag) == t.Set }
func (t condFlag) String() string {
	return fmt.Sprintf("%c      %s %t", "CZIDBUVN"[bitIndex(t.Flag)], condEqual, t.Set)
}

func bitIndex(flag uint8) int {
	for i := 0; i < 8; i++ {
		if flag == 1<<uint(i) {
			return i
		}
	}
	return 0
}

// condCycles are conditional cycle boundaries
type condCycles [2]uint64

func (t condCycles) Cond(s state) bool {
	if t[1] <= t[0] {
		return s.CPU.Cycles() == t[0]
	}
	return s.CPU.Cycles() >= t[0] && s.CPU.Cycles() <= t[1]
}

func (t condCycles) String() string {
	if t[1] <= t[0] {
		return fmt.Sprintf("cycles %s %d", condEqual, t[0])
	}
	return fmt.Sprintf("cycles %s [%d, %d]", condRange, t[0], t[1])
}

// condByte is a condition for the value of byte at Addr
type condByte struct {
	Addr  uint16 // Address of the byte
	Value uint8  // Value for comparison
}

func (t condByte) Cond(s state) bool { return s.Mem.Fetch(t.Addr) == t.Value }
func (t condByte) String() string {
	return fmt.Sprintf("$%04X  %s $%02X", t.Addr, condEqual, t.Value)
}

// condHalted is met once the CPU executed a BRK
type condHalted struct{}

func (condHalted) Cond(s state) bool { return s.CPU.Halted() }
func (condHalted) String() string    { return "halted" }

// condBytes compiles a slice of condByte to match data at addr
func condBytes(addr uint16, data ...uint8) []cond {
	c := make([]cond, len(data))
	for i, b := range data {
		c[i] = condByte{addr + uint16(i), b}
	}
	return c
}

// testProgram describes a program and the conditions it must meet
type testProgram struct {
	Name    string
	A, X, Y uint8
	Setup   func(memory.Memory) // Optional memory preparation
	Code    []Instruction
	Limit   int // Steps, defaults to 1000
	Pass    []cond
}

// run loads the program at ROMStart and runs it until the CPU halts or the
// step limit is hit, then checks the pass conditions.
func (p testProgram) run(t *testing.T) (*CPU, *memory.Space) {
	t.Helper()

	mem := memory.NewSpace()
	if p.Setup != nil {
		p.Setup(mem)
	}
	if _, err := mem.Write(Program(p.Code...)); err != nil {
		t.Fatal(err)
	}

	limit := p.Limit
	if limit == 0 {
		limit = 1000
	}

	cpu := New(p.A, p.X, p.Y)
	if testing.Verbose() {
		cpu.Attach(InstructionPrinter(func(s string) { t.Log(s) }))
	}
	if _, err := cpu.Run(mem, limit); err != nil {
		t.Fatalf("%s: %v", p.Name, err)
	}

	check := &conds{Conds: p.Pass}
	if !check.Cond(state{CPU: cpu, Mem: mem}) {
		check.Print(t.Log)
		t.Fatalf("%s: %s, registers %s", p.Name, check, cpu.Registers())
	}
	return cpu, mem
}
