package mos6502

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/tehmaze/mos6502/memory"
)

// Trace formats
const (
	FormatDefault = `{{printf "%07d" .C}} {{.PC}} {{.A}} {{.X}} {{.Y}} {{.P}}:{{.PS}} {{printf "%-8s" .RawX}} {{.Text}}`
	FormatCompact = `{{.PC}} {{printf "%-9s" .RawX}} {{printf "%-12s" .Text}} A:{{.A}} X:{{.X}} Y:{{.Y}} P:{{.P}}`
)

var (
	// TraceFormat is the default trace format
	TraceFormat = FormatDefault
)

// Trace describes an instruction that's about to be executed
type Trace struct {
	// Cycles elapsed
	Cycles uint64

	// Registers state for instruction
	Registers

	// Descriptor of the decoded opcode
	Descriptor

	// Raw opcode and operand bytes
	Raw []byte
}

// Operand formats the instruction's mnemonic arguments
func (in Trace) Operand() string {
	if len(in.Raw) == 0 {
		return ""
	}
	if in.Mode == Relative && len(in.Raw) > 1 {
		return fmt.Sprintf(" $%04X", in.Registers.PC+2+uint16(int8(in.Raw[1])))
	}
	return formatOperand(in.Mode, in.Raw[1:])
}

// Format returns a formatted string based on the TraceFormat template.
func (in Trace) Format() string {
	t, err := template.New("trace").Parse(TraceFormat)
	if err != nil {
		return err.Error()
	}
	var (
		b = new(bytes.Buffer)
		d = map[string]interface{}{
			"Mode": in.Mode,
			"C":    in.Cycles,
			"M":    in.Mnemonic,
			"R":    in.Registers,
			"PC":   fmt.Sprintf("%04X", in.Registers.PC),
			"P":    fmt.Sprintf("%02X", in.Registers.P),
			"PS":   fmtP(in.Registers.P),
			"A":    fmt.Sprintf("%02X", in.Registers.A),
			"X":    fmt.Sprintf("%02X", in.Registers.X),
			"Y":    fmt.Sprintf("%02X", in.Registers.Y),
			"Raw":  in.Raw,
			"RawX": padX(in.Raw),
			"Text": in.Mnemonic.String() + in.Operand(),
		}
	)
	if err := t.Execute(b, d); err != nil {
		return err.Error()
	}
	return b.String()
}

// formatOperand renders operand bytes in assembler syntax, including the
// separating space
func formatOperand(mode AddressMode, operands []uint8) string {
	if len(operands) < mode.Operands() {
		return ""
	}
	switch mode {
	case Accumulator:
		return " A"
	case Immediate:
		return fmt.Sprintf(" #$%02X", operands[0])
	case ZeroPage, Relative:
		return fmt.Sprintf(" $%02X", operands[0])
	case ZeroPageX:
		return fmt.Sprintf(" $%02X,X", operands[0])
	case ZeroPageY:
		return fmt.Sprintf(" $%02X,Y", operands[0])
	case Absolute:
		return fmt.Sprintf(" $%02X%02X", operands[1], operands[0])
	case AbsoluteX:
		return fmt.Sprintf(" $%02X%02X,X", operands[1], operands[0])
	case AbsoluteY:
		return fmt.Sprintf(" $%02X%02X,Y", operands[1], operands[0])
	case Indirect:
		return fmt.Sprintf(" ($%02X%02X)", operands[1], operands[0])
	case IndexedIndirect:
		return fmt.Sprintf(" ($%02X,X)", operands[0])
	case IndirectIndexed:
		return fmt.Sprintf(" ($%02X),Y", operands[0])
	default:
		return ""
	}
}

// Disassemble the instruction at addr, returning its text and size. Bytes
// without an opcode are rendered as data.
func Disassemble(mem memory.Memory, addr uint16) (string, int) {
	d, err := Decode(mem.Fetch(addr))
	if err != nil {
		return fmt.Sprintf(".byte $%02X", mem.Fetch(addr)), 1
	}
	raw := make([]byte, d.Size)
	for i := range raw {
		raw[i] = mem.Fetch(addr + uint16(i))
	}
	t := Trace{Registers: Registers{PC: addr}, Descriptor: d, Raw: raw}
	return d.Mnemonic.String() + t.Operand(), d.Size
}

func padX(b []byte) (s string) {
	for i, c := range b {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%02X", c)
	}
	return
}

// Monitor for the CPU monitors instruction executions
type Monitor interface {
	// BeforeExecute gets called before instruction execution, returning false
	// will stop execution and halt the CPU.
	BeforeExecute(*CPU, Trace) bool
}

// InstructionPrinter will output a formatted string before execution.
type InstructionPrinter func(string)

// BeforeExecute triggers the printer function.
func (m InstructionPrinter) BeforeExecute(_ *CPU, in Trace) bool {
	m(in.Format())
	return true
}
