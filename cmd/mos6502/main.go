// Command mos6502 runs a 6502 program until it executes a BRK, fails, or
// hits the step limit, then reports the final CPU state.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/tehmaze/mos6502"
	"github.com/tehmaze/mos6502/memory"
)

const usage = "Usage: mos6502 [-a $00] [-x $00] [-y $00] [-steps 10000] [-trace] [-model 6502] [-v] -hex \"A9 12 00\" | filename"

func main() {
	var (
		a, x, y  string
		steps    int
		trace    bool
		verbose  bool
		model    string
		hexBytes string
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&a, "a", "0", "initial accumulator (hex or decimal)")
	flagSet.StringVar(&x, "x", "0", "initial X index register (hex or decimal)")
	flagSet.StringVar(&y, "y", "0", "initial Y index register (hex or decimal)")
	flagSet.IntVar(&steps, "steps", 10000, "maximum number of instructions, 0 for no limit")
	flagSet.BoolVar(&trace, "trace", false, "print every instruction before it executes")
	flagSet.BoolVar(&verbose, "v", false, "debug logging")
	flagSet.StringVar(&model, "model", "6502", "CPU model for timing: "+strings.Join(mos6502.ModelNames(), ", "))
	flagSet.StringVar(&hexBytes, "hex", "", "program as hex bytes, instead of a file")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println(usage)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(os.Stderr, verbose)

	var regs [3]uint8
	for i, value := range []string{a, x, y} {
		v, err := parseUint8Flag(value)
		if err != nil {
			log.WithField("flag", string("axy"[i])).WithError(err).Error("invalid register value")
			os.Exit(1)
		}
		regs[i] = v
	}

	cpuModel, ok := mos6502.ModelByName(model)
	if !ok {
		log.WithField("model", model).Error("unknown model")
		os.Exit(1)
	}

	program, err := loadProgram(flagSet.Arg(0), hexBytes)
	if err != nil {
		log.WithError(err).Error("can't load program")
		os.Exit(1)
	}

	mem := memory.NewSpace()
	if _, err = mem.Write(program); err != nil {
		log.WithError(err).Error("can't load program")
		os.Exit(1)
	}
	log.WithFields(logrus.Fields{
		"size":  len(program),
		"start": fmt.Sprintf("$%04X", memory.ROMStart),
		"model": cpuModel.Name,
	}).Debug("program loaded")
	if verbose {
		listing(log, mem, memory.ROMStart, mem.Cursor())
	}

	cpu := mos6502.New(regs[0], regs[1], regs[2])
	if trace {
		cpu.Attach(mos6502.InstructionPrinter(func(s string) { fmt.Println(s) }))
	}

	n, err := cpu.Run(mem, steps)
	fields := logrus.Fields{
		"pc":     fmt.Sprintf("$%04X", cpu.PC()),
		"opcode": fmt.Sprintf("$%02X", cpu.Opcode()),
		"cycles": cpu.Cycles(),
		"steps":  n,
	}
	if err != nil {
		fields["bytes"] = fmt.Sprintf("% X", memory.Dump(mem, cpu.PC(), 3))
		log.WithFields(fields).WithError(err).Error("execution failed")
		report(os.Stdout, cpu, mem, cpuModel)
		os.Exit(1)
	}

	if cpu.Halted() {
		log.WithFields(fields).Info("halted")
	} else {
		log.WithFields(fields).Warn("step limit reached")
	}
	report(os.Stdout, cpu, mem, cpuModel)
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.Out = w
	log.Formatter = &logrus.TextFormatter{
		DisableColors:    !isTerminal(w),
		DisableTimestamp: true,
	}
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func parseUint8Flag(value string) (uint8, error) {
	if strings.HasPrefix(value, "$") {
		value = "0x" + value[1:]
	}
	parsed, err := strconv.ParseUint(value, 0, 8)
	if err != nil {
		return 0, err
	}
	return uint8(parsed), nil
}

// parseHex parses whitespace separated hex bytes, an optional "$" or "0x"
// prefix is allowed on every byte
func parseHex(s string) ([]byte, error) {
	var b []byte
	for _, field := range strings.Fields(s) {
		field = strings.TrimPrefix(strings.TrimPrefix(field, "$"), "0x")
		v, err := strconv.ParseUint(field, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid byte %q: %w", field, err)
		}
		b = append(b, uint8(v))
	}
	return b, nil
}

// loadProgram reads the program from exactly one of name or hex
func loadProgram(name, hex string) ([]byte, error) {
	var (
		program []byte
		err     error
	)
	switch {
	case name != "" && hex != "":
		return nil, errors.New("both a file and -hex given")
	case name != "":
		var rom memory.ROM
		if rom, err = memory.Load(name); err != nil {
			return nil, err
		}
		program = rom
	case hex != "":
		if program, err = parseHex(hex); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("no program given, " + usage)
	}

	if len(program) == 0 {
		return nil, errors.New("empty program")
	}
	if size := int(memory.ROMEnd-memory.ROMStart) + 1; len(program) > size {
		return nil, fmt.Errorf("program of %d bytes exceeds ROM size of %d bytes", len(program), size)
	}
	return program, nil
}

func listing(log *logrus.Logger, mem memory.Memory, start, end uint16) {
	for addr := start; addr < end; {
		text, size := mos6502.Disassemble(mem, addr)
		log.WithField("addr", fmt.Sprintf("$%04X", addr)).Debug(text)
		addr += uint16(size)
	}
}

func report(w io.Writer, cpu *mos6502.CPU, mem memory.Memory, model mos6502.Model) {
	fmt.Fprintf(w, "registers: %s\n", cpu.Registers())
	fmt.Fprintf(w, "region...: %s\n", memory.RegionOf(cpu.PC()))
	fmt.Fprintf(w, "cycles...: %d (%s on %s)\n", cpu.Cycles(), model.Duration(cpu.Cycles()), model)
	fmt.Fprintln(w, "zero page:")
	zp := make([]byte, 0x40)
	memory.ReaderAt{Memory: mem}.ReadAt(zp, int64(memory.ZeroPageStart))
	for i := 0; i < len(zp); i += 0x10 {
		fmt.Fprintf(w, "%04X % X\n", i, zp[i:i+0x10])
	}
}
