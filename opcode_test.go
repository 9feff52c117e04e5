package mos6502

import (
	"bytes"
	"errors"
	"testing"
)

func TestOpcodeTable(t *testing.T) {
	var defined int
	for code, op := range opcodes {
		if !op.defined {
			continue
		}
		defined++
		if op.Mnemonic >= mnemonics {
			t.Fatalf("$%02X: invalid mnemonic %d", code, op.Mnemonic)
		}
		if want := op.Mode.Operands() + 1; op.Size != want {
			t.Fatalf("$%02X %s: expected size %d for %s, got %d", code, op.Mnemonic, want, op.Mode, op.Size)
		}
		if op.Cycles < 2 || op.Cycles > 7 {
			t.Fatalf("$%02X %s: unexpected cycle count %d", code, op.Mnemonic, op.Cycles)
		}
	}
	if defined != 151 {
		t.Fatalf("expected 151 opcodes, got %d", defined)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		Code     uint8
		Mnemonic Mnemonic
		Mode     AddressMode
		Size     int
		Cycles   int
	}{
		{0xa9, LDA, Immediate, 2, 2},
		{0x85, STA, ZeroPage, 2, 3},
		{0x69, ADC, Immediate, 2, 2},
		{0xe0, CPX, Immediate, 2, 2},
		{0xa1, LDA, IndexedIndirect, 2, 6},
		{0x4c, JMP, Absolute, 3, 3},
		{0x6c, JMP, Indirect, 3, 5},
		{0x0a, ASL, Accumulator, 1, 2},
		{0x1e, ASL, AbsoluteX, 3, 7},
		{0xb6, LDX, ZeroPageY, 2, 4},
		{0xd0, BNE, Relative, 2, 2},
		{0x00, BRK, Implied, 1, 7},
		{0x20, JSR, Absolute, 3, 6},
	}
	for _, test := range tests {
		d, err := Decode(test.Code)
		if err != nil {
			t.Fatalf("$%02X: %v", test.Code, err)
		}
		if d.Opcode != test.Code || d.Mnemonic != test.Mnemonic || d.Mode != test.Mode || d.Size != test.Size || d.Cycles != test.Cycles {
			t.Fatalf("$%02X: expected %s %s (%d bytes, %d cycles), got %s",
				test.Code, test.Mnemonic, test.Mode, test.Size, test.Cycles, d)
		}
	}
}

func TestDecodeUnknown(t *testing.T) {
	for _, code := range []uint8{0x02, 0x03, 0x1a, 0x80, 0xeb, 0xff} {
		_, err := Decode(code)
		if !errors.Is(err, ErrUnknownOpcode) {
			t.Fatalf("$%02X: expected ErrUnknownOpcode, got %v", code, err)
		}
		var unknown *UnknownOpcodeError
		if !errors.As(err, &unknown) || unknown.Opcode != code {
			t.Fatalf("$%02X: expected *UnknownOpcodeError, got %v", code, err)
		}
	}
}

func TestLookup(t *testing.T) {
	for code, op := range opcodes {
		if !op.defined {
			continue
		}
		got, ok := Lookup(op.Mnemonic, op.Mode)
		if !ok || got != uint8(code) {
			t.Fatalf("%s %s: expected $%02X, got $%02X (%t)", op.Mnemonic, op.Mode, code, got, ok)
		}
	}
	if _, ok := Lookup(STA, Immediate); ok {
		t.Fatal("expected STA immediate to be absent")
	}
}

func TestEncode(t *testing.T) {
	in, err := Encode(0x8d, 0x00, 0x02)
	if err != nil {
		t.Fatal(err)
	}
	if in.Mnemonic != STA || in.Mode != Absolute {
		t.Fatalf("expected STA absolute, got %s", in.Descriptor)
	}
	if b := in.Bytes(); !bytes.Equal(b, []byte{0x8d, 0x00, 0x02}) {
		t.Fatalf("expected 8D 00 02, got % X", b)
	}
	if s := in.String(); s != "STA $0200" {
		t.Fatalf(`expected "STA $0200", got %q`, s)
	}

	// Operands returns a copy
	in.Operands()[0] = 0xff
	if in.Operands()[0] != 0x00 {
		t.Fatal("expected operands to be immutable")
	}
}

func TestEncodeOperandCount(t *testing.T) {
	tests := []struct {
		Code     uint8
		Operands []uint8
		Expected int
	}{
		{0xa9, nil, 1},
		{0xa9, []uint8{1, 2}, 1},
		{0x4c, []uint8{1}, 2},
		{0xea, []uint8{1}, 0},
	}
	for _, test := range tests {
		_, err := Encode(test.Code, test.Operands...)
		if !errors.Is(err, ErrOperandCount) {
			t.Fatalf("$%02X: expected ErrOperandCount, got %v", test.Code, err)
		}
		var count *OperandCountError
		if !errors.As(err, &count) {
			t.Fatalf("$%02X: expected *OperandCountError, got %T", test.Code, err)
		}
		if count.Expected != test.Expected || count.Got != len(test.Operands) {
			t.Fatalf("$%02X: expected %d/%d, got %d/%d",
				test.Code, test.Expected, len(test.Operands), count.Expected, count.Got)
		}
	}

	if _, err := Encode(0x02); !errors.Is(err, ErrUnknownOpcode) {
		t.Fatalf("expected ErrUnknownOpcode, got %v", err)
	}
}

func TestAssemble(t *testing.T) {
	if _, err := Assemble(STA, Immediate, 0x01); !errors.Is(err, ErrUnknownOpcode) {
		t.Fatalf("expected ErrUnknownOpcode, got %v", err)
	}
	var encoding *EncodingError
	if _, err := Assemble(JMP, ZeroPage, 0x01); !errors.As(err, &encoding) {
		t.Fatalf("expected *EncodingError, got %v", err)
	}

	var b bytes.Buffer
	for _, in := range []Instruction{
		MustAssemble(LDA, Immediate, 0x12),
		MustAssemble(STA, ZeroPage, 0x10),
		MustAssemble(BRK, Implied),
	} {
		if _, err := in.WriteTo(&b); err != nil {
			t.Fatal(err)
		}
	}
	if want := []byte{0xa9, 0x12, 0x85, 0x10, 0x00}; !bytes.Equal(b.Bytes(), want) {
		t.Fatalf("expected % X, got % X", want, b.Bytes())
	}
}

func TestMustAssemblePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustAssemble(LDA, Immediate)
}

func TestParseMnemonic(t *testing.T) {
	for m := Mnemonic(0); m < mnemonics; m++ {
		got, ok := ParseMnemonic(m.String())
		if !ok || got != m {
			t.Fatalf("expected %s, got %s (%t)", m, got, ok)
		}
	}
	if _, ok := ParseMnemonic("XXX"); ok {
		t.Fatal("expected XXX to be invalid")
	}
}
