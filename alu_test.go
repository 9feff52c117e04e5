package mos6502

import "testing"

// Signed overflow must agree with a wide signed addition for every pair
func TestOverflow(t *testing.T) {
	for a := 0; a < 0x100; a++ {
		for b := 0; b < 0x100; b++ {
			r, n, v, z, c := adc(uint8(a), uint8(b))
			sum := int(int8(a)) + int(int8(b))
			if want := sum < -128 || sum > 127; v != want {
				t.Fatalf("$%02X+$%02X: expected V=%t, got %t", a, b, want, v)
			}
			if want := a+b > 0xff; c != want {
				t.Fatalf("$%02X+$%02X: expected C=%t, got %t", a, b, want, c)
			}
			if r != uint8(a+b) || n != (r&0x80 != 0) || z != (r == 0) {
				t.Fatalf("$%02X+$%02X: unexpected result $%02X N=%t Z=%t", a, b, r, n, z)
			}

			r, _, v, _, c = sbc(uint8(a), uint8(b))
			diff := int(int8(a)) - int(int8(b))
			if want := diff < -128 || diff > 127; v != want {
				t.Fatalf("$%02X-$%02X: expected V=%t, got %t", a, b, want, v)
			}
			if want := a >= b; c != want {
				t.Fatalf("$%02X-$%02X: expected C=%t, got %t", a, b, want, c)
			}
			if r != uint8(a-b) {
				t.Fatalf("$%02X-$%02X: expected $%02X, got $%02X", a, b, uint8(a-b), r)
			}
		}
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		Name  string
		Func  func(uint8, bool) (uint8, bool)
		In    uint8
		Carry bool
		Out   uint8
		C     bool
	}{
		{"rol", rol, 0x80, false, 0x00, true},
		{"rol", rol, 0x40, true, 0x81, false},
		{"ror", ror, 0x01, false, 0x00, true},
		{"ror", ror, 0x02, true, 0x81, false},
	}
	for _, test := range tests {
		out, c := test.Func(test.In, test.Carry)
		if out != test.Out || c != test.C {
			t.Fatalf("%s $%02X C=%t: expected $%02X C=%t, got $%02X C=%t",
				test.Name, test.In, test.Carry, test.Out, test.C, out, c)
		}
	}
}
