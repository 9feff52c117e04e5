package mos6502

// Binary arithmetic only; the carry flag is an output of adc and sbc, it is
// not consumed as carry-in or borrow.

func overflow(a, b, r uint8) bool  { return (a^r)&(b^r)&0x80 == 0x80 }
func underflow(a, b, r uint8) bool { return (a^b)&(a^r)&0x80 == 0x80 }

// adc calculation
func adc(a, b uint8) (r uint8, n, v, z, c bool) {
	t := uint16(a) + uint16(b)
	r = uint8(t)
	n = r&0x80 == 0x80
	v = overflow(a, b, r)
	z = r == 0
	c = t&0xff00 != 0
	return
}

// sbc calculation
func sbc(a, b uint8) (r uint8, n, v, z, c bool) {
	r = a - b
	n = r&0x80 == 0x80
	v = underflow(a, b, r)
	z = r == 0
	c = a >= b
	return
}

// asl returns the shifted value and the bit shifted out
func asl(v uint8) (uint8, bool) { return v << 1, v&0x80 == 0x80 }

// lsr returns the shifted value and the bit shifted out
func lsr(v uint8) (uint8, bool) { return v >> 1, v&0x01 == 0x01 }

// rol rotates carry in at bit 0
func rol(v uint8, carry bool) (uint8, bool) {
	r := v << 1
	if carry {
		r |= 0x01
	}
	return r, v&0x80 == 0x80
}

// ror rotates carry in at bit 7
func ror(v uint8, carry bool) (uint8, bool) {
	r := v >> 1
	if carry {
		r |= 0x80
	}
	return r, v&0x01 == 0x01
}
