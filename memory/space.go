package memory

import "fmt"

// Space is the flat, byte-addressable storage behind the full 16-bit address
// range. Programs are placed with Write, which appends at a cursor that
// starts at the program ROM base.
type Space struct {
	mem    [Size]uint8
	cursor uint16
}

// NewSpace returns zeroed storage with the loader cursor at ROMStart.
func NewSpace() *Space {
	return &Space{cursor: ROMStart}
}

// Fetch a byte at addr.
func (s *Space) Fetch(addr uint16) uint8 {
	return s.mem[addr]
}

// Store a byte at addr.
func (s *Space) Store(addr uint16, value uint8) {
	s.mem[addr] = value
}

// Write appends p at the loader cursor and advances the cursor by len(p).
// The cursor wraps at the end of the address space.
func (s *Space) Write(p []byte) (n int, err error) {
	for _, b := range p {
		s.mem[s.cursor] = b
		s.cursor++
	}
	return len(p), nil
}

// Append is Write for individual bytes.
func (s *Space) Append(p ...uint8) {
	s.Write(p)
}

// Cursor is the address the next Write starts at.
func (s *Space) Cursor() uint16 {
	return s.cursor
}

// Seek moves the loader cursor to addr.
func (s *Space) Seek(addr uint16) {
	s.cursor = addr
}

// Reset fills the storage with the provided zero value and rewinds the
// loader cursor.
func (s *Space) Reset(zero uint8) *Space {
	for i := range s.mem {
		s.mem[i] = zero
	}
	s.cursor = ROMStart
	return s
}

func (s *Space) String() string {
	return fmt.Sprintf("Space{cursor:$%04X}", s.cursor)
}
