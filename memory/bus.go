package memory

import "io"

// Memory implements a 16-bit address bus.
type Memory interface {
	// Fetch a byte
	Fetch(addr uint16) (value uint8)

	// Store a byte
	Store(addr uint16, value uint8)
}

// ReaderAt implements io.ReaderAt on Memory.
type ReaderAt struct {
	Memory
}

// ReadAt reads len(p) bytes into p starting at offset off in the address
// space. Reads are cut short at the end of the address space with io.EOF.
func (bus ReaderAt) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 || off >= Size {
		return 0, io.ErrShortBuffer
	}

	size := int64(len(p))
	if off+size > Size {
		size = Size - off
		err = io.EOF
	}
	for i := int64(0); i < size; i++ {
		p[i] = bus.Fetch(uint16(off + i))
	}
	return int(size), err
}

// Dump reads size bytes starting at addr, wrapping at the end of the
// address space.
func Dump(mem Memory, addr uint16, size int) []byte {
	p := make([]byte, size)
	for i := range p {
		p[i] = mem.Fetch(addr + uint16(i))
	}
	return p
}
