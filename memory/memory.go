package memory

import "os"

// Size of the 16-bit address space.
const Size = 0x10000

// ROM is Read-Only Memory.
type ROM []uint8

// Load a new ROM image from disk.
func Load(name string) (ROM, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return ROM(b), nil
}

// Fetch a byte at addr, reads past the image return 0xff.
func (mem ROM) Fetch(addr uint16) uint8 {
	if int(addr) >= len(mem) {
		return 0xff
	}
	return mem[addr]
}

// Store is a no-op.
func (ROM) Store(_ uint16, _ uint8) {}

// Interface checks
var (
	_ Memory = (*Space)(nil)
	_ Memory = ROM(nil)
)
