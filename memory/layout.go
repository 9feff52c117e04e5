package memory

import (
	"fmt"
	"sort"
)

// Address space layout
const (
	ZeroPageStart uint16 = 0x0000
	ZeroPageEnd   uint16 = 0x00ff
	StackStart    uint16 = 0x0100
	StackEnd      uint16 = 0x01ff
	RAMStart      uint16 = 0x0200
	RAMEnd        uint16 = 0x3fff
	IOStart       uint16 = 0x4000
	IOEnd         uint16 = 0x7fff
	ROMStart      uint16 = 0x8000
	ROMEnd        uint16 = 0xfff9
	VectorStart   uint16 = 0xfffa
	VectorEnd     uint16 = 0xffff
)

// Vectors, reserved and never dispatched
const (
	NMIVector   uint16 = 0xfffa
	ResetVector uint16 = 0xfffc
	IRQVector   uint16 = 0xfffe
)

// Region is a named area of the address space.
type Region struct {
	Name       string
	addr, stop uint16
}

// Start of the region.
func (r Region) Start() uint16 { return r.addr }

// End of the region, inclusive.
func (r Region) End() uint16 { return r.stop }

// Contains reports if addr falls within the region.
func (r Region) Contains(addr uint16) bool {
	return addr >= r.addr && addr <= r.stop
}

func (r Region) String() string {
	return fmt.Sprintf("$%04X-$%04X: %s", r.addr, r.stop, r.Name)
}

// Regions of the address space
var (
	RegionZeroPage = Region{"zero page", ZeroPageStart, ZeroPageEnd}
	RegionStack    = Region{"stack", StackStart, StackEnd}
	RegionRAM      = Region{"program RAM", RAMStart, RAMEnd}
	RegionIO       = Region{"memory-mapped I/O", IOStart, IOEnd}
	RegionROM      = Region{"program ROM", ROMStart, ROMEnd}
	RegionVectors  = Region{"interrupt vectors", VectorStart, VectorEnd}
)

// layout is sorted by start address and covers every address exactly once.
var layout = regions{
	RegionZeroPage,
	RegionStack,
	RegionRAM,
	RegionIO,
	RegionROM,
	RegionVectors,
}

type regions []Region

func (r regions) Len() int           { return len(r) }
func (r regions) Less(i, j int) bool { return r[i].addr < r[j].addr }
func (r regions) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }

func (r regions) find(addr uint16) (Region, bool) {
	l := len(r)
	if i := sort.Search(l, func(i int) bool {
		return addr <= r[i].stop
	}); i < l && r[i].Contains(addr) {
		return r[i], true
	}
	return Region{}, false
}

// RegionOf returns the region addr belongs to.
func RegionOf(addr uint16) Region {
	r, _ := layout.find(addr)
	return r
}

// Layout returns a copy of the address space regions in address order.
func Layout() []Region {
	out := make([]Region, len(layout))
	copy(out, layout)
	return out
}
