package mos6502

import (
	"sort"
	"strings"
	"time"
)

// Frequency scale
const (
	Hz  = 1
	KHz = 1000 * Hz
	MHz = 1000 * KHz
)

// Model of a MOS Technology 6502 compatible CPU. Only the clock differs
// between models as far as this interpreter is concerned.
type Model struct {
	Name      string
	Frequency float64 // Typical clock frequency in Hz
}

// Duration is the wall time the number of cycles takes on this model
func (m Model) Duration(cycles uint64) time.Duration {
	if m.Frequency <= 0 {
		return 0
	}
	return time.Duration(float64(cycles) * float64(time.Second) / m.Frequency)
}

func (m Model) String() string { return m.Name }

// Models
var (
	MOS6502 = Model{
		Name:      "MOS Technology 6502",
		Frequency: 1 * MHz,
	}

	MOS6507 = Model{
		Name:      "MOS Technology 6507",
		Frequency: 1.19 * MHz,
	}

	MOS6510 = Model{
		Name:      "MOS Technology 6510",
		Frequency: 1.023 * MHz, // On NTSC, for PAL use 0.985 MHz
	}

	MOS8502 = Model{
		Name:      "MOS Technology 8502",
		Frequency: 2 * MHz,
	}

	// Ricoh2A03 is the 8-bit microprocessor in the Nintendo Entertainment System (NTSC version)
	Ricoh2A03 = Model{
		Name:      "Ricoh 2A03",
		Frequency: 1.789773 * MHz,
	}

	// Ricoh2A07 is the 8-bit microprocessor in the Nintendo Entertainment System (PAL version)
	Ricoh2A07 = Model{
		Name:      "Ricoh 2A07",
		Frequency: 1.662607 * MHz,
	}
)

// Models by their short name, as accepted by ModelByName
var Models = map[string]Model{
	"6502": MOS6502,
	"6507": MOS6507,
	"6510": MOS6510,
	"8502": MOS8502,
	"2a03": Ricoh2A03,
	"2a07": Ricoh2A07,
}

// ModelByName looks up a model by short name, case insensitive
func ModelByName(name string) (Model, bool) {
	m, ok := Models[strings.ToLower(name)]
	return m, ok
}

// ModelNames returns the sorted short model names
func ModelNames() []string {
	names := make([]string, 0, len(Models))
	for name := range Models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
