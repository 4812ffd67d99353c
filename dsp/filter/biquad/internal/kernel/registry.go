// Package kernel holds the block-processing kernels for a single biquad
// section and selects one for the running CPU.
package kernel

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are biquad transfer coefficients (a0 normalized to 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// ProcessBlockFn processes buf in place with one DF-II-T section and returns
// the updated delay-line state.
type ProcessBlockFn func(c Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64)

// Entry is one registered kernel.
type Entry struct {
	Name         string
	SIMDLevel    cpu.SIMDLevel
	Priority     int
	ProcessBlock ProcessBlockFn
}

// Registry stores the available kernels.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
}

// Global is the registry the biquad package dispatches through.
var Global = &Registry{}

// Register adds a kernel. Entries are kept sorted by descending priority.
func (r *Registry) Register(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := len(r.entries)
	r.entries = append(r.entries, entry)

	for i > 0 && r.entries[i-1].Priority < entry.Priority {
		r.entries[i] = r.entries[i-1]
		i--
	}

	r.entries[i] = entry
}

// Lookup returns the highest-priority kernel usable with features, or nil.
func (r *Registry) Lookup(features cpu.Features) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if supports(features, r.entries[i].SIMDLevel) {
			return &r.entries[i]
		}
	}

	return nil
}

// Names lists the registered kernels in lookup order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i := range r.entries {
		names[i] = r.entries[i].Name
	}

	return names
}

func supports(features cpu.Features, level cpu.SIMDLevel) bool {
	if level == cpu.SIMDNone {
		return true
	}

	if features.ForceGeneric {
		return false
	}

	switch level {
	case cpu.SIMDAVX2:
		return features.HasAVX2
	case cpu.SIMDNEON:
		return features.HasNEON
	default:
		return false
	}
}
