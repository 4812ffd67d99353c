package kernel

import (
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"
)

func TestRegistryLookupPrefersHigherPriority(t *testing.T) {
	reg := &Registry{}
	reg.Register(Entry{Name: "generic", SIMDLevel: cpu.SIMDNone, Priority: 0})
	reg.Register(Entry{Name: "wide", SIMDLevel: cpu.SIMDAVX2, Priority: 20})

	if entry := reg.Lookup(cpu.Features{HasAVX2: true}); entry == nil || entry.Name != "wide" {
		t.Fatalf("expected wide, got %#v", entry)
	}

	if entry := reg.Lookup(cpu.Features{}); entry == nil || entry.Name != "generic" {
		t.Fatalf("expected generic, got %#v", entry)
	}

	if got := reg.Names(); len(got) != 2 || got[0] != "wide" {
		t.Fatalf("Names() = %v, want wide first", got)
	}
}

func TestRegistryLookupForceGeneric(t *testing.T) {
	reg := &Registry{}
	reg.Register(Entry{Name: "generic", SIMDLevel: cpu.SIMDNone, Priority: 0})
	reg.Register(Entry{Name: "wide", SIMDLevel: cpu.SIMDAVX2, Priority: 20})

	entry := reg.Lookup(cpu.Features{HasAVX2: true, ForceGeneric: true})
	if entry == nil || entry.Name != "generic" {
		t.Fatalf("expected generic with ForceGeneric, got %#v", entry)
	}
}

func TestRegistryLookupEmpty(t *testing.T) {
	if entry := (&Registry{}).Lookup(cpu.Features{}); entry != nil {
		t.Fatalf("expected nil from empty registry, got %#v", entry)
	}
}

func TestKernelsMatchScalarReference(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.6, A2: 0.2}
	input := []float64{1, 0.5, -0.25, 0, 0.75, -1, 0.1, 0.3, -0.6}

	ref := make([]float64, len(input))
	var d0, d1 float64

	for i, x := range input {
		y := c.B0*x + d0
		d0 = c.B1*x - c.A1*y + d1
		d1 = c.B2*x - c.A2*y
		ref[i] = y
	}

	for _, name := range Global.Names() {
		var entry *Entry

		for i := range Global.entries {
			if Global.entries[i].Name == name {
				entry = &Global.entries[i]
			}
		}

		buf := append([]float64(nil), input...)
		gotD0, gotD1 := entry.ProcessBlock(c, 0, 0, buf)

		for i := range buf {
			if diff := buf[i] - ref[i]; diff > 1e-12 || diff < -1e-12 {
				t.Fatalf("%s: sample %d = %v, want %v", name, i, buf[i], ref[i])
			}
		}

		if diff := gotD0 - d0; diff > 1e-12 || diff < -1e-12 {
			t.Fatalf("%s: d0 = %v, want %v", name, gotD0, d0)
		}

		if diff := gotD1 - d1; diff > 1e-12 || diff < -1e-12 {
			t.Fatalf("%s: d1 = %v, want %v", name, gotD1, d1)
		}
	}
}
