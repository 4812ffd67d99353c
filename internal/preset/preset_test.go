package preset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-mbcomp/param"
)

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"1.0.0", true},
		{"1.4.2", true},
		{"v1.2.0", true},
		{"1", true},
		{"0.9.0", false},
		{"2.0.0", false},
		{"", false},
		{"one", false},
	}

	for _, tt := range tests {
		err := CheckVersion(tt.version)
		if tt.ok && err != nil {
			t.Errorf("%q: unexpected error %v", tt.version, err)
		}

		if !tt.ok && !errors.Is(err, ErrIncompatibleVersion) {
			t.Errorf("%q: got %v, want ErrIncompatibleVersion", tt.version, err)
		}
	}
}

func TestDecode(t *testing.T) {
	p, err := Decode(strings.NewReader(`{"version":"1.1.0","name":"glue","values":{"Threshold Low Band":-18,"Solo Mid Band":1}}`))
	if err != nil {
		t.Fatal(err)
	}

	if p.Name != "glue" || p.Values[param.Threshold(0)] != -18 || p.Values[param.Solo(1)] != 1 {
		t.Fatalf("decoded %+v", p)
	}

	if _, err := Decode(strings.NewReader(`{"version":"2.0.0","values":{}}`)); !errors.Is(err, ErrIncompatibleVersion) {
		t.Errorf("v2: got %v", err)
	}

	if _, err := Decode(strings.NewReader(`{"version":"1.0.0","values":{},"extra":true}`)); err == nil {
		t.Error("unknown field: expected error")
	}

	if _, err := Decode(strings.NewReader(`{`)); err == nil {
		t.Error("truncated: expected error")
	}

	p, err = Decode(strings.NewReader(`{"version":"1.0.0"}`))
	if err != nil {
		t.Fatal(err)
	}

	if p.Values == nil {
		t.Error("missing values should decode as empty map")
	}
}

func TestApply(t *testing.T) {
	reg := param.NewDefaultRegistry()

	p := &Preset{
		Version: Version,
		Name:    "test",
		Values: map[string]float64{
			param.Threshold(2):     -12.4, // snapped
			param.Ratio(0):         8,
			param.Mute(1):          1,
			param.MidHighCrossover: 50000, // clamped
			"Threshold Sub Band":   -3,
		},
	}

	err := p.Apply(reg)
	if !errors.Is(err, param.ErrUnknownControl) {
		t.Fatalf("got %v, want ErrUnknownControl", err)
	}

	for name, want := range map[string]float64{
		param.Threshold(2):     -12,
		param.Ratio(0):         8,
		param.Mute(1):          1,
		param.MidHighCrossover: 20000,
		param.Attack(0):        50,
	} {
		got, err := reg.Get(name)
		if err != nil {
			t.Fatal(err)
		}

		if got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	reg := param.NewDefaultRegistry()
	if err := reg.Set(param.GainOut, -3.5); err != nil {
		t.Fatal(err)
	}

	if err := reg.Set(param.Ratio(1), 21); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "p.json")

	if err := Save(path, Capture("saved", reg)); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %d entries", len(entries))
	}

	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if p.Version != Version || p.Name != "saved" || len(p.Values) != reg.Len() {
		t.Fatalf("loaded %q %q with %d values", p.Version, p.Name, len(p.Values))
	}

	other := param.NewDefaultRegistry()
	if err := p.Apply(other); err != nil {
		t.Fatal(err)
	}

	want := reg.Snapshot()
	for name, v := range other.Snapshot() {
		if v != want[name] {
			t.Errorf("%s = %v, want %v", name, v, want[name])
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: got %v", err)
	}

	path := filepath.Join(dir, "old.json")
	if err := os.WriteFile(path, []byte(`{"version":"0.1.0","values":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrIncompatibleVersion) {
		t.Fatalf("got %v", err)
	}

	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the file", err)
	}
}
