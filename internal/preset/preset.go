// Package preset stores control values as versioned JSON documents.
//
// A preset file looks like
//
//	{
//	  "version": "1.0.0",
//	  "name": "gentle glue",
//	  "values": {
//	    "Threshold Low Band": -18,
//	    "Ratio Low Band": 3,
//	    "Mute High Band": 0
//	  }
//	}
//
// Values are plain (not normalised). Bools are 0 or 1 and ratios are the
// ratio itself. Files whose major version differs from the current one are
// rejected with ErrIncompatibleVersion.
package preset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/cwbudde/algo-mbcomp/param"
)

// Version is the schema version written by Save.
const Version = "1.0.0"

// compatible is the range of schema versions Decode accepts.
const compatible = "^1"

// ErrIncompatibleVersion is returned for presets written by an incompatible
// schema version.
var ErrIncompatibleVersion = errors.New("preset: incompatible version")

// Preset is a named set of control values.
type Preset struct {
	Version string             `json:"version"`
	Name    string             `json:"name,omitempty"`
	Values  map[string]float64 `json:"values"`
}

// Capture records every control value of reg.
func Capture(name string, reg *param.Registry) *Preset {
	return &Preset{
		Version: Version,
		Name:    name,
		Values:  reg.Snapshot(),
	}
}

// Apply writes the preset's values into reg. Controls missing from the
// preset keep their value. Unknown names are reported after every known
// value has been applied.
func (p *Preset) Apply(reg *param.Registry) error {
	if err := reg.Restore(p.Values); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}

	return nil
}

// CheckVersion reports whether v is a schema version this package reads.
func CheckVersion(v string) error {
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrIncompatibleVersion, v, err)
	}

	constraint, err := semver.NewConstraint(compatible)
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}

	if !constraint.Check(ver) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrIncompatibleVersion, ver, compatible)
	}

	return nil
}

// Decode parses and version-checks a preset.
func Decode(r io.Reader) (*Preset, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var p Preset
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("preset: decode: %w", err)
	}

	if err := CheckVersion(p.Version); err != nil {
		return nil, err
	}

	if p.Values == nil {
		p.Values = map[string]float64{}
	}

	return &p, nil
}

// Encode writes p as indented JSON.
func (p *Preset) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("preset: encode: %w", err)
	}

	return nil
}

// Load reads the preset file at path.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}

	p, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// Save writes p to path. The file is replaced by rename so readers never
// see a partial preset.
func Save(path string, p *Preset) error {
	if p.Version == "" {
		p.Version = Version
	}

	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".preset-*")
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("preset: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("preset: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("preset: %w", err)
	}

	return nil
}
