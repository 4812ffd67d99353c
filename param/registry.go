package param

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type entry struct {
	def    Definition
	float  *FloatParam
	flag   *BoolParam
	choice *ChoiceParam
}

// Registry owns the current value of every control. Its set of controls is
// fixed at construction, so lookups need no locking; values are atomics and
// may be written from any goroutine.
type Registry struct {
	entries map[string]*entry
	order   []string
}

// NewRegistry creates a registry holding defs, each at its default value.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]*entry, len(defs)),
		order:   make([]string, 0, len(defs)),
	}

	for _, def := range defs {
		if err := def.validate(); err != nil {
			return nil, err
		}

		if _, dup := r.entries[def.Name]; dup {
			return nil, fmt.Errorf("param: duplicate control %q", def.Name)
		}

		e := &entry{def: def}

		switch def.Kind {
		case KindFloat:
			e.float = newFloatParam(def)
		case KindBool:
			e.flag = &BoolParam{def: def}
			e.flag.Set(def.DefaultOn)
		case KindChoice:
			e.choice = &ChoiceParam{def: def}
			e.choice.SetIndex(def.DefaultIndex)
		}

		r.entries[def.Name] = e
		r.order = append(r.order, def.Name)
	}

	return r, nil
}

// NewDefaultRegistry returns a registry holding Layout().
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(Layout()...)
	if err != nil {
		panic(err)
	}

	return r
}

// Names returns the control names in definition order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of controls.
func (r *Registry) Len() int { return len(r.order) }

// Definition returns the definition of the named control.
func (r *Registry) Definition(name string) (Definition, bool) {
	e, ok := r.entries[name]
	if !ok {
		return Definition{}, false
	}

	return e.def, true
}

func (r *Registry) lookup(name string, kind Kind) (*entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}

	if e.def.Kind != kind {
		return nil, fmt.Errorf("%w: %q is %v, not %v", ErrWrongKind, name, e.def.Kind, kind)
	}

	return e, nil
}

// FloatParam returns the named continuous control.
func (r *Registry) FloatParam(name string) (*FloatParam, error) {
	e, err := r.lookup(name, KindFloat)
	if err != nil {
		return nil, err
	}

	return e.float, nil
}

// BoolParam returns the named on/off control.
func (r *Registry) BoolParam(name string) (*BoolParam, error) {
	e, err := r.lookup(name, KindBool)
	if err != nil {
		return nil, err
	}

	return e.flag, nil
}

// ChoiceParam returns the named choice control.
func (r *Registry) ChoiceParam(name string) (*ChoiceParam, error) {
	e, err := r.lookup(name, KindChoice)
	if err != nil {
		return nil, err
	}

	return e.choice, nil
}

// Float implements Provider.
func (r *Registry) Float(name string) (Float, bool) {
	p, err := r.FloatParam(name)
	if err != nil {
		return nil, false
	}

	return p, true
}

// Bool implements Provider.
func (r *Registry) Bool(name string) (Bool, bool) {
	p, err := r.BoolParam(name)
	if err != nil {
		return nil, false
	}

	return p, true
}

// Choice implements Provider.
func (r *Registry) Choice(name string) (Choice, bool) {
	p, err := r.ChoiceParam(name)
	if err != nil {
		return nil, false
	}

	return p, true
}

// Get returns the plain value of a control as a number: bools are 0 or 1,
// choices their selected value.
func (r *Registry) Get(name string) (float64, error) {
	e, ok := r.entries[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}

	switch e.def.Kind {
	case KindBool:
		if e.flag.Get() {
			return 1, nil
		}

		return 0, nil
	case KindChoice:
		return e.choice.Value(), nil
	default:
		return e.float.Get(), nil
	}
}

// Set writes a plain value. Bools are on for v >= 0.5; choices select the
// closest entry.
func (r *Registry) Set(name string, v float64) error {
	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}

	switch e.def.Kind {
	case KindBool:
		if !math.IsNaN(v) {
			e.flag.Set(v >= 0.5)
		}
	case KindChoice:
		e.choice.SetValue(v)
	default:
		e.float.Set(v)
	}

	return nil
}

// SetString parses s for the named control and writes it. Bools accept
// anything strconv.ParseBool does as well as "on" and "off".
func (r *Registry) SetString(name, s string) error {
	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}

	s = strings.TrimSpace(s)

	if e.def.Kind == KindBool {
		switch strings.ToLower(s) {
		case "on":
			s = "true"
		case "off":
			s = "false"
		}

		on, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("param: %q: %w", name, err)
		}

		e.flag.Set(on)

		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("param: %q: %w", name, err)
	}

	return r.Set(name, v)
}

// Normalized returns the value of a control mapped to [0, 1].
func (r *Registry) Normalized(name string) (float64, error) {
	e, ok := r.entries[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}

	switch e.def.Kind {
	case KindBool:
		v, _ := r.Get(name)
		return v, nil
	case KindChoice:
		if n := len(e.def.Choices); n > 1 {
			return float64(e.choice.Index()) / float64(n-1), nil
		}

		return 0, nil
	default:
		return e.float.Normalized(), nil
	}
}

// SetNormalized writes a control from a [0, 1] position.
func (r *Registry) SetNormalized(name string, n float64) error {
	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}

	if math.IsNaN(n) {
		return nil
	}

	n = math.Min(math.Max(n, 0), 1)

	switch e.def.Kind {
	case KindBool:
		e.flag.Set(n >= 0.5)
	case KindChoice:
		e.choice.SetIndex(int(math.Round(n * float64(len(e.def.Choices)-1))))
	default:
		e.float.SetNormalized(n)
	}

	return nil
}

// Snapshot returns the plain value of every control by name.
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(r.order))
	for _, name := range r.order {
		out[name], _ = r.Get(name)
	}

	return out
}

// Restore writes every value in values. Known controls are written even when
// others are unknown; the unknown names are reported together.
func (r *Registry) Restore(values map[string]float64) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}

	sort.Strings(names)

	var errs []error

	for _, name := range names {
		if err := r.Set(name, values[name]); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Reset returns every control to its default.
func (r *Registry) Reset() {
	for _, name := range r.order {
		e := r.entries[name]

		switch e.def.Kind {
		case KindBool:
			e.flag.Set(e.def.DefaultOn)
		case KindChoice:
			e.choice.SetIndex(e.def.DefaultIndex)
		default:
			e.float.Set(e.def.Default)
		}
	}
}
