package param

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

var (
	// ErrUnknownControl is returned for a name the registry does not hold.
	ErrUnknownControl = errors.New("param: unknown control")
	// ErrWrongKind is returned when a control is accessed as the wrong kind.
	ErrWrongKind = errors.New("param: wrong control kind")
)

// Kind tells what values a control holds.
type Kind int

const (
	KindFloat Kind = iota
	KindBool
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindChoice:
		return "choice"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Float is a read-only view of a continuous control.
type Float interface {
	Get() float64
}

// Bool is a read-only view of an on/off control.
type Bool interface {
	Get() bool
}

// Choice is a read-only view of a control that selects one of a fixed list
// of numeric values.
type Choice interface {
	Index() int
	Value() float64
}

// Provider resolves controls by name. The second result is false when the
// name is unknown or refers to a control of another kind.
type Provider interface {
	Float(name string) (Float, bool)
	Bool(name string) (Bool, bool)
	Choice(name string) (Choice, bool)
}

// Definition describes one control.
type Definition struct {
	Name string
	Kind Kind
	Unit string

	// KindFloat
	Min, Max, Step float64
	Default        float64

	// KindBool
	DefaultOn bool

	// KindChoice
	Choices      []float64
	DefaultIndex int
}

func (d Definition) validate() error {
	if d.Name == "" {
		return errors.New("param: control without name")
	}

	switch d.Kind {
	case KindFloat:
		if !(d.Min < d.Max) || d.Step < 0 || math.IsNaN(d.Default) {
			return fmt.Errorf("param: %q: invalid range [%v, %v] step %v", d.Name, d.Min, d.Max, d.Step)
		}
	case KindBool:
	case KindChoice:
		if len(d.Choices) == 0 || d.DefaultIndex < 0 || d.DefaultIndex >= len(d.Choices) {
			return fmt.Errorf("param: %q: default index %d outside %d choices", d.Name, d.DefaultIndex, len(d.Choices))
		}
	default:
		return fmt.Errorf("param: %q: %v", d.Name, d.Kind)
	}

	return nil
}

// Snap rounds v to the definition's step and clamps it to its range. NaN
// yields the default.
func (d Definition) Snap(v float64) float64 {
	if math.IsNaN(v) {
		v = d.Default
	}

	if d.Step > 0 && !math.IsInf(v, 0) {
		v = d.Min + math.Round((v-d.Min)/d.Step)*d.Step
	}

	return math.Min(math.Max(v, d.Min), d.Max)
}

// FloatParam is a continuous control.
type FloatParam struct {
	def  Definition
	bits atomic.Uint64
}

func newFloatParam(def Definition) *FloatParam {
	p := &FloatParam{def: def}
	p.Set(def.Default)

	return p
}

// Get returns the current value.
func (p *FloatParam) Get() float64 { return math.Float64frombits(p.bits.Load()) }

// Set stores v snapped to the step and clamped to the range.
func (p *FloatParam) Set(v float64) { p.bits.Store(math.Float64bits(p.def.Snap(v))) }

// Normalized returns the value mapped to [0, 1].
func (p *FloatParam) Normalized() float64 {
	return (p.Get() - p.def.Min) / (p.def.Max - p.def.Min)
}

// SetNormalized sets the value from a [0, 1] position.
func (p *FloatParam) SetNormalized(n float64) {
	n = math.Min(math.Max(n, 0), 1)
	p.Set(p.def.Min + n*(p.def.Max-p.def.Min))
}

// Definition returns the control definition.
func (p *FloatParam) Definition() Definition { return p.def }

// BoolParam is an on/off control.
type BoolParam struct {
	def Definition
	on  atomic.Bool
}

// Get reports whether the control is on.
func (p *BoolParam) Get() bool { return p.on.Load() }

// Set switches the control.
func (p *BoolParam) Set(on bool) { p.on.Store(on) }

// Definition returns the control definition.
func (p *BoolParam) Definition() Definition { return p.def }

// ChoiceParam selects one entry of a fixed list of values.
type ChoiceParam struct {
	def Definition
	idx atomic.Int32
}

// Index returns the selected position.
func (p *ChoiceParam) Index() int { return int(p.idx.Load()) }

// Value returns the selected value.
func (p *ChoiceParam) Value() float64 { return p.def.Choices[p.Index()] }

// Name returns the display string of the selection, e.g. "3.0".
func (p *ChoiceParam) Name() string { return ChoiceName(p.Value()) }

// SetIndex selects position i, clamped to the list.
func (p *ChoiceParam) SetIndex(i int) {
	i = min(max(i, 0), len(p.def.Choices)-1)
	p.idx.Store(int32(i))
}

// SetValue selects the entry closest to v.
func (p *ChoiceParam) SetValue(v float64) {
	if math.IsNaN(v) {
		return
	}

	best := 0
	for i, c := range p.def.Choices {
		if math.Abs(c-v) < math.Abs(p.def.Choices[best]-v) {
			best = i
		}
	}

	p.SetIndex(best)
}

// Definition returns the control definition.
func (p *ChoiceParam) Definition() Definition { return p.def }

// ChoiceName formats a choice value for display.
func ChoiceName(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
