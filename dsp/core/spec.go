package core

import (
	"fmt"
	"math"
)

const (
	defaultSampleRate   = 48000
	defaultMaxBlockSize = 512
	defaultChannels     = 2
)

// ProcessSpec describes the stream a processor is prepared for: the sample
// rate, the largest block that will ever be presented and the channel count.
// Every buffer handed to a prepared processor must have exactly Channels
// channels and at most MaxBlockSize frames.
type ProcessSpec struct {
	SampleRate   float64
	MaxBlockSize int
	Channels     int
}

// ProcessSpecOption mutates a ProcessSpec.
type ProcessSpecOption func(*ProcessSpec)

// DefaultProcessSpec returns a stereo 48 kHz spec with 512-frame blocks.
func DefaultProcessSpec() ProcessSpec {
	return ProcessSpec{
		SampleRate:   defaultSampleRate,
		MaxBlockSize: defaultMaxBlockSize,
		Channels:     defaultChannels,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessSpecOption {
	return func(spec *ProcessSpec) {
		if sampleRate > 0 {
			spec.SampleRate = sampleRate
		}
	}
}

// WithMaxBlockSize sets the largest block size in frames.
func WithMaxBlockSize(blockSize int) ProcessSpecOption {
	return func(spec *ProcessSpec) {
		if blockSize > 0 {
			spec.MaxBlockSize = blockSize
		}
	}
}

// WithChannels sets the channel count.
func WithChannels(channels int) ProcessSpecOption {
	return func(spec *ProcessSpec) {
		if channels > 0 {
			spec.Channels = channels
		}
	}
}

// NewProcessSpec applies zero or more options to the default spec.
func NewProcessSpec(opts ...ProcessSpecOption) ProcessSpec {
	spec := DefaultProcessSpec()
	for _, opt := range opts {
		if opt != nil {
			opt(&spec)
		}
	}

	return spec
}

// Validate reports whether the spec can be prepared for.
func (s ProcessSpec) Validate() error {
	if s.SampleRate <= 0 || math.IsNaN(s.SampleRate) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("process spec: sample rate must be positive and finite: %v", s.SampleRate)
	}

	if s.MaxBlockSize <= 0 {
		return fmt.Errorf("process spec: max block size must be positive: %d", s.MaxBlockSize)
	}

	if s.Channels <= 0 {
		return fmt.Errorf("process spec: channel count must be positive: %d", s.Channels)
	}

	return nil
}

// Nyquist returns half the sample rate.
func (s ProcessSpec) Nyquist() float64 {
	return s.SampleRate / 2
}
