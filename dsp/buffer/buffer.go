package buffer

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-mbcomp/dsp/core"
)

// Buffer holds planar float64 audio: one slice per channel, all sharing the
// same length. The length may change per block but never exceeds Cap().
type Buffer struct {
	channels [][]float64
	frames   int
}

// New returns a zero-filled Buffer with the given channel count and frame
// capacity. The initial length equals the capacity.
func New(channels, capacity int) *Buffer {
	channels = max(channels, 0)
	capacity = max(capacity, 0)

	b := &Buffer{
		channels: make([][]float64, channels),
		frames:   capacity,
	}

	backing := make([]float64, channels*capacity)
	for ch := range b.channels {
		b.channels[ch] = backing[ch*capacity : (ch+1)*capacity : (ch+1)*capacity]
	}

	return b
}

// FromChannels wraps existing channel slices without copying. All channels
// must have the same length.
func FromChannels(channels [][]float64) (*Buffer, error) {
	frames := 0
	if len(channels) > 0 {
		frames = len(channels[0])
	}

	for ch, data := range channels {
		if len(data) != frames {
			return nil, fmt.Errorf("buffer: channel %d has %d frames, want %d", ch, len(data), frames)
		}
	}

	return &Buffer{channels: channels, frames: frames}, nil
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	return len(b.channels)
}

// Len returns the current number of frames.
func (b *Buffer) Len() int {
	return b.frames
}

// Cap returns the frame capacity.
func (b *Buffer) Cap() int {
	if len(b.channels) == 0 {
		return b.frames
	}

	return cap(b.channels[0])
}

// Channel returns the samples of channel ch, limited to the current length.
func (b *Buffer) Channel(ch int) []float64 {
	return b.channels[ch][:b.frames]
}

// SetLen changes the number of frames without touching sample data.
// It panics if n is negative or exceeds the capacity.
func (b *Buffer) SetLen(n int) {
	if n < 0 || n > b.Cap() {
		panic(fmt.Sprintf("buffer: length %d outside capacity %d", n, b.Cap()))
	}

	b.frames = n
}

// Zero clears the current length of every channel.
func (b *Buffer) Zero() {
	for ch := range b.channels {
		core.Zero(b.channels[ch][:b.frames])
	}
}

// CopyFrom makes b an exact copy of src: same length, same samples.
// Both buffers must have the same channel count and b enough capacity.
func (b *Buffer) CopyFrom(src *Buffer) {
	b.mustMatch(src)
	b.SetLen(src.frames)

	for ch := range b.channels {
		copy(b.channels[ch][:b.frames], src.channels[ch][:b.frames])
	}
}

// AddFrom adds src sample by sample into b over b's current length.
func (b *Buffer) AddFrom(src *Buffer) {
	b.mustMatch(src)

	if src.frames < b.frames {
		panic(fmt.Sprintf("buffer: source has %d frames, want at least %d", src.frames, b.frames))
	}

	for ch := range b.channels {
		vecmath.AddBlockInPlace(b.channels[ch][:b.frames], src.channels[ch][:b.frames])
	}
}

// Scale multiplies every sample by g.
func (b *Buffer) Scale(g float64) {
	if g == 1 {
		return
	}

	for ch := range b.channels {
		vecmath.ScaleBlockInPlace(b.channels[ch][:b.frames], g)
	}
}

// Peak returns the largest absolute sample value across all channels.
func (b *Buffer) Peak() float64 {
	peak := 0.0

	for ch := range b.channels {
		peak = max(peak, core.Peak(b.channels[ch][:b.frames]))
	}

	return peak
}

// Interleave writes the current frames into dst as interleaved samples
// (frame-major) and returns the number of values written.
func (b *Buffer) Interleave(dst []float64) int {
	nc := len(b.channels)
	if nc == 0 {
		return 0
	}

	frames := min(b.frames, len(dst)/nc)
	for i := range frames {
		for ch := range b.channels {
			dst[i*nc+ch] = b.channels[ch][i]
		}
	}

	return frames * nc
}

// Deinterleave reads interleaved samples from src into b, setting the length
// to the number of complete frames that fit into the capacity.
func (b *Buffer) Deinterleave(src []float64) int {
	nc := len(b.channels)
	if nc == 0 {
		return 0
	}

	frames := min(len(src)/nc, b.Cap())
	b.SetLen(frames)

	for i := range frames {
		for ch := range b.channels {
			b.channels[ch][i] = src[i*nc+ch]
		}
	}

	return frames
}

func (b *Buffer) mustMatch(src *Buffer) {
	if len(src.channels) != len(b.channels) {
		panic(fmt.Sprintf("buffer: channel count mismatch: %d != %d", len(src.channels), len(b.channels)))
	}
}
