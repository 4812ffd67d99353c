// Package wavio reads and writes PCM WAV files as planar float buffers.
package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-mbcomp/dsp/buffer"
)

// ErrUnsupportedFormat is returned for WAV files that are not 16, 24 or
// 32 bit integer PCM.
var ErrUnsupportedFormat = errors.New("wavio: unsupported format")

// WAV format tags.
const (
	pcmFormat        = 1
	extensibleFormat = 0xFFFE
)

// Format describes the sample layout of a WAV file.
type Format struct {
	SampleRate int
	BitDepth   int
}

func (f Format) validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be positive: %d", f.SampleRate)
	}

	switch f.BitDepth {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d bit", ErrUnsupportedFormat, f.BitDepth)
	}
}

func (f Format) fullScale() float64 {
	return float64(int64(1) << (f.BitDepth - 1))
}

// Read decodes the WAV file at path.
func Read(path string) (*buffer.Buffer, Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Format{}, fmt.Errorf("wavio: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a whole WAV stream into a buffer with one channel per WAV
// channel. Samples are scaled to [-1, 1).
func Decode(r io.ReadSeeker) (*buffer.Buffer, Format, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, Format{}, fmt.Errorf("%w: not a valid WAV stream", ErrUnsupportedFormat)
	}

	switch d.WavAudioFormat {
	case pcmFormat:
	case extensibleFormat:
		sub, err := extensibleSubFormat(r)
		if err != nil {
			return nil, Format{}, err
		}

		if sub != pcmFormat {
			return nil, Format{}, fmt.Errorf("%w: extensible sub-format %d", ErrUnsupportedFormat, sub)
		}

		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, Format{}, fmt.Errorf("wavio: %w", err)
		}

		if d = wav.NewDecoder(r); !d.IsValidFile() {
			return nil, Format{}, fmt.Errorf("%w: not a valid WAV stream", ErrUnsupportedFormat)
		}
	default:
		return nil, Format{}, fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, d.WavAudioFormat)
	}

	format := Format{SampleRate: int(d.SampleRate), BitDepth: int(d.BitDepth)}
	if err := format.validate(); err != nil {
		return nil, Format{}, err
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return nil, Format{}, fmt.Errorf("wavio: decode: %w", err)
	}

	channels := int(d.NumChans)
	if channels <= 0 {
		return nil, Format{}, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}

	frames := len(pcm.Data) / channels
	buf := buffer.New(channels, frames)
	scale := 1 / format.fullScale()

	for ch := range channels {
		dst := buf.Channel(ch)
		for i := range dst {
			dst[i] = float64(pcm.Data[i*channels+ch]) * scale
		}
	}

	return buf, format, nil
}

// extensibleSubFormat returns the format code at the start of the sub-format
// GUID of a WAVE_FORMAT_EXTENSIBLE fmt chunk.
func extensibleSubFormat(r io.ReadSeeker) (uint16, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("wavio: %w", err)
	}

	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("%w: no fmt chunk: %w", ErrUnsupportedFormat, err)
		}

		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}

		// tag, channels, rate, byte rate, align, bits, cbSize, valid bits,
		// channel mask, then the GUID.
		const subFormatOffset = 24

		if ch.Size < subFormatOffset+2 {
			return 0, fmt.Errorf("%w: extensible fmt chunk of %d bytes", ErrUnsupportedFormat, ch.Size)
		}

		head := make([]byte, subFormatOffset+2)
		if _, err := io.ReadFull(ch, head); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}

		return binary.LittleEndian.Uint16(head[subFormatOffset:]), nil
	}
}

// Write encodes buf to a new WAV file at path, replacing any existing file.
func Write(path string, buf *buffer.Buffer, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	if err := Encode(f, buf, format); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	return nil
}

// Encode writes buf as integer PCM. Samples are clipped to [-1, 1] and
// rounded to the nearest step.
func Encode(w io.WriteSeeker, buf *buffer.Buffer, format Format) error {
	if err := format.validate(); err != nil {
		return err
	}

	channels := buf.NumChannels()
	if channels == 0 {
		return errors.New("wavio: buffer has no channels")
	}

	frames := buf.Len()
	peak := format.fullScale() - 1
	data := make([]int, frames*channels)

	for ch := range channels {
		src := buf.Channel(ch)
		for i, v := range src {
			v = math.Max(-1, math.Min(1, v))
			if math.IsNaN(v) {
				v = 0
			}

			data[i*channels+ch] = int(math.Round(v * peak))
		}
	}

	enc := wav.NewEncoder(w, format.SampleRate, format.BitDepth, channels, pcmFormat)

	pcm := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: format.SampleRate},
		Data:           data,
		SourceBitDepth: format.BitDepth,
	}

	if err := enc.Write(pcm); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	return nil
}
