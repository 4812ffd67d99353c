package buffer

import "testing"

func TestNewZeroFilled(t *testing.T) {
	b := New(2, 8)
	if b.NumChannels() != 2 {
		t.Fatalf("NumChannels() = %d, want 2", b.NumChannels())
	}

	if b.Len() != 8 || b.Cap() != 8 {
		t.Fatalf("Len()/Cap() = %d/%d, want 8/8", b.Len(), b.Cap())
	}

	for ch := range b.NumChannels() {
		for i, v := range b.Channel(ch) {
			if v != 0 {
				t.Fatalf("Channel(%d)[%d] = %v, want 0", ch, i, v)
			}
		}
	}
}

func TestNewNegativeShape(t *testing.T) {
	b := New(-1, -4)
	if b.NumChannels() != 0 || b.Len() != 0 {
		t.Fatalf("got %d channels, %d frames, want 0, 0", b.NumChannels(), b.Len())
	}
}

func TestChannelsDoNotOverlap(t *testing.T) {
	b := New(2, 4)
	b.Channel(0)[3] = 1

	if b.Channel(1)[0] != 0 {
		t.Fatal("writing channel 0 leaked into channel 1")
	}
}

func TestFromChannels(t *testing.T) {
	left := []float64{1, 2, 3}
	right := []float64{4, 5, 6}

	b, err := FromChannels([][]float64{left, right})
	if err != nil {
		t.Fatalf("FromChannels() error = %v", err)
	}

	b.Channel(0)[0] = 99
	if left[0] != 99 {
		t.Fatal("FromChannels should share underlying memory")
	}

	if _, err := FromChannels([][]float64{left, {1}}); err == nil {
		t.Fatal("expected error for ragged channels")
	}
}

func TestSetLen(t *testing.T) {
	b := New(1, 8)
	b.SetLen(3)

	if got := len(b.Channel(0)); got != 3 {
		t.Fatalf("len(Channel(0)) = %d, want 3", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for length above capacity")
		}
	}()

	b.SetLen(9)
}

func TestCopyFromAndAddFrom(t *testing.T) {
	src := New(2, 4)
	copy(src.Channel(0), []float64{1, 2, 3, 4})
	copy(src.Channel(1), []float64{-1, -2, -3, -4})
	src.SetLen(3)

	dst := New(2, 8)
	dst.CopyFrom(src)

	if dst.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", dst.Len())
	}

	dst.AddFrom(src)

	want := [][]float64{{2, 4, 6}, {-2, -4, -6}}
	for ch := range want {
		for i, w := range want[ch] {
			if got := dst.Channel(ch)[i]; got != w {
				t.Fatalf("ch %d sample %d = %v, want %v", ch, i, got, w)
			}
		}
	}
}

func TestCopyFromChannelMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for channel mismatch")
		}
	}()

	New(2, 4).CopyFrom(New(1, 4))
}

func TestZeroScalePeak(t *testing.T) {
	b := New(2, 4)
	copy(b.Channel(0), []float64{0.1, -0.5, 0.2, 0})
	copy(b.Channel(1), []float64{0.3, 0, 0, -0.25})

	if got := b.Peak(); got != 0.5 {
		t.Fatalf("Peak() = %v, want 0.5", got)
	}

	b.Scale(2)

	if got := b.Peak(); got != 1 {
		t.Fatalf("Peak() after Scale(2) = %v, want 1", got)
	}

	b.Zero()

	if got := b.Peak(); got != 0 {
		t.Fatalf("Peak() after Zero = %v, want 0", got)
	}
}

func TestZeroPeakUseCurrentLength(t *testing.T) {
	b := New(2, 4)
	copy(b.Channel(0), []float64{0.1, 0.2, 0.3, -0.9})
	copy(b.Channel(1), []float64{-0.4, 0, 0, 0.8})
	b.SetLen(3)

	if got := b.Peak(); got != 0.4 {
		t.Fatalf("Peak() over 3 frames = %v, want 0.4", got)
	}

	b.Zero()
	b.SetLen(4)

	if got := b.Peak(); got != 0.9 {
		t.Fatalf("Peak() after Zero of 3 frames = %v, want 0.9", got)
	}
}

func TestInterleaveRoundTrip(t *testing.T) {
	b := New(2, 4)
	n := b.Deinterleave([]float64{1, -1, 2, -2, 3, -3})

	if n != 3 || b.Len() != 3 {
		t.Fatalf("Deinterleave() = %d frames, Len() = %d, want 3", n, b.Len())
	}

	if b.Channel(1)[2] != -3 {
		t.Fatalf("Channel(1)[2] = %v, want -3", b.Channel(1)[2])
	}

	out := make([]float64, 6)
	if got := b.Interleave(out); got != 6 {
		t.Fatalf("Interleave() = %d, want 6", got)
	}

	if out[4] != 3 || out[5] != -3 {
		t.Fatalf("Interleave() frame 2 = %v, want [3 -3]", out[4:])
	}
}
