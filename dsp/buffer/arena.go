package buffer

// Arena owns a fixed number of equally shaped working buffers addressed by
// index. Resize is the only operation that may allocate.
type Arena struct {
	bufs     []*Buffer
	channels int
	capacity int
}

// NewArena returns an arena of n buffers, each with the given channel count
// and frame capacity.
func NewArena(n, channels, capacity int) *Arena {
	a := &Arena{bufs: make([]*Buffer, max(n, 0))}
	a.Resize(channels, capacity)

	return a
}

// Resize reshapes every buffer. Storage is reused when the channel count is
// unchanged and the existing capacity suffices. Sample contents are cleared.
func (a *Arena) Resize(channels, capacity int) {
	reuse := channels == a.channels && capacity <= a.capacity

	for i := range a.bufs {
		if !reuse || a.bufs[i] == nil {
			a.bufs[i] = New(channels, capacity)

			continue
		}

		a.bufs[i].SetLen(a.bufs[i].Cap())
		a.bufs[i].Zero()
		a.bufs[i].SetLen(capacity)
	}

	if !reuse {
		a.channels = channels
		a.capacity = capacity
	}
}

// Len returns the number of buffers.
func (a *Arena) Len() int {
	return len(a.bufs)
}

// Buffer returns the i-th working buffer.
func (a *Arena) Buffer(i int) *Buffer {
	return a.bufs[i]
}
