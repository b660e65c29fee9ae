package stream

import (
	"github.com/zsiec/cadence/internal/errors"
	"github.com/zsiec/cadence/internal/video"
)

// Stream is a random-access sequence of frames. Implementations must be
// safe for concurrent Get: evaluation reads upstream frames and static
// tables only, never shared mutable state. Get clamps the index to
// [0, Len-1]; out-of-range requests resolve to the nearest edge frame
// instead of failing.
type Stream interface {
	Get(n int) (*video.Frame, error)
	Len() int
}

// Clamp returns n clamped to [0, length-1].
func Clamp(n, length int) int {
	if n < 0 {
		return 0
	}
	if n >= length {
		return length - 1
	}
	return n
}

// Relabel returns f carrying the stream-local index n. Planes and
// metadata are shared, not copied; frames are immutable by convention.
func Relabel(f *video.Frame, n int) *video.Frame {
	if f == nil || f.Index == n {
		return f
	}
	out := *f
	out.Index = n
	return &out
}

// derived adapts a frame function into a Stream. The index passed to
// the function is already clamped.
type derived struct {
	length int
	get    func(n int) (*video.Frame, error)
}

// NewDerived builds a lazy stream of the given length around a frame
// function.
func NewDerived(length int, get func(n int) (*video.Frame, error)) Stream {
	return &derived{length: length, get: get}
}

func (d *derived) Len() int {
	return d.length
}

func (d *derived) Get(n int) (*video.Frame, error) {
	if d.length == 0 {
		return nil, errors.NewInternalError("get on empty stream")
	}
	return d.get(Clamp(n, d.length))
}
