package stream

import (
	"fmt"

	"github.com/zsiec/cadence/internal/errors"
	"github.com/zsiec/cadence/internal/video"
)

// interleaved alternates frames from two equally long streams.
type interleaved struct {
	a, b Stream
}

// Interleave weaves two streams one-for-one: output 2i comes from a,
// 2i+1 from b. The streams must be the same length; a mismatch means a
// caller bug, not bad user input.
func Interleave(a, b Stream) (Stream, error) {
	if a.Len() != b.Len() {
		return nil, errors.NewInternalError(
			fmt.Sprintf("interleave length mismatch: %d vs %d", a.Len(), b.Len()))
	}
	return &interleaved{a: a, b: b}, nil
}

func (s *interleaved) Len() int {
	return s.a.Len() + s.b.Len()
}

func (s *interleaved) Get(n int) (*video.Frame, error) {
	if s.Len() == 0 {
		return nil, errors.NewInternalError("get on empty stream")
	}
	n = Clamp(n, s.Len())

	src := s.a
	if n%2 == 1 {
		src = s.b
	}
	f, err := src.Get(n / 2)
	if err != nil {
		return nil, err
	}
	return Relabel(f, n), nil
}
