package stream

import (
	"fmt"

	"github.com/zsiec/cadence/internal/errors"
	"github.com/zsiec/cadence/internal/video"
)

// selectEvery keeps a fixed subset of offsets from every cycle-sized
// group of source frames.
type selectEvery struct {
	src     Stream
	cycle   int
	offsets []int
}

// SelectEvery returns a lazy stream that keeps, from each group of
// cycle source frames, the frames at the given offsets. Offsets must be
// strictly ascending and lie in [0, cycle). A trailing partial group
// contributes only the offsets it still covers.
func SelectEvery(src Stream, cycle int, offsets []int) (Stream, error) {
	if cycle < 1 {
		return nil, errors.NewInvalidParameterError("cycle", "must be at least 1")
	}
	if len(offsets) == 0 {
		return nil, errors.NewInvalidParameterError("offsets", "must not be empty")
	}
	for i, o := range offsets {
		if o < 0 || o >= cycle {
			return nil, errors.NewInvalidParameterError("offsets",
				fmt.Sprintf("offset %d outside [0, %d)", o, cycle))
		}
		if i > 0 && o <= offsets[i-1] {
			return nil, errors.NewInvalidParameterError("offsets", "must be strictly ascending")
		}
	}
	out := make([]int, len(offsets))
	copy(out, offsets)
	return &selectEvery{src: src, cycle: cycle, offsets: out}, nil
}

func (s *selectEvery) Len() int {
	full := s.src.Len() / s.cycle
	rem := s.src.Len() % s.cycle
	n := full * len(s.offsets)
	for _, o := range s.offsets {
		if o < rem {
			n++
		}
	}
	return n
}

func (s *selectEvery) Get(n int) (*video.Frame, error) {
	length := s.Len()
	if length == 0 {
		return nil, errors.NewInternalError("get on empty stream")
	}
	n = Clamp(n, length)

	// Ascending offsets mean the offsets a partial tail group still
	// covers form a prefix, so the same div/mod mapping holds there.
	k := len(s.offsets)
	srcIdx := (n/k)*s.cycle + s.offsets[n%k]

	f, err := s.src.Get(srcIdx)
	if err != nil {
		return nil, err
	}
	return Relabel(f, n), nil
}
