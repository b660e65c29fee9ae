package restore

import (
	"github.com/zsiec/cadence/internal/cadence"
	"github.com/zsiec/cadence/internal/stream"
	"github.com/zsiec/cadence/internal/video"
)

// patternReplace serves repl at indices on one cadence phase and src
// everywhere else.
type patternReplace struct {
	src   stream.Stream
	repl  stream.Stream
	phase int
}

// BuildCandidates returns the five candidate streams the selector
// chooses between: candidate i passes src through except at indices
// where i matches the cadence phase, which come from repl.
func BuildCandidates(src, repl stream.Stream) [5]stream.Stream {
	var out [5]stream.Stream
	for i := range out {
		out[i] = &patternReplace{src: src, repl: repl, phase: i}
	}
	return out
}

func (s *patternReplace) Len() int {
	if s.src.Len() < s.repl.Len() {
		return s.src.Len()
	}
	return s.repl.Len()
}

func (s *patternReplace) Get(n int) (*video.Frame, error) {
	n = stream.Clamp(n, s.Len())
	pick := s.src
	if cadence.Phase(n) == s.phase {
		pick = s.repl
	}
	f, err := pick.Get(n)
	if err != nil {
		return nil, err
	}
	return stream.Relabel(f, n), nil
}
