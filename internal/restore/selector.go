package restore

import (
	"github.com/zsiec/cadence/internal/cadence"
	"github.com/zsiec/cadence/internal/errors"
	"github.com/zsiec/cadence/internal/metrics"
	"github.com/zsiec/cadence/internal/stream"
	"github.com/zsiec/cadence/internal/video"
)

// Selector picks, per frame, between the clean stream and the five
// deblend candidates, driven by the classifier metadata on fm. It
// keeps no state across calls; concurrent Get is safe.
type Selector struct {
	fm    stream.Stream
	clean stream.Stream
	cands [5]stream.Stream
}

// NewSelector builds a selector. fm carries the per-frame metadata;
// clean is the stream emitted for frames the classifier left alone
// (usually fm itself); cands are the five phase candidates.
func NewSelector(fm, clean stream.Stream, cands [5]stream.Stream) *Selector {
	return &Selector{fm: fm, clean: clean, cands: cands}
}

func (s *Selector) Len() int {
	return s.fm.Len()
}

// Get resolves frame n. A combed frame swaps in the candidate for its
// cadence phase; when the next frame is combed too, the blend straddles
// both frames and the pick shifts forward to n+1 to land on the
// correct half.
func (s *Selector) Get(n int) (*video.Frame, error) {
	if s.Len() == 0 {
		return nil, errors.NewInternalError("get on empty stream")
	}
	n = stream.Clamp(n, s.Len())

	curCombed, err := s.combed(n)
	if err != nil {
		return nil, err
	}
	nextCombed, err := s.combed(stream.Clamp(n+1, s.Len()))
	if err != nil {
		return nil, err
	}

	chosen := s.clean
	source := "clean"
	if curCombed {
		chosen = s.cands[cadence.Phase(n)]
		source = "candidate"
	}
	idx := n
	if curCombed && nextCombed {
		idx = n + 1
		source = "shifted"
	}
	metrics.IncrementSelectorChoice(source)

	f, err := chosen.Get(idx)
	if err != nil {
		return nil, err
	}
	return stream.Relabel(f, n), nil
}

func (s *Selector) combed(n int) (bool, error) {
	f, err := s.fm.Get(n)
	if err != nil {
		return false, err
	}
	if f.Meta == nil {
		return false, errors.NewMissingMetadataError(n)
	}
	return f.Meta.Combed, nil
}
