package restore

import (
	"github.com/zsiec/cadence/internal/errors"
	"github.com/zsiec/cadence/internal/metrics"
	"github.com/zsiec/cadence/internal/stream"
	"github.com/zsiec/cadence/internal/video"
)

// KeyframeCorrector repairs the frames the selector realigns across a
// scene cut: a combed frame touching a boundary must pull its
// replacement from the side of the cut it belongs to, not from the
// phase the cadence alone would suggest.
type KeyframeCorrector struct {
	inner stream.Stream
	fm    stream.Stream
}

// NewKeyframeCorrector wraps an already-deblended stream. fm carries
// the scene-change and combed flags.
func NewKeyframeCorrector(inner, fm stream.Stream) *KeyframeCorrector {
	return &KeyframeCorrector{inner: inner, fm: fm}
}

func (k *KeyframeCorrector) Len() int {
	return k.inner.Len()
}

// Get emits inner[n] unless frame n is combed at a boundary: where the
// scene flags of n-1 and n sum to 1 the boundary ends here and the
// previous frame substitutes; where they sum to 2 it starts here and
// the next frame does. Both reads clamp at the stream edges.
func (k *KeyframeCorrector) Get(n int) (*video.Frame, error) {
	if k.Len() == 0 {
		return nil, errors.NewInternalError("get on empty stream")
	}
	n = stream.Clamp(n, k.Len())

	cur, err := k.meta(n)
	if err != nil {
		return nil, err
	}
	prev, err := k.meta(stream.Clamp(n-1, k.Len()))
	if err != nil {
		return nil, err
	}

	idx := n
	if cur.Combed {
		switch prev.SceneChange + cur.SceneChange {
		case 1:
			idx = n - 1
			metrics.IncrementBoundaryCorrection("end")
		case 2:
			idx = n + 1
			metrics.IncrementBoundaryCorrection("start")
		}
	}

	f, err := k.inner.Get(idx)
	if err != nil {
		return nil, err
	}
	return stream.Relabel(f, n), nil
}

func (k *KeyframeCorrector) meta(n int) (*video.Metadata, error) {
	f, err := k.fm.Get(n)
	if err != nil {
		return nil, err
	}
	if f.Meta == nil {
		return nil, errors.NewMissingMetadataError(n)
	}
	return f.Meta, nil
}
