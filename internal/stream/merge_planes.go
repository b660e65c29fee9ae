package stream

import (
	"github.com/zsiec/cadence/internal/video"
)

// planeMerged takes luma from one stream and chroma from another.
type planeMerged struct {
	luma   Stream
	chroma Stream
}

// MergePlanes builds frames whose plane 0 comes from the luma stream
// and remaining planes from the chroma stream. Metadata follows the
// luma frame. Both streams are expected to run in lockstep; the shorter
// one clamps.
func MergePlanes(luma, chroma Stream) Stream {
	return &planeMerged{luma: luma, chroma: chroma}
}

func (s *planeMerged) Len() int {
	return s.luma.Len()
}

func (s *planeMerged) Get(n int) (*video.Frame, error) {
	lf, err := s.luma.Get(n)
	if err != nil {
		return nil, err
	}
	cf, err := s.chroma.Get(n)
	if err != nil {
		return nil, err
	}

	planes := make([]video.Plane, 0, len(cf.Planes))
	planes = append(planes, lf.Planes[0])
	if len(cf.Planes) > 1 {
		planes = append(planes, cf.Planes[1:]...)
	}
	return &video.Frame{Index: Clamp(n, s.Len()), Planes: planes, Meta: lf.Meta}, nil
}
