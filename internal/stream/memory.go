package stream

import (
	"github.com/zsiec/cadence/internal/errors"
	"github.com/zsiec/cadence/internal/video"
)

// memoryStream serves frames already held in memory.
type memoryStream struct {
	frames []*video.Frame
}

// FromFrames wraps a frame slice as a Stream. The slice is not copied;
// callers must not mutate frames after handing them over.
func FromFrames(frames []*video.Frame) Stream {
	return &memoryStream{frames: frames}
}

func (s *memoryStream) Len() int {
	return len(s.frames)
}

func (s *memoryStream) Get(n int) (*video.Frame, error) {
	if len(s.frames) == 0 {
		return nil, errors.NewInternalError("get on empty stream")
	}
	return s.frames[Clamp(n, len(s.frames))], nil
}

// Collect realizes every frame of a stream into memory, in index order.
func Collect(s Stream) ([]*video.Frame, error) {
	out := make([]*video.Frame, s.Len())
	for i := range out {
		f, err := s.Get(i)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
