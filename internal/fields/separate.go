package fields

import (
	"fmt"

	"github.com/zsiec/cadence/internal/errors"
	"github.com/zsiec/cadence/internal/stream"
	"github.com/zsiec/cadence/internal/video"
)

// Separate splits every frame into its two half-height fields,
// doubling the stream length. With tff the top field (even source
// rows) comes first in each pair, otherwise the bottom field does.
// Every plane of every frame must have even height, chroma included.
func Separate(src stream.Stream, tff bool) stream.Stream {
	return stream.NewDerived(src.Len()*2, func(n int) (*video.Frame, error) {
		f, err := src.Get(n / 2)
		if err != nil {
			return nil, err
		}

		// Field parity: output 2i is the top field iff tff.
		top := (n%2 == 0) == tff

		out := &video.Frame{Index: n, Planes: make([]video.Plane, len(f.Planes)), Meta: f.Meta}
		for pi, p := range f.Planes {
			if p.Height%2 != 0 {
				return nil, errors.NewInvalidParameterError("height",
					fmt.Sprintf("plane %d height %d is odd, cannot separate fields", pi, p.Height))
			}
			out.Planes[pi] = extractField(p, top)
		}
		return out, nil
	})
}

// extractField copies every second row of p, starting at row 0 for the
// top field and row 1 for the bottom.
func extractField(p video.Plane, top bool) video.Plane {
	start := 0
	if !top {
		start = 1
	}
	field := video.NewPlane(p.Width, p.Height/2)
	for y := 0; y < field.Height; y++ {
		srcOff := (start + 2*y) * p.Width
		copy(field.Data[y*p.Width:(y+1)*p.Width], p.Data[srcOff:srcOff+p.Width])
	}
	return field
}
