package fields

import (
	"fmt"

	"github.com/zsiec/cadence/internal/errors"
	"github.com/zsiec/cadence/internal/stream"
	"github.com/zsiec/cadence/internal/video"
)

// DoubleWeave weaves every pair of consecutive fields back into a
// full-height frame: woven frame i combines fields i and i+1 (the last
// pair clamps), keeping the stream length. tff must match the order
// the fields were separated with so each pair lands on the right rows.
func DoubleWeave(src stream.Stream, tff bool) stream.Stream {
	return stream.NewDerived(src.Len(), func(n int) (*video.Frame, error) {
		first, err := src.Get(n)
		if err != nil {
			return nil, err
		}
		second, err := src.Get(stream.Clamp(n+1, src.Len()))
		if err != nil {
			return nil, err
		}

		// Field n is a top field iff its parity matches the field
		// order the stream was separated with.
		topFirst := (n%2 == 0) == tff

		out := &video.Frame{Index: n, Planes: make([]video.Plane, len(first.Planes)), Meta: first.Meta}
		for pi := range first.Planes {
			fp, sp := first.Planes[pi], second.Planes[pi]
			if fp.Width != sp.Width || fp.Height != sp.Height {
				return nil, errors.NewInternalError(
					fmt.Sprintf("field pair %d/%d plane %d size mismatch: %dx%d vs %dx%d",
						n, n+1, pi, fp.Width, fp.Height, sp.Width, sp.Height))
			}
			if topFirst {
				out.Planes[pi] = weavePlanes(fp, sp)
			} else {
				out.Planes[pi] = weavePlanes(sp, fp)
			}
		}
		return out, nil
	})
}

// weavePlanes interleaves two fields row by row, the top field
// occupying even output rows.
func weavePlanes(top, bottom video.Plane) video.Plane {
	out := video.NewPlane(top.Width, top.Height*2)
	for y := 0; y < top.Height; y++ {
		copy(out.Data[(2*y)*out.Width:], top.Data[y*top.Width:(y+1)*top.Width])
		copy(out.Data[(2*y+1)*out.Width:], bottom.Data[y*bottom.Width:(y+1)*bottom.Width])
	}
	return out
}
