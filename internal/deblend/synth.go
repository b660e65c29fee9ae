package deblend

import (
	"github.com/zsiec/cadence/internal/metrics"
	"github.com/zsiec/cadence/internal/stream"
	"github.com/zsiec/cadence/internal/video"
)

// Synthesize returns a lazy stream that reconstructs the un-blended
// middle frame at every index. With a = src[n-1], ab = src[n],
// bc = src[n+1] and c = src[n+2] (all clamped at the stream edges),
// each output pixel is
//
//	bc - c/2 + ab - a/2
//
// When ab and bc really are half-blends (A+B)/2 and (B+C)/2, the
// shared halves cancel and B remains. Arithmetic is exact: the sum is
// formed in integers, halved with round-to-nearest and clamped to
// [0,255].
func Synthesize(src stream.Stream) stream.Stream {
	return stream.NewDerived(src.Len(), func(n int) (*video.Frame, error) {
		a, err := src.Get(n - 1)
		if err != nil {
			return nil, err
		}
		ab, err := src.Get(n)
		if err != nil {
			return nil, err
		}
		bc, err := src.Get(n + 1)
		if err != nil {
			return nil, err
		}
		c, err := src.Get(n + 2)
		if err != nil {
			return nil, err
		}

		out := &video.Frame{Index: n, Planes: make([]video.Plane, len(ab.Planes)), Meta: ab.Meta}
		for pi := range ab.Planes {
			out.Planes[pi] = deblendPlane(a.Planes[pi], ab.Planes[pi], bc.Planes[pi], c.Planes[pi])
		}
		metrics.IncrementDeblendSynthesized()
		return out, nil
	})
}

func deblendPlane(a, ab, bc, c video.Plane) video.Plane {
	out := video.NewPlane(ab.Width, ab.Height)
	for i := range out.Data {
		// 2*(bc + ab) - c - a, halved with rounding.
		t := 2*(int(bc.Data[i])+int(ab.Data[i])) - int(c.Data[i]) - int(a.Data[i])
		v := (t + 1) >> 1
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		out.Data[i] = byte(v)
	}
	return out
}
