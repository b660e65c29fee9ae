package deblend

import (
	"math"

	"github.com/zsiec/cadence/internal/errors"
	"github.com/zsiec/cadence/internal/stream"
	"github.com/zsiec/cadence/internal/video"
)

// VinverseOptions control the residual-combing suppression pass.
type VinverseOptions struct {
	// Strength scales the contra-sharpening delta.
	Strength float64

	// Limit caps how far any pixel may move from its source value.
	// 255 means unrestricted; values <= 0 disable the pass entirely
	// and hand the source through untouched.
	Limit int

	// Scale attenuates the delta when the sharpening and blurring
	// differences disagree in sign.
	Scale float64

	// Mode applies the filter vertically ("v"), horizontally ("h") or
	// both ("hv"). Empty selects vertical, the combing direction.
	Mode string

	// Planes lists the planes to process. Nil means all planes;
	// unprocessed planes pass through.
	Planes []int
}

// DefaultVinverseOptions returns the historical defaults.
func DefaultVinverseOptions() VinverseOptions {
	return VinverseOptions{
		Strength: 2.7,
		Limit:    255,
		Scale:    0.25,
		Mode:     "v",
	}
}

// Vinverse suppresses residual combing left behind by the deblend
// kernel. Per plane it builds blur (3-tap [50,99,50]/199 along Mode)
// and blur2 (blur convolved with [1,4,6,4,1]/16), then nudges each
// pixel from blur by whichever of (blur-blur2)*Strength and src-blur
// is smaller in magnitude, scaled by Scale when the two disagree in
// sign. With 0 < Limit < 255 the result may not leave src +/- Limit.
func Vinverse(src stream.Stream, opts VinverseOptions) (stream.Stream, error) {
	if opts.Mode == "" {
		opts.Mode = "v"
	}
	if opts.Mode != "v" && opts.Mode != "h" && opts.Mode != "hv" {
		return nil, errors.NewInvalidParameterError("mode", `must be "v", "h" or "hv"`)
	}
	if opts.Strength < 0 {
		return nil, errors.NewInvalidParameterError("strength", "must be non-negative")
	}
	if opts.Scale < 0 {
		return nil, errors.NewInvalidParameterError("scale", "must be non-negative")
	}
	if opts.Limit > 255 {
		return nil, errors.NewInvalidParameterError("limit", "must be at most 255")
	}
	for _, p := range opts.Planes {
		if p < 0 {
			return nil, errors.NewInvalidParameterError("planes", "plane indices must be non-negative")
		}
	}
	if opts.Limit <= 0 {
		return src, nil
	}
	if opts.Planes != nil {
		planes := make([]int, len(opts.Planes))
		copy(planes, opts.Planes)
		opts.Planes = planes
	}

	return stream.NewDerived(src.Len(), func(n int) (*video.Frame, error) {
		f, err := src.Get(n)
		if err != nil {
			return nil, err
		}
		out := &video.Frame{Index: n, Planes: make([]video.Plane, len(f.Planes)), Meta: f.Meta}
		for pi, p := range f.Planes {
			if planeSelected(opts.Planes, pi) {
				out.Planes[pi] = vinversePlane(p, opts)
			} else {
				out.Planes[pi] = p
			}
		}
		return out, nil
	}), nil
}

func planeSelected(planes []int, pi int) bool {
	if planes == nil {
		return true
	}
	for _, p := range planes {
		if p == pi {
			return true
		}
	}
	return false
}

// Convolution kernels; each divisor is the coefficient sum so flat
// areas are fixpoints.
var (
	blurKernel  = []int{50, 99, 50}
	blur2Kernel = []int{1, 4, 6, 4, 1}
)

func vinversePlane(src video.Plane, opts VinverseOptions) video.Plane {
	blur := convolve(src, blurKernel, opts.Mode)
	blur2 := convolve(blur, blur2Kernel, opts.Mode)

	out := video.NewPlane(src.Width, src.Height)
	for i := range out.Data {
		x := float64(src.Data[i])
		y := float64(blur.Data[i])
		z := float64(blur2.Data[i])

		d1 := (y - z) * opts.Strength
		d2 := x - y

		v := d1
		if math.Abs(d1) >= math.Abs(d2) {
			v = d2
		}
		if (d1 > 0) != (d2 > 0) {
			v *= opts.Scale
		}
		r := y + v

		if opts.Limit < 255 {
			lo, hi := x-float64(opts.Limit), x+float64(opts.Limit)
			if r < lo {
				r = lo
			} else if r > hi {
				r = hi
			}
		}

		ir := int(math.Round(r))
		if ir < 0 {
			ir = 0
		} else if ir > 255 {
			ir = 255
		}
		out.Data[i] = byte(ir)
	}
	return out
}

// convolve runs the 1-D kernel along the axes Mode selects,
// horizontal before vertical for "hv". Each pass rounds back to 8
// bits, matching the historical pipeline. Edges replicate.
func convolve(p video.Plane, kernel []int, mode string) video.Plane {
	out := p
	if mode == "h" || mode == "hv" {
		out = convolveAxis(out, kernel, true)
	}
	if mode == "v" || mode == "hv" {
		out = convolveAxis(out, kernel, false)
	}
	return out
}

func convolveAxis(p video.Plane, kernel []int, horizontal bool) video.Plane {
	div := 0
	for _, k := range kernel {
		div += k
	}
	radius := len(kernel) / 2

	out := video.NewPlane(p.Width, p.Height)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			sum := 0
			for ki, k := range kernel {
				tx, ty := x, y
				if horizontal {
					tx = clampCoord(x+ki-radius, p.Width)
				} else {
					ty = clampCoord(y+ki-radius, p.Height)
				}
				sum += k * int(p.Data[ty*p.Width+tx])
			}
			out.Data[y*p.Width+x] = byte((sum + div/2) / div)
		}
	}
	return out
}

func clampCoord(v, max int) int {
	if v < 0 {
		return 0
	}
	if v >= max {
		return max - 1
	}
	return v
}
