package combmask

import (
	"fmt"

	"github.com/zsiec/cadence/internal/errors"
	"github.com/zsiec/cadence/internal/metrics"
	"github.com/zsiec/cadence/internal/video"
)

// Default thresholds for the mask kernel.
const (
	DefaultCThresh = 6
	DefaultMThresh = 9
)

// Options control the comb/motion mask kernel.
type Options struct {
	// CThresh is the spatial combing threshold. Domain [0,255] for
	// metric 0; metric 1 compares against a product of differences, so
	// its domain widens to [0,65025].
	CThresh int

	// MThresh is the motion threshold. Zero disables the motion mask
	// entirely; the spatial mask passes through unattenuated.
	MThresh int

	// Metric selects the spatial test: 0 is the five-row neighborhood
	// test, 1 the simplified product test.
	Metric int

	// Expand dilates the combined mask horizontally by one pixel.
	Expand bool

	// Planes lists the planes to compute. Nil means all planes;
	// unselected planes come back zeroed.
	Planes []int
}

// Masker computes comb/motion masks. It holds only validated options,
// so one Masker may serve concurrent Apply calls.
type Masker struct {
	opts Options
}

// New validates the options and builds a Masker.
func New(opts Options) (*Masker, error) {
	if opts.Metric != 0 && opts.Metric != 1 {
		return nil, errors.NewInvalidParameterError("metric", "must be 0 or 1")
	}
	maxCThresh := 255
	if opts.Metric == 1 {
		maxCThresh = 65025
	}
	if opts.CThresh < 0 || opts.CThresh > maxCThresh {
		return nil, errors.NewInvalidParameterError("cthresh",
			fmt.Sprintf("must be between 0 and %d for metric %d", maxCThresh, opts.Metric))
	}
	if opts.MThresh < 0 || opts.MThresh > 255 {
		return nil, errors.NewInvalidParameterError("mthresh", "must be between 0 and 255")
	}
	for _, p := range opts.Planes {
		if p < 0 {
			return nil, errors.NewInvalidParameterError("planes", "plane indices must be non-negative")
		}
	}
	if opts.Planes != nil {
		planes := make([]int, len(opts.Planes))
		copy(planes, opts.Planes)
		opts.Planes = planes
	}
	return &Masker{opts: opts}, nil
}

// Apply computes the mask for cur. next supplies the motion reference
// when MThresh > 0; at the stream end pass cur again. Selected planes
// hold 255 where combing was detected and 0 elsewhere; unselected
// planes are all zero.
func (m *Masker) Apply(cur, next *video.Frame) *video.Frame {
	out := &video.Frame{
		Index:  cur.Index,
		Planes: make([]video.Plane, len(cur.Planes)),
		Meta:   cur.Meta,
	}
	for pi := range cur.Planes {
		p := cur.Planes[pi]
		mask := video.NewPlane(p.Width, p.Height)
		if m.planeSelected(pi) {
			if m.opts.Metric == 1 {
				spatialProduct(p, mask, m.opts.CThresh)
			} else {
				spatialNeighborhood(p, mask, m.opts.CThresh)
			}
			if m.opts.MThresh > 0 {
				motionAttenuate(p, motionPlane(next, pi, p), mask, m.opts.MThresh)
			}
			if m.opts.Expand {
				expandHorizontal(&mask)
			}
		}
		out.Planes[pi] = mask
	}
	metrics.IncrementMaskComputed()
	return out
}

func (m *Masker) planeSelected(pi int) bool {
	if m.opts.Planes == nil {
		return true
	}
	for _, p := range m.opts.Planes {
		if p == pi {
			return true
		}
	}
	return false
}

// motionPlane picks the matching plane of next, falling back to cur's
// plane when next is missing or differently sized.
func motionPlane(next *video.Frame, pi int, cur video.Plane) video.Plane {
	if next == nil || pi >= len(next.Planes) {
		return cur
	}
	np := next.Planes[pi]
	if np.Width != cur.Width || np.Height != cur.Height {
		return cur
	}
	return np
}

// spatialNeighborhood is metric 0: a five-row vertical neighborhood
// test. With neighbors (a,b,c,d,e) at row offsets -2..+2, a pixel is
// combed when both first differences exceed the threshold in the same
// direction and the second-derivative term clears 6*cthresh.
func spatialNeighborhood(src, mask video.Plane, cthresh int) {
	w, h := src.Width, src.Height
	for y := 0; y < h; y++ {
		rowA := clampRow(y-2, h) * w
		rowB := clampRow(y-1, h) * w
		rowC := y * w
		rowD := clampRow(y+1, h) * w
		rowE := clampRow(y+2, h) * w
		for x := 0; x < w; x++ {
			c := int(src.Data[rowC+x])
			b := int(src.Data[rowB+x])
			d := int(src.Data[rowD+x])
			d1 := c - b
			d2 := c - d
			if (d1 > cthresh && d2 > cthresh) || (d1 < -cthresh && d2 < -cthresh) {
				a := int(src.Data[rowA+x])
				e := int(src.Data[rowE+x])
				fd := 4*c + a + e - 3*(b+d)
				if fd < 0 {
					fd = -fd
				}
				if fd > 6*cthresh {
					mask.Data[rowC+x] = 255
				}
			}
		}
	}
}

// spatialProduct is metric 1: combed when the products of the vertical
// neighbor differences exceed the threshold.
func spatialProduct(src, mask video.Plane, cthresh int) {
	w, h := src.Width, src.Height
	for y := 0; y < h; y++ {
		rowB := clampRow(y-1, h) * w
		rowC := y * w
		rowD := clampRow(y+1, h) * w
		for x := 0; x < w; x++ {
			c := int(src.Data[rowC+x])
			b := int(src.Data[rowB+x])
			d := int(src.Data[rowD+x])
			if (b-c)*(d-c) > cthresh {
				mask.Data[rowC+x] = 255
			}
		}
	}
}

// motionAttenuate keeps a spatial hit only where the pixel also moved
// by more than mthresh between cur and next, the min of the spatial
// and motion masks.
func motionAttenuate(cur, next video.Plane, mask video.Plane, mthresh int) {
	for i, v := range mask.Data {
		if v == 0 {
			continue
		}
		diff := int(cur.Data[i]) - int(next.Data[i])
		if diff < 0 {
			diff = -diff
		}
		if diff <= mthresh {
			mask.Data[i] = 0
		}
	}
}

// expandHorizontal dilates the mask by one pixel left and right.
func expandHorizontal(mask *video.Plane) {
	w, h := mask.Width, mask.Height
	src := mask.Clone()
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			if src.Data[row+x] != 0 {
				continue
			}
			if (x > 0 && src.Data[row+x-1] != 0) || (x < w-1 && src.Data[row+x+1] != 0) {
				mask.Data[row+x] = 255
			}
		}
	}
}

func clampRow(y, height int) int {
	if y < 0 {
		return 0
	}
	if y >= height {
		return height - 1
	}
	return y
}
