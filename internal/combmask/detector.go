package combmask

import (
	"github.com/zsiec/cadence/internal/errors"
	"github.com/zsiec/cadence/internal/video"
)

// Detector defaults.
const (
	DefaultBlockSize = 16
	DefaultMI        = 64
)

// DetectorOptions configure the frame-level combing decision.
type DetectorOptions struct {
	// Mask configures the underlying kernel. The detector only looks
	// at luma, so the Planes field is overridden.
	Mask Options

	// BlockSize is the side of the square windows inspected.
	// Non-positive selects the default.
	BlockSize int

	// MI is the number of flagged pixels a single window must exceed
	// for the whole frame to count as combed. Non-positive selects the
	// default.
	MI int
}

// Detector turns the pixel mask into a per-frame combed verdict: a
// frame is combed when any BlockSize square of its luma mask holds
// more than MI flagged pixels.
type Detector struct {
	masker    *Masker
	blockSize int
	mi        int
}

// NewDetector validates the options and builds a Detector.
func NewDetector(opts DetectorOptions) (*Detector, error) {
	maskOpts := opts.Mask
	maskOpts.Planes = []int{0}
	masker, err := New(maskOpts)
	if err != nil {
		return nil, err
	}
	blockSize := opts.BlockSize
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	mi := opts.MI
	if mi <= 0 {
		mi = DefaultMI
	}
	if blockSize > 255 {
		return nil, errors.NewInvalidParameterError("blockSize", "must be at most 255")
	}
	return &Detector{masker: masker, blockSize: blockSize, mi: mi}, nil
}

// IsCombed reports whether cur carries enough combing to need repair.
// next feeds the motion mask; pass cur again at the stream end.
func (d *Detector) IsCombed(cur, next *video.Frame) bool {
	mask := d.masker.Apply(cur, next)
	luma := mask.Planes[0]

	for by := 0; by < luma.Height; by += d.blockSize {
		bh := d.blockSize
		if by+bh > luma.Height {
			bh = luma.Height - by
		}
		for bx := 0; bx < luma.Width; bx += d.blockSize {
			bw := d.blockSize
			if bx+bw > luma.Width {
				bw = luma.Width - bx
			}
			if d.countFlagged(luma, bx, by, bw, bh) > d.mi {
				return true
			}
		}
	}
	return false
}

func (d *Detector) countFlagged(p video.Plane, bx, by, bw, bh int) int {
	count := 0
	for y := by; y < by+bh; y++ {
		row := y * p.Width
		for x := bx; x < bx+bw; x++ {
			if p.Data[row+x] != 0 {
				count++
			}
		}
	}
	return count
}
