package combmask

import (
	"github.com/zsiec/cadence/internal/video"
)

// DefaultDiffBlockSize is the tile side for MaxBlockDiff.
const DefaultDiffBlockSize = 32

// MaxBlockDiff returns the largest per-tile sum of absolute luma
// differences between two frames. Near-zero values mean cur
// essentially duplicates prev, the signature of material that was
// never telecined. blockSize <= 0 selects the default; edge tiles
// shrink to fit. Mismatched luma geometry yields 0.
func MaxBlockDiff(prev, cur *video.Frame, blockSize int) int64 {
	if blockSize <= 0 {
		blockSize = DefaultDiffBlockSize
	}
	a, b := prev.Planes[0], cur.Planes[0]
	if a.Width != b.Width || a.Height != b.Height {
		return 0
	}

	var max int64
	for by := 0; by < a.Height; by += blockSize {
		bh := blockSize
		if by+bh > a.Height {
			bh = a.Height - by
		}
		for bx := 0; bx < a.Width; bx += blockSize {
			bw := blockSize
			if bx+bw > a.Width {
				bw = a.Width - bx
			}
			if sum := blockDiff(a, b, bx, by, bw, bh); sum > max {
				max = sum
			}
		}
	}
	return max
}

func blockDiff(a, b video.Plane, bx, by, bw, bh int) int64 {
	var sum int64
	for y := by; y < by+bh; y++ {
		row := y * a.Width
		for x := bx; x < bx+bw; x++ {
			diff := int(a.Data[row+x]) - int(b.Data[row+x])
			if diff < 0 {
				diff = -diff
			}
			sum += int64(diff)
		}
	}
	return sum
}
