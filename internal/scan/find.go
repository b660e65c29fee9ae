package scan

import (
	"context"

	"github.com/zsiec/cadence/internal/combmask"
	"github.com/zsiec/cadence/internal/stream"
)

// Default pass parameters.
const (
	// Default30pMinLength is the run length a 30 fps range must exceed.
	Default30pMinLength = 34
	// Default30pThreshold is the block difference above which a frame is
	// no duplicate.
	Default30pThreshold = 2000
	// Default60pMinLength is the run length a 60 fps range must exceed.
	Default60pMinLength = 60
)

// FindCombed returns the indices of frames det reports as combed,
// ascending. Each frame's motion reference is its successor; the last
// frame reuses itself.
func (sc *Scanner) FindCombed(ctx context.Context, s stream.Stream, det *combmask.Detector) ([]int, error) {
	return sc.run(ctx, "comb", s.Len(), func(n int) (bool, error) {
		cur, err := s.Get(n)
		if err != nil {
			return false, err
		}
		next, err := s.Get(n + 1)
		if err != nil {
			return false, err
		}
		return det.IsCombed(cur, next), nil
	})
}

// Find30p locates probable 30 fps stretches in field-matched material:
// frames whose max block difference against their predecessor exceeds
// thr carry real motion, and runs of more than minLength of them in a
// row lack the duplicates decimation would need. The flagged indices
// come back collapsed into range markers.
func (sc *Scanner) Find30p(ctx context.Context, s stream.Stream, minLength int, thr int64) ([]int, error) {
	flagged, err := sc.run(ctx, "30p", s.Len(), func(n int) (bool, error) {
		prev, err := s.Get(n - 1)
		if err != nil {
			return false, err
		}
		cur, err := s.Get(n)
		if err != nil {
			return false, err
		}
		return combmask.MaxBlockDiff(prev, cur, combmask.DefaultDiffBlockSize) > thr, nil
	})
	if err != nil {
		return nil, err
	}
	return CollapseRanges(flagged, minLength), nil
}

// Find60p locates probable 60 fps stretches: runs of more than
// minLength consecutive frames the detector does not consider combed.
// The flagged indices come back collapsed into range markers.
func (sc *Scanner) Find60p(ctx context.Context, s stream.Stream, det *combmask.Detector, minLength int) ([]int, error) {
	flagged, err := sc.run(ctx, "60p", s.Len(), func(n int) (bool, error) {
		cur, err := s.Get(n)
		if err != nil {
			return false, err
		}
		next, err := s.Get(n + 1)
		if err != nil {
			return false, err
		}
		return !det.IsCombed(cur, next), nil
	})
	if err != nil {
		return nil, err
	}
	return CollapseRanges(flagged, minLength), nil
}
