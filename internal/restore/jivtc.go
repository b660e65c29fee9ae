package restore

import (
	"github.com/zsiec/cadence/internal/cadence"
	"github.com/zsiec/cadence/internal/deblend"
	"github.com/zsiec/cadence/internal/errors"
	"github.com/zsiec/cadence/internal/fields"
	"github.com/zsiec/cadence/internal/stream"
	"github.com/zsiec/cadence/internal/video"
)

// Options configure the pattern-driven restoration.
type Options struct {
	// ChromaOnly takes luma purely from the re-interleaved track and
	// only chroma from the merged result. Deblending luma as well is
	// rarely worth the ringing it risks.
	ChromaOnly bool

	// TFF selects top field first.
	TFF bool

	// Vinverse overrides the residual-combing suppression on the
	// deblended track. Nil applies the defaults; a Limit <= 0 disables
	// the pass.
	Vinverse *deblend.VinverseOptions
}

// DefaultOptions returns the historical defaults: chroma only, top
// field first, vinverse on.
func DefaultOptions() Options {
	return Options{ChromaOnly: true, TFF: true}
}

// JIVTCDeblend restores a telecined source whose field matching left
// blended frames on a fixed cadence. It builds two parallel tracks,
// a direct field re-interleave and a deblend-then-decimate pass, then
// weaves them per the cadence tables. pattern is the first frame of
// any clean-combed-combed-clean-clean sequence; rate must be exactly
// 29.97.
func JIVTCDeblend(src stream.Stream, rate video.Rational, pattern int, opts Options) (stream.Stream, error) {
	if !rate.Equals(video.FrameRate29_97) {
		return nil, errors.NewInvalidFrameRateError(
			rate.Num, rate.Den, video.FrameRate29_97.Num, video.FrameRate29_97.Den)
	}
	phase := cadence.Phase(pattern)

	woven := fields.DoubleWeave(fields.Separate(src, opts.TFF), opts.TFF)
	ivtced, err := stream.SelectEvery(woven, cadence.ReinterleaveCycle, cadence.Reinterleave(phase))
	if err != nil {
		return nil, err
	}

	vopts := deblend.DefaultVinverseOptions()
	if opts.Vinverse != nil {
		vopts = *opts.Vinverse
	}
	deblended, err := deblend.Vinverse(deblend.Synthesize(src), vopts)
	if err != nil {
		return nil, err
	}
	decimated, err := stream.SelectEvery(deblended, cadence.DecimateCycle, cadence.Decimate5(phase))
	if err != nil {
		return nil, err
	}

	// The tables keep both tracks the same length for any input, so a
	// mismatch here means they were edited out of step.
	inter, err := stream.Interleave(ivtced, decimated)
	if err != nil {
		return nil, err
	}
	merged, err := stream.SelectEvery(inter, cadence.MergeCycle, cadence.Merge(phase))
	if err != nil {
		return nil, err
	}

	if opts.ChromaOnly {
		return stream.MergePlanes(ivtced, merged), nil
	}
	return merged, nil
}
