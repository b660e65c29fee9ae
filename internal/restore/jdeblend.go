package restore

import (
	"github.com/zsiec/cadence/internal/deblend"
	"github.com/zsiec/cadence/internal/stream"
)

// JDeblendOptions configure the metadata-driven restoration.
type JDeblendOptions struct {
	// Vinverse overrides the residual-combing suppression on the
	// deblend candidates. Nil applies the defaults; a Limit <= 0
	// disables the pass.
	Vinverse *deblend.VinverseOptions
}

// JDeblend repairs sources where field matching leaves two blended
// frames in every five, steered by the classifier's combed flags
// instead of a fixed pattern. fm is the field-matched stream carrying
// metadata and supplying clean frames; src is the untouched source the
// deblend candidates are synthesized from. Callers that want the
// repair restricted to chroma merge fm's luma back over the result.
func JDeblend(fm, src stream.Stream, opts JDeblendOptions) (stream.Stream, error) {
	vopts := deblend.DefaultVinverseOptions()
	if opts.Vinverse != nil {
		vopts = *opts.Vinverse
	}
	deblended, err := deblend.Vinverse(deblend.Synthesize(src), vopts)
	if err != nil {
		return nil, err
	}
	return NewSelector(fm, fm, BuildCandidates(src, deblended)), nil
}

// JDeblendKF wraps a JDeblend result with the scene boundary
// corrector. fm must be the same field-matched stream the deblend was
// driven by.
func JDeblendKF(deblended, fm stream.Stream) stream.Stream {
	return NewKeyframeCorrector(deblended, fm)
}
