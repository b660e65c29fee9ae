package restore

import (
	"github.com/zsiec/cadence/internal/cadence"
	"github.com/zsiec/cadence/internal/stream"
)

// Decimate drops one frame per five-frame cycle, the standard
// 30 to 24 fps reduction after field matching. pattern picks which
// position in the cycle is dropped.
func Decimate(src stream.Stream, pattern int) (stream.Stream, error) {
	return stream.SelectEvery(src, cadence.DecimateCycle, cadence.SingleDrop5(pattern))
}
