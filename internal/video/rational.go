package video

import "fmt"

// Rational represents a rational number (numerator/denominator)
// Used for frame rates
type Rational struct {
	Num int // Numerator
	Den int // Denominator
}

// NewRational creates a new rational number
func NewRational(num, den int) Rational {
	if den == 0 {
		den = 1
	}
	return Rational{Num: num, Den: den}
}

// Float64 returns the floating point representation
func (r Rational) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// String returns the "num/den" form
func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// Equals reports exact equality of numerator and denominator.
// Cadence entry points gate on the exact NTSC rationals, not on
// float comparisons, so 29.97 written as 2997/100 does not pass.
func (r Rational) Equals(other Rational) bool {
	return r.Num == other.Num && r.Den == other.Den
}

// NTSC frame rates
var (
	FrameRate23_976 = Rational{Num: 24000, Den: 1001} // 23.976 fps (film via telecine)
	FrameRate29_97  = Rational{Num: 30000, Den: 1001} // 29.97 fps
	FrameRate59_94  = Rational{Num: 60000, Den: 1001} // 59.94 fps
)
