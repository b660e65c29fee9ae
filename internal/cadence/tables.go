package cadence

// Phase reduces any integer pattern to its cadence phase in [0, 4].
// Negative patterns normalize the same way python's modulo does.
func Phase(pattern int) int {
	p := pattern % 5
	if p < 0 {
		p += 5
	}
	return p
}

// Cycle lengths the tables select within.
const (
	ReinterleaveCycle = 10
	MergeCycle        = 8
	DecimateCycle     = 5
)

// Cadence tables, one row per phase. Each row lists the four indices
// that survive one cycle of the corresponding stage. The rows are
// reference data and carry the exact historical values.
var (
	reinterleave = [5][4]int{
		{0, 3, 6, 8},
		{0, 2, 5, 8},
		{0, 2, 4, 7},
		{2, 4, 6, 9},
		{1, 4, 6, 8},
	}

	merge = [5][4]int{
		{0, 3, 4, 6},
		{0, 2, 5, 6},
		{0, 2, 4, 7},
		{0, 2, 4, 7},
		{1, 2, 4, 6},
	}

	decimate5 = [5][4]int{
		{0, 1, 3, 4},
		{0, 1, 2, 4},
		{0, 1, 2, 3},
		{1, 2, 3, 4},
		{0, 2, 3, 4},
	}

	singleDrop5 = [5][4]int{
		{1, 2, 3, 4},
		{0, 2, 3, 4},
		{0, 1, 3, 4},
		{0, 1, 2, 4},
		{0, 1, 2, 3},
	}
)

// Reinterleave returns the double-woven indices (cycle of 10) that
// reassemble clean progressive frames for the given pattern.
func Reinterleave(pattern int) []int {
	return row(reinterleave[Phase(pattern)])
}

// Merge returns the indices (cycle of 8) that weave the re-interleaved
// and deblended tracks into the final stream for the given pattern.
func Merge(pattern int) []int {
	return row(merge[Phase(pattern)])
}

// Decimate5 returns the indices (cycle of 5) kept from the deblended
// track for the given pattern.
func Decimate5(pattern int) []int {
	return row(decimate5[Phase(pattern)])
}

// SingleDrop5 returns the indices (cycle of 5) that drop exactly one
// frame per cycle for the given pattern.
func SingleDrop5(pattern int) []int {
	return row(singleDrop5[Phase(pattern)])
}

// row hands out a copy so callers cannot write through to the tables.
func row(r [4]int) []int {
	out := make([]int, len(r))
	copy(out, r[:])
	return out
}
