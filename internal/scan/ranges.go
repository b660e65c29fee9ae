package scan

// CollapseRanges folds sorted frame indices into range markers. Indices
// are grouped into runs of consecutive values; runs longer than
// minLength each contribute two markers, their first index and their
// second-to-last index, in run order. A surviving run of a single frame
// reuses that frame for both markers.
func CollapseRanges(indices []int, minLength int) []int {
	var runs [][]int
	var cur []int
	prev := -1
	for _, n := range indices {
		if prev+1 != n && len(cur) > 0 {
			runs = append(runs, cur)
			cur = nil
		}
		cur = append(cur, n)
		prev = n
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}

	var out []int
	for _, run := range runs {
		if len(run) <= minLength {
			continue
		}
		end := len(run) - 2
		if end < 0 {
			end = 0
		}
		out = append(out, run[0], run[end])
	}
	return out
}
