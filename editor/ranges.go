package editor

import "sort"

// LineRange is a closed interval of 1-based document line numbers.
type LineRange struct {
	First int
	Last  int
}

// Contains reports whether n falls within the range.
func (r LineRange) Contains(n int) bool { return n >= r.First && n <= r.Last }

// Len returns the number of lines covered by the range.
func (r LineRange) Len() int { return r.Last - r.First + 1 }

// ViewportLines is a snapshot of which document lines were visible at query
// time. Ranges in each slice are sorted ascending, non-overlapping, and
// maximal. Every fully visible line is also covered by Partially. Gaps
// between ranges are meaningful: folding and virtualization legitimately
// render non-contiguous line sets (e.g. an anchor row kept alive at line 1
// while the viewport shows lines 480-520).
type ViewportLines struct {
	// Fully lists lines entirely within the viewport's vertical bounds.
	Fully []LineRange
	// Partially lists lines with any vertical overlap with the viewport.
	Partially []LineRange
}

// Covers reports whether line n overlaps the viewport at all.
func (v ViewportLines) Covers(n int) bool { return rangesContain(v.Partially, n) }

// CoversFully reports whether line n is entirely within the viewport.
func (v ViewportLines) CoversFully(n int) bool { return rangesContain(v.Fully, n) }

func rangesContain(rs []LineRange, n int) bool {
	for _, r := range rs {
		if r.Contains(n) {
			return true
		}
	}
	return false
}

// compressRanges turns a set of line numbers into minimal sorted disjoint
// closed ranges: consecutive numbers merge, gaps split. The input slice is
// not modified.
func compressRanges(lines []int) []LineRange {
	if len(lines) == 0 {
		return nil
	}

	sorted := make([]int, len(lines))
	copy(sorted, lines)
	sort.Ints(sorted)

	var out []LineRange
	cur := LineRange{First: sorted[0], Last: sorted[0]}
	for _, n := range sorted[1:] {
		switch {
		case n == cur.Last:
			// Duplicate, nothing to extend.
		case n == cur.Last+1:
			cur.Last = n
		default:
			out = append(out, cur)
			cur = LineRange{First: n, Last: n}
		}
	}
	return append(out, cur)
}
