// Package report renders the compact summaries every toolkit batch prints:
// rowid lists collapsed into ranges, and name lists in a stable collation
// order. Reports are produced even when a batch ends early, so the helpers
// here never fail.
package report

import (
	"fmt"
	"strings"
)

// DefaultMaxGroups bounds how many ranges a formatted rowid list shows.
const DefaultMaxGroups = 10

// Range is an inclusive run of consecutive rowids.
type Range struct {
	Start int64
	End   int64
}

func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%d", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Ranges collapses a sorted rowid list into inclusive ranges. Consecutive
// ids merge; gaps start a new range. The input is expected sorted ascending
// (archive reads are ordered by rowid).
func Ranges(ids []int64) []Range {
	var ranges []Range
	for _, id := range ids {
		if n := len(ranges); n > 0 && id == ranges[n-1].End+1 {
			ranges[n-1].End = id
			continue
		}
		ranges = append(ranges, Range{Start: id, End: id})
	}
	return ranges
}

// FormatRanges renders ranges as "1-3, 5-6, 9". When there are more than
// maxGroups ranges only the trailing maxGroups-1 are kept, behind a leading
// "..." marker; the head of a long list is the least interesting part.
// maxGroups <= 0 falls back to DefaultMaxGroups.
func FormatRanges(ranges []Range, maxGroups int) string {
	if maxGroups <= 0 {
		maxGroups = DefaultMaxGroups
	}
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	if len(parts) > maxGroups {
		parts = append([]string{"..."}, parts[len(parts)-(maxGroups-1):]...)
	}
	return strings.Join(parts, ", ")
}

// FormatRowIDs renders a rowid list as a right-aligned count followed by its
// compacted ranges, e.g. "     6  (1-3, 5-6, 9)".
func FormatRowIDs(ids []int64, maxGroups int) string {
	return fmt.Sprintf("%6d  (%s)", len(ids), FormatRanges(Ranges(ids), maxGroups))
}
