package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangesCompaction(t *testing.T) {
	ranges := Ranges([]int64{1, 2, 3, 5, 6, 9})
	assert.Equal(t, []Range{{1, 3}, {5, 6}, {9, 9}}, ranges)
}

func TestRangesEmpty(t *testing.T) {
	assert.Empty(t, Ranges(nil))
	assert.Equal(t, "", FormatRanges(nil, 0))
}

func TestRangesSingle(t *testing.T) {
	assert.Equal(t, []Range{{7, 7}}, Ranges([]int64{7}))
	assert.Equal(t, "7", FormatRanges(Ranges([]int64{7}), 0))
}

func TestFormatRangesBasic(t *testing.T) {
	assert.Equal(t, "1-3, 5-6, 9", FormatRanges(Ranges([]int64{1, 2, 3, 5, 6, 9}), 0))
}

func TestFormatRangesTruncation(t *testing.T) {
	// 12 disjoint singletons, max 10 groups: keep the trailing 9 behind an
	// ellipsis marker.
	ids := make([]int64, 12)
	for i := range ids {
		ids[i] = int64(2 * i) // 0, 2, 4, ... all disjoint
	}
	got := FormatRanges(Ranges(ids), 10)
	assert.Equal(t, "..., 6, 8, 10, 12, 14, 16, 18, 20, 22", got)
}

func TestFormatRangesExactlyMaxGroups(t *testing.T) {
	ids := []int64{1, 3, 5}
	assert.Equal(t, "1, 3, 5", FormatRanges(Ranges(ids), 3))
}

func TestFormatRowIDs(t *testing.T) {
	assert.Equal(t, "     6  (1-3, 5-6, 9)", FormatRowIDs([]int64{1, 2, 3, 5, 6, 9}, 0))
	assert.Equal(t, "     0  ()", FormatRowIDs(nil, 0))
}

func TestSortNames(t *testing.T) {
	got := SortNames([]string{"mallory", "Bob", "alice"})
	assert.Equal(t, []string{"alice", "Bob", "mallory"}, got)
}

func TestSortedKeys(t *testing.T) {
	set := map[string]struct{}{"c": {}, "a": {}, "b": {}}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(set))
}
