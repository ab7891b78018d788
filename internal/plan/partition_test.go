package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionBalanced(t *testing.T) {
	testCases := []struct {
		name     string
		n        int
		shards   int
		expected [][2]int
	}{
		{"Even split", 9, 3, [][2]int{{0, 3}, {3, 6}, {6, 9}}},
		{"Remainder goes to leading shards", 7, 3, [][2]int{{0, 3}, {3, 5}, {5, 7}}},
		{"Fewer rows than shards", 2, 3, [][2]int{{0, 1}, {1, 2}, {2, 2}}},
		{"No rows", 0, 3, [][2]int{{0, 0}, {0, 0}, {0, 0}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Partition(tc.n, tc.shards)
			assert.Equal(t, tc.expected, got)

			// Shards are contiguous, cover everything, and differ by at most one row.
			prevEnd := 0
			minSize, maxSize := tc.n, 0
			for _, r := range got {
				assert.Equal(t, prevEnd, r[0])
				prevEnd = r[1]
				size := r[1] - r[0]
				if size < minSize {
					minSize = size
				}
				if size > maxSize {
					maxSize = size
				}
			}
			assert.Equal(t, tc.n, prevEnd)
			assert.LessOrEqual(t, maxSize-minSize, 1)
		})
	}
}
