package plan

// shardBounds computes the half-open [start, end) range of shard i when n
// rows are split into `of` contiguous shards whose sizes differ by at most
// one. This replaces the old fixed-position slicing, which silently broke
// when a date's record count varied.
func shardBounds(n, i, of int) (int, int) {
	if of <= 0 || i < 0 || i >= of {
		return 0, 0
	}
	base := n / of
	extra := n % of
	start := i*base + min(i, extra)
	size := base
	if i < extra {
		size++
	}
	return start, start + size
}

// Partition returns the [start, end) ranges of all shards over n rows.
func Partition(n, shards int) [][2]int {
	out := make([][2]int, 0, shards)
	for i := 0; i < shards; i++ {
		s, e := shardBounds(n, i, shards)
		out = append(out, [2]int{s, e})
	}
	return out
}
