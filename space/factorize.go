package space

// Combinations enumerates combinations(n, V) from §4.1: all ordered
// length-n tuples of positive integer divisors of V whose product equals
// V, where divisors may be 1. Used for SW tile factorizations (a dimension
// of value V split across L+1 levels; a factor of 1 means "no split at
// that level"). Ordering is lexicographic by choice of leading divisor,
// descending (matching the recursive enumeration order of the original
// implementation, which callers rely on for Random/Grid index-to-value
// stability across parameter construction).
func Combinations(n, v int) [][]int {
	return enumerate(n, v, 1, nil)
}

// CombinationsV2 enumerates combinations_v2(n, V): the same tuples as
// Combinations, but every factor must be >= 2. Used for HW subcluster
// factorizations — each memory-hierarchy level must fan out by at least 2.
func CombinationsV2(n, v int) [][]int {
	return enumerate(n, v, 2, nil)
}

func enumerate(n, v, minFactor int, curr []int) [][]int {
	if n == 0 {
		return nil
	}
	if n == 1 {
		if v < minFactor {
			return nil
		}
		return [][]int{append(append([]int(nil), curr...), v)}
	}

	var ret [][]int
	for pv := v; pv >= minFactor; pv-- {
		if v%pv != 0 {
			continue
		}
		next := append(append([]int(nil), curr...), pv)
		ret = append(ret, enumerate(n-1, v/pv, minFactor, next)...)
	}
	return ret
}
