package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func product(t []int) int {
	p := 1
	for _, v := range t {
		p *= v
	}
	return p
}

func TestCombinations_CompletenessAndLength(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		for _, v := range []int{1, 6, 12} {
			for _, tuple := range Combinations(n, v) {
				assert.Equal(t, n, len(tuple))
				assert.Equal(t, v, product(tuple))
			}
		}
	}
}

func TestCombinations_SingleValueBase(t *testing.T) {
	got := Combinations(3, 1)
	assert.Len(t, got, 1)
	assert.Equal(t, []int{1, 1, 1}, got[0])
}

func TestCombinations_SixIntoThree(t *testing.T) {
	got := Combinations(3, 6)
	want := [][]int{
		{1, 1, 6}, {1, 2, 3}, {1, 3, 2}, {1, 6, 1},
		{2, 1, 3}, {2, 3, 1},
		{3, 1, 2}, {3, 2, 1},
		{6, 1, 1},
	}
	assert.ElementsMatch(t, want, got)
	for _, tuple := range got {
		assert.Len(t, tuple, 3)
		assert.Equal(t, 6, product(tuple))
	}
}

func TestCombinationsV2_EveryFactorAtLeastTwo(t *testing.T) {
	for _, tuple := range CombinationsV2(2, 128) {
		assert.Equal(t, 2, len(tuple))
		assert.Equal(t, 128, product(tuple))
		for _, f := range tuple {
			assert.GreaterOrEqual(t, f, 2)
		}
	}
}

func TestCombinationsV2_KnownFactorizations(t *testing.T) {
	got := CombinationsV2(2, 4)
	assert.ElementsMatch(t, [][]int{{2, 2}}, got)
}
