package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwswcopt/spotlight/shape"
	"github.com/hwswcopt/spotlight/space"
)

func buildTestHWPoint(l0Buf, l1Buf int, subclusters []int) space.Point {
	p := space.NewPoint()
	p.Add("num_simd_lane", space.IntValue(8))
	p.Add("bit_width", space.IntValue(8))
	p.Add("bandwidth", space.IntValue(100))
	p.Add("l0_buf_size", space.IntValue(l0Buf))
	p.Add("l1_buf_size", space.IntValue(l1Buf))
	p.Add("subclusters", space.IntsValue(subclusters))
	return p
}

func buildTestSWPoint(dims map[string][]int, spatialDims []string) space.Point {
	p := space.NewPoint()
	for dim, tiles := range dims {
		p.Add(dim, space.IntsValue(tiles))
	}
	for i, sd := range spatialDims {
		p.Add(space.SpatialDimLabel(i), space.StringValue(sd))
	}
	return p
}

func TestBuildLevelConfigs_BufferDividedByPartitionCount(t *testing.T) {
	hw := buildTestHWPoint(4096, 2048, []int{2, 4})
	sw := buildTestSWPoint(map[string][]int{
		"N": {1, 1, 1}, "K": {1, 2, 2}, "C": {1, 2, 2},
		"X": {1, 1, 4}, "Y": {1, 1, 4}, "R": {1, 1, 1}, "S": {1, 1, 1},
	}, []string{"K", "C"})

	configs := BuildLevelConfigs(hw, sw, 2, space.Searched)
	require.Len(t, configs, 2)

	// Before the final reverse, level 0 (index 0 pre-reverse) used
	// partitionCounts[0] = subclusters[1] = 4, so l0_buf_size/4 = 1024;
	// level 1 used partitionCounts[1] = 1, so l1_buf_size/1 = 2048. After
	// the reverse, configs[0] holds what was originally level 1 and
	// configs[1] holds what was originally level 0.
	assert.Equal(t, 2048, configs[0].BufSizePerPartition)
	assert.Equal(t, 1024, configs[1].BufSizePerPartition)
}

func TestBuildLevelConfigs_TileSizesAreCumulativeProducts(t *testing.T) {
	hw := buildTestHWPoint(4096, 2048, []int{2, 2})
	sw := buildTestSWPoint(map[string][]int{
		"N": {1, 1, 1}, "K": {1, 3, 2}, "C": {1, 1, 1},
		"X": {1, 1, 1}, "Y": {1, 1, 1}, "R": {1, 1, 1}, "S": {1, 1, 1},
	}, []string{"K", "C"})

	configs := BuildLevelConfigs(hw, sw, 2, space.Searched)

	// Pre-reverse level 0 uses aggregate index 0 (cumulative product up to
	// position 0): K = 1. Pre-reverse level 1 uses aggregate index 1: K =
	// 1*3 = 3. After reverse, configs[0] is pre-reverse level 1 (K tile 3),
	// configs[1] is pre-reverse level 0 (K tile 1).
	assert.Equal(t, 3, configs[0].TileSizes[shape.K])
	assert.Equal(t, 1, configs[1].TileSizes[shape.K])
}

func TestBuildLevelConfigs_FixedDataflowOnlyTilesKAndC(t *testing.T) {
	hw := buildTestHWPoint(4096, 2048, []int{2, 2})
	sw := buildTestSWPoint(map[string][]int{
		"K": {1, 2, 2}, "C": {1, 1, 4},
	}, nil)
	sw.Add("dataflow", space.StringValue("eye"))

	configs := BuildLevelConfigs(hw, sw, 2, space.Fixed)
	for _, c := range configs {
		assert.Equal(t, shape.DimKey(""), c.SpatialDim)
		assert.Contains(t, c.TileSizes, shape.K)
		assert.Contains(t, c.TileSizes, shape.C)
		assert.NotContains(t, c.TileSizes, shape.X)
	}
}

func TestBuildHWOnlyLevelConfigs_NoTileSizes(t *testing.T) {
	hw := buildTestHWPoint(4096, 2048, []int{2, 4})
	configs := BuildHWOnlyLevelConfigs(hw, 2)
	require.Len(t, configs, 2)
	assert.Empty(t, configs[0].TileSizes)
	assert.Equal(t, 2, configs[0].NumSubClusters)
	assert.Equal(t, 1024, configs[0].BufSizePerPartition)
}
