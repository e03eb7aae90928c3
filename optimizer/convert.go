// Package optimizer owns the nested hardware/software search loop: for
// each hardware candidate, sample software mappings per layer, evaluate
// through the evaluator façade, and reduce to the best point under a
// target metric (§4.5).
package optimizer

import (
	"strconv"

	"github.com/hwswcopt/spotlight/constraints"
	"github.com/hwswcopt/spotlight/shape"
	"github.com/hwswcopt/spotlight/space"
)

// tiledDimsFor returns the dimensions tiled under a dataflow choice:
// all seven under searched, K/C only under fixed (§4.1).
func tiledDimsFor(dataflow space.Dataflow) []shape.DimKey {
	if dataflow == space.Fixed {
		return []shape.DimKey{shape.K, shape.C}
	}
	return shape.CanonicalOrder
}

// BuildLevelConfigs converts a (hardware point, software point) pair into
// the evaluator's per-level configuration list (§4.3), grounded directly
// on original_source/src/search_utils.py's convert_point_to_maestro:
//
//   - each level's buffer budget is the hardware point's raw l{i}_buf_size
//     divided by the number of partitions that share it, i.e. the product
//     of every sub-cluster count at levels closer to the PE than this one;
//   - each level's tile size per dimension is the cumulative product of
//     the software point's per-level tile factors up to and including this
//     level;
//   - the resulting list is reversed, exactly as the original computes it
//     index-by-level-from-DRAM and then reverses in place (its own comment
//     marks this "TODO: remove reverse", but the reversal has never
//     actually been removed, so it is preserved here rather than "fixed").
func BuildLevelConfigs(hwPoint, swPoint space.Point, numLevels int, dataflow space.Dataflow) []constraints.LevelConfig {
	subclusters := hwPoint.GetInts("subclusters")
	partitionCounts := bufPartitionCounts(subclusters, numLevels)

	tiledDims := tiledDimsFor(dataflow)
	aggregateTileSizes := make(map[shape.DimKey][]int, len(tiledDims))
	for _, dim := range tiledDims {
		aggregateTileSizes[dim] = cumulativeProduct(swPoint.GetInts(string(dim)))
	}

	configs := make([]constraints.LevelConfig, numLevels)
	for i := 0; i < numLevels; i++ {
		bufSize := hwPoint.GetInt(space.LevelBufLabel(i)) / partitionCounts[i]

		var spatialDim shape.DimKey
		if dataflow != space.Fixed {
			spatialDim = shape.DimKey(swPoint.GetString(space.SpatialDimLabel(i)))
		}

		tileSizes := make(shape.Dims, len(tiledDims))
		for dim, aggregate := range aggregateTileSizes {
			tileSizes[dim] = aggregate[i]
		}

		configs[i] = constraints.LevelConfig{
			Label:               "L" + strconv.Itoa(i),
			BufSizePerPartition: bufSize,
			NumSubClusters:      subclusters[i],
			TileSizes:           tileSizes,
			SpatialDim:          spatialDim,
		}
	}

	reversed := make([]constraints.LevelConfig, numLevels)
	for i, c := range configs {
		reversed[numLevels-1-i] = c
	}
	return reversed
}

// cumulativeProduct returns the running product of factors, one entry per
// input element (np.multiply.accumulate).
func cumulativeProduct(factors []int) []int {
	out := make([]int, len(factors))
	running := 1
	for i, f := range factors {
		running *= f
		out[i] = running
	}
	return out
}

// bufPartitionCounts returns, for each level, the product of sub-cluster
// counts at every level closer to the PE than it (§4.3's buf_partition_counts).
func bufPartitionCounts(subclusters []int, numLevels int) []int {
	counts := make([]int, numLevels)
	for i := 0; i < numLevels; i++ {
		count := 1
		for j := i + 1; j < numLevels; j++ {
			count *= subclusters[j]
		}
		counts[i] = count
	}
	return counts
}

// BuildHWOnlyLevelConfigs builds the subset of per-level configuration
// that the area model (§4.2) needs from a hardware point alone — buffer
// budget and sub-cluster count — leaving TileSizes/SpatialDim unset. Used
// by the driver's informational feasibility check, which runs before a
// software point for any given layer has been sampled.
func BuildHWOnlyLevelConfigs(hwPoint space.Point, numLevels int) []constraints.LevelConfig {
	subclusters := hwPoint.GetInts("subclusters")
	partitionCounts := bufPartitionCounts(subclusters, numLevels)

	configs := make([]constraints.LevelConfig, numLevels)
	for i := 0; i < numLevels; i++ {
		configs[i] = constraints.LevelConfig{
			Label:               "L" + strconv.Itoa(i),
			BufSizePerPartition: hwPoint.GetInt(space.LevelBufLabel(i)) / partitionCounts[i],
			NumSubClusters:      subclusters[i],
		}
	}
	return configs
}
