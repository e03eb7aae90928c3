package constraints

import "github.com/hwswcopt/spotlight/shape"

// BufferUsage holds the three double-buffered tensor-size-to-buffer-size
// ratios for one memory-hierarchy level (§4.2).
type BufferUsage struct {
	Level   int
	InpUsed float64
	WgtUsed float64
	OutUsed float64
}

// FeasibleRatio is the ceiling a buffer or area usage ratio must stay at or
// under to be considered feasible (§4.2: "every buffer ratio ≤ 2 ... the
// factor of 2 accounts for the double-buffer accounting").
const FeasibleRatio = 2.0

// CheckBufferUsage computes per-level, per-tensor buffer usage ratios
// (§4.2). Only the level configurations are needed: hardware-level scalars
// such as SIMD lanes, bit width and bandwidth do not enter this
// computation, so they are not parameters.
func CheckBufferUsage(levelConfigs []LevelConfig) []BufferUsage {
	usage := make([]BufferUsage, len(levelConfigs))

	for level, lc := range levelConfigs {
		actual := make(shape.Dims, len(lc.TileSizes))
		for dim, tile := range lc.TileSizes {
			unroll := 1
			if dim == lc.SpatialDim {
				unroll = lc.NumSubClusters
			}
			if dim == shape.X || dim == shape.Y {
				// Spatial halo: the unrolled region needs (unroll-1) extra
				// elements of overlap at the tile boundary.
				actual[dim] = tile + unroll - 1
			} else {
				actual[dim] = tile * unroll
			}
		}

		inp := 2 * (actual[shape.N] * actual[shape.C] * actual[shape.X] * actual[shape.Y])
		wgt := 2 * (actual[shape.K] * actual[shape.C] * actual[shape.R] * actual[shape.S])
		out := 2 * (actual[shape.N] * actual[shape.K] *
			maxInt(1, actual[shape.X]-minInt(actual[shape.R], actual[shape.X])+1) *
			maxInt(1, actual[shape.Y]-minInt(actual[shape.S], actual[shape.Y])+1))

		usage[level] = BufferUsage{
			Level:   level,
			InpUsed: float64(inp) / float64(lc.BufSizePerPartition),
			WgtUsed: float64(wgt) / float64(lc.BufSizePerPartition),
			OutUsed: float64(out) / float64(lc.BufSizePerPartition),
		}
	}

	return usage
}

// Feasible reports whether every ratio in a BufferUsage is within
// FeasibleRatio.
func (u BufferUsage) Feasible() bool {
	return u.InpUsed <= FeasibleRatio && u.WgtUsed <= FeasibleRatio && u.OutUsed <= FeasibleRatio
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
