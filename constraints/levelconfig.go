// Package constraints implements the pure, evaluator-free pre-checks on a
// candidate (HW, SW) point expressed as a list of LevelConfigs (§4.2):
// buffer-usage ratios, tile-size monotonicity, and an analytical area
// model. None of these functions invoke the native cost model; they are
// informational — the evaluator façade still performs the real evaluation
// regardless of what Feasible reports (§4.2, §7 taxonomy item 1).
package constraints

import "github.com/hwswcopt/spotlight/shape"

// LevelConfig is one memory-hierarchy level's configuration, derived from
// a hardware point and a software point (§3). Level indices run from
// DRAM-closest (0) to PE-closest (len-1), per §4.2's tile-monotonicity
// ordering.
type LevelConfig struct {
	Label               string
	BufSizePerPartition int
	NumSubClusters      int
	TileSizes           shape.Dims
	SpatialDim          shape.DimKey // "" under the fixed dataflow, which has no spatial unroll
}
