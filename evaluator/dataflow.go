package evaluator

import (
	"fmt"
	"strings"

	"github.com/hwswcopt/spotlight/constraints"
	"github.com/hwswcopt/spotlight/shape"
)

// BuildDataflow renders the comma-separated dataflow string for a
// "searched" dataflow mapping (§4.3): per level, inner-to-outer, emit the
// spatial-unroll token, then a temporal-tile token for every other
// dimension in canonical order, then a cluster-boundary token unless this
// is the outermost level. Tile sizes are clamped so that a PE-closer
// level's spatial-dim tile never exceeds its DRAM-closer neighbor's,
// mutating levelConfigs in place the way the reference implementation
// does.
func BuildDataflow(levelConfigs []constraints.LevelConfig) string {
	var tokens []string

	for i, lc := range levelConfigs {
		sDim := lc.SpatialDim
		tokens = append(tokens, fmt.Sprintf("S%s|%d", sDim, lc.TileSizes[sDim]))
		for _, dim := range shape.CanonicalOrder {
			if dim == sDim {
				continue
			}
			tokens = append(tokens, fmt.Sprintf("T%s|%d", dim, lc.TileSizes[dim]))
		}
		if i+1 < len(levelConfigs) {
			next := levelConfigs[i+1]
			if next.TileSizes[sDim] > lc.TileSizes[sDim] {
				levelConfigs[i+1].TileSizes[sDim] = lc.TileSizes[sDim]
			}
			tokens = append(tokens, "C")
		}
	}

	return strings.Join(tokens, ",")
}

// Template is a hard-coded baseline dataflow for a fixed-dataflow point
// (§4.3, §6). eye/shi/dla correspond to published accelerator mapping
// styles; SearchPermutations reports whether the evaluator should still
// search tile-order permutations for this template (the baselines fix a
// specific permutation, so it is always false).
type Template struct {
	Dataflow           string
	SearchPermutations bool
}

// BuildTemplate renders one of the eye/shi/dla hard-coded baseline
// dataflow strings for a fixed-dataflow point, grounded on
// convert_args_and_invoke's eye/shi/dla branches. l0 is the DRAM-closest
// level, l1 the PE-closest; only their K/C tile sizes and subcluster
// counts are referenced, matching the reference implementation.
func BuildTemplate(name string, s shape.Shape, l0, l1 constraints.LevelConfig) (Template, error) {
	r := s.Get(shape.R)
	sDim := s.Get(shape.S)

	switch name {
	case "eye":
		tokens := []string{
			fmt.Sprintf("TC|%d", l0.TileSizes[shape.C]),
			fmt.Sprintf("TK|%d", l0.TileSizes[shape.K]),
			fmt.Sprintf("SY'|%d", l1.NumSubClusters),
			fmt.Sprintf("TX'|%d", sDim),
			fmt.Sprintf("TR|%d", r),
			fmt.Sprintf("TS|%d", sDim),
			"C",
			"TC|1",
			"SY'|1",
			"SX'|1",
			fmt.Sprintf("TR|%d", r),
			fmt.Sprintf("TS|%d", sDim),
		}
		return Template{Dataflow: strings.Join(tokens, ","), SearchPermutations: false}, nil

	case "shi":
		tokens := []string{
			fmt.Sprintf("TK|%d", l0.TileSizes[shape.K]),
			fmt.Sprintf("SY'|%d", r),
			fmt.Sprintf("TX|%d", l1.NumSubClusters),
			fmt.Sprintf("TC|%d", l0.TileSizes[shape.C]),
			fmt.Sprintf("TR|%d", r),
			fmt.Sprintf("TS|%d", sDim),
			"C",
			"TC|1",
			"TY'|1",
			"SX'|1",
			fmt.Sprintf("TR|%d", r),
			fmt.Sprintf("TS|%d", sDim),
		}
		return Template{Dataflow: strings.Join(tokens, ","), SearchPermutations: false}, nil

	case "dla":
		tokens := []string{
			fmt.Sprintf("SK|%d", l0.TileSizes[shape.K]),
			fmt.Sprintf("TC|%d", l1.NumSubClusters),
			fmt.Sprintf("TR|%d", r),
			fmt.Sprintf("TS|%d", sDim),
			fmt.Sprintf("TY|%d", r),
			fmt.Sprintf("TX|%d", sDim),
			"C",
			"SC|1",
			fmt.Sprintf("TY|%d", r),
			fmt.Sprintf("TX|%d", sDim),
			fmt.Sprintf("TR|%d", r),
			fmt.Sprintf("TS|%d", sDim),
		}
		return Template{Dataflow: strings.Join(tokens, ","), SearchPermutations: false}, nil

	default:
		return Template{}, fmt.Errorf("evaluator: unknown dataflow template %q", name)
	}
}
