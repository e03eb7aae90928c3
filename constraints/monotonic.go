package constraints

import "github.com/hwswcopt/spotlight/shape"

// MonotonicityViolation names one (level, dim) pair where tile size grew
// moving from a DRAM-closer level to a PE-closer one.
type MonotonicityViolation struct {
	Level int // the PE-closer of the two adjacent levels being compared
	Dim   shape.DimKey
}

// CheckTileMonotonicity verifies that, for every pair of adjacent levels,
// the PE-closer level's tile size is no larger than the DRAM-closer
// level's, for every dimension (§4.2). levelConfigs must be ordered
// DRAM-closest first.
func CheckTileMonotonicity(levelConfigs []LevelConfig) []MonotonicityViolation {
	var violations []MonotonicityViolation

	for i := 0; i+1 < len(levelConfigs); i++ {
		outer, inner := levelConfigs[i], levelConfigs[i+1]
		for _, dim := range shape.CanonicalOrder {
			if inner.TileSizes[dim] > outer.TileSizes[dim] {
				violations = append(violations, MonotonicityViolation{Level: i + 1, Dim: dim})
			}
		}
	}

	return violations
}
