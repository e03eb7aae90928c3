// Package search defines the Sample/Results data model shared by every
// sampler and the optimizer driver (§3): a point plus an optional cost,
// and a running-best reduction over a sequence of samples.
package search

import "github.com/hwswcopt/spotlight/space"

// Sample is a candidate point together with the feature vector used to
// train the BO surrogate and, once evaluated, a scalar cost.
type Sample struct {
	Point    space.Point
	Features []float64
	HasCost  bool
	Cost     float64
}

// SWSample is a per-layer software-mapping sample (§3).
type SWSample struct {
	Sample
	Energy     float64
	Delay      float64
	Area       float64
	Power      float64
	Throughput float64
}

// EDP returns the energy-delay product used as the primary ordering
// component under the edp target metric.
func (s SWSample) EDP() float64 { return s.Energy * s.Delay }

// HWSample is one hardware point together with the best software mapping
// found for every layer, and the outer target value accumulated across
// layers (§3).
type HWSample struct {
	Point       space.Point
	LayerBest   []SWSample
	TargetValue TargetValue
}
