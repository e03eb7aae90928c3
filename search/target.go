package search

import "math"

// TargetValue is the reduction unit shared by both target metrics. Which
// fields are meaningful depends on the metric: Edp uses Energy, Delay and
// Area; Delay uses Delay and Area only (§4.5).
type TargetValue struct {
	Energy float64
	Delay  float64
	Area   float64
}

// PositiveInfinity is the "worse than anything real" sentinel Results
// initializes its running best to.
var PositiveInfinity = TargetValue{Energy: math.Inf(1), Delay: math.Inf(1), Area: math.Inf(1)}

// TargetMetric is the pluggable target-metric variant described in §9 as a
// replacement for the original's lambda-based select/reduce/eval triple:
// Edp and Delay are its only two variants.
type TargetMetric interface {
	// SelectLayer extracts the per-layer target value from an evaluated
	// software sample.
	SelectLayer(s SWSample) TargetValue

	// LessLayer reports whether a is strictly preferred to b under this
	// metric's per-layer ordering (§4.5, testable property "EDP reduction
	// tie-break").
	LessLayer(a, b TargetValue) bool

	// AggregateOuter combines the best per-layer target values for every
	// layer of the network into a single hardware-point-level value.
	AggregateOuter(layers []TargetValue) TargetValue

	// LessOuter reports whether a is strictly preferred to b among
	// hardware-point-level target values.
	LessOuter(a, b TargetValue) bool

	// Scalar projects a target value to the single number reported to the
	// user and fed to the BO surrogate as a training label.
	Scalar(v TargetValue) float64
}

// Edp is the energy-delay-product target metric (§4.5, §9 glossary).
type Edp struct{}

func (Edp) SelectLayer(s SWSample) TargetValue {
	return TargetValue{Energy: s.Energy, Delay: s.Delay, Area: s.Area}
}

func (Edp) LessLayer(a, b TargetValue) bool {
	ae, be := a.Energy*a.Delay, b.Energy*b.Delay
	if ae != be {
		return ae < be
	}
	return a.Area < b.Area
}

func (Edp) AggregateOuter(layers []TargetValue) TargetValue {
	var out TargetValue
	maxArea := 0.0
	for i, l := range layers {
		out.Energy += l.Energy
		out.Delay += l.Delay
		if i == 0 || l.Area > maxArea {
			maxArea = l.Area
		}
	}
	out.Area = maxArea
	return out
}

func (Edp) LessOuter(a, b TargetValue) bool {
	return Edp{}.LessLayer(a, b)
}

func (Edp) Scalar(v TargetValue) float64 { return v.Energy * v.Delay }

// Delay is the delay-only target metric (§4.5).
type Delay struct{}

func (Delay) SelectLayer(s SWSample) TargetValue {
	return TargetValue{Delay: s.Delay, Area: s.Area}
}

func (Delay) LessLayer(a, b TargetValue) bool {
	if a.Delay != b.Delay {
		return a.Delay < b.Delay
	}
	return a.Area < b.Area
}

func (Delay) AggregateOuter(layers []TargetValue) TargetValue {
	var out TargetValue
	maxArea := 0.0
	for i, l := range layers {
		out.Delay += l.Delay
		if i == 0 || l.Area > maxArea {
			maxArea = l.Area
		}
	}
	out.Area = maxArea
	return out
}

func (Delay) LessOuter(a, b TargetValue) bool {
	return Delay{}.LessLayer(a, b)
}

func (Delay) Scalar(v TargetValue) float64 { return v.Delay }
