package optimizer

import (
	"github.com/sirupsen/logrus"

	"github.com/hwswcopt/spotlight/constraints"
	"github.com/hwswcopt/spotlight/evaluator"
	"github.com/hwswcopt/spotlight/internal/rng"
	"github.com/hwswcopt/spotlight/sampler"
	"github.com/hwswcopt/spotlight/search"
	"github.com/hwswcopt/spotlight/shape"
	"github.com/hwswcopt/spotlight/space"
)

// FeatureObserver is implemented by samplers that need the evaluated
// point's feature vector fed back in, in addition to its pass/fail
// notification (§4.4: the CoBO/Bayesian sampler trains its surrogate on
// (features, scalar cost) pairs that Notify's single bool cannot carry).
type FeatureObserver interface {
	Observe(features []float64)
}

// Driver owns the nested hardware/software search loop (§4.5). It is
// agnostic to which Sampler strategy is plugged in for either level;
// Metric selects the edp or delay target.
type Driver struct {
	Eval       *evaluator.Evaluator
	Metric     search.TargetMetric
	NumLevels  int
	Dataflow   space.Dataflow
	MaxInvalid int
	NumHW      int
	NumSW      int

	// HWFeatures/SWFeatures compute the BO surrogate feature vectors
	// (§4.6). Both may be nil if no sampler in use needs them.
	HWFeatures func(hwPoint space.Point) []float64
	SWFeatures func(hwPoint, swPoint space.Point) []float64

	// Under space.Fixed the baseline template (eye/dla/shi) is read from
	// each software point's "dataflow" parameter; there is no separate
	// field for it.
}

// OptSW runs the inner loop (§4.5) for one hardware point: for every layer
// shape, sample software mappings until n_sw valid evaluations are
// collected or the layer's invalid-sample count reaches MaxInvalid, which
// aborts the whole hardware point.
func (d *Driver) OptSW(hwPoint space.Point, shapes []shape.Shape, newSWSampler func() sampler.Sampler, rngp *rng.Partitioned) ([]*search.Results[search.SWSample], bool) {
	modelResults := make([]*search.Results[search.SWSample], 0, len(shapes))

	for i, s := range shapes {
		swSpace := space.NewSoftwareSpace(d.Dataflow, s.InputDims, d.NumLevels)
		layerResults := search.NewResults[search.SWSample](d.Metric, d.Metric.SelectLayer)

		swSampler := newSWSampler()
		layerRng := rngp.ForSubsystem(subsystemFor(rng.SubsystemLayer(i), swSampler))
		swSampler.Reset(swSpace, layerRng)

		invalid, valid := 0, 0
		for valid < d.NumSW {
			p := swSampler.Next(swSpace, layerResults.Values())
			cost, ok := d.evaluatePoint(s, hwPoint, p)
			swSampler.Notify(ok)

			if ok {
				feats := d.swFeatures(hwPoint, p)
				if observer, isObserver := swSampler.(FeatureObserver); isObserver {
					observer.Observe(feats)
				}

				sample := search.SWSample{
					Sample: search.Sample{
						Point:    p,
						Features: feats,
					},
					Energy:     cost.OverallEnergy,
					Delay:      cost.ExactRunTime,
					Area:       cost.Area,
					Power:      cost.Power,
					Throughput: cost.Throughput,
				}
				sample.HasCost = true
				sample.Cost = d.Metric.Scalar(d.Metric.SelectLayer(sample))

				layerResults.Add(sample)
				valid++
			} else {
				invalid++
			}

			if invalid >= d.MaxInvalid {
				logrus.Debugf("opt_layer %d INVALID after %d rejections", i, invalid)
				return nil, false
			}
		}

		modelResults = append(modelResults, layerResults)
	}

	return modelResults, true
}

// OptHW runs the outer loop (§4.5): samples hardware points until n_hw
// valid points are collected (every layer of every valid point reaches
// n_sw software samples) or the invalid-point count reaches MaxInvalid.
func (d *Driver) OptHW(hwSpace *space.Space, shapes []shape.Shape, newHWSampler func() sampler.Sampler, newSWSampler func() sampler.Sampler, rngp *rng.Partitioned) (*search.Results[search.HWSample], bool) {
	hwResults := search.NewResults[search.HWSample](d.Metric, func(h search.HWSample) search.TargetValue {
		return h.TargetValue
	})

	hwSampler := newHWSampler()
	hwRng := rngp.ForSubsystem(subsystemFor(rng.SubsystemHW, hwSampler))
	hwSampler.Reset(hwSpace, hwRng)

	invalid, valid := 0, 0
	for valid < d.NumHW {
		hwPoint := hwSampler.Next(hwSpace, hwResults.Values())

		d.logFeasibility(hwPoint)

		modelResults, ok := d.OptSW(hwPoint, shapes, newSWSampler, rngp)
		hwSampler.Notify(ok)

		if ok {
			layerValues := make([]search.TargetValue, len(modelResults))
			for i, lr := range modelResults {
				best, _ := lr.OptSample()
				layerValues[i] = d.Metric.SelectLayer(best)
			}

			feats := d.hwFeatures(hwPoint)
			if observer, isObserver := hwSampler.(FeatureObserver); isObserver {
				observer.Observe(feats)
			}

			hwResults.Add(search.HWSample{
				Point:       hwPoint,
				LayerBest:   bestSamples(modelResults),
				TargetValue: d.Metric.AggregateOuter(layerValues),
			})
			valid++
		} else {
			invalid++
		}

		if invalid >= d.MaxInvalid {
			logrus.Debugf("opt_hw INVALID after %d rejections", invalid)
			return nil, false
		}
	}

	return hwResults, true
}

// evaluatePoint routes a (shape, hw, sw) triple to the evaluator façade,
// using the fixed-dataflow template path when the software space was
// built with space.Fixed (§4.3, §6).
func (d *Driver) evaluatePoint(s shape.Shape, hwPoint, swPoint space.Point) (evaluator.Cost, bool) {
	levelConfigs := BuildLevelConfigs(hwPoint, swPoint, d.NumLevels, d.Dataflow)
	simdLanes := hwPoint.GetInt("num_simd_lane")
	bitWidth := hwPoint.GetInt("bit_width")
	bandwidth := hwPoint.GetInt("bandwidth")

	if d.Dataflow == space.Fixed {
		cost, ok, err := d.Eval.EvaluateTemplate(s, simdLanes, bitWidth, bandwidth, levelConfigs, swPoint.GetString("dataflow"))
		if err != nil {
			logrus.Warnf("fixed-dataflow template evaluation failed: %v", err)
			return evaluator.Cost{}, false
		}
		return cost, ok
	}

	return d.Eval.Evaluate(s, simdLanes, bitWidth, bandwidth, levelConfigs)
}

// logFeasibility runs the informational, evaluator-free area pre-check
// (§4.2) and logs a diagnostic when it would have flagged the point.
// Feasibility never gates evaluation (§4.2, §7): the native evaluator is
// still invoked regardless of what this reports. Under the fixed dataflow
// it returns without checking anything.
func (d *Driver) logFeasibility(hwPoint space.Point) {
	if d.Dataflow == space.Fixed {
		return
	}

	numSimdLanes := hwPoint.GetInt("num_simd_lane")
	bitWidth := hwPoint.GetInt("bit_width")
	bandwidth := hwPoint.GetInt("bandwidth")
	maxArea := d.Eval.MaxArea

	// Area depends only on hardware-level scalars (simd lanes, bit width,
	// bandwidth, per-level buffer budget and sub-cluster count), so it can
	// be checked before any software point for a layer has been sampled;
	// buffer-ratio and monotonicity checks need tile sizes and run later,
	// inline with each software sample, if ever wired by a caller.
	levelConfigs := BuildHWOnlyLevelConfigs(hwPoint, d.NumLevels)
	_, ratio := constraints.CheckAreaUsage(numSimdLanes, bitWidth, bandwidth, levelConfigs, maxArea)
	if ratio > constraints.FeasibleRatio {
		logrus.Debugf("hw point area ratio %.3f exceeds feasible bound %.3f (informational only)", ratio, constraints.FeasibleRatio)
	}
}

func (d *Driver) swFeatures(hwPoint, swPoint space.Point) []float64 {
	if d.SWFeatures == nil {
		return nil
	}
	return d.SWFeatures(hwPoint, swPoint)
}

func (d *Driver) hwFeatures(hwPoint space.Point) []float64 {
	if d.HWFeatures == nil {
		return nil
	}
	return d.HWFeatures(hwPoint)
}

// subsystemFor qualifies a base RNG subsystem name with the sampler-
// specific stream a strategy needs isolated from its siblings: the
// genetic breeder's crossover/mutation draws, and the CoBO sampler's
// warmup/exploration-ratio coin flips (internal/rng's SubsystemGenetic
// and SubsystemBO), so that switching --model does not perturb another
// strategy's draw sequence at the same level.
func subsystemFor(base string, s sampler.Sampler) string {
	switch s.(type) {
	case *sampler.Genetic:
		return base + "/" + rng.SubsystemGenetic
	case *sampler.Bayesian:
		return base + "/" + rng.SubsystemBO
	default:
		return base
	}
}

func bestSamples(results []*search.Results[search.SWSample]) []search.SWSample {
	best := make([]search.SWSample, len(results))
	for i, r := range results {
		best[i], _ = r.OptSample()
	}
	return best
}
