// Package evaluator translates a (hardware, software) point pair into the
// native cost model's calling convention, post-filters the result against
// configured budgets, and tracks rejection counts (§4.3).
package evaluator

import (
	"errors"
	"path/filepath"

	"github.com/hwswcopt/spotlight/constraints"
	"github.com/hwswcopt/spotlight/shape"
)

var errTemplateLevels = errors.New("evaluator: fixed-dataflow templates require exactly 2 levels")

// Cost is the native evaluator's standard five-double return (§4.3, §6).
type Cost struct {
	ExactRunTime  float64
	OverallEnergy float64
	Area          float64
	Power         float64
	Throughput    float64
}

// Request is the full, typed argument list of the native evaluator ABI
// (§4.3, §6), built by Evaluator.Evaluate so that callers never assemble
// the native calling convention by hand ("a typed builder constructing a
// cost-model request from structured fields only", §9).
type Request struct {
	Shape              shape.Shape
	LayerType          string
	NumPEs             int
	NumSimdLanes       int
	BitWidth           int
	Bandwidth          int
	NumLevels          int
	BufSizes           []int
	NumSubClusters     []int
	Dataflow           string
	SearchPermutations bool
	LogPath            string
}

// NativeEvalFunc is the boundary interface to the external cost-model
// library (§1's "the native cost-model library itself... treated as
// boundary interface only", §6). Implementations are injected by the
// caller; no shared-library loading happens inside this package.
type NativeEvalFunc func(Request) (Cost, error)

// Evaluator is the façade described in §4.3: it builds a Request from a
// hardware point and a per-level configuration, calls the injected native
// function, and post-filters the result.
type Evaluator struct {
	Native   NativeEvalFunc
	Failures *Failures
	MaxArea  float64
	MaxPower float64

	// LogDir is where per-layer logs are written, one per shape name
	// (§6: "Per-layer log file at logs/<layer_name>.log").
	LogDir string
}

// NewEvaluator constructs an Evaluator with a fresh failure counter.
func NewEvaluator(native NativeEvalFunc, maxArea, maxPower float64, logDir string) *Evaluator {
	return &Evaluator{
		Native:   native,
		Failures: NewFailures(),
		MaxArea:  maxArea,
		MaxPower: maxPower,
		LogDir:   logDir,
	}
}

// Evaluate builds the native request for a "searched" dataflow point,
// invokes the native evaluator, and applies the post-filtering taxonomy
// from §4.3/§7. It returns (cost, true) on acceptance, or (zero, false) on
// rejection — the caller is not told which category rejected the point;
// Evaluator.Failures records that.
func (e *Evaluator) Evaluate(s shape.Shape, numSimdLanes, bitWidth, bandwidth int, levelConfigs []constraints.LevelConfig) (Cost, bool) {
	dataflow := BuildDataflow(levelConfigs)
	return e.evaluate(s, numSimdLanes, bitWidth, bandwidth, levelConfigs, dataflow, true)
}

// EvaluateTemplate builds the native request for one of the eye/shi/dla
// fixed-dataflow baselines (§4.3, §6) and invokes the native evaluator.
func (e *Evaluator) EvaluateTemplate(s shape.Shape, numSimdLanes, bitWidth, bandwidth int, levelConfigs []constraints.LevelConfig, templateName string) (Cost, bool, error) {
	if len(levelConfigs) != 2 {
		return Cost{}, false, errTemplateLevels
	}
	tmpl, err := BuildTemplate(templateName, s, levelConfigs[0], levelConfigs[1])
	if err != nil {
		return Cost{}, false, err
	}
	cost, ok := e.evaluate(s, numSimdLanes, bitWidth, bandwidth, levelConfigs, tmpl.Dataflow, tmpl.SearchPermutations)
	return cost, ok, nil
}

func (e *Evaluator) evaluate(s shape.Shape, numSimdLanes, bitWidth, bandwidth int, levelConfigs []constraints.LevelConfig, dataflow string, searchPermutations bool) (Cost, bool) {
	bufSizes := make([]int, len(levelConfigs))
	numSubClusters := make([]int, len(levelConfigs))
	numPEs := 1
	for i, lc := range levelConfigs {
		bufSizes[i] = lc.BufSizePerPartition
		numSubClusters[i] = lc.NumSubClusters
		numPEs *= lc.NumSubClusters
	}

	req := Request{
		Shape:              s,
		LayerType:          "CONV", // forced regardless of input shape (§6: DSCONV segfaults the native library)
		NumPEs:             numPEs,
		NumSimdLanes:       numSimdLanes,
		BitWidth:           bitWidth,
		Bandwidth:          bandwidth,
		NumLevels:          len(levelConfigs),
		BufSizes:           bufSizes,
		NumSubClusters:     numSubClusters,
		Dataflow:           dataflow,
		SearchPermutations: searchPermutations,
		LogPath:            filepath.Join(e.LogDir, s.Name+".log"),
	}

	cost, err := e.Native(req)
	if err != nil {
		e.Failures.Increment(FailureMaestro)
		return Cost{}, false
	}

	if cost.ExactRunTime <= 0 || cost.OverallEnergy <= 0 || cost.Area <= 0 {
		e.Failures.Increment(FailureMaestro)
		return Cost{}, false
	}
	if cost.Area > e.MaxArea {
		e.Failures.Increment(FailureArea)
		return Cost{}, false
	}
	// Preserved verbatim from the reference implementation: this compares
	// Power against MaxArea, not MaxPower. Recorded as an open question
	// (§9) rather than corrected.
	if cost.Power > e.MaxArea {
		e.Failures.Increment(FailurePower)
		return Cost{}, false
	}

	return cost, true
}
