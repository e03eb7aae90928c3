package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hwswcopt/spotlight/evaluator"
	"github.com/hwswcopt/spotlight/internal/rng"
	"github.com/hwswcopt/spotlight/optimizer"
	"github.com/hwswcopt/spotlight/sampler"
	"github.com/hwswcopt/spotlight/search"
	"github.com/hwswcopt/spotlight/shape"
	"github.com/hwswcopt/spotlight/space"
)

// hwPointTemplates are the named hardware points from search.py's
// hw_templates dict: two points discovered for the MoRV accelerator, one
// tuned for delay and one for EDP. Exposed as typed builders rather than
// string-keyed dict literals (§9's redesign guidance away from
// eval()-on-dict-literal semantics).
var hwPointTemplates = map[string]func() space.Point{
	"MoRV_delay": func() space.Point {
		p := space.NewPoint()
		p.Add("num_simd_lane", space.IntValue(16))
		p.Add("bit_width", space.IntValue(8))
		p.Add("bandwidth", space.IntValue(231))
		p.Add(space.LevelBufLabel(0), space.IntValue(122880))
		p.Add(space.LevelBufLabel(1), space.IntValue(98304))
		p.Add("subclusters", space.IntsValue([]int{9, 32}))
		return p
	},
	"MoRV_edp": func() space.Point {
		p := space.NewPoint()
		p.Add("num_simd_lane", space.IntValue(16))
		p.Add("bit_width", space.IntValue(8))
		p.Add("bandwidth", space.IntValue(244))
		p.Add(space.LevelBufLabel(0), space.IntValue(237568))
		p.Add(space.LevelBufLabel(1), space.IntValue(122880))
		p.Add("subclusters", space.IntsValue([]int{33, 9}))
		return p
	},
}

var (
	evalHWPoint        string
	evalSWPoint        string
	evalLayers         string
	evalIgnoreStride   bool
	evalRemoveDupLayer bool
	evalModel          string
	evalSWTrials       int
	evalMaxInvalid     int
	evalMaxArea        float64
	evalMaxPower       float64
	evalTarget         string
	evalKernel         string
	evalExcludeFeat    string
	evalDataflow       string
	evalNativeCmd      string
	evalLogDir         string
	evalSeed           int64
	evalSWBatchSize    int
	evalSWBatchTrials  int
	evalWarmupIters    int
	evalExplorationR   float64
	evalGPNoise        float64
	evalGPLengthScale  float64
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a fixed hardware point (§4.5's \"hw_point given\" mode)",
	Run:   runEval,
}

func init() {
	f := evalCmd.Flags()
	f.StringVar(&evalHWPoint, "hw-point", "", "hardware point: a template name (MoRV_delay, MoRV_edp) or a raw key=value,... string (required)")
	f.StringVar(&evalSWPoint, "sw-point", "", "software point as a raw key=value,... string; when set, evaluates this single point directly instead of running the software optimizer")
	f.StringVar(&evalLayers, "layers", "", "path to the layer-shape YAML file (required)")
	f.BoolVar(&evalIgnoreStride, "ignore-stride", false, "treat every layer's stride as 1")
	f.BoolVar(&evalRemoveDupLayer, "remove-duplicate-layers", false, "drop layers whose input dims duplicate an earlier layer")
	f.StringVar(&evalModel, "model", "random", "software sampler strategy when --sw-point is not given: random, grid, ga, bo, exhaustive")
	f.IntVar(&evalSWTrials, "sw-trials", 100, "number of valid software points to collect per layer")
	f.IntVar(&evalMaxInvalid, "max-invalid", 2500, "invalid samples per layer before giving up")
	f.Float64Var(&evalMaxArea, "max-area", 4.3841e9, "maximum chip area")
	f.Float64Var(&evalMaxPower, "max-power", 1.34877e5, "maximum chip power")
	f.StringVar(&evalTarget, "target", "edp", "optimization target: edp or delay")
	f.StringVar(&evalKernel, "kernel", "linear", "GP kernel for the bo sampler: linear, matern, rbf")
	f.StringVar(&evalExcludeFeat, "exclude-feat", "", "comma-separated software feature categories to exclude")
	f.StringVar(&evalDataflow, "dataflow", "searched", "dataflow mode: searched or fixed")
	f.StringVar(&evalNativeCmd, "native-cmd", "", "path to the external native cost-model evaluator binary (required, §6)")
	f.StringVar(&evalLogDir, "log-dir", "/tmp", "directory for per-layer native evaluator logs")
	f.Int64Var(&evalSeed, "seed", 1, "trial RNG seed")
	f.IntVar(&evalSWBatchSize, "sw-batch-size", 1000, "software candidate pool size per bo/ga generation")
	f.IntVar(&evalSWBatchTrials, "sw-batch-trials", 10, "software bo batch: candidates consumed before refit")
	f.IntVar(&evalWarmupIters, "bo-warmup-iters", 10, "bo sampler: pure-random iterations before fitting the surrogate")
	f.Float64Var(&evalExplorationR, "bo-exploration-ratio", 0.1, "bo sampler: probability of a random (vs LCB-ranked) batch")
	f.Float64Var(&evalGPNoise, "bo-gp-noise", 1e-3, "bo sampler: GP white-noise variance")
	f.Float64Var(&evalGPLengthScale, "bo-gp-length-scale", 1.0, "bo sampler: GP kernel length scale")

	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) {
	if evalHWPoint == "" {
		logrus.Fatalf("--hw-point is required")
	}
	if evalLayers == "" {
		logrus.Fatalf("--layers is required")
	}
	if evalNativeCmd == "" {
		logrus.Fatalf("--native-cmd is required")
	}

	hwPoint, err := resolveHWPoint(evalHWPoint)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	numLevels := len(hwPoint.GetInts("subclusters"))

	shapes, err := LoadShapes(evalLayers, evalIgnoreStride, evalRemoveDupLayer)
	if err != nil {
		logrus.Fatalf("%v", err)
	}

	dataflow, err := parseDataflow(evalDataflow)
	if err != nil {
		logrus.Fatalf("%v", err)
	}

	native := NewSubprocessEvaluator(evalNativeCmd)
	eval := evaluator.NewEvaluator(native, evalMaxArea, evalMaxPower, evalLogDir)

	if evalSWPoint != "" {
		runFixedPointEval(eval, hwPoint, numLevels, dataflow, shapes)
		return
	}
	runFixedHWSearch(eval, hwPoint, numLevels, dataflow, shapes)
}

// runFixedPointEval is the direct single-point path (§4.5: hw_point and
// sw_point both given), grounded on search.py's runner.evaluate_point call —
// exactly one layer shape, one hardware point, one software point, straight
// through the evaluator façade with no sampling involved.
func runFixedPointEval(eval *evaluator.Evaluator, hwPoint space.Point, numLevels int, dataflow space.Dataflow, shapes []shape.Shape) {
	if len(shapes) != 1 {
		logrus.Fatalf("--sw-point requires exactly one layer in --layers, got %d", len(shapes))
	}
	swPoint, err := parsePoint(evalSWPoint)
	if err != nil {
		logrus.Fatalf("%v", err)
	}

	levelConfigs := optimizer.BuildLevelConfigs(hwPoint, swPoint, numLevels, dataflow)
	simdLanes := hwPoint.GetInt("num_simd_lane")
	bitWidth := hwPoint.GetInt("bit_width")
	bandwidth := hwPoint.GetInt("bandwidth")

	cost, ok := eval.Evaluate(shapes[0], simdLanes, bitWidth, bandwidth, levelConfigs)
	if !ok {
		fmt.Println("INVALID")
		return
	}
	fmt.Printf("delay=%.6e energy=%.6e area=%.6e power=%.6e throughput=%.6e\n",
		cost.ExactRunTime, cost.OverallEnergy, cost.Area, cost.Power, cost.Throughput)
}

// runFixedHWSearch is the hw_point-only path (§4.5): the hardware point is
// held fixed and the software optimizer runs normally for every layer,
// reducing to the same aggregate target the outer search loop would have
// produced for this one hardware candidate.
func runFixedHWSearch(eval *evaluator.Evaluator, hwPoint space.Point, numLevels int, dataflow space.Dataflow, shapes []shape.Shape) {
	metric, err := targetMetric(evalTarget)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	kernelKind, err := parseKernel(evalKernel)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	included := includedFeatures(evalExcludeFeat)

	driver := &optimizer.Driver{
		Eval:       eval,
		Metric:     metric,
		NumLevels:  numLevels,
		Dataflow:   dataflow,
		MaxInvalid: evalMaxInvalid,
		NumSW:      evalSWTrials,
		SWFeatures: func(hwPoint, swPoint space.Point) []float64 {
			return sampler.SoftwareFeatures(hwPoint, swPoint, numLevels, dataflow, included)
		},
	}

	tuning := samplerTuning{
		BatchSize:        evalSWBatchSize,
		BatchTrials:      evalSWBatchTrials,
		WarmupIters:      evalWarmupIters,
		ExplorationRatio: evalExplorationR,
		GPNoise:          evalGPNoise,
		GPLengthScale:    evalGPLengthScale,
	}
	newSWSampler := func() sampler.Sampler {
		return newSamplerFor(evalModel, evalSWTrials, kernelKind, tuning, nil)
	}

	rngp := rng.NewPartitioned(rng.NewTrialKey(evalSeed))
	modelResults, ok := driver.OptSW(hwPoint, shapes, newSWSampler, rngp)
	if !ok {
		logrus.Warnf("eval INVALID: a layer never reached %d valid samples within max-invalid=%d", evalSWTrials, evalMaxInvalid)
		fmt.Println("INVALID")
		return
	}

	layerValues := make([]search.TargetValue, len(modelResults))
	best := make([]search.SWSample, len(modelResults))
	for i, lr := range modelResults {
		best[i], _ = lr.OptSample()
		layerValues[i] = metric.SelectLayer(best[i])
	}
	targetValue := metric.AggregateOuter(layerValues)

	fmt.Printf("hw point: %s\n", hwPoint.String())
	fmt.Printf("aggregate target value: %.6e\n", metric.Scalar(targetValue))
	for i, sw := range best {
		fmt.Printf("  layer %d: edp=%.4e energy=%.4e delay=%.4e area=%.4e power=%.4e sw_point=%s\n",
			i, sw.EDP(), sw.Energy, sw.Delay, sw.Area, sw.Power, sw.Point.String())
	}
}

// resolveHWPoint looks spec up in the named hardware-point templates first,
// falling back to parsing it as a raw key=value point string.
func resolveHWPoint(spec string) (space.Point, error) {
	if builder, ok := hwPointTemplates[spec]; ok {
		return builder(), nil
	}
	return parsePoint(spec)
}

// parsePoint parses a "key=value,key=value" string into a Point (§9's
// redesign guidance: a typed, non-eval()-based point constructor). A value
// containing ':' is parsed as a colon-separated integer tuple (a tile
// factorization or subcluster list); a value that parses as an integer is
// stored as a plain int; anything else is stored as a categorical string.
func parsePoint(s string) (space.Point, error) {
	p := space.NewPoint()
	s = strings.TrimSpace(s)
	if s == "" {
		return space.Point{}, fmt.Errorf("cmd: empty point string")
	}

	for _, field := range strings.Split(s, ",") {
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			return space.Point{}, fmt.Errorf("cmd: malformed point field %q (want key=value)", field)
		}
		key := strings.TrimSpace(kv[0])
		val := strings.TrimSpace(kv[1])

		if strings.Contains(val, ":") {
			parts := strings.Split(val, ":")
			ints := make([]int, len(parts))
			for i, part := range parts {
				n, err := strconv.Atoi(strings.TrimSpace(part))
				if err != nil {
					return space.Point{}, fmt.Errorf("cmd: invalid integer %q in field %q: %w", part, key, err)
				}
				ints[i] = n
			}
			p.Add(key, space.IntsValue(ints))
			continue
		}

		if n, err := strconv.Atoi(val); err == nil {
			p.Add(key, space.IntValue(n))
			continue
		}

		p.Add(key, space.StringValue(val))
	}

	return p, nil
}
