package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hwswcopt/spotlight/evaluator"
	"github.com/hwswcopt/spotlight/internal/rng"
	"github.com/hwswcopt/spotlight/optimizer"
	"github.com/hwswcopt/spotlight/sampler"
	"github.com/hwswcopt/spotlight/search"
	"github.com/hwswcopt/spotlight/space"
)

var (
	searchModel                string
	searchLayers               string
	searchIgnoreStride         bool
	searchRemoveDuplicateLayer bool
	searchSpaceTemplate        string
	searchHWTrials             int
	searchSWTrials             int
	searchScaleTrials          bool
	searchMaxInvalid           int
	searchMaxArea              float64
	searchMaxPower             float64
	searchTarget               string
	searchKernel               string
	searchExcludeFeat          string
	searchDataflow             string
	searchNativeCmd            string
	searchLogDir               string
	searchSeed                 int64
	searchExhaustiveHWStart    int64
	searchExhaustiveHWEnd      int64
	searchHWBatchSize          int
	searchSWBatchSize          int
	searchHWBatchTrials        int
	searchSWBatchTrials        int
	searchWarmupIters          int
	searchExplorationRatio     float64
	searchGPNoise              float64
	searchGPLengthScale        float64
	searchLogLevel             string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run the nested hardware/software design-space search (§4.5)",
	Run:   runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchModel, "model", "random", "sampler strategy: random, grid, ga, bo, exhaustive (substring-matched, e.g. \"bo_hw\")")
	f.StringVar(&searchLayers, "layers", "", "path to the layer-shape YAML file (required)")
	f.BoolVar(&searchIgnoreStride, "ignore-stride", false, "treat every layer's stride as 1")
	f.BoolVar(&searchRemoveDuplicateLayer, "remove-duplicate-layers", false, "drop layers whose input dims duplicate an earlier layer")
	f.StringVar(&searchSpaceTemplate, "space-template", "edge", "named hardware space preset: edge or datacenter")
	f.IntVar(&searchHWTrials, "hw-trials", 0, "number of valid hardware points to collect (0: use defaults.yaml)")
	f.IntVar(&searchSWTrials, "sw-trials", 0, "number of valid software points to collect per layer (0: use defaults.yaml)")
	f.BoolVar(&searchScaleTrials, "scale-trials", false, "auto-scale hw/sw trial counts by model-family time multiplier")
	f.IntVar(&searchMaxInvalid, "max-invalid", 0, "invalid samples (per layer, or hardware points) before giving up (0: use template default)")
	f.Float64Var(&searchMaxArea, "max-area", 0, "maximum chip area (0: use template default)")
	f.Float64Var(&searchMaxPower, "max-power", 0, "maximum chip power (0: use template default)")
	f.StringVar(&searchTarget, "target", "", "optimization target: edp or delay (empty: use defaults.yaml)")
	f.StringVar(&searchKernel, "kernel", "", "GP kernel for the bo sampler: linear, matern, rbf (empty: use defaults.yaml)")
	f.StringVar(&searchExcludeFeat, "exclude-feat", "", "comma-separated software feature categories to exclude (empty: use defaults.yaml)")
	f.StringVar(&searchDataflow, "dataflow", "searched", "dataflow mode: searched or fixed")
	f.StringVar(&searchNativeCmd, "native-cmd", "", "path to the external native cost-model evaluator binary (required, §6)")
	f.StringVar(&searchLogDir, "log-dir", "/tmp", "directory for per-layer native evaluator logs")
	f.Int64Var(&searchSeed, "seed", 1, "trial RNG seed")
	f.Int64Var(&searchExhaustiveHWStart, "exhaustive-hw-start-idx", 0, "exhaustive sampler: hardware space start index")
	f.Int64Var(&searchExhaustiveHWEnd, "exhaustive-hw-end-idx", 0, "exhaustive sampler: hardware space end index (0: whole space)")
	f.IntVar(&searchHWBatchSize, "hw-batch-size", 1000, "hardware candidate pool size per bo/ga generation")
	f.IntVar(&searchSWBatchSize, "sw-batch-size", 1000, "software candidate pool size per bo/ga generation")
	f.IntVar(&searchHWBatchTrials, "hw-batch-trials", 10, "hardware bo batch: candidates consumed before refit")
	f.IntVar(&searchSWBatchTrials, "sw-batch-trials", 10, "software bo batch: candidates consumed before refit")
	f.IntVar(&searchWarmupIters, "bo-warmup-iters", 10, "bo sampler: pure-random iterations before fitting the surrogate")
	f.Float64Var(&searchExplorationRatio, "bo-exploration-ratio", 0.1, "bo sampler: probability of a random (vs LCB-ranked) batch")
	f.Float64Var(&searchGPNoise, "bo-gp-noise", 1e-3, "bo sampler: GP white-noise variance")
	f.Float64Var(&searchGPLengthScale, "bo-gp-length-scale", 1.0, "bo sampler: GP kernel length scale")
	f.StringVar(&searchLogLevel, "log", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	level, err := logrus.ParseLevel(searchLogLevel)
	if err != nil {
		logrus.Fatalf("invalid log level %q: %v", searchLogLevel, err)
	}
	logrus.SetLevel(level)

	if searchLayers == "" {
		logrus.Fatalf("--layers is required")
	}
	if searchNativeCmd == "" {
		logrus.Fatalf("--native-cmd is required")
	}

	cfg, err := LoadConfig(defaultsPath)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	tmpl, err := cfg.Template(searchSpaceTemplate)
	if err != nil {
		logrus.Fatalf("%v", err)
	}

	hwTrials := searchHWTrials
	if hwTrials == 0 {
		hwTrials = cfg.Defaults.HWTrials
	}
	swTrials := searchSWTrials
	if swTrials == 0 {
		swTrials = cfg.Defaults.SWTrials
	}
	if searchScaleTrials {
		hwTrials, swTrials = ScaleTrials(searchModel, hwTrials, swTrials)
		logrus.Infof("scale-trials: running %d hw and %d sw samples", hwTrials, swTrials)
	}

	maxInvalid := searchMaxInvalid
	if maxInvalid == 0 {
		maxInvalid = tmpl.MaxInvalid
	}
	maxArea := searchMaxArea
	if maxArea == 0 {
		maxArea = tmpl.MaxArea
	}
	maxPower := searchMaxPower
	if maxPower == 0 {
		maxPower = tmpl.MaxPower
	}

	target := searchTarget
	if target == "" {
		target = cfg.Defaults.Target
	}
	metric, err := targetMetric(target)
	if err != nil {
		logrus.Fatalf("%v", err)
	}

	kernel := searchKernel
	if kernel == "" {
		kernel = cfg.Defaults.Kernel
	}
	kernelKind, err := parseKernel(kernel)
	if err != nil {
		logrus.Fatalf("%v", err)
	}

	excludeFeat := searchExcludeFeat
	if excludeFeat == "" {
		excludeFeat = cfg.Defaults.ExcludeFeat
	}
	included := includedFeatures(excludeFeat)

	dataflow, err := parseDataflow(searchDataflow)
	if err != nil {
		logrus.Fatalf("%v", err)
	}

	shapes, err := LoadShapes(searchLayers, searchIgnoreStride, searchRemoveDuplicateLayer)
	if err != nil {
		logrus.Fatalf("%v", err)
	}

	hwBounds := HardwareBounds(cfg.Defaults, tmpl)
	hwSpace := space.NewHardwareSpace(hwBounds)

	native := NewSubprocessEvaluator(searchNativeCmd)
	eval := evaluator.NewEvaluator(native, maxArea, maxPower, searchLogDir)

	numLevels := space.NumHardwareLevels
	driver := &optimizer.Driver{
		Eval:       eval,
		Metric:     metric,
		NumLevels:  numLevels,
		Dataflow:   dataflow,
		MaxInvalid: maxInvalid,
		NumHW:      hwTrials,
		NumSW:      swTrials,
		HWFeatures: func(p space.Point) []float64 {
			return sampler.HardwareFeatures(p, numLevels)
		},
		SWFeatures: func(hwPoint, swPoint space.Point) []float64 {
			return sampler.SoftwareFeatures(hwPoint, swPoint, numLevels, dataflow, included)
		},
	}

	hwTuning := samplerTuning{
		BatchSize:        searchHWBatchSize,
		BatchTrials:      searchHWBatchTrials,
		WarmupIters:      searchWarmupIters,
		ExplorationRatio: searchExplorationRatio,
		GPNoise:          searchGPNoise,
		GPLengthScale:    searchGPLengthScale,
		ExhaustiveStart:  searchExhaustiveHWStart,
		ExhaustiveEnd:    searchExhaustiveHWEnd,
	}
	swTuning := hwTuning
	swTuning.BatchSize, swTuning.BatchTrials = searchSWBatchSize, searchSWBatchTrials

	newHWSampler := func() sampler.Sampler { return newSamplerFor(searchModel, hwTrials, kernelKind, hwTuning, driver.HWFeatures) }
	newSWSampler := func() sampler.Sampler { return newSamplerFor(searchModel, swTrials, kernelKind, swTuning, nil) }

	rngp := rng.NewPartitioned(rng.NewTrialKey(searchSeed))

	results, ok := driver.OptHW(hwSpace, shapes, newHWSampler, newSWSampler, rngp)
	if !ok {
		logrus.Warnf("search INVALID: no hardware point reached %d valid samples within max-invalid=%d", hwTrials, maxInvalid)
		fmt.Println("INVALID")
		return
	}

	best, _ := results.OptSample()
	fmt.Printf("best target value: %.6e\n", metric.Scalar(best.TargetValue))
	fmt.Printf("best hw point: %s\n", best.Point.String())
	for i, sw := range best.LayerBest {
		fmt.Printf("  layer %d: edp=%.4e energy=%.4e delay=%.4e area=%.4e power=%.4e sw_point=%s\n",
			i, sw.EDP(), sw.Energy, sw.Delay, sw.Area, sw.Power, sw.Point.String())
	}
	logrus.Infof("failures: maestro=%d area=%d power=%d", eval.Failures.Count(evaluator.FailureMaestro), eval.Failures.Count(evaluator.FailureArea), eval.Failures.Count(evaluator.FailurePower))
}

// samplerTuning carries the batch/warmup/exploration knobs newSamplerFor
// needs, kept separate from --model/--kernel so every caller (the hardware
// level, the software level, and the eval subcommand's fixed-hw-point
// search) supplies its own flag values instead of reaching across commands
// for another subcommand's globals.
type samplerTuning struct {
	BatchSize        int
	BatchTrials      int
	WarmupIters      int
	ExplorationRatio float64
	GPNoise          float64
	GPLengthScale    float64
	ExhaustiveStart  int64
	ExhaustiveEnd    int64
}

// newSamplerFor dispatches --model to a concrete Sampler (§4.4, §9
// supplemented Exhaustive strategy), substring-matched the same way
// ScaleTrials matches model family names. featuresFn is only consulted
// for the bo family and may be nil (the inner per-layer software
// samplers build their own closures over the current layer's shape).
func newSamplerFor(model string, budget int, kernel sampler.KernelKind, tuning samplerTuning, featuresFn func(space.Point) []float64) sampler.Sampler {
	switch {
	case strings.Contains(model, "exhaustive"):
		return sampler.NewExhaustive(tuning.ExhaustiveStart, tuning.ExhaustiveEnd)
	case strings.Contains(model, "grid"):
		return sampler.NewGrid(budget)
	case strings.Contains(model, "ga"):
		return sampler.NewGenetic(tuning.BatchSize)
	case strings.Contains(model, "bo"):
		if featuresFn == nil {
			// The software sampler factory is built once, before any
			// hardware point exists, so the features function it hands to
			// each new sampler cannot close over "the current" hardware
			// point the way Driver.SWFeatures does for Observe(). Rank
			// candidates on their raw tile factors alone,
			// the one feature family that needs no hardware context
			// (§4.6's "raw" category); the surrogate's training features
			// still carry the full hw+sw feature vector via Observe.
			featuresFn = func(p space.Point) []float64 {
				return sampler.SoftwareFeatures(space.NewPoint(), p, space.NumHardwareLevels, space.Searched, map[sampler.SWFeatureCategory]bool{sampler.FeatRaw: true})
			}
		}
		return sampler.NewBayesian(tuning.WarmupIters, tuning.ExplorationRatio, tuning.BatchSize, tuning.BatchTrials, kernel, tuning.GPNoise, tuning.GPLengthScale, featuresFn)
	default:
		return sampler.NewRandom()
	}
}

func targetMetric(target string) (search.TargetMetric, error) {
	switch target {
	case "edp":
		return search.Edp{}, nil
	case "delay":
		return search.Delay{}, nil
	default:
		return nil, fmt.Errorf("cmd: unknown --target %q (want edp or delay)", target)
	}
}

func parseKernel(kernel string) (sampler.KernelKind, error) {
	switch kernel {
	case "linear":
		return sampler.KernelLinear, nil
	case "matern":
		return sampler.KernelMatern, nil
	case "rbf":
		return sampler.KernelRBF, nil
	default:
		return 0, fmt.Errorf("cmd: unknown --kernel %q (want linear, matern, or rbf)", kernel)
	}
}

func parseDataflow(df string) (space.Dataflow, error) {
	switch space.Dataflow(df) {
	case space.Searched:
		return space.Searched, nil
	case space.Fixed:
		return space.Fixed, nil
	default:
		return "", fmt.Errorf("cmd: unknown --dataflow %q (want searched or fixed)", df)
	}
}

// includedFeatures parses --exclude-feat's comma list into the inclusion
// map SoftwareFeatures expects, starting from all four categories
// included (§4.6).
func includedFeatures(excludeFeat string) map[sampler.SWFeatureCategory]bool {
	included := map[sampler.SWFeatureCategory]bool{
		sampler.FeatOriginal:   true,
		sampler.FeatIntuitive:  true,
		sampler.FeatDataDriven: true,
		sampler.FeatRaw:        true,
	}
	for _, name := range strings.Split(excludeFeat, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		delete(included, sampler.SWFeatureCategory(name))
	}
	return included
}
