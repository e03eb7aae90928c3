package sampler

import (
	"math/rand"
	"sort"

	"github.com/hwswcopt/spotlight/space"
)

// Bayesian implements the CoBO sampler (§4.4): warmup via random sampling,
// then batches of candidates ranked by a GP-surrogate LCB acquisition,
// with an exploration/exploitation coin flip on each batch draw.
type Bayesian struct {
	// WarmupIters: while observation count <= this, sample purely at
	// random and skip fitting the surrogate.
	WarmupIters int
	// ExplorationRatio: probability of returning a random ordering instead
	// of an LCB-ranked batch.
	ExplorationRatio float64
	// BatchSize: size of the candidate pool a fresh GP-informed batch is
	// drawn from.
	BatchSize int
	// BatchTrials: number of candidates consumed from a batch before
	// redrawing and refitting.
	BatchTrials int
	Kind        KernelKind
	Noise       float64
	LengthScale float64

	rng      *rand.Rand
	features [][]float64 // feature vectors parallel to past observations
	gp       *GP

	batch      []space.Point
	batchIdx   int
	featuresFn func(space.Point) []float64
}

// NewBayesian constructs a CoBO sampler. featuresFn maps a candidate point
// to the feature vector the GP surrogate trains and predicts on (§4.6).
func NewBayesian(warmupIters int, explorationRatio float64, batchSize, batchTrials int, kind KernelKind, noise, lengthScale float64, featuresFn func(space.Point) []float64) *Bayesian {
	return &Bayesian{
		WarmupIters:      warmupIters,
		ExplorationRatio: explorationRatio,
		BatchSize:        batchSize,
		BatchTrials:      batchTrials,
		Kind:             kind,
		Noise:            noise,
		LengthScale:      lengthScale,
		featuresFn:       featuresFn,
	}
}

func (b *Bayesian) Reset(s *space.Space, rng *rand.Rand) {
	b.rng = rng
	b.features = nil
	b.gp = NewGP(b.Kind, b.Noise, b.LengthScale)
	b.batch = nil
	b.batchIdx = 0
}

func (b *Bayesian) Next(s *space.Space, values []float64) space.Point {
	if len(values) <= b.WarmupIters {
		return s.BuildPoint(randomBigBelow(b.rng, s.Size()))
	}

	if b.batch == nil || b.batchIdx >= len(b.batch) {
		b.drawBatch(s, values)
		b.batchIdx = 0
	}

	p := b.batch[b.batchIdx]
	b.batchIdx++
	return p
}

func (b *Bayesian) Notify(success bool) {}

// drawBatch generates a fresh candidate pool and either shuffles it
// (exploration) or fits the GP on all observations so far and orders the
// pool by ascending LCB = mean - std (exploitation) (§4.4).
func (b *Bayesian) drawBatch(s *space.Space, values []float64) {
	candidates := make([]space.Point, b.BatchSize)
	for i := range candidates {
		candidates[i] = s.BuildPoint(randomBigBelow(b.rng, s.Size()))
	}

	if b.rng.Float64() < b.ExplorationRatio {
		b.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		b.batch = truncate(candidates, b.BatchTrials)
		return
	}

	b.fit(values)

	type scored struct {
		point space.Point
		lcb   float64
	}
	scoredCandidates := make([]scored, len(candidates))
	for i, c := range candidates {
		mean, std := b.gp.Predict(b.featuresFn(c))
		scoredCandidates[i] = scored{point: c, lcb: mean - std}
	}
	sort.Slice(scoredCandidates, func(i, j int) bool {
		return scoredCandidates[i].lcb < scoredCandidates[j].lcb
	})

	ordered := make([]space.Point, len(scoredCandidates))
	for i, sc := range scoredCandidates {
		ordered[i] = sc.point
	}
	b.batch = truncate(ordered, b.BatchTrials)
}

// fit refits the GP surrogate on every observed (feature, scalar) pair
// collected so far, using the features recorded by Observe.
func (b *Bayesian) fit(values []float64) {
	n := len(b.features)
	if n == 0 || n != len(values) {
		return
	}
	b.gp.Fit(b.features, values)
}

// Features returns the feature vectors accumulated so far via Observe.
func (b *Bayesian) Features() [][]float64 {
	return b.features
}

// Observe records the feature vector for the most recently evaluated
// point so the next fit() call can use it. The optimizer driver calls
// this once it has the scalar value parallel to the sample, keeping
// Bayesian's Next/Notify pair generic over how results are stored.
func (b *Bayesian) Observe(features []float64) {
	b.features = append(b.features, features)
}

func truncate(points []space.Point, n int) []space.Point {
	if n <= 0 || n > len(points) {
		return points
	}
	return points[:n]
}
