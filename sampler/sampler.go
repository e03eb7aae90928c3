// Package sampler implements the pluggable candidate-point strategies
// driving the nested search (§4.4): random, grid-walk, genetic
// (crossover+mutation), Bayesian optimization (Gaussian-process
// surrogate), and an exhaustive walk supplementing the original's
// strategy set.
package sampler

import (
	"math/rand"

	"github.com/hwswcopt/spotlight/space"
)

// Sampler is the uniform protocol every search strategy implements
// (§4.4, §9: "the Optimizer base class with hook methods ... maps to a
// strategy interface").
type Sampler interface {
	// Reset begins a new run over space s, seeded from rng.
	Reset(s *space.Space, rng *rand.Rand)

	// Next produces the next candidate point. values holds the
	// chronological scalar evaluations of past candidates (used by the
	// Bayesian sampler to fit its surrogate).
	Next(s *space.Space, values []float64) space.Point

	// Notify reports whether the last candidate returned by Next passed
	// constraints and evaluation.
	Notify(success bool)
}
