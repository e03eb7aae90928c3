// Package rng provides deterministic, subsystem-isolated random sources for
// the search engine. A single trial seed must reproduce bit-for-bit
// identical search trajectories across the HW sampler, the per-layer SW
// samplers, and the genetic breeder, while keeping their draws independent
// of one another.
package rng

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// TrialKey uniquely identifies a reproducible search trial. Two trials with
// the same TrialKey and identical configuration MUST produce bit-for-bit
// identical sequences of candidate points.
type TrialKey int64

// NewTrialKey creates a TrialKey from a CLI --seed value.
func NewTrialKey(seed int64) TrialKey {
	return TrialKey(seed)
}

// Subsystem names partitioning the trial's randomness.
const (
	// SubsystemHW is the RNG subsystem for the outer hardware-space sampler.
	// Uses the trial key directly for backward compatibility with
	// single-subsystem seeding.
	SubsystemHW = "hw"

	// SubsystemGenetic is the RNG subsystem for genetic crossover/mutation
	// draws, kept isolated from the plain sampler subsystems so that
	// switching --model between ga and random does not perturb the other's
	// draw sequence.
	SubsystemGenetic = "genetic"

	// SubsystemBO is the RNG subsystem for Bayesian-optimization warmup and
	// exploration-ratio coin flips.
	SubsystemBO = "bo"
)

// SubsystemLayer returns the subsystem name for the per-layer SW sampler of
// the layer at index i. Each layer gets its own isolated stream so that
// adding or removing a layer from the model does not reshuffle the draws of
// the other layers.
func SubsystemLayer(i int) string {
	return fmt.Sprintf("sw_layer_%d", i)
}

// Partitioned provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemHW: uses the trial key directly (backward compatibility).
//   - For all other subsystems: trialKey XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. The nested search loop is single-threaded
// (§5); a caller adding parallel SW evaluation for a fixed HW point must
// give each goroutine its own subsystem name and must not share a
// Partitioned across goroutines.
type Partitioned struct {
	key        TrialKey
	subsystems map[string]*rand.Rand
}

// NewPartitioned creates a Partitioned RNG set from a TrialKey.
func NewPartitioned(key TrialKey) *Partitioned {
	return &Partitioned{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same subsystem name always returns the same *rand.Rand
// instance (cached). Never returns nil.
func (p *Partitioned) ForSubsystem(name string) *rand.Rand {
	if r, ok := p.subsystems[name]; ok {
		return r
	}

	var derivedSeed int64
	if name == SubsystemHW {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	r := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = r
	return r
}

// Key returns the TrialKey used to create this Partitioned RNG set.
func (p *Partitioned) Key() TrialKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
