package sampler

import (
	"math/big"
	"math/rand"

	"github.com/hwswcopt/spotlight/space"
)

// Grid is a sequentially advancing index with a random phase offset
// (§4.4). budget is the number of valid samples this sampler's caller
// intends to collect (n_hw for the outer loop, n_sw for an inner-loop
// instance) — NOT the space size.
//
// Preserved quirk (§9, open question, not corrected): the index advances
// modulo budget rather than modulo the space size, so once budget is
// smaller than the space, the sequential steps only reach indices below
// budget and every other index is reached only by a random redraw; the
// space is not walked in order. A zero index
// (whether from the initial reset or from wrapping) is indistinguishable
// from "unset" and triggers a fresh random phase, matching the literal
// `if not self.hw_idx` check in the reference implementation.
type Grid struct {
	budget *big.Int
	idx    *big.Int
	rng    *rand.Rand
}

// NewGrid constructs a Grid sampler with the given budget.
func NewGrid(budget int) *Grid {
	return &Grid{budget: big.NewInt(int64(budget))}
}

func (g *Grid) Reset(s *space.Space, rng *rand.Rand) {
	g.rng = rng
	g.idx = big.NewInt(0)
}

func (g *Grid) Next(s *space.Space, values []float64) space.Point {
	if g.idx.Sign() == 0 {
		g.idx = randomBigBelow(g.rng, s.Size())
	}
	return s.BuildPoint(g.idx)
}

func (g *Grid) Notify(success bool) {
	next := new(big.Int).Add(g.idx, big.NewInt(1))
	g.idx = new(big.Int).Mod(next, g.budget)
}
