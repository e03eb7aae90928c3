package sampler

import (
	"math/big"
	"math/rand"

	"github.com/hwswcopt/spotlight/space"
)

// Random draws build_point(rand() mod size) on every call (§4.4).
type Random struct {
	rng *rand.Rand
}

func NewRandom() *Random { return &Random{} }

func (r *Random) Reset(s *space.Space, rng *rand.Rand) {
	r.rng = rng
}

func (r *Random) Next(s *space.Space, values []float64) space.Point {
	size := s.Size()
	idx := randomBigBelow(r.rng, size)
	return s.BuildPoint(idx)
}

func (r *Random) Notify(success bool) {}

// randomBigBelow returns a uniformly distributed *big.Int in [0, bound),
// falling back to the 64-bit rand path when bound fits in an int64 (the
// common case, avoiding the cost of big.Int random generation per draw).
func randomBigBelow(rng *rand.Rand, bound *big.Int) *big.Int {
	if bound.IsInt64() {
		n := bound.Int64()
		if n <= 0 {
			return big.NewInt(0)
		}
		return big.NewInt(rng.Int63n(n))
	}
	return new(big.Int).Rand(rng, bound)
}
