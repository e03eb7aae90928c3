package sampler

import (
	"math/big"
	"math/rand"

	"github.com/hwswcopt/spotlight/space"
)

// Exhaustive walks a contiguous window [StartIdx, EndIdx) of the space
// sequentially, wrapping back to StartIdx when it reaches EndIdx; indices
// are taken modulo the space size, so with no window the walk wraps around
// the whole space (supplemented from original_source's Exhaustive
// optimizer). StartIdx/EndIdx let a caller
// restrict the walk to a slice of a very large space; EndIdx <= StartIdx
// means "the whole space".
type Exhaustive struct {
	StartIdx int64
	EndIdx   int64

	idx *big.Int
}

func NewExhaustive(startIdx, endIdx int64) *Exhaustive {
	return &Exhaustive{StartIdx: startIdx, EndIdx: endIdx}
}

func (e *Exhaustive) Reset(s *space.Space, rng *rand.Rand) {
	e.idx = big.NewInt(e.StartIdx)
}

func (e *Exhaustive) Next(s *space.Space, values []float64) space.Point {
	size := s.Size()
	wrapped := new(big.Int).Mod(e.idx, size)
	return s.BuildPoint(wrapped)
}

func (e *Exhaustive) Notify(success bool) {
	next := new(big.Int).Add(e.idx, big.NewInt(1))
	if e.EndIdx > e.StartIdx && next.Cmp(big.NewInt(e.EndIdx)) >= 0 {
		next = big.NewInt(e.StartIdx)
	}
	e.idx = next
}
