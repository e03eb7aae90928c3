package space

import "math/big"

// Space is an ordered list of Parameters together with a precomputed
// mixed-radix weight vector (§3). The leftmost parameter is the
// most-significant digit under BuildPoint's decoding.
type Space struct {
	Params     []Parameter
	NumLevels  int
	size       *big.Int
	cumulative []*big.Int // cumulative[i] = product of len(Params[i+1:].Range)
}

// NewSpace builds a Space from an ordered parameter list. numLevels is the
// number of memory-hierarchy levels this space was built for (carried
// through so downstream consumers — LevelConfig construction — don't need
// to re-derive it from the parameter list, §3).
func NewSpace(params []Parameter, numLevels int) *Space {
	s := &Space{Params: params, NumLevels: numLevels}
	s.buildMeta()
	return s
}

func (s *Space) buildMeta() {
	n := len(s.Params)
	lengths := make([]*big.Int, n)
	for i, p := range s.Params {
		lengths[i] = big.NewInt(int64(p.Size()))
	}

	// cumulative[i] = product of lengths[i+1:], i.e. the mixed-radix weight
	// of parameter i. cumulative has n entries; the last parameter's
	// weight is 1.
	s.cumulative = make([]*big.Int, n)
	running := big.NewInt(1)
	for i := n - 1; i >= 0; i-- {
		s.cumulative[i] = new(big.Int).Set(running)
		running = new(big.Int).Mul(running, lengths[i])
	}
	s.size = running
}

// Size returns the total number of realizable points: the product of all
// parameter range lengths. Represented as an arbitrary-precision integer
// per §3 and §9 (deep factorizations can overflow 64 bits).
func (s *Space) Size() *big.Int {
	return new(big.Int).Set(s.size)
}

// SizeInt64 returns Size as an int64, clamped to math.MaxInt64 if the true
// size overflows. Sampler indices drawn uniformly over a clamped size are
// still uniform over the realizable subrange they cover; callers that need
// exact coverage of spaces this large should decode directly against
// big.Int indices instead.
func (s *Space) SizeInt64() int64 {
	if s.size.IsInt64() {
		return s.size.Int64()
	}
	return int64((^uint64(0)) >> 1)
}

// BuildPoint decodes index i (0 <= i < Size()) into the i-th Point under
// the mixed-radix enumeration (§4.1). BuildPoint is a bijection between
// [0, Size()) and the set of realizable points (§3 invariant); decoding
// uses big.Int arithmetic throughout, so Size() may exceed 64 bits, and
// each decoded digit indexes one parameter's range (§9).
func (s *Space) BuildPoint(i *big.Int) Point {
	point := NewPoint()
	remaining := new(big.Int).Set(i)

	for idx, p := range s.Params {
		weight := s.cumulative[idx]
		digit := new(big.Int).Div(remaining, weight)
		remaining = new(big.Int).Mod(remaining, weight)
		// For the last parameter, weight == 1 and digit == remaining
		// exactly (no higher-significance digits remain to strip off).
		point.Add(p.Name, p.Range[digit.Int64()])
	}
	return point
}

// BuildPointIndex is a convenience wrapper over BuildPoint for indices that
// are known to fit in int64 — the common case for samplers drawing against
// SizeInt64().
func (s *Space) BuildPointIndex(i int64) Point {
	return s.BuildPoint(big.NewInt(i))
}
