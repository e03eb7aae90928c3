package sampler

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hwswcopt/spotlight/space"
)

// Genetic breeding parameters (§4.4).
const (
	CrossRate    = 0.8
	MutationRate = 0.05
	ParentP      = 0.2
)

// Genetic maintains one generation of BatchSize points plus a parallel
// validity bitmap, breeding the next generation once every member of the
// current one has been tried (§4.4).
type Genetic struct {
	BatchSize int

	rng        *rand.Rand
	generation []space.Point
	valid      []bool
	cursor     int
	ranked     []space.Point // previous generation, best-first, used to draw mothers
}

func NewGenetic(batchSize int) *Genetic {
	return &Genetic{BatchSize: batchSize}
}

func (g *Genetic) Reset(s *space.Space, rng *rand.Rand) {
	g.rng = rng
	g.generation = nil
	g.valid = nil
	g.ranked = nil
	g.cursor = 0
}

// Next returns the next unvalidated member of the current generation,
// breeding a fresh generation first if the current one is empty or fully
// consumed (§4.4).
func (g *Genetic) Next(s *space.Space, values []float64) space.Point {
	if g.generation == nil || g.cursor >= len(g.generation) {
		g.breed(s, values)
		g.cursor = 0
	}
	return g.generation[g.cursor]
}

func (g *Genetic) Notify(success bool) {
	if g.cursor < len(g.valid) {
		g.valid[g.cursor] = success
	}
	g.cursor++
}

// breed produces the next generation. With no prior generation, every
// member is drawn uniformly at random (§4.4: "If no prior generation
// exists, fill with uniformly random points").
func (g *Genetic) breed(s *space.Space, values []float64) {
	if g.ranked == nil {
		next := make([]space.Point, g.BatchSize)
		for i := range next {
			next[i] = s.BuildPoint(randomBigBelow(g.rng, s.Size()))
		}
		g.generation = next
		g.valid = make([]bool, g.BatchSize)
		g.ranked = rankByRecentValues(next, values)
		return
	}

	parents := rankByRecentValues(g.generation, values)
	next := make([]space.Point, g.BatchSize)
	for i, father := range parents {
		mother := father
		if g.rng.Float64() < CrossRate {
			mother = g.pickMother(parents)
		}
		child := crossover(g.rng, father, mother)
		child = g.mutate(child, parents)
		next[i] = child
	}

	g.generation = next
	g.valid = make([]bool, g.BatchSize)
	g.ranked = parents
}

// pickMother draws the p-th best member of ranked (best-first), where
// p = Geometric(ParentP) - 1, clamped into [0, len(ranked)) (§4.4).
func (g *Genetic) pickMother(ranked []space.Point) space.Point {
	geom := distuv.Geometric{P: ParentP, Src: g.rng}
	p := int(geom.Rand()) - 1
	if p < 0 {
		p = 0
	}
	if p >= len(ranked) {
		p = len(ranked) - 1
	}
	return ranked[p]
}

// crossover produces one child by, for each gene, flipping a fair coin to
// take it from father or mother (§4.4).
func crossover(rng *rand.Rand, father, mother space.Point) space.Point {
	child := space.NewPoint()
	for _, label := range father.Labels() {
		v, _ := father.Get(label)
		if rng.Float64() < 0.5 {
			if mv, ok := mother.Get(label); ok {
				v = mv
			}
		}
		child.Add(label, v)
	}
	return child
}

// mutate replaces each gene with probability MutationRate by the
// corresponding gene from a uniformly chosen other member of population
// (§4.4).
func (g *Genetic) mutate(child space.Point, population []space.Point) space.Point {
	mutated := space.NewPoint()
	for _, label := range child.Labels() {
		v, _ := child.Get(label)
		if g.rng.Float64() < MutationRate {
			donor := population[g.rng.Intn(len(population))]
			if dv, ok := donor.Get(label); ok {
				v = dv
			}
		}
		mutated.Add(label, v)
	}
	return mutated
}

// rankByRecentValues orders points best-first using the most recent
// len(points) entries of values as each point's fitness proxy. breed
// calls it on a generation after all of its members have been tried; the
// history records valid evaluations only, so the pairing is member for
// member when every member was valid. Falls back to declaration order when
// there isn't yet enough history (e.g. the very first generation).
func rankByRecentValues(points []space.Point, values []float64) []space.Point {
	if len(values) < len(points) {
		return points
	}
	recent := values[len(values)-len(points):]
	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < len(idx); i++ {
		j := i
		for j > 0 && recent[idx[j-1]] > recent[idx[j]] {
			idx[j-1], idx[j] = idx[j], idx[j-1]
			j--
		}
	}
	ranked := make([]space.Point, len(points))
	for i, k := range idx {
		ranked[i] = points[k]
	}
	return ranked
}
