package sampler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid_AdvancesSequentiallyWithinBudget(t *testing.T) {
	s := testSpace()
	g := NewGrid(3)
	g.Reset(s, rand.New(rand.NewSource(1)))

	first := g.Next(s, nil)
	g.Notify(true)
	second := g.Next(s, nil)
	g.Notify(true)

	assert.NotNil(t, first)
	assert.NotNil(t, second)
}

func TestGrid_WrapsModuloBudgetNotSpaceSize(t *testing.T) {
	s := testSpace() // space size 3
	g := NewGrid(2)  // budget smaller than the space
	g.Reset(s, rand.New(rand.NewSource(7)))

	for i := 0; i < 5; i++ {
		g.Next(s, nil)
		g.Notify(true)
		assert.LessOrEqual(t, g.idx.Int64(), int64(1))
	}
}

func TestGrid_ZeroIndexTriggersFreshRandomPhase(t *testing.T) {
	s := testSpace()
	g := NewGrid(1) // every Notify wraps back to 0
	g.Reset(s, rand.New(rand.NewSource(3)))

	for i := 0; i < 4; i++ {
		p := g.Next(s, nil)
		assert.NotNil(t, p)
		g.Notify(true)
		assert.Equal(t, int64(0), g.idx.Int64())
	}
}
