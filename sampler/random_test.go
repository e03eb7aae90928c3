package sampler

import (
	"math/rand"
	"testing"

	"github.com/hwswcopt/spotlight/space"
	"github.com/stretchr/testify/assert"
)

func TestRandom_SmallestSpaceAlwaysReturnsUniquePoint(t *testing.T) {
	s := space.NewSpace([]space.Parameter{
		space.NewParameter("a", []space.Value{space.IntValue(7)}),
	}, 1)

	r := NewRandom()
	r.Reset(s, rand.New(rand.NewSource(1)))
	p := r.Next(s, nil)
	assert.Equal(t, 7, p.GetInt("a"))
}

func TestRandom_StaysWithinRange(t *testing.T) {
	s := testSpace()
	r := NewRandom()
	r.Reset(s, rand.New(rand.NewSource(2)))
	for i := 0; i < 50; i++ {
		p := r.Next(s, nil)
		v := p.GetInt("a")
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 3)
	}
}
