package sampler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExhaustive_WalksSequentially(t *testing.T) {
	s := testSpace() // size 3
	e := NewExhaustive(0, 0)
	e.Reset(s, rand.New(rand.NewSource(1)))

	seen := map[int]bool{}
	for i := 0; i < 3; i++ {
		p := e.Next(s, nil)
		seen[p.GetInt("a")] = true
		e.Notify(true)
	}
	assert.Len(t, seen, 3)
}

func TestExhaustive_WrapsModuloSpaceSize(t *testing.T) {
	s := testSpace() // size 3
	e := NewExhaustive(0, 0)
	e.Reset(s, rand.New(rand.NewSource(2)))

	for i := 0; i < 6; i++ {
		p := e.Next(s, nil)
		assert.NotNil(t, p)
		e.Notify(true)
	}
	assert.Equal(t, int64(6)%3, e.idx.Int64()%3)
}

func TestExhaustive_RestrictsToWindowAndWrapsAtEndIdx(t *testing.T) {
	e := NewExhaustive(1, 3)
	s := testSpace()
	e.Reset(s, rand.New(rand.NewSource(3)))

	assert.Equal(t, int64(1), e.idx.Int64())
	e.Notify(true)
	assert.Equal(t, int64(2), e.idx.Int64())
	e.Notify(true)
	assert.Equal(t, int64(1), e.idx.Int64())
}

func TestExhaustive_StartIdxHonoredOnReset(t *testing.T) {
	e := NewExhaustive(2, 0)
	s := testSpace()
	e.Reset(s, rand.New(rand.NewSource(4)))
	assert.Equal(t, int64(2), e.idx.Int64())
}
