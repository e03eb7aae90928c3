package space

import (
	"testing"

	"github.com/hwswcopt/spotlight/shape"
	"github.com/stretchr/testify/assert"
)

func TestNewSoftwareSpace_Searched_Params(t *testing.T) {
	dims := shape.Dims{shape.K: 4, shape.C: 2, shape.N: 1, shape.X: 6, shape.Y: 6, shape.R: 2, shape.S: 2}
	s := NewSoftwareSpace(Searched, dims, 1)

	names := make(map[string]bool)
	for _, p := range s.Params {
		names[p.Name] = true
	}
	for _, want := range []string{"K", "C", "N", "X", "Y", "R", "S", "l0_spatial_dim"} {
		assert.True(t, names[want], "missing param %s", want)
	}
}

func TestNewSoftwareSpace_Searched_TileFactorizationsMultiplyToDim(t *testing.T) {
	dims := shape.Dims{shape.K: 6, shape.C: 1, shape.N: 1, shape.X: 1, shape.Y: 1, shape.R: 1, shape.S: 1}
	s := NewSoftwareSpace(Searched, dims, 1)

	for _, p := range s.Params {
		if p.Name != "K" {
			continue
		}
		for _, v := range p.Range {
			prod := 1
			for _, f := range v.Ints {
				prod *= f
			}
			assert.Equal(t, 6, prod)
			assert.Len(t, v.Ints, 2) // numLevels+1 == 2
		}
	}
}

func TestNewSoftwareSpace_Fixed_Params(t *testing.T) {
	dims := shape.Dims{shape.K: 4, shape.C: 2}
	s := NewSoftwareSpace(Fixed, dims, 1)

	names := make(map[string]bool)
	for _, p := range s.Params {
		names[p.Name] = true
	}
	assert.True(t, names["K"])
	assert.True(t, names["C"])
	assert.True(t, names["dataflow"])
	assert.False(t, names["N"])
	assert.False(t, names["l0_spatial_dim"])
}
