package constraints

import (
	"testing"

	"github.com/hwswcopt/spotlight/shape"
	"github.com/stretchr/testify/assert"
)

func TestCheckBufferUsage_NoUnroll(t *testing.T) {
	lc := LevelConfig{
		Label:               "l0",
		BufSizePerPartition: 1 << 20,
		NumSubClusters:      1,
		SpatialDim:          "",
		TileSizes: shape.Dims{
			shape.N: 1, shape.K: 4, shape.C: 2, shape.X: 4, shape.Y: 4, shape.R: 2, shape.S: 2,
		},
	}

	usage := CheckBufferUsage([]LevelConfig{lc})
	assert.Len(t, usage, 1)

	want := usage[0]
	assert.Equal(t, float64(2*1*2*4*4)/float64(lc.BufSizePerPartition), want.InpUsed)
	assert.Equal(t, float64(2*4*2*2*2)/float64(lc.BufSizePerPartition), want.WgtUsed)
	assert.True(t, want.Feasible())
}

func TestCheckBufferUsage_SpatialUnrollAddsHalo(t *testing.T) {
	base := LevelConfig{
		Label:               "l0",
		BufSizePerPartition: 1 << 20,
		NumSubClusters:      4,
		TileSizes: shape.Dims{
			shape.N: 1, shape.K: 1, shape.C: 1, shape.X: 4, shape.Y: 4, shape.R: 1, shape.S: 1,
		},
	}

	noSpatial := base
	noSpatial.SpatialDim = ""
	withSpatialX := base
	withSpatialX.SpatialDim = shape.X

	plain := CheckBufferUsage([]LevelConfig{noSpatial})[0]
	unrolled := CheckBufferUsage([]LevelConfig{withSpatialX})[0]

	// X actual size grows from 4 to 4+4-1=7 under spatial unroll, increasing
	// requested input and output sizes while weight size is unaffected.
	assert.Greater(t, unrolled.InpUsed, plain.InpUsed)
	assert.Equal(t, unrolled.WgtUsed, plain.WgtUsed)
}

func TestCheckBufferUsage_InfeasibleWhenOverBudget(t *testing.T) {
	lc := LevelConfig{
		Label:               "l0",
		BufSizePerPartition: 1,
		NumSubClusters:      1,
		TileSizes: shape.Dims{
			shape.N: 8, shape.K: 8, shape.C: 8, shape.X: 8, shape.Y: 8, shape.R: 8, shape.S: 8,
		},
	}
	usage := CheckBufferUsage([]LevelConfig{lc})[0]
	assert.False(t, usage.Feasible())
}

func TestCheckBufferUsage_MultiLevelIndexing(t *testing.T) {
	mk := func(label string) LevelConfig {
		return LevelConfig{
			Label:               label,
			BufSizePerPartition: 1 << 20,
			NumSubClusters:      1,
			TileSizes: shape.Dims{
				shape.N: 1, shape.K: 1, shape.C: 1, shape.X: 1, shape.Y: 1, shape.R: 1, shape.S: 1,
			},
		}
	}
	usage := CheckBufferUsage([]LevelConfig{mk("l0"), mk("l1")})
	assert.Equal(t, 0, usage[0].Level)
	assert.Equal(t, 1, usage[1].Level)
}
