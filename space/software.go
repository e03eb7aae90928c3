package space

import (
	"strconv"

	"github.com/hwswcopt/spotlight/shape"
)

// Dataflow selects which per-layer software space shape create_software_space
// builds (§3).
type Dataflow string

const (
	// Searched searches a full temporal+spatial tiling over all 7 dims.
	Searched Dataflow = "searched"
	// Fixed restricts the search to K,C tiling plus a categorical dataflow
	// template name (eye/dla/shi).
	Fixed Dataflow = "fixed"
)

// spatialDimChoices is the categorical range for l{i}_spatial_dim under
// the searched dataflow (§3).
var spatialDimChoices = []Value{
	StringValue("K"), StringValue("C"), StringValue("X"),
	StringValue("Y"), StringValue("R"), StringValue("S"),
}

// NewSoftwareSpace builds the per-layer software mapping space (§3): for
// searched, tile factorizations of K,C,N,X,Y,R,S into numLevels+1 ordered
// factors (factors >= 1) plus numLevels categorical spatial-dim choices
// per level; for fixed, only K,C tile factorizations plus a categorical
// dataflow-template choice.
func NewSoftwareSpace(dataflow Dataflow, dims shape.Dims, numLevels int) *Space {
	var params []Parameter

	params = append(params, tileParam("K", dims[shape.K], numLevels))
	params = append(params, tileParam("C", dims[shape.C], numLevels))

	switch dataflow {
	case Searched:
		params = append(params, tileParam("N", dims[shape.N], numLevels))
		params = append(params, tileParam("X", dims[shape.X], numLevels))
		params = append(params, tileParam("Y", dims[shape.Y], numLevels))
		params = append(params, tileParam("R", dims[shape.R], numLevels))
		params = append(params, tileParam("S", dims[shape.S], numLevels))

		for level := 0; level < numLevels; level++ {
			params = append(params, NewParameter(SpatialDimLabel(level), spatialDimChoices))
		}
	case Fixed:
		params = append(params, NewParameter("dataflow", []Value{
			StringValue("eye"), StringValue("dla"), StringValue("shi"),
		}))
	}

	return NewSpace(params, numLevels)
}

func tileParam(dim string, dimValue, numLevels int) Parameter {
	var rng []Value
	for _, factors := range Combinations(numLevels+1, dimValue) {
		rng = append(rng, IntsValue(factors))
	}
	return NewParameter(dim, rng)
}

// SpatialDimLabel names the l{i}_spatial_dim categorical parameter for a
// memory-hierarchy level.
func SpatialDimLabel(level int) string {
	return "l" + strconv.Itoa(level) + "_spatial_dim"
}
