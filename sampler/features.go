package sampler

import (
	"math"

	"github.com/hwswcopt/spotlight/shape"
	"github.com/hwswcopt/spotlight/space"
)

// HardwareFeatures computes the deterministic feature vector for a
// hardware point (§4.6): [num_simd_lane, bit_width, bandwidth,
// Σ buf_size/32768, Π subclusters, subclusters[0]].
func HardwareFeatures(p space.Point, numLevels int) []float64 {
	var totalBuf float64
	for i := 0; i < numLevels; i++ {
		totalBuf += float64(p.GetInt(space.LevelBufLabel(i))) / 32768
	}

	subclusters := p.GetInts("subclusters")
	totalPEs := 1
	for _, s := range subclusters {
		totalPEs *= s
	}

	return []float64{
		float64(p.GetInt("num_simd_lane")),
		float64(p.GetInt("bit_width")),
		float64(p.GetInt("bandwidth")),
		totalBuf,
		float64(totalPEs),
		float64(subclusters[0]),
	}
}

// SWFeatureCategory names one of the four selectable software-feature
// families (§4.6).
type SWFeatureCategory string

const (
	FeatOriginal   SWFeatureCategory = "original"
	FeatIntuitive  SWFeatureCategory = "intuitive"
	FeatDataDriven SWFeatureCategory = "data-driven"
	FeatRaw        SWFeatureCategory = "raw"
)

// SoftwareFeatures computes the software-mapping feature vector selected
// by included (§4.6). hwPoint supplies subclusters; numLevels is the
// memory-hierarchy level count.
func SoftwareFeatures(hwPoint, swPoint space.Point, numLevels int, dataflow space.Dataflow, included map[SWFeatureCategory]bool) []float64 {
	if dataflow == space.Fixed {
		var feats []float64
		for _, dim := range []shape.DimKey{shape.K, shape.C} {
			tiles := swPoint.GetInts(string(dim))
			feats = append(feats, intsToFloats(tiles)...)
		}
		return feats
	}

	var feats []float64
	subclusters := hwPoint.GetInts("subclusters")
	spatialDimShapes := make(map[string]int)

	var subclusterUtilization []float64
	var iterations []float64

	for i := 0; i < numLevels; i++ {
		spatialDim := swPoint.GetString(space.SpatialDimLabel(i))
		spatialTiles := swPoint.GetInts(spatialDim)

		if _, ok := spatialDimShapes[spatialDim]; !ok {
			spatialDimShapes[spatialDim] = product(spatialTiles)
		}

		if included[FeatOriginal] {
			numSub := subclusters[i]
			degreeParallelism := math.Floor(float64(spatialTiles[i+1]) / float64(spatialTiles[i]))
			utilization := math.Min(1.0, degreeParallelism/float64(numSub))
			subclusterUtilization = append(subclusterUtilization, utilization)

			spatialWidth := spatialTiles[i+1] * spatialTiles[i]
			iterations = append(iterations, math.Ceil(float64(spatialWidth)/float64(numSub)))
		}
	}

	if included[FeatOriginal] {
		feats = append(feats, productFloat(iterations))
		feats = append(feats, productFloat(subclusterUtilization))
		rTiles := swPoint.GetInts(string(shape.R))
		sTiles := swPoint.GetInts(string(shape.S))
		feats = append(feats, float64(rTiles[len(rTiles)-1]*sTiles[len(sTiles)-1]))
	}

	if included[FeatOriginal] || included[FeatIntuitive] {
		shapeProduct := 1
		for _, v := range spatialDimShapes {
			shapeProduct *= v
		}
		feats = append(feats, float64(shapeProduct))
	}

	if included[FeatDataDriven] {
		x := swPoint.GetInts(string(shape.X))
		y := swPoint.GetInts(string(shape.Y))
		k := swPoint.GetInts(string(shape.K))

		feats = append(feats, float64(2*x[len(x)-1]+3*y[len(y)-1]+5*k[len(k)-1]+7*k[len(k)-2]+11*k[len(k)-3]))
		feats = append(feats, (float64(x[len(x)-1])/float64(x[0]))*(float64(y[len(y)-1])/float64(y[0]))*float64(subclusters[0]+subclusters[1]))
	}

	if included[FeatRaw] {
		for _, dim := range shape.CanonicalOrder {
			tiles := swPoint.GetInts(string(dim))
			feats = append(feats, intsToFloats(tiles)...)
		}
		for i := 0; i < numLevels; i++ {
			dim := swPoint.GetString(space.SpatialDimLabel(i))
			feats = append(feats, float64(dim[0]))
		}
	}

	return feats
}

func product(xs []int) int {
	p := 1
	for _, x := range xs {
		p *= x
	}
	return p
}

func productFloat(xs []float64) float64 {
	p := 1.0
	for _, x := range xs {
		p *= x
	}
	return p
}

func intsToFloats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
