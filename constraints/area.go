package constraints

// Area model coefficients, fit against the reference accelerator's
// synthesis reports (§4.2). These are empirical constants, not derived
// quantities, and are not configurable.
const (
	areaPerL1Byte = 4505.1889 / 64
	areaPerL2Byte = 4161.536 / 32768
	areaPerMAC    = 4470.9014

	busAreaSlope     = 14.662
	busAreaIntercept = 28.895

	nocAreaQuadratic = 1.2886
	nocAreaLinear    = 5.5814
	nocAreaConstant  = -23.711
	nocAreaScale     = 101.79
)

// AreaBreakdown is the analytical area estimate for a candidate (HW, SW)
// point, split by contributor (§4.2).
type AreaBreakdown struct {
	ComputeArea float64
	SRAMArea    float64
	BusArea     float64
	NoCArea     float64
}

// Total is the sum of every area contributor.
func (b AreaBreakdown) Total() float64 {
	return b.ComputeArea + b.SRAMArea + b.BusArea + b.NoCArea
}

// CheckAreaUsage estimates total chip area for numSimdLanes SIMD lanes,
// bitWidth-bit datapaths, bandwidth GB/s of off-chip bandwidth, and the
// given per-level configuration, returning the ratio against maxArea
// (§4.2). The PE-closest level (the last in levelConfigs) is assumed to use
// denser L1-class SRAM; every other level uses L2-class SRAM.
func CheckAreaUsage(numSimdLanes, bitWidth, bandwidth int, levelConfigs []LevelConfig, maxArea float64) (AreaBreakdown, float64) {
	var breakdown AreaBreakdown
	numPEs := 1

	for level, lc := range levelConfigs {
		density := areaPerL2Byte
		if level == len(levelConfigs)-1 {
			density = areaPerL1Byte
		}
		// The single buf_size_per_partition field stands in for the
		// reference model's three separate inp/wgt/out buffer sizes; triple
		// it to approximate the combined SRAM footprint for all three
		// tensor buffers at this level.
		bufBytes := float64(3 * lc.BufSizePerPartition)
		breakdown.SRAMArea += density * bufBytes * (float64(bitWidth) / 8)

		breakdown.BusArea += busAreaSlope*float64(lc.NumSubClusters) + busAreaIntercept

		k := float64(lc.NumSubClusters)
		breakdown.NoCArea += (nocAreaQuadratic*k*k + nocAreaLinear*k + nocAreaConstant) * float64(bandwidth) * nocAreaScale

		numPEs *= lc.NumSubClusters
	}

	breakdown.ComputeArea = areaPerMAC * float64(numSimdLanes) * float64(numPEs) * (float64(bitWidth) / 8) * (float64(bitWidth) / 8)

	return breakdown, breakdown.Total() / maxArea
}
