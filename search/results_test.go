package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResults_FirstAddAlwaysBecomesBest(t *testing.T) {
	r := NewResults[SWSample](Edp{}, func(s SWSample) TargetValue { return Edp{}.SelectLayer(s) })
	replaced := r.Add(SWSample{Energy: 5, Delay: 5, Area: 1})
	assert.True(t, replaced)
	best, ok := r.OptSample()
	assert.True(t, ok)
	assert.Equal(t, 5.0, best.Energy)
}

func TestResults_KeepsArgminUnderMetric(t *testing.T) {
	r := NewResults[SWSample](Edp{}, func(s SWSample) TargetValue { return Edp{}.SelectLayer(s) })
	r.Add(SWSample{Energy: 2, Delay: 3, Area: 5}) // edp 6, area 5
	replaced := r.Add(SWSample{Energy: 3, Delay: 2, Area: 4}) // edp 6, area 4: wins tie-break
	assert.True(t, replaced)

	worse := r.Add(SWSample{Energy: 10, Delay: 10, Area: 1})
	assert.False(t, worse)

	best, _ := r.OptSample()
	assert.Equal(t, 3.0, best.Energy)
}

func TestResults_ValuesAreChronological(t *testing.T) {
	r := NewResults[SWSample](Delay{}, func(s SWSample) TargetValue { return Delay{}.SelectLayer(s) })
	r.Add(SWSample{Delay: 5})
	r.Add(SWSample{Delay: 1})
	r.Add(SWSample{Delay: 9})
	assert.Equal(t, []float64{5, 1, 9}, r.Values())
	assert.Equal(t, 3, r.Len())
}

func TestResults_EmptyHasNoOptSample(t *testing.T) {
	r := NewResults[SWSample](Edp{}, func(s SWSample) TargetValue { return Edp{}.SelectLayer(s) })
	_, ok := r.OptSample()
	assert.False(t, ok)
}
