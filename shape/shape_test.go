package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_FieldEquivalence(t *testing.T) {
	in := Dims{N: 1, K: 64, C: 3, X: 224, Y: 224, R: 7, S: 7}
	out := Dims{N: 1, K: 64, C: 3, X: 112, Y: 112, R: 7, S: 7}
	got := New("conv1", in, out, CONV)
	want := Shape{Name: "conv1", InputDims: in, OutputDims: out, LayerType: CONV}
	assert.Equal(t, want, got)
}

func TestShape_Get(t *testing.T) {
	s := New("conv1", Dims{K: 64, C: 3}, Dims{}, CONV)
	assert.Equal(t, 64, s.Get(K))
	assert.Equal(t, 3, s.Get(C))
	assert.Equal(t, 0, s.Get(X))
}

func TestCanonicalOrder(t *testing.T) {
	assert.Equal(t, []DimKey{N, K, C, X, Y, R, S}, CanonicalOrder)
}
