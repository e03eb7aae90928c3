// Package shape defines the convolution shape tuple exchanged across the
// search engine boundary (§6): the neural-network layer loader is treated
// as an external collaborator that hands us a list of these.
package shape

// LayerType distinguishes the native cost model's two supported
// convolution kinds. The evaluator façade currently forces every shape to
// CONV regardless of the value carried here (§6, known limitation: DSCONV
// crashes the native library).
type LayerType string

const (
	CONV   LayerType = "CONV"
	DSCONV LayerType = "DSCONV"
)

// DimKey names one of the seven convolution dimensions shared by input and
// output dimension maps.
type DimKey string

const (
	N DimKey = "N"
	K DimKey = "K"
	C DimKey = "C"
	X DimKey = "X"
	Y DimKey = "Y"
	R DimKey = "R"
	S DimKey = "S"
)

// CanonicalOrder is the fixed dimension order used when emitting dataflow
// tokens and tile-factor features (§4.3, §4.6).
var CanonicalOrder = []DimKey{N, K, C, X, Y, R, S}

// Dims holds one value per convolution dimension.
type Dims map[DimKey]int

// Shape is one convolution layer to search a mapping for.
type Shape struct {
	Name       string
	InputDims  Dims
	OutputDims Dims
	LayerType  LayerType
}

// New constructs a Shape. LayerType is recorded as given; the evaluator
// (Evaluator.evaluate) forces CONV in the native request regardless (§6).
func New(name string, input, output Dims, layerType LayerType) Shape {
	return Shape{Name: name, InputDims: input, OutputDims: output, LayerType: layerType}
}

// Get returns the input-dimension value for key, or 0 if absent.
func (s Shape) Get(key DimKey) int {
	return s.InputDims[key]
}
