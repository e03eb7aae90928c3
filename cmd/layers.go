package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hwswcopt/spotlight/shape"
)

// layerEntry is one convolution layer as it appears in a layer-shape YAML
// file. This format is this module's own design: no neural-network layer
// loader exists anywhere in the upstream project this system was ported
// from (§1, §6 — the layer loader is an external collaborator boundary
// with no concrete wire format to port faithfully), so the shape here
// follows this module's own yaml.v3-based configuration convention rather
// than translating a format that was never retrieved.
type layerEntry struct {
	Name   string `yaml:"name"`
	N      int    `yaml:"n"`
	K      int    `yaml:"k"`
	C      int    `yaml:"c"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	R      int    `yaml:"r"`
	S      int    `yaml:"s"`
	Stride int    `yaml:"stride"`
}

// LoadShapes reads a layer-shape YAML file (a list of layerEntry) and
// returns the convolution shapes to search mappings for. When
// ignoreStride is false, each layer's output spatial dims are reduced by
// its stride using the standard valid-convolution formula; when true,
// stride is treated as 1. When removeDuplicateLayers is set, later
// entries whose input dims exactly match an earlier one are dropped,
// keeping first-occurrence order (supplemented from options.py's
// --remove-duplicate-layers/--ignore-stride flags).
func LoadShapes(path string, ignoreStride, removeDuplicateLayers bool) ([]shape.Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cmd: reading layer shapes file %s: %w", path, err)
	}

	var entries []layerEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("cmd: parsing layer shapes YAML %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("cmd: layer shapes file %s declares no layers", path)
	}

	seen := make(map[string]bool, len(entries))
	shapes := make([]shape.Shape, 0, len(entries))

	for i, e := range entries {
		stride := e.Stride
		if ignoreStride || stride <= 0 {
			stride = 1
		}

		input := shape.Dims{
			shape.N: e.N, shape.K: e.K, shape.C: e.C,
			shape.X: e.X, shape.Y: e.Y, shape.R: e.R, shape.S: e.S,
		}

		if removeDuplicateLayers {
			key := dimsKey(input)
			if seen[key] {
				continue
			}
			seen[key] = true
		}

		output := shape.Dims{
			shape.N: e.N, shape.K: e.K, shape.C: e.C,
			shape.X: validOutputSize(e.X, e.R, stride),
			shape.Y: validOutputSize(e.Y, e.S, stride),
			shape.R: e.R, shape.S: e.S,
		}

		name := e.Name
		if name == "" {
			name = fmt.Sprintf("layer%d", i)
		}
		shapes = append(shapes, shape.New(name, input, output, shape.CONV))
	}

	return shapes, nil
}

// validOutputSize applies the standard valid-convolution output-size
// formula: floor((in - filter) / stride) + 1, floored at 1.
func validOutputSize(in, filter, stride int) int {
	out := (in-filter)/stride + 1
	if out < 1 {
		return 1
	}
	return out
}

func dimsKey(d shape.Dims) string {
	return fmt.Sprintf("%d|%d|%d|%d|%d|%d|%d",
		d[shape.N], d[shape.K], d[shape.C], d[shape.X], d[shape.Y], d[shape.R], d[shape.S])
}
