package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig_ParsesTemplatesAndDefaults(t *testing.T) {
	path := writeTestConfig(t, `
version: "1"
defaults:
  simd: {low: 2, high: 16, step: 1}
  prec: {low: 8, high: 8, step: 1}
  bandwidth: {low: 64, high: 256, step: 1}
  hw_trials: 100
  sw_trials: 100
  max_invalid: 2500
  target: "edp"
  kernel: "linear"
  exclude_feat: "raw"
space_templates:
  edge:
    pe: {low: 128, high: 300, step: 1}
    buffer: {low: 32, high: 256, step: 8}
    max_area: 4.3841e9
    max_power: 1.34877e5
    max_invalid: 2500
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, 100, cfg.Defaults.HWTrials)

	tmpl, err := cfg.Template("edge")
	require.NoError(t, err)
	assert.Equal(t, 128, tmpl.PE.Low)
	assert.Equal(t, 4.3841e9, tmpl.MaxArea)
}

func TestLoadConfig_UnknownFieldIsRejected(t *testing.T) {
	path := writeTestConfig(t, `
version: "1"
defaults:
  simd: {low: 2, high: 16, step: 1}
typo_field: true
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_TemplateUnknownNameErrors(t *testing.T) {
	cfg := Config{SpaceTemplates: map[string]SpaceTemplate{"edge": {}}}
	_, err := cfg.Template("nonexistent")
	assert.Error(t, err)
}

func TestHardwareBounds_SharesBufferRangeAcrossLevels(t *testing.T) {
	d := Defaults{
		Simd: Range{Low: 2, High: 16, Step: 1},
		Prec: Range{Low: 8, High: 8, Step: 1},
		Bandwidth: Range{Low: 64, High: 256, Step: 1},
	}
	tmpl := SpaceTemplate{
		PE:     Range{Low: 128, High: 300, Step: 1},
		Buffer: Range{Low: 32, High: 256, Step: 8},
	}

	bounds := HardwareBounds(d, tmpl)
	require.Len(t, bounds.BufLow, 2)
	assert.Equal(t, 32, bounds.BufLow[0])
	assert.Equal(t, 32, bounds.BufLow[1])
	assert.Equal(t, 256, bounds.BufHigh[1])
}

func TestScaleTrials_GridBaselineScalesDownSW(t *testing.T) {
	hw, sw := ScaleTrials("grid", 100, 100)
	assert.Equal(t, 100, hw) // no "hw" substring: hw_trials untouched
	assert.InDelta(t, 519, sw, 1)  // 2.71/0.522 ~= 5.19 -> 100*5.19 ~= 519
}

func TestScaleTrials_BOModelIsUnscaledBaseline(t *testing.T) {
	hw, sw := ScaleTrials("bo", 100, 100)
	assert.Equal(t, 100, hw)
	assert.Equal(t, 100, sw) // bo_time_per_layer / bo_time_per_layer == 1
}

func TestScaleTrials_HWSubstringScalesHWTrialsBySqrt(t *testing.T) {
	hw, sw := ScaleTrials("bo_hw", 100, 100)
	// trial_scale = 1.0 (bo baseline), then sqrt(1.0) = 1.0 applied to both
	assert.Equal(t, 100, hw)
	assert.Equal(t, 100, sw)

	hw2, sw2 := ScaleTrials("random_hw", 100, 100)
	// trial_scale = 2.71/1.91 ~= 1.4188; sqrt ~= 1.191; both hw and sw scaled by the sqrt'd value
	assert.InDelta(t, 119, hw2, 1)
	assert.InDelta(t, 119, sw2, 1)
}

func TestScaleTrials_UnknownModelUsesBaselineMultiplier(t *testing.T) {
	// No grid/random/ga/bo substring: trial_scale stays 1.0, so ratio is
	// bo_time_per_layer / 1.0 == 2.71.
	hw, sw := ScaleTrials("exhaustive", 100, 100)
	assert.Equal(t, 100, hw)
	assert.InDelta(t, 271, sw, 1)
}
