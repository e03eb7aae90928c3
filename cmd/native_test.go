package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwswcopt/spotlight/evaluator"
	"github.com/hwswcopt/spotlight/shape"
)

func writeExecutableScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("subprocess evaluator test requires a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "fake_native")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestSubprocessEvaluator_ParsesCostFromStdout(t *testing.T) {
	script := writeExecutableScript(t, `echo '{"ExactRunTime":100,"OverallEnergy":50,"Area":10,"Power":5,"Throughput":1}'`)
	native := NewSubprocessEvaluator(script)

	cost, err := native(evaluator.Request{Shape: shape.New("l", shape.Dims{}, shape.Dims{}, shape.CONV)})
	require.NoError(t, err)
	assert.Equal(t, 100.0, cost.ExactRunTime)
	assert.Equal(t, 50.0, cost.OverallEnergy)
}

func TestSubprocessEvaluator_NonZeroExitIsWrappedError(t *testing.T) {
	script := writeExecutableScript(t, `echo "boom" >&2; exit 1`)
	native := NewSubprocessEvaluator(script)

	_, err := native(evaluator.Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestSubprocessEvaluator_UnparsableStdoutIsWrappedError(t *testing.T) {
	script := writeExecutableScript(t, `echo "not json"`)
	native := NewSubprocessEvaluator(script)

	_, err := native(evaluator.Request{})
	assert.Error(t, err)
}
