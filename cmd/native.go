package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/hwswcopt/spotlight/evaluator"
)

// NewSubprocessEvaluator builds a NativeEvalFunc that shells out to an
// external binary implementing the native cost-model ABI (§1, §6: "the
// native cost-model library itself" is an external collaborator this
// module only calls through the injected NativeEvalFunc type, never via
// cgo). The subprocess receives one JSON-encoded evaluator.Request on
// stdin and must print one JSON-encoded evaluator.Cost to stdout; this is
// the seam a deployment wires its actual cost-model library through.
func NewSubprocessEvaluator(binPath string) evaluator.NativeEvalFunc {
	return func(req evaluator.Request) (evaluator.Cost, error) {
		payload, err := json.Marshal(req)
		if err != nil {
			return evaluator.Cost{}, fmt.Errorf("cmd: encoding native evaluator request: %w", err)
		}

		execCmd := exec.Command(binPath)
		execCmd.Stdin = bytes.NewReader(payload)
		var stdout, stderr bytes.Buffer
		execCmd.Stdout = &stdout
		execCmd.Stderr = &stderr

		if err := execCmd.Run(); err != nil {
			return evaluator.Cost{}, fmt.Errorf("cmd: native evaluator %s failed: %w (stderr: %s)", binPath, err, stderr.String())
		}

		var cost evaluator.Cost
		if err := json.Unmarshal(stdout.Bytes(), &cost); err != nil {
			return evaluator.Cost{}, fmt.Errorf("cmd: decoding native evaluator output: %w", err)
		}
		return cost, nil
	}
}
