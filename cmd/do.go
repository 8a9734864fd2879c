package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/macro-cli/internal/edit"
	"github.com/mj1618/macro-cli/internal/logger"
	"github.com/mj1618/macro-cli/internal/model"
	"github.com/mj1618/macro-cli/internal/output"
)

// DoResult is the output of a batch do command.
type DoResult struct {
	Action string `yaml:"action" json:"action"`
	File   string `yaml:"file"   json:"file"`

	edit.BatchResult `yaml:",inline"`
}

var doCmd = &cobra.Command{
	Use:   "do",
	Short: "Apply multiple edits in a batch",
	Long: `Apply a sequence of edit ops from a YAML list on stdin.

Each step is an op name with its params as a map. Steps run in order against
a working copy; by default the first error stops the batch and nothing is
written. With --stop-on-error=false every op that succeeds is kept.

Ops: add-step, remove-step, move-step, change-kind, set-capture-type,
set-area, set-path, set-autocrop, set-autocrop-difference, set-option,
add-element, remove-element, set-geometry, set-content, set-style,
add-destination, remove-destination, set-overwrite

Example:
  macro-cli do <<'EOF'
  - add-step: { kind: capture }
  - set-capture-type: { step: 0, type: region }
  - add-step: { kind: annotate }
  - add-element: { step: 1, type: text }
  - set-content: { step: 1, element: 0, text: "Step 1" }
  - add-step: { kind: export }
  - add-destination: { step: 2, type: clipboard }
  EOF`,
	Args: cobra.NoArgs,
	RunE: runDo,
}

func init() {
	rootCmd.AddCommand(doCmd)
	doCmd.Flags().Bool("stop-on-error", true, "Stop on the first error and discard the whole batch")
}

func runDo(cmd *cobra.Command, args []string) error {
	stopOnError, _ := cmd.Flags().GetBool("stop-on-error")

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	steps, err := parseBatch(data)
	if err != nil {
		return err
	}

	path := docPath()
	doc, existed, err := loadOrNew(path)
	if err != nil {
		return err
	}
	var prev *model.Document
	if existed {
		prev = doc.Clone()
	}

	result := edit.ApplyBatch(doc, steps, stopOnError)
	if result.Committed && result.Completed > 0 {
		if err := saveWithSnapshot(path, prev, doc); err != nil {
			return err
		}
		logger.LogInfo("applied batch", map[string]interface{}{"file": path, "completed": result.Completed})
	} else if !result.OK {
		logger.LogWarn("batch discarded", map[string]interface{}{"file": path, "error": result.Error})
	}

	return output.Print(DoResult{BatchResult: result, Action: "do", File: path})
}

// parseBatch reads a YAML (or JSON) list of {op: params} maps.
func parseBatch(data []byte) ([]edit.BatchStep, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no steps provided on stdin: pipe a YAML list of ops")
	}
	var raw []map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML steps: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no steps provided: expected a YAML list of ops")
	}

	steps := make([]edit.BatchStep, len(raw))
	for i, step := range raw {
		steps[i] = make(edit.BatchStep, len(step))
		for op, params := range step {
			if params == nil {
				params = map[string]interface{}{}
			}
			steps[i][op] = edit.Params(params)
		}
	}
	return steps, nil
}
