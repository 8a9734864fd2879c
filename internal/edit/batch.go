package edit

import (
	"fmt"

	"github.com/mj1618/macro-cli/internal/model"
)

// BatchStep is one entry of a batch: a single op name mapped to its params,
// e.g. {"add-element": {"step": 0, "type": "arrow"}}.
type BatchStep map[string]Params

// StepResult is the outcome of one batch entry. Step is 1-based.
type StepResult struct {
	Step   int     `yaml:"step"             json:"step"`
	OK     bool    `yaml:"ok"               json:"ok"`
	Op     string  `yaml:"op"               json:"op"`
	Error  string  `yaml:"error,omitempty"  json:"error,omitempty"`
	Result *Result `yaml:"result,omitempty" json:"result,omitempty"`
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	OK        bool         `yaml:"ok"              json:"ok"`
	Steps     int          `yaml:"steps"           json:"steps"`
	Completed int          `yaml:"completed"       json:"completed"`
	Committed bool         `yaml:"committed"       json:"committed"`
	Error     string       `yaml:"error,omitempty" json:"error,omitempty"`
	Results   []StepResult `yaml:"results"         json:"results"`
}

// ApplyBatch runs steps in order against a working copy of doc. With
// stopOnError the batch is all-or-nothing: the first failure stops the run
// and doc is left untouched. Without it every op that succeeds is kept and
// failures are reported per step.
func ApplyBatch(doc *model.Document, steps []BatchStep, stopOnError bool) BatchResult {
	work := doc.Clone()
	res := BatchResult{Steps: len(steps), Results: make([]StepResult, 0, len(steps))}
	failed := false

	for i, step := range steps {
		stepNum := i + 1
		sr := StepResult{Step: stepNum}
		if len(step) != 1 {
			sr.Error = fmt.Sprintf("expected exactly one op key, got %d", len(step))
		} else {
			for name, params := range step {
				sr.Op = name
				r, err := Apply(work, name, params)
				if err != nil {
					sr.Error = err.Error()
				} else {
					sr.OK = true
					sr.Result = &r
				}
			}
		}
		res.Results = append(res.Results, sr)
		if !sr.OK {
			failed = true
			if res.Error == "" {
				res.Error = fmt.Sprintf("step %d: %s", stepNum, sr.Error)
			}
			if stopOnError {
				break
			}
			continue
		}
		res.Completed++
	}

	res.OK = !failed
	if !failed || !stopOnError {
		*doc = *work
		res.Committed = true
	}
	return res
}
