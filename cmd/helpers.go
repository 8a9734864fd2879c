package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/mj1618/macro-cli/internal/config"
	"github.com/mj1618/macro-cli/internal/edit"
	"github.com/mj1618/macro-cli/internal/logger"
	"github.com/mj1618/macro-cli/internal/model"
	"github.com/mj1618/macro-cli/internal/output"
)

// EditResult is the output of every editing command.
type EditResult struct {
	OK    bool   `yaml:"ok"              json:"ok"`
	Op    string `yaml:"op"              json:"op"`
	File  string `yaml:"file"            json:"file"`
	Step  *int   `yaml:"step,omitempty"  json:"step,omitempty"`
	Index *int   `yaml:"index,omitempty" json:"index,omitempty"`
	Steps int    `yaml:"steps"           json:"steps"`
}

// opCall is one edit op with its params.
type opCall struct {
	name   string
	params edit.Params
}

// docPath resolves the document the command works on: --file, then
// macro.file from config, then macro.json.
func docPath() string {
	pf := rootCmd.PersistentFlags()
	if pf.Changed("file") {
		path, _ := pf.GetString("file")
		return path
	}
	if config.Instance.Macro.File != "" {
		return config.Instance.Macro.File
	}
	return "macro.json"
}

// loadDoc reads the document at path.
func loadDoc(path string) (*model.Document, error) {
	doc, err := model.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s does not exist (create it with `macro-cli new`)", path)
	}
	return doc, err
}

// loadOrNew reads the document at path, starting an empty one when the file
// does not exist yet. existed reports whether it was read from disk.
func loadOrNew(path string) (doc *model.Document, existed bool, err error) {
	doc, err = model.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.LogDebug("starting new document", map[string]interface{}{"file": path})
		return model.New(), false, nil
	}
	return doc, err == nil, err
}

// saveWithSnapshot keeps prev as a snapshot of path and writes doc over it.
// A nil prev means there was nothing on disk to keep.
func saveWithSnapshot(path string, prev, doc *model.Document) error {
	if prev != nil {
		snap := config.Instance.Snapshots
		if snap.Dir != "" {
			if file, err := model.SaveSnapshot(snap.Dir, path, time.Now().UnixNano(), prev); err != nil {
				logger.LogWarn("failed to save snapshot", map[string]interface{}{"file": path, "error": err.Error()})
			} else {
				logger.LogDebug("saved snapshot", map[string]interface{}{"snapshot": file})
			}
			if snap.MaxAge > 0 {
				model.CleanSnapshots(snap.Dir, path, snap.MaxAge)
			}
		}
	}
	return model.Save(path, doc)
}

// applyOps runs calls against the current document and saves it only if
// all of them succeed. The printed result describes the last call.
func applyOps(calls ...opCall) error {
	path := docPath()
	doc, existed, err := loadOrNew(path)
	if err != nil {
		return err
	}
	var prev *model.Document
	if existed {
		prev = doc.Clone()
	}

	var res edit.Result
	for _, c := range calls {
		if res, err = edit.Apply(doc, c.name, c.params); err != nil {
			return err
		}
	}
	if err := saveWithSnapshot(path, prev, doc); err != nil {
		return err
	}
	logger.LogInfo("updated macro", map[string]interface{}{"file": path, "op": res.Op})

	return output.Print(EditResult{
		OK:    true,
		Op:    res.Op,
		File:  path,
		Step:  res.Step,
		Index: res.Index,
		Steps: doc.Len(),
	})
}

// applyOp runs a single edit op.
func applyOp(name string, params edit.Params) error {
	return applyOps(opCall{name: name, params: params})
}

// keyValues splits "key=value" arguments. Values stay strings; the model
// coerces them per field.
func keyValues(args []string) ([][2]string, error) {
	pairs := make([][2]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", arg)
		}
		pairs = append(pairs, [2]string{strings.TrimSpace(key), value})
	}
	return pairs, nil
}
