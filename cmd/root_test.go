package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/mj1618/macro-cli/internal/model"
	"github.com/mj1618/macro-cli/internal/output"
)

// execute runs the root command against file and returns what it printed.
func execute(t *testing.T, file string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	prev := output.Writer
	output.Writer = &buf
	defer func() { output.Writer = prev }()

	args = append(args, "--file", file, "--format", "yaml", "--pretty=false")
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(""))
	err := rootCmd.Execute()
	return buf.String(), err
}

func mustExecute(t *testing.T, file string, args ...string) string {
	t.Helper()
	out, err := execute(t, file, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

func readJSON(t *testing.T, file string) []byte {
	t.Helper()
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"new", "show", "get", "outline", "diff", "step", "capture", "element", "dest", "do", "render", "run", "serve", "version"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestNew(t *testing.T) {
	file := filepath.Join(t.TempDir(), "macro.json")

	out := mustExecute(t, file, "new", "--force=false")
	if !strings.Contains(out, "op: new") {
		t.Errorf("unexpected output: %s", out)
	}
	if got := string(readJSON(t, file)); got != "{\n  \"version\": \"1.0\",\n  \"workflow\": []\n}\n" {
		t.Errorf("unexpected document: %q", got)
	}

	if _, err := execute(t, file, "new", "--force=false"); err == nil {
		t.Error("expected error when the document exists")
	}
	mustExecute(t, file, "new", "--force")
}

func TestEditCommands_BuildMacro(t *testing.T) {
	file := filepath.Join(t.TempDir(), "macro.json")

	mustExecute(t, file, "step", "add", "capture")
	mustExecute(t, file, "capture", "type", "0", "region")
	mustExecute(t, file, "capture", "area", "0", "Width=1024", "Height=768")
	mustExecute(t, file, "capture", "autocrop", "0", "on")
	mustExecute(t, file, "capture", "diff", "0", "25")
	mustExecute(t, file, "capture", "option", "0", "delay_ms", "500")

	mustExecute(t, file, "step", "add", "annotate")
	mustExecute(t, file, "element", "add", "1", "arrow")
	mustExecute(t, file, "element", "geom", "1", "0", "from.x=10", "to.x=200")
	mustExecute(t, file, "element", "style", "1", "0", "line_color=#00FF00", "shadow=false")
	mustExecute(t, file, "element", "add", "1", "text")
	mustExecute(t, file, "element", "text", "1", "1", "Step 1")

	mustExecute(t, file, "step", "add", "export")
	mustExecute(t, file, "dest", "add", "2", "file", "out_{timestamp}.png")
	out := mustExecute(t, file, "dest", "overwrite", "2", "0", "on")
	if !strings.Contains(out, "steps: 3") {
		t.Errorf("unexpected output: %s", out)
	}

	data := readJSON(t, file)
	checks := map[string]string{
		"workflow.0.step":                        "capture",
		"workflow.0.type":                        "region",
		"workflow.0.area.Width":                  "1024",
		"workflow.0.area.Height":                 "768",
		"workflow.0.autocrop_difference":         "25",
		"workflow.0.options.delay_ms":            "500",
		"workflow.1.elements.0.type":             "arrow",
		"workflow.1.elements.0.from.x":           "10",
		"workflow.1.elements.0.to.x":             "200",
		"workflow.1.elements.0.style.line_color": "#00FF00",
		"workflow.1.elements.0.style.shadow":     "false",
		"workflow.1.elements.1.content":          "Step 1",
		"workflow.2.destinations.0.path":         "out_{timestamp}.png",
		"workflow.2.destinations.0.overwrite":    "true",
	}
	for path, want := range checks {
		if got := gjson.GetBytes(data, path).String(); got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
}

func TestEditCommands_FailureLeavesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "macro.json")
	mustExecute(t, file, "step", "add", "capture")
	mustExecute(t, file, "capture", "type", "0", "region")
	before := readJSON(t, file)

	if _, err := execute(t, file, "capture", "area", "0", "Width=10", "Height=-5"); err == nil {
		t.Error("expected error for negative height")
	}
	if _, err := execute(t, file, "capture", "path", "0", "shot.png"); err == nil {
		t.Error("expected error setting a path on a region capture")
	}
	if _, err := execute(t, file, "dest", "add", "0", "clipboard"); err == nil {
		t.Error("expected error adding a destination to a capture step")
	}
	if _, err := execute(t, file, "step", "kind", "4", "export"); err == nil {
		t.Error("expected error for an out-of-range step")
	}

	if after := readJSON(t, file); !bytes.Equal(before, after) {
		t.Errorf("document changed after failed edits:\n%s", after)
	}
}

func TestCaptureArea_BBox(t *testing.T) {
	file := filepath.Join(t.TempDir(), "macro.json")
	mustExecute(t, file, "step", "add", "capture")
	mustExecute(t, file, "capture", "type", "0", "region")
	mustExecute(t, file, "capture", "area", "0", "--bbox", "5,6,70,80")
	defer captureAreaCmd.Flags().Set("bbox", "")

	doc, err := model.Load(file)
	if err != nil {
		t.Fatal(err)
	}
	step, _ := doc.Step(0)
	c, ok := step.Capture()
	if !ok {
		t.Fatal("expected capture step")
	}
	area, _ := c.Area()
	if area != (model.Area{X: 5, Y: 6, Width: 70, Height: 80}) {
		t.Errorf("unexpected area: %+v", area)
	}
}

func TestShowGetOutline(t *testing.T) {
	file := filepath.Join(t.TempDir(), "macro.json")
	mustExecute(t, file, "step", "add", "annotate")
	mustExecute(t, file, "element", "add", "0", "rectangle")

	out := mustExecute(t, file, "show")
	if !strings.HasPrefix(out, "version: \"1.0\"\nworkflow:\n") {
		t.Errorf("unexpected show output: %s", out)
	}

	out = mustExecute(t, file, "get", "workflow.0.elements.0.type")
	if !strings.Contains(out, "value: rectangle") {
		t.Errorf("unexpected get output: %s", out)
	}
	if _, err := execute(t, file, "get", "workflow.9"); err == nil {
		t.Error("expected error for missing path")
	}

	out = mustExecute(t, file, "outline")
	for _, want := range []string{"label: 1. annotate", "label: 1. rectangle", "path: workflow[0] > elements[0]"} {
		if !strings.Contains(out, want) {
			t.Errorf("outline missing %q:\n%s", want, out)
		}
	}
}

func TestShow_MissingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "missing.json")
	_, err := execute(t, file, "show")
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("expected missing file error, got %v", err)
	}
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.json")
	file := filepath.Join(dir, "macro.json")
	mustExecute(t, old, "step", "add", "capture")
	mustExecute(t, file, "step", "add", "capture")
	mustExecute(t, file, "step", "add", "export")

	out := mustExecute(t, file, "diff", old)
	if !strings.Contains(out, "type: added") || !strings.Contains(out, "path: workflow[1]") {
		t.Errorf("unexpected diff output: %s", out)
	}
}

func TestDo(t *testing.T) {
	file := filepath.Join(t.TempDir(), "macro.json")

	batch := `
- add-step: { kind: annotate }
- add-element: { step: 0, type: obfuscate }
- set-style: { step: 0, element: 0, key: pixel_size, value: 8 }
`
	out := mustExecuteWithInput(t, file, batch, "do", "--stop-on-error=true")
	if !strings.Contains(out, "ok: true") || !strings.Contains(out, "completed: 3") {
		t.Errorf("unexpected do output: %s", out)
	}
	before := readJSON(t, file)
	if got := gjson.GetBytes(before, "workflow.0.elements.0.style.pixel_size").Int(); got != 8 {
		t.Errorf("pixel_size = %d, want 8", got)
	}

	failing := `
- add-step: { kind: export }
- add-destination: { step: 0, type: clipboard }
`
	out = mustExecuteWithInput(t, file, failing, "do", "--stop-on-error=true")
	if !strings.Contains(out, "ok: false") || !strings.Contains(out, "committed: false") {
		t.Errorf("unexpected do output: %s", out)
	}
	if after := readJSON(t, file); !bytes.Equal(before, after) {
		t.Error("failed batch changed the document")
	}

	out = mustExecuteWithInput(t, file, failing, "do", "--stop-on-error=false")
	if !strings.Contains(out, "completed: 1") {
		t.Errorf("unexpected do output: %s", out)
	}
	if n := gjson.GetBytes(readJSON(t, file), "workflow.#").Int(); n != 2 {
		t.Errorf("workflow length = %d, want 2", n)
	}
}

func mustExecuteWithInput(t *testing.T, file, input string, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	prev := output.Writer
	output.Writer = &buf
	defer func() { output.Writer = prev }()

	rootCmd.SetArgs(append(args, "--file", file, "--format", "yaml", "--pretty=false"))
	rootCmd.SetIn(strings.NewReader(input))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return buf.String()
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "macro.json")
	out := filepath.Join(dir, "preview.png")
	mustExecute(t, file, "step", "add", "annotate")
	mustExecute(t, file, "element", "add", "0", "rectangle")

	res := mustExecute(t, file, "render", "0", "--out", out, "--width", "120", "--height", "90")
	if !strings.Contains(res, "width: 120") || !strings.Contains(res, "elements: 1") {
		t.Errorf("unexpected render output: %s", res)
	}
	data := readJSON(t, out)
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("expected a PNG file")
	}

	mustExecute(t, file, "step", "add", "capture")
	if _, err := execute(t, file, "render", "1", "--out", out); err == nil {
		t.Error("expected error rendering a capture step")
	}
}

func TestRun_ExecutableNotFound(t *testing.T) {
	file := filepath.Join(t.TempDir(), "macro.json")
	mustExecute(t, file, "new", "--force")
	_, err := execute(t, file, "run", "--exe", filepath.Join(t.TempDir(), "nope.exe"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected executable not found, got %v", err)
	}
}

func TestDiff_AgainstLastEdit(t *testing.T) {
	file := filepath.Join(t.TempDir(), "macro.json")
	mustExecute(t, file, "step", "add", "capture")
	mustExecute(t, file, "step", "add", "export")

	out := mustExecute(t, file, "diff")
	if !strings.Contains(out, "type: added") || !strings.Contains(out, "path: workflow[1]") {
		t.Errorf("unexpected diff output: %s", out)
	}
	if n := gjson.GetBytes(readJSON(t, file), "workflow.#").Int(); n != 2 {
		t.Errorf("workflow length = %d, want 2", n)
	}

	fresh := filepath.Join(t.TempDir(), "fresh.json")
	mustExecute(t, fresh, "step", "add", "annotate")
	if _, err := execute(t, fresh, "diff"); err == nil || !strings.Contains(err.Error(), "no snapshot") {
		t.Errorf("expected no snapshot error, got %v", err)
	}
}

func TestOutline_Filter(t *testing.T) {
	file := filepath.Join(t.TempDir(), "macro.json")
	mustExecute(t, file, "step", "add", "annotate")
	mustExecute(t, file, "element", "add", "0", "arrow")
	mustExecute(t, file, "element", "add", "0", "rectangle")

	out := mustExecute(t, file, "outline", "--kind", "element", "--match", "rectangle")
	defer outlineCmd.Flags().Set("match", "")
	defer outlineCmd.Flags().Lookup("kind").Value.(interface{ Replace([]string) error }).Replace(nil)
	if !strings.Contains(out, "2. rectangle") || strings.Contains(out, "1. arrow") || strings.Contains(out, "1. annotate") {
		t.Errorf("unexpected outline output: %s", out)
	}
}
