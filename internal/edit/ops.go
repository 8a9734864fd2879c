// Package edit exposes the document edit API as named operations with loose
// parameters, shared by the CLI, the batch runner and the MCP server.
package edit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mj1618/macro-cli/internal/model"
)

// ParamType describes how a parameter is passed in.
type ParamType int

const (
	String ParamType = iota
	Number
	Boolean
)

// Param documents one op parameter.
type Param struct {
	Name        string
	Type        ParamType
	Required    bool
	Description string
}

// Op is a named edit.
type Op struct {
	Name        string
	Description string
	Params      []Param
	run         func(doc *model.Document, p Params) (Result, error)
}

// Result reports where an op landed. Step and Index are zero-based and only
// set when the op addresses them.
type Result struct {
	Op    string `yaml:"op"              json:"op"`
	Step  *int   `yaml:"step,omitempty"  json:"step,omitempty"`
	Index *int   `yaml:"index,omitempty" json:"index,omitempty"`
}

func stepParam(desc string) Param {
	return Param{Name: "step", Type: Number, Required: true, Description: desc}
}

var (
	stepIndex    = stepParam("Step index (0-based, negative counts from the end)")
	elementIndex = Param{Name: "element", Type: Number, Required: true, Description: "Element index within the annotate step (0-based, negative counts from the end)"}
	destIndex    = Param{Name: "destination", Type: Number, Required: true, Description: "Destination index within the export step (0-based, negative counts from the end)"}
)

var ops = []Op{
	{
		Name:        "add-step",
		Description: "Append a step with default fields",
		Params:      []Param{{Name: "kind", Type: String, Required: true, Description: "Step kind: capture, annotate, export"}},
		run: func(doc *model.Document, p Params) (Result, error) {
			kind, err := stepKind(p)
			if err != nil {
				return Result{}, err
			}
			i, err := doc.AddStep(kind)
			return Result{Step: &i}, err
		},
	},
	{
		Name:        "remove-step",
		Description: "Remove a step",
		Params:      []Param{stepIndex},
		run: func(doc *model.Document, p Params) (Result, error) {
			i, err := index(p, "step", doc.Len())
			if err != nil {
				return Result{}, err
			}
			return Result{Step: &i}, doc.RemoveStep(i)
		},
	},
	{
		Name:        "move-step",
		Description: "Move a step to a new position",
		Params: []Param{
			stepParam("Index of the step to move"),
			{Name: "to", Type: Number, Required: true, Description: "Target index"},
		},
		run: func(doc *model.Document, p Params) (Result, error) {
			from, err := index(p, "step", doc.Len(), "from")
			if err != nil {
				return Result{}, err
			}
			to, err := index(p, "to", doc.Len())
			if err != nil {
				return Result{}, err
			}
			return Result{Step: &to}, doc.MoveStep(from, to)
		},
	},
	{
		Name:        "change-kind",
		Description: "Change a step's kind, resetting it to the new kind's defaults",
		Params: []Param{
			stepIndex,
			{Name: "kind", Type: String, Required: true, Description: "Step kind: capture, annotate, export"},
		},
		run: onStep(func(doc *model.Document, i int, p Params) error {
			kind, err := stepKind(p)
			if err != nil {
				return err
			}
			return doc.ChangeStepKind(i, kind)
		}),
	},
	{
		Name:        "set-capture-type",
		Description: "Switch a capture step between fullscreen, region and file",
		Params: []Param{
			stepIndex,
			{Name: "type", Type: String, Required: true, Description: "Capture type: fullscreen, region, file"},
		},
		run: onStep(func(doc *model.Document, i int, p Params) error {
			s, err := requireString(p, "type")
			if err != nil {
				return err
			}
			t, err := model.ParseCaptureType(s)
			if err != nil {
				return err
			}
			return doc.SetCaptureType(i, t)
		}),
	},
	{
		Name:        "set-area",
		Description: "Set one field of a region capture's area",
		Params: []Param{
			stepIndex,
			{Name: "key", Type: String, Required: true, Description: "Area field: X, Y, Width, Height"},
			{Name: "value", Type: Number, Required: true, Description: "Value in pixels"},
		},
		run: onStep(func(doc *model.Document, i int, p Params) error {
			key, err := requireString(p, "key", "field")
			if err != nil {
				return err
			}
			v, err := requireInt(p, "value")
			if err != nil {
				return err
			}
			return doc.SetAreaField(i, key, v)
		}),
	},
	{
		Name:        "set-path",
		Description: "Set the source path of a file capture",
		Params: []Param{
			stepIndex,
			{Name: "path", Type: String, Required: true, Description: "Image path"},
		},
		run: onStep(func(doc *model.Document, i int, p Params) error {
			path, err := requireString(p, "path")
			if err != nil {
				return err
			}
			return doc.SetCapturePath(i, path)
		}),
	},
	{
		Name:        "set-autocrop",
		Description: "Enable or disable autocrop on a capture step",
		Params: []Param{
			stepIndex,
			{Name: "enabled", Type: Boolean, Required: true, Description: "Autocrop on or off"},
		},
		run: onStep(func(doc *model.Document, i int, p Params) error {
			on, err := requireBool(p, "enabled", "value")
			if err != nil {
				return err
			}
			return doc.SetAutocrop(i, on)
		}),
	},
	{
		Name:        "set-autocrop-difference",
		Description: "Set the autocrop color tolerance (0-255); autocrop must be enabled",
		Params: []Param{
			stepIndex,
			{Name: "value", Type: Number, Required: true, Description: "Tolerance 0-255"},
		},
		run: onStep(func(doc *model.Document, i int, p Params) error {
			v, err := requireInt(p, "value", "difference")
			if err != nil {
				return err
			}
			return doc.SetAutocropDifference(i, v)
		}),
	},
	{
		Name:        "set-option",
		Description: "Set a capture option (show_cursor, delay_ms)",
		Params: []Param{
			stepIndex,
			{Name: "key", Type: String, Required: true, Description: "Option name: show_cursor, delay_ms"},
			{Name: "value", Type: String, Required: true, Description: "Option value"},
		},
		run: onStep(func(doc *model.Document, i int, p Params) error {
			key, err := requireString(p, "key")
			if err != nil {
				return err
			}
			v, err := requireValue(p, "value")
			if err != nil {
				return err
			}
			return doc.SetCaptureOption(i, key, v)
		}),
	},
	{
		Name:        "add-element",
		Description: "Append an annotation element with default geometry and style",
		Params: []Param{
			stepIndex,
			{Name: "type", Type: String, Required: true, Description: "Element type: rectangle, arrow, text, obfuscate"},
		},
		run: func(doc *model.Document, p Params) (Result, error) {
			i, err := index(p, "step", doc.Len())
			if err != nil {
				return Result{}, err
			}
			s, err := requireString(p, "type")
			if err != nil {
				return Result{}, err
			}
			t, err := model.ParseElementType(s)
			if err != nil {
				return Result{}, err
			}
			j, err := doc.AddElement(i, t)
			return Result{Step: &i, Index: &j}, err
		},
	},
	{
		Name:        "remove-element",
		Description: "Remove an annotation element",
		Params:      []Param{stepIndex, elementIndex},
		run: onElement(func(doc *model.Document, i, j int, p Params) error {
			return doc.RemoveElement(i, j)
		}),
	},
	{
		Name:        "set-geometry",
		Description: "Set one coordinate of an element (bounds.x|y|w|h, from.x|y, to.x|y, position.x|y)",
		Params: []Param{
			stepIndex, elementIndex,
			{Name: "key", Type: String, Required: true, Description: "Geometry key such as bounds.w or to.x"},
			{Name: "value", Type: Number, Required: true, Description: "Value in pixels"},
		},
		run: onElement(func(doc *model.Document, i, j int, p Params) error {
			key, err := requireString(p, "key")
			if err != nil {
				return err
			}
			v, err := requireInt(p, "value")
			if err != nil {
				return err
			}
			return doc.SetElementGeometry(i, j, key, v)
		}),
	},
	{
		Name:        "set-content",
		Description: "Set the text of a text element",
		Params: []Param{
			stepIndex, elementIndex,
			{Name: "text", Type: String, Required: true, Description: "Text content"},
		},
		run: onElement(func(doc *model.Document, i, j int, p Params) error {
			text, err := requireString(p, "text", "content")
			if err != nil {
				return err
			}
			return doc.SetElementContent(i, j, text)
		}),
	},
	{
		Name:        "set-style",
		Description: "Set a style key on an element (line_color, fill_color, line_thickness, shadow, font_size, blur_radius, pixel_size)",
		Params: []Param{
			stepIndex, elementIndex,
			{Name: "key", Type: String, Required: true, Description: "Style key"},
			{Name: "value", Type: String, Required: true, Description: "Style value"},
		},
		run: onElement(func(doc *model.Document, i, j int, p Params) error {
			key, err := requireString(p, "key")
			if err != nil {
				return err
			}
			v, err := requireValue(p, "value")
			if err != nil {
				return err
			}
			return doc.SetElementStyle(i, j, key, v)
		}),
	},
	{
		Name:        "add-destination",
		Description: "Append an export destination (file needs a path)",
		Params: []Param{
			stepIndex,
			{Name: "type", Type: String, Required: true, Description: "Destination type: file, clipboard"},
			{Name: "path", Type: String, Description: "Output path for file destinations; {timestamp} is expanded at export"},
		},
		run: func(doc *model.Document, p Params) (Result, error) {
			i, err := index(p, "step", doc.Len())
			if err != nil {
				return Result{}, err
			}
			s, err := requireString(p, "type")
			if err != nil {
				return Result{}, err
			}
			t, err := model.ParseDestinationType(s)
			if err != nil {
				return Result{}, err
			}
			j, err := doc.AddDestination(i, t, stringParam(p, "path", ""))
			return Result{Step: &i, Index: &j}, err
		},
	},
	{
		Name:        "remove-destination",
		Description: "Remove an export destination",
		Params:      []Param{stepIndex, destIndex},
		run: onDestination(func(doc *model.Document, i, j int, p Params) error {
			return doc.RemoveDestination(i, j)
		}),
	},
	{
		Name:        "set-overwrite",
		Description: "Set whether a file destination overwrites existing files",
		Params: []Param{
			stepIndex, destIndex,
			{Name: "enabled", Type: Boolean, Required: true, Description: "Overwrite on or off"},
		},
		run: onDestination(func(doc *model.Document, i, j int, p Params) error {
			on, err := requireBool(p, "enabled", "value")
			if err != nil {
				return err
			}
			return doc.SetDestinationOverwrite(i, j, on)
		}),
	},
}

func stepKind(p Params) (model.StepKind, error) {
	s, err := requireString(p, "kind")
	if err != nil {
		return "", err
	}
	return model.ParseStepKind(s)
}

func onStep(fn func(doc *model.Document, i int, p Params) error) func(*model.Document, Params) (Result, error) {
	return func(doc *model.Document, p Params) (Result, error) {
		i, err := index(p, "step", doc.Len())
		if err != nil {
			return Result{}, err
		}
		return Result{Step: &i}, fn(doc, i, p)
	}
}

func onElement(fn func(doc *model.Document, i, j int, p Params) error) func(*model.Document, Params) (Result, error) {
	return func(doc *model.Document, p Params) (Result, error) {
		i, err := index(p, "step", doc.Len())
		if err != nil {
			return Result{}, err
		}
		n := 0
		if s, err := doc.Step(i); err == nil {
			if els, err := s.Elements(); err == nil {
				n = len(els)
			}
		}
		j, err := index(p, "element", n, "index")
		if err != nil {
			return Result{}, err
		}
		return Result{Step: &i, Index: &j}, fn(doc, i, j, p)
	}
}

func onDestination(fn func(doc *model.Document, i, j int, p Params) error) func(*model.Document, Params) (Result, error) {
	return func(doc *model.Document, p Params) (Result, error) {
		i, err := index(p, "step", doc.Len())
		if err != nil {
			return Result{}, err
		}
		n := 0
		if s, err := doc.Step(i); err == nil {
			if dsts, err := s.Destinations(); err == nil {
				n = len(dsts)
			}
		}
		j, err := index(p, "destination", n, "index")
		if err != nil {
			return Result{}, err
		}
		return Result{Step: &i, Index: &j}, fn(doc, i, j, p)
	}
}

// Ops returns the available operations sorted by name.
func Ops() []Op {
	out := make([]Op, len(ops))
	copy(out, ops)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted op names.
func Names() []string {
	names := make([]string, 0, len(ops))
	for _, op := range Ops() {
		names = append(names, op.Name)
	}
	return names
}

// Lookup finds an op by name. Underscores are accepted in place of dashes.
func Lookup(name string) (Op, bool) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for _, op := range ops {
		if op.Name == name {
			return op, true
		}
	}
	return Op{}, false
}

// Apply runs one named op against doc. A failed op leaves doc unchanged.
func Apply(doc *model.Document, name string, p Params) (Result, error) {
	op, ok := Lookup(name)
	if !ok {
		return Result{Op: name}, fmt.Errorf("%w: unknown op %q (supported: %s)", model.ErrInvalidVariant, name, strings.Join(Names(), ", "))
	}
	if p == nil {
		p = Params{}
	}
	res, err := op.run(doc, p)
	res.Op = op.Name
	if err != nil {
		return res, fmt.Errorf("%s: %w", op.Name, err)
	}
	return res, nil
}
