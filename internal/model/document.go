package model

import "fmt"

// CurrentVersion is the exchange format version written for new documents.
const CurrentVersion = "1.0"

// Document is a workflow: an ordered list of steps run in sequence by the
// screenshot tool. All mutation goes through its methods; accessors return
// copies.
type Document struct {
	Version  string
	Workflow []Step
	Extra    Extra
}

// New returns an empty document.
func New() *Document {
	return &Document{Version: CurrentVersion, Workflow: []Step{}}
}

// Len returns the number of steps.
func (d *Document) Len() int { return len(d.Workflow) }

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	out := &Document{Version: d.Version, Workflow: make([]Step, len(d.Workflow)), Extra: d.Extra.clone()}
	for i, s := range d.Workflow {
		out.Workflow[i] = s.Clone()
	}
	return out
}

// Step returns a copy of the step at i.
func (d *Document) Step(i int) (Step, error) {
	if err := checkIndex("step", i, len(d.Workflow)); err != nil {
		return Step{}, err
	}
	return d.Workflow[i].Clone(), nil
}

// Steps returns copies of all steps.
func (d *Document) Steps() []Step {
	out := make([]Step, len(d.Workflow))
	for i, s := range d.Workflow {
		out[i] = s.Clone()
	}
	return out
}

// AddStep appends a default step of kind and returns its index.
func (d *Document) AddStep(kind StepKind) (int, error) {
	s, err := NewStep(kind)
	if err != nil {
		return 0, err
	}
	d.Workflow = append(d.Workflow, s)
	return len(d.Workflow) - 1, nil
}

// RemoveStep deletes the step at i.
func (d *Document) RemoveStep(i int) error {
	if err := checkIndex("step", i, len(d.Workflow)); err != nil {
		return err
	}
	d.Workflow = append(d.Workflow[:i:i], d.Workflow[i+1:]...)
	return nil
}

// MoveStep moves the step at from so that it ends up at index to.
func (d *Document) MoveStep(from, to int) error {
	if err := checkIndex("step", from, len(d.Workflow)); err != nil {
		return err
	}
	if err := checkIndex("step", to, len(d.Workflow)); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	s := d.Workflow[from]
	rest := append(d.Workflow[:from:from], d.Workflow[from+1:]...)
	out := make([]Step, 0, len(d.Workflow))
	out = append(out, rest[:to]...)
	out = append(out, s)
	out = append(out, rest[to:]...)
	d.Workflow = out
	return nil
}

// UpdateStep runs fn on a copy of the step at i and stores it only if fn
// succeeds, so a failed edit leaves the document as it was.
func (d *Document) UpdateStep(i int, fn func(*Step) error) error {
	if err := checkIndex("step", i, len(d.Workflow)); err != nil {
		return err
	}
	s := d.Workflow[i].Clone()
	if err := fn(&s); err != nil {
		return fmt.Errorf("step %d: %w", i, err)
	}
	d.Workflow[i] = s
	return nil
}

func (d *Document) ChangeStepKind(i int, kind StepKind) error {
	return d.UpdateStep(i, func(s *Step) error { return s.ChangeKind(kind) })
}

func (d *Document) SetCaptureType(i int, t CaptureType) error {
	return d.UpdateStep(i, func(s *Step) error { return s.SetCaptureType(t) })
}

func (d *Document) SetAreaField(i int, key string, v int) error {
	return d.UpdateStep(i, func(s *Step) error { return s.SetAreaField(key, v) })
}

func (d *Document) SetCapturePath(i int, path string) error {
	return d.UpdateStep(i, func(s *Step) error { return s.SetCapturePath(path) })
}

func (d *Document) SetAutocrop(i int, enabled bool) error {
	return d.UpdateStep(i, func(s *Step) error { return s.SetAutocrop(enabled) })
}

func (d *Document) SetAutocropDifference(i, v int) error {
	return d.UpdateStep(i, func(s *Step) error { return s.SetAutocropDifference(v) })
}

func (d *Document) SetCaptureOption(i int, key string, v any) error {
	return d.UpdateStep(i, func(s *Step) error { return s.SetCaptureOption(key, v) })
}

// AddElement appends an element to the annotate step at i and returns the
// element index.
func (d *Document) AddElement(i int, t ElementType) (int, error) {
	var idx int
	err := d.UpdateStep(i, func(s *Step) (err error) {
		idx, err = s.AddElement(t)
		return err
	})
	return idx, err
}

func (d *Document) RemoveElement(i, j int) error {
	return d.UpdateStep(i, func(s *Step) error { return s.RemoveElement(j) })
}

// UpdateElement applies fn to element j of step i.
func (d *Document) UpdateElement(i, j int, fn func(*Element) error) error {
	return d.UpdateStep(i, func(s *Step) error { return s.UpdateElement(j, fn) })
}

func (d *Document) SetElementGeometry(i, j int, key string, v int) error {
	return d.UpdateElement(i, j, func(e *Element) error { return e.SetGeometry(key, v) })
}

func (d *Document) SetElementContent(i, j int, text string) error {
	return d.UpdateElement(i, j, func(e *Element) error { return e.SetContent(text) })
}

func (d *Document) SetElementStyle(i, j int, key string, v any) error {
	return d.UpdateElement(i, j, func(e *Element) error { return e.SetStyle(key, v) })
}

// AddDestination appends a destination to the export step at i and returns
// the destination index.
func (d *Document) AddDestination(i int, t DestinationType, path string) (int, error) {
	var idx int
	err := d.UpdateStep(i, func(s *Step) (err error) {
		idx, err = s.AddDestination(t, path)
		return err
	})
	return idx, err
}

func (d *Document) RemoveDestination(i, j int) error {
	return d.UpdateStep(i, func(s *Step) error { return s.RemoveDestination(j) })
}

func (d *Document) SetDestinationOverwrite(i, j int, v bool) error {
	return d.UpdateStep(i, func(s *Step) error { return s.SetDestinationOverwrite(j, v) })
}
