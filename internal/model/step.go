package model

import (
	"fmt"
	"strings"
)

// StepKind is the workflow step discriminator.
type StepKind string

const (
	StepCapture  StepKind = "capture"
	StepAnnotate StepKind = "annotate"
	StepExport   StepKind = "export"
)

// StepKinds lists the step kinds in menu order.
var StepKinds = []StepKind{StepCapture, StepAnnotate, StepExport}

// StepBody is the variant part of a Step: *Capture, *Annotate or *Export.
type StepBody interface {
	Kind() StepKind
	cloneBody() StepBody
}

// Step is one unit of workflow execution. Extra holds unknown keys read
// from the document; they are dropped when the kind changes.
type Step struct {
	Body  StepBody
	Extra Extra
}

// ParseStepKind validates a step discriminator.
func ParseStepKind(s string) (StepKind, error) {
	k := StepKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range StepKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown step kind %q (expected capture, annotate, or export)", ErrInvalidVariant, s)
}

// NewStep creates a step with the canonical default body of kind.
func NewStep(kind StepKind) (Step, error) {
	kind, err := ParseStepKind(string(kind))
	if err != nil {
		return Step{}, err
	}
	body, err := defaultBody(kind)
	if err != nil {
		return Step{}, err
	}
	return Step{Body: body}, nil
}

func defaultBody(kind StepKind) (StepBody, error) {
	switch kind {
	case StepCapture:
		return &Capture{Source: Fullscreen{}}, nil
	case StepAnnotate:
		return &Annotate{Elements: []Element{}}, nil
	case StepExport:
		return &Export{Destinations: []Destination{}}, nil
	default:
		return nil, fmt.Errorf("%w: unknown step kind %q", ErrInvalidVariant, kind)
	}
}

// Kind returns the step discriminator.
func (s Step) Kind() StepKind {
	if s.Body == nil {
		return ""
	}
	return s.Body.Kind()
}

// Clone returns a deep copy.
func (s Step) Clone() Step {
	out := Step{Extra: s.Extra.clone()}
	if s.Body != nil {
		out.Body = s.Body.cloneBody()
	}
	return out
}

// ChangeKind replaces the whole step with the default shape of kind.
// Changing to the current kind leaves the step untouched.
func (s *Step) ChangeKind(kind StepKind) error {
	kind, err := ParseStepKind(string(kind))
	if err != nil {
		return err
	}
	if s.Kind() == kind {
		return nil
	}
	fresh, err := NewStep(kind)
	if err != nil {
		return err
	}
	*s = fresh
	return nil
}

// Capture returns a copy of the capture body.
func (s Step) Capture() (*Capture, bool) {
	c, ok := s.Body.(*Capture)
	if !ok {
		return nil, false
	}
	return c.cloneBody().(*Capture), true
}

func (s *Step) capture() (*Capture, error) {
	c, ok := s.Body.(*Capture)
	if !ok {
		return nil, fmt.Errorf("%w: step is %s, not capture", ErrInvalidState, s.Kind())
	}
	return c, nil
}

func (s *Step) annotate() (*Annotate, error) {
	a, ok := s.Body.(*Annotate)
	if !ok {
		return nil, fmt.Errorf("%w: step is %s, not annotate", ErrInvalidState, s.Kind())
	}
	return a, nil
}

func (s *Step) export() (*Export, error) {
	e, ok := s.Body.(*Export)
	if !ok {
		return nil, fmt.Errorf("%w: step is %s, not export", ErrInvalidState, s.Kind())
	}
	return e, nil
}

// SetCaptureType switches the capture source of a capture step.
func (s *Step) SetCaptureType(t CaptureType) error {
	c, err := s.capture()
	if err != nil {
		return err
	}
	return c.SetType(t)
}

// SetAreaField sets one field of a region capture's area.
func (s *Step) SetAreaField(key string, v int) error {
	c, err := s.capture()
	if err != nil {
		return err
	}
	return c.SetAreaField(key, v)
}

// SetCapturePath sets the path of a file capture.
func (s *Step) SetCapturePath(path string) error {
	c, err := s.capture()
	if err != nil {
		return err
	}
	return c.SetPath(path)
}

// SetAutocrop toggles autocrop on a capture step.
func (s *Step) SetAutocrop(enabled bool) error {
	c, err := s.capture()
	if err != nil {
		return err
	}
	c.SetAutocrop(enabled)
	return nil
}

// SetAutocropDifference sets the autocrop tolerance on a capture step.
func (s *Step) SetAutocropDifference(v int) error {
	c, err := s.capture()
	if err != nil {
		return err
	}
	return c.SetAutocropDifference(v)
}

// SetCaptureOption sets a capture option on a capture step.
func (s *Step) SetCaptureOption(key string, v any) error {
	c, err := s.capture()
	if err != nil {
		return err
	}
	return c.SetOption(key, v)
}

// AddElement appends a default element to an annotate step and returns its
// index.
func (s *Step) AddElement(t ElementType) (int, error) {
	a, err := s.annotate()
	if err != nil {
		return 0, err
	}
	return a.Add(t)
}

// RemoveElement removes the element at i.
func (s *Step) RemoveElement(i int) error {
	a, err := s.annotate()
	if err != nil {
		return err
	}
	return a.Remove(i)
}

// Element returns a copy of the element at i.
func (s Step) Element(i int) (Element, error) {
	a, err := s.annotate()
	if err != nil {
		return Element{}, err
	}
	if err := checkIndex("element", i, len(a.Elements)); err != nil {
		return Element{}, err
	}
	return a.Elements[i].Clone(), nil
}

// Elements returns copies of the elements of an annotate step.
func (s Step) Elements() ([]Element, error) {
	a, err := s.annotate()
	if err != nil {
		return nil, err
	}
	out := make([]Element, len(a.Elements))
	for i, el := range a.Elements {
		out[i] = el.Clone()
	}
	return out, nil
}

// UpdateElement applies fn to the element at i. The element is replaced only
// if fn succeeds.
func (s *Step) UpdateElement(i int, fn func(*Element) error) error {
	a, err := s.annotate()
	if err != nil {
		return err
	}
	return a.Update(i, fn)
}

// AddDestination appends a destination to an export step and returns its
// index.
func (s *Step) AddDestination(t DestinationType, path string) (int, error) {
	e, err := s.export()
	if err != nil {
		return 0, err
	}
	return e.Add(t, path)
}

// RemoveDestination removes the destination at i.
func (s *Step) RemoveDestination(i int) error {
	e, err := s.export()
	if err != nil {
		return err
	}
	return e.Remove(i)
}

// Destinations returns copies of the destinations of an export step.
func (s Step) Destinations() ([]Destination, error) {
	e, err := s.export()
	if err != nil {
		return nil, err
	}
	out := make([]Destination, len(e.Destinations))
	for i, d := range e.Destinations {
		out[i] = d.Clone()
	}
	return out, nil
}

// SetDestinationOverwrite sets the overwrite flag of the file destination at i.
func (s *Step) SetDestinationOverwrite(i int, v bool) error {
	e, err := s.export()
	if err != nil {
		return err
	}
	if err := checkIndex("destination", i, len(e.Destinations)); err != nil {
		return err
	}
	d := e.Destinations[i].Clone()
	if err := d.SetOverwrite(v); err != nil {
		return err
	}
	e.Destinations[i] = d
	return nil
}

func checkIndex(what string, i, n int) error {
	if i < 0 || i >= n {
		if n == 0 {
			return fmt.Errorf("%w: %s %d (no %ss)", ErrIndexOutOfRange, what, i, what)
		}
		return fmt.Errorf("%w: %s %d (valid 0-%d)", ErrIndexOutOfRange, what, i, n-1)
	}
	return nil
}

var stepKeys = []string{
	"step", "type", "area", "path", "options",
	"autocrop", "autocrop_difference", "elements", "destinations",
}

func (s Step) MarshalJSON() ([]byte, error) {
	var w objectWriter
	w.field("step", s.Kind())
	switch b := s.Body.(type) {
	case *Capture:
		if err := b.writeJSON(&w); err != nil {
			return nil, err
		}
	case *Annotate:
		w.field("elements", nonNil(b.Elements))
	case *Export:
		w.field("destinations", nonNil(b.Destinations))
	default:
		return nil, fmt.Errorf("%w: step has no body", ErrInvalidState)
	}
	w.extra(s.Extra)
	return w.bytes()
}

func (s *Step) UnmarshalJSON(data []byte) error {
	r, err := readObject(data)
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}
	tag, err := r.discriminator("step")
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}
	kind, err := ParseStepKind(tag)
	if err != nil {
		return err
	}
	var out Step
	switch kind {
	case StepCapture:
		c, err := readCapture(r)
		if err != nil {
			return fmt.Errorf("capture step: %w", err)
		}
		out.Body = c
	case StepAnnotate:
		a := &Annotate{}
		if _, err := r.take("elements", &a.Elements); err != nil {
			return fmt.Errorf("annotate step: %w", err)
		}
		a.Elements = nonNil(a.Elements)
		out.Body = a
	case StepExport:
		e := &Export{}
		if _, err := r.take("destinations", &e.Destinations); err != nil {
			return fmt.Errorf("export step: %w", err)
		}
		e.Destinations = nonNil(e.Destinations)
		out.Body = e
	}
	r.drop(stepKeys...)
	if out.Extra, err = r.rest(); err != nil {
		return fmt.Errorf("%s step: %w", kind, err)
	}
	*s = out
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
