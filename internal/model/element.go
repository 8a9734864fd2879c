package model

import (
	"fmt"
	"strings"
)

// ElementType is the annotation element discriminator.
type ElementType string

const (
	ElementRectangle ElementType = "rectangle"
	ElementArrow     ElementType = "arrow"
	ElementText      ElementType = "text"
	ElementObfuscate ElementType = "obfuscate"
)

// ElementTypes lists the element types in menu order.
var ElementTypes = []ElementType{ElementRectangle, ElementArrow, ElementText, ElementObfuscate}

// DefaultTextContent is the content of a newly created text element.
const DefaultTextContent = "New Text"

// Shape is the variant part of an Element. Each implementation carries the
// geometry group of its type.
type Shape interface {
	Type() ElementType
	setGeometry(group, axis string, v int) error
	cloneShape() Shape
}

// Rectangle is an outlined (optionally filled) box.
type Rectangle struct {
	Bounds Rect
}

// Arrow is a line from From to To with a head at To.
type Arrow struct {
	From Point
	To   Point
}

// Text is a text label anchored at Position.
type Text struct {
	Position Point
	Content  string
}

// Obfuscate blurs or pixelates the area inside Bounds.
type Obfuscate struct {
	Bounds Rect
}

func (*Rectangle) Type() ElementType { return ElementRectangle }
func (*Arrow) Type() ElementType     { return ElementArrow }
func (*Text) Type() ElementType      { return ElementText }
func (*Obfuscate) Type() ElementType { return ElementObfuscate }

func (r *Rectangle) cloneShape() Shape { c := *r; return &c }
func (a *Arrow) cloneShape() Shape     { c := *a; return &c }
func (t *Text) cloneShape() Shape      { c := *t; return &c }
func (o *Obfuscate) cloneShape() Shape { c := *o; return &c }

func (r *Rectangle) setGeometry(group, axis string, v int) error {
	return setBounds(&r.Bounds, ElementRectangle, group, axis, v)
}

func (o *Obfuscate) setGeometry(group, axis string, v int) error {
	return setBounds(&o.Bounds, ElementObfuscate, group, axis, v)
}

func (a *Arrow) setGeometry(group, axis string, v int) error {
	switch group {
	case "from":
		return a.From.set(axis, v)
	case "to":
		return a.To.set(axis, v)
	case "":
		return fmt.Errorf("%w: arrow geometry needs from.%s or to.%s", ErrInvalidField, axis, axis)
	default:
		return fmt.Errorf("%w: arrow has no %q geometry", ErrInvalidField, group)
	}
}

func (t *Text) setGeometry(group, axis string, v int) error {
	if group != "" && group != "position" {
		return fmt.Errorf("%w: text has no %q geometry", ErrInvalidField, group)
	}
	return t.Position.set(axis, v)
}

func setBounds(r *Rect, t ElementType, group, axis string, v int) error {
	if group != "" && group != "bounds" {
		return fmt.Errorf("%w: %s has no %q geometry", ErrInvalidField, t, group)
	}
	return r.set(axis, v)
}

// Element is one annotation primitive. Style is always present, possibly
// empty.
type Element struct {
	Shape Shape
	Style Style
	Extra Extra
}

// ParseElementType validates an element discriminator.
func ParseElementType(s string) (ElementType, error) {
	t := ElementType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ElementTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown element type %q (expected rectangle, arrow, text, or obfuscate)", ErrInvalidVariant, s)
}

// NewElement creates an element with the default shape and style of t.
func NewElement(t ElementType) (Element, error) {
	t, err := ParseElementType(string(t))
	if err != nil {
		return Element{}, err
	}
	shape, err := defaultShape(t)
	if err != nil {
		return Element{}, err
	}
	el := Element{Shape: shape}
	if t == ElementObfuscate {
		blur := DefaultBlurRadius
		el.Style.BlurRadius = &blur
	}
	return el, nil
}

func defaultShape(t ElementType) (Shape, error) {
	switch t {
	case ElementRectangle:
		return &Rectangle{Bounds: Rect{X: 100, Y: 100, W: 200, H: 150}}, nil
	case ElementArrow:
		return &Arrow{From: Point{X: 100, Y: 100}, To: Point{X: 200, Y: 200}}, nil
	case ElementText:
		return &Text{Position: Point{X: 100, Y: 100}, Content: DefaultTextContent}, nil
	case ElementObfuscate:
		return &Obfuscate{Bounds: Rect{X: 100, Y: 100, W: 200, H: 150}}, nil
	default:
		return nil, fmt.Errorf("%w: unknown element type %q", ErrInvalidVariant, t)
	}
}

// Type returns the element discriminator.
func (e Element) Type() ElementType {
	if e.Shape == nil {
		return ""
	}
	return e.Shape.Type()
}

// Clone returns a deep copy.
func (e Element) Clone() Element {
	out := Element{Style: e.Style.Clone(), Extra: e.Extra.clone()}
	if e.Shape != nil {
		out.Shape = e.Shape.cloneShape()
	}
	return out
}

// SetGeometry sets one coordinate. key is "group.axis" (bounds.w, from.x,
// to.y, position.x); a bare axis addresses bounds or position.
func (e *Element) SetGeometry(key string, v int) error {
	if e.Shape == nil {
		return fmt.Errorf("%w: element has no shape", ErrInvalidState)
	}
	group, axis := splitGeometryKey(key)
	return e.Shape.setGeometry(group, axis, v)
}

// SetContent sets the text of a text element.
func (e *Element) SetContent(text string) error {
	t, ok := e.Shape.(*Text)
	if !ok {
		return fmt.Errorf("%w: content applies to text elements, not %s", ErrInvalidField, e.Type())
	}
	t.Content = text
	return nil
}

// SetStyle merges one style key.
func (e *Element) SetStyle(key string, v any) error {
	return e.Style.Set(key, v)
}

var elementKeys = []string{"type", "bounds", "from", "to", "position", "content", "style"}

func (e Element) MarshalJSON() ([]byte, error) {
	var w objectWriter
	w.field("type", e.Type())
	switch s := e.Shape.(type) {
	case *Rectangle:
		w.field("bounds", s.Bounds)
	case *Arrow:
		w.field("from", s.From)
		w.field("to", s.To)
	case *Text:
		w.field("position", s.Position)
		w.field("content", s.Content)
	case *Obfuscate:
		w.field("bounds", s.Bounds)
	default:
		return nil, fmt.Errorf("%w: element has no shape", ErrInvalidState)
	}
	w.field("style", e.Style)
	w.extra(e.Extra)
	return w.bytes()
}

func (e *Element) UnmarshalJSON(data []byte) error {
	r, err := readObject(data)
	if err != nil {
		return fmt.Errorf("element: %w", err)
	}
	tag, err := r.discriminator("type")
	if err != nil {
		return fmt.Errorf("element: %w", err)
	}
	t, err := ParseElementType(tag)
	if err != nil {
		return err
	}
	shape, _ := defaultShape(t)
	switch s := shape.(type) {
	case *Rectangle:
		_, err = r.take("bounds", &s.Bounds)
	case *Obfuscate:
		_, err = r.take("bounds", &s.Bounds)
	case *Arrow:
		if _, err = r.take("from", &s.From); err == nil {
			_, err = r.take("to", &s.To)
		}
	case *Text:
		if _, err = r.take("position", &s.Position); err == nil {
			_, err = r.take("content", &s.Content)
		}
	}
	if err != nil {
		return fmt.Errorf("%s element: %w", t, err)
	}
	out := Element{Shape: shape}
	if _, err := r.take("style", &out.Style); err != nil {
		return fmt.Errorf("%s element: %w", t, err)
	}
	r.drop(elementKeys...)
	if out.Extra, err = r.rest(); err != nil {
		return fmt.Errorf("%s element: %w", t, err)
	}
	*e = out
	return nil
}
