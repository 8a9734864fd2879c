package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewElement_Defaults(t *testing.T) {
	tests := []struct {
		typ  ElementType
		want string
	}{
		{ElementRectangle, `{"type":"rectangle","bounds":{"x":100,"y":100,"w":200,"h":150},"style":{}}`},
		{ElementArrow, `{"type":"arrow","from":{"x":100,"y":100},"to":{"x":200,"y":200},"style":{}}`},
		{ElementText, `{"type":"text","position":{"x":100,"y":100},"content":"New Text","style":{}}`},
		{ElementObfuscate, `{"type":"obfuscate","bounds":{"x":100,"y":100,"w":200,"h":150},"style":{"blur_radius":5}}`},
	}
	for _, tt := range tests {
		el, err := NewElement(tt.typ)
		if err != nil {
			t.Fatalf("NewElement(%s): %v", tt.typ, err)
		}
		data, err := json.Marshal(el)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != tt.want {
			t.Errorf("NewElement(%s): got %s, want %s", tt.typ, data, tt.want)
		}
	}
}

func TestNewElement_UnknownType(t *testing.T) {
	_, err := NewElement("circle")
	if !errors.Is(err, ErrInvalidVariant) {
		t.Errorf("got %v, want ErrInvalidVariant", err)
	}
	if _, err := ParseElementType(" Arrow "); err != nil {
		t.Errorf("ParseElementType should normalize case: %v", err)
	}
}

func TestElement_SetGeometry(t *testing.T) {
	rect, _ := NewElement(ElementRectangle)
	if err := rect.SetGeometry("bounds.w", 640); err != nil {
		t.Fatal(err)
	}
	if err := rect.SetGeometry("h", 480); err != nil {
		t.Fatal(err)
	}
	if got := rect.Shape.(*Rectangle).Bounds; got != (Rect{X: 100, Y: 100, W: 640, H: 480}) {
		t.Errorf("bounds: got %+v", got)
	}

	arrow, _ := NewElement(ElementArrow)
	if err := arrow.SetGeometry("to.x", 5); err != nil {
		t.Fatal(err)
	}
	if got := arrow.Shape.(*Arrow).To.X; got != 5 {
		t.Errorf("to.x: got %d, want 5", got)
	}
	for _, key := range []string{"bounds.x", "x", "position.y", "from.w"} {
		if err := arrow.SetGeometry(key, 1); !errors.Is(err, ErrInvalidField) {
			t.Errorf("arrow SetGeometry(%q): got %v, want ErrInvalidField", key, err)
		}
	}

	text, _ := NewElement(ElementText)
	if err := text.SetGeometry("position.x", 7); err != nil {
		t.Fatal(err)
	}
	if err := text.SetGeometry("bounds.w", 7); !errors.Is(err, ErrInvalidField) {
		t.Errorf("text bounds: got %v, want ErrInvalidField", err)
	}
}

func TestElement_SetContent(t *testing.T) {
	text, _ := NewElement(ElementText)
	if err := text.SetContent("Step 1"); err != nil {
		t.Fatal(err)
	}
	if got := text.Shape.(*Text).Content; got != "Step 1" {
		t.Errorf("content: got %q, want %q", got, "Step 1")
	}

	rect, _ := NewElement(ElementRectangle)
	if err := rect.SetContent("nope"); !errors.Is(err, ErrInvalidField) {
		t.Errorf("rectangle content: got %v, want ErrInvalidField", err)
	}
}

func TestElement_SetStyle(t *testing.T) {
	el, _ := NewElement(ElementArrow)
	if err := el.SetStyle("line_color", "#00FF00"); err != nil {
		t.Fatal(err)
	}
	if err := el.SetStyle("line_thickness", 2.0); err != nil {
		t.Fatal(err)
	}
	// Keys for other variants are tolerated.
	if err := el.SetStyle("pixel_size", "8"); err != nil {
		t.Fatal(err)
	}
	if err := el.SetStyle("glow", true); !errors.Is(err, ErrInvalidField) {
		t.Errorf("unknown key: got %v, want ErrInvalidField", err)
	}
	if err := el.SetStyle("line_thickness", -1); !errors.Is(err, ErrValidation) {
		t.Errorf("negative thickness: got %v, want ErrValidation", err)
	}
	if err := el.SetStyle("shadow", "maybe"); !errors.Is(err, ErrValidation) {
		t.Errorf("bad bool: got %v, want ErrValidation", err)
	}
	data, _ := json.Marshal(el.Style)
	want := `{"line_color":"#00FF00","line_thickness":2,"pixel_size":8}`
	if string(data) != want {
		t.Errorf("style: got %s, want %s", data, want)
	}
}

func TestElement_UnmarshalFillsDefaults(t *testing.T) {
	var el Element
	if err := json.Unmarshal([]byte(`{"type":"arrow","to":{"x":5,"y":6}}`), &el); err != nil {
		t.Fatal(err)
	}
	a := el.Shape.(*Arrow)
	if a.From != (Point{X: 100, Y: 100}) {
		t.Errorf("from: got %+v, want default", a.From)
	}
	if a.To != (Point{X: 5, Y: 6}) {
		t.Errorf("to: got %+v", a.To)
	}
	if !el.Style.IsEmpty() {
		t.Errorf("style should be empty, got %+v", el.Style)
	}
}

func TestElement_UnknownKeysPreserved(t *testing.T) {
	in := `{"type":"text","position":{"x":1,"y":2},"content":"hi","style":{"font_size":20,"font":"Arial"},"z_order":3}`
	var el Element
	if err := json.Unmarshal([]byte(in), &el); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(el)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != in {
		t.Errorf("round trip:\n got %s\nwant %s", data, in)
	}
}

func TestElement_InapplicableKeysDropped(t *testing.T) {
	var el Element
	if err := json.Unmarshal([]byte(`{"type":"rectangle","from":{"x":1,"y":1},"content":"x"}`), &el); err != nil {
		t.Fatal(err)
	}
	if len(el.Extra) != 0 {
		t.Errorf("extra: got %v, want none", el.Extra)
	}
}

func TestElement_CloneDoesNotAlias(t *testing.T) {
	el, _ := NewElement(ElementObfuscate)
	c := el.Clone()
	if err := c.SetGeometry("bounds.x", 1); err != nil {
		t.Fatal(err)
	}
	if err := c.SetStyle("blur_radius", 9); err != nil {
		t.Fatal(err)
	}
	if el.Shape.(*Obfuscate).Bounds.X != 100 || *el.Style.BlurRadius != 5 {
		t.Error("mutating the clone changed the original")
	}
}

func TestStyle_Effective(t *testing.T) {
	var s Style
	e := s.Effective()
	if e.LineColor != DefaultLineColor || e.FillColor != DefaultFillColor || e.LineThickness != 3 || e.FontSize != 12 {
		t.Errorf("defaults: got %+v", e)
	}
	if e.HasBlur || e.HasPixelSize {
		t.Error("HasBlur/HasPixelSize should be false for an empty style")
	}
	_ = s.Set("pixel_size", 8)
	if e := s.Effective(); !e.HasPixelSize || e.PixelSize != 8 {
		t.Errorf("pixel_size: got %+v", e)
	}
}
