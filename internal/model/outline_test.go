package model

import "testing"

func sampleDocument(t *testing.T) *Document {
	t.Helper()
	doc := New()
	c, _ := doc.AddStep(StepCapture)
	if err := doc.SetCaptureType(c, CaptureRegion); err != nil {
		t.Fatal(err)
	}
	a, _ := doc.AddStep(StepAnnotate)
	if _, err := doc.AddElement(a, ElementRectangle); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.AddElement(a, ElementText); err != nil {
		t.Fatal(err)
	}
	e, _ := doc.AddStep(StepExport)
	if _, err := doc.AddDestination(e, DestinationFile, "out.png"); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestOutline_Basic(t *testing.T) {
	entries := Outline(sampleDocument(t))
	want := []struct {
		path  string
		kind  OutlineKind
		label string
	}{
		{"workflow[0]", OutlineStep, "1. capture (region)"},
		{"workflow[1]", OutlineStep, "2. annotate"},
		{"workflow[1] > elements[0]", OutlineElement, "1. rectangle"},
		{"workflow[1] > elements[1]", OutlineElement, "2. text"},
		{"workflow[2]", OutlineStep, "3. export"},
		{"workflow[2] > destinations[0]", OutlineDestination, "1. file"},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, w := range want {
		if entries[i].Path != w.path {
			t.Errorf("entry %d path: got %q, want %q", i, entries[i].Path, w.path)
		}
		if entries[i].Kind != w.kind {
			t.Errorf("entry %d kind: got %q, want %q", i, entries[i].Kind, w.kind)
		}
		if entries[i].Label != w.label {
			t.Errorf("entry %d label: got %q, want %q", i, entries[i].Label, w.label)
		}
	}
	if entries[0].Detail != "area 0,0 800x600" {
		t.Errorf("capture detail: got %q", entries[0].Detail)
	}
	if entries[3].Detail != `100,100 "New Text"` {
		t.Errorf("text detail: got %q", entries[3].Detail)
	}
	if entries[5].Detail != "out.png" {
		t.Errorf("destination detail: got %q", entries[5].Detail)
	}
}

func TestOutline_Empty(t *testing.T) {
	if got := Outline(New()); len(got) != 0 {
		t.Errorf("expected empty outline, got %d entries", len(got))
	}
}

func TestDiff_NoChanges(t *testing.T) {
	doc := sampleDocument(t)
	changes, err := Diff(doc, doc.Clone())
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 0 {
		t.Errorf("expected 0 changes, got %d: %+v", len(changes), changes)
	}
}

func TestDiff_AddedChangedRemoved(t *testing.T) {
	prev := sampleDocument(t)
	curr := prev.Clone()
	if err := curr.SetElementContent(1, 1, "Done"); err != nil {
		t.Fatal(err)
	}
	if _, err := curr.AddDestination(2, DestinationClipboard, ""); err != nil {
		t.Fatal(err)
	}
	if err := curr.RemoveElement(1, 0); err != nil {
		t.Fatal(err)
	}

	changes, err := Diff(prev, curr)
	if err != nil {
		t.Fatal(err)
	}
	byPath := make(map[string]Change)
	for _, c := range changes {
		byPath[c.Path] = c
	}
	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %d: %+v", len(changes), changes)
	}
	// The text element moved to index 0, so index 0 changed and index 1 is gone.
	if c := byPath["workflow[1] > elements[0]"]; c.Type != ChangeChanged {
		t.Errorf("elements[0]: got %q, want changed", c.Type)
	}
	if c := byPath["workflow[1] > elements[1]"]; c.Type != ChangeRemoved || c.Before == "" {
		t.Errorf("elements[1]: got %+v, want removed with before", c)
	}
	if c := byPath["workflow[2] > destinations[1]"]; c.Type != ChangeAdded || c.After != `{"type":"clipboard"}` {
		t.Errorf("destinations[1]: got %+v", c)
	}
}

func TestDiff_StepHeaderIgnoresChildren(t *testing.T) {
	prev := sampleDocument(t)
	curr := prev.Clone()
	if _, err := curr.AddElement(1, ElementArrow); err != nil {
		t.Fatal(err)
	}
	changes, err := Diff(prev, curr)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 || changes[0].Type != ChangeAdded || changes[0].Kind != OutlineElement {
		t.Errorf("expected one added element, got %+v", changes)
	}
}
