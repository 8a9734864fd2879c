package model

import "testing"

func labels(entries []OutlineEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestFilterOutline_NoFilters(t *testing.T) {
	entries := Outline(sampleDocument(t))
	if got := FilterOutline(entries, nil, ""); len(got) != len(entries) {
		t.Errorf("expected all %d entries, got %d", len(entries), len(got))
	}
}

func TestFilterOutline_ByKind(t *testing.T) {
	got := FilterOutline(Outline(sampleDocument(t)), []OutlineKind{OutlineElement}, "")
	paths := labels(got)
	want := []string{"workflow[1] > elements[0]", "workflow[1] > elements[1]"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], paths[i])
		}
	}
}

func TestFilterOutline_TextKeepsParentStep(t *testing.T) {
	got := FilterOutline(Outline(sampleDocument(t)), nil, "NEW TEXT")
	paths := labels(got)
	want := []string{"workflow[1]", "workflow[1] > elements[1]"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], paths[i])
		}
	}
}

func TestFilterOutline_TextAndKind(t *testing.T) {
	got := FilterOutline(Outline(sampleDocument(t)), []OutlineKind{OutlineDestination}, "out.png")
	if len(got) != 1 || got[0].Path != "workflow[2] > destinations[0]" {
		t.Errorf("unexpected result: %v", labels(got))
	}
}

func TestFilterOutline_NoMatch(t *testing.T) {
	got := FilterOutline(Outline(sampleDocument(t)), nil, "nothing like this")
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %v", got)
	}
}

func TestParseOutlineKind(t *testing.T) {
	if k, err := ParseOutlineKind(" Element "); err != nil || k != OutlineElement {
		t.Errorf("expected element, got %q, %v", k, err)
	}
	if _, err := ParseOutlineKind("window"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
