package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ChangeType is the kind of difference between two documents.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// Change is one difference between two documents. Before and After hold the
// serialized entity (children excluded for steps).
type Change struct {
	Type   ChangeType  `yaml:"type"             json:"type"`
	Path   string      `yaml:"path"             json:"path"`
	Kind   OutlineKind `yaml:"kind"             json:"kind"`
	Label  string      `yaml:"label"            json:"label"`
	Before string      `yaml:"before,omitempty" json:"before,omitempty"`
	After  string      `yaml:"after,omitempty"  json:"after,omitempty"`
}

type diffEntry struct {
	OutlineEntry
	content string
}

// Diff compares two documents entry by entry. Entries are matched by their
// outline path, so a moved step shows up as changes at both positions.
func Diff(prev, curr *Document) ([]Change, error) {
	prevEntries, err := diffEntries(prev)
	if err != nil {
		return nil, err
	}
	currEntries, err := diffEntries(curr)
	if err != nil {
		return nil, err
	}
	prevMap := make(map[string]diffEntry, len(prevEntries))
	for _, e := range prevEntries {
		prevMap[e.Path] = e
	}
	currMap := make(map[string]diffEntry, len(currEntries))
	for _, e := range currEntries {
		currMap[e.Path] = e
	}

	var changes []Change
	for _, e := range currEntries {
		p, existed := prevMap[e.Path]
		if !existed {
			changes = append(changes, Change{Type: ChangeAdded, Path: e.Path, Kind: e.Kind, Label: e.Label, After: e.content})
			continue
		}
		if p.content != e.content {
			changes = append(changes, Change{Type: ChangeChanged, Path: e.Path, Kind: e.Kind, Label: e.Label, Before: p.content, After: e.content})
		}
	}
	for _, e := range prevEntries {
		if _, exists := currMap[e.Path]; !exists {
			changes = append(changes, Change{Type: ChangeRemoved, Path: e.Path, Kind: e.Kind, Label: e.Label, Before: e.content})
		}
	}
	return changes, nil
}

func diffEntries(d *Document) ([]diffEntry, error) {
	outline := Outline(d)
	entries := make([]diffEntry, 0, len(outline))
	for _, o := range outline {
		var v any
		s := d.Workflow[o.Step]
		switch o.Kind {
		case OutlineStep:
			v = stepHeader(s)
		case OutlineElement:
			v = s.Body.(*Annotate).Elements[o.Index]
		case OutlineDestination:
			v = s.Body.(*Export).Destinations[o.Index]
		}
		content, err := compactJSON(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o.Path, err)
		}
		entries = append(entries, diffEntry{OutlineEntry: o, content: content})
	}
	return entries, nil
}

// stepHeader is the step without its elements or destinations, which are
// compared as separate entries.
func stepHeader(s Step) Step {
	switch s.Body.(type) {
	case *Annotate:
		return Step{Body: &Annotate{}, Extra: s.Extra}
	case *Export:
		return Step{Body: &Export{}, Extra: s.Extra}
	}
	return s
}

func compactJSON(v any) (string, error) {
	raw, err := encodeJSON(v)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return buf.String(), nil
}
