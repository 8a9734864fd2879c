package model

import (
	"fmt"
	"strings"
)

// FilterOutline keeps entries of the given kinds whose label or detail
// contains text (case-insensitive). An empty kinds list or text disables
// that filter. A step is kept when one of its elements or destinations
// matches, so results still read as a tree.
func FilterOutline(entries []OutlineEntry, kinds []OutlineKind, text string) []OutlineEntry {
	if len(kinds) == 0 && text == "" {
		return entries
	}

	kindSet := make(map[OutlineKind]bool, len(kinds))
	for _, k := range kinds {
		kindSet[k] = true
	}
	textLower := strings.ToLower(text)

	matched := make([]bool, len(entries))
	childMatched := make(map[int]bool)
	for i, e := range entries {
		kindMatch := len(kindSet) == 0 || kindSet[e.Kind]
		matched[i] = kindMatch && textMatchesEntry(e, textLower)
		if matched[i] && e.Kind != OutlineStep {
			childMatched[e.Step] = true
		}
	}

	result := []OutlineEntry{}
	for i, e := range entries {
		parent := e.Kind == OutlineStep && childMatched[e.Step] &&
			(len(kindSet) == 0 || kindSet[OutlineStep])
		if matched[i] || parent {
			result = append(result, e)
		}
	}
	return result
}

func textMatchesEntry(e OutlineEntry, textLower string) bool {
	return strings.Contains(strings.ToLower(e.Label), textLower) ||
		strings.Contains(strings.ToLower(e.Detail), textLower)
}

// ParseOutlineKind validates an outline kind name.
func ParseOutlineKind(s string) (OutlineKind, error) {
	switch k := OutlineKind(strings.ToLower(strings.TrimSpace(s))); k {
	case OutlineStep, OutlineElement, OutlineDestination:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown outline kind %q (expected step, element, or destination)", ErrInvalidVariant, s)
}
