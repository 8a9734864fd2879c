package model

import "fmt"

// OutlineKind tells what an outline entry refers to.
type OutlineKind string

const (
	OutlineStep        OutlineKind = "step"
	OutlineElement     OutlineKind = "element"
	OutlineDestination OutlineKind = "destination"
)

// OutlineEntry is one row of a flattened document listing.
type OutlineEntry struct {
	Path   string      `yaml:"path"             json:"path"`
	Kind   OutlineKind `yaml:"kind"             json:"kind"`
	Step   int         `yaml:"step"             json:"step"`
	Index  int         `yaml:"index"            json:"index"`
	Label  string      `yaml:"label"            json:"label"`
	Detail string      `yaml:"detail,omitempty" json:"detail,omitempty"`
}

// Outline flattens the document into steps followed by their elements or
// destinations, in execution order. Path is a breadcrumb such as
// "workflow[0] > elements[1]"; Label is the numbered list label.
func Outline(d *Document) []OutlineEntry {
	var result []OutlineEntry
	for i, s := range d.Workflow {
		stepPath := fmt.Sprintf("workflow[%d]", i)
		result = append(result, OutlineEntry{
			Path:   stepPath,
			Kind:   OutlineStep,
			Step:   i,
			Index:  i,
			Label:  stepLabel(i, s),
			Detail: stepDetail(s),
		})
		switch b := s.Body.(type) {
		case *Annotate:
			for j, el := range b.Elements {
				result = append(result, OutlineEntry{
					Path:   fmt.Sprintf("%s > elements[%d]", stepPath, j),
					Kind:   OutlineElement,
					Step:   i,
					Index:  j,
					Label:  fmt.Sprintf("%d. %s", j+1, el.Type()),
					Detail: elementDetail(el),
				})
			}
		case *Export:
			for j, dst := range b.Destinations {
				result = append(result, OutlineEntry{
					Path:   fmt.Sprintf("%s > destinations[%d]", stepPath, j),
					Kind:   OutlineDestination,
					Step:   i,
					Index:  j,
					Label:  fmt.Sprintf("%d. %s", j+1, dst.Type()),
					Detail: destinationDetail(dst),
				})
			}
		}
	}
	return result
}

func stepLabel(i int, s Step) string {
	if c, ok := s.Body.(*Capture); ok {
		return fmt.Sprintf("%d. %s (%s)", i+1, s.Kind(), c.Type())
	}
	return fmt.Sprintf("%d. %s", i+1, s.Kind())
}

func stepDetail(s Step) string {
	switch b := s.Body.(type) {
	case *Capture:
		detail := ""
		switch src := b.Source.(type) {
		case *Region:
			a := src.Area
			detail = fmt.Sprintf("area %d,%d %dx%d", a.X, a.Y, a.Width, a.Height)
		case *FileSource:
			detail = fmt.Sprintf("path %q", src.Path)
		}
		if b.Autocrop != nil && b.Autocrop.Enabled {
			if detail != "" {
				detail += ", "
			}
			detail += fmt.Sprintf("autocrop %d", b.Autocrop.Difference)
		}
		return detail
	case *Annotate:
		return fmt.Sprintf("%d elements", len(b.Elements))
	case *Export:
		return fmt.Sprintf("%d destinations", len(b.Destinations))
	}
	return ""
}

func elementDetail(el Element) string {
	switch s := el.Shape.(type) {
	case *Rectangle:
		return rectDetail(s.Bounds)
	case *Obfuscate:
		return rectDetail(s.Bounds)
	case *Arrow:
		return fmt.Sprintf("%d,%d -> %d,%d", s.From.X, s.From.Y, s.To.X, s.To.Y)
	case *Text:
		return fmt.Sprintf("%d,%d %q", s.Position.X, s.Position.Y, s.Content)
	}
	return ""
}

func rectDetail(r Rect) string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.W, r.H)
}

func destinationDetail(d Destination) string {
	if f, ok := d.Target.(*FileTarget); ok {
		return f.Path
	}
	return ""
}
