package model

import (
	"fmt"
	"strings"
)

// DestinationType is the export destination discriminator.
type DestinationType string

const (
	DestinationFile      DestinationType = "file"
	DestinationClipboard DestinationType = "clipboard"
)

// Target is the variant part of a Destination.
type Target interface {
	Type() DestinationType
	cloneTarget() Target
}

// FileTarget saves the image to Path. The external tool expands
// "{timestamp}" in the path at export time.
type FileTarget struct {
	Path      string
	Overwrite *bool
}

// ClipboardTarget copies the image to the clipboard.
type ClipboardTarget struct{}

func (*FileTarget) Type() DestinationType    { return DestinationFile }
func (ClipboardTarget) Type() DestinationType { return DestinationClipboard }

func (f *FileTarget) cloneTarget() Target {
	return &FileTarget{Path: f.Path, Overwrite: clonePtr(f.Overwrite)}
}

func (c ClipboardTarget) cloneTarget() Target { return c }

// Destination is one export target of an export step.
type Destination struct {
	Target Target
	Extra  Extra
}

// ParseDestinationType validates a destination discriminator.
func ParseDestinationType(s string) (DestinationType, error) {
	switch t := DestinationType(strings.ToLower(strings.TrimSpace(s))); t {
	case DestinationFile, DestinationClipboard:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown destination type %q (expected file or clipboard)", ErrInvalidVariant, s)
}

// NewDestination builds a destination. A file destination needs a
// non-empty path; a clipboard destination takes none.
func NewDestination(t DestinationType, path string) (Destination, error) {
	t, err := ParseDestinationType(string(t))
	if err != nil {
		return Destination{}, err
	}
	switch t {
	case DestinationFile:
		if strings.TrimSpace(path) == "" {
			return Destination{}, fmt.Errorf("%w: file destination requires a path", ErrValidation)
		}
		return Destination{Target: &FileTarget{Path: path}}, nil
	case DestinationClipboard:
		if path != "" {
			return Destination{}, fmt.Errorf("%w: clipboard destination takes no path", ErrInvalidField)
		}
		return Destination{Target: ClipboardTarget{}}, nil
	default:
		return Destination{}, fmt.Errorf("%w: unknown destination type %q", ErrInvalidVariant, t)
	}
}

// Type returns the destination discriminator.
func (d Destination) Type() DestinationType {
	if d.Target == nil {
		return ""
	}
	return d.Target.Type()
}

// Clone returns a deep copy.
func (d Destination) Clone() Destination {
	out := Destination{Extra: d.Extra.clone()}
	if d.Target != nil {
		out.Target = d.Target.cloneTarget()
	}
	return out
}

// SetOverwrite sets the overwrite flag of a file destination.
func (d *Destination) SetOverwrite(v bool) error {
	f, ok := d.Target.(*FileTarget)
	if !ok {
		return fmt.Errorf("%w: overwrite applies to file destinations, not %s", ErrInvalidField, d.Type())
	}
	f.Overwrite = &v
	return nil
}

func (d Destination) MarshalJSON() ([]byte, error) {
	var w objectWriter
	switch t := d.Target.(type) {
	case *FileTarget:
		w.field("type", DestinationFile)
		w.field("path", t.Path)
		if t.Overwrite != nil {
			w.field("overwrite", *t.Overwrite)
		}
	case ClipboardTarget:
		w.field("type", DestinationClipboard)
	default:
		return nil, fmt.Errorf("%w: destination has no target", ErrInvalidState)
	}
	w.extra(d.Extra)
	return w.bytes()
}

func (d *Destination) UnmarshalJSON(data []byte) error {
	r, err := readObject(data)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	tag, err := r.discriminator("type")
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	t, err := ParseDestinationType(tag)
	if err != nil {
		return err
	}
	var out Destination
	switch t {
	case DestinationFile:
		f := &FileTarget{}
		if _, err := r.take("path", &f.Path); err != nil {
			return fmt.Errorf("file destination: %w", err)
		}
		if _, err := r.take("overwrite", &f.Overwrite); err != nil {
			return fmt.Errorf("file destination: %w", err)
		}
		out.Target = f
	case DestinationClipboard:
		out.Target = ClipboardTarget{}
	}
	r.drop("path", "overwrite")
	if out.Extra, err = r.rest(); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	*d = out
	return nil
}
