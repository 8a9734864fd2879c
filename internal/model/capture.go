package model

import (
	"fmt"
	"strings"
)

// CaptureType selects where a capture step takes its image from.
type CaptureType string

const (
	CaptureFullscreen CaptureType = "fullscreen"
	CaptureRegion     CaptureType = "region"
	CaptureFile       CaptureType = "file"
)

// CaptureTypes lists the capture types in menu order.
var CaptureTypes = []CaptureType{CaptureFullscreen, CaptureRegion, CaptureFile}

// Autocrop limits.
const (
	DefaultAutocropDifference = 10
	MaxAutocropDifference     = 255
)

// CaptureSource is the variant part of a Capture.
type CaptureSource interface {
	Type() CaptureType
	cloneSource() CaptureSource
}

// Fullscreen captures the whole screen.
type Fullscreen struct{}

// Region captures a fixed screen area.
type Region struct {
	Area Area
}

// FileSource loads the image from disk.
type FileSource struct {
	Path string
}

func (Fullscreen) Type() CaptureType  { return CaptureFullscreen }
func (*Region) Type() CaptureType     { return CaptureRegion }
func (*FileSource) Type() CaptureType { return CaptureFile }

func (f Fullscreen) cloneSource() CaptureSource  { return f }
func (r *Region) cloneSource() CaptureSource     { c := *r; return &c }
func (f *FileSource) cloneSource() CaptureSource { c := *f; return &c }

// Autocrop trims uniform borders. Difference is the color tolerance and is
// only meaningful (and only written) when Enabled is true.
type Autocrop struct {
	Enabled    bool
	Difference int
}

// CaptureOptions are passed through to the capture engine.
type CaptureOptions struct {
	ShowCursor bool `json:"show_cursor"`
	DelayMs    int  `json:"delay_ms"`
}

// Capture is the body of a capture step. Autocrop and Options are nil when
// the document does not mention them.
type Capture struct {
	Source   CaptureSource
	Autocrop *Autocrop
	Options  *CaptureOptions
}

func (*Capture) Kind() StepKind { return StepCapture }

func (c *Capture) cloneBody() StepBody {
	out := &Capture{Autocrop: clonePtr(c.Autocrop), Options: clonePtr(c.Options)}
	if c.Source != nil {
		out.Source = c.Source.cloneSource()
	}
	return out
}

// ParseCaptureType validates a capture discriminator.
func ParseCaptureType(s string) (CaptureType, error) {
	t := CaptureType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range CaptureTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown capture type %q (expected fullscreen, region, or file)", ErrInvalidVariant, s)
}

func defaultSource(t CaptureType) (CaptureSource, error) {
	switch t {
	case CaptureFullscreen:
		return Fullscreen{}, nil
	case CaptureRegion:
		return &Region{Area: DefaultArea}, nil
	case CaptureFile:
		return &FileSource{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown capture type %q", ErrInvalidVariant, t)
	}
}

// Type returns the capture discriminator.
func (c *Capture) Type() CaptureType {
	if c.Source == nil {
		return ""
	}
	return c.Source.Type()
}

// SetType switches the capture source. The new source always starts from
// its defaults; switching to the current type does nothing.
func (c *Capture) SetType(t CaptureType) error {
	t, err := ParseCaptureType(string(t))
	if err != nil {
		return err
	}
	if c.Type() == t {
		return nil
	}
	src, err := defaultSource(t)
	if err != nil {
		return err
	}
	c.Source = src
	return nil
}

// Area returns the capture area of a region capture.
func (c *Capture) Area() (Area, bool) {
	r, ok := c.Source.(*Region)
	if !ok {
		return Area{}, false
	}
	return r.Area, true
}

// SetAreaField sets X, Y, Width or Height (case-insensitive).
func (c *Capture) SetAreaField(key string, v int) error {
	r, ok := c.Source.(*Region)
	if !ok {
		return fmt.Errorf("%w: area applies to region captures, not %s", ErrInvalidField, c.Type())
	}
	area := r.Area
	if err := area.set(key, v); err != nil {
		return err
	}
	r.Area = area
	return nil
}

// SetPath sets the source path of a file capture.
func (c *Capture) SetPath(path string) error {
	f, ok := c.Source.(*FileSource)
	if !ok {
		return fmt.Errorf("%w: path applies to file captures, not %s", ErrInvalidField, c.Type())
	}
	f.Path = path
	return nil
}

// SetAutocrop toggles autocrop. Enabling keeps an existing difference and
// otherwise starts at DefaultAutocropDifference; disabling drops it.
func (c *Capture) SetAutocrop(enabled bool) {
	if !enabled {
		c.Autocrop = &Autocrop{}
		return
	}
	if c.Autocrop != nil && c.Autocrop.Enabled {
		return
	}
	c.Autocrop = &Autocrop{Enabled: true, Difference: DefaultAutocropDifference}
}

// SetAutocropDifference sets the autocrop tolerance.
func (c *Capture) SetAutocropDifference(v int) error {
	if c.Autocrop == nil || !c.Autocrop.Enabled {
		return fmt.Errorf("%w: autocrop_difference requires autocrop to be enabled", ErrInvalidState)
	}
	if err := checkAutocropDifference(v); err != nil {
		return err
	}
	c.Autocrop.Difference = v
	return nil
}

func checkAutocropDifference(v int) error {
	if v < 0 || v > MaxAutocropDifference {
		return fmt.Errorf("%w: autocrop_difference must be 0-%d, got %d", ErrValidation, MaxAutocropDifference, v)
	}
	return nil
}

// SetOption sets show_cursor (bool) or delay_ms (int >= 0).
func (c *Capture) SetOption(key string, v any) error {
	opts := CaptureOptions{}
	if c.Options != nil {
		opts = *c.Options
	}
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "show_cursor":
		b, err := toBool(v)
		if err != nil {
			return err
		}
		opts.ShowCursor = b
	case "delay_ms":
		n, err := toInt(v)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: delay_ms must be >= 0, got %d", ErrValidation, n)
		}
		opts.DelayMs = n
	default:
		return fmt.Errorf("%w: unknown capture option %q (expected show_cursor or delay_ms)", ErrInvalidField, key)
	}
	c.Options = &opts
	return nil
}

func (c *Capture) writeJSON(w *objectWriter) error {
	switch s := c.Source.(type) {
	case Fullscreen:
		w.field("type", CaptureFullscreen)
	case *Region:
		w.field("type", CaptureRegion)
		w.field("area", s.Area)
	case *FileSource:
		w.field("type", CaptureFile)
		w.field("path", s.Path)
	default:
		return fmt.Errorf("%w: capture has no source", ErrInvalidState)
	}
	if c.Options != nil {
		w.field("options", c.Options)
	}
	if c.Autocrop != nil {
		w.field("autocrop", c.Autocrop.Enabled)
		if c.Autocrop.Enabled {
			w.field("autocrop_difference", c.Autocrop.Difference)
		}
	}
	return nil
}

func readCapture(r *objectReader) (*Capture, error) {
	t := CaptureFullscreen
	var tag string
	ok, err := r.take("type", &tag)
	if err != nil {
		return nil, err
	}
	if ok && tag != "" {
		if t, err = ParseCaptureType(tag); err != nil {
			return nil, err
		}
	}
	src, _ := defaultSource(t)
	switch s := src.(type) {
	case *Region:
		_, err = r.take("area", &s.Area)
	case *FileSource:
		_, err = r.take("path", &s.Path)
	}
	if err != nil {
		return nil, err
	}
	c := &Capture{Source: src}
	if _, err := r.take("options", &c.Options); err != nil {
		return nil, err
	}
	var enabled *bool
	if _, err := r.take("autocrop", &enabled); err != nil {
		return nil, err
	}
	var diff *int
	if _, err := r.take("autocrop_difference", &diff); err != nil {
		return nil, err
	}
	if enabled != nil {
		c.Autocrop = &Autocrop{Enabled: *enabled}
		if *enabled {
			c.Autocrop.Difference = DefaultAutocropDifference
			if diff != nil {
				if err := checkAutocropDifference(*diff); err != nil {
					return nil, err
				}
				c.Autocrop.Difference = *diff
			}
		}
	}
	return c, nil
}
