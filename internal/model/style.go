package model

import (
	"fmt"
	"strings"
)

// StyleKey names a style property.
type StyleKey string

const (
	StyleLineColor     StyleKey = "line_color"
	StyleFillColor     StyleKey = "fill_color"
	StyleLineThickness StyleKey = "line_thickness"
	StyleShadow        StyleKey = "shadow"
	StyleFontSize      StyleKey = "font_size"
	StyleBlurRadius    StyleKey = "blur_radius"
	StylePixelSize     StyleKey = "pixel_size"
)

// StyleKeys lists the known style keys in serialization order.
var StyleKeys = []StyleKey{
	StyleLineColor,
	StyleFillColor,
	StyleLineThickness,
	StyleShadow,
	StyleFontSize,
	StyleBlurRadius,
	StylePixelSize,
}

// Style defaults applied when a key is absent.
const (
	DefaultLineColor     = "#FF0000"
	DefaultFillColor     = "transparent"
	DefaultLineThickness = 3
	DefaultFontSize      = 12.0
	DefaultBlurRadius    = 5
	DefaultPixelSize     = 5
)

// Style is an element's optional style. Nil fields are absent from the
// document and resolve to their defaults. Every key is accepted on every
// element type; renderers only honor the ones that apply.
type Style struct {
	LineColor     *string
	FillColor     *string
	LineThickness *int
	Shadow        *bool
	FontSize      *float64
	BlurRadius    *int
	PixelSize     *int
	Extra         Extra
}

// EffectiveStyle is a Style with every default resolved.
type EffectiveStyle struct {
	LineColor     string
	FillColor     string
	LineThickness int
	Shadow        bool
	FontSize      float64
	BlurRadius    int
	PixelSize     int

	// HasBlur and HasPixelSize report whether the keys were set explicitly.
	HasBlur      bool
	HasPixelSize bool
}

// Effective resolves defaults for absent keys.
func (s Style) Effective() EffectiveStyle {
	e := EffectiveStyle{
		LineColor:     DefaultLineColor,
		FillColor:     DefaultFillColor,
		LineThickness: DefaultLineThickness,
		FontSize:      DefaultFontSize,
		BlurRadius:    DefaultBlurRadius,
		PixelSize:     DefaultPixelSize,
	}
	if s.LineColor != nil {
		e.LineColor = *s.LineColor
	}
	if s.FillColor != nil {
		e.FillColor = *s.FillColor
	}
	if s.LineThickness != nil {
		e.LineThickness = *s.LineThickness
	}
	if s.Shadow != nil {
		e.Shadow = *s.Shadow
	}
	if s.FontSize != nil {
		e.FontSize = *s.FontSize
	}
	if s.BlurRadius != nil {
		e.BlurRadius = *s.BlurRadius
		e.HasBlur = true
	}
	if s.PixelSize != nil {
		e.PixelSize = *s.PixelSize
		e.HasPixelSize = true
	}
	return e
}

// IsEmpty reports whether no key is set.
func (s Style) IsEmpty() bool {
	return s.LineColor == nil && s.FillColor == nil && s.LineThickness == nil &&
		s.Shadow == nil && s.FontSize == nil && s.BlurRadius == nil &&
		s.PixelSize == nil && len(s.Extra) == 0
}

// Clone returns a deep copy.
func (s Style) Clone() Style {
	return Style{
		LineColor:     clonePtr(s.LineColor),
		FillColor:     clonePtr(s.FillColor),
		LineThickness: clonePtr(s.LineThickness),
		Shadow:        clonePtr(s.Shadow),
		FontSize:      clonePtr(s.FontSize),
		BlurRadius:    clonePtr(s.BlurRadius),
		PixelSize:     clonePtr(s.PixelSize),
		Extra:         s.Extra.clone(),
	}
}

// Set merges one key into the style. Unknown keys are rejected with
// ErrInvalidField; values of the wrong type with ErrValidation.
func (s *Style) Set(key string, v any) error {
	switch StyleKey(strings.ToLower(strings.TrimSpace(key))) {
	case StyleLineColor:
		c, err := toColor(v)
		if err != nil {
			return err
		}
		s.LineColor = &c
	case StyleFillColor:
		c, err := toColor(v)
		if err != nil {
			return err
		}
		s.FillColor = &c
	case StyleLineThickness:
		n, err := toNonNegative(StyleLineThickness, v)
		if err != nil {
			return err
		}
		s.LineThickness = &n
	case StyleShadow:
		b, err := toBool(v)
		if err != nil {
			return err
		}
		s.Shadow = &b
	case StyleFontSize:
		f, err := toFloat(v)
		if err != nil {
			return err
		}
		if f <= 0 {
			return fmt.Errorf("%w: font_size must be > 0, got %v", ErrValidation, f)
		}
		s.FontSize = &f
	case StyleBlurRadius:
		n, err := toNonNegative(StyleBlurRadius, v)
		if err != nil {
			return err
		}
		s.BlurRadius = &n
	case StylePixelSize:
		n, err := toNonNegative(StylePixelSize, v)
		if err != nil {
			return err
		}
		s.PixelSize = &n
	default:
		return fmt.Errorf("%w: unknown style key %q", ErrInvalidField, key)
	}
	return nil
}

// Get returns the explicit value of a known key.
func (s Style) Get(key StyleKey) (any, bool) {
	switch key {
	case StyleLineColor:
		return deref(s.LineColor)
	case StyleFillColor:
		return deref(s.FillColor)
	case StyleLineThickness:
		return deref(s.LineThickness)
	case StyleShadow:
		return deref(s.Shadow)
	case StyleFontSize:
		return deref(s.FontSize)
	case StyleBlurRadius:
		return deref(s.BlurRadius)
	case StylePixelSize:
		return deref(s.PixelSize)
	}
	return nil, false
}

func (s Style) MarshalJSON() ([]byte, error) {
	var w objectWriter
	for _, k := range StyleKeys {
		if v, ok := s.Get(k); ok {
			w.field(string(k), v)
		}
	}
	w.extra(s.Extra)
	return w.bytes()
}

func (s *Style) UnmarshalJSON(data []byte) error {
	r, err := readObject(data)
	if err != nil {
		return err
	}
	var out Style
	targets := []struct {
		key StyleKey
		dst any
	}{
		{StyleLineColor, &out.LineColor},
		{StyleFillColor, &out.FillColor},
		{StyleLineThickness, &out.LineThickness},
		{StyleShadow, &out.Shadow},
		{StyleFontSize, &out.FontSize},
		{StyleBlurRadius, &out.BlurRadius},
		{StylePixelSize, &out.PixelSize},
	}
	for _, t := range targets {
		if _, err := r.take(string(t.key), t.dst); err != nil {
			return fmt.Errorf("style: %w", err)
		}
	}
	if out.Extra, err = r.rest(); err != nil {
		return fmt.Errorf("style: %w", err)
	}
	*s = out
	return nil
}

func toColor(v any) (string, error) {
	c, err := toString(v)
	if err != nil {
		return "", err
	}
	c = strings.TrimSpace(c)
	if c == "" {
		return "", fmt.Errorf("%w: color must not be empty", ErrValidation)
	}
	return c, nil
}

func toNonNegative(key StyleKey, v any) (int, error) {
	n, err := toInt(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must be >= 0, got %d", ErrValidation, key, n)
	}
	return n, nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func deref[T any](p *T) (any, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}
