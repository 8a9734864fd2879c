package render

import (
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.RGBA{
	"black":   {A: 255},
	"white":   {R: 255, G: 255, B: 255, A: 255},
	"red":     {R: 255, A: 255},
	"green":   {G: 128, A: 255},
	"lime":    {G: 255, A: 255},
	"blue":    {B: 255, A: 255},
	"yellow":  {R: 255, G: 255, A: 255},
	"orange":  {R: 255, G: 165, A: 255},
	"magenta": {R: 255, B: 255, A: 255},
	"cyan":    {G: 255, B: 255, A: 255},
	"gray":    {R: 128, G: 128, B: 128, A: 255},
}

// Fallback is used for colors that cannot be parsed.
var Fallback = color.RGBA{R: 255, A: 255}

// ParseColor reads "#RGB", "#RRGGBB", "#AARRGGBB", "transparent" or a basic
// color name. The result is non-premultiplied.
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" || s == "none" {
		return color.NRGBA{}, true
	}
	if c, ok := namedColors[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, true
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, false
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	switch len(hex) {
	case 6:
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
	case 8:
		return color.NRGBA{A: uint8(v >> 24), R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
	}
	return color.NRGBA{}, false
}

// colorOrFallback parses s, falling back to red like the capture engine.
func colorOrFallback(s string) color.NRGBA {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return color.NRGBA{R: Fallback.R, G: Fallback.G, B: Fallback.B, A: Fallback.A}
}
