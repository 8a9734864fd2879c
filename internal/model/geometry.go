package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a screen coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an element bounding box.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Area is the capture region. Its keys are capitalized in the exchange
// format; decoding matches them case-insensitively.
type Area struct {
	X      int `json:"X"`
	Y      int `json:"Y"`
	Width  int `json:"Width"`
	Height int `json:"Height"`
}

// DefaultArea is the region assigned when a capture switches to region mode.
var DefaultArea = Area{X: 0, Y: 0, Width: 800, Height: 600}

// ParseArea parses "x,y,w,h", the form screen tools print for a selection.
func ParseArea(s string) (Area, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Area{}, fmt.Errorf("%w: area %q: expected x,y,w,h", ErrValidation, s)
	}
	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Area{}, fmt.Errorf("%w: area %q: %v", ErrValidation, s, err)
		}
		vals[i] = v
	}
	if vals[2] < 0 || vals[3] < 0 {
		return Area{}, fmt.Errorf("%w: area %q: width and height must be >= 0", ErrValidation, s)
	}
	return Area{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

func (p *Point) set(axis string, v int) error {
	switch axis {
	case "x":
		p.X = v
	case "y":
		p.Y = v
	default:
		return fmt.Errorf("%w: point has no axis %q", ErrInvalidField, axis)
	}
	return nil
}

func (r *Rect) set(axis string, v int) error {
	switch axis {
	case "x":
		r.X = v
	case "y":
		r.Y = v
	case "w":
		r.W = v
	case "h":
		r.H = v
	default:
		return fmt.Errorf("%w: bounds has no axis %q", ErrInvalidField, axis)
	}
	return nil
}

func (a *Area) set(key string, v int) error {
	switch strings.ToLower(key) {
	case "x":
		a.X = v
	case "y":
		a.Y = v
	case "width", "w":
		if v < 0 {
			return fmt.Errorf("%w: area width must be >= 0, got %d", ErrValidation, v)
		}
		a.Width = v
	case "height", "h":
		if v < 0 {
			return fmt.Errorf("%w: area height must be >= 0, got %d", ErrValidation, v)
		}
		a.Height = v
	default:
		return fmt.Errorf("%w: area has no field %q (expected X, Y, Width, Height)", ErrInvalidField, key)
	}
	return nil
}

// splitGeometryKey splits "bounds.x" into ("bounds", "x"). A bare axis
// returns an empty group.
func splitGeometryKey(key string) (group, axis string) {
	key = strings.ToLower(strings.TrimSpace(key))
	if i := strings.IndexByte(key, '.'); i >= 0 {
		return key[:i], key[i+1:]
	}
	return "", key
}
