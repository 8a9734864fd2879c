package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Loose value coercion for setters fed by flags, YAML and MCP arguments.

// float64 values in [minIntFloat, maxIntFloat) convert to int exactly.
const (
	minIntFloat = float64(math.MinInt)
	maxIntFloat = -float64(math.MinInt)
)

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrValidation, n)
		}
		if n < minIntFloat || n >= maxIntFloat {
			return 0, fmt.Errorf("%w: %v is out of range", ErrValidation, n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrValidation, n)
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrValidation, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: expected integer, got %T", ErrValidation, v)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrValidation, n)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrValidation, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrValidation, v)
	}
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "on", "yes", "1":
			return true, nil
		case "false", "off", "no", "0":
			return false, nil
		}
		return false, fmt.Errorf("%w: %q is not a boolean", ErrValidation, b)
	default:
		return false, fmt.Errorf("%w: expected boolean, got %T", ErrValidation, v)
	}
}

func toString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", ErrValidation, v)
	}
	return s, nil
}
