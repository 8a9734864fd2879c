package edit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mj1618/macro-cli/internal/model"
)

// Params are loose op arguments as they arrive from flags, YAML batches or
// MCP tool calls. Numbers may be int, int64, float64 or digit strings.
type Params map[string]any

func (p Params) lookup(key string, aliases ...string) (any, bool) {
	for _, k := range append([]string{key}, aliases...) {
		if v, ok := p[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func missing(key string) error {
	return fmt.Errorf("%w: missing parameter %q", model.ErrValidation, key)
}

func stringParam(p Params, key, defaultVal string, aliases ...string) string {
	if v, ok := p.lookup(key, aliases...); ok {
		if s, ok := v.(string); ok {
			return s
		}
		// YAML may parse bare values as numbers or booleans
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func requireString(p Params, key string, aliases ...string) (string, error) {
	if _, ok := p.lookup(key, aliases...); !ok {
		return "", missing(key)
	}
	return stringParam(p, key, "", aliases...), nil
}

func requireInt(p Params, key string, aliases ...string) (int, error) {
	v, ok := p.lookup(key, aliases...)
	if !ok {
		return 0, missing(key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) && n >= float64(math.MinInt) && n < -float64(math.MinInt) {
			return int(n), nil
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: parameter %q must be an integer, got %v", model.ErrValidation, key, v)
}

func requireBool(p Params, key string, aliases ...string) (bool, error) {
	v, ok := p.lookup(key, aliases...)
	if !ok {
		return false, missing(key)
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed, nil
		}
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "on", "yes":
			return true, nil
		case "off", "no":
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: parameter %q must be a boolean, got %v", model.ErrValidation, key, v)
}

func requireValue(p Params, key string, aliases ...string) (any, error) {
	v, ok := p.lookup(key, aliases...)
	if !ok {
		return nil, missing(key)
	}
	return v, nil
}

// index resolves a position; negative values count from the end, so -1 is
// the last entry.
func index(p Params, key string, n int, aliases ...string) (int, error) {
	i, err := requireInt(p, key, aliases...)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i += n
	}
	return i, nil
}
