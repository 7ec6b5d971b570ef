package xmlutil

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"promage2/geom"
)

// ParseString returns the attribute value, or def when absent
func ParseString(e *Element, name, def string) string {
	if value, ok := e.Attr(name); ok {
		return value
	}
	return def
}

// ParseInt reads an integer attribute
func ParseInt(e *Element, name string, def int) (int, error) {
	value, ok := e.Attr(name)
	if !ok {
		return def, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def, attrError(e, name, err)
	}
	return i, nil
}

// ParseFloat reads a float attribute
func ParseFloat(e *Element, name string, def float64) (float64, error) {
	value, ok := e.Attr(name)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return def, attrError(e, name, err)
	}
	return f, nil
}

// ParseBool reads a boolean attribute
func ParseBool(e *Element, name string, def bool) (bool, error) {
	value, ok := e.Attr(name)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return def, attrError(e, name, err)
	}
	return b, nil
}

// ParseIntVec2 reads an "x,y" attribute
func ParseIntVec2(e *Element, name string, def geom.IntVec2) (geom.IntVec2, error) {
	value, ok := e.Attr(name)
	if !ok {
		return def, nil
	}
	v, err := geom.ParseIntVec2(value)
	if err != nil {
		return def, attrError(e, name, err)
	}
	return v, nil
}

// ParseColor reads an "r,g,b" or "r,g,b,a" attribute
func ParseColor(e *Element, name string, def color.RGBA) (color.RGBA, error) {
	value, ok := e.Attr(name)
	if !ok {
		return def, nil
	}
	c, err := ParseRGBA(value)
	if err != nil {
		return def, attrError(e, name, err)
	}
	return c, nil
}

// ParseRGBA parses "r,g,b" or "r,g,b,a" with 0-255 components
func ParseRGBA(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected r,g,b[,a]", s)
	}
	values := [4]uint8{0, 0, 0, 255}
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		values[i] = uint8(n)
	}
	return color.RGBA{R: values[0], G: values[1], B: values[2], A: values[3]}, nil
}

// FormatRGBA is the inverse of ParseRGBA
func FormatRGBA(c color.RGBA) string {
	return fmt.Sprintf("%d,%d,%d,%d", c.R, c.G, c.B, c.A)
}

func attrError(e *Element, name string, err error) error {
	return fmt.Errorf("<%s %s>: %w", e.Name, name, err)
}
