package geom

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// IntVec2 is a pair of integer grid coordinates
type IntVec2 struct {
	X, Y int
}

// Add returns the component-wise sum of two vectors
func (v IntVec2) Add(o IntVec2) IntVec2 {
	return IntVec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v IntVec2) String() string {
	return fmt.Sprintf("%d,%d", v.X, v.Y)
}

// AABB2 is an axis aligned box, used for sprite UV rectangles
type AABB2 struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// IntRange is an inclusive integer range, written "min~max" or just "n"
type IntRange struct {
	Min, Max int
}

// NewIntRange creates a range containing a single value
func NewIntRange(value int) IntRange {
	return IntRange{Min: value, Max: value}
}

// Roll picks a value uniformly from the range
func (r IntRange) Roll(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// Contains reports whether value lies in the range
func (r IntRange) Contains(value int) bool {
	return value >= r.Min && value <= r.Max
}

func (r IntRange) String() string {
	if r.Min == r.Max {
		return strconv.Itoa(r.Min)
	}
	return fmt.Sprintf("%d~%d", r.Min, r.Max)
}

// FloatRange is an inclusive float range, written "min~max" or just "n"
type FloatRange struct {
	Min, Max float64
}

// NewFloatRange creates a range containing a single value
func NewFloatRange(value float64) FloatRange {
	return FloatRange{Min: value, Max: value}
}

// Roll picks a value uniformly from the range
func (r FloatRange) Roll(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether value lies in the range
func (r FloatRange) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}

func (r FloatRange) String() string {
	if r.Min == r.Max {
		return formatFloat(r.Min)
	}
	return formatFloat(r.Min) + "~" + formatFloat(r.Max)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ParseIntVec2 parses "x,y"
func ParseIntVec2(s string) (IntVec2, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return IntVec2{}, fmt.Errorf("invalid vector %q: expected \"x,y\"", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return IntVec2{}, fmt.Errorf("invalid vector %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return IntVec2{}, fmt.Errorf("invalid vector %q: %w", s, err)
	}
	return IntVec2{X: x, Y: y}, nil
}

// ParseIntRange parses "min~max" or a single integer
func ParseIntRange(s string) (IntRange, error) {
	first, second, found := strings.Cut(s, "~")
	lo, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return IntRange{}, fmt.Errorf("invalid int range %q: %w", s, err)
	}
	if !found {
		return NewIntRange(lo), nil
	}
	hi, err := strconv.Atoi(strings.TrimSpace(second))
	if err != nil {
		return IntRange{}, fmt.Errorf("invalid int range %q: %w", s, err)
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return IntRange{Min: lo, Max: hi}, nil
}

// ParseFloatRange parses "min~max" or a single float
func ParseFloatRange(s string) (FloatRange, error) {
	first, second, found := strings.Cut(s, "~")
	lo, err := strconv.ParseFloat(strings.TrimSpace(first), 64)
	if err != nil {
		return FloatRange{}, fmt.Errorf("invalid float range %q: %w", s, err)
	}
	if !found {
		return NewFloatRange(lo), nil
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(second), 64)
	if err != nil {
		return FloatRange{}, fmt.Errorf("invalid float range %q: %w", s, err)
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return FloatRange{Min: lo, Max: hi}, nil
}
