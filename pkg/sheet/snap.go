package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SnapUnit says how a SnapPoint's Value is interpreted.
type SnapUnit int

const (
	// SnapPixels is an absolute panel height in pixels.
	SnapPixels SnapUnit = iota
	// SnapFraction is a fraction of the viewport height.
	SnapFraction
	// SnapPercent is a percentage of the viewport height.
	SnapPercent
)

// SnapPoint declares one resting height of the sheet.
//
// Build snap points with [Percent], [Fraction], [Pixels], [Number] or
// [ParseSnapPoint]. Sheets expect their snap points in ascending order of
// height; they are neither sorted nor validated.
type SnapPoint struct {
	Value float64
	Unit  SnapUnit
}

// Percent declares a height of p percent of the viewport.
func Percent(p float64) SnapPoint { return SnapPoint{Value: p, Unit: SnapPercent} }

// Fraction declares a height of f times the viewport.
func Fraction(f float64) SnapPoint { return SnapPoint{Value: f, Unit: SnapFraction} }

// Pixels declares an absolute height.
func Pixels(px float64) SnapPoint { return SnapPoint{Value: px, Unit: SnapPixels} }

// Number interprets a bare number: values in (0, 1] are fractions of the
// viewport, anything else is an absolute pixel height.
func Number(v float64) SnapPoint {
	if v > 0 && v <= 1 {
		return Fraction(v)
	}
	return Pixels(v)
}

// ParseSnapPoint parses "50%" as a percentage and any other numeric string as
// an absolute pixel height.
func ParseSnapPoint(s string) (SnapPoint, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutSuffix(s, "%"); ok {
		p, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil {
			return SnapPoint{}, fmt.Errorf("invalid snap point %q: %w", s, err)
		}
		return Percent(p), nil
	}
	px, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return SnapPoint{}, fmt.Errorf("invalid snap point %q: %w", s, err)
	}
	return Pixels(px), nil
}

// PixelHeight returns the panel height the snap point resolves to for a
// viewport of the given height.
func (p SnapPoint) PixelHeight(viewportHeight float64) float64 {
	switch p.Unit {
	case SnapPercent:
		return viewportHeight * p.Value / 100
	case SnapFraction:
		return viewportHeight * p.Value
	default:
		return p.Value
	}
}

func (p SnapPoint) String() string {
	v := strconv.FormatFloat(p.Value, 'g', -1, 64)
	switch p.Unit {
	case SnapPercent:
		return v + "%"
	case SnapFraction:
		return v + "vh"
	default:
		return v + "px"
	}
}

// UnmarshalYAML accepts "50%" strings, fractional numbers and pixel numbers.
func (p *SnapPoint) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: snap point must be a scalar", node.Line)
	}
	switch node.Tag {
	case "!!int", "!!float":
		v, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*p = Number(v)
		return nil
	default:
		parsed, err := ParseSnapPoint(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*p = parsed
		return nil
	}
}

// ResolveSnapPoints converts snap points to panel heights in pixels for the
// given viewport. It returns nil for an empty spec, which selects
// single-position mode: open at offset 0, closed off-screen.
//
// The result has the same length and order as spec. A descending spec yields
// a descending result; callers must supply ascending snap points.
func ResolveSnapPoints(spec []SnapPoint, viewportHeight float64) []float64 {
	if len(spec) == 0 {
		return nil
	}
	pixels := make([]float64, len(spec))
	for i, p := range spec {
		pixels[i] = p.PixelHeight(viewportHeight)
	}
	return pixels
}

// SnapOffset returns how far the sheet is pushed down from full expansion
// when resting at index. The last (largest) snap point has offset 0.
// It returns 0 when pixels is empty or index is out of range.
func SnapOffset(index int, pixels []float64) float64 {
	if len(pixels) == 0 || index < 0 || index >= len(pixels) {
		return 0
	}
	return pixels[len(pixels)-1] - pixels[index]
}

// ContainerHeight returns the fixed height of the sheet container: the
// largest snap point when snap points are in use, otherwise height when it is
// positive. ok is false when the container should size to its content.
func ContainerHeight(height float64, pixels []float64) (h float64, ok bool) {
	if len(pixels) > 0 {
		return pixels[len(pixels)-1], true
	}
	if height > 0 {
		return height, true
	}
	return 0, false
}

// DefaultMaxHeight is the container height cap used when none is configured.
func DefaultMaxHeight(viewportHeight float64) float64 {
	return viewportHeight * defaultMaxHeightFraction
}
