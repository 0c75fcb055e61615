package animation

import "math"

// Curve maps linear progress t in [0, 1] to eased progress.
// Set an [AnimationController]'s Curve field to apply easing.
//
// Standard curves: [LinearCurve], [Ease], [EaseIn], [EaseOut], [EaseInOut],
// [EaseOutCubic]. Use [CubicBezier] to create custom curves matching CSS
// cubic-bezier(), and [Out] to mirror an ease-in curve into an ease-out one.
type Curve func(t float64) float64

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}

// Ease is a standard cubic bezier curve for general-purpose easing.
// Equivalent to CSS ease. Sheets use it when settling on a snap point.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates.
// Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.42, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates.
// Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.58, 1.0)

// EaseInOut starts and ends slowly with acceleration in the middle.
// Equivalent to CSS ease-in-out.
var EaseInOut = CubicBezier(0.42, 0.0, 0.58, 1.0)

// EaseOutCubic decelerates along 1-(1-t)^3. Used for sliding a sheet in and
// for keyboard avoidance.
var EaseOutCubic = Out(func(t float64) float64 { return t * t * t })

// Out mirrors an ease-in curve: Out(c)(t) = 1 - c(1-t).
func Out(c Curve) Curve {
	return func(t float64) float64 {
		return 1 - c(1-t)
	}
}

// CubicBezier returns a curve matching CSS cubic-bezier(x1, y1, x2, y2).
// The curve runs from (0,0) to (1,1) with the two given control points.
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	b := bezier{x1: x1, y1: y1, x2: x2, y2: y2}
	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		return bezierAxis(b.y1, b.y2, b.solve(t))
	}
}

const bezierEpsilon = 1e-7

type bezier struct {
	x1, y1, x2, y2 float64
}

// solve finds the curve parameter u whose x coordinate is t.
func (b bezier) solve(t float64) float64 {
	u := t
	for i := 0; i < 8; i++ {
		x := bezierAxis(b.x1, b.x2, u) - t
		if math.Abs(x) < bezierEpsilon {
			return clampUnit(u)
		}
		slope := bezierSlope(b.x1, b.x2, u)
		if math.Abs(slope) < bezierEpsilon {
			break
		}
		u -= x / slope
	}

	// Newton stalled; bisect within [0, 1].
	lo, hi := 0.0, 1.0
	u = clampUnit(u)
	for i := 0; i < 12; i++ {
		x := bezierAxis(b.x1, b.x2, u) - t
		if math.Abs(x) < bezierEpsilon {
			break
		}
		if x > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) / 2
	}
	return u
}

// bezierAxis evaluates one coordinate of the curve with control values p1, p2.
func bezierAxis(p1, p2, u float64) float64 {
	v := 1 - u
	return 3*v*v*u*p1 + 3*v*u*u*p2 + u*u*u
}

func bezierSlope(p1, p2, u float64) float64 {
	v := 1 - u
	return 3*v*v*p1 + 6*v*u*(p2-p1) + 3*u*u*(1-p2)
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
