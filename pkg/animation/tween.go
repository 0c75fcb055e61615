package animation

import "time"

// Segment is one eased run from From to To over Duration.
//
// [AnimationController] builds a segment for every run, starting from the
// value it had when the run began.
type Segment struct {
	From     float64
	To       float64
	Duration time.Duration
	// Curve eases progress. Nil means linear.
	Curve Curve
}

// At returns the value elapsed into the run and whether the run is complete.
// A zero or negative Duration completes immediately.
func (s Segment) At(elapsed time.Duration) (value float64, done bool) {
	if s.Duration <= 0 || elapsed >= s.Duration {
		return s.To, true
	}
	t := float64(elapsed) / float64(s.Duration)
	if t < 0 {
		t = 0
	}
	if s.Curve != nil {
		t = s.Curve(t)
	}
	return Lerp(s.From, s.To, t), false
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
