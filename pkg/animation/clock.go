package animation

import "time"

// Clock provides time for animations. The default implementation uses
// system time. Tests inject a fake clock through [NewTickerGroup] or the
// scheduler to control animation timing deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock uses wall-clock time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// orSystem returns c, or SystemClock when c is nil.
func orSystem(c Clock) Clock {
	if c == nil {
		return SystemClock{}
	}
	return c
}
