package animation

import (
	"fmt"
	"time"
)

// AnimationStatus represents the current state of an animation.
//
// The status follows this state machine:
//
//	           AnimateTo()              target reached
//	Idle ─────────────────► Forward/Reverse ──────────────► Completed
//	                              │
//	                              │ Stop() / Set()
//	                              ▼
//	                           Stopped
//
// While animating, status is AnimationForward (value increasing) or
// AnimationReverse (value decreasing).
type AnimationStatus int

const (
	// AnimationIdle means the controller has not run yet.
	AnimationIdle AnimationStatus = iota
	// AnimationForward means the value is moving toward a larger target.
	AnimationForward
	// AnimationReverse means the value is moving toward a smaller target.
	AnimationReverse
	// AnimationCompleted means the last run reached its target.
	AnimationCompleted
	// AnimationStopped means the last run was stopped before reaching its target.
	AnimationStopped
)

// String returns a human-readable representation of the animation status.
func (s AnimationStatus) String() string {
	switch s {
	case AnimationIdle:
		return "idle"
	case AnimationForward:
		return "forward"
	case AnimationReverse:
		return "reverse"
	case AnimationCompleted:
		return "completed"
	case AnimationStopped:
		return "stopped"
	default:
		return fmt.Sprintf("AnimationStatus(%d)", int(s))
	}
}

// AnimationController drives a single scalar toward a target over time.
//
// Unlike a 0..1 progress controller, Value is unbounded: the sheet animates
// pixel offsets and backdrop opacity with it directly. Every run interpolates
// from the value at the time of the call, so stopping one run and starting
// another never makes the value jump.
//
// Always call Dispose when done to stop the animation and release resources.
type AnimationController struct {
	// Value is the current animated value.
	Value float64

	// Duration is the default run length for AnimateTo.
	Duration time.Duration

	// Curve is the default easing for AnimateTo (optional).
	Curve Curve

	status          AnimationStatus
	provider        TickerProvider
	ticker          *Ticker
	run             *Segment
	onDone          func()
	listeners       map[int]func()
	statusListeners map[int]func(AnimationStatus)
	nextListenerID  int
}

// NewAnimationController creates a controller whose tickers come from provider.
func NewAnimationController(duration time.Duration, provider TickerProvider) *AnimationController {
	return &AnimationController{
		Duration:        duration,
		Curve:           LinearCurve,
		status:          AnimationIdle,
		provider:        provider,
		listeners:       make(map[int]func()),
		statusListeners: make(map[int]func(AnimationStatus)),
	}
}

// AnimateTo animates to target using the controller's Duration and Curve.
// onDone runs once when the target is reached; it is dropped if the run is
// stopped or superseded first.
func (c *AnimationController) AnimateTo(target float64, onDone func()) {
	c.AnimateWith(target, c.Duration, c.Curve, onDone)
}

// AnimateWith animates to target with an explicit duration and curve.
func (c *AnimationController) AnimateWith(target float64, duration time.Duration, curve Curve, onDone func()) {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}

	c.run = &Segment{From: c.Value, To: target, Duration: duration, Curve: curve}
	c.onDone = onDone
	if target >= c.Value {
		c.setStatus(AnimationForward)
	} else {
		c.setStatus(AnimationReverse)
	}

	c.ticker = c.provider.CreateTicker(c.tick)
	c.ticker.Start()
}

func (c *AnimationController) tick(elapsed time.Duration) {
	value, done := c.run.At(elapsed)
	c.Value = value
	c.notifyListeners()
	if done {
		c.finish()
	}
}

func (c *AnimationController) finish() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	done := c.onDone
	c.onDone = nil
	c.setStatus(AnimationCompleted)
	if done != nil {
		done()
	}
}

// Set stops any run and jumps to value immediately.
func (c *AnimationController) Set(value float64) {
	c.Stop()
	c.Value = value
	c.notifyListeners()
}

// Stop stops the animation at the current value. The pending completion
// callback is discarded.
func (c *AnimationController) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	c.onDone = nil
	if c.IsAnimating() {
		c.setStatus(AnimationStopped)
	}
}

// Target returns the target of the current or most recent run, or Value if
// the controller never ran.
func (c *AnimationController) Target() float64 {
	if c.run == nil {
		return c.Value
	}
	return c.run.To
}

// Status returns the current animation status.
func (c *AnimationController) Status() AnimationStatus {
	return c.status
}

// IsAnimating returns true if the animation is currently running.
func (c *AnimationController) IsAnimating() bool {
	return c.status == AnimationForward || c.status == AnimationReverse
}

// IsCompleted returns true if the last run reached its target.
func (c *AnimationController) IsCompleted() bool {
	return c.status == AnimationCompleted
}

// AddListener adds a callback that fires whenever the value changes.
// Returns an unsubscribe function.
func (c *AnimationController) AddListener(fn func()) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

// AddStatusListener adds a callback that fires whenever the status changes.
// Returns an unsubscribe function.
func (c *AnimationController) AddStatusListener(fn func(AnimationStatus)) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.statusListeners[id] = fn
	return func() {
		delete(c.statusListeners, id)
	}
}

func (c *AnimationController) setStatus(status AnimationStatus) {
	if c.status == status {
		return
	}
	c.status = status
	for _, listener := range c.statusListeners {
		listener(status)
	}
}

func (c *AnimationController) notifyListeners() {
	for _, listener := range c.listeners {
		listener()
	}
}

// Dispose cleans up resources used by the controller.
func (c *AnimationController) Dispose() {
	c.Stop()
	c.listeners = nil
	c.statusListeners = nil
}
