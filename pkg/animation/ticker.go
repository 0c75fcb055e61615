// Package animation provides the time-based animation primitives that move a
// modal sheet between its resting positions.
//
// # Core Components
//
//   - [AnimationController]: Drives a single scalar from its current value to a
//     target over a duration, shaped by an easing curve. The value is unbounded,
//     so it can hold pixel offsets directly.
//
//   - [TickerGroup]: Owns the active [Ticker]s of one sheet instance and advances
//     them once per frame via [TickerGroup.Step].
//
//   - [Segment]: One eased run from a start value to a target.
//
//   - Curves: Easing functions such as [Ease], [EaseOut] and [EaseOutCubic].
//
// # Basic Usage
//
//	group := animation.NewTickerGroup(nil)
//	offset := animation.NewAnimationController(300*time.Millisecond, group)
//	offset.Curve = animation.EaseOutCubic
//	offset.AnimateTo(0, func() {
//	    // settled
//	})
//
//	// Once per frame:
//	group.Step()
//
// Animations are time-based easings, not velocity-conserving springs. Stopping
// a controller leaves its value where the last frame put it, so a following
// animation starts from there without a jump.
package animation

import (
	"sync"
	"time"
)

// Ticker calls a callback on each frame while active.
//
// Ticker is the low-level timing primitive used by [AnimationController].
// Most code should use AnimationController directly rather than Ticker.
//
// The callback receives the elapsed time since Start was called. Tickers are
// driven by the owning group's [TickerGroup.Step].
type Ticker struct {
	group    *TickerGroup
	callback func(elapsed time.Duration)
	isActive bool
	start    time.Time
}

// Start activates the ticker.
func (t *Ticker) Start() {
	if t.isActive {
		return
	}
	t.isActive = true
	t.start = t.group.clock.Now()
	t.group.add(t)
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.isActive {
		return
	}
	t.isActive = false
	t.group.remove(t)
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.isActive
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.isActive {
		return 0
	}
	return t.group.clock.Now().Sub(t.start)
}

// TickerProvider creates tickers.
type TickerProvider interface {
	CreateTicker(callback func(time.Duration)) *Ticker
}

// TickerGroup is a set of tickers sharing one clock. Each sheet instance owns
// its own group so that unrelated sheets never step each other's animations.
type TickerGroup struct {
	clock  Clock
	mu     sync.Mutex
	active map[*Ticker]struct{}
	order  []*Ticker
}

// NewTickerGroup creates a group reading time from clock (system time if nil).
func NewTickerGroup(clock Clock) *TickerGroup {
	return &TickerGroup{
		clock:  orSystem(clock),
		active: make(map[*Ticker]struct{}),
	}
}

// Clock returns the group's time source.
func (g *TickerGroup) Clock() Clock {
	return g.clock
}

// CreateTicker creates an inactive ticker bound to this group.
func (g *TickerGroup) CreateTicker(callback func(time.Duration)) *Ticker {
	return &Ticker{group: g, callback: callback}
}

func (g *TickerGroup) add(t *Ticker) {
	g.mu.Lock()
	g.active[t] = struct{}{}
	g.order = append(g.order, t)
	g.mu.Unlock()
}

func (g *TickerGroup) remove(t *Ticker) {
	g.mu.Lock()
	delete(g.active, t)
	for i, other := range g.order {
		if other == t {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	g.mu.Unlock()
}

// Step advances all active tickers in start order.
// This should be called once per frame.
func (g *TickerGroup) Step() {
	g.mu.Lock()
	if len(g.order) == 0 {
		g.mu.Unlock()
		return
	}
	// Copy so callbacks can start or stop tickers without holding the lock.
	tickers := make([]*Ticker, len(g.order))
	copy(tickers, g.order)
	g.mu.Unlock()

	now := g.clock.Now()
	for _, ticker := range tickers {
		if ticker.isActive && ticker.callback != nil {
			ticker.callback(now.Sub(ticker.start))
		}
	}
}

// HasActiveTickers returns true if any tickers in the group are active.
func (g *TickerGroup) HasActiveTickers() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.active) > 0
}
