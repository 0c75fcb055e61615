// Package scheduler provides the single-threaded event loop that a sheet
// instance runs on.
//
// A [Loop] processes three kinds of work in arrival order, one frame at a time:
// callbacks posted for the next tick, clock-based timers, and animation
// tickers. Hosts call [Loop.Pump] from their frame callback, or let
// [Loop.Run] drive it from a wall-clock frame timer.
//
// Post and AfterFunc may be called from any goroutine; Pump must only be called
// from the goroutine that owns the loop.
package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-drift/modalsheet/pkg/animation"
)

// DefaultFrameInterval is the frame period used by Run when none is given.
const DefaultFrameInterval = time.Second / 60

// Loop is a cooperative scheduler for one sheet instance.
type Loop struct {
	clock   animation.Clock
	tickers *animation.TickerGroup

	mu     sync.Mutex
	queue  []func()
	timers []*Timer
	seq    uint64
}

// New creates a loop reading time from clock (system time if nil).
func New(clock animation.Clock) *Loop {
	if clock == nil {
		clock = animation.SystemClock{}
	}
	return &Loop{
		clock:   clock,
		tickers: animation.NewTickerGroup(clock),
	}
}

// Clock returns the loop's time source.
func (l *Loop) Clock() animation.Clock {
	return l.clock
}

// Now returns the current time from the loop's clock.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// CreateTicker implements [animation.TickerProvider]. Tickers created here are
// stepped by Pump.
func (l *Loop) CreateTicker(callback func(time.Duration)) *animation.Ticker {
	return l.tickers.CreateTicker(callback)
}

// Post schedules fn to run on the next Pump. Callbacks posted while a Pump is
// in progress run on the following one.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
}

// Timer is a one-shot callback scheduled with AfterFunc.
type Timer struct {
	loop    *Loop
	due     time.Time
	seq     uint64
	fn      func()
	stopped bool
}

// Stop cancels the timer. It reports whether the call prevented the callback
// from running.
func (t *Timer) Stop() bool {
	if t == nil {
		return false
	}
	l := t.loop
	l.mu.Lock()
	defer l.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	for i, other := range l.timers {
		if other == t {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			return true
		}
	}
	return false
}

// AfterFunc runs fn on the first Pump at or after d has elapsed on the loop's clock.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	t := &Timer{loop: l, due: l.clock.Now().Add(d), seq: l.seq, fn: fn}
	l.timers = append(l.timers, t)
	sort.SliceStable(l.timers, func(i, j int) bool {
		if l.timers[i].due.Equal(l.timers[j].due) {
			return l.timers[i].seq < l.timers[j].seq
		}
		return l.timers[i].due.Before(l.timers[j].due)
	})
	return t
}

// Pump processes one frame: callbacks posted before this call, then timers
// that are due, then one step of every active ticker.
func (l *Loop) Pump() {
	l.mu.Lock()
	tasks := l.queue
	l.queue = nil
	now := l.clock.Now()
	var due []*Timer
	for len(l.timers) > 0 && !l.timers[0].due.After(now) {
		t := l.timers[0]
		t.stopped = true
		due = append(due, t)
		l.timers = l.timers[1:]
	}
	l.mu.Unlock()

	for _, task := range tasks {
		task()
	}
	for _, t := range due {
		if t.fn != nil {
			t.fn()
		}
	}
	l.tickers.Step()
}

// Busy reports whether posted callbacks or running animations remain.
// Pending timers do not count: they are debounce windows, not work.
func (l *Loop) Busy() bool {
	l.mu.Lock()
	queued := len(l.queue) > 0
	l.mu.Unlock()
	return queued || l.tickers.HasActiveTickers()
}

// PendingTimers returns the number of timers that have not fired yet.
func (l *Loop) PendingTimers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Run pumps the loop every interval until ctx is done.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	frames := time.NewTicker(interval)
	defer frames.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-frames.C:
			l.Pump()
		}
	}
}
