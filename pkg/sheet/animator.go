package sheet

import (
	"log/slog"
	"time"

	"github.com/go-drift/modalsheet/pkg/animation"
)

// tween is one leg of a transition: a controller moving to a target.
type tween struct {
	ctrl     *animation.AnimationController
	target   float64
	duration time.Duration
	curve    animation.Curve
}

// transition is the handle for the in-flight animation. It settles when all
// of its tweens have reached their targets.
type transition struct {
	id      uint64
	kind    TransitionKind
	started time.Time
	pending int
	onDone  func()
}

// animator runs transitions against the position model. At most one
// transition is alive; starting another stops the previous one where it is.
type animator struct {
	sheet    string
	clock    animation.Clock
	pos      *PositionModel
	observer Observer
	logger   *slog.Logger

	current *transition
	nextID  uint64
	// settled holds one-shot waiters for the end of the current open/close.
	settled []func()
}

// start cancels any running transition and begins a new one.
func (a *animator) start(kind TransitionKind, tweens []tween, onDone func()) {
	a.cancel()

	a.nextID++
	t := &transition{
		id:      a.nextID,
		kind:    kind,
		started: a.clock.Now(),
		pending: len(tweens),
		onDone:  onDone,
	}
	a.current = t
	a.observer.TransitionStarted(a.sheet, kind)
	a.logger.Debug("transition started", "sheet", a.sheet, "kind", kind.String(), "id", t.id)

	for _, tw := range tweens {
		tw.ctrl.AnimateWith(tw.target, tw.duration, tw.curve, func() { a.legDone(t) })
	}
	if len(tweens) == 0 {
		a.legDone(t)
	}
}

func (a *animator) legDone(t *transition) {
	if a.current != t {
		return
	}
	t.pending--
	if t.pending > 0 {
		return
	}
	a.current = nil
	elapsed := a.clock.Now().Sub(t.started)
	a.observer.TransitionFinished(a.sheet, t.kind, elapsed, false)
	a.logger.Debug("transition settled", "sheet", a.sheet, "kind", t.kind.String(), "id", t.id, "elapsed", elapsed)
	if t.onDone != nil {
		t.onDone()
	}
	if t.kind.Imperative() && !a.imperativeActive() {
		a.flushSettled()
	}
}

// cancel stops the running transition, if any, leaving values where they are.
func (a *animator) cancel() {
	a.pos.stop()
	t := a.current
	if t == nil {
		return
	}
	a.current = nil
	elapsed := a.clock.Now().Sub(t.started)
	a.observer.TransitionFinished(a.sheet, t.kind, elapsed, true)
	a.logger.Debug("transition interrupted", "sheet", a.sheet, "kind", t.kind.String(), "id", t.id)
}

// active returns the kind of the running transition.
func (a *animator) active() (TransitionKind, bool) {
	if a.current == nil {
		return 0, false
	}
	return a.current.kind, true
}

func (a *animator) busy() bool {
	return a.current != nil
}

func (a *animator) imperativeActive() bool {
	return a.current != nil && a.current.kind.Imperative()
}

// afterImperative runs fn once the current open or close settles. It reports
// false, without queuing fn, when no open or close is running.
func (a *animator) afterImperative(fn func()) bool {
	if !a.imperativeActive() {
		return false
	}
	a.settled = append(a.settled, fn)
	return true
}

func (a *animator) flushSettled() {
	waiters := a.settled
	a.settled = nil
	for _, fn := range waiters {
		fn()
	}
}

func (a *animator) dispose() {
	a.cancel()
	a.settled = nil
}
