package sheet

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/go-drift/modalsheet/pkg/animation"
	"github.com/go-drift/modalsheet/pkg/errors"
	"github.com/go-drift/modalsheet/pkg/logging"
	"github.com/go-drift/modalsheet/pkg/scheduler"
)

var sheetSeq atomic.Int64

func generateName() string {
	return fmt.Sprintf("modal-sheet-%d", sheetSeq.Add(1))
}

// Controller is the sheet engine for one mounted sheet. The host forwards
// pointer, scroll, keyboard and layout events to it and renders Offset and
// BackdropOpacity each frame.
//
// A Controller belongs to its loop: every method must be called from the
// goroutine that pumps that loop. Notification callbacks are posted to the
// loop and run on a later Pump, never inside the call that caused them.
type Controller struct {
	cfg    Config
	name   string
	loop   *scheduler.Loop
	logger *slog.Logger

	viewportHeight float64
	pixels         []float64

	phase          Phase
	index          int
	pendingSnap    int
	keyboardHeight float64
	keyboardWait   bool

	pos    *PositionModel
	anim   *animator
	drag   dragSession
	scroll scrollSession

	registry *Registry
	disposed bool
}

// New creates a hidden sheet driven by loop.
func New(loop *scheduler.Loop, cfg Config) *Controller {
	cfg = normalizeConfig(cfg)
	name := cfg.Name
	if name == "" {
		name = generateName()
	}
	logger := logging.OrNop(cfg.Logger)
	pos := newPositionModel(loop)

	c := &Controller{
		cfg:            cfg,
		name:           name,
		loop:           loop,
		logger:         logger,
		viewportHeight: cfg.ViewportHeight,
		pixels:         ResolveSnapPoints(cfg.SnapPoints, cfg.ViewportHeight),
		index:          cfg.InitialSnapIndex,
		pendingSnap:    -1,
		pos:            pos,
		anim: &animator{
			sheet:    name,
			clock:    loop.Clock(),
			pos:      pos,
			observer: cfg.Observer,
			logger:   logger,
		},
	}
	pos.hide(c.viewportHeight, cfg.CloseMargin)

	if cfg.Registry != nil {
		c.registry = cfg.Registry
		c.registry.Register(name, c)
	}
	return c
}

// Name returns the sheet's registry key.
func (c *Controller) Name() string { return c.name }

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// Visible reports whether the sheet is on screen or moving on or off it.
func (c *Controller) Visible() bool { return c.phase != PhaseHidden }

// Animating reports whether a transition is in flight.
func (c *Controller) Animating() bool { return c.anim.busy() }

// Dragging reports whether a pointer drag is active.
func (c *Controller) Dragging() bool { return c.drag.active }

// CurrentIndex returns the snap index the sheet rests at or is moving to.
func (c *Controller) CurrentIndex() int { return c.index }

// Offset returns the current offset in pixels.
func (c *Controller) Offset() float64 { return c.pos.Offset() }

// BackdropOpacity returns the current backdrop opacity.
func (c *Controller) BackdropOpacity() float64 { return c.pos.Opacity() }

// KeyboardHeight returns the last reported keyboard height.
func (c *Controller) KeyboardHeight() float64 { return c.keyboardHeight }

// ViewportHeight returns the viewport height snap points resolve against.
func (c *Controller) ViewportHeight() float64 { return c.viewportHeight }

// SnapPixels returns a copy of the resolved snap heights, or nil in
// single-position mode.
func (c *Controller) SnapPixels() []float64 {
	if c.pixels == nil {
		return nil
	}
	return append([]float64(nil), c.pixels...)
}

// ContainerHeight returns the fixed container height, if any.
func (c *Controller) ContainerHeight() (float64, bool) {
	return ContainerHeight(c.cfg.Height, c.pixels)
}

// MaxHeight returns the container height cap.
func (c *Controller) MaxHeight() float64 {
	if c.cfg.MaxHeight > 0 {
		return c.cfg.MaxHeight
	}
	return DefaultMaxHeight(c.viewportHeight)
}

// Progress returns how much of the container is on screen, from 0 (hidden)
// to 1 (fully expanded).
func (c *Controller) Progress() float64 {
	height, ok := c.ContainerHeight()
	if !ok {
		height = c.viewportHeight
	}
	if height <= 0 {
		return 0
	}
	p := (height - c.pos.Offset()) / height
	return math.Max(0, math.Min(1, p))
}

// AddProgressListener calls fn with Progress whenever the offset changes.
// Returns an unsubscribe function.
func (c *Controller) AddProgressListener(fn func(progress float64)) func() {
	return c.pos.addListener(func() { fn(c.Progress()) })
}

// Open shows the sheet at the initial snap index. It does nothing while the
// sheet is opening, visible or closing.
func (c *Controller) Open() {
	if c.disposed {
		return
	}
	if c.phase != PhaseHidden || c.anim.imperativeActive() {
		c.ignored("open", "sheet is "+c.phase.String())
		return
	}

	c.index = c.cfg.InitialSnapIndex
	c.pendingSnap = -1
	c.phase = PhaseOpening

	tweens := []tween{{
		ctrl:     c.pos.backdrop,
		target:   c.cfg.BackdropOpacity,
		duration: c.cfg.OpenDuration,
		curve:    animation.EaseInOut,
	}}
	if len(c.pixels) > 0 {
		c.pos.Set(SnapOffset(c.index, c.pixels))
	} else {
		c.pos.Set(c.viewportHeight)
		tweens = append(tweens, tween{
			ctrl:     c.pos.offset,
			target:   0,
			duration: c.cfg.OpenDuration,
			curve:    animation.EaseOutCubic,
		})
	}
	c.anim.start(TransitionOpen, tweens, c.opened)
}

func (c *Controller) opened() {
	c.phase = PhaseVisible
	c.post("sheet.OnOpen", c.cfg.OnOpen)

	if pending := c.pendingSnap; pending >= 0 {
		c.pendingSnap = -1
		c.snapTo(pending)
		return
	}
	if c.pos.Offset() != c.restOffset() {
		c.applyKeyboard()
	}
}

// Present is an alias for Open.
func (c *Controller) Present() { c.Open() }

// Close hides the sheet. It does nothing while the sheet is hidden or
// already closing, so repeated calls produce one transition and one
// OnClose. Closing interrupts an open in progress.
func (c *Controller) Close() {
	if c.disposed {
		return
	}
	if c.phase == PhaseHidden || c.phase == PhaseClosing {
		c.ignored("close", "sheet is "+c.phase.String())
		return
	}

	c.drag.end()
	c.pendingSnap = -1
	c.phase = PhaseClosing
	c.anim.start(TransitionClose, []tween{
		{
			ctrl:     c.pos.backdrop,
			target:   0,
			duration: c.cfg.OpenDuration,
			curve:    animation.EaseInOut,
		},
		{
			ctrl:     c.pos.offset,
			target:   c.viewportHeight + c.cfg.CloseMargin,
			duration: c.cfg.CloseDuration,
			curve:    animation.EaseInOut,
		},
	}, c.closed)
}

func (c *Controller) closed() {
	c.phase = PhaseHidden
	c.pos.hide(c.viewportHeight, c.cfg.CloseMargin)
	c.post("sheet.OnClose", c.cfg.OnClose)
}

// Dismiss is an alias for Close.
func (c *Controller) Dismiss() { c.Close() }

// SnapToIndex moves the sheet to snap point i. Out of range indices, and
// calls without snap points, are ignored. While opening, the snap runs once
// the open settles. OnSnapPointChange is posted as soon as the snap starts.
func (c *Controller) SnapToIndex(i int) {
	if c.disposed {
		return
	}
	if len(c.pixels) == 0 || i < 0 || i >= len(c.pixels) {
		c.ignored("snap", fmt.Sprintf("index %d out of range", i))
		return
	}
	switch c.phase {
	case PhaseOpening:
		c.pendingSnap = i
		return
	case PhaseHidden, PhaseClosing:
		c.ignored("snap", "sheet is "+c.phase.String())
		return
	}
	if c.drag.active {
		c.ignored("snap", "drag in progress")
		return
	}
	c.snapTo(i)
}

// SnapToPoint is an alias for SnapToIndex.
func (c *Controller) SnapToPoint(i int) { c.SnapToIndex(i) }

func (c *Controller) snapTo(i int) {
	c.index = i
	c.moveToRest(TransitionSnap)
	if fn := c.cfg.OnSnapPointChange; fn != nil {
		c.post("sheet.OnSnapPointChange", func() { fn(i) })
	}
}

// settle returns the sheet to its rest position after a drag that did not
// change the snap index.
func (c *Controller) settle() {
	c.moveToRest(TransitionReset)
}

// moveToRest animates the offset from where it is to restOffset, timed and
// eased for kind.
func (c *Controller) moveToRest(kind TransitionKind) {
	tw := tween{ctrl: c.pos.offset, target: c.restOffset()}
	switch kind {
	case TransitionReset:
		tw.duration, tw.curve = c.cfg.ResetDuration, animation.Out(animation.EaseIn)
	case TransitionKeyboard:
		tw.duration, tw.curve = c.cfg.KeyboardDuration, animation.EaseOutCubic
	default:
		tw.duration, tw.curve = c.cfg.SnapDuration, animation.Ease
	}
	c.anim.start(kind, []tween{tw}, nil)
}

// restOffset is where the sheet rests at the current index, lifted above
// the keyboard when avoidance is on.
func (c *Controller) restOffset() float64 {
	return SnapOffset(c.index, c.pixels) - c.lift()
}

func (c *Controller) lift() float64 {
	if !c.cfg.AvoidKeyboard || c.keyboardHeight <= 0 {
		return 0
	}
	return c.keyboardHeight + c.cfg.KeyboardOffset
}

// SetViewportHeight re-resolves snap points against a new viewport height.
func (c *Controller) SetViewportHeight(height float64) {
	if c.disposed || height <= 0 || height == c.viewportHeight {
		return
	}
	c.viewportHeight = height
	c.pixels = ResolveSnapPoints(c.cfg.SnapPoints, height)
	c.relayout()
}

// SetSnapPoints replaces the snap points. The current index is clamped to
// the new range.
func (c *Controller) SetSnapPoints(points []SnapPoint) {
	if c.disposed {
		return
	}
	c.cfg.SnapPoints = append([]SnapPoint(nil), points...)
	c.pixels = ResolveSnapPoints(c.cfg.SnapPoints, c.viewportHeight)
	if c.cfg.InitialSnapIndex >= len(c.pixels) {
		c.cfg.InitialSnapIndex = 0
	}
	if c.index >= len(c.pixels) {
		c.index = max(len(c.pixels)-1, 0)
	}
	if c.pendingSnap >= len(c.pixels) {
		c.pendingSnap = -1
	}
	c.relayout()
}

// relayout moves the sheet to its rest position under the current layout.
// A running snap, reset or keyboard move is restarted toward the new rest
// offset from where the sheet is now.
func (c *Controller) relayout() {
	if c.phase == PhaseHidden {
		c.pos.hide(c.viewportHeight, c.cfg.CloseMargin)
		return
	}
	if c.phase != PhaseVisible || c.drag.active {
		return
	}
	kind, busy := c.anim.active()
	switch {
	case !busy:
		c.pos.Set(c.restOffset())
	case !kind.Imperative() && c.pos.offset.Target() != c.restOffset():
		c.moveToRest(kind)
	}
}

// Dispose stops all animation and timers and removes the sheet from its
// registry. The controller ignores every call afterwards.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.anim.dispose()
	c.keyboardWait = false
	c.scroll.stop()
	c.drag.end()
	c.pos.dispose()
	if c.registry != nil {
		c.registry.unregister(c.name, c)
	}
}

// post schedules a host callback on the next tick, reporting a panic
// instead of letting it unwind the loop.
func (c *Controller) post(op string, fn func()) {
	if fn == nil {
		return
	}
	c.loop.Post(func() {
		if !errors.Guard(op, fn) {
			c.logger.Debug("callback panicked", "sheet", c.name, "op", op)
		}
	})
}

func (c *Controller) ignored(op, reason string) {
	c.logger.Debug("call ignored", "sheet", c.name, "op", op, "reason", reason)
}
