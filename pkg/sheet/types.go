package sheet

import (
	"fmt"
	"time"
)

// Phase is the top-level lifecycle state of a sheet.
//
//	Hidden ──Open──► Opening ──► Visible ──Close──► Closing ──► Hidden
//
// Visible carries the current snap index; SnapToIndex changes only that.
type Phase int

const (
	PhaseHidden Phase = iota
	PhaseOpening
	PhaseVisible
	PhaseClosing
)

func (p Phase) String() string {
	switch p {
	case PhaseHidden:
		return "hidden"
	case PhaseOpening:
		return "opening"
	case PhaseVisible:
		return "visible"
	case PhaseClosing:
		return "closing"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Target is where a gesture resolves: a snap index (>= 0), TargetClosed or
// TargetReset.
type Target int

const (
	// TargetClosed dismisses the sheet.
	TargetClosed Target = -1
	// TargetReset animates back to the open position (single-position mode).
	TargetReset Target = -2
)

// Index returns the snap index and true when t names one.
func (t Target) Index() (int, bool) {
	if t < 0 {
		return 0, false
	}
	return int(t), true
}

func (t Target) String() string {
	switch t {
	case TargetClosed:
		return "closed"
	case TargetReset:
		return "reset"
	default:
		return fmt.Sprintf("index %d", int(t))
	}
}

// TransitionKind identifies what started a transition.
type TransitionKind int

const (
	TransitionOpen TransitionKind = iota
	TransitionClose
	TransitionSnap
	TransitionReset
	TransitionKeyboard
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionOpen:
		return "open"
	case TransitionClose:
		return "close"
	case TransitionSnap:
		return "snap"
	case TransitionReset:
		return "reset"
	case TransitionKeyboard:
		return "keyboard"
	default:
		return fmt.Sprintf("TransitionKind(%d)", int(k))
	}
}

// Imperative reports whether the transition changes visibility. Opening and
// closing block re-entrant opens and defer keyboard repositioning.
func (k TransitionKind) Imperative() bool {
	return k == TransitionOpen || k == TransitionClose
}

// PointerSample is one pointer down, move or up event. A zero Time means
// "now" on the sheet's clock.
type PointerSample struct {
	Y    float64
	Time time.Time
}

// ScrollSample is one event from an embedded scrollable region. Velocity is
// in points per millisecond, positive when content moves toward its end.
// HasVelocity is false for hosts that do not report velocity on this event.
type ScrollSample struct {
	OffsetY     float64
	VelocityY   float64
	HasVelocity bool
}

// ScrollAt returns a sample without velocity.
func ScrollAt(offsetY float64) ScrollSample {
	return ScrollSample{OffsetY: offsetY}
}

// ScrollWithVelocity returns a sample carrying velocity.
func ScrollWithVelocity(offsetY, velocityY float64) ScrollSample {
	return ScrollSample{OffsetY: offsetY, VelocityY: velocityY, HasVelocity: true}
}

// ScrollPath names the scroll rule that triggered a transition.
type ScrollPath int

const (
	ScrollExpand ScrollPath = iota
	ScrollCollapse
	ScrollEndDrag
)

func (p ScrollPath) String() string {
	switch p {
	case ScrollExpand:
		return "expand"
	case ScrollCollapse:
		return "collapse"
	case ScrollEndDrag:
		return "end_drag"
	default:
		return fmt.Sprintf("ScrollPath(%d)", int(p))
	}
}

// DragResult describes how a released drag was resolved.
type DragResult struct {
	Target Target
	// Offset is the sheet offset at release.
	Offset float64
	// Displacement is the pointer travel from down to up; positive is downward.
	Displacement float64
	// Velocity is the smoothed pointer velocity at release in px/s.
	Velocity float64
}
