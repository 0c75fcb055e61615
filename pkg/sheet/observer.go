package sheet

import "time"

// Observer receives lifecycle notifications from a sheet. Methods run on the
// sheet's loop and must not block.
type Observer interface {
	// TransitionStarted is called when a transition begins.
	TransitionStarted(sheet string, kind TransitionKind)
	// TransitionFinished is called when a transition settles or is superseded.
	TransitionFinished(sheet string, kind TransitionKind, elapsed time.Duration, interrupted bool)
	// DragResolved is called when a released drag picks its target.
	DragResolved(sheet string, result DragResult)
	// ScrollTriggered is called when a scroll gesture triggers a transition.
	ScrollTriggered(sheet string, path ScrollPath, target Target)
}

// NopObserver ignores every notification. Embed it to implement only some methods.
type NopObserver struct{}

func (NopObserver) TransitionStarted(string, TransitionKind)                        {}
func (NopObserver) TransitionFinished(string, TransitionKind, time.Duration, bool) {}
func (NopObserver) DragResolved(string, DragResult)                                {}
func (NopObserver) ScrollTriggered(string, ScrollPath, Target)                     {}
