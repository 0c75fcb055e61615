package testing

import (
	"fmt"

	"github.com/go-drift/modalsheet/pkg/sheet"
)

// DefaultDragSteps is how many move events Drag sends between down and up.
const DefaultDragSteps = 10

// dragStartY is where simulated drags put the pointer down. Only deltas
// matter to the sheet.
const dragStartY = 400

// Drag simulates a pointer drag of dy pixels (positive is downward), one
// move per frame, and releases. It returns an error if the sheet did not
// accept the drag.
func (t *SheetTester) Drag(dy float64) (sheet.DragResult, error) {
	return t.DragSteps(dy, DefaultDragSteps)
}

// DragSteps is Drag with an explicit number of move events.
func (t *SheetTester) DragSteps(dy float64, steps int) (sheet.DragResult, error) {
	steps = max(steps, 1)
	s := t.sheet
	s.PointerDown(sheet.PointerSample{Y: dragStartY, Time: t.clock.Now()})
	if !s.Dragging() {
		return sheet.DragResult{}, fmt.Errorf("Drag: sheet rejected pointer down (phase %s, animating %v)", s.Phase(), s.Animating())
	}
	for i := 1; i <= steps; i++ {
		t.clock.Advance(FrameDuration)
		s.PointerMove(sheet.PointerSample{Y: dragStartY + dy*float64(i)/float64(steps), Time: t.clock.Now()})
	}
	result, ok := s.PointerUp(sheet.PointerSample{Y: dragStartY + dy, Time: t.clock.Now()})
	if !ok {
		return sheet.DragResult{}, fmt.Errorf("Drag: drag ended before release")
	}
	return result, nil
}

// ScrollContent simulates a content scroll gesture: begin-drag at from, one
// scroll event at to carrying velocity, and end-drag at to with the same
// velocity.
func (t *SheetTester) ScrollContent(from, to, velocity float64) {
	s := t.sheet
	s.HandleScrollBeginDrag(sheet.ScrollAt(from))
	s.HandleScroll(sheet.ScrollWithVelocity(to, velocity))
	s.HandleScrollEndDrag(sheet.ScrollWithVelocity(to, velocity))
}

// PullAtTop simulates pulling content that rests at its top, released with
// velocity (negative is downward), reported only at end-drag.
func (t *SheetTester) PullAtTop(velocity float64) {
	s := t.sheet
	s.HandleScrollBeginDrag(sheet.ScrollAt(0))
	s.HandleScrollEndDrag(sheet.ScrollWithVelocity(0, velocity))
}
