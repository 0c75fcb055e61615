package sheet

import (
	"math"
	"time"

	"github.com/go-drift/modalsheet/pkg/scheduler"
)

// Scroll velocity tiers, in points per millisecond.
const (
	scrollTriggerVelocity = 0.8
	scrollJumpTwoVelocity = 2.2
	scrollJumpAllVelocity = 3.5

	endDragPullVelocity  = 0.3
	endDragCloseVelocity = 1.0
)

// scrollSession tracks an embedded scrollable region. The two guards cool
// down independently: one after continuous-scroll triggers, one after
// end-drag triggers. A trigger needs both clear so one gesture cannot fire
// through both paths.
type scrollSession struct {
	dragStartY float64
	lastY      float64

	scrollTimer  *scheduler.Timer
	endDragTimer *scheduler.Timer
}

func (s *scrollSession) ready() bool {
	return s.scrollTimer == nil && s.endDragTimer == nil
}

func (s *scrollSession) coolScroll(loop *scheduler.Loop, d time.Duration) {
	s.scrollTimer.Stop()
	var t *scheduler.Timer
	t = loop.AfterFunc(d, func() {
		if s.scrollTimer == t {
			s.scrollTimer = nil
		}
	})
	s.scrollTimer = t
}

func (s *scrollSession) coolEndDrag(loop *scheduler.Loop, d time.Duration) {
	s.endDragTimer.Stop()
	var t *scheduler.Timer
	t = loop.AfterFunc(d, func() {
		if s.endDragTimer == t {
			s.endDragTimer = nil
		}
	})
	s.endDragTimer = t
}

func (s *scrollSession) stop() {
	s.scrollTimer.Stop()
	s.endDragTimer.Stop()
	s.scrollTimer = nil
	s.endDragTimer = nil
}

// ExpandTarget returns the snap index a downward content scroll jumps to
// from current, given count snap points and the scroll velocity.
func ExpandTarget(current, count int, velocity float64) int {
	last := count - 1
	switch {
	case velocity > scrollJumpAllVelocity:
		return last
	case velocity > scrollJumpTwoVelocity:
		return min(current+2, last)
	default:
		return min(current+1, last)
	}
}

// CollapseTarget returns where an upward pull at the top of the content
// goes from current. Pulling from the first snap point closes the sheet.
func CollapseTarget(current int, velocity float64) Target {
	target := current - 1
	switch {
	case velocity < -scrollJumpAllVelocity:
		target = 0
	case velocity < -scrollJumpTwoVelocity:
		target = max(current-2, 0)
	}
	if target < 0 || current == 0 {
		return TargetClosed
	}
	return Target(target)
}

// EndDragTarget returns where a pull released at the top of the content
// goes from current. A fast pull closes outright.
func EndDragTarget(current int, velocity float64) Target {
	if math.Abs(velocity) > endDragCloseVelocity || current == 0 {
		return TargetClosed
	}
	return Target(current - 1)
}

func (c *Controller) scrollArmed() bool {
	return len(c.pixels) > 0 && !c.cfg.DisableScrollToExpand &&
		c.phase == PhaseVisible && !c.drag.active
}

// HandleScrollBeginDrag records where the user started dragging the
// embedded content.
func (c *Controller) HandleScrollBeginDrag(sample ScrollSample) {
	if c.disposed {
		return
	}
	c.scroll.dragStartY = sample.OffsetY
}

// HandleScroll expands the sheet when its content is scrolled toward the end
// and collapses it when the content is pulled down past its top.
func (c *Controller) HandleScroll(sample ScrollSample) {
	if c.disposed {
		return
	}
	current, last := sample.OffsetY, c.scroll.lastY
	c.scroll.lastY = current
	if !c.scrollArmed() || !c.scroll.ready() {
		return
	}

	var velocity float64
	if sample.HasVelocity {
		velocity = sample.VelocityY
	}
	threshold := c.cfg.ScrollExpandThreshold

	switch {
	case current > last && c.index < len(c.pixels)-1:
		if current-last >= threshold || velocity > scrollTriggerVelocity {
			c.scroll.coolScroll(c.loop, c.cfg.ScrollCooldown)
			c.scrollTo(ScrollExpand, Target(ExpandTarget(c.index, len(c.pixels), velocity)))
		}
	case current <= 0 && current < last:
		if last-current >= threshold || velocity < -scrollTriggerVelocity {
			c.scroll.coolScroll(c.loop, c.cfg.ScrollCooldown)
			c.scrollTo(ScrollCollapse, CollapseTarget(c.index, velocity))
		}
	}
}

// HandleScrollEndDrag collapses the sheet when a pull that started and
// ended at the top of the content is released moving down.
func (c *Controller) HandleScrollEndDrag(sample ScrollSample) {
	if c.disposed || !c.scrollArmed() {
		return
	}
	atTop := c.scroll.dragStartY <= 0 && sample.OffsetY <= 0
	if !atTop || !sample.HasVelocity || sample.VelocityY >= -endDragPullVelocity {
		return
	}
	if !c.scroll.ready() {
		return
	}
	c.scroll.coolEndDrag(c.loop, c.cfg.EndDragCooldown)
	c.scrollTo(ScrollEndDrag, EndDragTarget(c.index, sample.VelocityY))
}

func (c *Controller) scrollTo(path ScrollPath, target Target) {
	c.cfg.Observer.ScrollTriggered(c.name, path, target)
	c.logger.Debug("scroll triggered", "sheet", c.name, "path", path.String(), "target", target.String())
	if i, ok := target.Index(); ok {
		c.snapTo(i)
		return
	}
	c.Close()
}
