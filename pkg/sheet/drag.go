package sheet

import (
	"math"
	"time"
)

// dragSession is the bookkeeping for one pointer drag. It exists from
// pointer down until release or cancel.
type dragSession struct {
	active        bool
	startPointerY float64
	startOffset   float64

	lastY    float64
	lastTime time.Time
	velocity float64 // smoothed, px/s
}

func (d *dragSession) begin(sample PointerSample, offset float64) {
	*d = dragSession{
		active:        true,
		startPointerY: sample.Y,
		startOffset:   offset,
		lastY:         sample.Y,
		lastTime:      sample.Time,
	}
}

// track records a pointer sample and returns the travel since pointer down.
func (d *dragSession) track(sample PointerSample) float64 {
	dt := sample.Time.Sub(d.lastTime).Seconds()
	if dt > 0 {
		inst := (sample.Y - d.lastY) / dt
		d.velocity = d.velocity*0.8 + inst*0.2
	}
	d.lastY = sample.Y
	d.lastTime = sample.Time
	return sample.Y - d.startPointerY
}

func (d *dragSession) end() {
	d.active = false
}

// clampDragOffset applies the live drag limits. At the last snap index the
// sheet cannot be pulled above full expansion; without snap points it cannot
// be pulled above its open position. Downward travel is never limited.
// lift is the current keyboard lift, which shifts every rest position up.
func clampDragOffset(candidate float64, index int, pixels []float64, lift float64) float64 {
	if len(pixels) == 0 {
		return math.Max(candidate, -lift)
	}
	if last := len(pixels) - 1; index == last {
		return math.Max(candidate, SnapOffset(last, pixels)-lift)
	}
	return candidate
}

// ResolveDragTarget returns where a drag released at offset settles when
// snap points are in use. A release more than threshold below the smallest
// snap point closes the sheet; otherwise the nearest snap offset wins, the
// lowest index taking exact ties. offset is measured without keyboard lift.
//
// An empty pixels slice resolves to TargetReset; use ResolveFreeDragTarget
// for single-position sheets.
func ResolveDragTarget(pixels []float64, offset, threshold float64) Target {
	if len(pixels) == 0 {
		return TargetReset
	}
	if offset > SnapOffset(0, pixels)+threshold {
		return TargetClosed
	}
	best := 0
	bestDist := math.Inf(1)
	for i := range pixels {
		if dist := math.Abs(offset - SnapOffset(i, pixels)); dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return Target(best)
}

// ResolveFreeDragTarget returns where a single-position sheet settles after a
// drag that moved the pointer displacement pixels (positive is downward).
func ResolveFreeDragTarget(displacement, threshold float64) Target {
	if displacement > threshold {
		return TargetClosed
	}
	return TargetReset
}

func (c *Controller) stamp(sample PointerSample) PointerSample {
	if sample.Time.IsZero() {
		sample.Time = c.loop.Now()
	}
	return sample
}

// PointerDown starts a drag. It is ignored unless the sheet is visible and
// no transition is running.
func (c *Controller) PointerDown(sample PointerSample) {
	if c.disposed || c.drag.active {
		return
	}
	if c.phase != PhaseVisible {
		c.ignored("drag", "sheet is "+c.phase.String())
		return
	}
	if kind, busy := c.anim.active(); busy {
		c.ignored("drag", kind.String()+" transition running")
		return
	}
	c.drag.begin(c.stamp(sample), c.pos.Offset())
}

// PointerMove tracks the pointer 1:1 while a drag is active.
func (c *Controller) PointerMove(sample PointerSample) {
	if !c.drag.active {
		return
	}
	c.follow(c.stamp(sample))
}

func (c *Controller) follow(sample PointerSample) float64 {
	dy := c.drag.track(sample)
	c.pos.Set(clampDragOffset(c.drag.startOffset+dy, c.index, c.pixels, c.lift()))
	return dy
}

// PointerUp ends the drag and animates to the resolved target. ok is false
// when no drag was active.
func (c *Controller) PointerUp(sample PointerSample) (result DragResult, ok bool) {
	if !c.drag.active {
		return DragResult{}, false
	}
	displacement := c.follow(c.stamp(sample))
	c.drag.end()

	offset := c.pos.Offset()
	var target Target
	if len(c.pixels) > 0 {
		target = ResolveDragTarget(c.pixels, offset+c.lift(), c.cfg.DragThreshold)
	} else {
		target = ResolveFreeDragTarget(displacement, c.cfg.DragThreshold)
	}
	result = DragResult{
		Target:       target,
		Offset:       offset,
		Displacement: displacement,
		Velocity:     c.drag.velocity,
	}
	c.cfg.Observer.DragResolved(c.name, result)
	c.logger.Debug("drag resolved", "sheet", c.name, "target", target.String(), "offset", offset, "velocity", result.Velocity)

	if i, isIndex := target.Index(); isIndex {
		c.snapTo(i)
	} else if target == TargetClosed {
		c.Close()
	} else {
		c.settle()
	}
	return result, true
}

// PointerCancel abandons the drag and returns the sheet to its rest position.
func (c *Controller) PointerCancel() {
	if !c.drag.active {
		return
	}
	c.drag.end()
	c.settle()
}
