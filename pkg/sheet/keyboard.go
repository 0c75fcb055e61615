package sheet

// SetKeyboardHeight reports the on-screen keyboard height; 0 means hidden.
//
// With AvoidKeyboard set, a visible sheet moves so its rest position sits
// above the keyboard. A change that arrives while the sheet is opening or
// closing is applied once that transition settles.
func (c *Controller) SetKeyboardHeight(height float64) {
	if c.disposed {
		return
	}
	height = max(height, 0)
	if height == c.keyboardHeight {
		return
	}
	before := c.lift()
	c.keyboardHeight = height
	if !c.cfg.AvoidKeyboard {
		return
	}
	if c.phase != PhaseOpening && c.phase != PhaseVisible {
		return
	}
	if c.drag.active {
		// The pointer keeps its place relative to the lifted sheet.
		shift := c.lift() - before
		c.drag.startOffset -= shift
		c.pos.Set(c.pos.Offset() - shift)
		return
	}

	if c.anim.imperativeActive() {
		if !c.keyboardWait {
			c.keyboardWait = c.anim.afterImperative(func() {
				c.keyboardWait = false
				c.applyKeyboard()
			})
			c.logger.Debug("keyboard change deferred", "sheet", c.name, "height", height)
		}
		return
	}
	c.applyKeyboard()
}

// applyKeyboard moves the sheet to its lifted rest position. A snap already
// heading there is left alone; one heading elsewhere is retargeted from
// where it is.
func (c *Controller) applyKeyboard() {
	if c.phase != PhaseVisible || c.drag.active {
		return
	}
	rest := c.restOffset()
	if c.pos.offset.IsAnimating() {
		if c.pos.offset.Target() == rest {
			return
		}
	} else if c.pos.Offset() == rest {
		return
	}

	c.logger.Debug("keyboard reconcile", "sheet", c.name, "height", c.keyboardHeight, "target", rest)
	c.moveToRest(TransitionKeyboard)
}
