package sheet

import "github.com/go-drift/modalsheet/pkg/animation"

// PositionModel owns the sheet's offset and backdrop opacity. Offset 0 is the
// fully expanded resting position; larger offsets push the sheet down.
//
// Only the position model writes these values: directly through Set during a
// drag, or through the transitions the animator runs on its controllers.
type PositionModel struct {
	offset   *animation.AnimationController
	backdrop *animation.AnimationController
}

func newPositionModel(provider animation.TickerProvider) *PositionModel {
	return &PositionModel{
		offset:   animation.NewAnimationController(0, provider),
		backdrop: animation.NewAnimationController(0, provider),
	}
}

// Offset returns the current offset in pixels.
func (p *PositionModel) Offset() float64 {
	return p.offset.Value
}

// Opacity returns the current backdrop opacity.
func (p *PositionModel) Opacity() float64 {
	return p.backdrop.Value
}

// Set moves the offset immediately, stopping any offset animation.
func (p *PositionModel) Set(offset float64) {
	p.offset.Set(offset)
}

// hide parks the sheet far below the viewport with a clear backdrop so a
// later open never shows a stale frame.
func (p *PositionModel) hide(viewportHeight, margin float64) {
	p.offset.Set(viewportHeight + margin)
	p.backdrop.Set(0)
}

// stop halts both animations at their current values.
func (p *PositionModel) stop() {
	p.offset.Stop()
	p.backdrop.Stop()
}

func (p *PositionModel) addListener(fn func()) func() {
	return p.offset.AddListener(fn)
}

func (p *PositionModel) dispose() {
	p.offset.Dispose()
	p.backdrop.Dispose()
}
