package animation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/modalsheet/pkg/animation"
	sheettest "github.com/go-drift/modalsheet/pkg/testing"
)

func newController(t *testing.T, d time.Duration) (*animation.AnimationController, *animation.TickerGroup, *sheettest.FakeClock) {
	t.Helper()
	clock := sheettest.NewFakeClock()
	group := animation.NewTickerGroup(clock)
	return animation.NewAnimationController(d, group), group, clock
}

func TestAnimationController_ReachesTarget(t *testing.T) {
	ctrl, group, clock := newController(t, 300*time.Millisecond)
	ctrl.Value = 600

	done := 0
	ctrl.AnimateTo(100, func() { done++ })
	assert.Equal(t, animation.AnimationReverse, ctrl.Status())
	assert.True(t, group.HasActiveTickers())

	clock.Advance(150 * time.Millisecond)
	group.Step()
	assert.InDelta(t, 350, ctrl.Value, 1e-9)
	assert.Equal(t, 0, done)

	clock.Advance(200 * time.Millisecond)
	group.Step()
	assert.Equal(t, 100.0, ctrl.Value)
	assert.Equal(t, 1, done)
	assert.True(t, ctrl.IsCompleted())
	assert.False(t, group.HasActiveTickers())
}

func TestAnimationController_SupersedeStartsFromCurrentValue(t *testing.T) {
	ctrl, group, clock := newController(t, 100*time.Millisecond)

	first := 0
	ctrl.AnimateTo(100, func() { first++ })
	clock.Advance(50 * time.Millisecond)
	group.Step()
	require.InDelta(t, 50, ctrl.Value, 1e-9)

	second := 0
	ctrl.AnimateTo(0, func() { second++ })
	// The new run begins where the old one was interrupted.
	clock.Advance(50 * time.Millisecond)
	group.Step()
	assert.InDelta(t, 25, ctrl.Value, 1e-9)

	clock.Advance(100 * time.Millisecond)
	group.Step()
	assert.Equal(t, 0.0, ctrl.Value)
	assert.Equal(t, 0, first, "superseded run must not complete")
	assert.Equal(t, 1, second)
}

func TestAnimationController_ZeroDurationCompletesOnNextStep(t *testing.T) {
	ctrl, group, _ := newController(t, 0)

	done := false
	ctrl.AnimateTo(42, func() { done = true })
	assert.False(t, done)
	assert.Equal(t, 0.0, ctrl.Value)

	group.Step()
	assert.True(t, done)
	assert.Equal(t, 42.0, ctrl.Value)
}

func TestAnimationController_SetStops(t *testing.T) {
	ctrl, group, clock := newController(t, 100*time.Millisecond)

	called := false
	ctrl.AnimateTo(10, func() { called = true })
	ctrl.Set(900)
	assert.Equal(t, animation.AnimationStopped, ctrl.Status())

	clock.Advance(time.Second)
	group.Step()
	assert.False(t, called)
	assert.Equal(t, 900.0, ctrl.Value)
}

func TestAnimationController_Listeners(t *testing.T) {
	ctrl, group, clock := newController(t, 100*time.Millisecond)

	values := 0
	unsubscribe := ctrl.AddListener(func() { values++ })
	var statuses []animation.AnimationStatus
	ctrl.AddStatusListener(func(s animation.AnimationStatus) { statuses = append(statuses, s) })

	ctrl.AnimateTo(1, nil)
	clock.Advance(40 * time.Millisecond)
	group.Step()
	unsubscribe()
	clock.Advance(100 * time.Millisecond)
	group.Step()

	assert.Equal(t, 1, values)
	assert.Equal(t, []animation.AnimationStatus{animation.AnimationForward, animation.AnimationCompleted}, statuses)
}

func TestAnimationStatus_String(t *testing.T) {
	tests := []struct {
		status animation.AnimationStatus
		want   string
	}{
		{animation.AnimationIdle, "idle"},
		{animation.AnimationForward, "forward"},
		{animation.AnimationReverse, "reverse"},
		{animation.AnimationCompleted, "completed"},
		{animation.AnimationStopped, "stopped"},
		{animation.AnimationStatus(9), "AnimationStatus(9)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}

func TestCurves_Endpoints(t *testing.T) {
	curves := map[string]animation.Curve{
		"linear":       animation.LinearCurve,
		"ease":         animation.Ease,
		"easeIn":       animation.EaseIn,
		"easeOut":      animation.EaseOut,
		"easeInOut":    animation.EaseInOut,
		"easeOutCubic": animation.EaseOutCubic,
	}
	for name, curve := range curves {
		assert.InDelta(t, 0, curve(0), 1e-6, name)
		assert.InDelta(t, 1, curve(1), 1e-6, name)
	}
	assert.InDelta(t, 0.875, animation.EaseOutCubic(0.5), 1e-9)
	assert.Greater(t, animation.Out(animation.EaseIn)(0.3), 0.3)
}
