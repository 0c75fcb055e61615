package sheet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/modalsheet/pkg/sheet"
	sheettest "github.com/go-drift/modalsheet/pkg/testing"
)

// pixelSnaps rests at offsets [500 300 0].
func pixelSnaps(obs sheet.Observer) sheet.Config {
	return sheet.Config{
		ViewportHeight: 800,
		SnapPoints:     []sheet.SnapPoint{sheet.Pixels(100), sheet.Pixels(300), sheet.Pixels(600)},
		Observer:       obs,
	}
}

func TestDrag_ReleaseSnapsToNearest(t *testing.T) {
	tester := openTester(t, pixelSnaps(nil))
	s := tester.Sheet()
	require.Equal(t, 500.0, s.Offset())

	result, err := tester.Drag(-210)
	require.NoError(t, err)

	assert.Equal(t, sheet.Target(1), result.Target)
	assert.Equal(t, 290.0, result.Offset)
	assert.Equal(t, -210.0, result.Displacement)
	assert.Less(t, result.Velocity, 0.0)

	tester.MustSettle(t)
	assert.Equal(t, 300.0, s.Offset())
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Equal(t, []int{1}, tester.Recorder().Snaps())
}

func TestDrag_PastSmallestCloses(t *testing.T) {
	obs := &recordingObserver{}
	tester := openTester(t, pixelSnaps(obs))

	result, err := tester.Drag(60)
	require.NoError(t, err)
	assert.Equal(t, sheet.TargetClosed, result.Target)

	tester.MustSettle(t)
	assert.Equal(t, sheet.PhaseHidden, tester.Sheet().Phase())
	assert.Equal(t, 1, tester.Recorder().Closes())
	require.Len(t, obs.drags, 1)
	assert.Equal(t, 560.0, obs.drags[0].Offset)
}

func TestDrag_WithinThresholdSnapsBack(t *testing.T) {
	tester := openTester(t, pixelSnaps(nil))

	result, err := tester.Drag(40)
	require.NoError(t, err)
	assert.Equal(t, sheet.Target(0), result.Target)

	tester.MustSettle(t)
	assert.Equal(t, 500.0, tester.Sheet().Offset())
	assert.Equal(t, sheet.PhaseVisible, tester.Sheet().Phase())
	assert.Equal(t, []int{0}, tester.Recorder().Snaps())
}

func TestDrag_TracksPointerOneToOne(t *testing.T) {
	tester := openTester(t, pixelSnaps(nil))
	s := tester.Sheet()

	s.PointerDown(sheet.PointerSample{Y: 100})
	require.True(t, s.Dragging())
	s.PointerMove(sheet.PointerSample{Y: 130})
	assert.Equal(t, 530.0, s.Offset())
	s.PointerMove(sheet.PointerSample{Y: 20})
	assert.Equal(t, 420.0, s.Offset())
	assert.False(t, s.Animating())
}

func TestDrag_CannotPassFullExpansion(t *testing.T) {
	tester := openTester(t, pixelSnaps(nil))
	s := tester.Sheet()
	s.SnapToIndex(2)
	tester.MustSettle(t)

	s.PointerDown(sheet.PointerSample{Y: 300})
	s.PointerMove(sheet.PointerSample{Y: 200})
	assert.Equal(t, 0.0, s.Offset())

	// Collapsing from the top is allowed.
	s.PointerMove(sheet.PointerSample{Y: 350})
	assert.Equal(t, 50.0, s.Offset())

	result, ok := s.PointerUp(sheet.PointerSample{Y: 350})
	require.True(t, ok)
	assert.Equal(t, sheet.Target(2), result.Target)
}

func TestDrag_UpwardAllowedBelowLastIndex(t *testing.T) {
	tester := openTester(t, pixelSnaps(nil))
	s := tester.Sheet()

	s.PointerDown(sheet.PointerSample{Y: 600})
	s.PointerMove(sheet.PointerSample{Y: 0})

	assert.Equal(t, -100.0, s.Offset())
}

func TestDrag_IgnoredWhileAnimating(t *testing.T) {
	tester := sheettest.NewSheetTesterWithT(t, pixelSnaps(nil))
	s := tester.Sheet()

	s.PointerDown(sheet.PointerSample{Y: 100})
	assert.False(t, s.Dragging(), "hidden")

	s.Open()
	s.PointerDown(sheet.PointerSample{Y: 100})
	assert.False(t, s.Dragging(), "opening")

	tester.MustSettle(t)
	s.SnapToIndex(1)
	s.PointerDown(sheet.PointerSample{Y: 100})
	assert.False(t, s.Dragging(), "snapping")

	_, ok := s.PointerUp(sheet.PointerSample{Y: 200})
	assert.False(t, ok)
}

func TestDrag_BlocksImperativeSnap(t *testing.T) {
	tester := openTester(t, pixelSnaps(nil))
	s := tester.Sheet()

	s.PointerDown(sheet.PointerSample{Y: 100})
	s.SnapToIndex(2)
	tester.Pump()

	assert.Empty(t, tester.Recorder().Snaps())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.True(t, s.Dragging())
}

func TestDrag_CancelReturnsToRest(t *testing.T) {
	obs := &recordingObserver{}
	tester := openTester(t, pixelSnaps(obs))
	s := tester.Sheet()

	s.PointerDown(sheet.PointerSample{Y: 100})
	s.PointerMove(sheet.PointerSample{Y: 250})
	s.PointerCancel()
	assert.False(t, s.Dragging())

	tester.MustSettle(t)
	assert.Equal(t, 500.0, s.Offset())
	assert.Empty(t, obs.drags)
	assert.Equal(t, 1, obs.count(sheet.TransitionReset))
}

func TestDrag_CloseDuringDragEndsIt(t *testing.T) {
	tester := openTester(t, pixelSnaps(nil))
	s := tester.Sheet()

	s.PointerDown(sheet.PointerSample{Y: 100})
	s.Close()
	assert.False(t, s.Dragging())

	s.PointerMove(sheet.PointerSample{Y: 0})
	tester.MustSettle(t)
	assert.Equal(t, sheet.PhaseHidden, s.Phase())
}

func TestDrag_SinglePosition(t *testing.T) {
	t.Run("short drag resets", func(t *testing.T) {
		obs := &recordingObserver{}
		tester := openTester(t, sheet.Config{Observer: obs})

		result, err := tester.Drag(40)
		require.NoError(t, err)
		assert.Equal(t, sheet.TargetReset, result.Target)

		tester.MustSettle(t)
		assert.Equal(t, 0.0, tester.Sheet().Offset())
		assert.Equal(t, sheet.PhaseVisible, tester.Sheet().Phase())
		assert.Equal(t, 1, obs.count(sheet.TransitionReset))
	})

	t.Run("long drag closes", func(t *testing.T) {
		tester := openTester(t, sheet.Config{})

		result, err := tester.Drag(60)
		require.NoError(t, err)
		assert.Equal(t, sheet.TargetClosed, result.Target)

		tester.MustSettle(t)
		assert.Equal(t, sheet.PhaseHidden, tester.Sheet().Phase())
	})

	t.Run("cannot pull above open", func(t *testing.T) {
		tester := openTester(t, sheet.Config{})
		s := tester.Sheet()

		s.PointerDown(sheet.PointerSample{Y: 300})
		s.PointerMove(sheet.PointerSample{Y: 100})
		assert.Equal(t, 0.0, s.Offset())
	})
}

func TestDrag_ResetIsQuick(t *testing.T) {
	tester := openTester(t, sheet.Config{})
	_, err := tester.Drag(30)
	require.NoError(t, err)

	tester.Advance(50 * time.Millisecond)
	assert.Equal(t, 0.0, tester.Sheet().Offset())
}
