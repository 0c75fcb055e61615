package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/modalsheet/pkg/scheduler"
	"github.com/go-drift/modalsheet/pkg/sheet"
)

// FrameDuration is the fake time between frames.
const FrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: sheet did not settle")

// SheetTester runs one sheet on a fake-clock loop. Time only moves when the
// test moves it.
type SheetTester struct {
	clock    *FakeClock
	loop     *scheduler.Loop
	sheet    *sheet.Controller
	recorder *Recorder
}

// NewSheetTester creates a hidden sheet from cfg. The config's callbacks are
// kept and also counted by the tester's Recorder.
// Call Dispose when done, or use NewSheetTesterWithT instead.
func NewSheetTester(cfg sheet.Config) *SheetTester {
	clk := NewFakeClock()
	loop := scheduler.New(clk)
	rec := &Recorder{}
	cfg = rec.wrap(cfg)
	return &SheetTester{
		clock:    clk,
		loop:     loop,
		sheet:    sheet.New(loop, cfg),
		recorder: rec,
	}
}

// NewSheetTesterWithT creates a tester that disposes its sheet via t.Cleanup().
// This is the recommended constructor for tests.
func NewSheetTesterWithT(t testing.TB, cfg sheet.Config) *SheetTester {
	tester := NewSheetTester(cfg)
	t.Cleanup(tester.Dispose)
	return tester
}

// Dispose disposes the sheet.
func (t *SheetTester) Dispose() {
	t.sheet.Dispose()
}

// Clock returns the fake clock.
func (t *SheetTester) Clock() *FakeClock { return t.clock }

// Loop returns the loop the sheet runs on.
func (t *SheetTester) Loop() *scheduler.Loop { return t.loop }

// Sheet returns the controller under test.
func (t *SheetTester) Sheet() *sheet.Controller { return t.sheet }

// Recorder returns the callback recorder.
func (t *SheetTester) Recorder() *Recorder { return t.recorder }

// Pump runs one frame without moving time.
func (t *SheetTester) Pump() {
	t.loop.Pump()
}

// PumpFrames advances the clock by one frame and pumps, n times.
func (t *SheetTester) PumpFrames(n int) {
	for i := 0; i < n; i++ {
		t.clock.Advance(FrameDuration)
		t.loop.Pump()
	}
}

// Advance moves time forward by d one frame at a time, pumping each frame,
// so animations and timers observe every step.
func (t *SheetTester) Advance(d time.Duration) {
	for d > 0 {
		step := min(d, FrameDuration)
		t.clock.Advance(step)
		t.loop.Pump()
		d -= step
	}
}

// PumpAndSettle runs frames until no transition is running and no callback
// is queued, or the timeout is reached. Each frame advances the fake clock by
// FrameDuration. Cooldown timers do not keep the sheet unsettled.
// Returns ErrSettleTimeout if the sheet does not settle within timeout.
func (t *SheetTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for {
		t.loop.Pump()
		if !t.loop.Busy() {
			return nil
		}
		if elapsed >= timeout {
			return ErrSettleTimeout
		}
		t.clock.Advance(FrameDuration)
		elapsed += FrameDuration
	}
}

// MustSettle is PumpAndSettle with a one second timeout that fails tb on timeout.
func (t *SheetTester) MustSettle(tb testing.TB) {
	tb.Helper()
	if err := t.PumpAndSettle(time.Second); err != nil {
		tb.Fatal(err)
	}
}

// Open opens the sheet and settles.
func (t *SheetTester) Open(tb testing.TB) {
	tb.Helper()
	t.sheet.Open()
	t.MustSettle(tb)
}
