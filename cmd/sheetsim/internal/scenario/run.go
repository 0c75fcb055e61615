package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/go-drift/modalsheet/pkg/config"
	"github.com/go-drift/modalsheet/pkg/logging"
	"github.com/go-drift/modalsheet/pkg/sheet"
	sheettest "github.com/go-drift/modalsheet/pkg/testing"
)

// OffsetTolerance is how far an offset may be from its expected value.
const OffsetTolerance = 0.5

// DefaultSettleTimeout bounds a settle step without an explicit duration.
const DefaultSettleTimeout = 5 * time.Second

// Options configures a replay.
type Options struct {
	// Config supplies sheets referenced by a scenario's use field.
	Config *config.Set
	// Logger receives sheet debug records. Nil discards them.
	Logger *slog.Logger
	// Observer, when set, replaces the sheet's observer.
	Observer sheet.Observer
}

// Failure is one failed step.
type Failure struct {
	Step    int
	Line    int
	Action  string
	Message string
}

func (f Failure) String() string {
	return fmt.Sprintf("step %d (line %d, %s): %s", f.Step+1, f.Line, f.Action, f.Message)
}

// Result is the outcome of one replay.
type Result struct {
	Name     string
	Path     string
	Steps    int
	Elapsed  time.Duration // simulated
	Failures []Failure
}

// Passed reports whether every step succeeded.
func (r Result) Passed() bool {
	return len(r.Failures) == 0
}

// Run replays sc on a fresh sheet with a fake clock. Step failures are
// collected in the result; the returned error is for scenarios that cannot
// run at all, or for ctx cancellation.
func Run(ctx context.Context, sc *Scenario, opts Options) (Result, error) {
	result := Result{Name: sc.Name, Path: sc.Path}

	cfg, err := sc.Config(opts.Config)
	if err != nil {
		return result, err
	}
	if cfg.Name == "" {
		cfg.Name = sc.Name
	}
	cfg.Logger = logging.OrNop(opts.Logger).With("scenario", sc.Name)
	if opts.Observer != nil {
		cfg.Observer = opts.Observer
	}

	tester := sheettest.NewSheetTester(cfg)
	defer tester.Dispose()
	start := tester.Clock().Now()

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Steps++
		for _, msg := range apply(tester, step) {
			result.Failures = append(result.Failures, Failure{
				Step:    i,
				Line:    step.Line,
				Action:  step.Action,
				Message: msg,
			})
		}
	}
	result.Elapsed = tester.Clock().Now().Sub(start)
	return result, nil
}

// apply runs one step and returns its failure messages.
func apply(t *sheettest.SheetTester, step Step) []string {
	s := t.Sheet()
	switch step.Action {
	case "open":
		s.Open()
	case "close":
		s.Close()
	case "snap":
		s.SnapToIndex(step.Index)
	case "drag":
		steps := step.Drag.Steps
		if steps <= 0 {
			steps = sheettest.DefaultDragSteps
		}
		if _, err := t.DragSteps(step.Drag.DY, steps); err != nil {
			return []string{err.Error()}
		}
	case "cancel_drag":
		s.PointerDown(sheet.PointerSample{Y: 0})
		if !s.Dragging() {
			return []string{"sheet rejected pointer down"}
		}
		s.PointerMove(sheet.PointerSample{Y: step.Drag.DY})
		s.PointerCancel()
	case "scroll_begin":
		s.HandleScrollBeginDrag(sheet.ScrollAt(step.Value))
	case "scroll":
		s.HandleScroll(step.Scroll.sample())
	case "scroll_end":
		s.HandleScrollEndDrag(step.Scroll.sample())
	case "keyboard":
		s.SetKeyboardHeight(step.Value)
	case "viewport":
		s.SetViewportHeight(step.Value)
	case "wait":
		t.Advance(step.Duration)
	case "pump":
		t.PumpFrames(step.Frames)
	case "settle":
		timeout := step.Duration
		if timeout <= 0 {
			timeout = DefaultSettleTimeout
		}
		if err := t.PumpAndSettle(timeout); err != nil {
			return []string{err.Error()}
		}
	case "expect":
		return check(t, step.Expect)
	}
	return nil
}

func check(t *sheettest.SheetTester, e Expectation) []string {
	s := t.Sheet()
	rec := t.Recorder()
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	if e.Phase != nil && s.Phase().String() != *e.Phase {
		fail("phase: got %s, want %s", s.Phase(), *e.Phase)
	}
	if e.Index != nil && s.CurrentIndex() != *e.Index {
		fail("index: got %d, want %d", s.CurrentIndex(), *e.Index)
	}
	if e.Offset != nil && math.Abs(s.Offset()-*e.Offset) > OffsetTolerance {
		fail("offset: got %.2f, want %.2f", s.Offset(), *e.Offset)
	}
	if e.Opacity != nil && math.Abs(s.BackdropOpacity()-*e.Opacity) > 0.01 {
		fail("opacity: got %.3f, want %.3f", s.BackdropOpacity(), *e.Opacity)
	}
	if e.Animating != nil && s.Animating() != *e.Animating {
		fail("animating: got %v, want %v", s.Animating(), *e.Animating)
	}
	if e.Opens != nil && rec.Opens() != *e.Opens {
		fail("opens: got %d, want %d", rec.Opens(), *e.Opens)
	}
	if e.Closes != nil && rec.Closes() != *e.Closes {
		fail("closes: got %d, want %d", rec.Closes(), *e.Closes)
	}
	if e.Snaps != nil && !slices.Equal(rec.Snaps(), e.Snaps) {
		fail("snaps: got %v, want %v", rec.Snaps(), e.Snaps)
	}
	return failures
}
