// Package testing provides a deterministic harness for modal sheet tests.
//
// # Quick Start
//
// Create a tester, drive the sheet, and settle its animations:
//
//	func TestMySheet(t *testing.T) {
//	    tester := sheettest.NewSheetTesterWithT(t, sheet.Config{
//	        SnapPoints: []sheet.SnapPoint{sheet.Percent(30), sheet.Percent(90)},
//	    })
//	    tester.Sheet().Open()
//	    if err := tester.PumpAndSettle(time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    // Simulate gestures
//	    tester.Drag(-300)
//	    tester.PumpAndSettle(time.Second)
//
//	    if got := tester.Recorder().LastSnap(); got != 1 {
//	        t.Errorf("expected snap to 1, got %d", got)
//	    }
//	}
//
// # Time
//
// The sheet runs on a scheduler.Loop reading a [FakeClock]. Nothing moves
// until the test pumps:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// [SheetTester.Advance] steps frame by frame instead, so scroll cooldowns and
// animations see every intermediate time.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import sheettest "github.com/go-drift/modalsheet/pkg/testing"
package testing
