package sheet_test

import (
	"fmt"
	"time"

	"github.com/go-drift/modalsheet/pkg/scheduler"
	"github.com/go-drift/modalsheet/pkg/sheet"
	sheettest "github.com/go-drift/modalsheet/pkg/testing"
)

func ExampleResolveSnapPoints() {
	points := []sheet.SnapPoint{sheet.Percent(50), sheet.Number(0.3), sheet.Number(300)}
	fmt.Println(sheet.ResolveSnapPoints(points, 800))
	// Output: [400 240 300]
}

func ExampleResolveDragTarget() {
	pixels := []float64{100, 300, 600}
	fmt.Println(sheet.ResolveDragTarget(pixels, 290, 50))
	fmt.Println(sheet.ResolveDragTarget(pixels, 560, 50))
	// Output:
	// index 1
	// closed
}

func ExampleController() {
	clock := sheettest.NewFakeClock()
	loop := scheduler.New(clock)
	s := sheet.New(loop, sheet.Config{
		ViewportHeight:    800,
		SnapPoints:        []sheet.SnapPoint{sheet.Number(0.3), sheet.Number(0.6), sheet.Number(0.9)},
		OnOpen:            func() { fmt.Println("opened") },
		OnSnapPointChange: func(i int) { fmt.Println("snap", i) },
	})
	defer s.Dispose()

	settle := func() {
		for loop.Pump(); loop.Busy(); loop.Pump() {
			clock.Advance(16 * time.Millisecond)
		}
	}

	s.Open()
	settle()
	fmt.Println(s.Phase(), s.Offset())

	s.SnapToPoint(2)
	settle()
	fmt.Println(s.CurrentIndex(), s.Offset())
	// Output:
	// opened
	// visible 480
	// snap 2
	// 2 0
}
