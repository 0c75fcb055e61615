package sheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-drift/modalsheet/pkg/sheet"
)

func TestResolveDragTarget(t *testing.T) {
	// Offsets are [500, 300, 0].
	pixels := []float64{100, 300, 600}

	tests := []struct {
		name   string
		offset float64
		want   sheet.Target
	}{
		{"nearest middle", 290, 1},
		{"past smallest closes", 560, sheet.TargetClosed},
		{"within threshold snaps to smallest", 540, 0},
		{"exactly at threshold snaps", 550, 0},
		{"near top", 40, 2},
		{"above top", -30, 2},
		{"tie takes lowest index", 400, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sheet.ResolveDragTarget(pixels, tt.offset, 50))
		})
	}
}

func TestResolveDragTarget_NoSnapPoints(t *testing.T) {
	assert.Equal(t, sheet.TargetReset, sheet.ResolveDragTarget(nil, 100, 50))
}

func TestResolveFreeDragTarget(t *testing.T) {
	assert.Equal(t, sheet.TargetClosed, sheet.ResolveFreeDragTarget(60, 50))
	assert.Equal(t, sheet.TargetReset, sheet.ResolveFreeDragTarget(50, 50))
	assert.Equal(t, sheet.TargetReset, sheet.ResolveFreeDragTarget(-200, 50))
}

func TestExpandTarget(t *testing.T) {
	tests := []struct {
		current, count int
		velocity       float64
		want           int
	}{
		{0, 3, 4.0, 2},
		{0, 3, 2.5, 2},
		{0, 3, 0.9, 1},
		{0, 5, 2.5, 2},
		{3, 5, 2.5, 4},
		{0, 5, 3.6, 4},
		{1, 3, 0, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sheet.ExpandTarget(tt.current, tt.count, tt.velocity),
			"ExpandTarget(%d, %d, %v)", tt.current, tt.count, tt.velocity)
	}
}

func TestCollapseTarget(t *testing.T) {
	tests := []struct {
		current  int
		velocity float64
		want     sheet.Target
	}{
		{2, -0.9, 1},
		{3, -2.5, 1},
		{1, -2.5, 0},
		{4, -4.0, 0},
		{0, -0.9, sheet.TargetClosed},
		{0, -4.0, sheet.TargetClosed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sheet.CollapseTarget(tt.current, tt.velocity),
			"CollapseTarget(%d, %v)", tt.current, tt.velocity)
	}
}

func TestEndDragTarget(t *testing.T) {
	assert.Equal(t, sheet.Target(1), sheet.EndDragTarget(2, -0.5))
	assert.Equal(t, sheet.TargetClosed, sheet.EndDragTarget(2, -1.5))
	assert.Equal(t, sheet.TargetClosed, sheet.EndDragTarget(0, -0.5))
}

func TestTarget_Index(t *testing.T) {
	i, ok := sheet.Target(2).Index()
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = sheet.TargetClosed.Index()
	assert.False(t, ok)
	assert.Equal(t, "closed", sheet.TargetClosed.String())
	assert.Equal(t, "index 2", sheet.Target(2).String())
}
