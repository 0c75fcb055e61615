package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/modalsheet/pkg/config"
	"github.com/go-drift/modalsheet/pkg/errors"
)

func TestParse_StepForms(t *testing.T) {
	sc, err := Parse([]byte(`
steps:
  - open
  - snap: 2
  - drag: -120
  - drag: {dy: 40, steps: 3}
  - scroll: 12
  - scroll: {offset: -5, velocity: -1.5}
  - wait: 250ms
  - pump: 3
  - pump
  - settle
  - expect: {phase: visible, snaps: []}
`))
	require.NoError(t, err)
	require.Len(t, sc.Steps, 11)

	assert.Equal(t, "open", sc.Steps[0].Action)
	assert.Equal(t, 2, sc.Steps[1].Index)
	assert.Equal(t, -120.0, sc.Steps[2].Drag.DY)
	assert.Equal(t, DragArgs{DY: 40, Steps: 3}, sc.Steps[3].Drag)
	assert.Equal(t, 12.0, sc.Steps[4].Scroll.Offset)
	assert.Nil(t, sc.Steps[4].Scroll.Velocity)
	require.NotNil(t, sc.Steps[5].Scroll.Velocity)
	assert.Equal(t, -1.5, *sc.Steps[5].Scroll.Velocity)
	assert.Equal(t, 250*time.Millisecond, sc.Steps[6].Duration)
	assert.Equal(t, 3, sc.Steps[7].Frames)
	assert.Equal(t, 1, sc.Steps[8].Frames)
	assert.Zero(t, sc.Steps[9].Duration)
	require.NotNil(t, sc.Steps[10].Expect.Phase)
	assert.Equal(t, "visible", *sc.Steps[10].Expect.Phase)
	assert.Equal(t, 13, sc.Steps[10].Line)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown action":  "steps:\n  - jump\n",
		"missing arg":     "steps:\n  - snap\n",
		"two actions":     "steps:\n  - {open: null, close: null}\n",
		"bad duration":    "steps:\n  - wait: later\n",
		"no steps":        "name: empty\n",
		"use and sheet":   "use: a\nsheet: {}\nsteps:\n  - open\n",
		"bad version":     "version: v3\nsteps:\n  - open\n",
		"not yaml":        "steps: [",
		"sequence action": "steps:\n  - [open]\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.KindScenario), "got %v", err)
		})
	}
}

func TestRun_Testdata(t *testing.T) {
	set, err := config.Load("testdata/sheets.yaml")
	require.NoError(t, err)

	for _, path := range []string{
		"testdata/snap_and_close.yaml",
		"testdata/gestures.yaml",
		"testdata/uses_config.yaml",
	} {
		t.Run(path, func(t *testing.T) {
			sc, err := Load(path)
			require.NoError(t, err)

			result, err := Run(context.Background(), sc, Options{Config: set})
			require.NoError(t, err)
			assert.True(t, result.Passed(), "failures: %v", result.Failures)
			assert.Equal(t, len(sc.Steps), result.Steps)
			assert.Positive(t, result.Elapsed)
		})
	}
}

func TestRun_ReportsFailedExpectations(t *testing.T) {
	sc, err := Parse([]byte(`
steps:
  - open
  - settle
  - expect: {phase: hidden, offset: 12, opens: 2, snaps: [1]}
`))
	require.NoError(t, err)

	result, err := Run(context.Background(), sc, Options{})
	require.NoError(t, err)

	require.False(t, result.Passed())
	require.Len(t, result.Failures, 4)
	assert.Equal(t, 2, result.Failures[0].Step)
	assert.Contains(t, result.Failures[0].String(), "step 3 (line 5, expect): phase: got visible, want hidden")
}

func TestRun_DragRejectedIsFailure(t *testing.T) {
	sc, err := Parse([]byte("steps:\n  - drag: 100\n"))
	require.NoError(t, err)

	result, err := Run(context.Background(), sc, Options{})
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Message, "rejected")
}

func TestRun_MissingConfig(t *testing.T) {
	sc, err := Parse([]byte("use: compact\nsteps:\n  - open\n"))
	require.NoError(t, err)

	_, err = Run(context.Background(), sc, Options{})
	assert.True(t, errors.IsKind(err, errors.KindScenario))

	_, err = Run(context.Background(), sc, Options{Config: &config.Set{}})
	assert.Error(t, err)
}

func TestRun_Canceled(t *testing.T) {
	sc, err := Parse([]byte("steps:\n  - open\n"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Run(ctx, sc, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
