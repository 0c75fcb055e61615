package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/modalsheet/pkg/metrics"
	"github.com/go-drift/modalsheet/pkg/sheet"
	sheettest "github.com/go-drift/modalsheet/pkg/testing"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

// counter returns the value of the series whose labels include all of want.
func counter(f *dto.MetricFamily, want map[string]string) float64 {
	if f == nil {
		return 0
	}
	for _, m := range f.GetMetric() {
		matched := 0
		for _, lp := range m.GetLabel() {
			if v, ok := want[lp.GetName()]; ok && v == lp.GetValue() {
				matched++
			}
		}
		if matched == len(want) {
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestCollector_RecordsSheetActivity(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector("test")
	require.NoError(t, collector.Register(reg))

	tester := sheettest.NewSheetTesterWithT(t, sheet.Config{
		Name:       "filters",
		SnapPoints: []sheet.SnapPoint{sheet.Pixels(100), sheet.Pixels(300), sheet.Pixels(600)},
		Observer:   collector,
	})
	s := tester.Sheet()
	tester.Open(t)

	s.SnapToIndex(2)
	tester.Pump()
	s.SnapToIndex(1)
	tester.MustSettle(t)

	_, err := tester.Drag(-400)
	require.NoError(t, err)
	tester.MustSettle(t)

	s.HandleScroll(sheet.ScrollWithVelocity(-5, -4))
	tester.MustSettle(t)

	families := gather(t, reg)
	transitions := families["test_sheet_transitions_total"]
	require.NotNil(t, transitions)

	assert.Equal(t, 1.0, counter(transitions, map[string]string{"sheet": "filters", "kind": "open", "outcome": "settled"}))
	assert.Equal(t, 1.0, counter(transitions, map[string]string{"kind": "snap", "outcome": "interrupted"}))
	assert.Equal(t, 3.0, counter(transitions, map[string]string{"kind": "snap", "outcome": "settled"}))

	drags := families["test_sheet_drag_resolutions_total"]
	assert.Equal(t, 1.0, counter(drags, map[string]string{"target": "snap"}))

	scrolls := families["test_sheet_scroll_triggers_total"]
	assert.Equal(t, 1.0, counter(scrolls, map[string]string{"path": "collapse"}))

	hist := families["test_sheet_transition_duration_seconds"]
	require.NotNil(t, hist)
	var samples uint64
	for _, m := range hist.GetMetric() {
		samples += m.GetHistogram().GetSampleCount()
	}
	assert.Equal(t, uint64(5), samples)

	active := families["test_sheet_transitions_active"]
	require.NotNil(t, active)
	assert.Equal(t, 0.0, active.GetMetric()[0].GetGauge().GetValue())
}

func TestCollector_DragTargets(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector("")
	require.NoError(t, collector.Register(reg))

	collector.DragResolved("a", sheet.DragResult{Target: sheet.TargetClosed})
	collector.DragResolved("a", sheet.DragResult{Target: sheet.TargetReset})
	collector.DragResolved("a", sheet.DragResult{Target: 2})

	drags := gather(t, reg)["sheet_drag_resolutions_total"]
	assert.Equal(t, 1.0, counter(drags, map[string]string{"target": "closed"}))
	assert.Equal(t, 1.0, counter(drags, map[string]string{"target": "reset"}))
	assert.Equal(t, 1.0, counter(drags, map[string]string{"target": "snap"}))
}

func TestCollector_RegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector("dup")

	require.NoError(t, collector.Register(reg))
	assert.Error(t, collector.Register(reg))
}
