// Package metrics exports sheet lifecycle activity as Prometheus metrics.
//
//	collector := metrics.NewCollector("app")
//	prometheus.MustRegister(collector)
//	s := sheet.New(loop, sheet.Config{Observer: collector})
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/go-drift/modalsheet/pkg/sheet"
)

const (
	outcomeSettled     = "settled"
	outcomeInterrupted = "interrupted"
)

// Collector records sheet notifications. It implements both sheet.Observer
// and prometheus.Collector, so one value can be passed to a sheet and
// registered with a registry.
type Collector struct {
	transitions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	active      *prometheus.GaugeVec
	drags       *prometheus.CounterVec
	scrolls     *prometheus.CounterVec
}

var _ sheet.Observer = (*Collector)(nil)
var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector whose metric names start with namespace
// (for example "app_sheet_transitions_total"). An empty namespace is allowed.
func NewCollector(namespace string) *Collector {
	return &Collector{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sheet",
				Name:      "transitions_total",
				Help:      "Transitions that ended, by kind and outcome.",
			},
			[]string{"sheet", "kind", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "sheet",
				Name:      "transition_duration_seconds",
				Help:      "Time from transition start to settle or interruption.",
				Buckets:   []float64{0.025, 0.05, 0.1, 0.2, 0.3, 0.5, 1},
			},
			[]string{"sheet", "kind"},
		),
		active: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sheet",
				Name:      "transitions_active",
				Help:      "Transitions currently running.",
			},
			[]string{"sheet"},
		),
		drags: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sheet",
				Name:      "drag_resolutions_total",
				Help:      "Released drags, by resolved target.",
			},
			[]string{"sheet", "target"},
		),
		scrolls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sheet",
				Name:      "scroll_triggers_total",
				Help:      "Scroll gestures that moved the sheet, by path.",
			},
			[]string{"sheet", "path"},
		),
	}
}

// Register registers the collector with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	return reg.Register(c)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.transitions.Describe(ch)
	c.duration.Describe(ch)
	c.active.Describe(ch)
	c.drags.Describe(ch)
	c.scrolls.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.transitions.Collect(ch)
	c.duration.Collect(ch)
	c.active.Collect(ch)
	c.drags.Collect(ch)
	c.scrolls.Collect(ch)
}

// TransitionStarted implements sheet.Observer.
func (c *Collector) TransitionStarted(name string, kind sheet.TransitionKind) {
	c.active.WithLabelValues(name).Inc()
}

// TransitionFinished implements sheet.Observer.
func (c *Collector) TransitionFinished(name string, kind sheet.TransitionKind, elapsed time.Duration, interrupted bool) {
	outcome := outcomeSettled
	if interrupted {
		outcome = outcomeInterrupted
	}
	c.active.WithLabelValues(name).Dec()
	c.transitions.WithLabelValues(name, kind.String(), outcome).Inc()
	c.duration.WithLabelValues(name, kind.String()).Observe(elapsed.Seconds())
}

// DragResolved implements sheet.Observer.
func (c *Collector) DragResolved(name string, result sheet.DragResult) {
	c.drags.WithLabelValues(name, targetLabel(result.Target)).Inc()
}

// ScrollTriggered implements sheet.Observer.
func (c *Collector) ScrollTriggered(name string, path sheet.ScrollPath, target sheet.Target) {
	c.scrolls.WithLabelValues(name, path.String()).Inc()
}

// targetLabel keeps label cardinality low: snap indices collapse to "snap".
func targetLabel(t sheet.Target) string {
	if _, ok := t.Index(); ok {
		return "snap"
	}
	return t.String()
}
