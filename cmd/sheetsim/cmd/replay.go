package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/modalsheet/cmd/sheetsim/internal/scenario"
	"github.com/go-drift/modalsheet/pkg/config"
	"github.com/go-drift/modalsheet/pkg/metrics"
)

var replayFlags struct {
	config  string
	jobs    int
	metrics bool
}

var replayCmd = &cobra.Command{
	Use:   "replay [flags] <scenario.yaml>...",
	Short: "Replay sheet scenarios and check their expectations",
	Long: `Replay runs each scenario on a fresh sheet driven by a fake clock.

Scenarios may reference named sheets with "use:". Those are read from
--config, or from sheets.yaml in the first scenario's directory.

Scenarios run in parallel (--jobs). The command fails when any step fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReplay(cmd.Context(), cmd, args)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayFlags.config, "config", "", "sheet configuration file")
	replayCmd.Flags().IntVarP(&replayFlags.jobs, "jobs", "j", 0, "scenarios to run in parallel (0 = GOMAXPROCS)")
	replayCmd.Flags().BoolVar(&replayFlags.metrics, "metrics", false, "print transition metrics after the run")
	RegisterCommand(replayCmd)
}

func loadSheetConfig(path string, files []string) (*config.Set, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadOptional(filepath.Dir(files[0]))
}

func runReplay(ctx context.Context, cmd *cobra.Command, files []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	set, err := loadSheetConfig(replayFlags.config, files)
	if err != nil {
		return err
	}

	opts := scenario.Options{Config: set, Logger: newLogger(cmd.ErrOrStderr())}
	var reg *prometheus.Registry
	if replayFlags.metrics {
		reg = prometheus.NewRegistry()
		collector := metrics.NewCollector("sheetsim")
		if err := collector.Register(reg); err != nil {
			return err
		}
		opts.Observer = collector
	}

	results, err := replayAll(ctx, files, opts, replayFlags.jobs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := printResults(out, results)
	if reg != nil {
		if err := printMetrics(out, reg); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
	}
	return nil
}

// replayAll loads and runs files concurrently. Results keep the order of
// files. A load error aborts the whole run.
func replayAll(ctx context.Context, files []string, opts scenario.Options, jobs int) ([]scenario.Result, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]scenario.Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			sc, err := scenario.Load(path)
			if err != nil {
				return err
			}
			res, err := scenario.Run(gctx, sc, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printResults(w io.Writer, results []scenario.Result) (failed int) {
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	for _, r := range results {
		if r.Passed() {
			fmt.Fprintf(w, "%s %s (%d steps, %s simulated)\n", pass.Sprint("PASS"), r.Name, r.Steps, r.Elapsed)
			continue
		}
		failed++
		fmt.Fprintf(w, "%s %s (%s)\n", fail.Sprint("FAIL"), r.Name, r.Path)
		for _, f := range r.Failures {
			fmt.Fprintf(w, "    %s\n", f)
		}
	}
	return failed
}

func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(w, "%s%s %s\n", mf.GetName(), formatLabels(m.GetLabel()), formatValue(mf.GetType(), m))
		}
	}
	return nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", p.GetName(), p.GetValue()))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}

func formatValue(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return fmt.Sprint(m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprint(m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%g", h.GetSampleCount(), h.GetSampleSum())
	default:
		return "?"
	}
}
