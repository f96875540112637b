package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
)

// MetricsCmd returns a command that prints the metrics recorded by this process.
func MetricsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Print engine metrics",
		Long: `Print the evaluation, unlock and grid counters recorded by this process.

Pass --metrics to any other command to print them after it runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return DumpMetrics(cmd.OutOrStdout(), prometheus.DefaultGatherer, all)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include Go runtime and process metrics")
	return cmd
}

// DumpMetrics writes milestone_* metric families from g in a plain text form.
func DumpMetrics(w io.Writer, g prometheus.Gatherer, all bool) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })

	printed := 0
	for _, mf := range families {
		if !all && !isEngineMetric(mf.GetName()) {
			continue
		}
		printed++
		fmt.Fprintf(w, "%s (%s)\n", mf.GetName(), mf.GetHelp())
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(w, "  %s%s\n", formatLabels(m.GetLabel()), formatValue(mf.GetType(), m))
		}
	}

	if printed == 0 {
		fmt.Fprintln(w, "No metrics recorded.")
	}
	return nil
}

func isEngineMetric(name string) bool {
	return strings.HasPrefix(name, "milestone_")
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	pairs := make([]string, len(labels))
	for i, l := range labels {
		pairs[i] = fmt.Sprintf("%s=%q", l.GetName(), l.GetValue())
	}
	return "{" + strings.Join(pairs, ",") + "} "
}

func formatValue(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%g", m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%g", m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%g", h.GetSampleCount(), h.GetSampleSum())
	case dto.MetricType_SUMMARY:
		s := m.GetSummary()
		return fmt.Sprintf("count=%d sum=%g", s.GetSampleCount(), s.GetSampleSum())
	default:
		return "?"
	}
}
