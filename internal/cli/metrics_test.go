package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestDumpMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	unlocks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "milestone_unlocks_total",
		Help: "Total achievements unlocked by rarity",
	}, []string{"rarity"})
	passes := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "milestone_evaluation_passes",
		Help: "Number of candidate passes per evaluation cycle",
	})
	other := prometheus.NewGauge(prometheus.GaugeOpts{Name: "unrelated", Help: "Not ours"})
	reg.MustRegister(unlocks, passes, other)

	unlocks.WithLabelValues("rare").Add(2)
	passes.Observe(3)
	other.Set(1)

	var buf bytes.Buffer
	if err := DumpMetrics(&buf, reg, false); err != nil {
		t.Fatalf("DumpMetrics failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"milestone_evaluation_passes (Number of candidate passes per evaluation cycle)\n  count=1 sum=3\n",
		"milestone_unlocks_total (Total achievements unlocked by rarity)\n  {rarity=\"rare\"} 2\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "unrelated") {
		t.Errorf("expected foreign metrics to be filtered:\n%s", out)
	}

	buf.Reset()
	if err := DumpMetrics(&buf, reg, true); err != nil {
		t.Fatalf("DumpMetrics failed: %v", err)
	}
	if !strings.Contains(buf.String(), "unrelated (Not ours)\n  1\n") {
		t.Errorf("expected all metrics with --all:\n%s", buf.String())
	}
}

func TestDumpMetrics_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpMetrics(&buf, prometheus.NewRegistry(), false); err != nil {
		t.Fatalf("DumpMetrics failed: %v", err)
	}
	if buf.String() != "No metrics recorded.\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
