package taskman

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unmined/taskman/internal/testutil"
	"github.com/unmined/taskman/pkg/metrics"
)

// counterValue digs one labeled counter out of a gathered registry.
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			}
		}
		return total
	}
	return 0
}

func TestNewWithMetrics(t *testing.T) {
	m, err := NewWithMetrics(2, "pool-a")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, m.WorkerCount(), 2)
	m.Stop()
}

func TestMetricsCollection(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewWithConfigAndMetrics(Config{WorkerCount: 2}, "mgr", metrics.Config{
		Enabled:  true,
		Registry: reg,
	})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, m.Add(NewTask("ok1", okWork("a")).WithPool("p")))
	testutil.AssertNoError(t, m.Add(NewTask("ok2", okWork("b")).WithPool("p")))
	testutil.AssertNoError(t, m.Add(NewTask("bad", failWork(2)).WithPool("p")))

	testutil.AssertNoError(t, m.Start())
	m.Join()
	m.Stop()

	testutil.AssertEqual(t, counterValue(t, reg, "taskman_tasks_admitted_total"), 3.0)
	testutil.AssertEqual(t, counterValue(t, reg, "taskman_tasks_started_total"), 3.0)
	testutil.AssertEqual(t, counterValue(t, reg, "taskman_tasks_completed_total"), 2.0)
	testutil.AssertEqual(t, counterValue(t, reg, "taskman_tasks_failed_total"), 1.0)
	testutil.AssertEqual(t, counterValue(t, reg, "taskman_workers_count"), 2.0)
	testutil.AssertEqual(t, counterValue(t, reg, "taskman_workers_busy"), 0.0)
}

func TestMetricsDisabled(t *testing.T) {
	// Disabled metrics hand back a plain manager on the same config.
	m, err := NewWithConfigAndMetrics(Config{WorkerCount: 1}, "mgr", metrics.Config{})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, m.Add(NewTask("a", okWork("x"))))
	testutil.AssertNoError(t, m.Start())
	m.Join()
	m.Stop()
	testutil.AssertEqual(t, m.Completed("a"), true)
}

func TestMetricsChainUserCallbacks(t *testing.T) {
	reg := prometheus.NewRegistry()
	var stops int
	m, err := NewWithConfigAndMetrics(Config{
		WorkerCount: 1,
		OnTaskStop:  func(Task, int) { stops++ },
	}, "mgr", metrics.Config{Enabled: true, Registry: reg})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, m.Add(NewTask("a", okWork("x"))))
	testutil.AssertNoError(t, m.Start())
	m.Join()
	m.Stop()

	testutil.AssertEqual(t, stops, 1)
	testutil.AssertEqual(t, counterValue(t, reg, "taskman_tasks_completed_total"), 1.0)
}
