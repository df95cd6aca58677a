package taskman

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unmined/taskman/pkg/metrics"
)

// NewWithMetrics creates a manager instrumented with Prometheus metrics
// on its own dedicated registry.
func NewWithMetrics(workerCount int, name string) (*Manager, error) {
	// A separate registry per metrics-enabled manager avoids collisions
	// in the default registerer.
	registry := prometheus.NewRegistry()
	return NewWithConfigAndMetrics(Config{WorkerCount: workerCount}, name, metrics.Config{
		Enabled:  true,
		Registry: registry,
	})
}

// NewWithConfigAndMetrics creates a manager from cfg with metrics
// collection chained onto its lifecycle callbacks. User callbacks in cfg
// keep firing; metric updates run after them.
func NewWithConfigAndMetrics(cfg Config, name string, mcfg metrics.Config) (*Manager, error) {
	if !mcfg.Enabled {
		return NewWithConfig(cfg)
	}

	registry := metrics.DefaultRegistry
	if mcfg.Registry != nil {
		registry = metrics.NewRegistry(mcfg.Registry)
	}

	ins := &instrumentation{
		name:   name,
		reg:    registry,
		starts: make(map[int]time.Time),
	}
	m, err := NewWithConfig(ins.wrap(cfg))
	if err != nil {
		return nil, err
	}
	ins.mgr = m

	registry.WorkerCount.WithLabelValues(name).Set(float64(m.WorkerCount()))
	return m, nil
}

// instrumentation chains metric updates onto a manager's callbacks.
type instrumentation struct {
	name string
	reg  *metrics.Registry
	mgr  *Manager

	mu     sync.Mutex
	starts map[int]time.Time // start time of each worker's in-flight task
}

func (ins *instrumentation) wrap(cfg Config) Config {
	userAdd := cfg.OnTaskAdd
	userStart := cfg.OnTaskStart
	userStop := cfg.OnTaskStop
	userFail := cfg.OnTaskFail

	cfg.OnTaskAdd = func(t Task) {
		if userAdd != nil {
			userAdd(t)
		}
		ins.reg.TasksAdmitted.WithLabelValues(ins.name).Inc()
		ins.updateQueueDepth()
	}

	cfg.OnTaskStart = func(t Task, workerID int) {
		if userStart != nil {
			userStart(t, workerID)
		}
		ins.mu.Lock()
		ins.starts[workerID] = time.Now()
		ins.mu.Unlock()
		ins.reg.TasksStarted.WithLabelValues(ins.name).Inc()
		ins.reg.WorkersBusy.WithLabelValues(ins.name).Inc()
		ins.updateQueueDepth()
	}

	cfg.OnTaskStop = func(t Task, workerID int) {
		if userStop != nil {
			userStop(t, workerID)
		}
		ins.reg.TasksCompleted.WithLabelValues(ins.name).Inc()
		ins.finishTask(workerID)
		if ins.mgr != nil {
			ins.reg.PoolEntries.WithLabelValues(ins.name, t.Pool).
				Set(float64(ins.mgr.reg.size(t.Pool)))
		}
	}

	cfg.OnTaskFail = func(t Task, workerID int, status int) {
		if userFail != nil {
			userFail(t, workerID, status)
		}
		ins.reg.TasksFailed.WithLabelValues(ins.name).Inc()
		ins.finishTask(workerID)
	}

	return cfg
}

// finishTask records the work duration for a worker's in-flight task and
// marks the worker idle.
func (ins *instrumentation) finishTask(workerID int) {
	ins.mu.Lock()
	start, ok := ins.starts[workerID]
	delete(ins.starts, workerID)
	ins.mu.Unlock()

	if ok {
		ins.reg.TaskDuration.WithLabelValues(ins.name).Observe(time.Since(start).Seconds())
	}
	ins.reg.WorkersBusy.WithLabelValues(ins.name).Dec()
}

func (ins *instrumentation) updateQueueDepth() {
	if ins.mgr != nil {
		ins.reg.QueueDepth.WithLabelValues(ins.name).Set(float64(ins.mgr.QueueLen()))
	}
}
