// Package metrics provides Prometheus instrumentation for taskman components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for taskman components.
type Registry struct {
	// Task lifecycle metrics
	TasksAdmitted  *prometheus.CounterVec
	TasksStarted   *prometheus.CounterVec
	TasksCompleted *prometheus.CounterVec
	TasksFailed    *prometheus.CounterVec
	TaskDuration   *prometheus.HistogramVec

	// Manager state metrics
	QueueDepth  *prometheus.GaugeVec
	WorkerCount *prometheus.GaugeVec
	WorkersBusy *prometheus.GaugeVec

	// Pool registry metrics
	PoolEntries *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by taskman components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// Config controls metrics collection for a component.
type Config struct {
	// Enabled turns metrics collection on or off.
	Enabled bool

	// Registry is the Prometheus registerer to use. If nil, the package
	// DefaultRegistry (backed by prometheus.DefaultRegisterer) is used.
	Registry prometheus.Registerer
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		TasksAdmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskman",
				Subsystem: "tasks",
				Name:      "admitted_total",
				Help:      "Total number of tasks admitted to the queue",
			},
			[]string{"manager"},
		),

		TasksStarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskman",
				Subsystem: "tasks",
				Name:      "started_total",
				Help:      "Total number of tasks dequeued and started",
			},
			[]string{"manager"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskman",
				Subsystem: "tasks",
				Name:      "completed_total",
				Help:      "Total number of tasks that finished with status 0",
			},
			[]string{"manager"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskman",
				Subsystem: "tasks",
				Name:      "failed_total",
				Help:      "Total number of tasks that finished with a non-zero status",
			},
			[]string{"manager"},
		),

		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskman",
				Subsystem: "tasks",
				Name:      "duration_seconds",
				Help:      "Time spent executing task work functions",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"manager"},
		),

		QueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskman",
				Subsystem: "queue",
				Name:      "depth",
				Help:      "Number of pending tasks in the queue",
			},
			[]string{"manager"},
		),

		WorkerCount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskman",
				Subsystem: "workers",
				Name:      "count",
				Help:      "Number of worker goroutines in the manager",
			},
			[]string{"manager"},
		),

		WorkersBusy: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskman",
				Subsystem: "workers",
				Name:      "busy",
				Help:      "Number of workers currently executing a task",
			},
			[]string{"manager"},
		),

		PoolEntries: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskman",
				Subsystem: "pools",
				Name:      "entries",
				Help:      "Number of stored outputs per result pool",
			},
			[]string{"manager", "pool"},
		),
	}
}
