/*
Package metrics provides Prometheus instrumentation for taskman components.

The Registry type holds every metric family taskman exposes: task lifecycle
counters, the work duration histogram, queue and worker gauges, and per-pool
entry counts. A DefaultRegistry registered against the global Prometheus
registerer is created at init time; components that need isolation create
their own:

	reg := prometheus.NewRegistry()
	registry := metrics.NewRegistry(reg)

All metrics use the "taskman" namespace and are labeled with the manager
name so several managers can share one registry.
*/
package metrics
