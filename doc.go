/*
Package taskman provides an in-process, dependency-aware task manager
for Go applications.

Core (pkg/taskman):
  - Manager: fixed worker pool over a named task queue with
    pause/stop/drain control and lifecycle callbacks
  - Dependency gating via the InOrder flag and a completion ledger
  - Result pools: per-task output filed under auto-assigned integer ids
  - CronFeeder: cron-driven task admission
  - Preflight: dependency cycle and missing-prerequisite diagnostics

Instrumentation (pkg/metrics):
  - Prometheus counters, gauges, and histograms for task lifecycle,
    queue depth, and pool sizes

Storage (pkg/store):
  - redistore: optional Redis mirror for result pools

Example usage:

	import "github.com/unmined/taskman/pkg/taskman"

	m := taskman.New(4)
	m.Add(taskman.NewTask("fetch", fetchWork))
	m.Add(taskman.NewTask("report", reportWork).WithAfter("fetch"))
	m.Start()
	m.Join()
	m.Stop()
*/
package taskman
