/*
Package taskman provides an in-process task manager: a fixed pool of
workers consumes a queue of named tasks, with optional dependency gating
and per-task result pools.

A Manager owns the pending queue, a completion ledger of successfully
finished task names, and a registry of result pools. Each task carries a
work function returning a textual output and an integer status; a
non-zero status marks the task failed. Successful outputs are filed in
the task's destination pool under an auto-assigned integer id.

Basic usage:

	m := taskman.New(4)

	m.Add(taskman.NewTask("fetch", func() (string, int) {
		return "fetched 42 records", 0
	}))
	m.Add(taskman.NewTask("report", func() (string, int) {
		return "report written", 0
	}).WithAfter("fetch").WithPool("reports"))

	m.Start()
	m.Join()
	m.Stop()

	for id, out := range m.Pool("reports") {
		fmt.Println(id, out)
	}

Scheduling policy:

The queue is approximate FIFO. With the InOrder flag set (the default),
a task naming a prerequisite in After is held until that name completes
successfully; eligible tasks behind it are not blocked. With InOrder
clear the queue is plain FIFO and After is ignored. This is dependency
gating, not DAG scheduling: cycles and missing prerequisites are not
detected at dispatch time and defer their dependents indefinitely. Use
Preflight to check the pending graph before starting.

Lifecycle:

A manager is created paused. Start launches the workers, Pause parks
them at task boundaries, and Stop terminates the manager permanently.
With the KillOnEmpty flag set the manager stops itself once a worker
finds the queue completely empty. Join blocks the caller until the queue
drains or the manager stops.

Observation:

Lifecycle callbacks are registered in Config before construction and are
invoked synchronously from worker goroutines: OnTaskStart, OnTaskStop,
OnTaskFail, OnWorkerStart, OnWorkerStop, plus OnTaskAdd on admission.
Per-task side effects are strictly ordered: the start callback precedes
the work function, which precedes exactly one of the stop or fail
callbacks. NewWithMetrics layers Prometheus instrumentation over the
same hooks.

Pools:

Pools() and Pool(name) return copies of the result pools. ClearPool
empties one pool while its id counter keeps counting; ResetPool also
restarts the counter. A Config.Store mirrors pool writes to an external
backend such as the Redis store in pkg/store/redistore.
*/
package taskman
