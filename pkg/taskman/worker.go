package taskman

import "time"

// runWorker is the loop for worker id in [0, WorkerCount). Workers park
// on the run-state condition while paused, poll the queue with a short
// backoff while it holds no eligible task, and exit once the manager is
// stopped.
func (m *Manager) runWorker(id int) {
	defer m.wg.Done()

	if cb := m.cfg.OnWorkerStart; cb != nil {
		cb(id)
	}
	defer func() {
		if cb := m.cfg.OnWorkerStop; cb != nil {
			cb(id)
		}
	}()

	for m.awaitRunnable() {
		t, ok, empty := m.sched.popEligible(m.flags.get(InOrder))
		if !ok {
			if empty && m.flags.get(KillOnEmpty) {
				m.requestStop()
				return
			}
			// Nothing eligible right now. Blocked tasks stay queued, so
			// a missing or failed prerequisite defers its dependents
			// indefinitely rather than erroring.
			time.Sleep(m.cfg.Backoff)
			continue
		}
		m.execute(t, id)
	}
}

// awaitRunnable blocks while the manager is paused and reports whether
// the worker should keep consuming work.
func (m *Manager) awaitRunnable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.state == StatePaused {
		m.cond.Wait()
	}
	return m.state == StateRunning
}

// execute runs one task. Side effects are strictly ordered: the start
// callback precedes the work function, which precedes exactly one of the
// stop or fail callbacks. The ledger append comes last so that a
// dependent task can never become eligible before the stop callback for
// its prerequisite has fired.
func (m *Manager) execute(t Task, workerID int) {
	if cb := m.cfg.OnTaskStart; cb != nil {
		cb(t, workerID)
	}

	output, status := runWork(t.Work)
	if status != 0 {
		// Terminally failed: no pool write, no ledger entry, no retry.
		if cb := m.cfg.OnTaskFail; cb != nil {
			cb(t, workerID, status)
		}
		return
	}

	m.reg.put(t.Pool, t.ID, output)
	if cb := m.cfg.OnTaskStop; cb != nil {
		cb(t, workerID)
	}
	m.sched.markDone(t.Name)
}

// runWork invokes the work function, converting a panic into a failure
// with StatusPanic.
func runWork(w WorkFunc) (output string, status int) {
	defer func() {
		if r := recover(); r != nil {
			output, status = "", StatusPanic
		}
	}()
	return w()
}
