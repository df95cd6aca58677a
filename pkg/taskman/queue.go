package taskman

import "sync"

// schedState holds the scheduling state: the pending queue, the
// completion ledger, and the per-pool next-id table. All three live
// behind one mutex so that removing a task from the queue and reserving
// its pool id is a single atomic step.
type schedState struct {
	mu      sync.Mutex
	pending []Task
	done    map[string]struct{}
	nextIDs map[string]int
}

func newSchedState() *schedState {
	return &schedState{
		done:    make(map[string]struct{}),
		nextIDs: make(map[string]int),
	}
}

// push appends a task at the tail. Never blocks, never fails.
func (s *schedState) push(t Task) {
	s.mu.Lock()
	s.pending = append(s.pending, t)
	s.mu.Unlock()
}

// popEligible removes and returns the first eligible pending task,
// assigning it the next id for its destination pool. With inOrder set, a
// task is eligible only if it has no prerequisite or its prerequisite is
// in the completion ledger; blocked tasks are skipped in place, so a
// single stalled task never halts the scan. With inOrder clear the head
// task is always eligible. The second result reports whether a task was
// obtained; the third reports whether the queue held no pending tasks at
// all.
func (s *schedState) popEligible(inOrder bool) (Task, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return Task{}, false, true
	}
	for i, t := range s.pending {
		if inOrder && t.After != "" {
			if _, ok := s.done[t.After]; !ok {
				continue
			}
		}
		t.ID = s.nextIDs[t.Pool]
		s.nextIDs[t.Pool]++
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		return t, true, false
	}
	return Task{}, false, false
}

// markDone records a successful completion in the ledger.
// The ledger never shrinks.
func (s *schedState) markDone(name string) {
	s.mu.Lock()
	s.done[name] = struct{}{}
	s.mu.Unlock()
}

// isDone reports whether a name is in the completion ledger.
func (s *schedState) isDone(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.done[name]
	return ok
}

// size returns the number of pending tasks.
func (s *schedState) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// names returns a snapshot of the pending task names in queue order.
func (s *schedState) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.pending))
	for i, t := range s.pending {
		out[i] = t.Name
	}
	return out
}

// snapshot returns copies of the pending tasks in queue order together
// with a copy of the completion ledger.
func (s *schedState) snapshot() ([]Task, map[string]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]Task, len(s.pending))
	copy(tasks, s.pending)
	done := make(map[string]struct{}, len(s.done))
	for name := range s.done {
		done[name] = struct{}{}
	}
	return tasks, done
}

// nextID returns the id the named pool will hand out next.
func (s *schedState) nextID(pool string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextIDs[pool]
}

// resetCounter zeroes the next-id counter for one pool.
func (s *schedState) resetCounter(pool string) {
	s.mu.Lock()
	delete(s.nextIDs, pool)
	s.mu.Unlock()
}
