package taskman

import (
	"context"
	"sync"
	"time"

	tmcontext "github.com/unmined/taskman/pkg/common/context"
	tmerrors "github.com/unmined/taskman/pkg/common/errors"
	"github.com/unmined/taskman/pkg/common/validation"
)

// RunState is the manager's lifecycle state. The states are mutually
// exclusive; StateStopped is terminal.
type RunState int

const (
	StatePaused RunState = iota
	StateRunning
	StateStopped
)

// String returns the state name.
func (s RunState) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

const (
	// DefaultWorkerCount is the worker count used when Config.WorkerCount
	// is left zero.
	DefaultWorkerCount = 4

	// defaultBackoff is the interval an idle worker waits before polling
	// the queue again.
	defaultBackoff = 10 * time.Millisecond
)

// Config holds configuration options for creating a manager.
//
// Callbacks are registered here, before Start, and are never replaced
// afterwards; they are invoked synchronously from worker goroutines, so
// they must be safe for concurrent use and should return quickly.
type Config struct {
	// WorkerCount is the fixed number of workers. Zero means
	// DefaultWorkerCount; negative values are rejected.
	WorkerCount int

	// Backoff is how long an idle worker waits before polling the queue
	// again, and the interval at which Join re-checks for drain.
	// Zero means defaultBackoff.
	Backoff time.Duration

	// Store optionally mirrors pool writes to an external backend.
	// The in-memory registry stays authoritative.
	Store PoolStore

	// OnTaskAdd is called after a task is admitted to the queue.
	OnTaskAdd func(t Task)

	// OnTaskStart is called when a worker dequeues a task, after its pool
	// id has been assigned and before its work function runs.
	OnTaskStart func(t Task, workerID int)

	// OnTaskStop is called after a task completes with status 0 and its
	// output has been filed in its pool.
	OnTaskStop func(t Task, workerID int)

	// OnTaskFail is called when a work function returns a non-zero
	// status. Failed tasks are terminal: no pool write, no ledger entry,
	// no retry.
	OnTaskFail func(t Task, workerID int, status int)

	// OnWorkerStart is called once per worker at goroutine entry.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called once per worker at goroutine exit.
	OnWorkerStop func(workerID int)

	// OnStoreError is called when the Store rejects a write. Store errors
	// never fail the task that produced the output.
	OnStoreError func(pool string, err error)
}

// Manager owns the queue, the completion ledger, the pool registry, and
// the fixed set of workers. It is created paused; Start launches the
// workers, Pause parks them at task boundaries, Stop terminates the
// manager for good. All methods are safe for concurrent use.
type Manager struct {
	cfg Config

	mu      sync.Mutex // guards state and started
	cond    *sync.Cond // broadcast on every run-state change
	state   RunState
	started bool

	sched *schedState
	reg   *poolRegistry
	flags *flagSet

	wg       sync.WaitGroup
	done     chan struct{}
	doneOnce sync.Once
}

// New creates a paused manager with the given worker count.
// It panics if workerCount is not positive; use NewWithConfig for an
// error-returning constructor.
func New(workerCount int) *Manager {
	if workerCount <= 0 {
		panic("taskman: worker count must be positive")
	}
	m, err := NewWithConfig(Config{WorkerCount: workerCount})
	if err != nil {
		panic(err)
	}
	return m
}

// NewWithConfig creates a paused manager from cfg.
func NewWithConfig(cfg Config) (*Manager, error) {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = DefaultWorkerCount
	}
	if err := validation.ValidatePositive("taskman", "workers", cfg.WorkerCount); err != nil {
		return nil, err
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = defaultBackoff
	}

	m := &Manager{
		cfg:   cfg,
		state: StatePaused,
		sched: newSchedState(),
		flags: newFlagSet(),
		done:  make(chan struct{}),
	}
	m.cond = sync.NewCond(&m.mu)
	m.reg = newPoolRegistry(cfg.Store, cfg.OnStoreError)
	return m, nil
}

// Add admits a task to the tail of the queue. The task must carry a name
// and a work function; a missing pool defaults to the task name. Add is
// safe before or after Start and returns ErrStopped once the manager has
// stopped.
func (m *Manager) Add(t Task) error {
	if err := t.validate(); err != nil {
		return err
	}
	if m.State() == StateStopped {
		return tmerrors.ErrStopped
	}
	t = t.normalized()
	m.sched.push(t)
	if cb := m.cfg.OnTaskAdd; cb != nil {
		cb(t)
	}
	return nil
}

// Start transitions the manager to running. The first call launches the
// coordination goroutine and the fixed worker set; later calls just
// release paused workers. Start on a running manager is a no-op; Start
// after Stop returns ErrStopped.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateStopped:
		return tmerrors.ErrStopped
	case StateRunning:
		return nil
	}

	m.state = StateRunning
	if !m.started {
		m.started = true
		go m.run()
		for i := 0; i < m.cfg.WorkerCount; i++ {
			m.wg.Add(1)
			go m.runWorker(i)
		}
	}
	m.cond.Broadcast()
	return nil
}

// Pause parks the workers at their next task boundary. In-flight tasks
// are never interrupted. Pause on a stopped manager is a no-op.
func (m *Manager) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateRunning {
		return
	}
	m.state = StatePaused
	m.cond.Broadcast()
}

// Stop terminates the manager: workers exit after finishing any in-flight
// task, and Stop blocks until all of them have. Stopped is terminal; a
// fresh manager must be constructed to process further work.
func (m *Manager) Stop() {
	m.requestStop()
	<-m.done
}

// requestStop flips the run-state to stopped without waiting for the
// workers. Used by Stop and by the KillOnEmpty path, where the caller is
// itself a worker.
func (m *Manager) requestStop() {
	m.mu.Lock()
	if m.state != StateStopped {
		m.state = StateStopped
		m.cond.Broadcast()
	}
	started := m.started
	m.mu.Unlock()

	if !started {
		// No workers were ever launched, so there is no coordinator to
		// close done.
		m.doneOnce.Do(func() { close(m.done) })
	}
}

// run is the coordination goroutine: it waits for the stop transition,
// joins all workers, and marks the manager fully terminated.
func (m *Manager) run() {
	m.mu.Lock()
	for m.state != StateStopped {
		m.cond.Wait()
	}
	m.mu.Unlock()

	m.wg.Wait()
	m.doneOnce.Do(func() { close(m.done) })
}

// IsDone reports whether the queue has no pending tasks, regardless of
// run-state. Tasks already dequeued and executing do not count as
// pending.
func (m *Manager) IsDone() bool {
	return m.sched.size() == 0
}

// Join blocks the caller until the queue is drained or the manager
// stops, whichever comes first. Workers are never blocked by Join.
func (m *Manager) Join() {
	_ = m.JoinContext(context.Background())
}

// JoinContext is Join with caller-controlled cancellation. It returns
// nil once the queue is drained or the manager has stopped, and the
// context error if ctx is canceled first.
func (m *Manager) JoinContext(ctx context.Context) error {
	if tmcontext.IsCanceled(ctx) {
		return ctx.Err()
	}

	ticker := time.NewTicker(m.cfg.Backoff)
	defer ticker.Stop()
	for {
		if m.IsDone() || m.State() == StateStopped {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.done:
			return nil
		case <-ticker.C:
		}
	}
}

// Done returns a channel that is closed once the manager has stopped and
// every worker has exited.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// State returns the current run-state.
func (m *Manager) State() RunState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Tasks returns the pending task names in queue order. The snapshot may
// be stale the instant it returns.
func (m *Manager) Tasks() []string {
	return m.sched.names()
}

// QueueLen returns the number of pending tasks.
func (m *Manager) QueueLen() int {
	return m.sched.size()
}

// WorkerCount returns the fixed number of workers.
func (m *Manager) WorkerCount() int {
	return m.cfg.WorkerCount
}

// Set toggles one flag without disturbing the other.
func (m *Manager) Set(f Flag, v bool) {
	m.flags.set(f, v)
}

// Get reads one flag.
func (m *Manager) Get(f Flag) bool {
	return m.flags.get(f)
}

// Completed reports whether the named task has finished successfully.
func (m *Manager) Completed(name string) bool {
	return m.sched.isDone(name)
}

// Pools returns a copy of every result pool.
func (m *Manager) Pools() map[string]map[int]string {
	return m.reg.all()
}

// Pool returns a copy of one result pool. A pool that was never written
// to reads as an empty mapping.
func (m *Manager) Pool(name string) map[int]string {
	return m.reg.get(name)
}

// ClearPool removes all entries for one pool. Id allocation for the pool
// continues from its prior counter; use ResetPool to also restart ids.
func (m *Manager) ClearPool(name string) {
	m.reg.clear(name)
}

// ResetPool removes all entries for one pool and restarts its id counter
// at zero.
func (m *Manager) ResetPool(name string) {
	m.reg.clear(name)
	m.sched.resetCounter(name)
}

// NextID returns the id the named pool will hand out next.
func (m *Manager) NextID(pool string) int {
	return m.sched.nextID(pool)
}
