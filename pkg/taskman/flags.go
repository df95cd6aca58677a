package taskman

import "sync"

// Flag names one of the manager's boolean settings.
type Flag int

const (
	// KillOnEmpty makes the manager stop itself once a worker observes a
	// completely empty queue.
	KillOnEmpty Flag = iota

	// InOrder enables dependency gating: a task with After set is only
	// eligible once the named task has completed successfully. When clear
	// the queue is plain FIFO and After is ignored.
	InOrder
)

// String returns the flag name.
func (f Flag) String() string {
	switch f {
	case KillOnEmpty:
		return "KillOnEmpty"
	case InOrder:
		return "InOrder"
	default:
		return "UnknownFlag"
	}
}

// flagSet holds the manager settings behind one guarded access path.
// Defaults match a freshly constructed manager: InOrder on, KillOnEmpty off.
type flagSet struct {
	mu          sync.Mutex
	killOnEmpty bool
	inOrder     bool
}

func newFlagSet() *flagSet {
	return &flagSet{inOrder: true}
}

// set toggles one flag without disturbing the other. Unknown flags are
// ignored.
func (s *flagSet) set(f Flag, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch f {
	case KillOnEmpty:
		s.killOnEmpty = v
	case InOrder:
		s.inOrder = v
	}
}

// get reads one flag. Unknown flags read as false.
func (s *flagSet) get(f Flag) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch f {
	case KillOnEmpty:
		return s.killOnEmpty
	case InOrder:
		return s.inOrder
	default:
		return false
	}
}
