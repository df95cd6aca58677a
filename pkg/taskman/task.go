package taskman

import (
	"github.com/unmined/taskman/pkg/common/validation"
)

// UnassignedID is the Task.ID value before the manager assigns a pool id.
// Ids are assigned at the moment a task is dequeued for execution, not at
// admission.
const UnassignedID = -1

// StatusPanic is the status reported for a work function that panicked.
const StatusPanic = -1

// WorkFunc is the unit of work carried by a task. It returns the textual
// output to file in the task's pool and a status code; any non-zero status
// marks the task as failed.
type WorkFunc func() (output string, status int)

// Task describes one named unit of work.
//
// Name doubles as the task's identity in the completion ledger and as the
// default destination pool. After optionally names a prerequisite task;
// with the InOrder flag set, the task is held until that name has
// completed successfully. ID is assigned by the manager and unique within
// the task's destination pool.
type Task struct {
	Name  string
	Work  WorkFunc
	After string
	Pool  string
	ID    int
}

// NewTask creates a task for the given name and work function.
// Use WithAfter and WithPool to set the optional fields.
func NewTask(name string, work WorkFunc) Task {
	return Task{Name: name, Work: work, ID: UnassignedID}
}

// WithAfter returns a copy of the task gated on the named prerequisite.
func (t Task) WithAfter(name string) Task {
	t.After = name
	return t
}

// WithPool returns a copy of the task routed to the named result pool.
func (t Task) WithPool(pool string) Task {
	t.Pool = pool
	return t
}

// validate checks the admission preconditions: a task needs a name and a
// work function.
func (t Task) validate() error {
	if err := validation.ValidateNotEmpty("taskman", "name", t.Name); err != nil {
		return err
	}
	if t.Work == nil {
		return validation.ValidateNotNil("taskman", "work", nil)
	}
	return nil
}

// normalized returns the task as stored in the queue: pool defaulted to
// the task name and id reset to the unassigned sentinel.
func (t Task) normalized() Task {
	if t.Pool == "" {
		t.Pool = t.Name
	}
	t.ID = UnassignedID
	return t
}
