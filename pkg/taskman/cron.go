package taskman

import (
	"fmt"
	"sort"
	"sync"

	"github.com/robfig/cron/v3"

	tmerrors "github.com/unmined/taskman/pkg/common/errors"
)

// CronFeeder admits copies of prototype tasks to a manager on cron
// schedules. Expressions use the standard five-field format with an
// optional leading seconds field; descriptors like "@hourly" also work.
//
// The feeder only performs admission: the manager's own run-state still
// decides when the admitted tasks execute.
type CronFeeder struct {
	mgr    *Manager
	cron   *cron.Cron
	parser cron.Parser

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// NewCronFeeder creates a feeder for the given manager. The feeder is
// inert until Start is called.
func NewCronFeeder(m *Manager) *CronFeeder {
	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)
	return &CronFeeder{
		mgr:     m,
		cron:    cron.New(cron.WithParser(parser)),
		parser:  parser,
		entries: make(map[string]cron.EntryID),
	}
}

// Schedule arranges for a copy of proto to be admitted each time expr
// fires. The prototype's name keys the schedule; scheduling a name twice
// is rejected.
func (f *CronFeeder) Schedule(expr string, proto Task) error {
	if err := proto.validate(); err != nil {
		return err
	}
	if _, err := f.parser.Parse(expr); err != nil {
		return tmerrors.NewValidationError("taskman", "cron", expr, "not a valid cron expression").
			WithHint(err.Error())
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.entries[proto.Name]; exists {
		return tmerrors.NewValidationError("taskman", "cron", proto.Name, "already scheduled").
			WithHint("remove the existing schedule first")
	}

	id, err := f.cron.AddFunc(expr, func() {
		// Admission errors here mean the manager has stopped; the
		// schedule simply stops producing work.
		_ = f.mgr.Add(proto)
	})
	if err != nil {
		return err
	}
	f.entries[proto.Name] = id
	return nil
}

// Remove cancels the schedule keyed by the named prototype.
func (f *CronFeeder) Remove(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.entries[name]
	if !ok {
		return fmt.Errorf("%w: %s", tmerrors.ErrUnknownSchedule, name)
	}
	f.cron.Remove(id)
	delete(f.entries, name)
	return nil
}

// Schedules returns the scheduled prototype names, sorted.
func (f *CronFeeder) Schedules() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.entries))
	for name := range f.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Start begins firing schedules in their own goroutine.
func (f *CronFeeder) Start() {
	f.cron.Start()
}

// Stop stops firing schedules and waits for any in-flight admission to
// finish.
func (f *CronFeeder) Stop() {
	<-f.cron.Stop().Done()
}
