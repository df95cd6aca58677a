package taskman

import (
	"errors"
	"testing"
	"time"

	"github.com/unmined/taskman/internal/testutil"
	tmerrors "github.com/unmined/taskman/pkg/common/errors"
)

func TestCronScheduleValidation(t *testing.T) {
	m := New(1)
	defer m.Stop()
	f := NewCronFeeder(m)

	tests := []struct {
		name    string
		expr    string
		task    Task
		wantErr bool
	}{
		{"standard five fields", "*/5 * * * *", NewTask("five", okWork("x")), false},
		{"with seconds", "*/10 * * * * *", NewTask("six", okWork("x")), false},
		{"descriptor", "@hourly", NewTask("hourly", okWork("x")), false},
		{"every descriptor", "@every 1m", NewTask("every", okWork("x")), false},
		{"garbage", "not a cron", NewTask("bad", okWork("x")), true},
		{"missing work", "@hourly", Task{Name: "no-work"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.Schedule(tt.expr, tt.task)
			if (err != nil) != tt.wantErr {
				t.Errorf("Schedule(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
		})
	}
}

func TestCronDuplicateSchedule(t *testing.T) {
	m := New(1)
	defer m.Stop()
	f := NewCronFeeder(m)

	testutil.AssertNoError(t, f.Schedule("@hourly", NewTask("dup", okWork("x"))))
	err := f.Schedule("@daily", NewTask("dup", okWork("x")))
	testutil.AssertError(t, err)
	if !errors.Is(err, tmerrors.ErrInvalidConfiguration) {
		t.Errorf("got %v, want a validation error", err)
	}
}

func TestCronRemove(t *testing.T) {
	m := New(1)
	defer m.Stop()
	f := NewCronFeeder(m)

	testutil.AssertNoError(t, f.Schedule("@hourly", NewTask("keep", okWork("x"))))
	testutil.AssertNoError(t, f.Schedule("@hourly", NewTask("drop", okWork("x"))))

	names := f.Schedules()
	testutil.AssertEqual(t, len(names), 2)
	testutil.AssertEqual(t, names[0], "drop")
	testutil.AssertEqual(t, names[1], "keep")

	testutil.AssertNoError(t, f.Remove("drop"))
	testutil.AssertEqual(t, len(f.Schedules()), 1)

	if err := f.Remove("drop"); !errors.Is(err, tmerrors.ErrUnknownSchedule) {
		t.Errorf("got %v, want ErrUnknownSchedule", err)
	}
}

func TestCronAdmitsTasks(t *testing.T) {
	m := New(1)
	defer m.Stop()

	f := NewCronFeeder(m)
	testutil.AssertNoError(t, f.Schedule("@every 100ms", NewTask("tick", okWork("tock")).WithPool("clock")))

	f.Start()
	defer f.Stop()

	// The manager stays paused: admissions pile up in the queue.
	testutil.Eventually(t, 3*time.Second, func() bool {
		return m.QueueLen() >= 2
	}, "cron schedule should admit tasks")

	testutil.AssertNoError(t, m.Start())
	m.Join()
	m.Pause()

	if len(m.Pool("clock")) < 2 {
		t.Errorf("expected at least 2 outputs, got %d", len(m.Pool("clock")))
	}
}
