package testutil

import (
	"testing"
	"time"
)

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(t)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if time.Until(deadline) > TestTimeout {
		t.Error("deadline further out than TestTimeout")
	}
}

func TestAssertEqual(t *testing.T) {
	AssertEqual(t, 42, 42)
	AssertEqual(t, "a", "a")
}

func TestEventually(t *testing.T) {
	n := 0
	Eventually(t, time.Second, func() bool {
		n++
		return n > 2
	}, "counter should pass 2")
}
