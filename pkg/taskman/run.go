package taskman

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunUntilDone admits the given tasks, starts the manager, and blocks
// until the queue drains, the manager stops, or ctx is canceled.
// Admission runs concurrently with any tasks already executing; the
// first admission error aborts the call before Start.
func RunUntilDone(ctx context.Context, m *Manager, tasks ...Task) error {
	var g errgroup.Group
	for _, t := range tasks {
		t := t
		g.Go(func() error {
			return m.Add(t)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := m.Start(); err != nil {
		return err
	}
	return m.JoinContext(ctx)
}
