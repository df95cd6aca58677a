package taskman

import (
	"fmt"
	"strings"

	"github.com/gammazero/toposort"

	tmerrors "github.com/unmined/taskman/pkg/common/errors"
)

// Preflight checks the dependency edges of the pending tasks and returns
// a valid start order of their names. It reports ErrMissingDependency if
// a task names a prerequisite that is neither pending nor already
// completed, and ErrCyclicDependency if the pending tasks depend on each
// other in a cycle.
//
// Preflight is a diagnostic for callers: the dispatcher itself never
// consults it and will hold tasks with missing or cyclic prerequisites
// indefinitely.
func (m *Manager) Preflight() ([]string, error) {
	pending, done := m.sched.snapshot()

	queued := make(map[string]struct{}, len(pending))
	for _, t := range pending {
		queued[t.Name] = struct{}{}
	}

	var missing []string
	var edges []toposort.Edge
	for _, t := range pending {
		switch {
		case t.After == "":
			edges = append(edges, toposort.Edge{nil, t.Name})
		default:
			if _, finished := done[t.After]; finished {
				edges = append(edges, toposort.Edge{nil, t.Name})
				continue
			}
			if _, ok := queued[t.After]; !ok {
				missing = append(missing, fmt.Sprintf("%s (after %s)", t.Name, t.After))
				continue
			}
			// Edge (after, name): the prerequisite sorts first.
			edges = append(edges, toposort.Edge{t.After, t.Name})
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", tmerrors.ErrMissingDependency, strings.Join(missing, ", "))
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", tmerrors.ErrCyclicDependency, err)
	}

	order := make([]string, 0, len(sorted))
	for _, v := range sorted {
		if name, ok := v.(string); ok {
			order = append(order, name)
		}
	}
	return order, nil
}
