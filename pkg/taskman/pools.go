package taskman

import (
	"context"
	"sync"
)

// PoolStore mirrors pool writes to an external backend. The in-memory
// registry stays authoritative; store errors never fail the task that
// produced the output, they are reported through Config.OnStoreError.
type PoolStore interface {
	// Put records one task output under the given pool and id.
	Put(ctx context.Context, pool string, id int, output string) error

	// Clear removes every entry for one pool.
	Clear(ctx context.Context, pool string) error
}

// poolRegistry is the in-memory pool store: pool name to id to output.
// Pools are created implicitly on first write.
type poolRegistry struct {
	mu    sync.Mutex
	pools map[string]map[int]string

	store   PoolStore
	onError func(pool string, err error)
}

func newPoolRegistry(store PoolStore, onError func(string, error)) *poolRegistry {
	return &poolRegistry{
		pools:   make(map[string]map[int]string),
		store:   store,
		onError: onError,
	}
}

// put files one output under its pool at the id reserved at dequeue time.
func (r *poolRegistry) put(pool string, id int, output string) {
	r.mu.Lock()
	p, ok := r.pools[pool]
	if !ok {
		p = make(map[int]string)
		r.pools[pool] = p
	}
	p[id] = output
	r.mu.Unlock()

	if r.store != nil {
		if err := r.store.Put(context.Background(), pool, id, output); err != nil && r.onError != nil {
			r.onError(pool, err)
		}
	}
}

// clear removes all entries for one pool. Id allocation is untouched.
func (r *poolRegistry) clear(pool string) {
	r.mu.Lock()
	delete(r.pools, pool)
	r.mu.Unlock()

	if r.store != nil {
		if err := r.store.Clear(context.Background(), pool); err != nil && r.onError != nil {
			r.onError(pool, err)
		}
	}
}

// get returns a copy of one pool. A pool that was never written to, or
// was cleared, reads as an empty mapping.
func (r *poolRegistry) get(pool string) map[int]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int]string, len(r.pools[pool]))
	for id, v := range r.pools[pool] {
		out[id] = v
	}
	return out
}

// all returns a copy of every pool.
func (r *poolRegistry) all() map[string]map[int]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]map[int]string, len(r.pools))
	for name, p := range r.pools {
		cp := make(map[int]string, len(p))
		for id, v := range p {
			cp[id] = v
		}
		out[name] = cp
	}
	return out
}

// size returns the number of entries in one pool.
func (r *poolRegistry) size(pool string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pools[pool])
}
