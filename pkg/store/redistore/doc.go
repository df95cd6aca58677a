/*
Package redistore mirrors taskman result pools into Redis.

Each pool is stored as one Redis hash keyed "<prefix>:pool:<name>", with
the task id as the hash field and the task output as the value. The
in-memory registry inside the manager stays authoritative; the mirror
exists so other processes can read results.

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	store, err := redistore.New(redistore.Config{Redis: client})
	if err != nil {
		log.Fatal(err)
	}

	m, err := taskman.NewWithConfig(taskman.Config{
		WorkerCount: 4,
		Store:       store,
		OnStoreError: func(pool string, err error) {
			log.Printf("mirror %s: %v", pool, err)
		},
	})

Store errors never fail the task that produced the output; they are
reported through the manager's OnStoreError callback.
*/
package redistore
