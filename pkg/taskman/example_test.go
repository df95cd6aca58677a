package taskman_test

import (
	"fmt"

	"github.com/unmined/taskman/pkg/taskman"
)

func Example() {
	m := taskman.New(1)

	m.Add(taskman.NewTask("extract", func() (string, int) {
		return "extracted 3 rows", 0
	}).WithPool("etl"))

	m.Add(taskman.NewTask("load", func() (string, int) {
		return "loaded 3 rows", 0
	}).WithAfter("extract").WithPool("etl"))

	m.Start()
	m.Join()
	m.Stop()

	results := m.Pool("etl")
	for id := 0; id < len(results); id++ {
		fmt.Printf("%d: %s\n", id, results[id])
	}
	// Output:
	// 0: extracted 3 rows
	// 1: loaded 3 rows
}

func Example_failure() {
	m, _ := taskman.NewWithConfig(taskman.Config{
		WorkerCount: 1,
		OnTaskFail: func(t taskman.Task, workerID, status int) {
			fmt.Printf("%s failed with status %d\n", t.Name, status)
		},
	})

	m.Add(taskman.NewTask("flaky", func() (string, int) {
		return "", 7
	}))

	m.Start()
	m.Join()
	m.Stop()

	fmt.Println("stored outputs:", len(m.Pool("flaky")))
	// Output:
	// flaky failed with status 7
	// stored outputs: 0
}

func ExampleManager_Preflight() {
	m := taskman.New(2)
	defer m.Stop()

	m.Add(taskman.NewTask("report", func() (string, int) { return "", 0 }).WithAfter("fetch"))
	m.Add(taskman.NewTask("fetch", func() (string, int) { return "", 0 }))

	order, err := m.Preflight()
	if err != nil {
		fmt.Println("bad graph:", err)
		return
	}
	fmt.Println(order)
	// Output:
	// [fetch report]
}
