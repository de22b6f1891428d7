// Package join runs independent fetches concurrently and waits for all of
// them. Unlike an errgroup, a failing task does not cancel its siblings;
// the dashboard renders whatever subset succeeded.
package join

import (
	"context"
	"sync"
)

// Task is a named unit of work.
type Task struct {
	Name string
	Run  func(context.Context) error
}

// Outcome records how a single task settled.
type Outcome struct {
	Name string
	Err  error
}

// All runs every task concurrently and blocks until all have settled.
// Outcomes are returned in task order.
func All(ctx context.Context, tasks ...Task) []Outcome {
	outcomes := make([]Outcome, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, t Task) {
			defer wg.Done()
			outcomes[i] = Outcome{Name: t.Name, Err: t.Run(ctx)}
		}(i, task)
	}
	wg.Wait()
	return outcomes
}

// Failed returns the outcomes that settled with an error.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
