package sched

import "sync"

// Queue is a Scheduler driven by the caller, one tick at a time. It makes
// the number of scheduling turns between two observable effects exact, which
// the tests of this module depend on.
type Queue struct {
	mu    sync.Mutex
	tasks []func()
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Schedule(task func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
}

// Len returns the number of tasks waiting for the next tick.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Tick runs the tasks that were queued when it was called. Tasks they schedule
// wait for the next tick. Returns the number of tasks run.
func (q *Queue) Tick() int {
	q.mu.Lock()
	batch := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, task := range batch {
		run(task)
	}
	return len(batch)
}

// RunUntilIdle ticks until the queue is empty or max ticks have run, and
// returns the number of ticks.
func (q *Queue) RunUntilIdle(max int) int {
	n := 0
	for n < max && q.Len() > 0 {
		q.Tick()
		n++
	}
	return n
}
