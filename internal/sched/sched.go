// Package sched provides the task queues that run a simulated peer connection's
// asynchronous continuations.
//
// A task is never run by the call that schedules it, and tasks from one
// Scheduler run one at a time in the order they were scheduled.
package sched

import (
	"sync"

	"github.com/lanikai/fakertc/internal/logging"
)


// A Scheduler accepts tasks to run later.
type Scheduler interface {
	Schedule(task func())
}

var (
	defaultLoop     *Loop
	defaultLoopOnce sync.Once
)

// Default returns the process-wide Loop, starting it on first use. It is never
// closed.
func Default() *Loop {
	defaultLoopOnce.Do(func() {
		defaultLoop = NewLoop()
	})
	return defaultLoop
}

// run executes a task, recovering a panic so the caller's queue survives it.
func run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.DefaultLogger.WithTag("sched").Error("Task panicked: %v", r)
		}
	}()
	task()
}
