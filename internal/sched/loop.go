package sched

import "sync"

// Loop runs tasks on its own goroutine, in FIFO order.
type Loop struct {
	mu     sync.Mutex
	tasks  []func()
	wake   chan struct{}
	done   chan struct{}
	closed bool
}

// NewLoop starts a new loop goroutine.
func NewLoop() *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go l.runloop()
	return l
}

// Schedule appends a task to the queue. Tasks scheduled after Close are
// dropped.
func (l *Loop) Schedule(task func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Close stops the loop after the task currently running, if any. Pending tasks
// are dropped.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.tasks = nil
	l.mu.Unlock()
	close(l.done)
}

// Done is closed once Close has been called.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) runloop() {
	for {
		select {
		case <-l.done:
			return
		case <-l.wake:
		}

		for {
			l.mu.Lock()
			if l.closed || len(l.tasks) == 0 {
				l.mu.Unlock()
				break
			}
			task := l.tasks[0]
			l.tasks[0] = nil
			l.tasks = l.tasks[1:]
			l.mu.Unlock()

			run(task)
		}
	}
}
