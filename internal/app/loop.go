package app

import "sync"

// Loop runs kernel work on a single goroutine. Post queues a task; tasks
// run in FIFO order. RequestFrame asks for frame to run once the task
// queue is idle; a later request before the frame runs replaces it.
type Loop interface {
	Post(task func())
	RequestFrame(frame func())
}

// Queue is a Loop driven by its owner calling Drain. Hosts that own their
// own event loop (tests, the terminal host, EventLoop) embed it and use
// the notify hook to learn that work is waiting.
type Queue struct {
	mu     sync.Mutex
	tasks  []func()
	frame  func()
	notify func()
}

// NewQueue creates an empty queue. notify, if not nil, is called without
// the lock held after every Post and RequestFrame.
func NewQueue(notify func()) *Queue {
	return &Queue{notify: notify}
}

func (q *Queue) Post(task func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	notify := q.notify
	q.mu.Unlock()

	if notify != nil {
		notify()
	}
}

func (q *Queue) RequestFrame(frame func()) {
	q.mu.Lock()
	q.frame = frame
	notify := q.notify
	q.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// RunTasks runs queued tasks, including ones posted while running, until
// the queue is empty. It returns how many ran.
func (q *Queue) RunTasks() int {
	n := 0
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return n
		}
		task := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		task()
		n++
	}
}

// TakeFrame removes and returns the pending frame, or nil.
func (q *Queue) TakeFrame() func() {
	q.mu.Lock()
	defer q.mu.Unlock()

	f := q.frame
	q.frame = nil
	return f
}

// HasFrame reports whether a frame is pending.
func (q *Queue) HasFrame() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.frame != nil
}

// Pending reports whether any task or frame is waiting.
func (q *Queue) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks) > 0 || q.frame != nil
}

// Drain runs tasks until the queue is idle, then the pending frame, and
// repeats until nothing is left. It returns the number of frames run.
func (q *Queue) Drain() int {
	frames := 0
	for {
		q.RunTasks()
		f := q.TakeFrame()
		if f == nil {
			return frames
		}
		f()
		frames++
	}
}
