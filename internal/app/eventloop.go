package app

import (
	"context"
	"time"
)

// EventLoop is a Loop running on the goroutine that calls Run. Frames run
// once the task queue is idle, at most once per interval; an interval of
// zero runs them as soon as the queue is idle.
type EventLoop struct {
	q        *Queue
	wake     chan struct{}
	interval time.Duration
}

// NewEventLoop creates an EventLoop with the given frame interval.
func NewEventLoop(interval time.Duration) *EventLoop {
	l := &EventLoop{
		wake:     make(chan struct{}, 1),
		interval: interval,
	}
	l.q = NewQueue(l.signal)
	return l
}

func (l *EventLoop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *EventLoop) Post(task func()) { l.q.Post(task) }

func (l *EventLoop) RequestFrame(frame func()) { l.q.RequestFrame(frame) }

// Run processes work until ctx is done and returns ctx.Err().
func (l *EventLoop) Run(ctx context.Context) error {
	var (
		timer     *time.Timer
		timerC    <-chan time.Time
		lastFrame time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		l.q.RunTasks()

		if timerC == nil && l.q.HasFrame() {
			wait := time.Duration(0)
			if l.interval > 0 && !lastFrame.IsZero() {
				wait = l.interval - time.Since(lastFrame)
			}
			if wait <= 0 {
				if f := l.q.TakeFrame(); f != nil {
					f()
					lastFrame = time.Now()
				}
				continue
			}
			timer = time.NewTimer(wait)
			timerC = timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		case <-timerC:
			timerC = nil
			l.q.RunTasks()
			if f := l.q.TakeFrame(); f != nil {
				f()
				lastFrame = time.Now()
			}
		}
	}
}
