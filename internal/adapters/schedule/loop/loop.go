// Package loop is the wall-clock event loop. Timers run on their own
// goroutines but only post work; every callback executes through a single
// dispatch function, so loop-owned state needs no locking.
package loop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/meetroom-cli/internal/ports"
)

const defaultQueueSize = 64

type Loop struct {
	clock     ports.Clock
	dispatch  func(func())
	queue     chan func()
	closed    chan struct{}
	closeOnce sync.Once
}

var _ ports.EventLoop = (*Loop)(nil)

type Option func(*Loop)

// WithDispatch hands posted callbacks to an external loop instead of the
// internal queue drained by Run.
func WithDispatch(dispatch func(func())) Option {
	return func(l *Loop) {
		l.dispatch = dispatch
	}
}

func WithClock(clock ports.Clock) Option {
	return func(l *Loop) {
		if clock != nil {
			l.clock = clock
		}
	}
}

func WithQueueSize(size int) Option {
	return func(l *Loop) {
		if size > 0 {
			l.queue = make(chan func(), size)
		}
	}
}

func New(opts ...Option) *Loop {
	l := &Loop{
		clock:  ports.SystemClock{},
		queue:  make(chan func(), defaultQueueSize),
		closed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// Post queues fn to run on the loop. Work posted after the loop stopped is dropped.
func (l *Loop) Post(fn func()) {
	if l.dispatch != nil {
		l.dispatch(fn)
		return
	}

	select {
	case l.queue <- fn:
	case <-l.closed:
	}
}

// Run drains the internal queue until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	defer l.closeOnce.Do(func() { close(l.closed) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

func (l *Loop) AfterFunc(d time.Duration, fn func()) ports.Handle {
	h := &afterHandle{}
	h.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if h.stopped.CompareAndSwap(false, true) {
				fn()
			}
		})
	})

	return h
}

func (l *Loop) Every(d time.Duration, fn func()) ports.Handle {
	h := &tickHandle{done: make(chan struct{})}
	ticker := time.NewTicker(d)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-h.done:
				return
			case <-ticker.C:
				l.Post(func() {
					if !h.stopped.Load() {
						fn()
					}
				})
			}
		}
	}()

	return h
}

type afterHandle struct {
	timer   *time.Timer
	stopped atomic.Bool
}

func (h *afterHandle) Stop() {
	h.stopped.Store(true)
	if h.timer != nil {
		h.timer.Stop()
	}
}

type tickHandle struct {
	done    chan struct{}
	stopped atomic.Bool
}

func (h *tickHandle) Stop() {
	if h.stopped.CompareAndSwap(false, true) {
		close(h.done)
	}
}
