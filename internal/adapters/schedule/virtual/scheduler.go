// Package virtual provides a deterministic, manually advanced event loop.
// Nothing runs until Advance or AdvanceTo is called; due callbacks then run on
// the caller's goroutine in due-time order, ties broken by registration order.
package virtual

import (
	"container/heap"
	"time"

	"github.com/bnema/meetroom-cli/internal/ports"
)

type Scheduler struct {
	now   time.Time
	seq   uint64
	queue timerQueue
}

var _ ports.EventLoop = (*Scheduler)(nil)

func New(start time.Time) *Scheduler {
	return &Scheduler{now: start}
}

func (s *Scheduler) Now() time.Time {
	return s.now
}

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) ports.Handle {
	return s.schedule(d, 0, fn)
}

func (s *Scheduler) Every(d time.Duration, fn func()) ports.Handle {
	if d <= 0 {
		panic("virtual: non-positive interval for Every")
	}

	return s.schedule(d, d, fn)
}

// Advance moves virtual time forward by d and returns how many callbacks ran.
func (s *Scheduler) Advance(d time.Duration) int {
	return s.AdvanceTo(s.now.Add(d))
}

func (s *Scheduler) AdvanceTo(target time.Time) int {
	fired := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.due.After(target) {
			break
		}

		heap.Pop(&s.queue)
		s.now = next.due
		if next.interval > 0 {
			next.due = next.due.Add(next.interval)
			heap.Push(&s.queue, next)
		} else {
			next.done = true
		}

		next.fn()
		fired++
	}

	if target.After(s.now) {
		s.now = target
	}

	return fired
}

// Pending reports the number of scheduled actions that have not fired or been stopped.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

func (s *Scheduler) NextDue() (time.Time, bool) {
	if s.queue.Len() == 0 {
		return time.Time{}, false
	}

	return s.queue[0].due, true
}

func (s *Scheduler) schedule(delay, interval time.Duration, fn func()) *timer {
	if delay < 0 {
		delay = 0
	}

	t := &timer{
		owner:    s,
		due:      s.now.Add(delay),
		seq:      s.nextSeq(),
		interval: interval,
		fn:       fn,
		index:    -1,
	}
	heap.Push(&s.queue, t)

	return t
}

func (s *Scheduler) nextSeq() uint64 {
	s.seq++
	return s.seq
}

type timer struct {
	owner    *Scheduler
	due      time.Time
	seq      uint64
	interval time.Duration
	fn       func()
	index    int
	done     bool
}

func (t *timer) Stop() {
	if t.done {
		return
	}

	t.done = true
	if t.index >= 0 {
		heap.Remove(&t.owner.queue, t.index)
	}
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}

	return q[i].due.Before(q[j].due)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]

	return t
}
