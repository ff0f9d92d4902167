package application

import (
	"time"

	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/bnema/meetroom-cli/internal/ports"
)

// TickInterval is the stopwatch resolution.
const TickInterval = time.Second

// Stopwatch counts whole seconds while running. It must only be driven from
// the goroutine of the scheduler it was built with.
type Stopwatch struct {
	scheduler ports.Scheduler
	elapsed   domain.ElapsedTime
	running   bool
	tick      ports.Handle
	observers []func(domain.ElapsedTime)
}

func NewStopwatch(scheduler ports.Scheduler) *Stopwatch {
	return &Stopwatch{scheduler: scheduler}
}

// SetRunning starts or pauses the count. The elapsed value is kept across
// pauses; repeating the current state is a no-op.
func (s *Stopwatch) SetRunning(running bool) {
	if running == s.running {
		return
	}

	s.running = running
	if !running {
		s.release()
		return
	}

	s.tick = s.scheduler.Every(TickInterval, s.advance)
}

func (s *Stopwatch) Running() bool {
	return s.running
}

func (s *Stopwatch) Elapsed() domain.ElapsedTime {
	return s.elapsed
}

func (s *Stopwatch) Formatted() string {
	return s.elapsed.String()
}

// OnTick registers an observer called with the new value after every increment.
func (s *Stopwatch) OnTick(observer func(domain.ElapsedTime)) {
	if observer != nil {
		s.observers = append(s.observers, observer)
	}
}

// Reset zeroes the counter without changing the running state.
func (s *Stopwatch) Reset() {
	s.elapsed = 0
}

func (s *Stopwatch) Close() {
	s.running = false
	s.release()
}

func (s *Stopwatch) advance() {
	if !s.running {
		return
	}

	s.elapsed++
	for _, observer := range s.observers {
		observer(s.elapsed)
	}
}

func (s *Stopwatch) release() {
	if s.tick != nil {
		s.tick.Stop()
		s.tick = nil
	}
}
