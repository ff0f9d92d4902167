package ports

import "time"

// Handle is an owned scheduled action. Stop is idempotent and is a no-op once
// the action fired or was already stopped.
type Handle interface {
	Stop()
}

// Scheduler is the host event loop. Every callback it runs executes on the
// same loop, one at a time.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
	Every(d time.Duration, fn func()) Handle
}

// EventLoop is a Scheduler that also tells time.
type EventLoop interface {
	Clock
	Scheduler
}
