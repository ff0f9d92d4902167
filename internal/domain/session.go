package domain

import (
	"math"
	"time"
)

type TimerState string

const (
	TimerStateIdle  TimerState = "idle"
	TimerStateArmed TimerState = "armed"
	TimerStateFired TimerState = "fired"
)

// SessionWindow is the meeting configuration handed over by the call provider.
// Either field may be absent.
type SessionWindow struct {
	StartsAt        *time.Time
	DurationMinutes *float64
}

func NewSessionWindow(startsAt *time.Time, durationMinutes *float64) SessionWindow {
	window := SessionWindow{}
	if startsAt != nil {
		start := *startsAt
		window.StartsAt = &start
	}
	if durationMinutes != nil {
		minutes := *durationMinutes
		window.DurationMinutes = &minutes
	}

	return window
}

// Duration reports the configured meeting length. ok is false when the
// duration is unset or not a positive number.
func (w SessionWindow) Duration() (time.Duration, bool) {
	if w.DurationMinutes == nil || !(*w.DurationMinutes > 0) {
		return 0, false
	}

	nanos := *w.DurationMinutes * float64(time.Minute)
	if nanos >= math.MaxInt64 {
		return time.Duration(math.MaxInt64), true
	}

	return time.Duration(nanos), true
}

func (w SessionWindow) HasStart() bool {
	return w.StartsAt != nil && !w.StartsAt.IsZero()
}
