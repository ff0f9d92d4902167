package script

import (
	"fmt"
	"time"

	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/rs/zerolog"
)

// Clock is the virtual time source a replay drives.
type Clock interface {
	Now() time.Time
	AdvanceTo(target time.Time) int
}

// Room receives the replayed signals.
type Room interface {
	Join()
	Leave()
	Reconfigure(window domain.SessionWindow)
	SetRoster(roster domain.Roster)
	EndCall() error
	Extend() error
}

// StepError records a signal the room refused.
type StepError struct {
	Step Step
	Err  error
}

func (e StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e StepError) Unwrap() error {
	return e.Err
}

// Play applies each step at its offset from the clock's current instant, then
// runs the tail. Refused signals do not stop the replay.
func Play(script Script, clock Clock, room Room, logger zerolog.Logger) []StepError {
	start := clock.Now()
	var rejected []StepError

	for _, step := range script.Steps {
		clock.AdvanceTo(start.Add(step.At))
		logger.Debug().
			Int("step", step.Index).
			Str("signal", string(step.Signal)).
			Dur("at", step.At).
			Msg("apply signal")

		if err := apply(step, room); err != nil {
			logger.Warn().Err(err).Int("step", step.Index).Str("signal", string(step.Signal)).Msg("signal rejected")
			rejected = append(rejected, StepError{Step: step, Err: err})
		}
	}

	last := time.Duration(0)
	if len(script.Steps) > 0 {
		last = script.Steps[len(script.Steps)-1].At
	}
	clock.AdvanceTo(start.Add(last + script.Tail))

	return rejected
}

func apply(step Step, room Room) error {
	switch step.Signal {
	case SignalJoin:
		room.Join()
	case SignalLeave:
		room.Leave()
	case SignalConfigure:
		room.Reconfigure(step.Window)
	case SignalRoster:
		room.SetRoster(step.Roster)
	case SignalCallEnded:
		return room.EndCall()
	case SignalExtend:
		return room.Extend()
	default:
		return fmt.Errorf("unknown signal %q", step.Signal)
	}

	return nil
}
