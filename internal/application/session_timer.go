package application

import (
	"time"

	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/bnema/meetroom-cli/internal/ports"
	"github.com/rs/zerolog"
)

const (
	// WarningLead is how long before the end the warning fires.
	WarningLead = 30 * time.Second
	// ExtensionDelay is how far out an extension reschedules the end.
	ExtensionDelay = 10 * time.Minute
)

type EventKind string

const (
	EventConfigured    EventKind = "configured"
	EventJoinedChanged EventKind = "joined_changed"
	EventCallEnded     EventKind = "call_ended"
)

// Event is a change of one of the call provider signals.
type Event struct {
	Kind    EventKind
	Window  *domain.SessionWindow
	Joined  bool
	EndedAt time.Time
}

func ConfiguredEvent(window *domain.SessionWindow) Event {
	return Event{Kind: EventConfigured, Window: window}
}

func JoinedChangedEvent(joined bool) Event {
	return Event{Kind: EventJoinedChanged, Joined: joined}
}

func CallEndedEvent(endedAt time.Time) Event {
	return Event{Kind: EventCallEnded, EndedAt: endedAt}
}

// SessionTimerController raises the "ending soon" and "ended" notifications
// for a configured meeting window. It owns at most one warning and one end
// handle at a time and is not safe for use outside its scheduler's loop.
type SessionTimerController struct {
	clock     ports.Clock
	scheduler ports.Scheduler
	notifier  ports.Notifier
	roster    ports.RosterSource
	logger    zerolog.Logger
	onFired   func()

	window     *domain.SessionWindow
	joined     bool
	state      domain.TimerState
	generation uint64
	warning    ports.Handle
	ended      ports.Handle
	callEnded  time.Time
}

type ControllerOption func(*SessionTimerController)

func WithRoster(roster ports.RosterSource) ControllerOption {
	return func(c *SessionTimerController) {
		if roster != nil {
			c.roster = roster
		}
	}
}

func WithControllerLogger(logger zerolog.Logger) ControllerOption {
	return func(c *SessionTimerController) {
		c.logger = logger
	}
}

// WithFiredHook runs hook when the scheduled end fires, before the notification is delivered.
func WithFiredHook(hook func()) ControllerOption {
	return func(c *SessionTimerController) {
		c.onFired = hook
	}
}

func NewSessionTimerController(clock ports.Clock, scheduler ports.Scheduler, notifier ports.Notifier, opts ...ControllerOption) *SessionTimerController {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	c := &SessionTimerController{
		clock:     clock,
		scheduler: scheduler,
		notifier:  notifier,
		roster:    ports.StaticRoster(nil),
		logger:    zerolog.Nop(),
		state:     domain.TimerStateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *SessionTimerController) Dispatch(event Event) {
	switch event.Kind {
	case EventConfigured:
		c.OnConfigured(event.Window)
	case EventJoinedChanged:
		c.OnJoinedChanged(event.Joined)
	case EventCallEnded:
		c.OnCallEnded(event.EndedAt)
	default:
		c.logger.Warn().Str("event", string(event.Kind)).Msg("ignoring unknown controller event")
	}
}

// OnConfigured replaces the meeting window. Pending actions of the previous
// window are cancelled and the controller re-arms if already joined. A nil
// window clears the configuration.
func (c *SessionTimerController) OnConfigured(window *domain.SessionWindow) {
	c.release()
	c.state = domain.TimerStateIdle

	if window == nil {
		c.window = nil
		c.logger.Debug().Msg("meeting window cleared")
		return
	}

	configured := domain.NewSessionWindow(window.StartsAt, window.DurationMinutes)
	c.window = &configured
	c.arm()
}

func (c *SessionTimerController) OnJoinedChanged(joined bool) {
	if joined == c.joined {
		return
	}

	c.joined = joined
	if joined {
		c.arm()
		return
	}

	if c.state == domain.TimerStateArmed {
		c.release()
		c.state = domain.TimerStateIdle
		c.logger.Debug().Msg("left meeting, timers cancelled")
	}
}

// OnCallEnded observes the provider's call-ended timestamp. A zero value means
// the call has not ended. Each newly observed timestamp emits one notification,
// whatever the timer state.
func (c *SessionTimerController) OnCallEnded(endedAt time.Time) {
	if endedAt.IsZero() {
		c.callEnded = time.Time{}
		return
	}
	if endedAt.Equal(c.callEnded) {
		return
	}

	c.callEnded = endedAt
	c.logger.Debug().Time("ended_at", endedAt).Msg("call ended by provider")
	c.notify(domain.NotificationEnded, domain.SourceCallEnded, nil)
}

// Close cancels any pending action. The controller can still be reconfigured afterwards.
func (c *SessionTimerController) Close() {
	c.release()
	if c.state == domain.TimerStateArmed {
		c.state = domain.TimerStateIdle
	}
}

func (c *SessionTimerController) State() domain.TimerState {
	return c.state
}

func (c *SessionTimerController) Joined() bool {
	return c.joined
}

func (c *SessionTimerController) Window() (domain.SessionWindow, bool) {
	if c.window == nil {
		return domain.SessionWindow{}, false
	}

	return *c.window, true
}

// Generation identifies the current arming. It changes every time the timers are armed.
func (c *SessionTimerController) Generation() uint64 {
	return c.generation
}

// PendingActions reports how many scheduled actions the controller currently owns.
func (c *SessionTimerController) PendingActions() int {
	pending := 0
	if c.warning != nil {
		pending++
	}
	if c.ended != nil {
		pending++
	}

	return pending
}

func (c *SessionTimerController) arm() {
	if c.state != domain.TimerStateIdle || !c.joined || c.window == nil {
		return
	}

	duration, ok := c.window.Duration()
	if !ok {
		c.logger.Debug().Msg("meeting window has no duration, staying idle")
		return
	}

	c.generation++
	generation := c.generation

	warnAfter := duration - WarningLead
	if warnAfter < 0 {
		warnAfter = 0
	}

	c.warning = c.scheduler.AfterFunc(warnAfter, func() { c.fireWarning(generation) })
	c.ended = c.scheduler.AfterFunc(duration, func() { c.fireEnded(generation) })
	c.state = domain.TimerStateArmed

	c.logger.Debug().
		Dur("warning_in", warnAfter).
		Dur("ended_in", duration).
		Msg("meeting timers armed")
}

func (c *SessionTimerController) fireWarning(generation uint64) {
	if !c.current(generation) {
		return
	}

	c.warning = nil
	c.notify(domain.NotificationWarning, domain.SourceSchedule, &domain.Action{
		Label:  domain.ActionExtend,
		Invoke: func() { c.extend(generation) },
	})
}

func (c *SessionTimerController) extend(generation uint64) {
	if !c.current(generation) {
		c.logger.Debug().Msg("extension ignored, meeting no longer armed")
		return
	}

	if c.ended != nil {
		c.ended.Stop()
	}
	c.ended = c.scheduler.AfterFunc(ExtensionDelay, func() { c.fireEnded(generation) })

	c.logger.Info().Dur("ended_in", ExtensionDelay).Msg("meeting extended")
}

func (c *SessionTimerController) fireEnded(generation uint64) {
	if !c.current(generation) {
		return
	}

	c.ended = nil
	c.release()
	c.state = domain.TimerStateFired

	if c.onFired != nil {
		c.onFired()
	}
	c.notify(domain.NotificationEnded, domain.SourceSchedule, nil)
}

func (c *SessionTimerController) current(generation uint64) bool {
	return generation == c.generation && c.state == domain.TimerStateArmed
}

func (c *SessionTimerController) notify(kind domain.NotificationKind, source domain.NotificationSource, action *domain.Action) {
	event := buildNotification(kind, source, c.window, c.roster.Participants(), c.clock.Now())
	event.Action = action

	c.logger.Debug().
		Str("kind", string(kind)).
		Str("source", string(source)).
		Msg("notification emitted")

	if c.notifier != nil {
		c.notifier.Notify(event)
	}
}

func (c *SessionTimerController) release() {
	if c.warning != nil {
		c.warning.Stop()
		c.warning = nil
	}
	if c.ended != nil {
		c.ended.Stop()
		c.ended = nil
	}
}
