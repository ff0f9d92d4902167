package application

import (
	"fmt"

	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/bnema/meetroom-cli/internal/ports"
	"github.com/rs/zerolog"
)

const maxToasts = 5

// RoomSnapshot is everything a view needs to draw the room.
type RoomSnapshot struct {
	MeetingID        domain.MeetingID
	Title            string
	Personal         bool
	Joined           bool
	Elapsed          string
	TimerState       domain.TimerState
	Layout           domain.CallLayout
	ShowParticipants bool
	Participants     []string
	Toasts           []domain.NotificationEvent
	CanExtend        bool
}

// MeetingRoom ties the stopwatch and the session timer controller to the
// signals of a single call. Like both of them it lives on one event loop.
type MeetingRoom struct {
	meeting    domain.Meeting
	clock      ports.Clock
	stopwatch  *Stopwatch
	controller *SessionTimerController
	downstream ports.Notifier
	logger     zerolog.Logger

	roster           domain.Roster
	layout           domain.CallLayout
	showParticipants bool
	extension        *domain.Action
	extensionArm     uint64
	toasts           []domain.NotificationEvent
}

type RoomOption func(*MeetingRoom)

func WithRoomLogger(logger zerolog.Logger) RoomOption {
	return func(r *MeetingRoom) {
		r.logger = logger
	}
}

func WithLayout(layout domain.CallLayout) RoomOption {
	return func(r *MeetingRoom) {
		if layout != "" {
			r.layout = layout
		}
	}
}

func NewMeetingRoom(meeting domain.Meeting, loop ports.EventLoop, notifier ports.Notifier, opts ...RoomOption) *MeetingRoom {
	r := &MeetingRoom{
		meeting:    meeting,
		clock:      loop,
		stopwatch:  NewStopwatch(loop),
		downstream: notifier,
		logger:     zerolog.Nop(),
		roster:     append(domain.Roster(nil), meeting.Participants...),
		layout:     domain.DefaultLayout(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.controller = NewSessionTimerController(loop, loop, ports.NotifierFunc(r.receive),
		WithRoster(r),
		WithControllerLogger(r.logger),
		WithFiredHook(func() { r.stopwatch.SetRunning(false) }),
	)

	window := meeting.Window
	r.controller.OnConfigured(&window)

	return r
}

// Participants implements ports.RosterSource.
func (r *MeetingRoom) Participants() domain.Roster {
	return r.roster
}

func (r *MeetingRoom) Join() {
	r.stopwatch.SetRunning(true)
	r.controller.OnJoinedChanged(true)
	r.logger.Info().Str("meeting_id", string(r.meeting.ID)).Msg("joined meeting")
}

func (r *MeetingRoom) Leave() {
	r.extension = nil
	r.stopwatch.SetRunning(false)
	r.controller.OnJoinedChanged(false)
	r.logger.Info().Str("meeting_id", string(r.meeting.ID)).Msg("left meeting")
}

func (r *MeetingRoom) ToggleJoined() {
	if r.controller.Joined() {
		r.Leave()
		return
	}

	r.Join()
}

// EndCall ends the call for everyone. Personal rooms have no such control.
func (r *MeetingRoom) EndCall() error {
	if r.meeting.Personal {
		return domain.ErrPersonalRoomEndCall
	}

	r.controller.OnCallEnded(r.clock.Now())
	r.Leave()
	return nil
}

func (r *MeetingRoom) Reconfigure(window domain.SessionWindow) {
	r.meeting.Window = window
	r.extension = nil
	r.controller.OnConfigured(&window)
}

func (r *MeetingRoom) SetRoster(roster domain.Roster) {
	r.roster = append(domain.Roster(nil), roster...)
}

// Extend invokes the action offered by the latest warning.
func (r *MeetingRoom) Extend() error {
	if !r.canExtend() {
		return domain.ErrNoPendingExtension
	}

	r.extension.Invoke()
	return nil
}

func (r *MeetingRoom) SetLayout(layout domain.CallLayout) error {
	if _, err := domain.ParseCallLayout(string(layout)); err != nil {
		return fmt.Errorf("set layout: %w", err)
	}

	r.layout = layout
	return nil
}

func (r *MeetingRoom) CycleLayout() domain.CallLayout {
	r.layout = r.layout.Next()
	return r.layout
}

func (r *MeetingRoom) ToggleParticipants() bool {
	r.showParticipants = !r.showParticipants
	return r.showParticipants
}

func (r *MeetingRoom) DismissToasts() {
	r.toasts = nil
}

func (r *MeetingRoom) Stopwatch() *Stopwatch {
	return r.stopwatch
}

func (r *MeetingRoom) Controller() *SessionTimerController {
	return r.controller
}

func (r *MeetingRoom) Snapshot() RoomSnapshot {
	return RoomSnapshot{
		MeetingID:        r.meeting.ID,
		Title:            r.meeting.Label(),
		Personal:         r.meeting.Personal,
		Joined:           r.controller.Joined(),
		Elapsed:          r.stopwatch.Formatted(),
		TimerState:       r.controller.State(),
		Layout:           r.layout,
		ShowParticipants: r.showParticipants,
		Participants:     r.roster.DisplayNames(),
		Toasts:           append([]domain.NotificationEvent(nil), r.toasts...),
		CanExtend:        r.canExtend(),
	}
}

// canExtend reports whether the held action belongs to the current arming.
func (r *MeetingRoom) canExtend() bool {
	return r.extension != nil &&
		r.extensionArm == r.controller.Generation() &&
		r.controller.State() == domain.TimerStateArmed
}

func (r *MeetingRoom) Close() {
	r.extension = nil
	r.stopwatch.Close()
	r.controller.Close()
}

func (r *MeetingRoom) receive(event domain.NotificationEvent) {
	if event.HasAction() {
		r.extension = event.Action
		r.extensionArm = r.controller.Generation()
	} else if event.Source == domain.SourceSchedule {
		r.extension = nil
	}

	r.toasts = append(r.toasts, event)
	if len(r.toasts) > maxToasts {
		r.toasts = r.toasts[len(r.toasts)-maxToasts:]
	}

	if r.downstream != nil {
		r.downstream.Notify(event)
	}
}
