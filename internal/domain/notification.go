package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout matches the ISO-8601 UTC form used by the call provider.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

const unknownDuration = "unknown"

type NotificationKind string

const (
	NotificationWarning NotificationKind = "warning"
	NotificationEnded   NotificationKind = "ended"
)

type NotificationSource string

const (
	SourceSchedule  NotificationSource = "schedule"
	SourceCallEnded NotificationSource = "call_ended"
)

const (
	TitleWarning = "Meeting will end in 30 seconds"
	TitleEnded   = "Meeting Ended"
	ActionExtend = "Extend"
)

type ElapsedMinutes struct {
	Minutes int
	Known   bool
}

func (m ElapsedMinutes) String() string {
	if !m.Known {
		return unknownDuration
	}

	return strconv.Itoa(m.Minutes) + " minutes"
}

// ElapsedMinutesBetween floors the distance from start to end in minutes.
func ElapsedMinutesBetween(start *time.Time, end time.Time) ElapsedMinutes {
	if start == nil || start.IsZero() {
		return ElapsedMinutes{}
	}

	minutes := math.Floor(float64(end.Sub(*start)) / float64(time.Minute))
	return ElapsedMinutes{Minutes: int(minutes), Known: true}
}

type Summary struct {
	StartTime    string
	EndTime      string
	Duration     ElapsedMinutes
	Participants []string
}

func NewSummary(window SessionWindow, end time.Time, roster Roster) Summary {
	startTime := notAvailable
	if window.HasStart() {
		startTime = FormatTimestamp(*window.StartsAt)
	}

	return Summary{
		StartTime:    startTime,
		EndTime:      FormatTimestamp(end),
		Duration:     ElapsedMinutesBetween(window.StartsAt, end),
		Participants: roster.DisplayNames(),
	}
}

func (s Summary) ParticipantNames() string {
	if len(s.Participants) == 0 {
		return notAvailable
	}

	return strings.Join(s.Participants, ", ")
}

func (s Summary) Description() string {
	return fmt.Sprintf("Start Time: %s, End Time: %s, Duration: %s, Participants: %s",
		s.StartTime, s.EndTime, s.Duration, s.ParticipantNames())
}

func FormatTimestamp(value time.Time) string {
	return value.UTC().Format(TimestampLayout)
}

// Action is a user-invokable callback attached to a notification.
type Action struct {
	Label  string
	Invoke func()
}

type NotificationEvent struct {
	Kind        NotificationKind
	Source      NotificationSource
	Title       string
	Description string
	Summary     Summary
	Action      *Action
	EmittedAt   time.Time
}

func (e NotificationEvent) HasAction() bool {
	return e.Action != nil && e.Action.Invoke != nil
}
