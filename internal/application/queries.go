package application

import (
	"github.com/bnema/meetroom-cli/internal/domain"
)

// MeetingView is the flattened form of a meeting used for JSON and YAML output.
type MeetingView struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title,omitempty" yaml:"title,omitempty"`
	StartsAt        string   `json:"starts_at,omitempty" yaml:"starts_at,omitempty"`
	DurationMinutes *float64 `json:"duration_minutes,omitempty" yaml:"duration_minutes,omitempty"`
	Personal        bool     `json:"personal" yaml:"personal"`
	Participants    []string `json:"participants" yaml:"participants"`
}

func NewMeetingView(meeting domain.Meeting) MeetingView {
	view := MeetingView{
		ID:              string(meeting.ID),
		Title:           meeting.Title,
		DurationMinutes: meeting.Window.DurationMinutes,
		Personal:        meeting.Personal,
		Participants:    meeting.Participants.DisplayNames(),
	}
	if meeting.Window.HasStart() {
		view.StartsAt = domain.FormatTimestamp(*meeting.Window.StartsAt)
	}

	return view
}

// NotificationView is the serialisable form of a delivered notification.
type NotificationView struct {
	At           string   `json:"at" yaml:"at"`
	Elapsed      string   `json:"elapsed,omitempty" yaml:"elapsed,omitempty"`
	Kind         string   `json:"kind" yaml:"kind"`
	Source       string   `json:"source" yaml:"source"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	StartTime    string   `json:"start_time" yaml:"start_time"`
	EndTime      string   `json:"end_time" yaml:"end_time"`
	Duration     string   `json:"duration" yaml:"duration"`
	Participants []string `json:"participants" yaml:"participants"`
	Action       string   `json:"action,omitempty" yaml:"action,omitempty"`
}

func NewNotificationView(event domain.NotificationEvent, elapsed string) NotificationView {
	view := NotificationView{
		At:           domain.FormatTimestamp(event.EmittedAt),
		Elapsed:      elapsed,
		Kind:         string(event.Kind),
		Source:       string(event.Source),
		Title:        event.Title,
		Description:  event.Description,
		StartTime:    event.Summary.StartTime,
		EndTime:      event.Summary.EndTime,
		Duration:     event.Summary.Duration.String(),
		Participants: append([]string{}, event.Summary.Participants...),
	}
	if event.HasAction() {
		view.Action = event.Action.Label
	}

	return view
}
