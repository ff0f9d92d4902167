package domain

import "time"

type MeetingID string

// Meeting is a stored room configuration.
type Meeting struct {
	ID           MeetingID
	Title        string
	Window       SessionWindow
	Personal     bool
	Participants Roster
	CreatedAt    time.Time
}

func (m Meeting) Label() string {
	if m.Title == "" {
		return string(m.ID)
	}

	return m.Title
}
