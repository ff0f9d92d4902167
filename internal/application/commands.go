package application

import (
	"time"

	"github.com/bnema/meetroom-cli/internal/domain"
)

type CreateMeetingCommand struct {
	ID              domain.MeetingID
	Title           string
	StartsAt        *time.Time
	DurationMinutes *float64
	Personal        bool
	Participants    domain.Roster
}

type SetParticipantsCommand struct {
	ID           domain.MeetingID
	Participants domain.Roster
}
