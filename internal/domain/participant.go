package domain

import "strings"

const notAvailable = "N/A"

type ParticipantID string

type Participant struct {
	ID   ParticipantID
	Name string
}

func (p Participant) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}

	return string(p.ID)
}

// Roster is the ordered participant list reported by the call provider.
type Roster []Participant

func (r Roster) DisplayNames() []string {
	names := make([]string, 0, len(r))
	for _, participant := range r {
		names = append(names, participant.DisplayName())
	}

	return names
}

func (r Roster) Names() string {
	if len(r) == 0 {
		return notAvailable
	}

	return strings.Join(r.DisplayNames(), ", ")
}
