package toml

import (
	"errors"
	"fmt"
	"time"

	"github.com/bnema/meetroom-cli/internal/domain"
)

var errInvalidMeetingEntry = errors.New("invalid meeting entry")

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Meetings []meetingSchema `toml:"meetings"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported meetings schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// validateMeetings rejects entries a meeting room could not be opened with.
func (s fileSchema) validateMeetings() error {
	seen := make(map[string]struct{}, len(s.Meetings))
	var errs []error
	for i, meeting := range s.Meetings {
		if err := meeting.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%w %d (%q): %w", errInvalidMeetingEntry, i+1, meeting.ID, err))
			continue
		}
		if _, ok := seen[meeting.ID]; ok {
			errs = append(errs, fmt.Errorf("%w %d: duplicate id %q", errInvalidMeetingEntry, i+1, meeting.ID))
			continue
		}
		seen[meeting.ID] = struct{}{}
	}

	return errors.Join(errs...)
}

type meetingSchema struct {
	ID              string              `toml:"id"`
	Title           string              `toml:"title,omitempty"`
	StartsAt        string              `toml:"starts_at,omitempty"`
	DurationMinutes *float64            `toml:"duration_minutes,omitempty"`
	Personal        bool                `toml:"personal,omitempty"`
	CreatedAt       string              `toml:"created_at,omitempty"`
	Participants    []participantSchema `toml:"participants,omitempty"`
}

type participantSchema struct {
	ID   string `toml:"id"`
	Name string `toml:"name,omitempty"`
}

func (m meetingSchema) validate() error {
	if m.ID == "" {
		return errors.New("id is empty")
	}
	if m.DurationMinutes != nil && !(*m.DurationMinutes > 0) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidDuration, *m.DurationMinutes)
	}
	for _, field := range []struct{ name, value string }{{"starts_at", m.StartsAt}, {"created_at", m.CreatedAt}} {
		if field.value == "" {
			continue
		}
		if _, err := time.Parse(time.RFC3339, field.value); err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
	}
	for _, participant := range m.Participants {
		if participant.ID == "" {
			return errors.New("participant id is empty")
		}
	}

	return nil
}
