// Package script reads replay scripts: a meeting definition plus external
// call signals, each at an offset from the start of the replay.
package script

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/meetroom-cli/internal/domain"
	"gopkg.in/yaml.v3"
)

type Signal string

const (
	SignalJoin      Signal = "join"
	SignalLeave     Signal = "leave"
	SignalConfigure Signal = "configure"
	SignalRoster    Signal = "roster"
	SignalCallEnded Signal = "call_ended"
	SignalExtend    Signal = "extend"
)

var ErrEmptyScript = errors.New("script has no steps")

type Script struct {
	Meeting domain.Meeting
	// StartsAt is the virtual instant the replay begins at.
	StartsAt time.Time
	// Tail is how long the replay keeps running after the last step.
	Tail  time.Duration
	Steps []Step
}

type Step struct {
	Index  int
	Line   int
	At     time.Duration
	Signal Signal
	// Window is set for configure steps.
	Window domain.SessionWindow
	// Roster is set for roster steps.
	Roster domain.Roster
}

func (s Step) String() string {
	return fmt.Sprintf("step %d (%s at %s)", s.Index, s.Signal, s.At)
}

type scriptFile struct {
	Meeting  meetingEntry `yaml:"meeting"`
	StartsAt string       `yaml:"starts_at"`
	Tail     string       `yaml:"tail"`
	Steps    []yaml.Node  `yaml:"steps"`
}

type meetingEntry struct {
	ID              string             `yaml:"id"`
	Title           string             `yaml:"title"`
	StartsAt        string             `yaml:"starts_at"`
	DurationMinutes *float64           `yaml:"duration_minutes"`
	Personal        bool               `yaml:"personal"`
	Participants    []participantEntry `yaml:"participants"`
}

type participantEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type stepEntry struct {
	At              string             `yaml:"at"`
	Signal          string             `yaml:"signal"`
	StartsAt        string             `yaml:"starts_at"`
	DurationMinutes *float64           `yaml:"duration_minutes"`
	Participants    []participantEntry `yaml:"participants"`
}

// Parse decodes a replay script. Steps must be in non-decreasing time order.
func Parse(r io.Reader) (Script, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file scriptFile
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return Script{}, ErrEmptyScript
		}
		return Script{}, fmt.Errorf("decode script: %w", err)
	}

	meeting, err := file.Meeting.toMeeting()
	if err != nil {
		return Script{}, fmt.Errorf("meeting: %w", err)
	}

	script := Script{Meeting: meeting}
	if file.StartsAt != "" {
		script.StartsAt, err = parseTimestamp(file.StartsAt)
		if err != nil {
			return Script{}, fmt.Errorf("starts_at: %w", err)
		}
	} else if meeting.Window.HasStart() {
		script.StartsAt = *meeting.Window.StartsAt
	}

	if file.Tail != "" {
		script.Tail, err = parseOffset(file.Tail)
		if err != nil {
			return Script{}, fmt.Errorf("tail: %w", err)
		}
	}

	if len(file.Steps) == 0 {
		return Script{}, ErrEmptyScript
	}

	var previous time.Duration
	for i := range file.Steps {
		node := &file.Steps[i]
		step, err := decodeStep(node)
		if err != nil {
			return Script{}, fmt.Errorf("step %d (line %d): %w", i+1, node.Line, err)
		}
		if step.At < previous {
			return Script{}, fmt.Errorf("step %d (line %d): at %s is before the previous step", i+1, node.Line, step.At)
		}

		step.Index = i + 1
		step.Line = node.Line
		previous = step.At
		script.Steps = append(script.Steps, step)
	}

	return script, nil
}

func decodeStep(node *yaml.Node) (Step, error) {
	var entry stepEntry
	if err := node.Decode(&entry); err != nil {
		return Step{}, err
	}

	at, err := parseOffset(entry.At)
	if err != nil {
		return Step{}, fmt.Errorf("at: %w", err)
	}

	step := Step{At: at, Signal: Signal(strings.TrimSpace(entry.Signal))}
	switch step.Signal {
	case SignalJoin, SignalLeave, SignalCallEnded, SignalExtend:
	case SignalConfigure:
		var startsAt *time.Time
		if entry.StartsAt != "" {
			parsed, err := parseTimestamp(entry.StartsAt)
			if err != nil {
				return Step{}, fmt.Errorf("starts_at: %w", err)
			}
			startsAt = &parsed
		}
		step.Window = domain.NewSessionWindow(startsAt, entry.DurationMinutes)
	case SignalRoster:
		step.Roster = toRoster(entry.Participants)
	case "":
		return Step{}, errors.New("signal is required")
	default:
		return Step{}, fmt.Errorf("unknown signal %q", entry.Signal)
	}

	return step, nil
}

func (m meetingEntry) toMeeting() (domain.Meeting, error) {
	var startsAt *time.Time
	if m.StartsAt != "" {
		parsed, err := parseTimestamp(m.StartsAt)
		if err != nil {
			return domain.Meeting{}, fmt.Errorf("starts_at: %w", err)
		}
		startsAt = &parsed
	}

	id := m.ID
	if id == "" {
		id = "replay"
	}

	return domain.Meeting{
		ID:           domain.MeetingID(id),
		Title:        m.Title,
		Window:       domain.NewSessionWindow(startsAt, m.DurationMinutes),
		Personal:     m.Personal,
		Participants: toRoster(m.Participants),
	}, nil
}

func toRoster(entries []participantEntry) domain.Roster {
	var roster domain.Roster
	for _, entry := range entries {
		roster = append(roster, domain.Participant{ID: domain.ParticipantID(entry.ID), Name: entry.Name})
	}

	return roster
}

func parseOffset(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("duration is required")
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", raw)
	}

	return d, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}

	return parsed.UTC(), nil
}
