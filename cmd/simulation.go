package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/bnema/meetroom-cli/internal/adapters/notify/console"
	"github.com/bnema/meetroom-cli/internal/adapters/notify/fanout"
	"github.com/bnema/meetroom-cli/internal/adapters/schedule/virtual"
	"github.com/bnema/meetroom-cli/internal/application"
	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/bnema/meetroom-cli/internal/logging"
	"github.com/bnema/meetroom-cli/internal/ports"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"

	// maxSimulated bounds open-ended runs.
	maxSimulated = 24 * time.Hour
)

type simulationReport struct {
	Meeting       application.MeetingView        `json:"meeting" yaml:"meeting"`
	StartedAt     string                         `json:"started_at" yaml:"started_at"`
	FinishedAt    string                         `json:"finished_at" yaml:"finished_at"`
	Elapsed       string                         `json:"elapsed" yaml:"elapsed"`
	TimerState    string                         `json:"timer_state" yaml:"timer_state"`
	Notifications []application.NotificationView `json:"notifications" yaml:"notifications"`
	Rejected      []string                       `json:"rejected,omitempty" yaml:"rejected,omitempty"`
}

// simulation runs a meeting room on virtual time.
type simulation struct {
	clock    *virtual.Scheduler
	room     *application.MeetingRoom
	start    time.Time
	views    []application.NotificationView
	rejected []string
	logger   zerolog.Logger
}

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want text, json or yaml)", format)
	}
}

func newSimulation(meeting domain.Meeting, start time.Time, out io.Writer, format string, logger zerolog.Logger) *simulation {
	s := &simulation{
		clock:  virtual.New(start),
		start:  start,
		logger: logging.Component(logger, "simulation"),
	}

	collector := ports.NotifierFunc(func(event domain.NotificationEvent) {
		s.views = append(s.views, application.NewNotificationView(event, s.room.Stopwatch().Formatted()))
	})

	var printer ports.Notifier
	if format == outputText {
		printer = console.NewNotifier(out, logging.Component(logger, "notifier"),
			console.WithElapsed(func() string { return s.room.Stopwatch().Formatted() }),
			console.WithActionHint(fmt.Sprintf("[%s available]", domain.ActionExtend)),
		)
	}

	s.room = application.NewMeetingRoom(meeting, s.clock, fanout.New(collector, printer),
		application.WithRoomLogger(logging.Component(logger, "room")),
	)

	return s
}

// at schedules fn at offset from the simulation start.
func (s *simulation) at(offset time.Duration, fn func()) {
	s.clock.AfterFunc(offset-s.clock.Now().Sub(s.start), fn)
}

func (s *simulation) reject(label string, err error) {
	s.logger.Warn().Err(err).Str("signal", label).Msg("signal rejected")
	s.rejected = append(s.rejected, fmt.Sprintf("%s: %v", label, err))
}

// runUntilSettled advances until neither the controller nor any scripted
// signal has work left, bounded by maxSimulated.
func (s *simulation) runUntilSettled(signalsPending func() bool) {
	for s.room.Controller().PendingActions() > 0 || signalsPending() {
		next, ok := s.clock.NextDue()
		if !ok || next.Sub(s.start) > maxSimulated {
			return
		}
		s.clock.AdvanceTo(next)
	}
}

func (s *simulation) report() simulationReport {
	window, _ := s.room.Controller().Window()
	meeting := application.NewMeetingView(domain.Meeting{
		ID:           s.room.Snapshot().MeetingID,
		Title:        s.room.Snapshot().Title,
		Window:       window,
		Personal:     s.room.Snapshot().Personal,
		Participants: s.room.Participants(),
	})

	return simulationReport{
		Meeting:       meeting,
		StartedAt:     domain.FormatTimestamp(s.start),
		FinishedAt:    domain.FormatTimestamp(s.clock.Now()),
		Elapsed:       s.room.Stopwatch().Formatted(),
		TimerState:    string(s.room.Controller().State()),
		Notifications: append([]application.NotificationView{}, s.views...),
		Rejected:      s.rejected,
	}
}

func (s *simulation) write(out io.Writer, format string) error {
	report := s.report()

	switch format {
	case outputJSON:
		return writeJSON(out, report)
	case outputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		return enc.Close()
	default:
		for _, rejected := range report.Rejected {
			_, _ = fmt.Fprintf(out, "rejected %s\n", rejected)
		}
		_, err := fmt.Fprintf(out, "finished at %s, elapsed %s, timer %s, %d notification(s)\n",
			report.FinishedAt, report.Elapsed, report.TimerState, len(report.Notifications))
		return err
	}
}

func (s *simulation) close() {
	s.room.Close()
}
