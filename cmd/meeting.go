package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/meetroom-cli/internal/application"
	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newMeetingCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Manage stored meetings",
	}

	cmd.AddCommand(
		newMeetingAddCmd(app),
		newMeetingListCmd(app),
		newMeetingShowCmd(app),
		newMeetingRemoveCmd(app),
		newMeetingParticipantsCmd(app),
	)

	return cmd
}

type meetingFlags struct {
	id           string
	title        string
	duration     float64
	startsAt     string
	personal     bool
	participants []string
}

func newMeetingAddCmd(app *app) *cobra.Command {
	var flags meetingFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a meeting configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			command := application.CreateMeetingCommand{
				ID:       domain.MeetingID(flags.id),
				Title:    flags.title,
				Personal: flags.personal,
			}

			if cmd.Flags().Changed("duration") {
				duration := flags.duration
				command.DurationMinutes = &duration
			}

			startsAt, err := parseStartsAt(flags.startsAt)
			if err != nil {
				return err
			}
			command.StartsAt = startsAt

			command.Participants, err = parseParticipants(flags.participants)
			if err != nil {
				return err
			}

			meeting, err := app.meetings.Create(cmd.Context(), command)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), application.NewMeetingView(meeting))
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added meeting %s\n", meeting.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&flags.id, "id", "", "Meeting identifier (generated when empty)")
	cmd.Flags().StringVar(&flags.title, "title", "", "Meeting title")
	cmd.Flags().Float64Var(&flags.duration, "duration", 0, "Meeting duration in minutes")
	cmd.Flags().StringVar(&flags.startsAt, "starts-at", "", "Meeting start time (RFC3339)")
	cmd.Flags().BoolVar(&flags.personal, "personal", false, "Personal room (no end-call control)")
	cmd.Flags().StringArrayVar(&flags.participants, "participant", nil, "Participant as id[:name] (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored meeting as JSON")

	return cmd
}

func newMeetingListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored meetings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			meetings, err := app.meetings.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				views := make([]application.MeetingView, 0, len(meetings))
				for _, meeting := range meetings {
					views = append(views, application.NewMeetingView(meeting))
				}
				return writeJSON(cmd.OutOrStdout(), views)
			}

			if len(meetings) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no meetings stored")
				return err
			}

			for _, meeting := range meetings {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
					meeting.ID,
					meeting.Label(),
					durationLabel(meeting.Window),
					meeting.Participants.Names(),
				)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print meetings as JSON")

	return cmd
}

func newMeetingShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <meeting-id>",
		Short: "Show one stored meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meeting, err := app.meetings.Get(cmd.Context(), domain.MeetingID(args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), application.NewMeetingView(meeting))
			}

			return writeMeetingDetails(cmd.OutOrStdout(), meeting)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the meeting as JSON")

	return cmd
}

func newMeetingRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <meeting-id>",
		Short: "Remove a stored meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.MeetingID(args[0])
			if err := app.meetings.Remove(cmd.Context(), id); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "removed meeting %s\n", id)
			return err
		},
	}
}

func newMeetingParticipantsCmd(app *app) *cobra.Command {
	var participants []string

	cmd := &cobra.Command{
		Use:   "participants <meeting-id>",
		Short: "Replace the participant list of a stored meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := parseParticipants(participants)
			if err != nil {
				return err
			}

			id := domain.MeetingID(args[0])
			if err := app.meetings.SetParticipants(cmd.Context(), application.SetParticipantsCommand{
				ID:           id,
				Participants: roster,
			}); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "meeting %s participants: %s\n", id, roster.Names())
			return err
		},
	}

	cmd.Flags().StringArrayVar(&participants, "participant", nil, "Participant as id[:name] (repeatable)")

	return cmd
}

func writeMeetingDetails(out io.Writer, meeting domain.Meeting) error {
	startsAt := "N/A"
	if meeting.Window.HasStart() {
		startsAt = domain.FormatTimestamp(*meeting.Window.StartsAt)
	}

	lines := []string{
		fmt.Sprintf("id: %s", meeting.ID),
		fmt.Sprintf("title: %s", meeting.Label()),
		fmt.Sprintf("starts at: %s", startsAt),
		fmt.Sprintf("duration: %s", durationLabel(meeting.Window)),
		fmt.Sprintf("personal: %t", meeting.Personal),
		fmt.Sprintf("participants: %s", meeting.Participants.Names()),
	}

	_, err := fmt.Fprintln(out, strings.Join(lines, "\n"))
	return err
}

func durationLabel(window domain.SessionWindow) string {
	if _, ok := window.Duration(); !ok {
		return "no duration"
	}

	return strconv.FormatFloat(*window.DurationMinutes, 'f', -1, 64) + " min"
}

func parseStartsAt(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("parse --starts-at: %w", err)
	}

	parsed = parsed.UTC()
	return &parsed, nil
}

func parseParticipants(raw []string) (domain.Roster, error) {
	var roster domain.Roster
	for _, entry := range raw {
		id, name, _ := strings.Cut(entry, ":")
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("parse --participant %q: %w", entry, errEmptyParticipantID)
		}

		roster = append(roster, domain.Participant{
			ID:   domain.ParticipantID(id),
			Name: strings.TrimSpace(name),
		})
	}

	return roster, nil
}

var errEmptyParticipantID = errors.New("participant id is empty")

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
