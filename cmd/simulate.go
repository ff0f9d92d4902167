package cmd

import (
	"fmt"
	"time"

	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/spf13/cobra"
)

type simulateFlags struct {
	title        string
	duration     float64
	startsAt     string
	personal     bool
	participants []string
	extendAt     []time.Duration
	callEndedAt  time.Duration
	runFor       time.Duration
	output       string
}

func newSimulateCmd(app *app) *cobra.Command {
	var flags simulateFlags

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Join a meeting on virtual time and print its notifications",
		Long:  "simulate joins a meeting at virtual time zero, applies the requested extensions and call-ended signal, and prints every notification with the stopwatch reading at the moment it was raised. Without --for it runs until no timer is pending.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutput(flags.output); err != nil {
				return err
			}

			meeting, start, err := flags.meeting(cmd, app.now())
			if err != nil {
				return err
			}

			sim := newSimulation(meeting, start, cmd.OutOrStdout(), flags.output, app.logger)
			defer sim.close()

			// Joining first puts scheduled timers ahead of signals due at the same instant.
			sim.room.Join()

			pending := 0
			for _, offset := range flags.extendAt {
				pending++
				sim.at(offset, func() {
					pending--
					if err := sim.room.Extend(); err != nil {
						sim.reject(fmt.Sprintf("extend at %s", offset), err)
					}
				})
			}
			if cmd.Flags().Changed("call-ended-at") {
				offset := flags.callEndedAt
				pending++
				sim.at(offset, func() {
					pending--
					if err := sim.room.EndCall(); err != nil {
						sim.reject(fmt.Sprintf("call ended at %s", offset), err)
					}
				})
			}

			if flags.runFor > 0 {
				sim.clock.AdvanceTo(start.Add(flags.runFor))
			} else {
				sim.runUntilSettled(func() bool { return pending > 0 })
			}

			return sim.write(cmd.OutOrStdout(), flags.output)
		},
	}

	cmd.Flags().StringVar(&flags.title, "title", "Simulated meeting", "Meeting title")
	cmd.Flags().Float64Var(&flags.duration, "duration", 0, "Meeting duration in minutes")
	cmd.Flags().StringVar(&flags.startsAt, "starts-at", "", "Meeting start time (RFC3339), also the virtual start")
	cmd.Flags().BoolVar(&flags.personal, "personal", false, "Simulate a personal room")
	cmd.Flags().StringArrayVar(&flags.participants, "participant", nil, "Participant as id[:name] (repeatable)")
	cmd.Flags().DurationSliceVar(&flags.extendAt, "extend-at", nil, "Offsets at which the extend action is invoked")
	cmd.Flags().DurationVar(&flags.callEndedAt, "call-ended-at", 0, "Offset at which the provider reports the call ended")
	cmd.Flags().DurationVar(&flags.runFor, "for", 0, "How long to run (default: until no timer is pending)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", outputText, "Output format: text, json or yaml")

	return cmd
}

func (f simulateFlags) meeting(cmd *cobra.Command, now time.Time) (domain.Meeting, time.Time, error) {
	startsAt, err := parseStartsAt(f.startsAt)
	if err != nil {
		return domain.Meeting{}, time.Time{}, err
	}

	var duration *float64
	if cmd.Flags().Changed("duration") {
		minutes := f.duration
		if !(minutes > 0) {
			return domain.Meeting{}, time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidDuration, minutes)
		}
		duration = &minutes
	}

	roster, err := parseParticipants(f.participants)
	if err != nil {
		return domain.Meeting{}, time.Time{}, err
	}

	start := now.UTC().Truncate(time.Second)
	if startsAt != nil {
		start = *startsAt
	}

	return domain.Meeting{
		ID:           "simulation",
		Title:        f.title,
		Window:       domain.NewSessionWindow(startsAt, duration),
		Personal:     f.personal,
		Participants: roster,
	}, start, nil
}
