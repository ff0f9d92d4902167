package cmd

import (
	"fmt"

	"github.com/bnema/meetroom-cli/internal/adapters/notify/console"
	"github.com/bnema/meetroom-cli/internal/adapters/render/room"
	"github.com/bnema/meetroom-cli/internal/adapters/schedule/loop"
	"github.com/bnema/meetroom-cli/internal/application"
	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/bnema/meetroom-cli/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newRoomCmd(app *app) *cobra.Command {
	var layout string

	cmd := &cobra.Command{
		Use:   "room <meeting-id>",
		Short: "Open a stored meeting in the interactive room view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			callLayout, err := domain.ParseCallLayout(layout)
			if err != nil {
				return err
			}

			meeting, err := app.meetings.Get(cmd.Context(), domain.MeetingID(args[0]))
			if err != nil {
				return err
			}

			var program *tea.Program
			eventLoop := loop.New(loop.WithDispatch(room.Dispatcher(func(msg tea.Msg) {
				program.Send(msg)
			})))

			// Notifications are drawn by the view; the notifier only logs them.
			notifier := console.NewNotifier(nil, logging.Component(app.logger, "notifier"))
			meetingRoom := application.NewMeetingRoom(meeting, eventLoop, notifier,
				application.WithRoomLogger(logging.Component(app.logger, "room")),
				application.WithLayout(callLayout),
			)
			defer meetingRoom.Close()

			program = tea.NewProgram(
				room.NewModel(meetingRoom),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)

			finalModel, err := program.Run()
			if err != nil {
				return fmt.Errorf("run room view: %w", err)
			}
			if _, ok := finalModel.(room.Model); !ok {
				return room.ErrUnexpectedRoomModel
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&layout, "layout", string(domain.DefaultLayout()), "Initial call layout: grid, speaker-left or speaker-right")

	return cmd
}
