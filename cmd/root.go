package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "meetroom",
		Short:         "meetroom: meeting room timers in the terminal",
		Long:          "meetroom keeps the room-level timing of a video meeting: a call stopwatch, the \"meeting ending soon\" warning with its extension, and the end-of-meeting summary. Meetings are stored locally and can be joined interactively, simulated, or replayed from a script.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newMeetingCmd(app),
		newRoomCmd(app),
		newSimulateCmd(app),
		newReplayCmd(app),
	)

	return rootCmd
}
