package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/bnema/meetroom-cli/internal/adapters/script"
	"github.com/bnema/meetroom-cli/internal/logging"
	"github.com/spf13/cobra"
)

func newReplayCmd(app *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a YAML script of call signals on virtual time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer file.Close()

			parsed, err := script.Parse(file)
			if err != nil {
				return fmt.Errorf("parse script %s: %w", args[0], err)
			}

			start := parsed.StartsAt
			if start.IsZero() {
				start = app.now().UTC().Truncate(time.Second)
			}

			sim := newSimulation(parsed.Meeting, start, cmd.OutOrStdout(), output, app.logger)
			defer sim.close()

			for _, rejected := range script.Play(parsed, sim.clock, sim.room, logging.Component(app.logger, "replay")) {
				sim.rejected = append(sim.rejected, rejected.Error())
			}

			return sim.write(cmd.OutOrStdout(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")

	return cmd
}
