package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSineCmd(a *app) *cobra.Command {
	var (
		frequency  float32
		durationMs uint32
	)

	cmd := &cobra.Command{
		Use:   "sine",
		Short: "Print a sine tone as a JSON array of samples",
		Long:  `Render --duration-ms of a --frequency Hz sine tone at the configured sample rate, attenuated by 0.8. Prints [] when the samples have no JSON form (e.g. a NaN frequency).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.newHost().Synthesize(frequency, durationMs))
			return nil
		},
	}
	cmd.Flags().Float32Var(&frequency, "frequency", 440, "Tone frequency in Hz")
	cmd.Flags().Uint32Var(&durationMs, "duration-ms", 1000, "Duration in milliseconds")
	return cmd
}
