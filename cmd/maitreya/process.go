package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newProcessCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "process [--] <sample>...",
		Short: "Apply gain and quantization to samples and print the result as JSON",
		Long:  `Apply the fixed 0.8 gain and round each sample to the nearest millionth. Put -- before the samples when any of them is negative.`,
		Example: `  maitreya process -- 1.0 -0.5 0.25
  [0.8,-0.4,0.2]`,
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, err := parseSamples(args)
			if err != nil {
				return err
			}

			out, err := json.Marshal(a.newHost().Process(samples))
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func parseSamples(args []string) ([]float32, error) {
	samples := make([]float32, len(args))
	for i, arg := range args {
		f, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			return nil, fmt.Errorf("sample %d (%q): %w", i, arg, err)
		}
		samples[i] = float32(f)
	}
	return samples, nil
}
