package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_key_terms/internal/app"
)

func newSortCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sort [file]",
		Short: "Capitalize and sort terms read one per line",
		Long:  `Reads terms one per line from file or stdin, then normalizes, sorts and writes them without calling the remote service.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}

			rt, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			input, err := readInput(cmd, path)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			pipeline, err := app.BuildLinePipeline(rt.cfg, rt.sink, rt.logger, nil, nil)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd)
			defer cancel()

			result, err := pipeline.Run(ctx, input, rt.dest)
			if err != nil {
				return err
			}
			if !flags.stdout {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d terms to %s\n", len(result.Terms), rt.dest)
			}
			return nil
		},
	}
}
