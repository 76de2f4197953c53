package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_key_terms/internal/app"
)

func newExtractCmd(flags *globalFlags) *cobra.Command {
	var (
		text   string
		file   string
		apiKey string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract key terms from text using the remote service",
		Long: `Sends the text given with --text, --file or on stdin to the key phrase
service. The API key is read from --api-key, the configuration file or
KEYTERMS_API_KEY.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if text != "" && file != "" {
				return errors.New("--text and --file are mutually exclusive")
			}

			rt, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if apiKey != "" {
				rt.cfg.Azure.APIKey = apiKey
			}
			if text == "" {
				if text, err = readInput(cmd, file); err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			}

			pipeline, err := app.BuildRemotePipeline(rt.cfg, rt.sink, rt.logger, nil)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd)
			defer cancel()

			result, err := pipeline.Run(ctx, text, rt.dest)
			if err != nil {
				return err
			}
			if !flags.stdout {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d terms to %s\n", len(result.Terms), rt.dest)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "Text to analyze")
	cmd.Flags().StringVarP(&file, "file", "f", "", "File containing the text to analyze (- for stdin)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Key phrase service API key")
	return cmd
}
