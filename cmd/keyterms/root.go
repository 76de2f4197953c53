package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	adapterlogger "github.com/baditaflorin/go_key_terms/internal/adapters/logger"
	"github.com/baditaflorin/go_key_terms/internal/adapters/sink"
	"github.com/baditaflorin/go_key_terms/internal/app"
	"github.com/baditaflorin/go_key_terms/internal/config"
	"github.com/baditaflorin/go_key_terms/internal/ports"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	output     string
	stdout     bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "keyterms",
		Short: "Extract and sort key terms",
		Long: `keyterms sends text to a key phrase service, capitalizes and sorts the
returned terms and writes them one per line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a YAML configuration file")
	root.PersistentFlags().StringVarP(&flags.output, "output", "o", "", "Destination file (default from configuration, sortedTerms.txt)")
	root.PersistentFlags().BoolVar(&flags.stdout, "stdout", false, "Print terms to stdout instead of writing a file")

	root.AddCommand(newExtractCmd(flags), newSortCmd(flags))
	return root
}

// session holds what a subcommand needs to run a pipeline.
type session struct {
	cfg    config.Config
	logger *adapterlogger.StdLogger
	sink   ports.TermSink
	dest   string
	closer io.Closer
}

func (f *globalFlags) setup(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	logger, err := adapterlogger.New(adapterlogger.Options{
		Output:   cmd.ErrOrStderr(),
		FilePath: cfg.Log.File,
		JSON:     cfg.Log.JSON,
	})
	if err != nil {
		return nil, err
	}

	dest := cfg.Output.Path
	if f.output != "" {
		dest = f.output
	}
	cfg.Output.Dir, dest = splitDestination(cfg.Output.Dir, dest)

	rt := &session{cfg: cfg, logger: logger, dest: dest}

	if f.stdout {
		rt.sink = sink.NewWriter(cmd.OutOrStdout())
		return rt, nil
	}

	sinks := app.BuildSink(cfg)
	rt.sink = sinks
	rt.closer = sinks
	return rt, nil
}

func (rt *session) Close() error {
	if rt.closer != nil {
		rt.closer.Close()
	}
	return rt.logger.Close()
}

// splitDestination turns an operator supplied output path into the file
// sink's directory and a file name inside it.
func splitDestination(baseDir, dest string) (string, string) {
	dir, name := filepath.Split(dest)
	switch {
	case dir == "":
		return baseDir, name
	case filepath.IsAbs(dir) || baseDir == "":
		return filepath.Clean(dir), name
	default:
		return filepath.Join(baseDir, dir), name
	}
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
