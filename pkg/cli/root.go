// Package cli wires the scenario driver into the values command line
// tool.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const toolVersion = "values-cli 0.1.0-dev"

// RootOptions holds the global flags shared by every subcommand.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand builds the values command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "values",
		Short:         "Inspect and check immutable value records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

func newLogger(opts *RootOptions) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if opts.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
