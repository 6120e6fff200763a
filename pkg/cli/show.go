package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obriencj/go-values/pkg/driver"
	"github.com/obriencj/go-values/pkg/runtime"
)

// NewShowCommand builds the show subcommand: it prints every record a
// scenario defines, with its hash when one exists.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <scenario.yaml>",
		Short: "Print the records a scenario defines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(rootOpts)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer logger.Sync()

			scenario, err := driver.LoadScenario(args[0])
			if err != nil {
				return err
			}
			logger.Debug("scenario loaded",
				zap.String("scenario", scenario.Name),
				zap.Int("records", len(scenario.Records)))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scenario %s\n", scenario.Name)
			for _, spec := range scenario.Records {
				record, err := driver.BuildRecord(spec)
				if err != nil {
					return fmt.Errorf("building record %q: %w", spec.Name, err)
				}
				fmt.Fprintf(out, "  %s = %s\n", spec.Name, runtime.Repr(record))
				if hash, err := record.Hash(); err == nil {
					fmt.Fprintf(out, "    hash %#016x\n", hash)
				} else {
					fmt.Fprintf(out, "    unhashable: %v\n", err)
				}
			}
			return nil
		},
	}
}
