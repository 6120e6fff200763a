package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obriencj/go-values/pkg/driver"
)

// NewCheckCommand builds the check subcommand: it runs one or more
// scenario files and fails when any check does.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <scenario.yaml> [more.yaml ...]",
		Short: "Run scenario checks against the value runtime",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(rootOpts)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer logger.Sync()

			runner := driver.NewRunner(logger)
			failures := 0
			for _, path := range args {
				scenario, err := driver.LoadScenario(path)
				if err != nil {
					return err
				}
				report, err := runner.Run(scenario)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), report.Render())
				failures += report.Failures()
			}

			if failures > 0 {
				return fmt.Errorf("%d check(s) failed", failures)
			}
			return nil
		},
	}
}
