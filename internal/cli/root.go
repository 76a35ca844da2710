// Package cli implements the orderexport command line
package cli

import (
	"errors"

	"orderexport/internal/modkit"
	"orderexport/internal/platform/logger"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags and wiring shared by all commands
type RootOptions struct {
	LogLevel string

	// ExportOptions are appended when the export module is built; tests inject ports here
	ExportOptions []modkit.Option
}

// ErrRunFailed marks a failed export; main maps it to exit code 1
var ErrRunFailed = errors.New("export run failed")

// NewRootCommand creates the root command
func NewRootCommand(opts *RootOptions) *cobra.Command {
	if opts == nil {
		opts = &RootOptions{}
	}

	cmd := &cobra.Command{
		Use:   "orderexport",
		Short: "Export a day of orders to CSV in object storage",
		Long: `orderexport queries the orders created during the current UTC day,
writes their ids as CSV and stores the file as [<folder>/]orders_<YYYY-MM-DD>.csv.

Configuration is read from the environment (CTP_*, STORAGE_*, CORE_EXPORT_*, CORE_API_*).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			lo := logger.FromEnv()
			if opts.LogLevel != "" {
				lo.Level = opts.LogLevel
			}
			// stdout belongs to command output
			lo.Writer = cmd.ErrOrStderr()
			logger.Init(lo)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override LOG_LEVEL (trace|debug|info|warn|error)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
