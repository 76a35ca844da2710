package cli

import (
	"context"
	"fmt"

	"orderexport/internal/modkit"
	"orderexport/internal/modkit/module"
	"orderexport/internal/services/export/domain"
	exportmod "orderexport/internal/services/export/module"

	"github.com/spf13/cobra"
)

// RunOptions holds flags for the run command
type RunOptions struct {
	*RootOptions
	Mode  string
	Limit int
}

// NewRunCommand creates the one-shot run command
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one export and exit",
		Long: `Run one export and exit non-zero on failure.

Modes:
  today   orders created during the current UTC day (default)
  recent  the most recently modified orders, up to --limit

Example:
  orderexport run
  orderexport run --mode recent --limit 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Mode, "mode", "", "export mode (today|recent), defaults to CORE_EXPORT_MODE")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "page size for recent mode, defaults to CORE_EXPORT_RECENT_LIMIT")

	return cmd
}

func runOnce(cmd *cobra.Command, opts *RunOptions) error {
	ctx := cmd.Context()
	rt, err := boot(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.close(ctx); err != nil {
			rt.log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	mode := opts.Mode
	if mode == "" {
		mode = exportmod.FromConfig(rt.cfg).Mode
	}
	parsed, err := domain.ParseMode(mode)
	if err != nil {
		return err
	}

	m := exportmod.New(modkit.Deps{
		Log:     *rt.log,
		Cfg:     rt.cfg,
		Store:   rt.store,
		Metrics: rt.reg,
		Tracer:  rt.trace.Tracer(),
	}, opts.ExportOptions...)

	// signals stop the process after the run, never in the middle of an upload
	rep, err := module.MustPortsOf[domain.RunPort](m).Run(context.WithoutCancel(ctx), domain.RunInput{Mode: parsed, Limit: opts.Limit})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s (run %s)\n", domain.GenericFailure, rep.RunID)
		return ErrRunFailed
	}
	fmt.Fprintln(cmd.OutOrStdout(), rep.Summary())
	return nil
}
