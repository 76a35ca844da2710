package cli

import (
	phttp "orderexport/internal/platform/net/http"
	"orderexport/internal/services/api"

	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP trigger (POST /api/v1/export)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			srv := phttp.NewServer(phttp.ServerConfigFrom(rt.cfg.Prefix("CORE_API_")))

			ao := api.OptionsFrom(rt.cfg)
			ao.Store = rt.store
			ao.Logger = rt.log
			ao.Registry = rt.reg
			ao.Tracer = rt.trace.Tracer()
			ao.Export = opts.ExportOptions
			api.Mount(srv.Router(), ao)

			return srv.Run(ctx)
		},
	}
}
