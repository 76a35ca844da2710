// Package http provides the export trigger endpoint
package http

import (
	"context"
	stdhttp "net/http"
	"runtime/debug"

	"orderexport/internal/modkit/httpkit"
	perr "orderexport/internal/platform/errors"
	"orderexport/internal/platform/logger"
	"orderexport/internal/services/export/domain"
)

// Register mounts the trigger on r
func Register(r httpkit.Router, run domain.RunPort) {
	h := &handlers{run: run}
	r.Post("/export", httpkit.Handle(h.export))
}

type handlers struct{ run domain.RunPort }

// swagger:route POST /api/v1/export Export runExport
// @Summary Export today's orders to the configured bucket
// @Tags export
// @Produce plain
// @Success 200 {string} string "Orders for 2024-06-01 have been written to orders_2024-06-01.csv in GCS bucket connector-bck"
// @Failure 500 {string} string "Internal Server Error - Error retrieving all orders from the commercetools SDK"
// @Router /api/v1/export [post]
func (h *handlers) export(r *stdhttp.Request) (resp httpkit.Response) {
	defer func() {
		if v := recover(); v != nil {
			err := perr.PanicErrf("export run panicked: %v", v)
			logger.C(r.Context()).Error().Err(err).Str("stack", string(debug.Stack())).Msg("export run panicked")
			resp = httpkit.Opaque(err, domain.GenericFailure)
		}
	}()

	// a started run completes even when the caller goes away or a deadline passes
	ctx := context.WithoutCancel(r.Context())
	rep, err := h.run.Run(ctx, domain.RunInput{Mode: domain.ModeToday})

	resp = httpkit.Text(rep.Summary())
	if err != nil {
		resp = httpkit.Opaque(err, domain.GenericFailure)
	}
	if rep.RunID != "" {
		resp = resp.WithHeader(httpkit.RunIDHeader, rep.RunID)
	}
	return resp
}
