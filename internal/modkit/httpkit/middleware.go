package httpkit

import (
	"net/http"

	"orderexport/internal/platform/net/middleware"
)

// CommonStack returns the baseline middleware slice for API scopes
// the server-wide chain (request id, recover, compression, optional timeout) is mounted separately in services/api
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{}),
	}
}
