package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "orderexport/internal/platform/errors"
	"orderexport/internal/platform/logger"
	pnet "orderexport/internal/platform/net"
)

// PanicBody is the plain-text reply written when a handler panics
const PanicBody = "Internal Server Error"

// Recover converts panics into an opaque text 500 and logs the stack with the request id
func Recover() func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				// let net/http abort the connection as it would without us
				if v == stdhttp.ErrAbortHandler {
					panic(v)
				}

				reqID := pnet.RequestID(r.Context())
				logger.C(r.Context()).Error().
					Err(perr.PanicErrf("panic recovered: %v", v)).
					Str("stack", string(debug.Stack())).
					Msg("panic recovered")

				if reqID != "" {
					w.Header().Set("X-Request-ID", reqID)
				}
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(stdhttp.StatusInternalServerError)
				_, _ = w.Write([]byte(PanicBody))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
