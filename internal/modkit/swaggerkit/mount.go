// Package swaggerkit mounts the swagger UI over an embedded OpenAPI document
package swaggerkit

import (
	"net/http"

	phttp "orderexport/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves doc at /docs/doc.json and the UI under /docs/ when enabled
// base is the default server url written into the document
func Mount(r phttp.Router, enabled bool, doc []byte, base string) {
	if !enabled {
		return
	}
	r.Get("/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/docs/doc.json", serveDocJSON(doc, base))
	r.Handle("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))
}
