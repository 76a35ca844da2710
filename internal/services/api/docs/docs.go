// Package docs embeds the OpenAPI document served under /docs
package docs

import _ "embed"

// OpenAPI is the raw document
//
//go:embed openapi.json
var OpenAPI []byte
