// Package api embeds the OpenAPI document of the HTTP interface. The
// document drives request validation and is served at /openapi.yaml.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
