// Package web holds the browser desktop served at the root of the HTTP server.
package web

import "embed"

//go:embed dist
var FS embed.FS

// Root is the directory inside FS that holds index.html.
const Root = "dist"
