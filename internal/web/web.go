// Package web holds the browser payload served at the root route.
package web

import _ "embed"

// Index is the dashboard page, embedded at build time. It is self-contained
// apart from the font files it pulls from /fonts.
//
//go:embed index.html
var Index []byte
