package static

import "embed"

// FS exposes landing page static assets for HTTP serving.
//
//go:embed *.css
var FS embed.FS
