// Package buildinfo carries the version stamp baked in at link time.
package buildinfo

// Overridden with -ldflags on release builds; a plain `go build` keeps the
// dev defaults.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
