// Package version holds build metadata injected via -ldflags.
package version

var (
	Version = "0.2.0"
	Commit  = "unknown"
	Date    = "unknown"
)
