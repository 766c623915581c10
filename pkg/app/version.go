package app

import "fmt"

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/japaniel/polski/pkg/app.Version=0.1.0"
var (
	Version   = "0.0.1"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
