// Package version exposes build-time version information.
// The variables are overridden at build time via -ldflags:
//
//	go build -ldflags "-X github.com/HerbHall/energyguard/internal/version.Version=v0.1.0 \
//	    -X github.com/HerbHall/energyguard/internal/version.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/HerbHall/energyguard/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import "fmt"

var (
	// Version is the semantic version of this build.
	Version = "0.1.0-dev"

	// Commit is the git commit the binary was built from.
	Commit = "unknown"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// Short returns just the version string, for headers and startup logs.
func Short() string {
	return Version
}

// Info returns a human-readable one-line version description.
func Info() string {
	return fmt.Sprintf("EnergyGuard %s (commit %s, built %s)", Version, Commit, Date)
}

// Map returns the version fields as a map, for JSON health payloads.
func Map() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"date":    Date,
	}
}
