// Package version carries build metadata injected at link time via
// -ldflags "-X github.com/skyframe-data/skypart/internal/version.Version=...".
package version

import "fmt"

var (
	// Version is the current release version.
	Version = "dev"
	// GitSHA is the git commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// String formats the build metadata on one line.
func String() string {
	return fmt.Sprintf("skypart %s (%s, built %s)", Version, GitSHA, BuildTime)
}
