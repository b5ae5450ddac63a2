// Package contracts holds the cross-cutting build metadata shared by
// the command binaries.
package contracts

import (
	"fmt"
	"runtime"
)

// Version is the current version of the tool.
const Version = "1.0.0"

var (
	// BuildTime is set during build using ldflags.
	BuildTime = "unknown"

	// GitCommit is set during build using ldflags.
	GitCommit = "unknown"
)

// VersionString returns the one-line version banner.
func VersionString() string {
	return fmt.Sprintf("workshop-grades v%s", Version)
}

// FullVersionString returns the version banner with build details.
func FullVersionString() string {
	return fmt.Sprintf("%s (built: %s, commit: %s, go: %s, os: %s/%s)",
		VersionString(), BuildTime, GitCommit,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
