// Package version provides build-time version information.
package version

import "fmt"

// Name is the application's display name.
const Name = "Pixel Editor"

// AppID is the fyne application identifier, which also scopes preferences.
const AppID = "io.github.pixel-editor"

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// String returns a one-line version description.
func String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", Name, Version, GitCommit, BuildTime)
}
