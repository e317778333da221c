// Package version provides build version information for the application.
// This is a separate package so cli and app can both read it without an import cycle.
package version

// Version is the build version string, set by ldflags during build.
// Format: vX.Y.Z or vX.Y.Z-dev for development builds.
var Version = "v1.0.0-dev"

// BuildTime is the build timestamp, set by ldflags during build.
var BuildTime = "unknown"

// String returns the version with its build time, as shown by --version and the About dialog.
func String() string {
	return Version + " (" + BuildTime + ")"
}
