// Package version holds the build version string.
package version

// Version is the current release. Overridden at build time with
// -ldflags "-X farmgate/internal/version.Version=...".
var Version = "1.0.0"
