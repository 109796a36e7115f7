// Package version holds the application version, overridable at build time
// via -ldflags "-X github.com/fundlens/fundlens/internal/version.Version=...".
package version

// Version is the application version string.
var Version = "dev"
