// Package version holds build-time version information.
package version

// Version is the sitebuild version, overridden at build time via
// -ldflags "-X github.com/nathanjclark/www/internal/version.Version=...".
var Version = "dev"
