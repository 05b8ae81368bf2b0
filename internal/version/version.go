// Package version exposes the build version stamped at link time.
package version

// Version is overridden via -ldflags "-X playtime/internal/version.Version=...".
var Version = "dev"
