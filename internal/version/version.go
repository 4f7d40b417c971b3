// Package version provides build-time version information.
//
// Set at build time via:
//
//	go build -ldflags "-X github.com/noteguard/noteguard/internal/version.Version=v0.2.0"
package version

// Version is the release version, set at build time via ldflags.
var Version = "dev"
