// Package version reports the build version of sitegen.
package version

import "runtime/debug"

// Version is set at build time:
// go build -ldflags "-X github.com/wayfarer-games/sitegen/internal/version.Version=v1.2.0".
var Version = "unknown"

// Build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns the version, falling back to the module version recorded by the Go
// toolchain when no ldflags were supplied.
func String() string {
	v := Version
	if v == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	if GitCommit != "unknown" {
		return v + " (" + GitCommit + ")"
	}
	return v
}
