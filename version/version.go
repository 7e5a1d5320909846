// Package version exposes build metadata for the model tools, populated
// via ldflags and the embedded VCS build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the release version, set via ldflags.
	Version string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string
)

// String renders the version line the tools print for --version.
func String() string {
	v := Version
	if v == "" {
		v = "devel"
	}

	s := fmt.Sprintf("%s (revision %s, %s %s/%s)",
		v, Revision(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if BuildDate != "" {
		s += " built " + BuildDate
	}

	return s
}

// Revision returns the VCS commit the binary was built from, with a
// "-dirty" suffix when the working tree was modified, or "unknown" when
// the binary carries no build info.
func Revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	rev, ok := settings["vcs.revision"]
	if !ok {
		return "unknown"
	}

	if settings["vcs.modified"] == "true" {
		rev += "-dirty"
	}

	return rev
}
