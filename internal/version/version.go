// Package version exposes the build's version and VCS revision.
package version

import "runtime/debug"

// Version is stamped by the release build via -ldflags.
var Version = "0.1.0-dev"

// Revision is the VCS revision baked into the binary, or "unknown".
var Revision = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			return setting.Value
		}
	}

	return "unknown"
}()
