// Package version provides information about the build version of the service.
package version

import "runtime/debug"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'sarcasm/internal/core/version.version=v0.1.0'
	// -X 'sarcasm/internal/core/version.commit=abcd' -X 'sarcasm/internal/core/version.date=2025-10-01'"
	bi := BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	if info, ok := debug.ReadBuildInfo(); ok && info != nil {
		bi.GoVersion = info.GoVersion
		// fall back to the vcs stamp when ldflags were not set
		if bi.Commit == "none" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					bi.Commit = s.Value
				}
			}
		}
	}
	return bi
}

// String renders "service version (commit)"
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ")"
}

var (
	service = "sarcasm-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
