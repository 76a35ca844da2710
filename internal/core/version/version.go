// Package version reports build information for the orderexport binary.
package version

import (
	"runtime"
	"runtime/debug"
)

// BuildInfo holds version information about the build.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Info returns the build information. version, commit and date are set with -ldflags:
//
//	-X 'orderexport/internal/core/version.version=v0.1.0'
//	-X 'orderexport/internal/core/version.commit=abcd'
//
// commit falls back to the vcs revision stamped by the go tool.
func Info() BuildInfo {
	c := commit
	if c == "none" {
		c = vcsRevision()
	}
	return BuildInfo{
		Service:   "orderexport",
		Version:   version,
		Commit:    c,
		Date:      date,
		GoVersion: runtime.Version(),
	}
}

// String renders a one-line version banner
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ", " + b.GoVersion + ")"
}

var readBuildInfo = debug.ReadBuildInfo

func vcsRevision() string {
	bi, ok := readBuildInfo()
	if !ok {
		return "none"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "none"
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
