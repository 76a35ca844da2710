package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"orderexport/internal/platform/testkit"
)

func TestInfo_VCSFallback(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &readBuildInfo, func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		}}, true
	})

	bi := Info()
	if bi.Commit != "0123456789ab" || bi.Service != "orderexport" || bi.GoVersion != runtime.Version() {
		t.Fatalf("info = %+v", bi)
	}
	testkit.MustContain(t, bi.String(), "orderexport dev (0123456789ab")
}

func TestInfo_LdflagsWin(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &commit, "cafe")
	testkit.Swap(t, &readBuildInfo, func() (*debug.BuildInfo, bool) { return nil, false })

	if got := Info().Commit; got != "cafe" {
		t.Fatalf("commit = %q", got)
	}
}

func TestInfo_NoBuildInfo(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &readBuildInfo, func() (*debug.BuildInfo, bool) { return nil, false })

	if got := Info().Commit; got != "none" {
		t.Fatalf("commit = %q", got)
	}
}
