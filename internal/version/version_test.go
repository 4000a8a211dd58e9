package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

// stubBuildInfo replaces the embedded build info and ldflags values for one test.
func stubBuildInfo(t *testing.T, info *debug.BuildInfo, version, commit, date string) {
	t.Helper()
	oldRead, oldVersion, oldCommit, oldDate := readBuildInfo, Version, Commit, Date
	t.Cleanup(func() {
		readBuildInfo, Version, Commit, Date = oldRead, oldVersion, oldCommit, oldDate
	})

	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	Version, Commit, Date = version, commit, date
}

func TestCurrent(t *testing.T) {
	stamped := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "fedcba9876543210"},
			{Key: "vcs.time", Value: "2026-05-06T07:08:09Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name    string
		info    *debug.BuildInfo
		version string
		commit  string
		date    string
		want    Build
	}{
		{
			name:    "no build info",
			version: "dev",
			want:    Build{Version: "dev"},
		},
		{
			name:    "devel build",
			info:    &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			version: "dev",
			want:    Build{Version: "dev"},
		},
		{
			name:    "vcs stamp fills gaps",
			info:    stamped,
			version: "dev",
			want:    Build{Version: "v0.3.0", Commit: "fedcba9876543210", Date: "2026-05-06T07:08:09Z", Dirty: true},
		},
		{
			name:    "ldflags win",
			info:    stamped,
			version: "v1.0.0",
			commit:  "0123456789abcdef",
			date:    "2026-01-02T03:04:05Z",
			want:    Build{Version: "v1.0.0", Commit: "0123456789abcdef", Date: "2026-01-02T03:04:05Z", Dirty: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubBuildInfo(t, tt.info, tt.version, tt.commit, tt.date)

			got := Current()
			if got.GoVersion == "" || !strings.Contains(got.Platform, "/") {
				t.Errorf("Current() = %+v, want Go version and platform", got)
			}
			got.GoVersion, got.Platform = "", ""
			if got != tt.want {
				t.Errorf("Current() = %+v, want %+v", got, tt.want)
			}
			if Short() != tt.want.Version {
				t.Errorf("Short() = %q, want %q", Short(), tt.want.Version)
			}
		})
	}
}

func TestBuildString(t *testing.T) {
	tests := []struct {
		name  string
		build Build
		want  string
	}{
		{
			name:  "bare",
			build: Build{Version: "dev", GoVersion: "go1.25.1", Platform: "linux/amd64"},
			want:  "palettegen version dev (go1.25.1, linux/amd64)",
		},
		{
			name:  "full",
			build: Build{Version: "v1.0.0", Commit: "0123456789abcdef", Date: "2026-01-02T03:04:05Z", GoVersion: "go1.25.1", Platform: "linux/amd64"},
			want:  "palettegen version v1.0.0 (commit 01234567, built 2026-01-02T03:04:05Z, go1.25.1, linux/amd64)",
		},
		{
			name:  "short dirty commit",
			build: Build{Version: "dev", Commit: "abc", Dirty: true, GoVersion: "go1.25.1", Platform: "darwin/arm64"},
			want:  "palettegen version dev (commit abc-dirty, go1.25.1, darwin/arm64)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
