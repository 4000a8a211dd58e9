// Package version reports which build of palettegen is running.
//
// Release builds set the variables below with -ldflags, for example
//
//	-X github.com/jmylchreest/palettegen/internal/version.Version=v1.2.0
//
// Anything left unset is filled from the VCS stamp the Go toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set with -ldflags at release time.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Build describes the running binary.
type Build struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Date      string `json:"date,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

// Current returns the build description, preferring ldflags values over the
// embedded build info.
func Current() Build {
	b := Build{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	info, ok := readBuildInfo()
	if !ok {
		return b
	}
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = s.Value
			}
		case "vcs.time":
			if b.Date == "" {
				b.Date = s.Value
			}
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
	return b
}

// String formats b as a single line, e.g.
// "palettegen version v1.2.0 (commit 0123abcd, built 2026-01-02T03:04:05Z, go1.25.1, linux/amd64)".
func (b Build) String() string {
	var details []string
	if b.Commit != "" {
		c := b.Commit
		if len(c) > 8 {
			c = c[:8]
		}
		if b.Dirty {
			c += "-dirty"
		}
		details = append(details, "commit "+c)
	}
	if b.Date != "" {
		details = append(details, "built "+b.Date)
	}
	details = append(details, b.GoVersion, b.Platform)
	return fmt.Sprintf("palettegen version %s (%s)", b.Version, strings.Join(details, ", "))
}

// String describes the running binary.
func String() string {
	return Current().String()
}

// Short returns just the version, as used in --version and the User-Agent.
func Short() string {
	return Current().Version
}
