package version

import (
	"fmt"
	"runtime/debug"
)

// shortCommitLength is the number of revision characters shown.
const shortCommitLength = 8

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "dev"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

//nolint:gochecknoinits // Build info is read once before any command runs.
func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	applyBuildSettings(info.Settings)

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
}

// applyBuildSettings fills Commit and BuildTime from VCS settings unless ldflags set them.
func applyBuildSettings(settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" && s.Value != "" {
				Commit = s.Value
				if len(Commit) > shortCommitLength {
					Commit = Commit[:shortCommitLength]
				}
			}
		case "vcs.time":
			if BuildTime == "unknown" && s.Value != "" {
				BuildTime = s.Value
			}
		}
	}
}

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	return fmt.Sprintf("fw-version %s, commit: %s, built at: %s", Version, Commit, BuildTime)
}
