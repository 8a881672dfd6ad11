// Package version holds the CLI version string. Default is "dev"; release
// builds set it via:
// go build -ldflags "-X github.com/BonnardValentin/commit-sage/internal/version.Version=v1.0.0"
package version

// Version is the commit-sage CLI version. Set at build time for releases.
var Version = "dev"

// Commit is the short git commit hash for dev builds; set via ldflags.
var Commit = ""

// String returns the display version: "dev (abc1234)" for dev builds with a
// commit hash, the bare Version otherwise.
func String() string {
	if Version != "dev" || Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
