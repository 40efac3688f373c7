// Package version describes the git-secret-action build: the version stamped
// in by the linker and the runtime it runs on.
package version

import (
	"fmt"
	"runtime"
)

// Name is the program name used in version output and the HTTP user agent.
const Name = "git-secret-action"

// Set with -ldflags "-X github.com/the-guild-org/secrets/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info is a snapshot of the build stamp.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get returns the build stamp of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (i Info) String() string {
	return i.Version
}

// Full renders the version line printed by the version command.
func (i Info) Full() string {
	return fmt.Sprintf("%s version %s (commit %s, built %s, %s %s)",
		Name, i.Version, i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}

// UserAgent identifies the action when downloading the git-secret archive.
func (i Info) UserAgent() string {
	return Name + "/" + i.Version + " (" + i.Platform + ")"
}
