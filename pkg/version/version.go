// Package version provides build-time version information for codeprompt.
package version

import (
	"fmt"
	"runtime"
)

// These variables are populated at build time using -ldflags, e.g.
// go build -ldflags "-X 'codeprompt/pkg/version.Version=1.2.3'".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Info contains comprehensive version information.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns the version information in a single-line format.
func (i Info) String() string {
	return fmt.Sprintf(
		"codeprompt version %s (commit: %s) built at %s with %s on %s",
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}
