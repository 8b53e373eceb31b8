// Package build exposes the version information stamped into the pxologs binary.
package build

import (
	"fmt"
	"runtime/debug"
	"strings"

	"golang.org/x/mod/semver"
)

const dev = "dev"

// Version is the release of this tool, set at build time via
// -ldflags "-X github.com/printx/pxologs/internal/build.Version=v1.2.3".
// A "dev" Version is replaced by the module version recorded by "go install", if there is one.
var Version = dev

// Revision is the vcs revision the binary was built from.
var Revision string

// Modified reports whether the working tree had local changes at build time.
var Modified bool

// ModificationTime is the RFC3339 commit time of Revision.
var ModificationTime string

// readBuildInfo is debug.ReadBuildInfo, redefined here for testing purposes.
var readBuildInfo = debug.ReadBuildInfo

func init() {
	load()
}

func load() {
	if Version == dev {
		if info, ok := readBuildInfo(); ok {
			apply(info)
		}
	}
	Version = Normalize(Version)
}

func apply(info *debug.BuildInfo) {
	if v := info.Main.Version; v != "" && v != "(devel)" {
		Version = v
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			Revision = s.Value
		case "vcs.time":
			ModificationTime = s.Value
		case "vcs.modified":
			Modified = s.Value == "true"
		}
	}
}

// Normalize returns v as a semver string with a leading "v".
// "dev" is returned as is, anything else that is not semver becomes "invalid (v)".
func Normalize(v string) string {
	if v == dev {
		return v
	}
	prefixed := v
	if !strings.HasPrefix(prefixed, "v") {
		prefixed = "v" + prefixed
	}
	if !semver.IsValid(prefixed) {
		return fmt.Sprintf("invalid (%s)", v)
	}
	return prefixed
}
