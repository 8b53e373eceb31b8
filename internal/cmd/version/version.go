package version

import (
	"strings"

	"github.com/printx/pxologs/internal/build"
	"github.com/pterm/pterm"
)

// Cmd prints the version information read from the build package.
type Cmd struct{}

func (c *Cmd) Run() error {
	lines := []string{"version: " + build.Version}
	if build.Revision != "" {
		lines = append(lines, "revision: "+build.Revision)
	}
	if build.ModificationTime != "" {
		lines = append(lines, "time: "+build.ModificationTime)
	}
	if build.Modified {
		lines = append(lines, "modified: true")
	}

	pterm.Println(strings.Join(lines, "\n"))
	return nil
}
