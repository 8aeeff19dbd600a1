package version

import (
	"fmt"

	"github.com/fatih/color"
)

// Version information for the dxspv CLI and library.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Major, Minor, Patch make up the semantic version.
	Major = 0
	Minor = 1
	Patch = 0

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// String returns the plain version string, suitable for logs and
// machine consumption.
func String() string {
	return fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)
}

// Colored returns the version string with per-component colors for
// terminal output. Honors color.NoColor.
func Colored() string {
	return versionMajorColor.Sprint(Major) + "." +
		versionMinorColor.Sprint(Minor) + "." +
		versionPatchColor.Sprint(Patch)
}
