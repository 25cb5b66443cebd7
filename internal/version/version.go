// Package version carries the build fingerprints stamped into the mint
// binary. All variables are plain strings overridable via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var segmentColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Pretty renders Version with the major/minor/patch segments colored. Any
// pre-release suffix after '-' stays uncolored; disabled color output falls
// back to the plain string.
func Pretty() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	for i := range parts {
		if i < len(segmentColors) {
			parts[i] = segmentColors[i].Sprint(parts[i])
		}
	}
	out := strings.Join(parts, ".")
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
