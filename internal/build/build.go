// Package build provides build-time information for the CLI application.
package build

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// version can be overridden via ldflags:
// -X github.com/tacogips/tplctl/internal/build.version=x.y.z
var version string

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Version returns the application version.
// Priority: ldflags > module version (go install) > embedded VERSION file
func Version() string {
	if version != "" {
		return version
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return strings.TrimPrefix(v, "v")
		}
	}
	return strings.TrimSpace(embeddedVersion)
}
