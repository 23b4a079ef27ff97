// Package buildinfo provides build-time version information.
//
// Version is the local installed-version identifier that the update notifier
// compares against the registry. Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/kojioka/kojioka-go/pkg/buildinfo.Version=v1.2.0 \
//	    -X github.com/kojioka/kojioka-go/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/kojioka/kojioka-go/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

const (
	// Name is the library name used in the User-Agent and update notices.
	Name = "kojioka-go"

	// ModulePath is the Go module path looked up on the module proxy.
	ModulePath = "github.com/kojioka/kojioka-go"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	// Set via ldflags: -X github.com/kojioka/kojioka-go/pkg/buildinfo.Version=...
	Version = "dev"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/kojioka/kojioka-go/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/kojioka/kojioka-go/pkg/buildinfo.Date=...
	Date = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Current returns the installed version of this library.
//
// The ldflags value wins. Otherwise, when the library is a dependency of the
// running binary, the version recorded in the binary's module graph is used.
// Returns "dev" when neither is available.
func Current() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}
	if info.Main.Path == ModulePath && isRelease(info.Main.Version) {
		return info.Main.Version
	}
	for _, dep := range info.Deps {
		if dep.Path == ModulePath && isRelease(dep.Version) {
			return dep.Version
		}
	}
	return "dev"
}

func isRelease(v string) bool {
	return v != "" && v != "(devel)"
}

// UserAgent returns the User-Agent header sent with every request.
func UserAgent() string {
	return Name + "/" + Current()
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Current(), Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Current(), Commit, Date)
}
