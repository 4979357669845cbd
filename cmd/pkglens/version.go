package main

import (
	"fmt"
	"runtime"
)

// buildVersion assembles the string reported by --version. The build-time
// vars stay overridable via -ldflags; GoVersion falls back to the runtime
// when the build did not stamp it.
func buildVersion() string {
	goVer := GoVersion
	if goVer == "unknown" {
		goVer = runtime.Version()
	}
	return fmt.Sprintf("%s (commit %s, built %s, %s)", Version, GitCommit, BuildDate, goVer)
}
