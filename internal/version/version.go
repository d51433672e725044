// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version describes the running build.
package version

import "fmt"

// Info is filled from ldflags at build time.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
}

// Release returns the version reported by the health endpoint, "dev" when
// the binary was built without ldflags.
func (i Info) Release() string {
	if i.Version == "" {
		return "dev"
	}
	return i.Version
}

// String formats the build for -version output.
func (i Info) String() string {
	commit, built := i.GitCommit, i.BuildTime
	if commit == "" {
		commit = "unknown"
	}
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("ofolio %s (commit: %s, built: %s)", i.Release(), commit, built)
}
