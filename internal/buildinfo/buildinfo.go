// Package buildinfo exposes version metadata for the launcher. Values can be
// overridden at build time via -ldflags; the cli package values (cli.Version,
// cli.Date) are honored for builds driven by external scripts, and the VCS
// stamp embedded by the Go toolchain is used when no commit was injected.
package buildinfo

import (
	"runtime/debug"
	"strings"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/cli"
)

var (
	// Version is the semantic version or custom string. Defaults to cli.Version or "dev".
	Version = "dev"
	// Commit is the VCS commit hash (optional).
	Commit = ""
	// Date is the build time in RFC3339 or similar (optional). Falls back to cli.Date.
	Date = ""
	// BuiltBy is an optional builder identifier (optional).
	BuiltBy = ""
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// ResolvedVersion returns Version, then cli.Version, then "dev".
func ResolvedVersion() string {
	if Version != "" {
		return Version
	}
	if cli.Version != "" {
		return cli.Version
	}
	return "dev"
}

// ResolvedCommit returns the injected commit or the toolchain's vcs.revision.
func ResolvedCommit() string {
	if Commit != "" {
		return Commit
	}
	bi, ok := readBuildInfo()
	if !ok || bi == nil {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

// Summary returns a concise single-line version string.
func Summary() string {
	v := ResolvedVersion()

	d := Date
	if d == "" {
		d = cli.Date
	}

	parts := make([]string, 0, 2)
	if c := ResolvedCommit(); c != "" {
		if len(c) > 7 {
			c = c[:7]
		}
		parts = append(parts, "commit="+c)
	}
	if d != "" {
		parts = append(parts, "date="+d)
	}
	if len(parts) > 0 {
		v += " (" + strings.Join(parts, ", ") + ")"
	}
	return v
}
