package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/buildinfo"
)

func withCleanBuildinfo(t *testing.T) {
	t.Helper()
	oldVersion, oldCommit, oldDate := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	t.Cleanup(func() {
		buildinfo.Version, buildinfo.Commit, buildinfo.Date = oldVersion, oldCommit, oldDate
	})
	buildinfo.Version = ""
	buildinfo.Commit = ""
	buildinfo.Date = ""
}

func execVersion(t *testing.T, args ...string) (string, string) {
	t.Helper()
	cmd := NewCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("run: %v", err)
	}
	return stdout.String(), stderr.String()
}

func TestVersionDefaultOutputStable(t *testing.T) {
	withCleanBuildinfo(t)
	got, _ := execVersion(t)
	if got != "poresippr dev\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestVersionShort(t *testing.T) {
	withCleanBuildinfo(t)
	buildinfo.Version = "1.2.3"
	buildinfo.Date = "2026-01-02"
	got, _ := execVersion(t, "--short")
	if got != "1.2.3\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestVersionJSON(t *testing.T) {
	withCleanBuildinfo(t)
	buildinfo.Version = "1.2.3"
	stdout, stderr := execVersion(t, "--json")
	var got map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if got["version"] != "1.2.3" {
		t.Fatalf("unexpected version: %v", got["version"])
	}
	if stderr != "poresippr version: 1.2.3\n" {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
}
