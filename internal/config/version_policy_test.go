package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_UnknownConfigVersion(t *testing.T) {
	d := t.TempDir()
	cfg := filepath.Join(d, "unknown_version.cue")
	content := "{\n  configVersion: \"2\"\n  profile: \"plain\"\n}\n"
	if err := os.WriteFile(cfg, []byte(content), 0o644); err != nil {
		t.Fatalf("write cfg: %v", err)
	}
	_, _, err := Load(LoadOptions{ConfigFilePath: cfg})
	if err == nil {
		t.Fatalf("expected error")
	}
	want := "unsupported configVersion: \"2\" (supported: 1)"
	if err.Error() != want {
		t.Fatalf("unexpected error\nwant: %s\n got: %s", want, err.Error())
	}
}

func TestCheckConfigVersion_EmptyMeansCurrent(t *testing.T) {
	if err := checkConfigVersion(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
