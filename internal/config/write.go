package config

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
)

// fileConfig is the subset written by `prepare`, in file order.
type fileConfig struct {
	ConfigVersion string `json:"configVersion"`
	Profile       string `json:"profile"`
	Env           string `json:"env,omitempty"`
	AppDir        string `json:"appDir,omitempty"`
}

// Encode renders the persistent part of cfg as formatted CUE.
func Encode(cfg Config) ([]byte, error) {
	fc := fileConfig{
		ConfigVersion: cfg.ConfigVersion,
		Profile:       cfg.Profile,
		AppDir:        cfg.AppDir,
	}
	if fc.ConfigVersion == "" {
		fc.ConfigVersion = CurrentConfigVersion
	}
	if cfg.Conda() {
		fc.Env = cfg.Env
	}
	v := cuecontext.New().Encode(fc)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	b, err := format.Node(v.Syntax())
	if err != nil {
		return nil, fmt.Errorf("format config: %w", err)
	}
	return append(b, '\n'), nil
}

// Write encodes cfg to path, creating parent directories.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := Encode(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
