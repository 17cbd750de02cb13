package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

// compileCUE loads a CUE file, compiles it and unifies it with #Config.
func compileCUE(path string) (cue.Value, error) {
	if filepath.Ext(path) != ".cue" {
		return cue.Value{}, errors.New("unsupported config format: expected .cue")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}
	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(configSchema)
	if err := schemaValue.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile config schema: %w", err)
	}
	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if err := userValue.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("invalid config: %v", err)
	}
	unified := schemaValue.LookupPath(cue.ParsePath("#Config")).Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cue.Value{}, fmt.Errorf("invalid config: %v", err)
	}
	return unified, nil
}

// loadCUEIntoViper merges a validated CUE file over the viper defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	value, err := compileCUE(path)
	if err != nil {
		return err
	}
	var m map[string]any
	if err := value.Decode(&m); err != nil {
		return fmt.Errorf("invalid config: %v", err)
	}
	if err := v.MergeConfigMap(m); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}
