package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// FileName is the config file looked up next to the launcher executable.
	FileName = "poresippr.cue"

	ProfileConda = "conda"
	ProfilePlain = "plain"

	LogModeTruncate = "truncate"
	LogModeAppend   = "append"

	// DefaultLogName is the log file created in the application directory.
	DefaultLogName = "run_poresippr.log"
	// DefaultEntryPoint is the application entry point inside the application directory.
	DefaultEntryPoint = "main.py"
)

//go:embed schema.cue
var configSchema string

// Config is the launcher configuration. Every field has a literal default so
// the launcher runs without arguments and without a config file.
type Config struct {
	ConfigVersion string `mapstructure:"configVersion" json:"configVersion"`
	Profile       string `mapstructure:"profile" json:"profile"`
	CondaRoot     string `mapstructure:"condaRoot" json:"condaRoot"`
	Env           string `mapstructure:"env" json:"env"`
	AppDir        string `mapstructure:"appDir" json:"appDir,omitempty"`
	EntryPoint    string `mapstructure:"entryPoint" json:"entryPoint"`
	LogFile       string `mapstructure:"logFile" json:"logFile,omitempty"`
	LogMode       string `mapstructure:"logMode" json:"logMode"`
	Interpreter   string `mapstructure:"interpreter" json:"interpreter"`
	Verbose       bool   `mapstructure:"verbose" json:"verbose,omitempty"`
	Revision      bool   `mapstructure:"revision" json:"revision"`
	Hooks         Hooks  `mapstructure:"hooks" json:"hooks"`
}

// Hooks holds optional scripting hooks.
type Hooks struct {
	// Env is inline Lua run after activation; see the env-hook stage.
	Env string `mapstructure:"env" json:"env,omitempty"`
}

// Conda reports whether the profile activates a conda environment.
func (c Config) Conda() bool { return c.Profile != ProfilePlain }

// DefaultConfig returns the built-in launcher settings.
func DefaultConfig() Config {
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Profile:       ProfileConda,
		CondaRoot:     "$HOME/miniconda",
		Env:           "$HOME/miniconda/envs/poresippr_gui",
		EntryPoint:    DefaultEntryPoint,
		LogMode:       LogModeTruncate,
		Interpreter:   "python",
		Revision:      true,
	}
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"profile":     "PORESIPPR_PROFILE",
	"condaRoot":   "PORESIPPR_CONDA_ROOT",
	"env":         "PORESIPPR_ENV",
	"appDir":      "PORESIPPR_APP_DIR",
	"entryPoint":  "PORESIPPR_ENTRY_POINT",
	"logFile":     "PORESIPPR_LOG_FILE",
	"logMode":     "PORESIPPR_LOG_MODE",
	"interpreter": "PORESIPPR_INTERPRETER",
	"verbose":     "PORESIPPR_VERBOSE",
	"revision":    "PORESIPPR_REVISION",
	"hooks.env":   "PORESIPPR_ENV_HOOK",
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// ConfigFilePath is an explicit CUE file; when set it must exist.
	ConfigFilePath string
	// SearchDirs are probed in order for FileName when ConfigFilePath is empty.
	SearchDirs []string
	// Profile overrides every other source when non-empty.
	Profile string
}

// Load layers defaults, the CUE config file and PORESIPPR_* variables.
// It returns the config and the path of the file that was read, if any.
func Load(opts LoadOptions) (Config, string, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, "", fmt.Errorf("bind %s: %w", env, err)
		}
	}

	resolved := ""
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return Config{}, "", fmt.Errorf("config file not found: %s", opts.ConfigFilePath)
		}
		resolved = opts.ConfigFilePath
	} else {
		for _, dir := range opts.SearchDirs {
			if dir == "" {
				continue
			}
			p := filepath.Join(dir, FileName)
			if fileExists(p) {
				resolved = p
				break
			}
		}
	}
	if resolved != "" {
		if err := loadCUEIntoViper(v, resolved); err != nil {
			return Config{}, "", err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if opts.Profile != "" {
		cfg.Profile = opts.Profile
	}
	if err := Validate(cfg); err != nil {
		return Config{}, "", err
	}
	return cfg, resolved, nil
}

// Validate checks constraints the environment overrides can violate after
// the CUE schema has been applied.
func Validate(cfg Config) error {
	if err := checkConfigVersion(cfg.ConfigVersion); err != nil {
		return err
	}
	switch cfg.Profile {
	case ProfileConda, ProfilePlain:
	default:
		return fmt.Errorf("invalid profile: %q (expected %s or %s)", cfg.Profile, ProfileConda, ProfilePlain)
	}
	switch cfg.LogMode {
	case LogModeTruncate, LogModeAppend:
	default:
		return fmt.Errorf("invalid logMode: %q (expected %s or %s)", cfg.LogMode, LogModeTruncate, LogModeAppend)
	}
	if cfg.EntryPoint == "" {
		return errors.New("missing required field: entryPoint")
	}
	if cfg.Interpreter == "" {
		return errors.New("missing required field: interpreter")
	}
	return nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("configVersion", d.ConfigVersion)
	v.SetDefault("profile", d.Profile)
	v.SetDefault("condaRoot", d.CondaRoot)
	v.SetDefault("env", d.Env)
	v.SetDefault("appDir", d.AppDir)
	v.SetDefault("entryPoint", d.EntryPoint)
	v.SetDefault("logFile", d.LogFile)
	v.SetDefault("logMode", d.LogMode)
	v.SetDefault("interpreter", d.Interpreter)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("revision", d.Revision)
	v.SetDefault("hooks.env", d.Hooks.Env)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
