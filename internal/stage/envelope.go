package stage

import (
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/condaenv"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/config"
)

// Envelope is the JSON-serializable value threaded through the stages.
// Field order is stable to keep JSON deterministic in tests.
type Envelope struct {
	Steps  []Step  `json:"steps"`
	Meta   *Meta   `json:"meta,omitempty"`
	Errors []Error `json:"errors,omitempty"`

	// Env is the environment the application will receive.
	Env condaenv.Environ `json:"-"`
	// Saved is the environment captured before activation; nil when
	// nothing is active.
	Saved condaenv.Environ `json:"-"`
}

// Step records the outcome of one executed stage.
type Step struct {
	Stage    string    `json:"stage"`
	ExitCode int       `json:"exitCode"`
	Skipped  bool      `json:"skipped,omitempty"`
	Error    *RecError `json:"error,omitempty"`
}

// Meta holds run state with deterministic JSON field order.
type Meta struct {
	Stage       string           `json:"stage,omitempty"`
	ConfigPath  string           `json:"configPath,omitempty"`
	Config      *config.Config   `json:"config,omitempty"`
	Paths       *PathsMeta       `json:"paths,omitempty"`
	Conda       *CondaMeta       `json:"conda,omitempty"`
	Environment *EnvironmentMeta `json:"environment,omitempty"`
	Revision    *RevisionMeta    `json:"revision,omitempty"`
	Application *ApplicationMeta `json:"application,omitempty"`
	ExitCode    int              `json:"exitCode"`
}

// PathsMeta holds every path the run uses, fully expanded.
type PathsMeta struct {
	Home        string `json:"home"`
	CondaRoot   string `json:"condaRoot,omitempty"`
	CondaInit   string `json:"condaInit,omitempty"`
	Env         string `json:"env,omitempty"`
	AppDir      string `json:"appDir"`
	EntryPoint  string `json:"entryPoint"`
	LogFile     string `json:"logFile"`
	Interpreter string `json:"interpreter"`
}

// CondaMeta records whether the conda shell integration was found.
type CondaMeta struct {
	Initialized bool `json:"initialized"`
}

// EnvironmentMeta records the located and activated environment.
type EnvironmentMeta struct {
	Prefix      *condaenv.Prefix `json:"prefix,omitempty"`
	LocateError string           `json:"locateError,omitempty"`
	Activated   bool             `json:"activated"`
	Deactivated bool             `json:"deactivated,omitempty"`
	Added       []string         `json:"added,omitempty"`
	Changed     []string         `json:"changed,omitempty"`
	Removed     []string         `json:"removed,omitempty"`
}

// RevisionMeta describes the application checkout.
type RevisionMeta struct {
	Commit string `json:"commit"`
	Branch string `json:"branch,omitempty"`
	Dirty  bool   `json:"dirty"`
}

// ApplicationMeta records the application invocation.
type ApplicationMeta struct {
	Interpreter string   `json:"interpreter,omitempty"`
	Args        []string `json:"args"`
	ExitCode    int      `json:"exitCode"`
	Error       string   `json:"error,omitempty"`
}

func ensureMeta(env *Envelope) *Meta {
	if env.Meta == nil {
		env.Meta = &Meta{}
	}
	return env.Meta
}

func cfgOf(env Envelope) config.Config {
	if env.Meta != nil && env.Meta.Config != nil {
		return *env.Meta.Config
	}
	return config.DefaultConfig()
}

func pathsOf(env Envelope) PathsMeta {
	if env.Meta != nil && env.Meta.Paths != nil {
		return *env.Meta.Paths
	}
	return PathsMeta{}
}
