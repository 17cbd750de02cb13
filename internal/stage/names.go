package stage

const (
	ResolvePaths          = "resolve-paths"
	LocateEnvironment     = "locate-environment"
	InitConda             = "init-conda"
	ActivateEnvironment   = "activate-environment"
	EnvHook               = "env-hook"
	AppRevision           = "app-revision"
	RunApplication        = "run-application"
	DeactivateEnvironment = "deactivate-environment"
)

var pipelineOrder = []string{
	ResolvePaths,
	LocateEnvironment,
	InitConda,
	ActivateEnvironment,
	EnvHook,
	AppRevision,
	RunApplication,
	DeactivateEnvironment,
}

// CondaStages is the pipeline for the conda profile.
func CondaStages() []string {
	return append([]string(nil), pipelineOrder...)
}

// PlainStages is the pipeline for the plain profile: no conda steps.
func PlainStages() []string {
	return []string{ResolvePaths, EnvHook, AppRevision, RunApplication}
}

func stageIndex(name string) int {
	for i, n := range pipelineOrder {
		if n == name {
			return i
		}
	}
	return len(pipelineOrder)
}
