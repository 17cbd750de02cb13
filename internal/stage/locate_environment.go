package stage

import (
	"context"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/condaenv"
)

// locateEnvironmentRunner resolves the configured environment. A miss is
// recorded but not logged here; activation reports it the way conda would.
func locateEnvironmentRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	out := in
	meta := ensureMeta(&out)
	paths := pathsOf(in)
	loc := condaenv.Locator{Root: paths.CondaRoot, Home: paths.Home}

	deps.logger().Debug("locating environment", "env", paths.Env, "condaRoot", paths.CondaRoot)
	prefix, err := loc.Locate(paths.Env)
	if err != nil {
		meta.Environment = &EnvironmentMeta{LocateError: sanitizeErrorMessage(err.Error())}
		recordStep(&out, LocateEnvironment, 1, err.Error())
		return out, nil
	}
	meta.Environment = &EnvironmentMeta{Prefix: &prefix}
	recordStep(&out, LocateEnvironment, 0, "")
	return out, nil
}

func init() { Register(LocateEnvironment, locateEnvironmentRunner) }
