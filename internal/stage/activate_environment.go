package stage

import (
	"context"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/condaenv"
)

const condaNotFound = "conda: command not found"

func activateEnvironmentRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	out := in
	meta := ensureMeta(&out)
	lg := deps.logger()

	lg.Info("Activating environment...")
	if meta.Conda == nil || !meta.Conda.Initialized {
		lg.Error(condaNotFound)
		recordStep(&out, ActivateEnvironment, 127, condaNotFound)
		return out, nil
	}
	if meta.Environment == nil || meta.Environment.Prefix == nil {
		msg := "EnvironmentNameNotFound: no environment located"
		if meta.Environment != nil && meta.Environment.LocateError != "" {
			msg = meta.Environment.LocateError
		}
		lg.Error(msg)
		recordStep(&out, ActivateEnvironment, 1, msg)
		return out, nil
	}

	prefix := *meta.Environment.Prefix
	next := condaenv.Activate(out.Env, prefix)
	scripts, err := condaenv.HookScripts(prefix.Path, condaenv.ActivateHooksDir)
	if err == nil {
		next, err = condaenv.SourceScripts(ctx, scripts, next, deps.WorkDir, deps.out(), deps.out())
	}
	if err != nil {
		lg.Error("activation hook failed", "err", err)
		recordStep(&out, ActivateEnvironment, exitStatusOf(err), err.Error())
		return out, nil
	}

	added, changed, removed := out.Env.Diff(next)
	meta.Environment.Activated = true
	meta.Environment.Added, meta.Environment.Changed, meta.Environment.Removed = added, changed, removed
	out.Saved = out.Env
	out.Env = next
	lg.Debug("environment activated", "prefix", prefix.Path, "hooks", len(scripts))
	recordStep(&out, ActivateEnvironment, 0, "")
	return out, nil
}

func init() { Register(ActivateEnvironment, activateEnvironmentRunner) }
