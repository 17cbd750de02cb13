package stage

import (
	"context"
	"errors"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/condaenv"
)

// deactivateEnvironmentRunner runs deactivate.d hooks and restores the
// environment saved at activation. With nothing active it succeeds quietly,
// like `conda deactivate` at the base level.
func deactivateEnvironmentRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	out := in
	meta := ensureMeta(&out)
	lg := deps.logger()

	lg.Info("Deactivating environment...")
	if out.Saved == nil || meta.Environment == nil || meta.Environment.Prefix == nil {
		meta.ExitCode = 0
		recordStep(&out, DeactivateEnvironment, 0, "")
		return out, nil
	}

	code := 0
	msg := ""
	scripts, err := condaenv.HookScripts(meta.Environment.Prefix.Path, condaenv.DeactivateHooksDir)
	if err == nil {
		_, err = condaenv.SourceScripts(ctx, scripts, out.Env, deps.WorkDir, deps.out(), deps.out())
	}
	if err != nil {
		lg.Error("deactivation hook failed", "err", err)
		code = exitStatusOf(err)
		msg = err.Error()
	}
	out.Env = out.Saved
	out.Saved = nil
	meta.Environment.Deactivated = true
	meta.ExitCode = code
	recordStep(&out, DeactivateEnvironment, code, msg)
	return out, nil
}

func exitStatusOf(err error) int {
	var he *condaenv.HookError
	if errors.As(err, &he) && he.Status != 0 {
		return he.Status
	}
	return 1
}

func init() { Register(DeactivateEnvironment, deactivateEnvironmentRunner) }
