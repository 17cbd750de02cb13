package stage

import (
	"context"
	"fmt"
	"os"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/condaenv"
)

func initCondaRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	out := in
	meta := ensureMeta(&out)
	paths := pathsOf(in)
	lg := deps.logger()

	lg.Info("Initializing conda...")
	meta.Conda = &CondaMeta{}
	if _, err := os.Stat(paths.CondaInit); err != nil {
		msg := fmt.Sprintf("%s: No such file or directory", paths.CondaInit)
		lg.Error(msg)
		recordStep(&out, InitConda, 1, msg)
		return out, nil
	}
	out.Env = out.Env.Overlay(condaenv.InitVars(out.Env, paths.CondaRoot))
	meta.Conda.Initialized = true
	recordStep(&out, InitConda, 0, "")
	return out, nil
}

func init() { Register(InitConda, initCondaRunner) }
