package stage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/condaenv"
)

const (
	exitCommandNotFound = 127
	exitCannotExecute   = 126
)

// runApplicationRunner runs `<interpreter> <entry point>` with the envelope
// environment. The interpreter is resolved against the envelope PATH so an
// activated environment wins over the launcher's own search path.
func runApplicationRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	out := in
	meta := ensureMeta(&out)
	paths := pathsOf(in)
	lg := deps.logger()

	lg.Info("Running application...")
	app := &ApplicationMeta{Args: []string{paths.EntryPoint}}
	meta.Application = app

	program, err := condaenv.LookPath(paths.Interpreter, out.Env["PATH"], deps.WorkDir)
	if err != nil {
		code, msg := startFailure(paths.Interpreter, err)
		return finishApplication(out, lg.Error, app, code, msg), nil
	}
	app.Interpreter = program

	cmd := exec.CommandContext(ctx, program, paths.EntryPoint)
	cmd.Env = out.Env.Slice()
	cmd.Dir = deps.WorkDir
	cmd.Stdin = deps.Stdin
	cmd.Stdout = deps.out()
	cmd.Stderr = deps.out()

	runErr := cmd.Run()
	if runErr == nil {
		return finishApplication(out, lg.Error, app, 0, ""), nil
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		lg.Debug("application exited", "code", exitErr.ExitCode())
		return finishApplication(out, lg.Error, app, exitErr.ExitCode(), ""), nil
	}
	code, msg := startFailure(program, runErr)
	return finishApplication(out, lg.Error, app, code, msg), nil
}

func startFailure(program string, err error) (int, string) {
	if errors.Is(err, fs.ErrPermission) {
		return exitCannotExecute, fmt.Sprintf("%s: Permission denied", program)
	}
	if errors.Is(err, condaenv.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return exitCommandNotFound, fmt.Sprintf("%s: command not found", program)
	}
	return exitCommandNotFound, fmt.Sprintf("%s: %v", program, err)
}

func finishApplication(out Envelope, logErr func(any, ...any), app *ApplicationMeta, code int, msg string) Envelope {
	app.ExitCode = code
	app.Error = msg
	if msg != "" {
		logErr(msg)
	}
	out.Meta.ExitCode = code
	recordStep(&out, RunApplication, code, msg)
	return out
}

func init() { Register(RunApplication, runApplicationRunner) }
