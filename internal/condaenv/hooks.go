package condaenv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

const (
	ActivateHooksDir   = "activate.d"
	DeactivateHooksDir = "deactivate.d"

	captureEnvBuiltin = "__poresippr_capture_env"
)

// HookScripts returns the *.sh scripts under <prefix>/etc/conda/<kind>,
// sorted lexically as conda sources them.
func HookScripts(prefix, kind string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(prefix, "etc", "conda", kind, "*.sh"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// HookError reports a hook script that failed to parse or exited non-zero.
type HookError struct {
	Script string
	Status int
	Err    error
}

func (e *HookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Script, e.Err)
	}
	return fmt.Sprintf("%s: exit status %d", e.Script, e.Status)
}

func (e *HookError) Unwrap() error { return e.Err }

// SourceScripts sources scripts in order in one embedded POSIX shell seeded
// with env and returns the exported environment afterwards. Scripts run with
// dir as working directory; their output goes to stdout and stderr.
// On failure the environment captured so far is not returned.
func SourceScripts(ctx context.Context, scripts []string, env Environ, dir string, stdout, stderr io.Writer) (Environ, error) {
	if len(scripts) == 0 {
		return env.Clone(), nil
	}
	var captured Environ
	capture := func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			if len(args) > 0 && args[0] == captureEnvBuiltin {
				captured = exportedEnv(interp.HandlerCtx(ctx).Env)
				return nil
			}
			return next(ctx, args)
		}
	}
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(env.Slice()...)),
		interp.StdIO(nil, stdout, stderr),
		interp.ExecHandlers(capture),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create interpreter: %w", err)
	}

	parser := syntax.NewParser()
	for _, script := range scripts {
		f, err := os.Open(script)
		if err != nil {
			return nil, &HookError{Script: script, Err: err}
		}
		prog, err := parser.Parse(f, script)
		_ = f.Close()
		if err != nil {
			return nil, &HookError{Script: script, Err: err}
		}
		if err := runner.Run(ctx, prog); err != nil {
			var status interp.ExitStatus
			if errors.As(err, &status) {
				return nil, &HookError{Script: script, Status: int(status)}
			}
			return nil, &HookError{Script: script, Err: err}
		}
	}

	prog, err := parser.Parse(strings.NewReader(captureEnvBuiltin+"\n"), "capture")
	if err != nil {
		return nil, err
	}
	if err := runner.Run(ctx, prog); err != nil {
		return nil, fmt.Errorf("capture environment: %w", err)
	}
	if captured == nil {
		return nil, errors.New("capture environment: no result")
	}
	return captured, nil
}

func exportedEnv(env expand.Environ) Environ {
	out := Environ{}
	env.Each(func(name string, vr expand.Variable) bool {
		if vr.Set && vr.Exported && vr.Kind == expand.String {
			out[name] = vr.Str
		}
		return true
	})
	return out
}
