package stage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/condaenv"
	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/config"
)

// resolvePathsRunner expands every configured literal into an absolute path
// and seeds the envelope environment. Nothing is checked for existence.
func resolvePathsRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	out := in
	cfg := cfgOf(in)
	meta := ensureMeta(&out)
	if meta.Config == nil {
		meta.Config = &cfg
	}

	env := condaenv.ParseEnviron(deps.environ())
	out.Env = env
	home := env["HOME"]
	if home == "" {
		home, _ = os.UserHomeDir()
	}

	appDir := config.ExpandHome(cfg.AppDir, home)
	if appDir == "" {
		appDir = ExecutableDir(deps.Executable)
	}
	appDir = absPath(appDir)

	logFile := config.ExpandHome(cfg.LogFile, home)
	if logFile == "" {
		logFile = config.DefaultLogName
	}

	paths := &PathsMeta{
		Home:        home,
		AppDir:      appDir,
		EntryPoint:  underDir(appDir, config.ExpandHome(cfg.EntryPoint, home)),
		LogFile:     underDir(appDir, logFile),
		Interpreter: config.ExpandHome(cfg.Interpreter, home),
	}
	if cfg.Conda() {
		paths.CondaRoot = absPath(config.ExpandHome(cfg.CondaRoot, home))
		paths.CondaInit = filepath.Join(paths.CondaRoot, "etc", "profile.d", "conda.sh")
		paths.Env = config.ExpandHome(cfg.Env, home)
	}
	meta.Paths = paths
	recordStep(&out, ResolvePaths, 0, "")
	return out, nil
}

// ExecutableDir is the directory holding exe after resolving symlinks. An
// empty exe means the running launcher.
func ExecutableDir(exe string) string {
	if exe == "" {
		p, err := os.Executable()
		if err != nil {
			wd, _ := os.Getwd()
			return wd
		}
		exe = p
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func absPath(p string) string {
	if p == "" {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func underDir(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func init() { Register(ResolvePaths, resolvePathsRunner) }
