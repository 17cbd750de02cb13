// Package testutil builds throwaway conda layouts for tests. The fake
// interpreters are POSIX shell scripts, so callers skip on Windows.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// FakePython prints where it came from, the variables tests look at and its
// arguments, fails like CPython when the entry point is missing, and exits
// with $APP_EXIT otherwise.
const FakePython = `#!/bin/sh
echo "python from: $ORIGIN"
echo "CONDA_DEFAULT_ENV=$CONDA_DEFAULT_ENV"
echo "HOOK_VAR=$HOOK_VAR"
echo "args: $*"
if [ ! -f "$1" ]; then
  echo "python: can't open file '$1': [Errno 2] No such file or directory" >&2
  exit 2
fi
exit "${APP_EXIT:-0}"
`

// Layout is a fake home directory holding a miniconda install with one
// environment, a system interpreter and an application directory.
type Layout struct {
	Home      string
	CondaRoot string
	Prefix    string
	SysBin    string
	AppDir    string
}

// EntryPoint is the application's main.py.
func (l Layout) EntryPoint() string { return filepath.Join(l.AppDir, "main.py") }

// LogFile is the default log location.
func (l Layout) LogFile() string { return filepath.Join(l.AppDir, "run_poresippr.log") }

// Environ is a minimal environment pointing HOME at the layout and PATH at
// the system interpreter only.
func (l Layout) Environ(extra ...string) []string {
	env := []string{
		"HOME=" + l.Home,
		"PATH=" + l.SysBin + string(os.PathListSeparator) + "/usr/bin" + string(os.PathListSeparator) + "/bin",
	}
	return append(env, extra...)
}

// RequirePOSIX skips on platforms without /bin/sh.
func RequirePOSIX(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreters require a POSIX shell")
	}
}

// NewLayout builds $HOME/miniconda with envs/poresippr_gui and an app dir.
func NewLayout(t testing.TB) Layout {
	t.Helper()
	RequirePOSIX(t)
	home := t.TempDir()
	l := Layout{
		Home:      home,
		CondaRoot: filepath.Join(home, "miniconda"),
		Prefix:    filepath.Join(home, "miniconda", "envs", "poresippr_gui"),
		SysBin:    filepath.Join(home, "sysbin"),
		AppDir:    filepath.Join(home, "PoreSippr"),
	}
	MkdirAll(t, filepath.Join(l.CondaRoot, "conda-meta"))
	WriteFile(t, filepath.Join(l.CondaRoot, "etc", "profile.d", "conda.sh"), "# conda shell integration\n", 0o644)
	MkdirAll(t, filepath.Join(l.Prefix, "conda-meta"))
	WriteFile(t, filepath.Join(l.Prefix, "bin", "python"), "#!/bin/sh\nORIGIN=env\n"+FakePython[len("#!/bin/sh\n"):], 0o755)
	WriteFile(t, filepath.Join(l.SysBin, "python"), "#!/bin/sh\nORIGIN=system\n"+FakePython[len("#!/bin/sh\n"):], 0o755)
	WriteFile(t, l.EntryPoint(), "print('PoreSippr')\n", 0o644)
	return l
}

// AddHook writes a conda activate.d or deactivate.d script into the env.
func (l Layout) AddHook(t testing.TB, kind, name, content string) {
	t.Helper()
	WriteFile(t, filepath.Join(l.Prefix, "etc", "conda", kind, name), content, 0o644)
}

// MkdirAll creates dir or fails the test.
func MkdirAll(t testing.TB, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

// WriteFile writes content with mode, creating parents, or fails the test.
func WriteFile(t testing.TB, p, content string, mode os.FileMode) {
	t.Helper()
	MkdirAll(t, filepath.Dir(p))
	if err := os.WriteFile(p, []byte(content), mode); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
}
