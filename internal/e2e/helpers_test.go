package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/testutil"
)

type runResult struct {
	code   int
	stdout []byte
	stderr []byte
}

var (
	buildOnce sync.Once
	builtBin  string
	buildErr  error
	buildOut  []byte
)

// buildLauncher compiles the launcher once per test binary.
func buildLauncher(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "poresippr-e2e-")
		if err != nil {
			buildErr = err
			return
		}
		bin := filepath.Join(dir, "poresippr")
		if runtime.GOOS == "windows" {
			bin += ".exe"
		}
		cmd := exec.Command("go", "build", "-o", bin, "./cmd/poresippr")
		cmd.Dir = filepath.Join("..", "..")
		cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
		buildOut, buildErr = cmd.CombinedOutput()
		builtBin = bin
	})
	if buildErr != nil {
		t.Fatalf("build failed: %v\n%s", buildErr, string(buildOut))
	}
	return builtBin
}

// installLauncher copies the launcher into the application directory the
// way a release is laid out.
func installLauncher(t *testing.T, l testutil.Layout) string {
	t.Helper()
	b, err := os.ReadFile(buildLauncher(t))
	if err != nil {
		t.Fatalf("read launcher: %v", err)
	}
	dst := filepath.Join(l.AppDir, "poresippr")
	testutil.WriteFile(t, dst, string(b), 0o755)
	return dst
}

func runCmd(t *testing.T, bin string, env []string, args ...string) runResult {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Env = env
	cmd.Dir = filepath.Dir(bin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	code := 0
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			code = ee.ExitCode()
		} else {
			t.Fatalf("start %s: %v", bin, err)
		}
	}
	return runResult{code: code, stdout: stdout.Bytes(), stderr: stderr.Bytes()}
}

func readLog(t *testing.T, l testutil.Layout) string {
	t.Helper()
	b, err := os.ReadFile(l.LogFile())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(b)
}

func assertQuiet(t *testing.T, r runResult) {
	t.Helper()
	if len(r.stdout) != 0 || len(r.stderr) != 0 {
		t.Fatalf("launcher must not write to the terminal\nstdout: %q\nstderr: %q", r.stdout, r.stderr)
	}
}

func assertInOrder(t *testing.T, text string, parts ...string) {
	t.Helper()
	pos := 0
	for _, p := range parts {
		i := strings.Index(text[pos:], p)
		if i < 0 {
			t.Fatalf("missing %q after offset %d in:\n%s", p, pos, text)
		}
		pos += i + len(p)
	}
}
