package e2e

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/testutil"
)

func TestLaunch_CondaDefaults(t *testing.T) {
	l := testutil.NewLayout(t)
	bin := installLauncher(t, l)

	r := runCmd(t, bin, l.Environ())
	if r.code != 0 {
		t.Fatalf("unexpected exit code %d\n%s", r.code, readLog(t, l))
	}
	assertQuiet(t, r)
	assertInOrder(t, readLog(t, l),
		"Initializing conda...",
		"Activating environment...",
		"Running application...",
		"python from: env",
		"args: "+l.EntryPoint(),
		"Deactivating environment...",
	)
}

func TestLaunch_InvalidEnvironmentStillLogs(t *testing.T) {
	l := testutil.NewLayout(t)
	bin := installLauncher(t, l)
	missing := filepath.Join(l.Home, "missing-env")

	r := runCmd(t, bin, l.Environ("PORESIPPR_ENV="+missing), "run")
	if r.code != 0 {
		t.Fatalf("deactivation status expected, got %d", r.code)
	}
	assertQuiet(t, r)
	assertInOrder(t, readLog(t, l),
		"Activating environment...",
		"EnvironmentLocationNotFound: Not a conda environment: "+missing,
		"Running application...",
		"python from: system",
	)
}

func TestLaunch_PlainProfileReturnsApplicationStatus(t *testing.T) {
	l := testutil.NewLayout(t)
	bin := installLauncher(t, l)

	r := runCmd(t, bin, l.Environ("APP_EXIT=3"), "run", "--profile", "plain")
	if r.code != 3 {
		t.Fatalf("unexpected exit code %d", r.code)
	}
	assertQuiet(t, r)
	log := readLog(t, l)
	if strings.Contains(log, "Initializing conda...") {
		t.Fatalf("plain profile must not touch conda:\n%s", log)
	}
	assertInOrder(t, log, "Running application...", "python from: system")
}

func TestLaunch_LogIsTruncatedPerRun(t *testing.T) {
	l := testutil.NewLayout(t)
	bin := installLauncher(t, l)
	testutil.WriteFile(t, l.LogFile(), "stale line from an earlier run\n", 0o644)

	runCmd(t, bin, l.Environ())
	if log := readLog(t, l); strings.Contains(log, "stale line") {
		t.Fatalf("log should be truncated:\n%s", log)
	}
}

func TestLaunch_PrepareThenRun(t *testing.T) {
	l := testutil.NewLayout(t)
	bin := installLauncher(t, l)
	testutil.WriteFile(t, filepath.Join(l.AppDir, "version.py"), "__version__ = '1.4.0'\n", 0o644)

	r := runCmd(t, bin, l.Environ(), "prepare")
	if r.code != 0 {
		t.Fatalf("prepare failed: %d\n%s", r.code, r.stderr)
	}
	entry, err := os.ReadFile(filepath.Join(l.Home, ".local", "share", "applications", "PoreSippr.desktop"))
	if err != nil {
		t.Fatalf("desktop entry not installed: %v", err)
	}
	if !strings.Contains(string(entry), "Exec="+bin+"\n") {
		t.Fatalf("unexpected entry:\n%s", entry)
	}

	r = runCmd(t, bin, l.Environ())
	if r.code != 0 {
		t.Fatalf("launch failed: %d", r.code)
	}
	log := readLog(t, l)
	if strings.Contains(log, "Activating environment...") {
		t.Fatalf("prepare without ENV_PATH selects the plain profile:\n%s", log)
	}
	assertInOrder(t, log, "Running application...", "python from: system")
}

func TestLaunch_UnopenableLogReportsOnStderr(t *testing.T) {
	l := testutil.NewLayout(t)
	bin := installLauncher(t, l)

	r := runCmd(t, bin, l.Environ("PORESIPPR_LOG_FILE="+l.AppDir))
	if r.code != 1 {
		t.Fatalf("unexpected exit code %d", r.code)
	}
	if !strings.HasPrefix(string(r.stderr), "open log:") || len(r.stdout) != 0 {
		t.Fatalf("unexpected output: stdout=%q stderr=%q", r.stdout, r.stderr)
	}
}

func TestLaunch_InvalidConfigReportsOnStderr(t *testing.T) {
	l := testutil.NewLayout(t)
	bin := installLauncher(t, l)
	testutil.WriteFile(t, filepath.Join(l.AppDir, "poresippr.cue"), "profile: \"docker\"\n", 0o644)

	r := runCmd(t, bin, l.Environ())
	if r.code != 1 || !strings.Contains(string(r.stderr), "invalid config") {
		t.Fatalf("unexpected result: code=%d stderr=%q", r.code, r.stderr)
	}
	if _, err := os.Stat(l.LogFile()); !os.IsNotExist(err) {
		t.Fatalf("nothing should run before the config is valid")
	}
}

func TestVersion(t *testing.T) {
	l := testutil.NewLayout(t)
	bin := installLauncher(t, l)
	r := runCmd(t, bin, l.Environ(), "version")
	if r.code != 0 || !strings.HasPrefix(string(r.stdout), "poresippr ") {
		t.Fatalf("unexpected version output: %q", r.stdout)
	}
}

func TestDiagnose_StopsBeforeApplication(t *testing.T) {
	l := testutil.NewLayout(t)
	bin := installLauncher(t, l)
	cfg := filepath.Join(l.Home, "diag.cue")
	testutil.WriteFile(t, cfg, "appDir: \""+l.AppDir+"\"\nrevision: false\n", 0o644)
	dumps := filepath.Join(l.Home, "dumps")

	r := runCmd(t, bin, l.Environ(), "diagnose", "--config", cfg, "--dump-dir", dumps)
	if r.code != 0 {
		t.Fatalf("diagnose failed: %d\n%s", r.code, r.stderr)
	}
	lines := strings.Split(strings.TrimSpace(string(r.stdout)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one JSON line, got %d", len(lines))
	}
	var env struct {
		Steps []struct {
			Stage string `json:"stage"`
		} `json:"steps"`
		Meta struct {
			Environment struct {
				Activated bool `json:"activated"`
			} `json:"environment"`
		} `json:"meta"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &env); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if last := env.Steps[len(env.Steps)-1].Stage; last != "app-revision" {
		t.Fatalf("unexpected last stage: %s", last)
	}
	if !env.Meta.Environment.Activated {
		t.Fatalf("environment should be activated")
	}
	if !strings.Contains(string(r.stderr), "Activating environment...") {
		t.Fatalf("log lines belong on stderr: %q", r.stderr)
	}
	if _, err := os.Stat(filepath.Join(dumps, "004_activate-environment_out.json")); err != nil {
		t.Fatalf("missing stage dump: %v", err)
	}
	if _, err := os.Stat(l.LogFile()); !os.IsNotExist(err) {
		t.Fatalf("diagnose must not write the launch log")
	}
}
