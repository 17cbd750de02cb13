package prepare

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	appDir  string
	appsDir string
	exe     string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		appDir:  filepath.Join(root, "PoreSippr"),
		appsDir: filepath.Join(root, "home", ".local", "share", "applications"),
	}
	f.exe = filepath.Join(f.appDir, "poresippr")
	require.NoError(t, os.MkdirAll(f.appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.appDir, "version.py"), []byte("__version__ = '0.3.0'\n"), 0o644))
	return f
}

func (f fixture) exec(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--applications-dir", f.appsDir, "--exec", f.exe}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func loadWritten(t *testing.T, f fixture) config.Config {
	t.Helper()
	cfg, path, err := config.Load(config.LoadOptions{SearchDirs: []string{f.appDir}})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(f.appDir, config.FileName), path)
	return cfg
}

func TestPrepare_PlainProfile(t *testing.T) {
	f := newFixture(t)
	out, err := f.exec(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Desktop entry created and copied to "+f.appsDir)

	installed, err := os.ReadFile(filepath.Join(f.appsDir, "PoreSippr.desktop"))
	require.NoError(t, err)
	assert.Contains(t, string(installed), "Version=0.3.0\n")
	assert.Contains(t, string(installed), "Exec="+f.exe+"\n")
	assert.Contains(t, string(installed), "Icon="+filepath.Join(f.appDir, "cfia.jpg")+"\n")

	cfg := loadWritten(t, f)
	assert.Equal(t, config.ProfilePlain, cfg.Profile)
	assert.Equal(t, f.appDir, cfg.AppDir)
}

func TestPrepare_CondaProfileWithPath(t *testing.T) {
	f := newFixture(t)
	_, err := f.exec(t, "--app-dir", f.appDir, "/opt/envs/poresippr")
	require.NoError(t, err)

	cfg := loadWritten(t, f)
	assert.Equal(t, config.ProfileConda, cfg.Profile)
	assert.Equal(t, "/opt/envs/poresippr", cfg.Env)
}

func TestPrepare_TestAliasUsesDefaultEnvironment(t *testing.T) {
	f := newFixture(t)
	_, err := f.exec(t, "test")
	require.NoError(t, err)

	cfg := loadWritten(t, f)
	assert.Equal(t, config.ProfileConda, cfg.Profile)
	assert.Equal(t, "$HOME/miniconda/envs/poresippr_gui", cfg.Env)
}

func TestPrepare_MissingVersionFile(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(f.appDir, "version.py")))
	_, err := f.exec(t)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, filepath.Join(f.appsDir, "PoreSippr.desktop"))
}
