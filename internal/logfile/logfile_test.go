package logfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_TruncateReplacesPreviousRun(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "run.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("previous run\n"), 0o644))

	f, err := Open(p, Truncate)
	require.NoError(t, err)
	_, _ = f.WriteString("new\n")
	require.NoError(t, f.Close())

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(b))
}

func TestOpen_AppendKeepsPreviousRun(t *testing.T) {
	p := filepath.Join(t.TempDir(), "run.log")
	require.NoError(t, os.WriteFile(p, []byte("old\n"), 0o644))

	f, err := Open(p, Append)
	require.NoError(t, err)
	_, _ = f.WriteString("new\n")
	require.NoError(t, f.Close())

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "old\nnew\n", string(b))
}

func TestOpen_CreatesParents(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "run.log")
	f, err := Open(p, Truncate)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, p)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open("", Truncate)
	assert.Error(t, err)
	_, err = Open(filepath.Join(t.TempDir(), "x.log"), Mode("rotate"))
	assert.Error(t, err)

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	_, err = Open(filepath.Join(blocker, "run.log"), Truncate)
	assert.Error(t, err)
}

func TestNewLogger_LevelsAndText(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, false)
	l.Info("Running application...")
	l.Debug("hidden")
	assert.Contains(t, buf.String(), "Running application...")
	assert.NotContains(t, buf.String(), "hidden")

	buf.Reset()
	NewLogger(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
