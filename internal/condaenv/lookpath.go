package condaenv

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNotFound is returned by LookPath when no executable matches.
var ErrNotFound = errors.New("executable file not found in $PATH")

// LookPath searches pathList (a PATH value) for an executable called name.
// Unlike exec.LookPath it never consults the launcher's own PATH, so the
// result reflects the activated environment. Relative and empty PATH entries
// are taken relative to workDir (the current directory when empty), the
// directory the program will run in. The result is always absolute.
func LookPath(name, pathList, workDir string) (string, error) {
	if strings.ContainsAny(name, `/\`) {
		p := absUnder(workDir, name)
		if err := findExecutable(p); err != nil {
			return "", err
		}
		return p, nil
	}
	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			dir = "."
		}
		for _, cand := range candidates(absUnder(workDir, filepath.Join(dir, name))) {
			if findExecutable(cand) == nil {
				return cand, nil
			}
		}
	}
	return "", ErrNotFound
}

func absUnder(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	if dir != "" {
		p = filepath.Join(dir, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func candidates(p string) []string {
	if runtime.GOOS != "windows" || filepath.Ext(p) != "" {
		return []string{p}
	}
	return []string{p + ".exe", p + ".bat", p + ".cmd", p}
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	m := d.Mode()
	if m.IsDir() {
		return fs.ErrPermission
	}
	if runtime.GOOS == "windows" || m&0o111 != 0 {
		return nil
	}
	return fs.ErrPermission
}
