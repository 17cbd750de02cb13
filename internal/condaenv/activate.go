package condaenv

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// BinDirs returns the directories conda puts on PATH for prefix.
func BinDirs(prefix string) []string {
	if runtime.GOOS == "windows" {
		return []string{
			prefix,
			filepath.Join(prefix, "Library", "mingw-w64", "bin"),
			filepath.Join(prefix, "Library", "usr", "bin"),
			filepath.Join(prefix, "Library", "bin"),
			filepath.Join(prefix, "Scripts"),
			filepath.Join(prefix, "bin"),
		}
	}
	return []string{filepath.Join(prefix, "bin")}
}

// InitVars returns the variables conda.sh exports when it is sourced from
// the install at root. Existing values in base are kept.
func InitVars(base Environ, root string) map[string]string {
	exe := filepath.Join(root, "bin", "conda")
	py := filepath.Join(root, "bin", "python")
	if runtime.GOOS == "windows" {
		exe = filepath.Join(root, "Scripts", "conda.exe")
		py = filepath.Join(root, "python.exe")
	}
	want := map[string]string{
		"CONDA_EXE":        exe,
		"CONDA_PYTHON_EXE": py,
		"_CE_CONDA":        "",
		"_CE_M":            "",
		"CONDA_SHLVL":      "0",
	}
	out := map[string]string{}
	for k, v := range want {
		if _, ok := base[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// Activate returns the environment after activating target on top of base.
// The currently active prefix, if any, is replaced on PATH and remembered in
// CONDA_PREFIX_<level>, as `conda activate` does without --stack.
func Activate(base Environ, target Prefix) Environ {
	out := base.Clone()
	level := shellLevel(base)
	old := base["CONDA_PREFIX"]

	parts := splitPath(base["PATH"])
	if old != "" {
		parts = removeDirs(parts, BinDirs(old))
	}
	parts = removeDirs(parts, BinDirs(target.Path))
	parts = append(BinDirs(target.Path), parts...)
	out["PATH"] = strings.Join(parts, string(os.PathListSeparator))

	if old != "" {
		out["CONDA_PREFIX_"+strconv.Itoa(level)] = old
	}
	out["CONDA_SHLVL"] = strconv.Itoa(level + 1)
	out["CONDA_PREFIX"] = target.Path
	out["CONDA_DEFAULT_ENV"] = target.DefaultEnv()
	out["CONDA_PROMPT_MODIFIER"] = "(" + target.DefaultEnv() + ") "
	return out
}

func shellLevel(env Environ) int {
	n, err := strconv.Atoi(strings.TrimSpace(env["CONDA_SHLVL"]))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func splitPath(p string) []string {
	if p == "" {
		return nil
	}
	return filepath.SplitList(p)
}

func removeDirs(parts, dirs []string) []string {
	drop := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		drop[filepath.Clean(d)] = true
	}
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" && drop[filepath.Clean(p)] {
			continue
		}
		out = append(out, p)
	}
	return out
}
