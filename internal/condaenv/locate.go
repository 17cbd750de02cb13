package condaenv

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/config"
)

// Prefix is a located conda environment.
type Prefix struct {
	// Path is the absolute, cleaned environment prefix.
	Path string `json:"path"`
	// Name is the environment name when it lives in an envs directory,
	// "base" for the root install, otherwise empty.
	Name string `json:"name,omitempty"`
	// ByName is true when the caller asked for a name rather than a path.
	ByName bool `json:"byName,omitempty"`
}

// DefaultEnv is the value conda stores in CONDA_DEFAULT_ENV.
func (p Prefix) DefaultEnv() string {
	if p.ByName && p.Name != "" {
		return p.Name
	}
	return p.Path
}

// NotFoundError is returned when no environment matches the request. Its
// text matches what `conda activate` prints so log readers see familiar output.
type NotFoundError struct {
	Target string
	ByName bool
}

func (e *NotFoundError) Error() string {
	if e.ByName {
		return "EnvironmentNameNotFound: Could not find conda environment: " + e.Target
	}
	return "EnvironmentLocationNotFound: Not a conda environment: " + e.Target
}

// Locator resolves an environment name or path against a conda install.
type Locator struct {
	// Root is the conda installation directory (the "base" prefix).
	Root string
	// Home is used for ~/.condarc, ~/.conda and "~" expansion.
	Home string
}

// IsPrefix reports whether dir looks like a conda environment.
func IsPrefix(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "conda-meta"))
	return err == nil && info.IsDir()
}

// Locate resolves target, which is either a path (absolute, relative or
// home-relative) or a bare environment name.
func (l Locator) Locate(target string) (Prefix, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return Prefix{}, &NotFoundError{Target: target, ByName: true}
	}
	if !isName(target) {
		p := filepath.Clean(config.ExpandHome(target, l.Home))
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		if !IsPrefix(p) {
			return Prefix{}, &NotFoundError{Target: target}
		}
		return Prefix{Path: p, Name: l.nameFor(p)}, nil
	}
	if target == "base" && l.Root != "" && IsPrefix(l.Root) {
		return Prefix{Path: filepath.Clean(l.Root), Name: "base", ByName: true}, nil
	}
	dirs, err := l.EnvsDirs()
	if err != nil {
		return Prefix{}, err
	}
	for _, d := range dirs {
		p := filepath.Join(d, target)
		if IsPrefix(p) {
			return Prefix{Path: p, Name: target, ByName: true}, nil
		}
	}
	listed, err := ReadEnvironmentsTxt(filepath.Join(l.Home, ".conda", "environments.txt"))
	if err != nil {
		return Prefix{}, err
	}
	for _, p := range listed {
		if filepath.Base(p) == target && IsPrefix(p) {
			return Prefix{Path: p, Name: target, ByName: true}, nil
		}
	}
	return Prefix{}, &NotFoundError{Target: target, ByName: true}
}

// EnvsDirs returns the directories searched for named environments in
// priority order, without duplicates.
func (l Locator) EnvsDirs() ([]string, error) {
	var dirs []string
	seen := map[string]bool{}
	add := func(ds ...string) {
		for _, d := range ds {
			if d == "" || seen[d] {
				continue
			}
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	for _, rc := range l.condarcFiles() {
		ds, err := ReadEnvsDirs(rc, l.Home)
		if err != nil {
			return nil, err
		}
		add(ds...)
	}
	if l.Root != "" {
		add(filepath.Join(filepath.Clean(l.Root), "envs"))
	}
	if l.Home != "" {
		add(filepath.Join(l.Home, ".conda", "envs"))
	}
	return dirs, nil
}

func (l Locator) condarcFiles() []string {
	var files []string
	if l.Home != "" {
		files = append(files, filepath.Join(l.Home, ".condarc"))
	}
	if l.Root != "" {
		files = append(files, filepath.Join(l.Root, ".condarc"))
	}
	return files
}

func (l Locator) nameFor(p string) string {
	if l.Root != "" && filepath.Clean(l.Root) == p {
		return "base"
	}
	if filepath.Base(filepath.Dir(p)) == "envs" {
		return filepath.Base(p)
	}
	return ""
}

func isName(target string) bool {
	return !strings.ContainsAny(target, `/\`) && !strings.HasPrefix(target, "~") &&
		!strings.HasPrefix(target, "$") && target != "." && target != ".."
}
