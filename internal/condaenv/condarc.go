package condaenv

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OLC-Bioinformatics/PoreSippr-GUI/internal/config"
)

// condarc is the part of a .condarc file the locator cares about.
type condarc struct {
	EnvsDirs []string `yaml:"envs_dirs"`
}

// ReadEnvsDirs returns envs_dirs from a .condarc file with "~" and $HOME
// expanded. A missing file yields no directories and no error.
func ReadEnvsDirs(path, home string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var rc condarc
	if err := yaml.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("invalid condarc %s: %v", path, err)
	}
	out := make([]string, 0, len(rc.EnvsDirs))
	for _, d := range rc.EnvsDirs {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		out = append(out, filepath.Clean(config.ExpandHome(d, home)))
	}
	return out, nil
}

// ReadEnvironmentsTxt returns the prefixes listed in ~/.conda/environments.txt.
func ReadEnvironmentsTxt(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, filepath.Clean(line))
	}
	return out, sc.Err()
}
