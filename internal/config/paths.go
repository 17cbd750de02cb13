package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading "~" and any $HOME/${HOME} reference using home.
// Other variables are left untouched.
func ExpandHome(p, home string) string {
	if p == "" {
		return p
	}
	if p == "~" {
		p = home
	} else if strings.HasPrefix(p, "~/") {
		p = filepath.Join(home, p[2:])
	}
	return os.Expand(p, func(name string) string {
		if name == "HOME" {
			return home
		}
		return "$" + name
	})
}
