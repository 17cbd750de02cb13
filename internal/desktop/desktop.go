// Package desktop installs the freedesktop.org launcher entry that starts
// PoreSippr from an application menu.
package desktop

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// FileName is the entry written into the application directory.
	FileName = "PoreSippr.desktop"
	// IconName is the icon expected next to the application.
	IconName = "cfia.jpg"
	// VersionFile holds the application's __version__.
	VersionFile = "version.py"
)

// Entry is a [Desktop Entry] group of type Application.
type Entry struct {
	Version    string
	Name       string
	Comment    string
	Exec       string
	Icon       string
	Terminal   bool
	Categories []string
}

// NewEntry returns the PoreSippr entry launching exec with the icon in appDir.
func NewEntry(version, exec, appDir string) Entry {
	return Entry{
		Version:    version,
		Name:       "PoreSippr",
		Comment:    "Run PoreSippr Application",
		Exec:       exec,
		Icon:       filepath.Join(appDir, IconName),
		Categories: []string{"Utility"},
	}
}

// String renders the entry in key order with a trailing newline.
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	fmt.Fprintf(&b, "Version=%s\n", e.Version)
	fmt.Fprintf(&b, "Name=%s\n", e.Name)
	fmt.Fprintf(&b, "Comment=%s\n", e.Comment)
	fmt.Fprintf(&b, "Exec=%s\n", QuoteExecArg(e.Exec))
	fmt.Fprintf(&b, "Icon=%s\n", e.Icon)
	fmt.Fprintf(&b, "Terminal=%t\n", e.Terminal)
	b.WriteString("Type=Application\n")
	b.WriteString("Categories=")
	for _, c := range e.Categories {
		b.WriteString(c)
		b.WriteString(";")
	}
	b.WriteString("\n")
	return b.String()
}

// execReserved are the characters that force an Exec argument into quotes.
const execReserved = " \t\n\"'\\><~|&;$*?#()`"

// QuoteExecArg renders one Exec= argument. Arguments with reserved
// characters are double quoted with ", `, $ and \ backslash-escaped, then
// backslashes are escaped again for the string value. A literal % becomes %%
// so it is not read as a field code.
func QuoteExecArg(arg string) string {
	arg = strings.ReplaceAll(arg, "%", "%%")
	if !strings.ContainsAny(arg, execReserved) {
		return arg
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range arg {
		switch r {
		case '"', '`', '$', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return strings.ReplaceAll(b.String(), `\`, `\\`)
}

var versionLine = regexp.MustCompile(`^__version__\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// ErrNoVersion is returned when a version file has no __version__ assignment.
var ErrNoVersion = errors.New("no __version__ assignment")

// ReadVersion returns the string assigned to __version__ in a Python module.
func ReadVersion(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("read version: %w", err)
	}
	defer f.Close()
	v, err := parseVersion(f)
	if err != nil {
		return "", fmt.Errorf("read version %s: %w", path, err)
	}
	return v, nil
}

func parseVersion(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := versionLine.FindStringSubmatch(strings.TrimSpace(sc.Text()))
		if m == nil {
			continue
		}
		if m[1] != "" {
			return m[1], nil
		}
		return m[2], nil
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", ErrNoVersion
}

// Write stores e at path. The entry is made executable, which desktop
// environments require before they trust a launcher.
func Write(path string, e Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(e.String()), 0o755); err != nil {
		return err
	}
	return os.Chmod(path, 0o755)
}

// Install copies the entry file at src into dir, creating dir, and returns
// the destination path.
func Install(src, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("install desktop entry: %w", err)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("install desktop entry: %w", err)
	}
	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("install desktop entry: %w", err)
	}
	dst := filepath.Join(dir, filepath.Base(src))
	if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("install desktop entry: %w", err)
	}
	return dst, nil
}

// ApplicationsDir is the per-user directory desktop environments scan.
func ApplicationsDir(home string) string {
	return filepath.Join(home, ".local", "share", "applications")
}
