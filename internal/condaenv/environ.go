package condaenv

import (
	"sort"
	"strings"
)

// Environ is a process environment keyed by variable name.
type Environ map[string]string

// ParseEnviron converts KEY=VALUE entries; entries without '=' or with an
// empty name are skipped. Later entries win.
func ParseEnviron(entries []string) Environ {
	env := make(Environ, len(entries))
	for _, kv := range entries {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			continue
		}
		env[kv[:i]] = kv[i+1:]
	}
	return env
}

// Clone returns an independent copy.
func (e Environ) Clone() Environ {
	out := make(Environ, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Overlay returns a copy of e with overlay applied on top.
func (e Environ) Overlay(overlay map[string]string) Environ {
	out := e.Clone()
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// Slice returns KEY=VALUE entries sorted by name.
func (e Environ) Slice() []string {
	keys := e.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+e[k])
	}
	return out
}

// Keys returns the sorted variable names.
func (e Environ) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Diff reports the names whose value was added, changed or removed going
// from e to next, each sorted.
func (e Environ) Diff(next Environ) (added, changed, removed []string) {
	for k, v := range next {
		old, ok := e[k]
		switch {
		case !ok:
			added = append(added, k)
		case old != v:
			changed = append(changed, k)
		}
	}
	for k := range e {
		if _, ok := next[k]; !ok {
			removed = append(removed, k)
		}
	}
	sort.Strings(added)
	sort.Strings(changed)
	sort.Strings(removed)
	return added, changed, removed
}
