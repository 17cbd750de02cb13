package stage

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// envHookRunner runs the configured Lua hook over the environment. The hook
// sees `env`, `prefix` and `profile` and returns a table: string or number
// values set variables, false unsets them. Failures leave env untouched.
func envHookRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	out := in
	cfg := cfgOf(in)
	code := strings.TrimSpace(cfg.Hooks.Env)
	if code == "" {
		recordSkipped(&out, EnvHook)
		return out, nil
	}
	if !strings.Contains(code, "return") {
		code = "return (" + code + ")"
	}
	prefix := ""
	if m := in.Meta; m != nil && m.Environment != nil && m.Environment.Activated && m.Environment.Prefix != nil {
		prefix = m.Environment.Prefix.Path
	}
	globals := map[string]any{
		"env":     map[string]string(out.Env),
		"prefix":  prefix,
		"profile": cfg.Profile,
	}

	res, violation, err := runLuaScriptWithSandbox(ctx, defaultLuaSandbox(), globals, code)
	if violation != "" {
		err = luaViolation(EnvHook, violation)
	}
	var changes map[string]*string
	if err == nil {
		changes, err = hookChanges(res)
	}
	if err != nil {
		deps.logger().Error("environment hook failed", "err", err)
		recordStep(&out, EnvHook, 1, err.Error())
		return out, nil
	}

	next := out.Env.Clone()
	keys := make([]string, 0, len(changes))
	for k, v := range changes {
		keys = append(keys, k)
		if v == nil {
			delete(next, k)
		} else {
			next[k] = *v
		}
	}
	sort.Strings(keys)
	deps.logger().Debug("environment hook applied", "vars", strings.Join(keys, ","))
	out.Env = next
	recordStep(&out, EnvHook, 0, "")
	return out, nil
}

// hookChanges validates the hook result; a nil pointer means unset.
func hookChanges(res any) (map[string]*string, error) {
	switch x := res.(type) {
	case nil:
		return nil, nil
	case []any:
		if len(x) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("env-hook: expected a table of variables, got a list")
	case map[string]any:
		out := make(map[string]*string, len(x))
		for k, v := range x {
			switch val := v.(type) {
			case string:
				s := val
				out[k] = &s
			case float64:
				s := strconv.FormatFloat(val, 'f', -1, 64)
				out[k] = &s
			case bool:
				if val {
					return nil, fmt.Errorf("env-hook: invalid value for %s: true", k)
				}
				out[k] = nil
			default:
				return nil, fmt.Errorf("env-hook: invalid value for %s", k)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("env-hook: expected a table, got %T", res)
	}
}

func init() { Register(EnvHook, envHookRunner) }
