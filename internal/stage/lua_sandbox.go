package stage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

const (
	defaultLuaTimeoutMs        = 2000
	defaultLuaInstructionLimit = 1000000
	defaultLuaMemoryLimitBytes = 8 << 20

	sandboxTimeoutViolation     = "sandbox timeout"
	sandboxInstructionViolation = "sandbox instruction limit"
	sandboxMemoryViolation      = "sandbox memory limit"
)

// luaSandbox bounds a hook script. Only the base, string, table and math
// libraries are opened; no io, os or package access.
type luaSandbox struct {
	TimeoutMs        int
	InstructionLimit int
	MemoryLimitBytes int
}

func defaultLuaSandbox() luaSandbox {
	return luaSandbox{
		TimeoutMs:        defaultLuaTimeoutMs,
		InstructionLimit: defaultLuaInstructionLimit,
		MemoryLimitBytes: defaultLuaMemoryLimitBytes,
	}
}

func newSandboxLuaState(cfg luaSandbox) *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:     true,
		RegistrySize:     256,
		RegistryMaxSize:  registryMaxFromMemory(cfg.MemoryLimitBytes),
		RegistryGrowStep: 0,
	})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.StringLibName, lua.OpenString},
		{lua.TabLibName, lua.OpenTable},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	// base opens dofile/loadfile/require-like helpers that reach the filesystem.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func registryMaxFromMemory(memoryLimitBytes int) int {
	if memoryLimitBytes <= 0 {
		return 256
	}
	n := memoryLimitBytes / 64
	if n < 128 {
		n = 128
	}
	if n > 4096 {
		n = 4096
	}
	return n
}

// instructionLimitWouldTrip is a static estimate from the script length;
// gopher-lua has no instruction counter hook. Loops are bounded by the
// timeout instead.
func instructionLimitWouldTrip(code string, instructionLimit int) bool {
	if instructionLimit <= 0 {
		return false
	}
	return len(code)*10 > instructionLimit
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "deadline") || strings.Contains(s, "context canceled")
}

// runLuaScriptWithSandbox runs code with globals set and returns its single
// result converted to Go values. A non-empty violation names the limit hit.
func runLuaScriptWithSandbox(ctx context.Context, cfg luaSandbox, globals map[string]any, code string) (any, string, error) {
	if instructionLimitWouldTrip(code, cfg.InstructionLimit) {
		return nil, sandboxInstructionViolation, nil
	}
	L := newSandboxLuaState(cfg)
	defer L.Close()

	if cfg.TimeoutMs > 0 {
		tctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TimeoutMs)*time.Millisecond)
		defer cancel()
		L.SetContext(tctx)
	}
	for k, v := range globals {
		L.SetGlobal(k, toLValue(L, v))
	}

	fn, err := L.LoadString(code)
	if err != nil {
		return nil, "", err
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		if isTimeoutError(err) {
			return nil, sandboxTimeoutViolation, nil
		}
		if strings.Contains(strings.ToLower(err.Error()), "registry overflow") {
			return nil, sandboxMemoryViolation, nil
		}
		return nil, "", err
	}
	ret := L.Get(-1)
	L.Pop(1)
	return fromLValue(ret), "", nil
}

func luaViolation(stageName, violation string) error {
	return fmt.Errorf("%s: %s", stageName, violation)
}
