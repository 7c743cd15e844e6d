// Package script embeds a Lua VM that exposes the calculator to user
// scripts through the global "tally" table.
package script

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	glua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// CoreScripts holds the Lua half of the tally API (hooks, helpers).
//
//go:embed core/*.lua
var CoreScripts embed.FS

// cachedChunk is a compiled script file and the stat it was compiled from.
type cachedChunk struct {
	proto   *glua.FunctionProto
	size    int64
	modTime time.Time
}

// Engine wraps gopher-lua and manages the VM lifecycle.
// It is a pure mechanism: it knows how to run Lua code and expose APIs.
// Loading order and the config directory are the session's business.
type Engine struct {
	L *glua.LState

	// Compiled file cache; survives Init so reloads only recompile
	// files that changed.
	protoCache *lru.Cache[string, cachedChunk]

	// Cached table reference
	tallyTable *glua.LTable

	calc    CalcService
	history HistoryService
	ui      UIService
	sys     SystemService

	binds *bindRegistry
}

// NewEngine creates an Engine with the given services.
func NewEngine(calc CalcService, history HistoryService, ui UIService, sys SystemService) *Engine {
	cache, _ := lru.New[string, cachedChunk](64)
	return &Engine{
		protoCache: cache,
		calc:       calc,
		history:    history,
		ui:         ui,
		sys:        sys,
		binds:      newBindRegistry(),
	}
}

// --- Lifecycle ---

// Init initializes (or re-initializes) the Lua VM with fresh state.
// It registers the Go API but does NOT load any scripts.
func (e *Engine) Init() error {
	if e.L != nil {
		e.L.Close()
	}

	e.L = glua.NewState()
	e.binds = newBindRegistry()

	e.registerAPIs()
	return nil
}

// Close cleans up the Lua state.
func (e *Engine) Close() {
	if e.L != nil {
		e.L.Close()
		e.L = nil
	}
	e.tallyTable = nil
}

// LoadCore runs the embedded core scripts in name order.
func (e *Engine) LoadCore() error {
	entries, err := fs.ReadDir(CoreScripts, "core")
	if err != nil {
		return fmt.Errorf("reading core scripts: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := CoreScripts.ReadFile("core/" + file)
		if err != nil {
			return fmt.Errorf("core/%s: %w", file, err)
		}
		if err := e.DoString(file, string(content)); err != nil {
			return fmt.Errorf("core/%s: %w", file, err)
		}
	}
	return nil
}

// --- Execution Primitives ---

// DoString executes a raw string of Lua code.
// The name parameter is used for stack traces.
func (e *Engine) DoString(name, code string) error {
	fn, err := e.L.Load(strings.NewReader(code), name)
	if err != nil {
		return err
	}
	e.L.Push(fn)
	return e.L.PCall(0, 0, nil)
}

// DoFile executes a Lua file from the filesystem.
// It temporarily adjusts package.path to allow local requires.
func (e *Engine) DoFile(path string) error {
	path = expandTilde(path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	proto, err := e.compile(absPath)
	if err != nil {
		return err
	}

	// Temporarily prepend script's directory to package.path
	pkg := e.L.GetGlobal("package").(*glua.LTable)
	oldPath := e.L.GetField(pkg, "path").String()
	newPath := filepath.Dir(absPath) + "/?.lua;" + oldPath
	e.L.SetField(pkg, "path", glua.LString(newPath))

	e.L.Push(e.L.NewFunctionFromProto(proto))
	err = e.L.PCall(0, 0, nil)

	// Restore original path
	e.L.SetField(pkg, "path", glua.LString(oldPath))

	return err
}

// compile returns the compiled chunk for path, reusing the cached
// proto while the file's size and modification time are unchanged.
func (e *Engine) compile(path string) (*glua.FunctionProto, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if c, ok := e.protoCache.Get(path); ok && c.size == info.Size() && c.modTime.Equal(info.ModTime()) {
		return c.proto, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	chunk, err := parse.Parse(bufio.NewReader(f), path)
	if err != nil {
		return nil, err
	}
	proto, err := glua.Compile(chunk, path)
	if err != nil {
		return nil, err
	}

	e.protoCache.Add(path, cachedChunk{proto: proto, size: info.Size(), modTime: info.ModTime()})
	return proto, nil
}

// CachedFiles returns the number of compiled files held in the cache.
func (e *Engine) CachedFiles() int {
	return e.protoCache.Len()
}

// --- Hooks ---

// CallHook calls tally.hooks.call(event, args...).
// Errors raised by handlers are reported through the "error" hook by
// the core script; a missing hooks table is ignored.
func (e *Engine) CallHook(event string, args ...string) {
	fn := e.getHooksCall()
	if fn == glua.LNil {
		return
	}

	luaArgs := make([]glua.LValue, len(args)+1)
	luaArgs[0] = glua.LString(event)
	for i, arg := range args {
		luaArgs[i+1] = glua.LString(arg)
	}

	e.L.CallByParam(glua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, luaArgs...)
}

// SetConfigDir exposes the configuration directory as tally.config_dir.
func (e *Engine) SetConfigDir(dir string) {
	if e.tallyTable == nil {
		return
	}
	e.L.SetField(e.tallyTable, "config_dir", glua.LString(dir))
}

// --- API Registration ---

func (e *Engine) registerAPIs() {
	e.tallyTable = e.L.NewTable()
	e.L.SetGlobal("tally", e.tallyTable)

	e.registerCoreFuncs()
	e.registerCalcFuncs()
	e.registerStateFuncs()
	e.registerHistoryFuncs()
	e.registerBindFuncs()
}

// getHooksCall returns tally.hooks.call, or LNil before the core
// scripts have run.
func (e *Engine) getHooksCall() glua.LValue {
	if e.L == nil || e.tallyTable == nil {
		return glua.LNil
	}
	hooks, ok := e.L.GetField(e.tallyTable, "hooks").(*glua.LTable)
	if !ok {
		return glua.LNil
	}
	fn := e.L.GetField(hooks, "call")
	if fn.Type() != glua.LTFunction {
		return glua.LNil
	}
	return fn
}

// expandTilde expands ~ to home directory.
func expandTilde(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
