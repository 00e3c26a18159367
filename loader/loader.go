// Package loader reads campaign content from Lua files: the location
// graph, shop catalogs, quest definitions and the enemy spawn table. The
// Lua VM is sandboxed and discarded after loading; the engine only ever
// sees the compiled immutable definitions.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/okrause/emberfell/world"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game      *lua.LTable
	locations []rawDef
	quests    []rawDef
	spawns    []rawSpawn
}

type rawDef struct {
	id    string
	table *lua.LTable
}

type rawSpawn struct {
	name   string
	offset int
}

// Load reads all .lua files from dir, compiles them into campaign
// definitions, validates references, and returns the immutable Defs.
func Load(dir string) (*world.Defs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// game.lua first, rest alphabetical, so metadata is in place before
	// content files reference it.
	sort.Slice(luaFiles, func(i, j int) bool {
		if luaFiles[i] == "game.lua" {
			return true
		}
		if luaFiles[j] == "game.lua" {
			return false
		}
		return luaFiles[i] < luaFiles[j]
	})

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling campaign data: %w", err)
	}
	if err := validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that would let content files touch the host.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
	// Remove math.randomseed: content must not perturb determinism.
	if mathTbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		mathTbl.RawSetString("randomseed", lua.LNil)
	}
}
