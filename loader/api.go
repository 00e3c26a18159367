package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the content DSL constructors as Lua globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Location "id" { ... } is curried: Location("id") returns a function
	// that takes the definition table.
	L.SetGlobal("Location", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.locations = append(coll.locations, rawDef{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Quest "id" { ... }, curried like Location.
	L.SetGlobal("Quest", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.quests = append(coll.quests, rawDef{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Spawn("Goblin", 0): one enemy spawn-table entry with a level offset.
	L.SetGlobal("Spawn", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		offset := int(L.CheckNumber(2))
		coll.spawns = append(coll.spawns, rawSpawn{name: name, offset: offset})
		return 0
	}))

	// Shop("name", { items... }) returns a shop table for a location.
	L.SetGlobal("Shop", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		stock := L.CheckTable(2)
		tbl := L.NewTable()
		tbl.RawSetString("name", lua.LString(name))
		tbl.RawSetString("stock", stock)
		L.Push(tbl)
		return 1
	}))

	// Item constructors: Weapon/Armor/Potion/Relic(name, power, description).
	for kind, global := range map[string]string{
		"weapon": "Weapon",
		"armor":  "Armor",
		"potion": "Potion",
		"relic":  "Relic",
	} {
		kind := kind
		L.SetGlobal(global, L.NewFunction(func(L *lua.LState) int {
			tbl := L.NewTable()
			tbl.RawSetString("name", lua.LString(L.CheckString(1)))
			tbl.RawSetString("kind", lua.LString(kind))
			tbl.RawSetString("power", L.CheckNumber(2))
			tbl.RawSetString("description", lua.LString(L.OptString(3, "")))
			L.Push(tbl)
			return 1
		}))
	}

	// DefeatEnemies(n): cumulative enemies defeated >= n.
	L.SetGlobal("DefeatEnemies", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString("defeat"))
		tbl.RawSetString("count", L.CheckNumber(1))
		L.Push(tbl)
		return 1
	}))

	// ReachLocation("id"): current location == id.
	L.SetGlobal("ReachLocation", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("kind", lua.LString("reach"))
		tbl.RawSetString("location", lua.LString(L.CheckString(1)))
		L.Push(tbl)
		return 1
	}))
}
