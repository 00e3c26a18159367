package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/okrause/emberfell/types"
	"github.com/okrause/emberfell/world"
)

// compile converts the collected Lua tables into immutable definitions.
func compile(coll *collector) (*world.Defs, error) {
	defs := &world.Defs{
		Locations: map[string]types.LocationDef{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game block defined")
	}
	defs.Game = types.GameDef{
		Title:   tableString(coll.game, "title"),
		Author:  tableString(coll.game, "author"),
		Version: tableString(coll.game, "version"),
		Start:   tableString(coll.game, "start"),
		Intro:   tableString(coll.game, "intro"),
	}

	for _, raw := range coll.locations {
		loc, err := compileLocation(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := defs.Locations[loc.ID]; dup {
			return nil, fmt.Errorf("duplicate location %q", loc.ID)
		}
		defs.Locations[loc.ID] = loc
	}

	for _, raw := range coll.quests {
		q, err := compileQuest(raw)
		if err != nil {
			return nil, err
		}
		defs.Quests = append(defs.Quests, q)
	}

	for _, s := range coll.spawns {
		defs.Spawns = append(defs.Spawns, types.SpawnDef{Name: s.name, Offset: s.offset})
	}

	return defs, nil
}

func compileLocation(raw rawDef) (types.LocationDef, error) {
	loc := types.LocationDef{
		ID:          raw.id,
		Name:        tableString(raw.table, "name"),
		Description: tableString(raw.table, "description"),
		Danger:      tableInt(raw.table, "danger", 1),
	}
	if loc.Name == "" {
		return loc, fmt.Errorf("location %q: missing name", raw.id)
	}

	if conns, ok := raw.table.RawGetString("connections").(*lua.LTable); ok {
		conns.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok {
				loc.Connections = append(loc.Connections, string(s))
			}
		})
	}

	if shopTbl, ok := raw.table.RawGetString("shop").(*lua.LTable); ok {
		shop := types.ShopDef{Name: tableString(shopTbl, "name")}
		if stock, ok := shopTbl.RawGetString("stock").(*lua.LTable); ok {
			var err error
			stock.ForEach(func(_, v lua.LValue) {
				itemTbl, ok := v.(*lua.LTable)
				if !ok {
					err = fmt.Errorf("location %q: shop stock entry is not an item", raw.id)
					return
				}
				shop.Stock = append(shop.Stock, compileItem(itemTbl))
			})
			if err != nil {
				return loc, err
			}
		}
		loc.Shop = &shop
	}

	return loc, nil
}

func compileQuest(raw rawDef) (types.QuestDef, error) {
	q := types.QuestDef{
		ID:          raw.id,
		Name:        tableString(raw.table, "name"),
		Description: tableString(raw.table, "description"),
	}
	if q.Name == "" {
		return q, fmt.Errorf("quest %q: missing name", raw.id)
	}

	objTbl, ok := raw.table.RawGetString("objective").(*lua.LTable)
	if !ok {
		return q, fmt.Errorf("quest %q: missing objective", raw.id)
	}
	q.Objective = types.Objective{
		Kind:     types.ObjectiveKind(tableString(objTbl, "kind")),
		Count:    tableInt(objTbl, "count", 0),
		Location: tableString(objTbl, "location"),
	}

	if rewardTbl, ok := raw.table.RawGetString("reward").(*lua.LTable); ok {
		q.RewardGold = tableInt(rewardTbl, "gold", 0)
		q.RewardExp = tableInt(rewardTbl, "exp", 0)
		if itemTbl, ok := rewardTbl.RawGetString("item").(*lua.LTable); ok {
			item := compileItem(itemTbl)
			q.RewardItem = &item
		}
	}

	return q, nil
}

func compileItem(tbl *lua.LTable) types.Item {
	return types.Item{
		Name:        tableString(tbl, "name"),
		Kind:        types.ItemKind(tableString(tbl, "kind")),
		Power:       tableInt(tbl, "power", 0),
		Description: tableString(tbl, "description"),
	}
}

func tableString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func tableInt(tbl *lua.LTable, key string, def int) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return def
}
