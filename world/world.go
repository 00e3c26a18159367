// Package world manages the runtime world state layered over the immutable
// campaign definitions: the player's current location, travel validation,
// quest instances, and campaign counters.
package world

import (
	"fmt"
	"sort"

	"github.com/okrause/emberfell/engine/dice"
	"github.com/okrause/emberfell/engine/entity"
	"github.com/okrause/emberfell/engine/quest"
	"github.com/okrause/emberfell/types"
)

// Defs holds the immutable campaign definitions produced by the loader.
type Defs struct {
	Game      types.GameDef
	Locations map[string]types.LocationDef
	Quests    []types.QuestDef
	Spawns    []types.SpawnDef
}

// World is the mutable campaign state outside the player aggregate.
type World struct {
	Defs            *Defs
	Current         string // current location ID
	Tracker         *quest.Tracker
	EnemiesDefeated int
}

// New creates a fresh world positioned at the campaign's starting location.
func New(defs *Defs) *World {
	return &World{
		Defs:    defs,
		Current: defs.Game.Start,
		Tracker: quest.NewTracker(defs.Quests),
	}
}

// Location returns the current location definition.
func (w *World) Location() types.LocationDef {
	return w.Defs.Locations[w.Current]
}

// Connections returns the current location's destinations in stable order.
func (w *World) Connections() []types.LocationDef {
	conns := append([]string(nil), w.Location().Connections...)
	sort.Strings(conns)
	out := make([]types.LocationDef, 0, len(conns))
	for _, id := range conns {
		if loc, ok := w.Defs.Locations[id]; ok {
			out = append(out, loc)
		}
	}
	return out
}

// TravelTo moves the player to the named location. The destination must be
// connected to the current location; anything else is rejected.
func (w *World) TravelTo(id string) error {
	for _, conn := range w.Location().Connections {
		if conn == id {
			if _, ok := w.Defs.Locations[id]; !ok {
				return fmt.Errorf("unknown location %q", id)
			}
			w.Current = id
			return nil
		}
	}
	return fmt.Errorf("no route from %s to %s", w.Current, id)
}

// Progress returns the campaign counters quest predicates evaluate against.
func (w *World) Progress() quest.Progress {
	return quest.Progress{
		EnemiesDefeated: w.EnemiesDefeated,
		Location:        w.Current,
	}
}

// SpawnEnemy generates an enemy for the player's level at the current
// location: a uniformly chosen spawn-table entry, the entry's level offset,
// ±1 jitter, plus the location's danger bias, floored at level 1.
func (w *World) SpawnEnemy(playerLevel int, src dice.Source) *entity.Combatant {
	spawn := dice.Pick(src, w.Defs.Spawns)
	level := playerLevel + spawn.Offset + dice.Between(src, -1, 1) + w.Location().Danger - 1
	if level < 1 {
		level = 1
	}
	return entity.NewEnemy(spawn.Name, level)
}
