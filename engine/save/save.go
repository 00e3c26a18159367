// Package save implements the JSON snapshot codec for the persistence
// boundary. It produces and consumes pure data; reading and writing files
// is the front ends' job.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/okrause/emberfell/engine/entity"
	"github.com/okrause/emberfell/engine/quest"
	"github.com/okrause/emberfell/types"
	"github.com/okrause/emberfell/world"
)

// PlayerData is the serialized shape of a player.
type PlayerData struct {
	Name         string          `json:"name"`
	Archetype    types.Archetype `json:"archetype"`
	Level        int             `json:"level"`
	Exp          int             `json:"experience"`
	HP           int             `json:"hp"`
	MaxHP        int             `json:"max_hp"`
	MP           int             `json:"mp"`
	MaxMP        int             `json:"max_mp"`
	Strength     int             `json:"strength"`
	Intelligence int             `json:"intelligence"`
	Agility      int             `json:"agility"`
	Defense      int             `json:"defense"`
	Gold         int             `json:"gold"`
	Inventory    []types.Item    `json:"inventory"`
	Weapon       *types.Item     `json:"equipped_weapon,omitempty"`
	Armor        *types.Item     `json:"equipped_armor,omitempty"`
}

// WorldData is the serialized shape of the campaign state outside the
// player: current location, quest states keyed by quest name, counters.
type WorldData struct {
	Location        string                  `json:"location"`
	Quests          map[string]quest.Status `json:"quests"`
	EnemiesDefeated int                     `json:"enemies_defeated"`
}

// Data is the complete save snapshot.
type Data struct {
	Version     string     `json:"version"`
	Game        string     `json:"game"`
	Player      PlayerData `json:"player"`
	World       WorldData  `json:"world"`
	RNGSeed     int64      `json:"rng_seed"`
	RNGPosition int64      `json:"rng_position"`
}

// Capture builds a snapshot from live state.
func Capture(p *entity.Combatant, w *world.World, seed, position int64) Data {
	quests := make(map[string]quest.Status, len(w.Tracker.Quests))
	for _, q := range w.Tracker.Quests {
		quests[q.Name] = q.Status
	}
	inv := append([]types.Item(nil), p.Inventory...)
	if inv == nil {
		inv = []types.Item{}
	}
	return Data{
		Version: w.Defs.Game.Version,
		Game:    w.Defs.Game.Title,
		Player: PlayerData{
			Name:         p.Name,
			Archetype:    p.Archetype,
			Level:        p.Level,
			Exp:          p.Exp,
			HP:           p.HP,
			MaxHP:        p.MaxHP,
			MP:           p.MP,
			MaxMP:        p.MaxMP,
			Strength:     p.Strength,
			Intelligence: p.Intelligence,
			Agility:      p.Agility,
			Defense:      p.Defense,
			Gold:         p.Gold,
			Inventory:    inv,
			Weapon:       p.Weapon,
			Armor:        p.Armor,
		},
		World: WorldData{
			Location:        w.Current,
			Quests:          quests,
			EnemiesDefeated: w.EnemiesDefeated,
		},
		RNGSeed:     seed,
		RNGPosition: position,
	}
}

// Marshal serializes a snapshot to indented JSON.
func Marshal(d Data) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal deserializes a snapshot, normalizing nil collections so callers
// never see them.
func Unmarshal(data []byte) (Data, error) {
	var d Data
	if err := json.Unmarshal(data, &d); err != nil {
		return Data{}, fmt.Errorf("decoding save data: %w", err)
	}
	if d.Player.Inventory == nil {
		d.Player.Inventory = []types.Item{}
	}
	if d.World.Quests == nil {
		d.World.Quests = map[string]quest.Status{}
	}
	return d, nil
}

// Apply reconstructs a player and world from a snapshot by replaying the
// saved fields onto freshly constructed defaults. Unknown locations fall
// back to the campaign start; quest states match by quest name.
func Apply(d Data, defs *world.Defs) (*entity.Combatant, *world.World) {
	p := entity.NewPlayer(d.Player.Name, d.Player.Archetype)
	p.Level = d.Player.Level
	p.Exp = d.Player.Exp
	p.HP = d.Player.HP
	p.MaxHP = d.Player.MaxHP
	p.MP = d.Player.MP
	p.MaxMP = d.Player.MaxMP
	p.Strength = d.Player.Strength
	p.Intelligence = d.Player.Intelligence
	p.Agility = d.Player.Agility
	p.Defense = d.Player.Defense
	p.Gold = d.Player.Gold
	p.Inventory = append([]types.Item{}, d.Player.Inventory...)
	p.Weapon = d.Player.Weapon
	p.Armor = d.Player.Armor

	w := world.New(defs)
	if _, ok := defs.Locations[d.World.Location]; ok {
		w.Current = d.World.Location
	}
	w.EnemiesDefeated = d.World.EnemiesDefeated
	for _, q := range w.Tracker.Quests {
		if status, ok := d.World.Quests[q.Name]; ok {
			q.Status = status
		}
	}
	return p, w
}
