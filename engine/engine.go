// Package engine is the combat-resolution and character-progression core.
// The Game orchestrator ties the player, the world and the random source
// together so that all three front ends stay thin adapters over the same
// contract.
package engine

import (
	"fmt"

	"github.com/okrause/emberfell/engine/dice"
	"github.com/okrause/emberfell/engine/entity"
	"github.com/okrause/emberfell/engine/progress"
	"github.com/okrause/emberfell/engine/quest"
	"github.com/okrause/emberfell/engine/save"
	"github.com/okrause/emberfell/types"
	"github.com/okrause/emberfell/world"
)

// Encounter probabilities, in percent.
const (
	exploreEncounterChance = 70
	exploreGoldChance      = 30
	travelAmbushChance     = 40
)

// Game is one campaign session: a player, the world, and the session RNG.
// Not safe for concurrent use; callers serialize all access.
type Game struct {
	Player *entity.Combatant
	World  *world.World
	RNG    *dice.RNG

	// LootChance is the victory drop rate applied to every encounter this
	// session starts.
	LootChance int
}

// NewGame creates a fresh campaign with a newly created player.
func NewGame(defs *world.Defs, name string, archetype types.Archetype, seed int64) *Game {
	return &Game{
		Player:     entity.NewPlayer(name, archetype),
		World:      world.New(defs),
		RNG:        dice.New(seed),
		LootChance: DefaultLootChance,
	}
}

// Restore rebuilds a campaign session from a save snapshot, including the
// RNG at its saved draw position.
func Restore(defs *world.Defs, d save.Data) *Game {
	p, w := save.Apply(d, defs)
	return &Game{
		Player:     p,
		World:      w,
		RNG:        dice.Restore(d.RNGSeed, d.RNGPosition),
		LootChance: DefaultLootChance,
	}
}

// Snapshot captures the session as pure data for the persistence boundary.
func (g *Game) Snapshot() save.Data {
	return save.Capture(g.Player, g.World, g.RNG.Seed(), g.RNG.Position())
}

// StartEncounter spawns an enemy for the current location and opens an
// encounter against it.
func (g *Game) StartEncounter() *Encounter {
	enemy := g.World.SpawnEnemy(g.Player.Level, g.RNG)
	e := NewEncounter(g.Player, enemy, g.RNG)
	e.LootChance = g.LootChance
	return e
}

// ExploreResult is what poking around the current location produced:
// either an encounter, a small gold find, or nothing.
type ExploreResult struct {
	Encounter *Encounter
	FoundGold int
}

// Explore rolls a random encounter at the current location. Without an
// encounter there is a smaller chance of finding a little gold.
func (g *Game) Explore() ExploreResult {
	if dice.Chance(g.RNG, exploreEncounterChance) {
		return ExploreResult{Encounter: g.StartEncounter()}
	}
	if dice.Chance(g.RNG, exploreGoldChance) {
		gold := dice.Between(g.RNG, 5, 20)
		g.Player.Gold += gold
		return ExploreResult{FoundGold: gold}
	}
	return ExploreResult{}
}

// Travel moves the player to a connected location and may return an ambush
// encounter. Quest objectives are re-evaluated against the new location
// before any ambush resolves.
func (g *Game) Travel(locationID string) (ambush *Encounter, completed []QuestCompletion, err error) {
	if err := g.World.TravelTo(locationID); err != nil {
		return nil, nil, fmt.Errorf("traveling: %w", err)
	}
	completed = g.evaluateQuests()
	if dice.Chance(g.RNG, travelAmbushChance) {
		ambush = g.StartEncounter()
	}
	return ambush, completed, nil
}

// Rest fully restores the player's HP and MP.
func (g *Game) Rest() {
	g.Player.HP = g.Player.MaxHP
	g.Player.MP = g.Player.MaxMP
}

// QuestCompletion reports a quest that completed and whether its experience
// reward leveled the player.
type QuestCompletion struct {
	Quest     *quest.Quest
	LeveledUp bool
}

// RecordVictory bumps the campaign's defeated counter after a won encounter
// and re-evaluates quest objectives.
func (g *Game) RecordVictory() []QuestCompletion {
	g.World.EnemiesDefeated++
	return g.evaluateQuests()
}

// evaluateQuests runs the tracker against current campaign progress and
// grants rewards for newly completed quests through the same path as
// combat victory.
func (g *Game) evaluateQuests() []QuestCompletion {
	var out []QuestCompletion
	for _, q := range g.World.Tracker.EvaluateAll(g.World.Progress()) {
		leveled := progress.GrantReward(g.Player, q.RewardGold, q.RewardExp, q.RewardItem)
		out = append(out, QuestCompletion{Quest: q, LeveledUp: leveled})
	}
	return out
}

// Shop returns the current location's shop, or nil.
func (g *Game) Shop() *types.ShopDef {
	return g.World.Location().Shop
}
