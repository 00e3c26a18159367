package engine

import (
	"fmt"

	"github.com/okrause/emberfell/engine/dice"
	"github.com/okrause/emberfell/engine/entity"
	"github.com/okrause/emberfell/engine/progress"
	"github.com/okrause/emberfell/types"
)

// Phase is the encounter state machine's state.
type Phase int

const (
	PlayerTurn Phase = iota
	EnemyTurn
	Victory
	Defeat
	Escaped
)

// Terminal reports whether the encounter has resolved.
func (p Phase) Terminal() bool {
	return p == Victory || p == Defeat || p == Escaped
}

func (p Phase) String() string {
	switch p {
	case PlayerTurn:
		return "player turn"
	case EnemyTurn:
		return "enemy turn"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	case Escaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// ActionKind enumerates the player's combat actions.
type ActionKind int

const (
	Attack ActionKind = iota
	Special
	UseItem
	Defend
	Flee
)

// PlayerAction is a pre-validated action request. Front ends validate raw
// input before constructing one; the resolver has no recoverable-error path.
type PlayerAction struct {
	Kind   ActionKind
	Potion *types.Item // the chosen potion, for UseItem
}

// Outcome is the structured result of one resolved turn. TurnUsed is false
// for no-op selections (insufficient mana, no potion chosen): the phase has
// not advanced and the player may re-select.
type Outcome struct {
	Lines    []string
	Damage   int // damage actually dealt this turn, after defense
	TurnUsed bool
	Phase    Phase

	// Victory summary, populated when Phase == Victory.
	RewardGold int
	RewardExp  int
	LeveledUp  bool
	Loot       *types.Item
}

// DefendBonus is the temporary defense gained by the Defend action for the
// immediately following enemy turn.
const DefendBonus = 5

// DefaultLootChance is the percent chance of a consumable drop on victory.
const DefaultLootChance = 40

// powerfulAttackChance is the percent chance the enemy AI picks its strong
// attack over a normal one.
const powerfulAttackChance = 20

// defaultLootTable lists the consumables a victory drop is drawn from.
var defaultLootTable = []types.Item{
	{Name: "Health Potion", Kind: types.KindPotion, Power: 30, Description: "Restores 30 HP"},
	{Name: "Greater Health Potion", Kind: types.KindPotion, Power: 50, Description: "Restores 50 HP"},
	{Name: "Mana Potion", Kind: types.KindPotion, Power: 20, Description: "Restores 20 MP"},
}

// Encounter is one combat session between a player and an enemy, strictly
// serialized through the PlayerTurn/EnemyTurn alternation. It is not safe
// for concurrent use; each encounter belongs to a single control thread.
type Encounter struct {
	Player *entity.Combatant
	Enemy  *entity.Combatant
	Phase  Phase
	Round  int

	// LootChance is the victory drop rate in percent. Front ends may
	// override it from configuration.
	LootChance int

	defending bool
	src       dice.Source
}

// NewEncounter starts an encounter in PlayerTurn at round 1.
func NewEncounter(player, enemy *entity.Combatant, src dice.Source) *Encounter {
	return &Encounter{
		Player:     player,
		Enemy:      enemy,
		Phase:      PlayerTurn,
		Round:      1,
		LootChance: DefaultLootChance,
		src:        src,
	}
}

// FleeChance returns the percent probability of a successful flee for the
// given agility differential, clamped to [0, 80].
func FleeChance(playerAgility, enemyAgility int) int {
	chance := 40 + (playerAgility-enemyAgility)*5
	if chance < 0 {
		chance = 0
	}
	if chance > 80 {
		chance = 80
	}
	return chance
}

// AbilityName returns the special-ability name and mana cost for a player
// archetype. ok is false for archetypes without one (enemies).
func AbilityName(a types.Archetype) (name string, cost int, ok bool) {
	switch a {
	case types.Warrior:
		return "Power Strike", 15, true
	case types.Mage:
		return "Fireball", 20, true
	case types.Rogue:
		return "Backstab", 12, true
	default:
		return "", 0, false
	}
}

// specialDamage resolves the archetype's ability formula, deducting mana.
// ok is false when mana is insufficient or the archetype has no ability;
// nothing is mutated in that case.
func specialDamage(p *entity.Combatant, src dice.Source) (damage int, name string, ok bool) {
	name, cost, ok := AbilityName(p.Archetype)
	if !ok || p.MP < cost {
		return 0, name, false
	}
	p.MP -= cost
	switch p.Archetype {
	case types.Warrior:
		damage = 2 * p.AttackDamage(src)
	case types.Mage:
		damage = 3*p.Intelligence + dice.Between(src, 5, 15)
	case types.Rogue:
		// 1.5x to 2.5x multiplier, truncated to integer.
		mult := 1.5 + float64(dice.Between(src, 0, 999))/1000
		damage = int(float64(p.AttackDamage(src)) * mult)
	}
	return damage, name, true
}

// PlayerAct resolves one player action. Calling it outside PlayerTurn or
// for a dead combatant is a programmer error and panics.
func (e *Encounter) PlayerAct(a PlayerAction) Outcome {
	if e.Phase != PlayerTurn {
		panic(fmt.Sprintf("engine: PlayerAct in phase %q", e.Phase))
	}
	if !e.Player.Alive() {
		panic("engine: dead player acting")
	}

	out := Outcome{Phase: e.Phase}

	switch a.Kind {
	case Attack:
		dmg := e.Player.AttackDamage(e.src)
		out.Damage = e.Enemy.ApplyDamage(dmg)
		out.TurnUsed = true
		out.Lines = append(out.Lines,
			fmt.Sprintf("%s attacks %s for %d damage!", e.Player.Name, e.Enemy.Name, out.Damage))

	case Special:
		dmg, name, ok := specialDamage(e.Player, e.src)
		if !ok {
			out.Lines = append(out.Lines, fmt.Sprintf("Not enough MP for %s!", name))
			return out
		}
		out.Damage = e.Enemy.ApplyDamage(dmg)
		out.TurnUsed = true
		out.Lines = append(out.Lines,
			fmt.Sprintf("%s uses %s!", e.Player.Name, name),
			fmt.Sprintf("%s takes %d damage!", e.Enemy.Name, out.Damage))

	case UseItem:
		if a.Potion == nil || a.Potion.Kind != types.KindPotion || !e.Player.HasItem(*a.Potion) {
			out.Lines = append(out.Lines, "You have no potion to use!")
			return out
		}
		e.Player.Heal(a.Potion.Power)
		e.Player.RemoveItem(*a.Potion)
		out.TurnUsed = true
		out.Lines = append(out.Lines,
			fmt.Sprintf("%s drinks %s and recovers %d HP! (%d/%d)",
				e.Player.Name, a.Potion.Name, a.Potion.Power, e.Player.HP, e.Player.MaxHP))

	case Defend:
		e.defending = true
		out.TurnUsed = true
		out.Lines = append(out.Lines,
			fmt.Sprintf("%s braces for the next blow. (+%d defense)", e.Player.Name, DefendBonus))

	case Flee:
		out.TurnUsed = true
		chance := FleeChance(e.Player.Agility, e.Enemy.Agility)
		if dice.Chance(e.src, chance) {
			e.Phase = Escaped
			out.Phase = Escaped
			out.Lines = append(out.Lines, fmt.Sprintf("%s escapes from the fight!", e.Player.Name))
			return out
		}
		out.Lines = append(out.Lines, "Failed to escape!")

	default:
		panic(fmt.Sprintf("engine: unknown action kind %d", a.Kind))
	}

	if !e.Enemy.Alive() {
		e.finishVictory(&out)
		return out
	}
	e.Phase = EnemyTurn
	out.Phase = EnemyTurn
	return out
}

// EnemyAct resolves the enemy's turn: 80% a normal attack, otherwise a
// powerful attack at 1.5x damage, truncated. The player's Defend bonus
// applies to this turn only and is cleared afterwards. Calling it outside
// EnemyTurn panics.
func (e *Encounter) EnemyAct() Outcome {
	if e.Phase != EnemyTurn {
		panic(fmt.Sprintf("engine: EnemyAct in phase %q", e.Phase))
	}
	if !e.Enemy.Alive() {
		panic("engine: dead enemy acting")
	}

	out := Outcome{TurnUsed: true}

	dmg := e.Enemy.AttackDamage(e.src)
	powerful := dice.Chance(e.src, powerfulAttackChance)
	if powerful {
		dmg = dmg * 3 / 2
	}

	if e.defending {
		e.Player.Defense += DefendBonus
	}
	out.Damage = e.Player.ApplyDamage(dmg)
	if e.defending {
		e.Player.Defense -= DefendBonus
		e.defending = false
	}

	if powerful {
		out.Lines = append(out.Lines,
			fmt.Sprintf("%s uses a powerful attack for %d damage!", e.Enemy.Name, out.Damage))
	} else {
		out.Lines = append(out.Lines,
			fmt.Sprintf("%s attacks for %d damage!", e.Enemy.Name, out.Damage))
	}

	e.Round++
	if !e.Player.Alive() {
		e.Phase = Defeat
		out.Phase = Defeat
		out.Lines = append(out.Lines, fmt.Sprintf("%s has fallen!", e.Player.Name))
		return out
	}
	e.Phase = PlayerTurn
	out.Phase = PlayerTurn
	return out
}

// finishVictory resolves rewards at the moment the enemy drops: level-scaled
// gold and experience, then a configurable-rate consumable drop.
func (e *Encounter) finishVictory(out *Outcome) {
	e.Phase = Victory
	out.Phase = Victory

	gold, exp := e.Enemy.Reward(e.src)
	out.RewardGold = gold
	out.RewardExp = exp
	out.LeveledUp = progress.GrantReward(e.Player, gold, exp, nil)

	out.Lines = append(out.Lines,
		fmt.Sprintf("%s has been defeated!", e.Enemy.Name),
		fmt.Sprintf("Rewards: %d gold, %d experience", gold, exp))
	if out.LeveledUp {
		out.Lines = append(out.Lines,
			fmt.Sprintf("*** LEVEL UP! %s is now level %d! ***", e.Player.Name, e.Player.Level))
	}

	if dice.Chance(e.src, e.LootChance) {
		loot := dice.Pick(e.src, defaultLootTable)
		e.Player.AddItem(loot)
		out.Loot = &loot
		out.Lines = append(out.Lines, fmt.Sprintf("Found item: %s", loot.Name))
	}
}
