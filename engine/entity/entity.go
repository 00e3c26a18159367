// Package entity implements the Combatant aggregate shared by players and
// enemies: vitals, attributes, inventory and equipment slots, and the
// mutators every other engine component builds on.
package entity

import (
	"github.com/okrause/emberfell/engine/dice"
	"github.com/okrause/emberfell/types"
)

// Attack variance bounds, inclusive. Every basic attack adds a uniform
// draw from this range.
const (
	varianceMin = -2
	varianceMax = 5
)

// Combatant is the mutable aggregate for anything that can fight.
// HP is clamped to [0, MaxHP] by every mutator; a Combatant with HP == 0
// is dead and must not act.
type Combatant struct {
	Name      string
	Archetype types.Archetype
	Level     int
	Exp       int

	HP    int
	MaxHP int
	MP    int
	MaxMP int

	Strength     int
	Intelligence int
	Agility      int
	Defense      int

	Gold      int
	Inventory []types.Item
	Weapon    *types.Item // equipped, disjoint from Inventory
	Armor     *types.Item // equipped, disjoint from Inventory
}

// newBase returns a level-1 combatant with the baseline stat template.
func newBase(name string, archetype types.Archetype) *Combatant {
	return &Combatant{
		Name:      name,
		Archetype: archetype,
		Level:     1,
		HP:        100, MaxHP: 100,
		MP: 50, MaxMP: 50,
		Strength:     10,
		Intelligence: 10,
		Agility:      10,
		Defense:      5,
		Gold:         50,
		Inventory:    []types.Item{},
	}
}

// NewPlayer creates a player of the given class, applying the class stat
// template and starting weapon.
func NewPlayer(name string, archetype types.Archetype) *Combatant {
	c := newBase(name, archetype)
	switch archetype {
	case types.Warrior:
		c.Strength = 15
		c.MaxHP = 120
		c.HP = 120
		c.Defense = 8
		c.Weapon = &types.Item{Name: "Iron Sword", Kind: types.KindWeapon, Power: 10, Description: "A sturdy iron blade"}
	case types.Mage:
		c.Intelligence = 18
		c.MaxMP = 80
		c.MP = 80
		c.Strength = 6
		c.Weapon = &types.Item{Name: "Wooden Staff", Kind: types.KindWeapon, Power: 5, Description: "A staff humming with arcane power"}
	case types.Rogue:
		c.Agility = 18
		c.Strength = 12
		c.MaxHP = 90
		c.HP = 90
		c.Weapon = &types.Item{Name: "Dagger", Kind: types.KindWeapon, Power: 8, Description: "A short, wickedly sharp blade"}
	}
	return c
}

// NewEnemy creates an enemy scaled to the given level from the level-1
// baseline. Each level above 1 adds +15 max HP, +2 strength, +1 defense,
// +1 agility; HP is set to full once at the end.
func NewEnemy(name string, level int) *Combatant {
	if level < 1 {
		level = 1
	}
	c := newBase(name, "Enemy")
	c.Level = level
	for i := 1; i < level; i++ {
		c.MaxHP += 15
		c.Strength += 2
		c.Defense += 1
		c.Agility += 1
	}
	c.HP = c.MaxHP
	return c
}

// Alive reports whether the combatant can still act.
func (c *Combatant) Alive() bool {
	return c.HP > 0
}

// ApplyDamage applies raw damage reduced by defense and returns the damage
// actually taken. At least 1 point always lands: there is no full-immunity
// state. HP is clamped at 0.
func (c *Combatant) ApplyDamage(raw int) int {
	actual := raw - c.Defense
	if actual < 1 {
		actual = 1
	}
	c.HP -= actual
	if c.HP < 0 {
		c.HP = 0
	}
	return actual
}

// Heal restores HP, clamped at MaxHP.
func (c *Combatant) Heal(amount int) {
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
}

// AttackDamage computes basic attack damage: strength plus equipped weapon
// power plus a uniform variance draw, floored at 1.
func (c *Combatant) AttackDamage(src dice.Source) int {
	dmg := c.Strength
	if c.Weapon != nil {
		dmg += c.Weapon.Power
	}
	dmg += dice.Between(src, varianceMin, varianceMax)
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// AddItem appends an item to the inventory. Duplicates are allowed.
func (c *Combatant) AddItem(it types.Item) {
	c.Inventory = append(c.Inventory, it)
}

// RemoveItem removes the first inventory entry equal to it. Removing an
// absent item is a no-op, not an error.
func (c *Combatant) RemoveItem(it types.Item) {
	for i, have := range c.Inventory {
		if have == it {
			c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
			return
		}
	}
}

// HasItem reports whether the inventory contains an entry equal to it.
func (c *Combatant) HasItem(it types.Item) bool {
	for _, have := range c.Inventory {
		if have == it {
			return true
		}
	}
	return false
}

// Potions returns the inventory's potions in order.
func (c *Combatant) Potions() []types.Item {
	var out []types.Item
	for _, it := range c.Inventory {
		if it.Kind == types.KindPotion {
			out = append(out, it)
		}
	}
	return out
}

// EquipWeapon installs it as the equipped weapon. The previously equipped
// weapon (if any) moves back into the inventory, and it is removed from the
// inventory if present there, keeping the equipped slot and the inventory
// disjoint. Returns false without mutating if it is not a weapon.
func (c *Combatant) EquipWeapon(it types.Item) bool {
	if it.Kind != types.KindWeapon {
		return false
	}
	if c.Weapon != nil {
		c.Inventory = append(c.Inventory, *c.Weapon)
	}
	w := it
	c.Weapon = &w
	c.RemoveItem(it)
	return true
}

// EquipArmor installs it as the equipped armor with the same swap contract
// as EquipWeapon, and adds the armor's power to defense. The bonus is never
// subtracted when the armor is swapped out, so defense only ratchets up
// over a campaign of armor changes. Long-standing behavior; kept.
func (c *Combatant) EquipArmor(it types.Item) bool {
	if it.Kind != types.KindArmor {
		return false
	}
	if c.Armor != nil {
		c.Inventory = append(c.Inventory, *c.Armor)
	}
	a := it
	c.Armor = &a
	c.Defense += it.Power
	c.RemoveItem(it)
	return true
}

// Reward computes the gold and experience granted for defeating this enemy:
// level-scaled uniform draws from the reward policy ranges.
func (c *Combatant) Reward(src dice.Source) (gold, exp int) {
	gold = c.Level * dice.Between(src, 10, 30)
	exp = c.Level * dice.Between(src, 20, 40)
	return gold, exp
}
