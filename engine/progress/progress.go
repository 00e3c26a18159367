// Package progress implements character progression: experience thresholds,
// the level-up stat table, and the shared reward-grant path used by both
// combat victories and quest completions.
package progress

import (
	"github.com/okrause/emberfell/engine/entity"
	"github.com/okrause/emberfell/types"
)

// Threshold returns the cumulative experience required to leave the given
// level.
func Threshold(level int) int {
	return level * 100
}

// AddExperience accumulates experience and reports whether a level was
// gained. At most one level is gained per award even when the amount
// crosses several thresholds at once; the surplus stays banked and the next
// award levels again. Faithful to long-standing behavior.
func AddExperience(c *entity.Combatant, amount int) bool {
	c.Exp += amount
	if c.Exp >= Threshold(c.Level) {
		LevelUp(c)
		return true
	}
	return false
}

// LevelUp advances the combatant one level and applies the growth table.
// Vitals are fully restored, which makes leveling the implicit full-heal
// checkpoint.
func LevelUp(c *entity.Combatant) {
	c.Level++
	c.MaxHP += 20
	c.HP = c.MaxHP
	c.MaxMP += 10
	c.MP = c.MaxMP
	c.Strength += 3
	c.Intelligence += 3
	c.Agility += 2
	c.Defense += 2
}

// GrantReward credits gold, experience and an optional item through the one
// reward path shared by combat victory and quest completion. Reports
// whether the experience award leveled the combatant.
func GrantReward(c *entity.Combatant, gold, exp int, item *types.Item) bool {
	c.Gold += gold
	leveled := AddExperience(c, exp)
	if item != nil {
		c.AddItem(*item)
	}
	return leveled
}
