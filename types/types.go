// Package types defines the shared data structures for the Emberfell engine.
// This package contains only type definitions: no logic, no methods beyond
// trivial accessors.
package types

// ItemKind is the closed set of item categories.
type ItemKind string

const (
	KindWeapon ItemKind = "weapon"
	KindArmor  ItemKind = "armor"
	KindPotion ItemKind = "potion"
	KindRelic  ItemKind = "relic" // quest rewards and keepsakes
)

// Item is an immutable item value. Items have no identity beyond their
// fields: two items with equal fields are interchangeable. The struct is
// comparable, which inventory removal and save round-trips rely on.
type Item struct {
	Name        string   `json:"name"`
	Kind        ItemKind `json:"kind"`
	Power       int      `json:"power"` // damage, defense or healing amount
	Description string   `json:"description"`
}

// Archetype is a player class or an enemy species tag.
type Archetype string

const (
	Warrior Archetype = "Warrior"
	Mage    Archetype = "Mage"
	Rogue   Archetype = "Rogue"
)

// PlayerArchetypes lists the selectable classes in creation-menu order.
var PlayerArchetypes = []Archetype{Warrior, Mage, Rogue}

// ObjectiveKind is the closed set of quest predicates.
type ObjectiveKind string

const (
	// ObjectiveDefeat is satisfied when the campaign's cumulative
	// enemies-defeated counter reaches Count.
	ObjectiveDefeat ObjectiveKind = "defeat"
	// ObjectiveReach is satisfied when the player's current location
	// matches Location.
	ObjectiveReach ObjectiveKind = "reach"
)

// Objective is a quest completion predicate.
type Objective struct {
	Kind     ObjectiveKind
	Count    int    // for ObjectiveDefeat
	Location string // for ObjectiveReach (location ID)
}

// QuestDef is the immutable definition of a quest.
type QuestDef struct {
	ID          string
	Name        string
	Description string
	Objective   Objective
	RewardGold  int
	RewardExp   int
	RewardItem  *Item // optional
}

// ShopDef is a named fixed catalog. Stock entries are templates with
// infinite supply; buying never depletes them.
type ShopDef struct {
	Name  string
	Stock []Item
}

// LocationDef is a node in the location graph.
type LocationDef struct {
	ID          string
	Name        string
	Description string
	Danger      int      // biases spawned enemy level, 1 = safest
	Connections []string // location IDs reachable from here
	Shop        *ShopDef // optional
}

// SpawnDef is one entry in the enemy spawn table.
type SpawnDef struct {
	Name   string
	Offset int // level offset relative to the player
}

// GameDef holds campaign metadata from the content files.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   string // starting location ID
	Intro   string
}
