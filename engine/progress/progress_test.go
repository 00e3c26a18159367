package progress

import (
	"testing"

	"github.com/okrause/emberfell/engine/entity"
	"github.com/okrause/emberfell/types"
)

func TestThreshold(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 200},
		{5, 500},
	}
	for _, tt := range tests {
		if got := Threshold(tt.level); got != tt.want {
			t.Errorf("Threshold(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestAddExperience_BelowThreshold(t *testing.T) {
	p := entity.NewPlayer("Hero", types.Warrior)

	if AddExperience(p, 99) {
		t.Error("99 exp at level 1 should not level")
	}
	if p.Level != 1 || p.Exp != 99 {
		t.Errorf("expected level 1 with 99 exp, got level %d with %d", p.Level, p.Exp)
	}
}

func TestAddExperience_LevelsAtThreshold(t *testing.T) {
	p := entity.NewPlayer("Hero", types.Warrior)

	if !AddExperience(p, 100) {
		t.Fatal("100 exp at level 1 should level")
	}
	if p.Level != 2 {
		t.Errorf("expected level 2, got %d", p.Level)
	}
	if p.Exp != 100 {
		t.Errorf("experience is cumulative, expected 100, got %d", p.Exp)
	}
}

func TestAddExperience_OneLevelPerAward(t *testing.T) {
	p := entity.NewPlayer("Hero", types.Warrior)

	// A huge single award still grants exactly one level; the surplus
	// stays banked.
	if !AddExperience(p, 1000) {
		t.Fatal("expected a level from 1000 exp")
	}
	if p.Level != 2 {
		t.Fatalf("expected exactly one level per award, got level %d", p.Level)
	}

	// The banked surplus levels again on the next award.
	if !AddExperience(p, 1) {
		t.Error("banked surplus should level on the next award")
	}
	if p.Level != 3 {
		t.Errorf("expected level 3, got %d", p.Level)
	}
}

func TestLevelUp_GrowthTable(t *testing.T) {
	p := entity.NewPlayer("Hero", types.Warrior)
	p.HP = 10
	p.MP = 5

	before := *p
	LevelUp(p)

	if p.Level != before.Level+1 {
		t.Errorf("expected level %d, got %d", before.Level+1, p.Level)
	}
	if p.MaxHP != before.MaxHP+20 || p.MaxMP != before.MaxMP+10 {
		t.Errorf("expected +20 max HP and +10 max MP, got %d/%d", p.MaxHP, p.MaxMP)
	}
	if p.Strength != before.Strength+3 || p.Intelligence != before.Intelligence+3 {
		t.Errorf("expected +3 strength and intelligence, got %d/%d", p.Strength, p.Intelligence)
	}
	if p.Agility != before.Agility+2 || p.Defense != before.Defense+2 {
		t.Errorf("expected +2 agility and defense, got %d/%d", p.Agility, p.Defense)
	}
	if p.HP != p.MaxHP || p.MP != p.MaxMP {
		t.Errorf("level up should fully restore vitals, got %d/%d HP, %d/%d MP",
			p.HP, p.MaxHP, p.MP, p.MaxMP)
	}
}

func TestLevelUp_AllStatsStrictlyIncrease(t *testing.T) {
	p := entity.NewPlayer("Hero", types.Mage)
	before := *p
	LevelUp(p)

	if p.MaxHP <= before.MaxHP || p.MaxMP <= before.MaxMP ||
		p.Strength <= before.Strength || p.Intelligence <= before.Intelligence ||
		p.Agility <= before.Agility || p.Defense <= before.Defense {
		t.Errorf("every stat must strictly increase on level up: before %+v after %+v", before, *p)
	}
}

func TestGrantReward_CreditsAll(t *testing.T) {
	p := entity.NewPlayer("Hero", types.Rogue)
	ring := types.Item{Name: "Ring of Protection", Kind: types.KindArmor, Power: 5}

	leveled := GrantReward(p, 100, 150, &ring)
	if !leveled {
		t.Error("150 exp at level 1 should level")
	}
	if p.Gold != 150 {
		t.Errorf("expected 150 gold (50 starting + 100), got %d", p.Gold)
	}
	if !p.HasItem(ring) {
		t.Error("expected reward item in inventory")
	}
}

func TestGrantReward_NilItem(t *testing.T) {
	p := entity.NewPlayer("Hero", types.Rogue)

	GrantReward(p, 10, 10, nil)
	if len(p.Inventory) != 0 {
		t.Errorf("nil reward item should add nothing, got %d items", len(p.Inventory))
	}
}
