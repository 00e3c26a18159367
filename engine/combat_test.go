package engine

import (
	"strings"
	"testing"

	"github.com/okrause/emberfell/engine/dice"
	"github.com/okrause/emberfell/engine/entity"
	"github.com/okrause/emberfell/types"
)

// stubSource feeds IntN a fixed sequence, clamping each value into range.
type stubSource struct {
	vals []int
	i    int
}

func (s *stubSource) IntN(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	if v >= n {
		v = n - 1
	}
	return v
}

func newTestEncounter(src dice.Source) *Encounter {
	player := entity.NewPlayer("Hero", types.Warrior)
	enemy := entity.NewEnemy("Goblin", 1)
	return NewEncounter(player, enemy, src)
}

func TestNewEncounter_StartsAtPlayerTurn(t *testing.T) {
	e := newTestEncounter(dice.New(1))
	if e.Phase != PlayerTurn {
		t.Errorf("expected player turn, got %v", e.Phase)
	}
	if e.Round != 1 {
		t.Errorf("expected round 1, got %d", e.Round)
	}
}

func TestPlayerAct_AttackExactDamage(t *testing.T) {
	// Variance draw of 0 (IntN(8) == 2): warrior strength 15 + sword 10.
	src := &stubSource{vals: []int{2}}
	e := newTestEncounter(src)

	out := e.PlayerAct(PlayerAction{Kind: Attack})
	// Raw 25 against defense 5.
	if out.Damage != 20 {
		t.Errorf("expected 20 damage, got %d", out.Damage)
	}
	if !out.TurnUsed {
		t.Error("attack must consume the turn")
	}
	if e.Phase != EnemyTurn {
		t.Errorf("expected enemy turn, got %v", e.Phase)
	}
	if e.Enemy.HP != 80 {
		t.Errorf("expected enemy at 80 HP, got %d", e.Enemy.HP)
	}
}

func TestPlayerAct_SpecialInsufficientMP(t *testing.T) {
	src := &stubSource{vals: []int{2}}
	e := newTestEncounter(src)
	e.Player.MP = 0

	out := e.PlayerAct(PlayerAction{Kind: Special})
	if out.TurnUsed {
		t.Error("a rejected special must not consume the turn")
	}
	if e.Phase != PlayerTurn {
		t.Errorf("phase must not advance, got %v", e.Phase)
	}
	if e.Enemy.HP != e.Enemy.MaxHP {
		t.Errorf("enemy must be untouched, got %d HP", e.Enemy.HP)
	}
}

func TestPlayerAct_MageFireball(t *testing.T) {
	// Between(5,15) draw of 5 (IntN(11) == 0).
	src := &stubSource{vals: []int{0}}
	player := entity.NewPlayer("Hero", types.Mage)
	enemy := entity.NewEnemy("Goblin", 1)
	e := NewEncounter(player, enemy, src)

	out := e.PlayerAct(PlayerAction{Kind: Special})
	// 3*18 + 5 = 59 raw, minus defense 5.
	if out.Damage != 54 {
		t.Errorf("expected 54 damage, got %d", out.Damage)
	}
	if player.MP != 60 {
		t.Errorf("expected 20 MP spent, got %d/%d", player.MP, player.MaxMP)
	}
}

func TestPlayerAct_UseItemWithoutPotion(t *testing.T) {
	e := newTestEncounter(dice.New(1))

	out := e.PlayerAct(PlayerAction{Kind: UseItem})
	if out.TurnUsed {
		t.Error("using nothing must not consume the turn")
	}
	if e.Phase != PlayerTurn {
		t.Errorf("phase must not advance, got %v", e.Phase)
	}
}

func TestPlayerAct_UseItemHealsAndConsumes(t *testing.T) {
	e := newTestEncounter(dice.New(1))
	potion := types.Item{Name: "Health Potion", Kind: types.KindPotion, Power: 30, Description: "Restores 30 HP"}
	e.Player.AddItem(potion)
	e.Player.HP = 50

	out := e.PlayerAct(PlayerAction{Kind: UseItem, Potion: &potion})
	if !out.TurnUsed {
		t.Error("drinking a potion consumes the turn")
	}
	if e.Player.HP != 80 {
		t.Errorf("expected 80 HP, got %d", e.Player.HP)
	}
	if e.Player.HasItem(potion) {
		t.Error("the potion should be consumed")
	}
}

func TestFleeChance_Clamped(t *testing.T) {
	tests := []struct {
		playerAgi, enemyAgi int
		want                int
	}{
		{10, 10, 40},
		{18, 10, 80},  // 40+40, at the cap
		{100, 0, 80},  // far above the cap
		{0, 100, 0},   // far below zero
		{10, 14, 20},  // 40-20
		{12, 10, 50},  // 40+10
	}
	for _, tt := range tests {
		if got := FleeChance(tt.playerAgi, tt.enemyAgi); got != tt.want {
			t.Errorf("FleeChance(%d, %d) = %d, want %d", tt.playerAgi, tt.enemyAgi, got, tt.want)
		}
	}
}

func TestPlayerAct_FleeSuccess(t *testing.T) {
	// Chance draw below the flee chance.
	src := &stubSource{vals: []int{0}}
	e := newTestEncounter(src)

	out := e.PlayerAct(PlayerAction{Kind: Flee})
	if e.Phase != Escaped {
		t.Errorf("expected escaped, got %v", e.Phase)
	}
	if !out.TurnUsed {
		t.Error("fleeing consumes the turn")
	}
}

func TestPlayerAct_FleeFailurePassesTurn(t *testing.T) {
	// Chance draw of 99 always misses.
	src := &stubSource{vals: []int{99}}
	e := newTestEncounter(src)

	e.PlayerAct(PlayerAction{Kind: Flee})
	if e.Phase != EnemyTurn {
		t.Errorf("failed flee hands the enemy a turn, got %v", e.Phase)
	}
}

func TestEnemyAct_NormalAttack(t *testing.T) {
	// Player variance 0, then enemy: variance 0, powerful check 99 (miss).
	src := &stubSource{vals: []int{2, 2, 99}}
	e := newTestEncounter(src)
	e.PlayerAct(PlayerAction{Kind: Attack})

	out := e.EnemyAct()
	// Enemy strength 10, no weapon, against warrior defense 8.
	if out.Damage != 2 {
		t.Errorf("expected 2 damage, got %d", out.Damage)
	}
	if e.Phase != PlayerTurn {
		t.Errorf("expected player turn, got %v", e.Phase)
	}
	if e.Round != 2 {
		t.Errorf("expected round 2, got %d", e.Round)
	}
}

func TestEnemyAct_PowerfulAttack(t *testing.T) {
	// Player variance 0, then enemy: variance 0, powerful check 0 (hit).
	src := &stubSource{vals: []int{2, 2, 0}}
	e := newTestEncounter(src)
	e.PlayerAct(PlayerAction{Kind: Attack})

	out := e.EnemyAct()
	// Raw 10 * 3/2 = 15, against warrior defense 8.
	if out.Damage != 7 {
		t.Errorf("expected 7 damage, got %d", out.Damage)
	}
}

func TestEnemyAct_DefendBonusAppliesOnce(t *testing.T) {
	// Defend draws nothing; enemy variance 0, powerful miss; then player
	// variance 0; enemy variance 0, powerful miss again.
	src := &stubSource{vals: []int{2, 99, 2, 2, 99}}
	e := newTestEncounter(src)

	e.PlayerAct(PlayerAction{Kind: Defend})
	out := e.EnemyAct()
	// Raw 10 against defense 8+5: floored at 1.
	if out.Damage != 1 {
		t.Errorf("expected 1 damage while defending, got %d", out.Damage)
	}
	if e.Player.Defense != 8 {
		t.Errorf("defend bonus must be removed after the enemy turn, got defense %d", e.Player.Defense)
	}

	// The next enemy turn hits at full strength again.
	e.PlayerAct(PlayerAction{Kind: Attack})
	out = e.EnemyAct()
	if out.Damage != 2 {
		t.Errorf("expected 2 damage without defend, got %d", out.Damage)
	}
}

func TestEnemyAct_DefeatEndsEncounter(t *testing.T) {
	src := &stubSource{vals: []int{2, 99}}
	e := newTestEncounter(src)
	e.Player.HP = 1

	e.PlayerAct(PlayerAction{Kind: Defend})
	// Even the floored 1 damage kills at 1 HP.
	out := e.EnemyAct()
	if e.Phase != Defeat {
		t.Errorf("expected defeat, got %v", e.Phase)
	}
	if out.Phase != Defeat {
		t.Errorf("outcome should carry the terminal phase, got %v", out.Phase)
	}
	if !e.Phase.Terminal() {
		t.Error("defeat is terminal")
	}
}

func TestVictory_RewardsAndNoLoot(t *testing.T) {
	// Player variance 0, gold draw 0, exp draw 0, loot check 99 (miss).
	src := &stubSource{vals: []int{2, 0, 0, 99}}
	e := newTestEncounter(src)
	e.Enemy.HP = 1

	out := e.PlayerAct(PlayerAction{Kind: Attack})
	if e.Phase != Victory {
		t.Fatalf("expected victory, got %v", e.Phase)
	}
	// Level 1 enemy, lowest draws: 10 gold, 20 exp.
	if out.RewardGold != 10 || out.RewardExp != 20 {
		t.Errorf("expected 10 gold and 20 exp, got %d and %d", out.RewardGold, out.RewardExp)
	}
	if e.Player.Gold != 60 {
		t.Errorf("expected 60 gold, got %d", e.Player.Gold)
	}
	if out.Loot != nil {
		t.Errorf("expected no loot, got %v", out.Loot)
	}
}

func TestVictory_LootDrop(t *testing.T) {
	// Player variance 0, gold 0, exp 0, loot check 0 (hit), pick index 0.
	src := &stubSource{vals: []int{2, 0, 0, 0, 0}}
	e := newTestEncounter(src)
	e.Enemy.HP = 1

	out := e.PlayerAct(PlayerAction{Kind: Attack})
	if out.Loot == nil {
		t.Fatal("expected a loot drop")
	}
	if out.Loot.Name != "Health Potion" {
		t.Errorf("expected Health Potion, got %q", out.Loot.Name)
	}
	if !e.Player.HasItem(*out.Loot) {
		t.Error("loot should land in the inventory")
	}
}

func TestVictory_ZeroLootChanceNeverDrops(t *testing.T) {
	rng := dice.New(42)
	for i := 0; i < 50; i++ {
		e := newTestEncounter(rng)
		e.LootChance = 0
		e.Enemy.HP = 1
		out := e.PlayerAct(PlayerAction{Kind: Attack})
		if out.Loot != nil {
			t.Fatalf("iteration %d: loot dropped at 0%% chance", i)
		}
	}
}

func TestPlayerAct_PanicsOutsideTurn(t *testing.T) {
	src := &stubSource{vals: []int{2}}
	e := newTestEncounter(src)
	e.PlayerAct(PlayerAction{Kind: Attack}) // now EnemyTurn

	defer func() {
		if recover() == nil {
			t.Error("expected panic for PlayerAct outside the player turn")
		}
	}()
	e.PlayerAct(PlayerAction{Kind: Attack})
}

func TestEnemyAct_PanicsOutsideTurn(t *testing.T) {
	e := newTestEncounter(dice.New(1))

	defer func() {
		if recover() == nil {
			t.Error("expected panic for EnemyAct outside the enemy turn")
		}
	}()
	e.EnemyAct()
}

func TestPlayerAct_PanicsAfterVictory(t *testing.T) {
	src := &stubSource{vals: []int{2, 0, 0, 99}}
	e := newTestEncounter(src)
	e.Enemy.HP = 1
	e.PlayerAct(PlayerAction{Kind: Attack})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for acting in a terminal phase")
		}
	}()
	e.PlayerAct(PlayerAction{Kind: Attack})
}

func TestEnemyAct_PowerfulDistribution(t *testing.T) {
	rng := dice.New(12345)

	const trials = 2000
	powerful := 0
	for i := 0; i < trials; i++ {
		e := newTestEncounter(rng)
		e.Player.MaxHP = 100000
		e.Player.HP = 100000
		e.PlayerAct(PlayerAction{Kind: Defend})
		out := e.EnemyAct()
		for _, line := range out.Lines {
			if strings.Contains(line, "powerful") {
				powerful++
				break
			}
		}
	}

	// Expect roughly 20% ± some margin.
	if powerful < 300 || powerful > 500 {
		t.Errorf("expected ~400 powerful attacks of %d, got %d", trials, powerful)
	}
}
