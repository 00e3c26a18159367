package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okrause/emberfell/config"
	"github.com/okrause/emberfell/types"
	"github.com/okrause/emberfell/world"
)

func testDefs() *world.Defs {
	return &world.Defs{
		Game: types.GameDef{
			Title:   "Testfell",
			Version: "1.0",
			Start:   "village",
			Intro:   "A small test world awaits.",
		},
		Locations: map[string]types.LocationDef{
			"village": {
				ID: "village", Name: "Village", Description: "A quiet village.",
				Danger: 1, Connections: []string{"forest"},
				Shop: &types.ShopDef{
					Name: "The Test Shop",
					Stock: []types.Item{
						{Name: "Minor Potion", Kind: types.KindPotion, Power: 10},
					},
				},
			},
			"forest": {ID: "forest", Name: "Forest", Danger: 2, Connections: []string{"village"}},
		},
		Quests: []types.QuestDef{
			{
				ID: "first_blood", Name: "First Blood",
				Objective:  types.Objective{Kind: types.ObjectiveDefeat, Count: 3},
				RewardGold: 100, RewardExp: 150,
			},
		},
		Spawns: []types.SpawnDef{{Name: "Goblin", Offset: 0}},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press runs one key through Update and returns the updated model.
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

// newSession drives a model through sizing and character creation.
func newSession(t *testing.T, cfg config.Config) Model {
	t.Helper()
	m := New(testDefs(), cfg)
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = press(t, m, key("Conan"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenClass {
		t.Fatalf("expected class screen after name entry, got %d", m.screen)
	}
	m = press(t, m, key("1"))
	if m.screen != screenWorld || m.game == nil {
		t.Fatalf("expected a running session, screen %d", m.screen)
	}
	return m
}

func testCfg(t *testing.T) config.Config {
	t.Helper()
	return config.Config{SaveDir: t.TempDir(), Seed: 42, LootChance: 40}
}

func TestDigit(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"1", 1},
		{"9", 9},
		{"0", 0},
		{"a", 0},
		{"enter", 0},
		{"12", 0},
	}
	for _, tt := range tests {
		if got := digit(tt.key); got != tt.want {
			t.Errorf("digit(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestCreation_EmptyNameDefaults(t *testing.T) {
	m := New(testDefs(), testCfg(t))
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, key("2"))

	if m.game == nil || m.game.Player.Name != "Hero" {
		t.Fatalf("expected default name Hero, got %v", m.game)
	}
	if m.game.Player.Archetype != types.Mage {
		t.Errorf("expected Mage, got %s", m.game.Player.Archetype)
	}
}

func TestCreation_IgnoresOutOfRangeClass(t *testing.T) {
	m := New(testDefs(), testCfg(t))
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, key("7"))

	if m.screen != screenClass || m.game != nil {
		t.Error("out-of-range class keys must be ignored")
	}
}

func TestWorld_ScreenTransitions(t *testing.T) {
	m := newSession(t, testCfg(t))

	m = press(t, m, key("i"))
	if m.screen != screenInventory {
		t.Errorf("i should open the inventory, got %d", m.screen)
	}
	m = press(t, m, key("c"))
	if m.screen != screenWorld {
		t.Errorf("c should return to the world, got %d", m.screen)
	}

	m = press(t, m, key("u"))
	if m.screen != screenQuests {
		t.Errorf("u should open quests, got %d", m.screen)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenWorld {
		t.Errorf("esc should return to the world, got %d", m.screen)
	}

	m = press(t, m, key("t"))
	if m.screen != screenTravel {
		t.Errorf("t should open travel, got %d", m.screen)
	}
}

func TestShop_Buy(t *testing.T) {
	m := newSession(t, testCfg(t))
	goldBefore := m.game.Player.Gold

	m = press(t, m, key("s"))
	if m.screen != screenShop {
		t.Fatalf("expected the shop screen, got %d", m.screen)
	}
	m = press(t, m, key("1"))

	if m.game.Player.Gold != goldBefore-20 {
		t.Errorf("expected 20 gold spent, gold %d -> %d", goldBefore, m.game.Player.Gold)
	}
	if len(m.game.Player.Potions()) != 1 {
		t.Error("expected the potion in the inventory")
	}
}

func TestQuests_AcceptByKey(t *testing.T) {
	m := newSession(t, testCfg(t))

	m = press(t, m, key("u"))
	m = press(t, m, key("1"))

	q := m.game.World.Tracker.ByID("first_blood")
	if q.Status != "active" {
		t.Errorf("expected the quest active, got %q", q.Status)
	}
	joined := strings.Join(m.lines, "\n")
	if !strings.Contains(joined, "Accepted quest: First Blood!") {
		t.Error("expected the acceptance line in the log")
	}
}

func TestRest_LogsAndRestores(t *testing.T) {
	m := newSession(t, testCfg(t))
	m.game.Player.HP = 1

	m = press(t, m, key("r"))
	if m.game.Player.HP != m.game.Player.MaxHP {
		t.Errorf("expected full HP after rest, got %d", m.game.Player.HP)
	}
}

func TestCombat_RunsToTermination(t *testing.T) {
	m := newSession(t, testCfg(t))
	m.startCombat(m.game.StartEncounter())
	if m.screen != screenCombat {
		t.Fatalf("expected the combat screen, got %d", m.screen)
	}

	// Mash attack; the encounter must reach a terminal phase well within
	// the round bound.
	for i := 0; i < 200 && m.screen == screenCombat; i++ {
		m = press(t, m, key("1"))
	}
	if m.screen == screenCombat {
		t.Fatal("combat did not terminate after 200 attacks")
	}
	if m.enc != nil {
		t.Error("encounter must be cleared after termination")
	}
}

func TestCombat_PotionScreenWithoutPotions(t *testing.T) {
	m := newSession(t, testCfg(t))
	m.startCombat(m.game.StartEncounter())

	m = press(t, m, key("3"))
	if m.screen != screenCombat {
		t.Errorf("no potions: must stay in combat, got %d", m.screen)
	}
	joined := strings.Join(m.lines, "\n")
	if !strings.Contains(joined, "You have no potions to use!") {
		t.Error("expected the no-potion line")
	}
}

func TestSaveAndLoad(t *testing.T) {
	cfg := testCfg(t)
	m := newSession(t, cfg)

	m = press(t, m, key("v"))
	path := filepath.Join(cfg.SaveDir, "conan_save.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected a save file at %s: %v", path, err)
	}

	m.game.Player.Gold = 9
	m = press(t, m, key("l"))
	if m.game.Player.Gold == 9 {
		t.Error("load should replace the mutated session")
	}
	joined := strings.Join(m.lines, "\n")
	if !strings.Contains(joined, "Game loaded successfully!") {
		t.Error("expected the load confirmation")
	}
}

func TestLoad_MissingSave(t *testing.T) {
	m := newSession(t, testCfg(t))

	m = press(t, m, key("l"))
	joined := strings.Join(m.lines, "\n")
	if !strings.Contains(joined, "No saved game found!") {
		t.Error("expected the missing-save line")
	}
}

func TestView_RendersEachScreen(t *testing.T) {
	m := newSession(t, testCfg(t))

	for _, s := range []screen{screenWorld, screenShop, screenQuests, screenInventory, screenTravel} {
		m.screen = s
		if m.View() == "" {
			t.Errorf("screen %d rendered empty", s)
		}
	}

	m.startCombat(m.game.StartEncounter())
	if !strings.Contains(m.View(), "Attack") {
		t.Error("combat view should list the attack action")
	}
}

func TestStatusBar_ShowsVitals(t *testing.T) {
	m := newSession(t, testCfg(t))
	bar := m.statusBar()
	for _, want := range []string{"Conan", "HP 120/120", "MP 50/50", "Gold 50"} {
		if !strings.Contains(bar, want) {
			t.Errorf("expected %q in the status bar", want)
		}
	}
}
