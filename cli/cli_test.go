package cli

import (
	"bytes"
	"strings"
	"testing"

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
						{Name: "Minor Potion", Kind: types.KindPotion, Power: 10, Description: "Restores 10 HP"},
					},
				},
			},
			"forest": {ID: "forest", Name: "Forest", Danger: 2, Connections: []string{"village"}},
		},
		Quests: []types.QuestDef{
			{
				ID: "first_blood", Name: "First Blood", Description: "Defeat three enemies.",
				Objective:  types.Objective{Kind: types.ObjectiveDefeat, Count: 3},
				RewardGold: 100, RewardExp: 150,
			},
		},
		Spawns: []types.SpawnDef{{Name: "Goblin", Offset: 0}},
	}
}

// runScript drives a full CLI session from scripted input and returns the
// captured output.
func runScript(t *testing.T, cfg config.Config, script string) string {
	t.Helper()
	c := New(testDefs(), cfg)
	c.In = strings.NewReader(script)
	var out bytes.Buffer
	c.Out = &out
	c.Run()
	return out.String()
}

func testCfg(t *testing.T) config.Config {
	t.Helper()
	return config.Config{SaveDir: t.TempDir(), Seed: 42, LootChance: 40}
}

func TestRun_Exit(t *testing.T) {
	out := runScript(t, testCfg(t), "3\n")
	if !strings.Contains(out, "Testfell v1.0") {
		t.Error("expected the title banner")
	}
	if !strings.Contains(out, "Thanks for playing") {
		t.Error("expected the farewell line")
	}
}

func TestRun_InputExhaustion(t *testing.T) {
	// An empty script must terminate cleanly, not loop.
	out := runScript(t, testCfg(t), "")
	if !strings.Contains(out, "MAIN MENU") {
		t.Error("expected the main menu before exhaustion")
	}
}

func TestRun_InvalidChoiceReprompts(t *testing.T) {
	out := runScript(t, testCfg(t), "banana\n99\n3\n")
	if strings.Count(out, "Invalid choice!") != 2 {
		t.Errorf("expected two re-prompts, output:\n%s", out)
	}
}

func TestCharacterCreation(t *testing.T) {
	// New game, name, warrior, back to main menu, exit.
	out := runScript(t, testCfg(t), "1\nConan\n1\n9\n3\n")

	if !strings.Contains(out, "Conan the Warrior has been created!") {
		t.Errorf("expected creation line, output:\n%s", out)
	}
	if !strings.Contains(out, "HP: 120/120") {
		t.Error("expected warrior vitals in the stat block")
	}
	if !strings.Contains(out, "Weapon: Iron Sword (+10 damage)") {
		t.Error("expected the starting weapon in the stat block")
	}
	if !strings.Contains(out, "A small test world awaits.") {
		t.Error("expected the campaign intro")
	}
}

func TestCharacterCreation_DefaultName(t *testing.T) {
	out := runScript(t, testCfg(t), "1\n\n2\n9\n3\n")
	if !strings.Contains(out, "Hero the Mage has been created!") {
		t.Errorf("expected default name, output:\n%s", out)
	}
}

func TestRest(t *testing.T) {
	out := runScript(t, testCfg(t), "1\nHero\n1\n7\n9\n3\n")
	if !strings.Contains(out, "HP and MP fully restored!") {
		t.Error("expected the rest message")
	}
}

func TestInventory_Empty(t *testing.T) {
	out := runScript(t, testCfg(t), "1\nHero\n1\n2\n9\n3\n")
	if !strings.Contains(out, "Your inventory is empty!") {
		t.Error("expected the empty-inventory message")
	}
}

func TestShop_BuyAndSell(t *testing.T) {
	// Visit shop, buy item 1, sell item 1, leave.
	out := runScript(t, testCfg(t), "1\nHero\n1\n5\n1\n1\n2\n1\n3\n9\n3\n")

	if !strings.Contains(out, "Welcome to The Test Shop!") {
		t.Errorf("expected the shop greeting, output:\n%s", out)
	}
	// Potion power 10: buys at 20, sells back at 10.
	if !strings.Contains(out, "Purchased Minor Potion for 20 gold!") {
		t.Error("expected the purchase line")
	}
	if !strings.Contains(out, "Sold Minor Potion for 10 gold!") {
		t.Error("expected the sale line")
	}
}

func TestShop_InsufficientGold(t *testing.T) {
	// Buy the 20-gold potion three times on 50 starting gold: the third
	// purchase fails without changing state.
	out := runScript(t, testCfg(t), "1\nHero\n1\n5\n1\n1\n1\n1\n1\n1\n3\n9\n3\n")

	if strings.Count(out, "Purchased Minor Potion for 20 gold!") != 2 {
		t.Errorf("expected exactly two purchases, output:\n%s", out)
	}
	if !strings.Contains(out, "Not enough gold! Need 20 gold, have 10 gold.") {
		t.Error("expected the rejection with amounts")
	}
}

func TestQuests_Accept(t *testing.T) {
	// Quest menu, accept quest 1, back out.
	out := runScript(t, testCfg(t), "1\nHero\n1\n6\n1\n1\n2\n9\n3\n")

	if !strings.Contains(out, "Available Quests:") {
		t.Errorf("expected the available list, output:\n%s", out)
	}
	if !strings.Contains(out, "Accepted quest: First Blood!") {
		t.Error("expected the acceptance line")
	}
	if !strings.Contains(out, "[ACTIVE] First Blood") {
		t.Error("expected the quest shown as active after accepting")
	}
}

func TestSaveAndLoad(t *testing.T) {
	cfg := testCfg(t)

	// Create, save, back to menu, load the save, back out, exit.
	out := runScript(t, cfg, "1\nHero\n3\n8\n9\n2\n1\n9\n3\n")

	if !strings.Contains(out, "Game saved successfully!") {
		t.Errorf("expected the save confirmation, output:\n%s", out)
	}
	if !strings.Contains(out, "LOAD GAME") {
		t.Error("expected the load menu")
	}
	if !strings.Contains(out, "1. Hero") {
		t.Error("expected the save listed by player name")
	}
	if !strings.Contains(out, "Game loaded successfully!") {
		t.Error("expected the load confirmation")
	}
	if !strings.Contains(out, "Hero - Level 1 Rogue") {
		t.Error("expected the restored character's stats")
	}
}

func TestLoad_NoSaves(t *testing.T) {
	out := runScript(t, testCfg(t), "2\n3\n")
	if !strings.Contains(out, "No saved games found!") {
		t.Error("expected the no-saves message")
	}
}

func TestSaveFileName(t *testing.T) {
	if got := saveFileName("Conan"); got != "conan_save.json" {
		t.Errorf("saveFileName = %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"hero", "Hero"},
		{"", ""},
		{"x", "X"},
	}
	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
