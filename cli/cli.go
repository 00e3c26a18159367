// Package cli is the plain-console front end: numbered menus, prompt/read
// loops, and save-file handling. It holds no game rules of its own; every
// decision is delegated to the engine and the returned outcome rendered.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okrause/emberfell/config"
	"github.com/okrause/emberfell/engine"
	"github.com/okrause/emberfell/engine/economy"
	"github.com/okrause/emberfell/engine/quest"
	"github.com/okrause/emberfell/engine/save"
	"github.com/okrause/emberfell/types"
	"github.com/okrause/emberfell/world"
)

const rule = "============================================================"

// CLI handles terminal interaction with the player.
type CLI struct {
	Defs *world.Defs
	Cfg  config.Config
	In   io.Reader
	Out  io.Writer

	game    *engine.Game
	scanner *bufio.Scanner
	eof     bool
}

// New creates a CLI for the given campaign.
func New(defs *world.Defs, cfg config.Config) *CLI {
	return &CLI{
		Defs: defs,
		Cfg:  cfg,
		In:   os.Stdin,
		Out:  os.Stdout,
	}
}

// Run shows the title and main menu and loops until the player exits.
func (c *CLI) Run() {
	c.scanner = bufio.NewScanner(c.In)

	c.printLine(rule)
	c.printLine(c.Defs.Game.Title + " v" + c.Defs.Game.Version)
	c.printLine(rule)

	for {
		c.printLine("")
		c.printLine("MAIN MENU")
		c.printLine("1. New Game")
		c.printLine("2. Load Game")
		c.printLine("3. Exit")

		switch c.readChoice(3) {
		case 1:
			c.newGame()
			if c.game != nil {
				c.gameLoop()
			}
		case 2:
			c.loadGame()
			if c.game != nil {
				c.gameLoop()
			}
		case 3:
			c.printLine("Thanks for playing! Goodbye!")
			return
		case 0:
			return // input exhausted
		}
	}
}

// newGame runs character creation.
func (c *CLI) newGame() {
	c.printLine("")
	c.printLine("CHARACTER CREATION")

	c.print("Enter your character's name: ")
	name := c.readLine()
	if name == "" {
		name = "Hero"
	}

	c.printLine("")
	c.printLine("Choose your class:")
	c.printLine("1. Warrior - High strength and HP, powerful physical attacks")
	c.printLine("2. Mage - High intelligence and MP, devastating magic attacks")
	c.printLine("3. Rogue - High agility, critical hits and evasion")

	choice := c.readChoice(3)
	if choice == 0 {
		return
	}
	archetype := types.PlayerArchetypes[choice-1]

	c.game = engine.NewGame(c.Defs, name, archetype, c.Cfg.Seed)
	c.game.LootChance = c.Cfg.LootChance

	c.printLine("")
	c.printLine(fmt.Sprintf("%s the %s has been created!", name, archetype))
	c.printStats()
	if c.Defs.Game.Intro != "" {
		c.printLine("")
		c.printLine(c.Defs.Game.Intro)
	}
}

// gameLoop runs the per-location action menu until the session ends.
func (c *CLI) gameLoop() {
	for c.game != nil {
		loc := c.game.World.Location()
		c.printLine("")
		c.printLine(rule)
		c.printLine("Location: " + loc.Name)
		c.printLine(loc.Description)
		if loc.Shop != nil {
			c.printLine("A merchant's shop is here: " + loc.Shop.Name)
		}
		c.printLine(rule)

		c.printLine("")
		c.printLine("What would you like to do?")
		c.printLine("1. View Stats")
		c.printLine("2. Inventory")
		c.printLine("3. Explore (Random Encounter)")
		c.printLine("4. Travel")
		c.printLine("5. Visit Shop")
		c.printLine("6. Quests")
		c.printLine("7. Rest (Restore HP/MP)")
		c.printLine("8. Save Game")
		c.printLine("9. Main Menu")

		switch c.readChoice(9) {
		case 1:
			c.printStats()
		case 2:
			c.inventoryMenu()
		case 3:
			c.explore()
		case 4:
			c.travel()
		case 5:
			c.shopMenu()
		case 6:
			c.questMenu()
		case 7:
			c.game.Rest()
			c.printLine("")
			c.printLine("You rest and recover your strength. HP and MP fully restored!")
		case 8:
			c.saveGame()
		case 9, 0:
			c.printLine("Returning to main menu...")
			c.game = nil
		}
	}
}

// explore triggers a random encounter or a lucky find.
func (c *CLI) explore() {
	c.printLine("")
	c.printLine("You explore the area...")

	res := c.game.Explore()
	switch {
	case res.Encounter != nil:
		c.runCombat(res.Encounter)
	case res.FoundGold > 0:
		c.printLine(fmt.Sprintf("You found %d gold!", res.FoundGold))
	default:
		c.printLine("Nothing interesting happens...")
	}
}

// travel presents the connection menu and resolves ambushes.
func (c *CLI) travel() {
	conns := c.game.World.Connections()
	if len(conns) == 0 {
		c.printLine("No other locations to travel to from here!")
		return
	}

	c.printLine("")
	c.printLine("Available destinations:")
	for i, loc := range conns {
		c.printLine(fmt.Sprintf("%d. %s", i+1, loc.Name))
	}
	c.printLine(fmt.Sprintf("%d. Cancel", len(conns)+1))

	choice := c.readChoice(len(conns) + 1)
	if choice == 0 || choice == len(conns)+1 {
		return
	}

	dest := conns[choice-1]
	ambush, completed, err := c.game.Travel(dest.ID)
	if err != nil {
		c.printLine("You can't get there from here.")
		return
	}
	c.printLine(fmt.Sprintf("Traveling to %s...", dest.Name))
	c.printCompletions(completed)

	if ambush != nil {
		c.printLine("")
		c.printLine("You are ambushed during travel!")
		c.runCombat(ambush)
	}
}

// runCombat drives one encounter from start to a terminal phase.
func (c *CLI) runCombat(enc *engine.Encounter) {
	c.printLine("")
	c.printLine(fmt.Sprintf("COMBAT START: %s vs %s (Level %d)",
		enc.Player.Name, enc.Enemy.Name, enc.Enemy.Level))

	for !enc.Phase.Terminal() && !c.eof {
		c.printLine("")
		c.printLine(fmt.Sprintf("TURN %d", enc.Round))
		c.printLine(fmt.Sprintf("%s: HP %d/%d | MP %d/%d",
			enc.Player.Name, enc.Player.HP, enc.Player.MaxHP, enc.Player.MP, enc.Player.MaxMP))
		c.printLine(fmt.Sprintf("%s: HP %d/%d", enc.Enemy.Name, enc.Enemy.HP, enc.Enemy.MaxHP))

		action, ok := c.promptAction(enc)
		if !ok {
			continue
		}
		out := enc.PlayerAct(action)
		c.printOutcome(out)
		if !out.TurnUsed || enc.Phase.Terminal() {
			continue
		}

		out = enc.EnemyAct()
		c.printOutcome(out)
	}

	switch enc.Phase {
	case engine.Victory:
		c.printCompletions(c.game.RecordVictory())
	case engine.Defeat:
		c.gameOver()
	}
}

// promptAction reads one combat action. ok is false when the selection was
// invalid and the menu should be shown again.
func (c *CLI) promptAction(enc *engine.Encounter) (engine.PlayerAction, bool) {
	abilityName, cost, _ := engine.AbilityName(enc.Player.Archetype)

	c.printLine("")
	c.printLine("Your turn! Choose an action:")
	c.printLine("1. Attack")
	c.printLine(fmt.Sprintf("2. %s (%d MP)", abilityName, cost))
	c.printLine("3. Use Item")
	c.printLine("4. Defend")
	c.printLine("5. Run")

	switch c.readChoice(5) {
	case 1:
		return engine.PlayerAction{Kind: engine.Attack}, true
	case 2:
		return engine.PlayerAction{Kind: engine.Special}, true
	case 3:
		potion, ok := c.choosePotion()
		if !ok {
			return engine.PlayerAction{}, false
		}
		return engine.PlayerAction{Kind: engine.UseItem, Potion: &potion}, true
	case 4:
		return engine.PlayerAction{Kind: engine.Defend}, true
	case 5:
		return engine.PlayerAction{Kind: engine.Flee}, true
	default:
		return engine.PlayerAction{}, false
	}
}

// choosePotion lists the player's potions and reads a selection.
func (c *CLI) choosePotion() (types.Item, bool) {
	potions := c.game.Player.Potions()
	if len(potions) == 0 {
		c.printLine("You have no potions to use!")
		return types.Item{}, false
	}

	c.printLine("")
	c.printLine("Available potions:")
	for i, p := range potions {
		c.printLine(fmt.Sprintf("%d. %s - Heals %d HP", i+1, p.Name, p.Power))
	}
	c.printLine(fmt.Sprintf("%d. Cancel", len(potions)+1))

	choice := c.readChoice(len(potions) + 1)
	if choice == 0 || choice == len(potions)+1 {
		return types.Item{}, false
	}
	return potions[choice-1], true
}

// inventoryMenu lets the player inspect, use/equip and drop items.
func (c *CLI) inventoryMenu() {
	p := c.game.Player
	for {
		c.printLine("")
		c.printLine("INVENTORY")
		c.printLine(fmt.Sprintf("Gold: %d", p.Gold))

		if len(p.Inventory) == 0 {
			c.printLine("Your inventory is empty!")
			return
		}
		for i, it := range p.Inventory {
			c.printLine(fmt.Sprintf("%d. %s (%s) - %s", i+1, it.Name, it.Kind, it.Description))
		}

		c.printLine("")
		c.printLine("1. Use/Equip Item")
		c.printLine("2. Drop Item")
		c.printLine("3. Back")

		switch c.readChoice(3) {
		case 1:
			c.useItem()
		case 2:
			c.dropItem()
		default:
			return
		}
	}
}

func (c *CLI) useItem() {
	p := c.game.Player
	c.print(fmt.Sprintf("Enter item number (1-%d): ", len(p.Inventory)))
	n := c.readChoice(len(p.Inventory))
	if n == 0 {
		return
	}
	it := p.Inventory[n-1]

	switch it.Kind {
	case types.KindWeapon:
		p.EquipWeapon(it)
		c.printLine(fmt.Sprintf("Equipped %s!", it.Name))
	case types.KindArmor:
		p.EquipArmor(it)
		c.printLine(fmt.Sprintf("Equipped %s!", it.Name))
	case types.KindPotion:
		p.Heal(it.Power)
		p.RemoveItem(it)
		c.printLine(fmt.Sprintf("Used %s! Restored %d HP. (%d/%d)", it.Name, it.Power, p.HP, p.MaxHP))
	default:
		c.printLine("This item cannot be used right now.")
	}
}

func (c *CLI) dropItem() {
	p := c.game.Player
	c.print(fmt.Sprintf("Enter item number to drop (1-%d): ", len(p.Inventory)))
	n := c.readChoice(len(p.Inventory))
	if n == 0 {
		return
	}
	it := p.Inventory[n-1]
	p.RemoveItem(it)
	c.printLine(fmt.Sprintf("Dropped %s", it.Name))
}

// shopMenu runs the buy/sell loop at the current location's shop.
func (c *CLI) shopMenu() {
	shop := c.game.Shop()
	if shop == nil {
		c.printLine("There is no shop here.")
		return
	}

	for {
		c.printLine("")
		c.printLine("Welcome to " + shop.Name + "!")
		for i, it := range shop.Stock {
			c.printLine(fmt.Sprintf("%d. %s (%s) - %d gold", i+1, it.Name, it.Kind, economy.BuyPrice(it)))
			if it.Description != "" {
				c.printLine("   " + it.Description)
			}
		}
		c.printLine(fmt.Sprintf("Your gold: %d", c.game.Player.Gold))
		c.printLine("")
		c.printLine("1. Buy Item")
		c.printLine("2. Sell Item")
		c.printLine("3. Leave Shop")

		switch c.readChoice(3) {
		case 1:
			c.buyItem(shop)
		case 2:
			c.sellItem()
		default:
			c.printLine("Thank you for your business!")
			return
		}
	}
}

func (c *CLI) buyItem(shop *types.ShopDef) {
	c.print(fmt.Sprintf("Enter item number (1-%d): ", len(shop.Stock)))
	n := c.readChoice(len(shop.Stock))
	if n == 0 {
		return
	}
	it := shop.Stock[n-1]
	price, err := economy.Buy(c.game.Player, it)
	if err != nil {
		c.printLine(fmt.Sprintf("Not enough gold! Need %d gold, have %d gold.", price, c.game.Player.Gold))
		return
	}
	c.printLine(fmt.Sprintf("Purchased %s for %d gold!", it.Name, price))
}

func (c *CLI) sellItem() {
	p := c.game.Player
	if len(p.Inventory) == 0 {
		c.printLine("You have nothing to sell!")
		return
	}
	c.printLine("")
	c.printLine("Your inventory:")
	for i, it := range p.Inventory {
		c.printLine(fmt.Sprintf("%d. %s - Sell for %d gold", i+1, it.Name, economy.SellPrice(it)))
	}
	c.print(fmt.Sprintf("Enter item number (1-%d): ", len(p.Inventory)))
	n := c.readChoice(len(p.Inventory))
	if n == 0 {
		return
	}
	it := p.Inventory[n-1]
	price, err := economy.Sell(p, it)
	if err != nil {
		c.printLine("You don't have that.")
		return
	}
	c.printLine(fmt.Sprintf("Sold %s for %d gold!", it.Name, price))
}

// questMenu shows quest states and accepts available quests.
func (c *CLI) questMenu() {
	tracker := c.game.World.Tracker
	for {
		c.printLine("")
		c.printLine("QUESTS")

		active := tracker.WithStatus(quest.Active)
		available := tracker.WithStatus(quest.Available)
		completed := tracker.WithStatus(quest.Completed)

		if len(active) > 0 {
			c.printLine("")
			c.printLine("Active Quests:")
			for _, q := range active {
				c.printQuest(q)
			}
		}
		if len(available) > 0 {
			c.printLine("")
			c.printLine("Available Quests:")
			for i, q := range available {
				c.printLine(fmt.Sprintf("%d. %s", i+1, q.Name))
				c.printLine("   " + q.Description)
				c.printLine(fmt.Sprintf("   Rewards: %d gold, %d exp", q.RewardGold, q.RewardExp))
			}
		}
		if len(completed) > 0 {
			c.printLine("")
			c.printLine("Completed Quests:")
			for _, q := range completed {
				c.printLine("- " + q.Name)
			}
		}

		c.printLine("")
		if len(available) > 0 {
			c.printLine("1. Accept Quest")
		}
		c.printLine("2. Back")

		switch c.readChoice(2) {
		case 1:
			if len(available) == 0 {
				return
			}
			c.print(fmt.Sprintf("Enter quest number (1-%d): ", len(available)))
			n := c.readChoice(len(available))
			if n == 0 {
				continue
			}
			q := available[n-1]
			if err := q.Accept(); err == nil {
				c.printLine(fmt.Sprintf("Accepted quest: %s!", q.Name))
			}
		default:
			return
		}
	}
}

func (c *CLI) printQuest(q *quest.Quest) {
	c.printLine(fmt.Sprintf("[%s] %s", strings.ToUpper(string(q.Status)), q.Name))
	c.printLine("Description: " + q.Description)
	reward := fmt.Sprintf("Rewards: %d gold, %d exp", q.RewardGold, q.RewardExp)
	if q.RewardItem != nil {
		reward += ", " + q.RewardItem.Name
	}
	c.printLine(reward)
}

// printCompletions announces newly completed quests and their rewards.
func (c *CLI) printCompletions(completed []engine.QuestCompletion) {
	for _, qc := range completed {
		c.printLine("")
		c.printLine(fmt.Sprintf("QUEST COMPLETED: %s!", qc.Quest.Name))
		c.printLine(fmt.Sprintf("Rewards: %d gold, %d exp", qc.Quest.RewardGold, qc.Quest.RewardExp))
		if qc.Quest.RewardItem != nil {
			c.printLine(fmt.Sprintf("Received: %s!", qc.Quest.RewardItem.Name))
		}
		if qc.LeveledUp {
			c.printLine(fmt.Sprintf("*** LEVEL UP! %s is now level %d! ***",
				c.game.Player.Name, c.game.Player.Level))
		}
	}
}

func (c *CLI) printStats() {
	p := c.game.Player
	c.printLine("")
	c.printLine(rule)
	c.printLine(fmt.Sprintf("%s - Level %d %s", p.Name, p.Level, p.Archetype))
	c.printLine(fmt.Sprintf("HP: %d/%d | MP: %d/%d", p.HP, p.MaxHP, p.MP, p.MaxMP))
	c.printLine(fmt.Sprintf("Experience: %d/%d", p.Exp, p.Level*100))
	c.printLine(fmt.Sprintf("Strength: %d | Intelligence: %d", p.Strength, p.Intelligence))
	c.printLine(fmt.Sprintf("Agility: %d | Defense: %d", p.Agility, p.Defense))
	c.printLine(fmt.Sprintf("Gold: %d", p.Gold))
	if p.Weapon != nil {
		c.printLine(fmt.Sprintf("Weapon: %s (+%d damage)", p.Weapon.Name, p.Weapon.Power))
	}
	if p.Armor != nil {
		c.printLine(fmt.Sprintf("Armor: %s (+%d defense)", p.Armor.Name, p.Armor.Power))
	}
	c.printLine(rule)
}

// gameOver prints the end-of-run report and returns to the main menu.
func (c *CLI) gameOver() {
	p := c.game.Player
	c.printLine("")
	c.printLine(rule)
	c.printLine("GAME OVER")
	c.printLine(fmt.Sprintf("%s has fallen in battle...", p.Name))
	c.printLine(fmt.Sprintf("Level reached: %d", p.Level))
	c.printLine(fmt.Sprintf("Enemies defeated: %d", c.game.World.EnemiesDefeated))
	c.printLine(fmt.Sprintf("Gold earned: %d", p.Gold))
	c.printLine(rule)
	c.game = nil
}

// saveGame writes the snapshot to <savedir>/<name>_save.json.
func (c *CLI) saveGame() {
	data, err := save.Marshal(c.game.Snapshot())
	if err != nil {
		c.printLine(fmt.Sprintf("Error saving game: %v", err))
		return
	}
	if err := os.MkdirAll(c.Cfg.SaveDir, 0o755); err != nil {
		c.printLine(fmt.Sprintf("Error saving game: %v", err))
		return
	}
	path := filepath.Join(c.Cfg.SaveDir, saveFileName(c.game.Player.Name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printLine(fmt.Sprintf("Error saving game: %v", err))
		return
	}
	c.printLine("Game saved successfully!")
}

// loadGame lists save files and restores the chosen one. Failures are
// recoverable: the menu state is untouched.
func (c *CLI) loadGame() {
	names := listSaves(c.Cfg.SaveDir)
	if len(names) == 0 {
		c.printLine("No saved games found!")
		return
	}

	c.printLine("")
	c.printLine("LOAD GAME")
	for i, name := range names {
		c.printLine(fmt.Sprintf("%d. %s", i+1, name))
	}
	c.printLine(fmt.Sprintf("%d. Cancel", len(names)+1))

	choice := c.readChoice(len(names) + 1)
	if choice == 0 || choice == len(names)+1 {
		return
	}

	path := filepath.Join(c.Cfg.SaveDir, saveFileName(names[choice-1]))
	data, err := os.ReadFile(path)
	if err != nil {
		c.printLine(fmt.Sprintf("Error loading game: %v", err))
		return
	}
	sd, err := save.Unmarshal(data)
	if err != nil {
		c.printLine(fmt.Sprintf("Error loading game: %v", err))
		return
	}

	c.game = engine.Restore(c.Defs, sd)
	c.game.LootChance = c.Cfg.LootChance
	c.printLine("Game loaded successfully!")
	c.printStats()
}

// saveFileName maps a player name to its save file.
func saveFileName(player string) string {
	return strings.ToLower(player) + "_save.json"
}

// listSaves returns the player names with save files in dir.
func listSaves(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_save.json") {
			base := strings.TrimSuffix(e.Name(), "_save.json")
			names = append(names, titleCase(base))
		}
	}
	return names
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (c *CLI) printOutcome(out engine.Outcome) {
	for _, line := range out.Lines {
		c.printLine(line)
	}
}

// readChoice reads a menu selection in [1, max]. Invalid input re-prompts;
// 0 means the input source is exhausted.
func (c *CLI) readChoice(max int) int {
	for {
		c.print("> ")
		if !c.scanner.Scan() {
			c.eof = true
			return 0
		}
		text := strings.TrimSpace(c.scanner.Text())
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > max {
			c.printLine("Invalid choice! Please try again.")
			continue
		}
		return n
	}
}

func (c *CLI) readLine() string {
	if !c.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(c.scanner.Text())
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}
