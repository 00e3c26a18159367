// Package tui is the widget-based front end: lipgloss panes, a scrolling
// narrative viewport, and single-key menus driven by Bubble Tea. Like the
// other front ends it only calls the engine's public contract and renders
// what comes back.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/okrause/emberfell/config"
	"github.com/okrause/emberfell/engine"
	"github.com/okrause/emberfell/engine/economy"
	"github.com/okrause/emberfell/engine/quest"
	"github.com/okrause/emberfell/engine/save"
	"github.com/okrause/emberfell/types"
	"github.com/okrause/emberfell/world"
)

// screen identifies which menu the key handler is serving.
type screen int

const (
	screenName screen = iota
	screenClass
	screenWorld
	screenCombat
	screenPotion
	screenShop
	screenQuests
	screenInventory
	screenTravel
	screenGameOver
)

// Model is the Bubble Tea model for the Emberfell TUI.
type Model struct {
	defs *world.Defs
	cfg  config.Config

	game *engine.Game
	enc  *engine.Encounter

	screen    screen
	nameInput textinput.Model
	viewport  viewport.Model
	lines     []string

	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates a TUI model for the given campaign.
func New(defs *world.Defs, cfg config.Config) Model {
	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.Focus()
	ti.CharLimit = 32

	return Model{
		defs:      defs,
		cfg:       cfg,
		screen:    screenName,
		nameInput: ti,
	}
}

// Run starts the Bubble Tea program.
func Run(defs *world.Defs, cfg config.Config) error {
	p := tea.NewProgram(New(defs, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, window sizing, and screen transitions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := m.height - 10
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(m.width-4, vpHeight)
			m.ready = true
			m.log(m.defs.Game.Title + " v" + m.defs.Game.Version)
			if m.defs.Game.Intro != "" {
				m.log(m.defs.Game.Intro)
			}
			m.log("")
		} else {
			m.viewport.Width = m.width - 4
			m.viewport.Height = vpHeight
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	if m.screen == screenName {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey dispatches a key press to the current screen's handler.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// The name prompt is the only text-entry screen.
	if m.screen == screenName {
		if key == "enter" {
			name := strings.TrimSpace(m.nameInput.Value())
			if name == "" {
				name = "Hero"
			}
			m.nameInput.SetValue(name)
			m.screen = screenClass
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	switch key {
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case "q":
		if m.screen == screenWorld || m.screen == screenGameOver {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.screen {
	case screenClass:
		return m.keyClass(key)
	case screenWorld:
		return m.keyWorld(key)
	case screenCombat:
		return m.keyCombat(key)
	case screenPotion:
		return m.keyPotion(key)
	case screenShop:
		return m.keyShop(key)
	case screenQuests:
		return m.keyQuests(key)
	case screenInventory:
		return m.keyInventory(key)
	case screenTravel:
		return m.keyTravel(key)
	case screenGameOver:
		// Any key returns to a fresh character.
		m = New(m.defs, m.cfg)
		m.width, m.height = 0, 0
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) keyClass(key string) (tea.Model, tea.Cmd) {
	idx := digit(key)
	if idx < 1 || idx > len(types.PlayerArchetypes) {
		return m, nil
	}
	archetype := types.PlayerArchetypes[idx-1]
	m.game = engine.NewGame(m.defs, m.nameInput.Value(), archetype, m.cfg.Seed)
	m.game.LootChance = m.cfg.LootChance
	m.screen = screenWorld
	m.log(fmt.Sprintf("%s the %s sets out from %s.",
		m.game.Player.Name, archetype, m.game.World.Location().Name))
	m.refresh()
	return m, nil
}

func (m Model) keyWorld(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "e":
		res := m.game.Explore()
		switch {
		case res.Encounter != nil:
			m.startCombat(res.Encounter)
		case res.FoundGold > 0:
			m.log(fmt.Sprintf("You found %d gold!", res.FoundGold))
		default:
			m.log("Nothing interesting happens...")
		}
	case "t":
		m.screen = screenTravel
	case "s":
		if m.game.Shop() != nil {
			m.screen = screenShop
		}
	case "i":
		m.screen = screenInventory
	case "u":
		m.screen = screenQuests
	case "r":
		m.game.Rest()
		m.log("You rest and recover your strength. HP and MP fully restored!")
	case "v":
		m.saveGame()
	case "l":
		m.loadGame()
	}
	m.refresh()
	return m, nil
}

func (m Model) keyCombat(key string) (tea.Model, tea.Cmd) {
	var action engine.PlayerAction
	switch key {
	case "1", "a":
		action = engine.PlayerAction{Kind: engine.Attack}
	case "2", "s":
		action = engine.PlayerAction{Kind: engine.Special}
	case "3", "p":
		if len(m.game.Player.Potions()) == 0 {
			m.log("You have no potions to use!")
			m.refresh()
			return m, nil
		}
		m.screen = screenPotion
		m.refresh()
		return m, nil
	case "4", "d":
		action = engine.PlayerAction{Kind: engine.Defend}
	case "5", "f":
		action = engine.PlayerAction{Kind: engine.Flee}
	default:
		return m, nil
	}
	m.resolvePlayerAction(action)
	m.refresh()
	return m, nil
}

func (m Model) keyPotion(key string) (tea.Model, tea.Cmd) {
	if key == "esc" || key == "c" {
		m.screen = screenCombat
		m.refresh()
		return m, nil
	}
	potions := m.game.Player.Potions()
	idx := digit(key)
	if idx < 1 || idx > len(potions) {
		return m, nil
	}
	m.screen = screenCombat
	m.resolvePlayerAction(engine.PlayerAction{Kind: engine.UseItem, Potion: &potions[idx-1]})
	m.refresh()
	return m, nil
}

// resolvePlayerAction runs one player action and, when a turn was consumed
// and combat continues, the enemy's reply.
func (m *Model) resolvePlayerAction(action engine.PlayerAction) {
	out := m.enc.PlayerAct(action)
	m.logOutcome(out)
	if out.TurnUsed && !m.enc.Phase.Terminal() {
		m.logOutcome(m.enc.EnemyAct())
	}
	m.finishCombatIfDone()
}

// startCombat switches to the combat screen for the given encounter.
func (m *Model) startCombat(enc *engine.Encounter) {
	m.enc = enc
	m.screen = screenCombat
	m.log("")
	m.log(fmt.Sprintf("COMBAT START: %s vs %s (Level %d)",
		enc.Player.Name, enc.Enemy.Name, enc.Enemy.Level))
}

// finishCombatIfDone handles terminal phases: rewards, quest evaluation,
// or game over.
func (m *Model) finishCombatIfDone() {
	if m.enc == nil || !m.enc.Phase.Terminal() {
		return
	}
	switch m.enc.Phase {
	case engine.Victory:
		m.logCompletions(m.game.RecordVictory())
		m.screen = screenWorld
	case engine.Escaped:
		m.screen = screenWorld
	case engine.Defeat:
		m.screen = screenGameOver
	}
	m.enc = nil
}

func (m Model) keyShop(key string) (tea.Model, tea.Cmd) {
	shop := m.game.Shop()
	if shop == nil || key == "esc" || key == "c" {
		m.screen = screenWorld
		m.refresh()
		return m, nil
	}
	if idx := digit(key); idx >= 1 && idx <= len(shop.Stock) {
		it := shop.Stock[idx-1]
		price, err := economy.Buy(m.game.Player, it)
		if err != nil {
			m.log(fmt.Sprintf("Not enough gold! Need %d gold, have %d gold.", price, m.game.Player.Gold))
		} else {
			m.log(fmt.Sprintf("Purchased %s for %d gold!", it.Name, price))
		}
	}
	m.refresh()
	return m, nil
}

func (m Model) keyQuests(key string) (tea.Model, tea.Cmd) {
	if key == "esc" || key == "c" {
		m.screen = screenWorld
		m.refresh()
		return m, nil
	}
	available := m.game.World.Tracker.WithStatus(quest.Available)
	if idx := digit(key); idx >= 1 && idx <= len(available) {
		q := available[idx-1]
		if err := q.Accept(); err == nil {
			m.log(fmt.Sprintf("Accepted quest: %s!", q.Name))
		}
	}
	m.refresh()
	return m, nil
}

func (m Model) keyInventory(key string) (tea.Model, tea.Cmd) {
	if key == "esc" || key == "c" {
		m.screen = screenWorld
		m.refresh()
		return m, nil
	}
	p := m.game.Player
	if idx := digit(key); idx >= 1 && idx <= len(p.Inventory) {
		it := p.Inventory[idx-1]
		switch it.Kind {
		case types.KindWeapon:
			p.EquipWeapon(it)
			m.log(fmt.Sprintf("Equipped %s!", it.Name))
		case types.KindArmor:
			p.EquipArmor(it)
			m.log(fmt.Sprintf("Equipped %s!", it.Name))
		case types.KindPotion:
			p.Heal(it.Power)
			p.RemoveItem(it)
			m.log(fmt.Sprintf("Used %s! Restored %d HP.", it.Name, it.Power))
		default:
			m.log("This item cannot be used right now.")
		}
	}
	m.refresh()
	return m, nil
}

func (m Model) keyTravel(key string) (tea.Model, tea.Cmd) {
	if key == "esc" || key == "c" {
		m.screen = screenWorld
		m.refresh()
		return m, nil
	}
	conns := m.game.World.Connections()
	idx := digit(key)
	if idx < 1 || idx > len(conns) {
		return m, nil
	}
	dest := conns[idx-1]
	ambush, completed, err := m.game.Travel(dest.ID)
	if err != nil {
		m.log("You can't get there from here.")
		m.refresh()
		return m, nil
	}
	m.screen = screenWorld
	m.log(fmt.Sprintf("Traveling to %s...", dest.Name))
	m.logCompletions(completed)
	if ambush != nil {
		m.log("You are ambushed during travel!")
		m.startCombat(ambush)
	}
	m.refresh()
	return m, nil
}

// saveGame writes the snapshot under the configured save directory.
func (m *Model) saveGame() {
	data, err := save.Marshal(m.game.Snapshot())
	if err == nil {
		err = os.MkdirAll(m.cfg.SaveDir, 0o755)
	}
	if err == nil {
		path := filepath.Join(m.cfg.SaveDir, strings.ToLower(m.game.Player.Name)+"_save.json")
		err = os.WriteFile(path, data, 0o644)
	}
	if err != nil {
		m.log(fmt.Sprintf("Error saving game: %v", err))
		return
	}
	m.log("Game saved successfully!")
}

// loadGame restores this player's save, if present. Failures leave the
// running session untouched.
func (m *Model) loadGame() {
	path := filepath.Join(m.cfg.SaveDir, strings.ToLower(m.game.Player.Name)+"_save.json")
	data, err := os.ReadFile(path)
	if err != nil {
		m.log("No saved game found!")
		return
	}
	sd, err := save.Unmarshal(data)
	if err != nil {
		m.log(fmt.Sprintf("Error loading game: %v", err))
		return
	}
	m.game = engine.Restore(m.defs, sd)
	m.game.LootChance = m.cfg.LootChance
	m.log("Game loaded successfully!")
}

// log appends a narrative line.
func (m *Model) log(line string) {
	m.lines = append(m.lines, line)
}

func (m *Model) logOutcome(out engine.Outcome) {
	for _, line := range out.Lines {
		m.log(line)
	}
}

func (m *Model) logCompletions(completed []engine.QuestCompletion) {
	for _, qc := range completed {
		m.log(fmt.Sprintf("QUEST COMPLETED: %s! Rewards: %d gold, %d exp",
			qc.Quest.Name, qc.Quest.RewardGold, qc.Quest.RewardExp))
		if qc.Quest.RewardItem != nil {
			m.log(fmt.Sprintf("Received: %s!", qc.Quest.RewardItem.Name))
		}
		if qc.LeveledUp {
			m.log(fmt.Sprintf("*** LEVEL UP! %s is now level %d! ***",
				m.game.Player.Name, m.game.Player.Level))
		}
	}
}

// refresh re-renders the narrative viewport and scrolls to the bottom.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	styled := make([]string, len(m.lines))
	for i, line := range m.lines {
		styled[i] = styleLine(line)
	}
	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// digit parses a single menu digit; 0 means not a digit.
func digit(key string) int {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0
	}
	return int(key[0] - '0')
}
