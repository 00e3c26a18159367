// Package tilemap is the real-time front end: the current location drawn
// as a tile grid the player walks around with the arrow keys. Encounters
// trigger on movement; during combat the enemy's reply is deferred through
// a timed tea.Tick callback rather than a blocking wait, so the engine's
// turn protocol stays strictly serialized while the UI keeps animating.
package tilemap

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/okrause/emberfell/config"
	"github.com/okrause/emberfell/engine"
	"github.com/okrause/emberfell/engine/dice"
	"github.com/okrause/emberfell/engine/economy"
	"github.com/okrause/emberfell/types"
	"github.com/okrause/emberfell/world"
)

// Grid dimensions of a location map, border included.
const (
	gridW = 13
	gridH = 9
)

// enemyTurnDelay is how long the enemy "thinks" before its deferred turn
// resolves.
const enemyTurnDelay = 600 * time.Millisecond

// enemyTurnMsg fires when the deferred enemy turn is due.
type enemyTurnMsg struct{}

// mode is the tilemap front end's top-level state.
type mode int

const (
	modeName mode = iota
	modeClass
	modeWalk
	modeCombat
	modeGameOver
)

// gate is an edge tile leading to a connected location.
type gate struct {
	x, y int
	dest string // location ID
}

// Model is the Bubble Tea model for the tile-map front end.
type Model struct {
	defs *world.Defs
	cfg  config.Config

	game *engine.Game
	enc  *engine.Encounter

	mode      mode
	nameInput textinput.Model

	px, py int // player tile position
	gates  []gate
	shopX  int // shop tile, -1 when the location has none
	shopY  int

	pendingEnemy bool // player action resolved, enemy turn scheduled
	log          []string

	width  int
	height int
}

// New creates a tile-map model for the given campaign.
func New(defs *world.Defs, cfg config.Config) Model {
	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.Focus()
	ti.CharLimit = 32
	return Model{
		defs:      defs,
		cfg:       cfg,
		mode:      modeName,
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

// Update handles keys, window sizing and the deferred enemy-turn timer.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case enemyTurnMsg:
		return m.resolveEnemyTurn()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	if m.mode == modeName {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.mode {
	case modeName:
		if key == "enter" {
			if strings.TrimSpace(m.nameInput.Value()) == "" {
				m.nameInput.SetValue("Hero")
			}
			m.mode = modeClass
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case modeClass:
		idx := int(key[0] - '0')
		if len(key) == 1 && idx >= 1 && idx <= len(types.PlayerArchetypes) {
			m.game = engine.NewGame(m.defs, strings.TrimSpace(m.nameInput.Value()),
				types.PlayerArchetypes[idx-1], m.cfg.Seed)
			m.game.LootChance = m.cfg.LootChance
			m.enterLocation()
			m.mode = modeWalk
			m.note(fmt.Sprintf("%s enters %s.", m.game.Player.Name, m.game.World.Location().Name))
		}
		return m, nil

	case modeWalk:
		return m.keyWalk(key)

	case modeCombat:
		return m.keyCombat(key)

	case modeGameOver:
		if key == "q" {
			return m, tea.Quit
		}
		fresh := New(m.defs, m.cfg)
		fresh.width, fresh.height = m.width, m.height
		return fresh, textinput.Blink
	}
	return m, nil
}

// keyWalk moves the player one tile and resolves what the tile holds.
func (m Model) keyWalk(key string) (tea.Model, tea.Cmd) {
	dx, dy := 0, 0
	switch key {
	case "up", "k":
		dy = -1
	case "down", "j":
		dy = 1
	case "left", "h":
		dx = -1
	case "right", "l":
		dx = 1
	case "r":
		m.game.Rest()
		m.note("You make camp and recover. HP and MP restored!")
		return m, nil
	case "q":
		return m, tea.Quit
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if m.px == m.shopX && m.py == m.shopY {
			m.buyFromShop(int(key[0] - '1'))
		}
		return m, nil
	default:
		return m, nil
	}

	nx, ny := m.px+dx, m.py+dy

	// Gates sit on the border; everything else on the border is wall.
	for _, g := range m.gates {
		if g.x == nx && g.y == ny {
			return m.travelThrough(g)
		}
	}
	if nx <= 0 || nx >= gridW-1 || ny <= 0 || ny >= gridH-1 {
		return m, nil
	}

	m.px, m.py = nx, ny

	if m.shopX == nx && m.shopY == ny {
		m.visitShop()
		return m, nil
	}

	// Each step risks an encounter, scaled by the location's danger.
	danger := m.game.World.Location().Danger
	if dice.Chance(m.game.RNG, 4+danger*3) {
		m.startCombat(m.game.StartEncounter())
	}
	return m, nil
}

// travelThrough crosses a gate into the connected location.
func (m Model) travelThrough(g gate) (tea.Model, tea.Cmd) {
	ambush, completed, err := m.game.Travel(g.dest)
	if err != nil {
		return m, nil
	}
	m.enterLocation()
	m.note(fmt.Sprintf("You arrive at %s.", m.game.World.Location().Name))
	for _, qc := range completed {
		m.note(fmt.Sprintf("QUEST COMPLETED: %s!", qc.Quest.Name))
	}
	if ambush != nil {
		m.note("You are ambushed on the road!")
		m.startCombat(ambush)
	}
	return m, nil
}

// visitShop surfaces the catalog in the log; digit keys buy while the
// player stands on the shop tile.
func (m *Model) visitShop() {
	shop := m.game.Shop()
	if shop == nil {
		return
	}
	m.note(fmt.Sprintf("%s (gold: %d)", shop.Name, m.game.Player.Gold))
	for i, it := range shop.Stock {
		m.note(fmt.Sprintf("  [%d] %s - %d gold", i+1, it.Name, economy.BuyPrice(it)))
	}
}

// buyFromShop purchases the indexed stock item, if affordable.
func (m *Model) buyFromShop(idx int) {
	shop := m.game.Shop()
	if shop == nil || idx < 0 || idx >= len(shop.Stock) {
		return
	}
	it := shop.Stock[idx]
	price, err := economy.Buy(m.game.Player, it)
	if err != nil {
		m.note("Not enough gold!")
		return
	}
	m.note(fmt.Sprintf("Bought %s for %d gold.", it.Name, price))
}

// startCombat opens the combat overlay.
func (m *Model) startCombat(enc *engine.Encounter) {
	m.enc = enc
	m.mode = modeCombat
	m.pendingEnemy = false
	m.note(fmt.Sprintf("A level %d %s attacks!", enc.Enemy.Level, enc.Enemy.Name))
}

// keyCombat resolves a player combat action and schedules the deferred
// enemy reply. Re-entrant actions while the enemy turn is pending are
// rejected here, never interleaved into resolver state.
func (m Model) keyCombat(key string) (tea.Model, tea.Cmd) {
	if m.pendingEnemy {
		return m, nil
	}

	var action engine.PlayerAction
	switch key {
	case "1", "a":
		action = engine.PlayerAction{Kind: engine.Attack}
	case "2", "s":
		action = engine.PlayerAction{Kind: engine.Special}
	case "3", "p":
		potions := m.game.Player.Potions()
		if len(potions) == 0 {
			m.note("You have no potions to use!")
			return m, nil
		}
		action = engine.PlayerAction{Kind: engine.UseItem, Potion: &potions[0]}
	case "4", "f":
		action = engine.PlayerAction{Kind: engine.Flee}
	default:
		return m, nil
	}

	out := m.enc.PlayerAct(action)
	m.noteOutcome(out)

	if m.enc.Phase.Terminal() {
		m.finishCombat()
		return m, nil
	}
	if !out.TurnUsed {
		return m, nil
	}

	m.pendingEnemy = true
	return m, tea.Tick(enemyTurnDelay, func(time.Time) tea.Msg {
		return enemyTurnMsg{}
	})
}

// resolveEnemyTurn runs the deferred enemy turn.
func (m Model) resolveEnemyTurn() (tea.Model, tea.Cmd) {
	m.pendingEnemy = false
	if m.enc == nil || m.enc.Phase.Terminal() {
		return m, nil
	}
	m.noteOutcome(m.enc.EnemyAct())
	if m.enc.Phase.Terminal() {
		m.finishCombat()
	}
	return m, nil
}

// finishCombat leaves the combat overlay and applies end-of-combat
// bookkeeping.
func (m *Model) finishCombat() {
	switch m.enc.Phase {
	case engine.Victory:
		for _, qc := range m.game.RecordVictory() {
			m.note(fmt.Sprintf("QUEST COMPLETED: %s!", qc.Quest.Name))
		}
		m.mode = modeWalk
	case engine.Escaped:
		m.mode = modeWalk
	case engine.Defeat:
		m.mode = modeGameOver
	}
	m.enc = nil
}

// enterLocation lays out the tile grid for the current location: gates on
// the border for each connection, the shop tile if there is one, player at
// the center.
func (m *Model) enterLocation() {
	loc := m.game.World.Location()

	m.gates = nil
	// Up to four gates, one per border side, in connection order.
	sides := [][2]int{
		{gridW / 2, 0},         // top
		{gridW / 2, gridH - 1}, // bottom
		{0, gridH / 2},         // left
		{gridW - 1, gridH / 2}, // right
	}
	for i, dest := range loc.Connections {
		if i >= len(sides) {
			break
		}
		m.gates = append(m.gates, gate{x: sides[i][0], y: sides[i][1], dest: dest})
	}

	m.shopX, m.shopY = -1, -1
	if loc.Shop != nil {
		m.shopX, m.shopY = gridW/2+2, gridH/2-1
	}

	m.px, m.py = gridW/2, gridH/2
}

// note appends a log line, keeping the tail short.
func (m *Model) note(line string) {
	m.log = append(m.log, line)
	if len(m.log) > 8 {
		m.log = m.log[len(m.log)-8:]
	}
}

func (m *Model) noteOutcome(out engine.Outcome) {
	for _, line := range out.Lines {
		m.note(line)
	}
}
