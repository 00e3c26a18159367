package tilemap

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okrause/emberfell/engine"
)

// Tile styles. Each tile renders as two cells so the grid reads square.
var (
	tileWall = lipgloss.NewStyle().
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("244"))

	tileGround = lipgloss.NewStyle().
			Background(lipgloss.Color("22")).
			Foreground(lipgloss.Color("28"))

	tileGate = lipgloss.NewStyle().
			Background(lipgloss.Color("94")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	tileShop = lipgloss.NewStyle().
			Background(lipgloss.Color("25")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	tilePlayer = lipgloss.NewStyle().
			Background(lipgloss.Color("22")).
			Foreground(lipgloss.Color("220")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	combatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)
)

// View renders the current mode.
func (m Model) View() string {
	switch m.mode {
	case modeName:
		return m.center(titleStyle.Render(m.defs.Game.Title) + "\n\n" + m.nameInput.View())
	case modeClass:
		return m.center(strings.Join([]string{
			titleStyle.Render("Choose your class, " + m.nameInput.Value() + ":"),
			"",
			"[1] Warrior   [2] Mage   [3] Rogue",
		}, "\n"))
	case modeGameOver:
		return m.center(strings.Join([]string{
			combatStyle.Render("GAME OVER"),
			"",
			fmt.Sprintf("%s has fallen in battle...", m.game.Player.Name),
			fmt.Sprintf("Level %d, %d enemies defeated, %d gold",
				m.game.Player.Level, m.game.World.EnemiesDefeated, m.game.Player.Gold),
			"",
			"Press any key for a new adventure, q to quit.",
		}, "\n"))
	}

	grid := m.renderGrid()
	side := m.renderSide()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(grid),
		panelStyle.Render(side),
	)
	return body + "\n" + m.renderLog()
}

func (m Model) center(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		panelStyle.Render(content))
}

// renderGrid draws the location as a tile grid with the player token.
func (m Model) renderGrid() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.game.World.Location().Name))
	b.WriteByte('\n')
	for y := 0; y < gridH; y++ {
		for x := 0; x < gridW; x++ {
			b.WriteString(m.tileAt(x, y))
		}
		if y < gridH-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) tileAt(x, y int) string {
	if x == m.px && y == m.py {
		return tilePlayer.Render("@ ")
	}
	for _, g := range m.gates {
		if g.x == x && g.y == y {
			return tileGate.Render("O ")
		}
	}
	if x == m.shopX && y == m.shopY {
		return tileShop.Render("$ ")
	}
	if x == 0 || x == gridW-1 || y == 0 || y == gridH-1 {
		return tileWall.Render("# ")
	}
	return tileGround.Render(". ")
}

// renderSide draws the stat panel, plus the combat overlay when fighting.
func (m Model) renderSide() string {
	p := m.game.Player
	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s  Lv%d %s", p.Name, p.Level, p.Archetype)),
		fmt.Sprintf("HP %d/%d   MP %d/%d", p.HP, p.MaxHP, p.MP, p.MaxMP),
		fmt.Sprintf("Gold %d   XP %d/%d", p.Gold, p.Exp, p.Level*100),
		fmt.Sprintf("Kills %d", m.game.World.EnemiesDefeated),
		"",
	}

	if m.mode == modeCombat && m.enc != nil {
		e := m.enc.Enemy
		lines = append(lines,
			combatStyle.Render(fmt.Sprintf("%s  Lv%d", e.Name, e.Level)),
			combatStyle.Render(fmt.Sprintf("HP %d/%d", e.HP, e.MaxHP)),
			"",
		)
		if m.pendingEnemy {
			lines = append(lines, dimStyle.Render("The enemy readies its attack..."))
		} else {
			name, cost, _ := engine.AbilityName(p.Archetype)
			lines = append(lines,
				"[1] Attack",
				fmt.Sprintf("[2] %s (%d MP)", name, cost),
				"[3] Potion",
				"[4] Flee",
			)
		}
	} else {
		lines = append(lines,
			dimStyle.Render("arrows/hjkl move"),
			dimStyle.Render("O gates travel, $ is the shop"),
			dimStyle.Render("[r] rest  [q] quit"),
		)
	}
	return strings.Join(lines, "\n")
}

// renderLog draws the rolling message tail under the panels.
func (m Model) renderLog() string {
	if len(m.log) == 0 {
		return ""
	}
	return panelStyle.Render(strings.Join(m.log, "\n"))
}
