package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okrause/emberfell/engine"
	"github.com/okrause/emberfell/engine/economy"
	"github.com/okrause/emberfell/engine/quest"
)

// View renders the current screen: narrative pane, menu pane, status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	switch m.screen {
	case screenName:
		return m.viewCreation("Who rides into Emberfell?\n\n" + m.nameInput.View())
	case screenClass:
		return m.viewCreation(strings.Join([]string{
			"Choose your class, " + m.nameInput.Value() + ":",
			"",
			menuItem("1", "Warrior - High strength and HP, powerful physical attacks"),
			menuItem("2", "Mage - High intelligence and MP, devastating magic attacks"),
			menuItem("3", "Rogue - High agility, critical hits and evasion"),
		}, "\n"))
	case screenGameOver:
		return m.viewCreation(strings.Join([]string{
			styleError.Render("GAME OVER"),
			"",
			fmt.Sprintf("%s has fallen in battle...", m.game.Player.Name),
			fmt.Sprintf("Level reached: %d", m.game.Player.Level),
			fmt.Sprintf("Enemies defeated: %d", m.game.World.EnemiesDefeated),
			fmt.Sprintf("Gold earned: %d", m.game.Player.Gold),
			"",
			"Press any key for a new adventure, q to quit.",
		}, "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		stylePane.Render(m.viewport.View()),
		stylePane.Width(m.width-2).Render(m.menuPane()),
		m.statusBar(),
	)
}

// viewCreation centers a creation/terminal screen in the window.
func (m Model) viewCreation(content string) string {
	body := styleTitle.Render(m.defs.Game.Title) + "\n\n" + content
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		stylePane.Render(body))
}

// menuPane renders the key menu for the current screen.
func (m Model) menuPane() string {
	switch m.screen {
	case screenCombat:
		name, cost, _ := engine.AbilityName(m.game.Player.Archetype)
		return strings.Join([]string{
			styleCombat.Render(fmt.Sprintf("%s  Lv%d  HP %d/%d",
				m.enc.Enemy.Name, m.enc.Enemy.Level, m.enc.Enemy.HP, m.enc.Enemy.MaxHP)),
			menuRow(
				menuItem("1", "Attack"),
				menuItem("2", fmt.Sprintf("%s (%d MP)", name, cost)),
				menuItem("3", "Use Item"),
				menuItem("4", "Defend"),
				menuItem("5", "Run"),
			),
		}, "\n")

	case screenPotion:
		var rows []string
		for i, p := range m.game.Player.Potions() {
			rows = append(rows, menuItem(fmt.Sprint(i+1), fmt.Sprintf("%s (+%d HP)", p.Name, p.Power)))
		}
		rows = append(rows, menuItem("c", "Cancel"))
		return "Choose a potion:\n" + menuRow(rows...)

	case screenShop:
		shop := m.game.Shop()
		var rows []string
		rows = append(rows, styleTitle.Render(shop.Name)+
			styleMenu.Render(fmt.Sprintf("  (your gold: %d)", m.game.Player.Gold)))
		for i, it := range shop.Stock {
			rows = append(rows, menuItem(fmt.Sprint(i+1),
				fmt.Sprintf("%s (%s) - %d gold", it.Name, it.Kind, economy.BuyPrice(it))))
		}
		rows = append(rows, menuItem("c", "Leave shop"))
		return strings.Join(rows, "\n")

	case screenQuests:
		var rows []string
		for _, q := range m.game.World.Tracker.WithStatus(quest.Active) {
			rows = append(rows, styleReward.Render("[ACTIVE] "+q.Name))
		}
		for _, q := range m.game.World.Tracker.WithStatus(quest.Completed) {
			rows = append(rows, styleMenu.Render("[DONE] "+q.Name))
		}
		available := m.game.World.Tracker.WithStatus(quest.Available)
		for i, q := range available {
			rows = append(rows, menuItem(fmt.Sprint(i+1),
				fmt.Sprintf("%s - %d gold, %d exp", q.Name, q.RewardGold, q.RewardExp)))
		}
		rows = append(rows, menuItem("c", "Back"))
		return strings.Join(rows, "\n")

	case screenInventory:
		p := m.game.Player
		var rows []string
		rows = append(rows, styleTitle.Render("Inventory")+
			styleMenu.Render(fmt.Sprintf("  (gold: %d)", p.Gold)))
		if len(p.Inventory) == 0 {
			rows = append(rows, styleMenu.Render("Empty."))
		}
		for i, it := range p.Inventory {
			rows = append(rows, menuItem(fmt.Sprint(i+1), fmt.Sprintf("%s (%s)", it.Name, it.Kind)))
		}
		rows = append(rows, menuItem("c", "Back"))
		return strings.Join(rows, "\n")

	case screenTravel:
		var rows []string
		rows = append(rows, styleTitle.Render("Travel to:"))
		for i, loc := range m.game.World.Connections() {
			rows = append(rows, menuItem(fmt.Sprint(i+1),
				fmt.Sprintf("%s (danger %d)", loc.Name, loc.Danger)))
		}
		rows = append(rows, menuItem("c", "Cancel"))
		return strings.Join(rows, "\n")

	default: // screenWorld
		loc := m.game.World.Location()
		rows := []string{
			styleTitle.Render(loc.Name) + styleMenu.Render("  "+loc.Description),
			menuRow(
				menuItem("e", "Explore"),
				menuItem("t", "Travel"),
				menuItem("s", "Shop"),
				menuItem("i", "Inventory"),
				menuItem("u", "Quests"),
			),
			menuRow(
				menuItem("r", "Rest"),
				menuItem("v", "Save"),
				menuItem("l", "Load"),
				menuItem("q", "Quit"),
			),
		}
		return strings.Join(rows, "\n")
	}
}

// statusBar renders the full-width player summary line.
func (m Model) statusBar() string {
	if m.game == nil {
		return ""
	}
	p := m.game.Player

	hpStyle := styleHPGood
	if p.HP*4 <= p.MaxHP {
		hpStyle = styleHPLow
	}

	left := fmt.Sprintf(" %s  Lv%d %s", p.Name, p.Level, p.Archetype)
	mid := hpStyle.Render(fmt.Sprintf("HP %d/%d", p.HP, p.MaxHP)) +
		"  " + styleMP.Render(fmt.Sprintf("MP %d/%d", p.MP, p.MaxMP))
	right := fmt.Sprintf("Gold %d  XP %d/%d  Kills %d ",
		p.Gold, p.Exp, p.Level*100, m.game.World.EnemiesDefeated)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	bar := left + strings.Repeat(" ", gap/2) + mid + strings.Repeat(" ", gap-gap/2) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

// styleLine picks a narrative style by line content.
func styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "COMBAT START"), strings.Contains(line, "damage!"):
		return styleCombat.Render(line)
	case strings.HasPrefix(line, "QUEST COMPLETED"), strings.HasPrefix(line, "Rewards:"),
		strings.HasPrefix(line, "***"), strings.HasPrefix(line, "Found item"):
		return styleReward.Render(line)
	case strings.HasPrefix(line, "Error"), strings.HasPrefix(line, "Not enough"):
		return styleError.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

func menuItem(key, label string) string {
	return styleMenuKey.Render("["+key+"]") + " " + styleMenu.Render(label)
}

func menuRow(items ...string) string {
	return strings.Join(items, "   ")
}
