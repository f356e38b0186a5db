package app

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/theme"
)

const welcomeArt = `█▀▄ █▀▀ █ █ █▀▀ █▀█ ▄▀█ █▀▀ █▀▀
█▄▀ ██▄ ▀▄▀ ▄▄█ █▀▀ █▀█ █▄▄ ██▄`

// renderWelcome fills the card area with the welcome box, shown while no
// card is open.
func (d *Desk) renderWelcome() string {
	art := welcomeArt
	if config.UseASCIIOnly {
		art = "DEVSPACE"
	}
	title := lipgloss.NewStyle().
		Foreground(theme.WelcomeTitle()).
		Bold(true).
		Render(art)

	subtitle := lipgloss.NewStyle().
		Foreground(theme.WelcomeSubtitle()).
		Render("Notes, todos, requests and passwords in floating cards")

	instruction := lipgloss.NewStyle().
		Foreground(theme.WelcomeText()).
		Render("Click the dock or press Alt+1-5 to open a widget, F1 for help")

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		subtitle,
		"",
		instruction,
	)

	box := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(theme.CardBorder()).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(d.Width, d.UsableHeight(), lipgloss.Center, lipgloss.Center, box)
}

// renderHelp draws the keybinding tables centered on the screen.
func (d *Desk) renderHelp() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Accent(0)).
		Padding(0, 1)
	keyStyle := lipgloss.NewStyle().
		Foreground(theme.Accent(1)).
		Padding(0, 1)
	actionStyle := lipgloss.NewStyle().Padding(0, 1)

	var rows [][]string
	for _, section := range config.GetKeybindings() {
		if len(rows) > 0 {
			rows = append(rows, []string{"", ""})
		}
		rows = append(rows, []string{section.Title, ""})
		for _, b := range section.Bindings {
			rows = append(rows, []string{b.Key, b.Description})
		}
	}
	sectionRow := func(row int) bool {
		return row >= 0 && row < len(rows) && rows[row][1] == "" && rows[row][0] != ""
	}

	t := table.New().
		Border(config.GetBorderForStyle()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Muted())).
		BorderRow(false).
		Headers("Keys", "Action").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case sectionRow(row):
				return headerStyle
			case col == 0:
				return keyStyle
			}
			return actionStyle
		})
	// rows, header, its rule, two borders and the footer
	if need := len(rows) + 5; need > d.Height && d.Height > 5 {
		t = t.Height(d.Height - 1)
	}

	footer := lipgloss.NewStyle().
		Foreground(theme.Muted()).
		Italic(true).
		Render("F1 or Esc to close")

	box := lipgloss.JoinVertical(lipgloss.Center, t.Render(), footer)
	return lipgloss.Place(d.Width, d.Height, lipgloss.Center, lipgloss.Center, box)
}
