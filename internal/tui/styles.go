package tui

import "github.com/charmbracelet/lipgloss"

// styles is the lipgloss style set for one theme.
type styles struct {
	dim          lipgloss.Color
	input        lipgloss.Style
	inputPrompt  lipgloss.Style
	listSelected lipgloss.Style
	authorSelf   lipgloss.Style
	authorOther  lipgloss.Style
	authorThird  lipgloss.Style
	snippet      lipgloss.Style
	panelBorder  lipgloss.Style
	activeBorder lipgloss.Style
	statusBar    lipgloss.Style
}

func newStyles(light bool) styles {
	// Colors
	primary := lipgloss.Color("12")   // bright blue
	secondary := lipgloss.Color("10") // bright green
	third := lipgloss.Color("13")     // bright magenta
	dim := lipgloss.Color("240")      // gray
	highlight := lipgloss.Color("11") // bright yellow
	border := lipgloss.Color("238")   // dark gray
	if light {
		primary = lipgloss.Color("4")
		secondary = lipgloss.Color("2")
		third = lipgloss.Color("5")
		dim = lipgloss.Color("245")
		highlight = lipgloss.Color("130") // orange
		border = lipgloss.Color("250")
	}

	return styles{
		dim: dim,
		input: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		inputPrompt: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		listSelected: lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true),
		authorSelf: lipgloss.NewStyle().
			Foreground(primary),
		authorOther: lipgloss.NewStyle().
			Foreground(secondary),
		authorThird: lipgloss.NewStyle().
			Foreground(third),
		snippet: lipgloss.NewStyle().
			Foreground(dim),
		panelBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border),
		activeBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary),
		statusBar: lipgloss.NewStyle().
			Foreground(dim).
			Padding(0, 1),
	}
}
