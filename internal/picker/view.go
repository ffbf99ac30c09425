package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Bold(true)

	itemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	kindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// View renders the list, the filter line and a key help footer.
func (m Model) View() string {
	if m.quitting || m.chosen >= 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Python environments (%d)", len(m.envs))))
	b.WriteString("\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	start, end := m.window()
	for i := start; i < end; i++ {
		env := m.envs[m.filtered[i]]
		line := fmt.Sprintf("%3d. %-24s", m.filtered[i]+1, env.Name)
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render("  " + line))
		}
		b.WriteString(" ")
		b.WriteString(kindStyle.Render(fmt.Sprintf("%-8s", env.Kind)))
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(env.Path))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ move • / filter • enter activate • q quit"))
	return b.String()
}

// window returns the visible slice of filtered rows around the cursor.
func (m Model) window() (int, int) {
	rows := len(m.filtered)
	if m.height <= 0 {
		return 0, rows
	}
	visible := max(m.height-6, 1)
	if rows <= visible {
		return 0, rows
	}
	start := max(m.cursor-visible/2, 0)
	if start+visible > rows {
		start = rows - visible
	}
	return start, start + visible
}
