package picker

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key and resize events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			switch msg.Type {
			case tea.KeyEnter:
				m.filtering = false
				m.filter.Blur()
				return m, nil
			case tea.KeyEsc:
				m.filtering = false
				m.filter.Blur()
				m.filter.SetValue("")
				m.applyFilter()
				return m, nil
			case tea.KeyCtrlC:
				m.quitting = true
				return m, tea.Quit
			case tea.KeyUp, tea.KeyDown:
				m.move(msg.Type == tea.KeyDown)
				return m, nil
			}
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			m.move(false)
		case "down", "j":
			m.move(true)
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(len(m.filtered)-1, 0)
		case "/":
			m.filtering = true
			m.filter.Focus()
			return m, textinput.Blink
		case "enter":
			if len(m.filtered) == 0 {
				return m, nil
			}
			m.chosen = m.filtered[m.cursor]
			return m, tea.Quit
		}
	}

	return m, cmd
}

func (m *Model) move(down bool) {
	if down {
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return
	}
	if m.cursor > 0 {
		m.cursor--
	}
}
