// Package picker is the interactive environment chooser used by spe on a terminal.
package picker

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pyvenv/ape/internal/venv"
)

// Model holds the picker state.
type Model struct {
	envs     []venv.Environment
	filtered []int // indices into envs matching the filter
	cursor   int

	filter    textinput.Model
	filtering bool

	chosen   int
	quitting bool
	height   int
}

// New returns a picker over envs with the first entry highlighted.
func New(envs []venv.Environment) Model {
	ti := textinput.New()
	ti.Placeholder = "environment name..."
	ti.Prompt = "/ "
	ti.CharLimit = 64

	m := Model{
		envs:   envs,
		filter: ti,
		chosen: -1,
	}
	m.applyFilter()
	return m
}

// Selected returns the chosen environment, if the user picked one.
func (m Model) Selected() (*venv.Environment, bool) {
	if m.chosen < 0 || m.chosen >= len(m.envs) {
		return nil, false
	}
	env := m.envs[m.chosen]
	return &env, true
}

// Matches returns the environments currently visible under the filter.
func (m Model) Matches() []venv.Environment {
	out := make([]venv.Environment, len(m.filtered))
	for i, idx := range m.filtered {
		out[i] = m.envs[idx]
	}
	return out
}

func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.filtered = nil
	for i, env := range m.envs {
		if query == "" || strings.Contains(strings.ToLower(env.Name), query) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(len(m.filtered)-1, 0)
	}
}

// Run shows the picker on in/out and blocks until the user chooses or quits.
// It returns nil with no error when the user quits.
func Run(envs []venv.Environment, in io.Reader, out io.Writer) (*venv.Environment, error) {
	p := tea.NewProgram(New(envs), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running picker: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	env, _ := m.Selected()
	return env, nil
}
