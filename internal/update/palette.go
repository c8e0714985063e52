package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/commands"
)

func (m *Model) openPalette() tea.Cmd {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.Status = StatusBar{Text: "command palette active"}
	return m.commandInput.Focus()
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Search: func(a commands.SearchArgs) (commands.Result, error) {
			m.searchInput.SetValue(a.Term)
			next = m.SetSearchTerm(a.Term)
			if a.Term == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("searching for %q", a.Term)}, nil
		},
		Page: func(a commands.PageArgs) (commands.Result, error) {
			m.setPage(a.Number)
			return commands.Result{Message: fmt.Sprintf("page %d", m.List.Page)}, nil
		},
		New: func() (commands.Result, error) {
			next = m.openForm(nil)
			return commands.Result{Message: "new task"}, nil
		},
		Open: func(a commands.OpenArgs) (commands.Result, error) {
			task, ok := m.findTask(a.ID)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("task #%d is not in the current list", a.ID)}
			}
			m.openDetail(task)
			return commands.Result{Message: fmt.Sprintf("opened task #%d", a.ID)}, nil
		},
		Refresh: func() (commands.Result, error) {
			next = m.refresh()
			return commands.Result{Message: "refreshing"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, next
}
