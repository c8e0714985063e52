package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/views"
)

// Init asks the update loop for the initial fetch, so the fetch's sequence
// number is recorded on the model the program keeps.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return refreshRequestedMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.helpModel.Width = typed.Width
		if typed.Width > 20 {
			m.detailViewport.Width = typed.Width - 8
		}
		return m, nil
	case spinner.TickMsg:
		if !m.List.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.loadingSpinner, cmd = m.loadingSpinner.Update(typed)
		return m, cmd
	case refreshRequestedMsg:
		cmd := m.refresh()
		return m, cmd
	case tasksLoadedMsg:
		m.onTasksLoaded(typed)
		return m, nil
	case taskSavedMsg:
		cmd := m.onTaskSaved(typed)
		return m, cmd
	case taskDeletedMsg:
		cmd := m.onTaskDeleted(typed)
		return m, cmd
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.openAlert("Error", typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return m.quit()
	}
	if m.Alert != nil {
		if isDismissKey(keyStr) {
			m.dismissAlert()
		}
		return m, nil
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}

	switch m.Mode {
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeForm:
		return m.handleFormKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	}

	switch keyStr {
	case m.Keys.Search:
		m.Mode = ModeSearch
		cmd := m.searchInput.Focus()
		return m, cmd
	case m.Keys.Palette:
		cmd := m.openPalette()
		return m, cmd
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		return m.quit()
	}
	return m.handleListKey(msg)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.List.cancel != nil {
		m.List.cancel()
		m.List.cancel = nil
	}
	m.Quitting = true
	return m, tea.Quit
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	var body string
	switch m.Mode {
	case ModeForm:
		body = m.renderForm()
	case ModeDetail:
		body = m.renderDetail()
	default:
		body = m.renderTaskGrid()
	}
	body = strings.TrimSpace(strings.Join([]string{body, m.renderHelpIfVisible()}, "\n"))

	notification := strings.TrimSpace(strings.Join([]string{
		m.renderCommandPalette(),
		m.renderNotificationsView(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("taskpad | %s", strings.ToLower(string(m.Mode))),
		SearchBar:    m.renderSearchBar(),
		Body:         body,
		Overlay:      m.renderAlert(),
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: notification,
		Footer:       views.RenderFooter(len(m.List.Tasks)),
		KeyHints:     m.keyHints(),
	})
}
