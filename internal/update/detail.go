package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/views"
)

func (m *Model) openDetail(task model.Task) {
	t := task
	m.Selected = &t
	m.Deleting = false
	m.Mode = ModeDetail
	m.detailViewport.SetContent(views.RenderMarkdown(task.Description, m.detailViewport.Width))
	m.detailViewport.GotoTop()
}

func (m *Model) closeDetail() {
	m.Selected = nil
	m.Deleting = false
	m.Mode = ModeList
}

func (m *Model) deleteSelected() tea.Cmd {
	if m.Selected == nil || m.Deleting {
		return nil
	}
	m.Deleting = true
	id := m.Selected.ID
	store := m.store
	return func() tea.Msg {
		return taskDeletedMsg{ID: id, Err: store.Delete(context.Background(), id)}
	}
}

func (m *Model) onTaskDeleted(msg taskDeletedMsg) tea.Cmd {
	m.Deleting = false
	if msg.Err != nil {
		m.openAlert("Could not delete task", msg.Err)
		return nil
	}
	m.log.Info().Int("id", msg.ID).Msg("task deleted")
	if m.Selected != nil && m.Selected.ID == msg.ID {
		m.closeDetail()
	}
	text := fmt.Sprintf("task #%d deleted", msg.ID)
	m.Status = StatusBar{Text: text}
	m.notify("Task", text, "info")
	return m.refresh()
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		if !m.Deleting {
			m.closeDetail()
		}
		return m, nil
	case "d":
		cmd := m.deleteSelected()
		return m, cmd
	case "e":
		if m.Selected == nil || m.Deleting {
			return m, nil
		}
		task := *m.Selected
		m.Selected = nil
		cmd := m.openForm(&task)
		return m, cmd
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m Model) renderDetail() string {
	if m.Selected == nil {
		return ""
	}
	t := *m.Selected
	return views.RenderDetailDialog(views.DetailData{
		ID:          t.ID,
		Title:       t.Title,
		Status:      t.Status.Label(),
		Priority:    t.Priority,
		DueDate:     model.DisplayDate(t.DueDate),
		CreatedAt:   model.DisplayDate(t.CreatedAt),
		Description: m.detailViewport.View(),
		Deleting:    m.Deleting,
	})
}
