package update

import (
	"strings"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/views"
)

func (m Model) renderSearchBar() string {
	return views.RenderSearchBar(views.SearchBarData{
		InputView:   m.searchInput.View(),
		Active:      m.Mode == ModeSearch,
		Loading:     m.List.Loading,
		SpinnerView: m.loadingSpinner.View(),
	})
}

func (m Model) renderTaskGrid() string {
	page := m.currentPage()
	cards := make([]views.CardData, 0, len(page.Items))
	for i, t := range page.Items {
		cards = append(cards, views.CardData{
			ID:       t.ID,
			Title:    t.Title,
			Status:   t.Status.Label(),
			Priority: t.Priority,
			DueDate:  model.DisplayDate(t.DueDate),
			Selected: i == m.List.Cursor,
		})
	}
	return views.RenderTaskGrid(views.TaskGridData{
		Cards:      cards,
		Total:      page.Total,
		PageNumber: page.Number,
		TotalPages: page.TotalPages,
		PagerView:  m.pager.View(),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderAlert() string {
	if m.Alert == nil {
		return ""
	}
	return views.RenderAlert(views.AlertData{Title: m.Alert.Title, Body: m.Alert.Body})
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

// openAlert shows a blocking notification for a failed store call. Local
// state is left as it was.
func (m *Model) openAlert(title string, err error) {
	body := "unknown error"
	if err != nil {
		body = err.Error()
	}
	m.Alert = &Alert{Title: title, Body: body}
	m.LastError = err
	m.Status = StatusBar{Text: body, IsError: true}
	m.log.Error().Err(err).Str("alert", title).Msg("store call failed")
	m.notify(title, body, "error")
}

func (m *Model) dismissAlert() {
	m.Alert = nil
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.log.Warn().Err(err).Msg("desktop notification failed")
		}
	}
}
