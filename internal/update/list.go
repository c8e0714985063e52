package update

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/presenter"
)

// ListState is the cached task collection plus the search and paging
// position. Tasks is replaced wholesale on every accepted fetch.
type ListState struct {
	Tasks      []model.Task
	Loading    bool
	SearchTerm string
	Page       int
	Cursor     int

	seq    uint64
	cancel context.CancelFunc
}

// SetSearchTerm starts a fetch for term and resets paging. An unchanged term
// issues nothing.
func (m *Model) SetSearchTerm(term string) tea.Cmd {
	if term == m.List.SearchTerm {
		return nil
	}
	m.List.SearchTerm = term
	m.List.Page = 1
	m.List.Cursor = 0
	return m.refresh()
}

// refresh re-fetches the collection for the current search term. Only the
// most recently issued fetch is applied; the previous one is cancelled.
func (m *Model) refresh() tea.Cmd {
	if m.List.cancel != nil {
		m.List.cancel()
	}
	m.List.seq++
	seq := m.List.seq
	term := m.List.SearchTerm
	ctx, cancel := context.WithCancel(context.Background())
	m.List.cancel = cancel
	m.List.Loading = true

	store := m.store
	m.log.Debug().Uint64("seq", seq).Str("search", term).Msg("fetching tasks")
	fetch := func() tea.Msg {
		tasks, err := store.List(ctx, term)
		return tasksLoadedMsg{Seq: seq, Term: term, Tasks: tasks, Err: err}
	}
	return tea.Batch(fetch, m.loadingSpinner.Tick)
}

func (m *Model) onTasksLoaded(msg tasksLoadedMsg) {
	if msg.Seq != m.List.seq {
		m.log.Debug().Uint64("seq", msg.Seq).Uint64("latest", m.List.seq).Msg("discarding stale task list")
		return
	}
	if m.List.cancel != nil {
		m.List.cancel()
		m.List.cancel = nil
	}
	m.List.Loading = false
	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return
		}
		m.openAlert("Could not load tasks", msg.Err)
		return
	}
	m.applyTasks(msg.Tasks)
}

func (m *Model) applyTasks(tasks []model.Task) {
	m.List.Tasks = tasks
	total := presenter.TotalPages(len(tasks), presenter.PageSize)
	m.List.Page = presenter.ClampPage(m.List.Page, total)
	m.clampCursor()
	m.syncPager()
}

func (m Model) currentPage() presenter.Page {
	return presenter.Paginate(m.List.Tasks, m.List.Page, presenter.PageSize)
}

func (m *Model) setPage(page int) {
	total := presenter.TotalPages(len(m.List.Tasks), presenter.PageSize)
	m.List.Page = presenter.ClampPage(page, total)
	m.List.Cursor = 0
	m.syncPager()
}

func (m *Model) clampCursor() {
	n := len(m.currentPage().Items)
	if m.List.Cursor >= n {
		m.List.Cursor = n - 1
	}
	if m.List.Cursor < 0 {
		m.List.Cursor = 0
	}
}

func (m *Model) syncPager() {
	total := presenter.TotalPages(len(m.List.Tasks), presenter.PageSize)
	if total < 1 {
		total = 1
	}
	m.pager.SetTotalPages(total)
	m.pager.Page = m.List.Page - 1
}

func (m Model) cursorTask() (model.Task, bool) {
	items := m.currentPage().Items
	if m.List.Cursor < 0 || m.List.Cursor >= len(items) {
		return model.Task{}, false
	}
	return items[m.List.Cursor], true
}

func (m Model) findTask(id int) (model.Task, bool) {
	for _, t := range m.List.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.List.Cursor < len(m.currentPage().Items)-1 {
			m.List.Cursor++
		}
	case "k", "up":
		if m.List.Cursor > 0 {
			m.List.Cursor--
		}
	case "l", "right":
		m.setPage(m.List.Page + 1)
	case "h", "left":
		m.setPage(m.List.Page - 1)
	case "enter":
		if task, ok := m.cursorTask(); ok {
			m.openDetail(task)
		}
	case m.Keys.New:
		cmd := m.openForm(nil)
		return m, cmd
	case m.Keys.Refresh:
		cmd := m.refresh()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.Mode = ModeList
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	fetch := m.SetSearchTerm(m.searchInput.Value())
	return m, tea.Batch(cmd, fetch)
}
