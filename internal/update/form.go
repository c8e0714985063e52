package update

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/views"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldDueDate
	fieldPriority
	fieldStatus
	fieldSave
	fieldCount
)

// FormState edits one draft. Initial is nil in create mode and holds the
// task being edited otherwise.
type FormState struct {
	Initial    *model.Task
	Status     model.Status
	Focus      formField
	Submitting bool
	Err        error

	title       textinput.Model
	description textarea.Model
	dueDate     textinput.Model
	priority    textinput.Model
}

func newFormState(initial *model.Task) FormState {
	f := FormState{}
	f.title = textinput.New()
	f.title.Placeholder = "Task title"
	f.title.CharLimit = 200
	f.title.Width = 48

	f.description = textarea.New()
	f.description.Placeholder = "Description (markdown)"
	f.description.ShowLineNumbers = false
	f.description.SetWidth(50)
	f.description.SetHeight(4)

	f.dueDate = textinput.New()
	f.dueDate.Placeholder = model.DateLayout
	f.dueDate.CharLimit = 10
	f.dueDate.Width = 12

	f.priority = textinput.New()
	f.priority.CharLimit = 6
	f.priority.Width = 8

	if initial != nil {
		task := *initial
		f.Initial = &task
		f.load(model.DraftFromTask(task))
	} else {
		f.load(model.NewDraft())
	}
	f.setFocus(fieldTitle)
	return f
}

func (f *FormState) load(d model.Draft) {
	f.title.SetValue(d.Title)
	f.description.SetValue(d.Description)
	f.dueDate.SetValue(d.DueDate)
	f.priority.SetValue(strconv.Itoa(d.Priority))
	f.Status = d.Status
	f.Err = nil
}

// Collect reads the inputs into a draft and validates it.
func (f FormState) Collect() (model.Draft, error) {
	priority, err := model.ParsePriority(f.priority.Value())
	if err != nil {
		return model.Draft{}, err
	}
	d := model.Draft{
		Title:       strings.TrimSpace(f.title.Value()),
		Description: f.description.Value(),
		Status:      f.Status,
		Priority:    priority,
		DueDate:     strings.TrimSpace(f.dueDate.Value()),
	}
	if err := d.Validate(); err != nil {
		return model.Draft{}, err
	}
	return d, nil
}

// Values returns the raw draft as currently typed, without validation.
func (f FormState) Values() (title, description, dueDate, priority string, status model.Status) {
	return f.title.Value(), f.description.Value(), f.dueDate.Value(), f.priority.Value(), f.Status
}

// Submitted resets the form after a successful save.
func (f *FormState) Submitted(now time.Time) {
	f.Initial = nil
	f.Submitting = false
	f.load(model.ResetDraft(now))
	f.setFocus(fieldTitle)
}

func (f FormState) EditMode() bool {
	return f.Initial != nil
}

func (f *FormState) setFocus(field formField) {
	f.Focus = (field + fieldCount) % fieldCount
	f.title.Blur()
	f.description.Blur()
	f.dueDate.Blur()
	f.priority.Blur()
	switch f.Focus {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	case fieldDueDate:
		f.dueDate.Focus()
	case fieldPriority:
		f.priority.Focus()
	}
}

// openForm starts a create form, or an edit form when initial is set. An
// edited task without a due date starts from today.
func (m *Model) openForm(initial *model.Task) tea.Cmd {
	m.Form = newFormState(initial)
	if m.Form.EditMode() && strings.TrimSpace(m.Form.dueDate.Value()) == "" {
		m.Form.dueDate.SetValue(m.now().Format(model.DateLayout))
	}
	m.Mode = ModeForm
	return textinput.Blink
}

func (m *Model) closeForm() {
	m.Mode = ModeList
	m.Form.title.Blur()
	m.Form.description.Blur()
	m.Form.dueDate.Blur()
	m.Form.priority.Blur()
}

// submitForm validates the draft and issues create or update. A submit while
// another is in flight is ignored.
func (m *Model) submitForm() tea.Cmd {
	if m.Form.Submitting {
		return nil
	}
	draft, err := m.Form.Collect()
	if err != nil {
		m.Form.Err = err
		return nil
	}
	m.Form.Err = nil
	m.Form.Submitting = true

	store := m.store
	if m.Form.Initial == nil {
		return func() tea.Msg {
			created, err := store.Create(context.Background(), draft)
			return taskSavedMsg{Task: created, Created: true, Err: err}
		}
	}
	patched := model.ApplyDraft(*m.Form.Initial, draft)
	return func() tea.Msg {
		updated, err := store.Update(context.Background(), patched)
		return taskSavedMsg{Task: updated, Err: err}
	}
}

func (m *Model) onTaskSaved(msg taskSavedMsg) tea.Cmd {
	m.Form.Submitting = false
	if msg.Err != nil {
		title := "Could not update task"
		if msg.Created {
			title = "Could not create task"
		}
		m.openAlert(title, msg.Err)
		return nil
	}
	text := "task updated"
	if msg.Created {
		text = "task created"
	}
	m.log.Info().Int("id", msg.Task.ID).Bool("created", msg.Created).Msg("task saved")
	m.Form.Submitted(m.now())
	m.closeForm()
	m.Status = StatusBar{Text: text}
	m.notify("Task", text, "info")
	return m.refresh()
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.Status = StatusBar{Text: "edit cancelled"}
		return m, nil
	case "ctrl+s":
		cmd := m.submitForm()
		return m, cmd
	case "tab":
		m.Form.setFocus(m.Form.Focus + 1)
		return m, nil
	case "shift+tab":
		m.Form.setFocus(m.Form.Focus - 1)
		return m, nil
	case "enter":
		switch m.Form.Focus {
		case fieldSave:
			cmd := m.submitForm()
			return m, cmd
		case fieldDescription:
		default:
			m.Form.setFocus(m.Form.Focus + 1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.Form.Focus {
	case fieldTitle:
		m.Form.title, cmd = m.Form.title.Update(msg)
	case fieldDescription:
		m.Form.description, cmd = m.Form.description.Update(msg)
	case fieldDueDate:
		m.Form.dueDate, cmd = m.Form.dueDate.Update(msg)
	case fieldPriority:
		m.Form.priority, cmd = m.Form.priority.Update(msg)
	case fieldStatus:
		switch msg.String() {
		case "left", "h":
			m.Form.Status = m.Form.Status.Prev()
		case "right", "l", " ":
			m.Form.Status = m.Form.Status.Next()
		}
	}
	return m, cmd
}

func (m Model) renderForm() string {
	heading := "New task"
	if m.Form.Initial != nil {
		heading = fmt.Sprintf("Edit task #%d", m.Form.Initial.ID)
	}
	errText := ""
	if m.Form.Err != nil {
		errText = m.Form.Err.Error()
	}
	return views.RenderForm(views.FormData{
		Heading: heading,
		Fields: []views.FormFieldData{
			{Label: "Title", View: m.Form.title.View(), Focused: m.Form.Focus == fieldTitle},
			{Label: "Description", View: m.Form.description.View(), Focused: m.Form.Focus == fieldDescription},
			{Label: "Due date", View: m.Form.dueDate.View(), Focused: m.Form.Focus == fieldDueDate},
			{Label: "Priority", View: m.Form.priority.View(), Focused: m.Form.Focus == fieldPriority},
			{Label: "Status", View: "< " + m.Form.Status.Label() + " >", Focused: m.Form.Focus == fieldStatus},
		},
		SaveFocus:  m.Form.Focus == fieldSave,
		ErrorText:  errText,
		Submitting: m.Form.Submitting,
	})
}
