package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const EmptyPlaceholder = "No task :("

type SearchBarData struct {
	InputView   string
	Active      bool
	Loading     bool
	SpinnerView string
}

type CardData struct {
	ID       int
	Title    string
	Status   string
	Priority int
	DueDate  string
	Selected bool
}

type TaskGridData struct {
	Cards      []CardData
	Total      int
	PageNumber int
	TotalPages int
	PagerView  string
}

type DetailData struct {
	ID          int
	Title       string
	Status      string
	Priority    int
	DueDate     string
	CreatedAt   string
	Description string
	Deleting    bool
}

type FormFieldData struct {
	Label   string
	View    string
	Focused bool
}

type FormData struct {
	Heading    string
	Fields     []FormFieldData
	SaveFocus  bool
	ErrorText  string
	Submitting bool
}

type AlertData struct {
	Title string
	Body  string
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

var (
	cardStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(30)
	selectedCardStyle = cardStyle.BorderForeground(lipgloss.Color("12"))
	titleStyle        = lipgloss.NewStyle().Bold(true)
	mutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	buttonStyle       = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.NormalBorder())
	activeButtonStyle = buttonStyle.BorderForeground(lipgloss.Color("10")).Bold(true)
)

func RenderSearchBar(data SearchBarData) string {
	prefix := "search: "
	if data.Active {
		prefix = "search> "
	}
	line := prefix + data.InputView
	if data.Loading {
		line += " " + data.SpinnerView + " loading"
	}
	return line
}

// RenderTaskGrid lays the current page out two cards per row. An empty
// collection renders the placeholder instead of a grid.
func RenderTaskGrid(data TaskGridData) string {
	if data.Total == 0 || len(data.Cards) == 0 {
		return panelStyle.Render(EmptyPlaceholder)
	}
	rendered := make([]string, 0, len(data.Cards))
	for _, card := range data.Cards {
		rendered = append(rendered, renderCard(card))
	}
	rows := make([]string, 0, (len(rendered)+1)/2)
	for i := 0; i < len(rendered); i += 2 {
		end := i + 2
		if end > len(rendered) {
			end = len(rendered)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered[i:end]...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	pager := fmt.Sprintf("page %d/%d %s", data.PageNumber, data.TotalPages, data.PagerView)
	return grid + "\n" + strings.TrimSpace(pager)
}

func renderCard(card CardData) string {
	cursor := " "
	style := cardStyle
	if card.Selected {
		cursor = ">"
		style = selectedCardStyle
	}
	due := card.DueDate
	if due == "" {
		due = "-"
	}
	body := fmt.Sprintf("%s %s\n#%d %s\npriority: %d\ndue: %s",
		cursor,
		titleStyle.Render(card.Title),
		card.ID,
		card.Status,
		card.Priority,
		due,
	)
	return style.Render(body)
}

// RenderFooter is the collection summary under the grid.
func RenderFooter(total int) string {
	if total == 0 {
		return EmptyPlaceholder
	}
	return fmt.Sprintf("%d task(s) added", total)
}

func RenderDetailDialog(data DetailData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Title) + "\n")
	b.WriteString(fmt.Sprintf("id: %d\n", data.ID))
	b.WriteString(fmt.Sprintf("status: %s\n", data.Status))
	b.WriteString(fmt.Sprintf("priority: %d\n", data.Priority))
	if data.DueDate != "" {
		b.WriteString(fmt.Sprintf("due: %s\n", data.DueDate))
	}
	if data.CreatedAt != "" {
		b.WriteString(fmt.Sprintf("created: %s\n", data.CreatedAt))
	}
	if strings.TrimSpace(data.Description) != "" {
		b.WriteString("\n" + data.Description + "\n")
	}
	b.WriteString("\n")
	if data.Deleting {
		b.WriteString(mutedStyle.Render("deleting..."))
	} else {
		b.WriteString(mutedStyle.Render("[e]edit [d]delete [esc]close"))
	}
	return panelStyle.Render(b.String())
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Heading) + "\n\n")
	for _, field := range data.Fields {
		label := field.Label + ":"
		if field.Focused {
			label = focusedLabelStyle.Render("> " + label)
		} else {
			label = "  " + label
		}
		b.WriteString(label + "\n")
		b.WriteString(field.View + "\n")
	}
	button := buttonStyle.Render("Save")
	if data.SaveFocus {
		button = activeButtonStyle.Render("Save")
	}
	if data.Submitting {
		button = buttonStyle.Render("Saving...")
	}
	b.WriteString(button + "\n")
	if data.ErrorText != "" {
		b.WriteString(errorStyle.Render("error: "+data.ErrorText) + "\n")
	}
	b.WriteString(mutedStyle.Render("[tab]next [shift+tab]prev [ctrl+s]save [esc]cancel"))
	return panelStyle.Render(b.String())
}

func RenderAlert(data AlertData) string {
	if strings.TrimSpace(data.Body) == "" && strings.TrimSpace(data.Title) == "" {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n\n%s", errorStyle.Render(data.Title), data.Body, mutedStyle.Render("[enter] dismiss"))
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return panelStyle.Render(fmt.Sprintf("help (%s):\n%s\n%s",
		strings.ToLower(data.Mode),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	))
}
