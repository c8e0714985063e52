package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/rs/zerolog"
	"github.com/sandeepkv93/taskpad/internal/client"
	"github.com/sandeepkv93/taskpad/internal/model"
)

type Mode string

const (
	ModeList   Mode = "List"
	ModeSearch Mode = "Search"
	ModeDetail Mode = "Detail"
	ModeForm   Mode = "Form"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Search  string
	Palette string
	New     string
	Refresh string
	Help    string
	Quit    string
}

// Model is the single owner of the task collection. Every mutation that
// reaches the store funnels back into refresh.
type Model struct {
	Mode          Mode
	List          ListState
	Selected      *model.Task
	Deleting      bool
	Form          FormState
	Alert         *Alert
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	DesktopEnabled bool
	notifier       DesktopNotifier
	store          client.Store
	log            zerolog.Logger
	now            func() time.Time
	width          int

	searchInput    textinput.Model
	commandInput   textinput.Model
	loadingSpinner spinner.Model
	pager          paginator.Model
	helpModel      help.Model
	detailViewport viewport.Model
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Alert is a blocking notification. While set, only dismiss keys are handled.
type Alert struct {
	Title string
	Body  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type refreshRequestedMsg struct{}

// tasksLoadedMsg answers the list request issued with sequence number Seq.
type tasksLoadedMsg struct {
	Seq   uint64
	Term  string
	Tasks []model.Task
	Err   error
}

type taskSavedMsg struct {
	Task    model.Task
	Created bool
	Err     error
}

type taskDeletedMsg struct {
	ID  int
	Err error
}

type Option func(*Model)

func WithLogger(log zerolog.Logger) Option {
	return func(m *Model) {
		m.log = log
	}
}

func WithDesktopNotifications(enabled bool, notifier DesktopNotifier) Option {
	return func(m *Model) {
		m.DesktopEnabled = enabled
		if notifier != nil {
			m.notifier = notifier
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

func NewModel(store client.Store, opts ...Option) Model {
	m := Model{
		Mode:     ModeList,
		List:     ListState{Page: 1},
		store:    store,
		log:      zerolog.Nop(),
		now:      time.Now,
		notifier: NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Search:  "/",
			Palette: ":",
			New:     "n",
			Refresh: "r",
			Help:    "?",
			Quit:    "q",
		},
		width: 80,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.initBubbleComponents()
	m.Form = newFormState(nil)
	return m
}

func (m *Model) initBubbleComponents() {
	m.searchInput = textinput.New()
	m.searchInput.Prompt = ""
	m.searchInput.Placeholder = "type to filter tasks"
	m.searchInput.CharLimit = 128
	m.searchInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ":"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.loadingSpinner = spinner.New()
	m.loadingSpinner.Spinner = spinner.Dot

	m.pager = paginator.New()
	m.pager.Type = paginator.Dots
	m.pager.PerPage = 1
	m.pager.ActiveDot = "●"
	m.pager.InactiveDot = "○"
	m.pager.SetTotalPages(1)

	m.helpModel = help.New()
	m.detailViewport = viewport.New(60, 8)
}
