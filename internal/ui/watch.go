package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/uniwin/internal/controller"
	"github.com/bnema/uniwin/internal/window"
)

// Session is the part of the controller the live view drives.
type Session interface {
	Status() controller.Status
	Drain() int
	FitToMonitor(index int) controller.FitResult
	UpdateHitTest(probe controller.HitProbe) bool
	Window() *window.Facade
}

// KeyMap defines the watch view bindings.
type KeyMap struct {
	Quit       key.Binding
	Fit        key.Binding
	Topmost    key.Binding
	Zoom       key.Binding
	Borderless key.Binding
	Top        key.Binding
	Bottom     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Fit:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit monitor")),
		Topmost:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "topmost")),
		Zoom:       key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zoom")),
		Borderless: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "borderless")),
		Top:        key.NewBinding(key.WithKeys("g"), key.WithHelp("g/G", "scroll")),
		Bottom:     key.NewBinding(key.WithKeys("G")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fit, k.Topmost, k.Zoom, k.Borderless, k.Top, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type tickMsg time.Time

// WatchModel is the host loop rendered as a terminal view. Every tick drains
// queued window events once and redraws the event log.
type WatchModel struct {
	session Session
	log     *EventLog
	probe   controller.HitProbe
	tick    time.Duration

	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	ready    bool

	ticks   int
	drained int

	windowWidth  int
	windowHeight int
}

// NewWatchModel creates the live view. probe may be nil to skip hit-testing.
func NewWatchModel(session Session, log *EventLog, probe controller.HitProbe, tick time.Duration) *WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: SpinnerDot,
		FPS:    time.Second / 10,
	}
	s.Style = SpinnerStyle

	if tick <= 0 {
		tick = 16 * time.Millisecond
	}

	return &WatchModel{
		session:      session,
		log:          log,
		probe:        probe,
		tick:         tick,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		spinner:      s,
		windowWidth:  80,
		windowHeight: 24,
	}
}

func (m *WatchModel) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model
func (m *WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.tickCmd())
}

// Update implements tea.Model
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		m.ticks++
		m.drained += m.session.Drain()
		if m.probe != nil {
			m.session.UpdateHitTest(m.probe)
		}
		m.refresh()
		cmds = append(cmds, m.tickCmd())

	case tea.KeyMsg:
		w := m.session.Window()
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Fit):
			res := m.session.FitToMonitor(w.MonitorToFit())
			m.log.Add("INFO", fmt.Sprintf("fit %s", res.Outcome))
		case key.Matches(msg, m.keys.Topmost):
			w.SetTopmost(!w.Topmost())
			m.log.Add("INFO", fmt.Sprintf("topmost %t", w.Topmost()))
		case key.Matches(msg, m.keys.Zoom):
			w.SetZoomed(!w.Zoomed())
			m.log.Add("INFO", fmt.Sprintf("zoomed %t", w.Zoomed()))
		case key.Matches(msg, m.keys.Borderless):
			w.SetBorderless(!w.Borderless())
			m.log.Add("INFO", fmt.Sprintf("borderless %t", w.Borderless()))
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
		}
		m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.help.Width = msg.Width
		// Reserve space for the status bar (3 lines) and help (1 line)
		height := msg.Height - 4
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.YPosition = 3
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.refresh()
	}

	return m, tea.Batch(cmds...)
}

func (m *WatchModel) refresh() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderLogs())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// View implements tea.Model
func (m *WatchModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.renderLogs())
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *WatchModel) renderStatusBar() string {
	status := m.session.Status()
	attached := status == controller.StatusAttached
	w := m.session.Window()

	label := status.String()
	if status == controller.StatusAttaching {
		label = m.spinner.View() + " " + label
	}

	x, y := w.Position()
	width, height := w.Size()
	flags := []string{}
	for _, f := range []struct {
		on   bool
		name string
	}{
		{w.Topmost(), "topmost"},
		{w.Bottommost(), "bottommost"},
		{w.Borderless(), "borderless"},
		{w.Transparent(), "transparent"},
		{w.ClickThrough(), "clickthrough"},
		{w.Zoomed(), "zoomed"},
	} {
		if f.on {
			flags = append(flags, f.name)
		}
	}
	if len(flags) == 0 {
		flags = append(flags, "-")
	}

	parts := []string{
		TitleStyle.Render("UNIWIN"),
		FormatStatus(attached, label),
		SubtleStyle.Render(fmt.Sprintf("%.0f,%.0f %.0fx%.0f", x, y, width, height)),
		InfoStyle.Render(strings.Join(flags, " ")),
		MutedStyle.Render(fmt.Sprintf("ticks %d events %d", m.ticks, m.drained)),
	}
	separator := lipgloss.NewStyle().Foreground(ColorMuted).Render(" │ ")
	return BoxStyle.Render(strings.Join(parts, separator))
}

func (m *WatchModel) renderLogs() string {
	entries := m.log.Entries()
	if len(entries) == 0 {
		return MutedStyle.Render("No window events yet...")
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = formatLogEntry(e)
	}
	return strings.Join(lines, "\n")
}

// formatLogEntry formats a single log entry with colors
func formatLogEntry(entry LogEntry) string {
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	var levelStyle lipgloss.Style
	switch strings.ToUpper(entry.Level) {
	case "ERROR":
		levelStyle = ErrorStyle.Copy().Bold(true)
	case "WARN", "WARNING":
		levelStyle = WarningStyle.Copy().Bold(true)
	case "INFO":
		levelStyle = SuccessStyle
	case "DEBUG":
		levelStyle = MutedStyle
	default:
		levelStyle = SubtleStyle
	}

	return fmt.Sprintf("%s %s %s",
		timeStyle.Render(entry.Timestamp.Format("15:04:05")),
		levelStyle.Render(fmt.Sprintf("%-5s", strings.ToUpper(entry.Level))),
		TextStyle.Render(entry.Message))
}

// Ticks returns how many host ticks have run.
func (m *WatchModel) Ticks() int {
	return m.ticks
}

// Drained returns the total number of events dispatched.
func (m *WatchModel) Drained() int {
	return m.drained
}
