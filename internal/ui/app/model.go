package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	achievementdto "stillpoint/internal/modules/achievement/dto"
	timerdto "stillpoint/internal/modules/timer/dto"
	"stillpoint/internal/ui/components"
	"stillpoint/internal/ui/theme"
	achievementsview "stillpoint/internal/ui/views/achievements"
	historyview "stillpoint/internal/ui/views/history"
	statsview "stillpoint/internal/ui/views/stats"
	timerview "stillpoint/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type timerPort interface {
	timerview.TimerPort
	Watch(hooks timerdto.Hooks)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabStats
	tabAchievements
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{
	"Timer", "Stats", "Achievements", "History",
}

// ─── async messages ───────────────────────────────────────────────────────────

// engineMsg wraps everything pushed by the timer hooks so the listener can be
// re-armed after each delivery.
type engineMsg struct{ inner tea.Msg }

type unlockedMsg struct {
	items []achievementdto.AchievementOutput
}

type sessionCompletedMsg struct{}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Reset   key.Binding
	Presets key.Binding
	Series  key.Binding
	Breathe key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Presets: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "preset")),
		Series:  key.NewBinding(key.WithKeys("d", "w"), key.WithHelp("d/w", "daily/weekly")),
		Breathe: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "breathing guide")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Presets, k.Breathe},
		{k.Tab, k.Series},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay
// and the command palette, and turns timer hooks into messages.
type Model struct {
	timer  timerPort
	events *eventQueue

	timerView        timerview.Model
	statsView        statsview.Model
	achievementsView achievementsview.Model
	historyView      historyview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	timer timerPort,
	breathing timerview.BreathingPort,
	pattern string,
	stats statsview.StatsPort,
	achievements achievementsview.AchievementsPort,
	history historyview.HistoryPort,
) Model {
	events := newEventQueue()
	// Hooks run while the engine is locked, so they never block on the UI.
	timer.Watch(timerdto.Hooks{
		OnTick:            func(o timerdto.TimerOutput) { events.push(timerview.StateMsg{State: o}) },
		OnNewAchievements: func(items []achievementdto.AchievementOutput) { events.push(unlockedMsg{items: items}) },
		OnSessionComplete: func() { events.push(sessionCompletedMsg{}) },
	})

	return Model{
		timer:            timer,
		events:           events,
		timerView:        timerview.New(timer, breathing, pattern),
		statsView:        statsview.New(stats),
		achievementsView: achievementsview.New(achievements),
		historyView:      historyview.New(history),
		activeTab:        tabTimer,
		keys:             defaultKeys(),
		help:             help.New(),
		palette:          components.NewPalette(),
		status:           "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.timerView.Init(),
		m.statsView.Init(),
		m.achievementsView.Init(),
		m.historyView.Init(),
		m.waitForEvent(),
	)
}

func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return engineMsg{inner: m.events.next()}
	}
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(engineMsg); ok {
		next, cmd := m.Update(msg.inner)
		return next, tea.Batch(cmd, m.waitForEvent())
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() && !isDataMsg(msg) {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case timerview.StateMsg:
		var cmd tea.Cmd
		m.timerView, cmd = m.timerView.Update(msg)
		return m, cmd

	case unlockedMsg:
		names := make([]string, 0, len(msg.items))
		for _, a := range msg.items {
			names = append(names, a.Icon+" "+a.Title)
		}
		m.status = "unlocked: " + strings.Join(names, ", ")
		return m, nil

	case sessionCompletedMsg:
		if !strings.HasPrefix(m.status, "unlocked:") {
			m.status = "session complete"
		}
		return m, tea.Batch(m.statsView.Reload(), m.achievementsView.Reload(), m.historyView.Reload())

	case statsview.LoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case achievementsview.LoadedMsg:
		var cmd tea.Cmd
		m.achievementsView, cmd = m.achievementsView.Update(msg)
		return m, cmd

	case historyview.LoadedMsg:
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	case tabAchievements:
		m.achievementsView, tabCmd = m.achievementsView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabStats:
		return m.statsView.View()
	case tabAchievements:
		return m.achievementsView.View()
	case tabHistory:
		return m.historyView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Accent.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "stillpoint  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Night).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if strings.HasPrefix(left, "unlocked:") {
		left = theme.Toast.Render(left)
	}
	if m.timerView.Running() {
		left = theme.Accent.Render("● sitting") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Night).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "timer:preset":
		if len(parts) < 2 {
			m.status = "usage: timer:preset <minutes>"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid minutes"
			return m, nil
		}
		m.activeTab = tabTimer
		m.status = fmt.Sprintf("preset %d min", minutes)
		return m, m.timerView.SelectCmd(minutes)

	case "timer:reset":
		m.activeTab = tabTimer
		return m, m.timerView.ResetCmd()

	case "timer:breathe":
		id := "off"
		if len(parts) > 1 {
			id = parts[1]
		}
		next, ok := m.timerView.SelectBreathing(id)
		if !ok {
			m.status = "unknown pattern: " + id
			return m, nil
		}
		m.timerView = next
		m.activeTab = tabTimer
		m.status = "breathing: " + id
		return m, nil

	case "stats:reload":
		m.activeTab = tabStats
		return m, m.statsView.Reload()

	case "achievements":
		m.activeTab = tabAchievements
		return m, m.achievementsView.Reload()

	case "history":
		m.activeTab = tabHistory
		return m, m.historyView.Reload()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabAchievements:
		return m.achievementsView.Filtering()
	case tabHistory:
		return m.historyView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
	m.achievementsView, _ = m.achievementsView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}

// isDataMsg reports messages that carry results rather than user input.
func isDataMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case timerview.StateMsg, unlockedMsg, sessionCompletedMsg,
		statsview.LoadedMsg, achievementsview.LoadedMsg, historyview.LoadedMsg:
		return true
	}
	return false
}

// Close detaches the timer hooks.
func (m Model) Close() {
	m.timer.Watch(timerdto.Hooks{})
}
