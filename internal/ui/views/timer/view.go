package timer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	breathingdto "stillpoint/internal/modules/breathing/dto"
	timerdto "stillpoint/internal/modules/timer/dto"
	"stillpoint/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TimerPort interface {
	State(ctx context.Context) timerdto.TimerOutput
	Presets(ctx context.Context) []int
	SelectPreset(ctx context.Context, minutes int) (timerdto.TimerOutput, error)
	Toggle(ctx context.Context) (timerdto.TimerOutput, error)
	Reset(ctx context.Context) timerdto.TimerOutput
}

type BreathingPort interface {
	Patterns(ctx context.Context) []breathingdto.PatternOutput
	Cue(ctx context.Context, id string, elapsedSeconds int) (breathingdto.CueOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// StateMsg carries a state pushed by the engine between key presses.
type StateMsg struct {
	State timerdto.TimerOutput
}

type actionMsg struct {
	state timerdto.TimerOutput
	err   error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    TimerPort
	state   timerdto.TimerOutput
	presets []int
	bar     progress.Model
	errText string
	width   int
	height  int

	breathing BreathingPort
	patterns  []breathingdto.PatternOutput
	// pattern indexes patterns; -1 means no guide.
	pattern int
	cue     breathingdto.CueOutput
}

// New builds the timer tab. breathing may be nil; pattern selects the guide
// shown at start and may be empty.
func New(port TimerPort, breathing BreathingPort, pattern string) Model {
	bar := progress.New(progress.WithGradient(string(theme.Lake), string(theme.Dusk)))
	m := Model{port: port, bar: bar, breathing: breathing, pattern: -1}
	if port != nil {
		m.state = port.State(context.Background())
		m.presets = port.Presets(context.Background())
	}
	if breathing != nil {
		m.patterns = breathing.Patterns(context.Background())
		for i, p := range m.patterns {
			if p.ID == pattern {
				m.pattern = i
			}
		}
	}
	m.refreshCue()
	return m
}

// Pattern is the id of the active breathing guide, empty when off.
func (m Model) Pattern() string {
	if m.pattern < 0 || m.pattern >= len(m.patterns) {
		return ""
	}
	return m.patterns[m.pattern].ID
}

// CycleBreathing moves to the next pattern, wrapping through "off".
func (m Model) CycleBreathing() Model {
	if len(m.patterns) == 0 {
		return m
	}
	m.pattern++
	if m.pattern >= len(m.patterns) {
		m.pattern = -1
	}
	m.refreshCue()
	return m
}

// SelectBreathing switches the guide to id, or off for "off" or "". It
// reports false for an unknown id.
func (m Model) SelectBreathing(id string) (Model, bool) {
	if id == "" || id == "off" {
		m.pattern = -1
		m.refreshCue()
		return m, true
	}
	for i, p := range m.patterns {
		if p.ID == id {
			m.pattern = i
			m.refreshCue()
			return m, true
		}
	}
	return m, false
}

// refreshCue follows the countdown: the guide advances one second per tick
// and holds still while paused.
func (m *Model) refreshCue() {
	m.cue = breathingdto.CueOutput{}
	id := m.Pattern()
	if id == "" || m.breathing == nil {
		return
	}
	if m.state.Phase != timerdto.PhaseRunning && m.state.Phase != timerdto.PhasePaused {
		return
	}
	cue, err := m.breathing.Cue(context.Background(), id, m.state.TotalSeconds-m.state.RemainingSeconds)
	if err == nil {
		m.cue = cue
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(msg.Width-8, 60))

	case StateMsg:
		m.state = msg.State
		m.refreshCue()

	case actionMsg:
		m.state = msg.state
		m.errText = ""
		if msg.err != nil {
			m.errText = msg.err.Error()
		}
		m.refreshCue()

	case tea.KeyMsg:
		if m.port == nil {
			return m, nil
		}
		switch k := msg.String(); k {
		case " ", "enter":
			return m, m.toggleCmd()
		case "r":
			return m, m.resetCmd()
		case "b":
			return m.CycleBreathing(), nil
		default:
			if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
				idx := int(k[0] - '1')
				if idx < len(m.presets) {
					return m, m.SelectCmd(m.presets[idx])
				}
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	clock := theme.Clock.BorderForeground(phaseColor(m.state.Phase)).Render(m.state.Clock)

	var sb strings.Builder
	sb.WriteString(clock + "\n\n")
	sb.WriteString(m.bar.ViewAs(m.state.Progress/100) + "\n\n")
	sb.WriteString(theme.Muted.Render(phaseLabel(m.state.Phase)) + "\n\n")
	if guide := m.renderGuide(); guide != "" {
		sb.WriteString(guide + "\n\n")
	}
	sb.WriteString(m.renderPresets() + "\n")
	if m.errText != "" {
		sb.WriteString("\n" + theme.Accent.Render(m.errText) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("space start/pause · r reset · 1-"+fmt.Sprint(len(m.presets))+" preset · b breathing"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sb.String()))
}

func (m Model) renderPresets() string {
	parts := make([]string, 0, len(m.presets))
	current := m.state.TotalSeconds / 60
	for i, p := range m.presets {
		label := fmt.Sprintf("[%d] %dm", i+1, p)
		if p == current {
			parts = append(parts, theme.Accent.Render(label))
		} else {
			parts = append(parts, theme.Muted.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderGuide() string {
	id := m.Pattern()
	if id == "" {
		return ""
	}
	name := m.patterns[m.pattern].Name
	if m.cue.Phase == "" {
		return theme.Muted.Render("guide: " + name)
	}
	prompt := fmt.Sprintf("%s · %d", m.cue.Phase, m.cue.Remaining)
	cycle := fmt.Sprintf("%s  cycle %d/%d", name, m.cue.Cycle, m.cue.TotalCycles)
	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(cueColor(m.cue.Phase)).Bold(true).Render(prompt),
		theme.Muted.Render(cycle))
}

func cueColor(phase string) lipgloss.Color {
	switch phase {
	case breathingdto.PhaseInhale:
		return theme.Lake
	case breathingdto.PhaseHold:
		return theme.Dusk
	case breathingdto.PhaseExhale:
		return theme.Sage
	default:
		return theme.Stone
	}
}

// Cue is the breathing prompt for the current second, zero when off.
func (m Model) Cue() breathingdto.CueOutput {
	return m.cue
}

func phaseLabel(phase string) string {
	switch phase {
	case timerdto.PhaseRunning:
		return "breathe"
	case timerdto.PhasePaused:
		return "paused"
	case timerdto.PhaseCompleted:
		return "complete"
	default:
		return "ready"
	}
}

func phaseColor(phase string) lipgloss.Color {
	switch phase {
	case timerdto.PhaseRunning:
		return theme.Sage
	case timerdto.PhasePaused:
		return theme.Ember
	default:
		return theme.Stone
	}
}

// Running reports whether a countdown is in progress.
func (m Model) Running() bool {
	return m.state.Phase == timerdto.PhaseRunning
}

// ─── async commands ───────────────────────────────────────────────────────────

// SelectCmd is also used by the palette.
func (m Model) SelectCmd(minutes int) tea.Cmd {
	return func() tea.Msg {
		state, err := m.port.SelectPreset(context.Background(), minutes)
		return actionMsg{state: state, err: err}
	}
}

func (m Model) toggleCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.port.Toggle(context.Background())
		return actionMsg{state: state, err: err}
	}
}

func (m Model) resetCmd() tea.Cmd {
	return func() tea.Msg {
		return actionMsg{state: m.port.Reset(context.Background())}
	}
}

// ResetCmd is used by the palette.
func (m Model) ResetCmd() tea.Cmd {
	return m.resetCmd()
}
