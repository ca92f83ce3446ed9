package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "stillpoint/internal/modules/analytics/dto"
	"stillpoint/internal/ui/theme"
)

const (
	dailyDays   = 7
	weeklyWeeks = 4
	barWidth    = 30
)

type StatsPort interface {
	Summary(ctx context.Context, days, weeks int) (analyticsdto.SummaryOutput, error)
}

type LoadedMsg struct {
	Summary analyticsdto.SummaryOutput
	Err     error
}

type Model struct {
	port    StatsPort
	summary analyticsdto.SummaryOutput
	weekly  bool
	err     error
	vp      viewport.Model
	width   int
	height  int
}

func New(port StatsPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Night).Foreground(theme.Paper).Padding(1)
	return Model{port: port, vp: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload refreshes the figures; the app calls it after every completion.
func (m Model) Reload() tea.Cmd {
	if m.port == nil {
		return nil
	}
	return func() tea.Msg {
		s, err := m.port.Summary(context.Background(), dailyDays, weeklyWeeks)
		return LoadedMsg{Summary: s, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height
		m.vp.SetContent(m.render())
		return m, nil
	case LoadedMsg:
		m.summary, m.err = msg.Summary, msg.Err
		m.vp.SetContent(m.render())
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "d":
			m.weekly = false
			m.vp.SetContent(m.render())
			return m, nil
		case "w":
			m.weekly = true
			m.vp.SetContent(m.render())
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.vp.View()
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Accent.Render("stats unavailable: " + m.err.Error())
	}
	s := m.summary
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Practice") + "\n\n")
	row := func(label, value string) {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-14s", label)) + value + "\n")
	}
	row("sessions", fmt.Sprint(s.SessionCount))
	row("total", minutes(s.TotalDuration))
	row("last 7 days", minutes(s.WeeklyDuration))
	row("last month", minutes(s.MonthlyDuration))
	row("average", minutes(s.AverageDuration))
	row("longest", minutes(s.LongestSession))
	row("streak", fmt.Sprintf("%d days (best %d)", s.CurrentStreak, s.LongestStreak))

	series, title := s.Daily, "Daily minutes  [d]aily / [w]eekly"
	if m.weekly {
		series, title = s.Weekly, "Weekly minutes  [d]aily / [w]eekly"
	}
	sb.WriteString("\n" + theme.Title.Render(title) + "\n\n")
	sb.WriteString(histogram(series))
	return sb.String()
}

func minutes(seconds int) string {
	return fmt.Sprintf("%d min", seconds/60)
}

func histogram(buckets []analyticsdto.BucketOutput) string {
	peak := 0
	for _, b := range buckets {
		peak = max(peak, b.Minutes)
	}
	bar := lipgloss.NewStyle().Foreground(theme.Lake)
	var sb strings.Builder
	for _, b := range buckets {
		w := 0
		if peak > 0 {
			w = b.Minutes * barWidth / peak
		}
		sb.WriteString(fmt.Sprintf("%-7s ", b.Label) + bar.Render(strings.Repeat("█", w)) + fmt.Sprintf(" %d\n", b.Minutes))
	}
	return sb.String()
}
