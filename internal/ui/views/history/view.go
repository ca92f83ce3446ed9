package history

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	sessiondto "stillpoint/internal/modules/session/dto"
	"stillpoint/internal/ui/theme"
)

const limit = 100

type HistoryPort interface {
	List(ctx context.Context, limit int) ([]sessiondto.SessionOutput, error)
}

type LoadedMsg struct {
	Sessions []sessiondto.SessionOutput
	Err      error
}

type item struct {
	s sessiondto.SessionOutput
}

func (i item) Title() string {
	return fmt.Sprintf("%d min", i.s.Duration/60)
}

func (i item) Description() string {
	if i.s.CompletedAt.IsZero() {
		return i.s.Timestamp
	}
	return i.s.CompletedAt.Local().Format("Mon Jan 2 2006 · 15:04")
}

func (i item) FilterValue() string { return i.Description() }

type Model struct {
	port HistoryPort
	list list.Model
}

func New(port HistoryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Dusk).BorderForeground(theme.Dusk)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Lake).BorderForeground(theme.Dusk)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	if m.port == nil {
		return nil
	}
	return func() tea.Msg {
		sessions, err := m.port.List(context.Background(), limit)
		return LoadedMsg{Sessions: sessions, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "History: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[i] = item{s: s}
		}
		m.list.Title = fmt.Sprintf("History (%d)", len(msg.Sessions))
		return m, m.list.SetItems(items)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
