package achievements

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	achievementdto "stillpoint/internal/modules/achievement/dto"
	"stillpoint/internal/ui/theme"
)

type AchievementsPort interface {
	List(ctx context.Context) []achievementdto.AchievementOutput
	Stats(ctx context.Context) achievementdto.StatsOutput
}

type LoadedMsg struct {
	Items []achievementdto.AchievementOutput
	Stats achievementdto.StatsOutput
}

type item struct {
	a achievementdto.AchievementOutput
}

func (i item) Title() string {
	mark := "○"
	if i.a.Unlocked {
		mark = "●"
	}
	return fmt.Sprintf("%s %s %s", mark, i.a.Icon, i.a.Title)
}

func (i item) Description() string {
	if i.a.Unlocked {
		return i.a.Description + " · unlocked " + i.a.UnlockedAt
	}
	return fmt.Sprintf("%s · %d%%", i.a.Description, i.a.Percent)
}

func (i item) FilterValue() string { return i.a.Title }

type Model struct {
	port AchievementsPort
	list list.Model
}

func New(port AchievementsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Dusk).BorderForeground(theme.Dusk)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Lake).BorderForeground(theme.Dusk)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Achievements"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
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
		ctx := context.Background()
		return LoadedMsg{Items: m.port.List(ctx), Stats: m.port.Stats(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case LoadedMsg:
		items := make([]list.Item, len(msg.Items))
		for i, a := range msg.Items {
			items[i] = item{a: a}
		}
		m.list.Title = fmt.Sprintf("Achievements %d/%d (%d%%)", msg.Stats.Unlocked, msg.Stats.Total, msg.Stats.Percentage)
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
