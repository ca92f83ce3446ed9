package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stillpoint/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Dusk).
			Background(theme.Night).
			Foreground(theme.Paper).
			Padding(0, 1)

	hintStyle     = lipgloss.NewStyle().Foreground(theme.Mist)
	selectedStyle = lipgloss.NewStyle().Foreground(theme.Ember)
)

// Commands lists the palette commands with their argument hints. The app
// model dispatches on the first word.
var Commands = []string{
	"timer:preset <minutes>",
	"timer:reset",
	"timer:breathe <pattern|off>",
	"stats:reload",
	"achievements",
	"history",
}

const maxHints = 6

// Palette is a command-palette overlay backed by bubbles/textinput. Tab
// completes the first matching command; up recalls the last submission.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	last    string
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 64
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			if val != "" {
				p.last = val
			}
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if matches := Match(p.input.Value()); len(matches) > 0 {
				p.input.SetValue(completion(matches[0]))
				p.input.CursorEnd()
			}
			return p, nil
		case "up":
			if p.last != "" {
				p.input.SetValue(p.last)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// Match returns up to five commands whose name starts with the typed command word.
func Match(input string) []string {
	fields := strings.Fields(strings.ToLower(input))
	word := ""
	if len(fields) > 0 {
		word = fields[0]
	}
	var out []string
	for _, c := range Commands {
		if strings.HasPrefix(c, word) {
			out = append(out, c)
			if len(out) == maxHints {
				break
			}
		}
	}
	return out
}

// completion is the command name followed by a space when it takes arguments.
func completion(command string) string {
	name, _, hasArgs := strings.Cut(command, " ")
	if hasArgs {
		return name + " "
	}
	return name
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	matches := Match(p.input.Value())

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matches) > 0 {
		sb.WriteString("\n")
		for i, h := range matches {
			style := hintStyle
			if i == 0 {
				style = selectedStyle
			}
			sb.WriteString(style.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
