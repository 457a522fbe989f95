package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"abaterm/internal/ui/theme"
)

// PickerSubmitMsg is emitted when the user confirms a program name, either an
// existing catalog entry or a new one typed in full.
type PickerSubmitMsg struct{ Name string }

// PickerCancelMsg is emitted when the user presses esc.
type PickerCancelMsg struct{}

const maxPickerRows = 7

var (
	pickerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	pickerRowStyle      = lipgloss.NewStyle().Foreground(theme.Subtext0)
	pickerSelectedStyle = lipgloss.NewStyle().Foreground(theme.Lavender).Bold(true)
)

// Picker is a search-as-you-type overlay for choosing a program from the
// catalog. Typing filters the list; a name that matches nothing can still be
// added via the trailing "create" row.
type Picker struct {
	input    textinput.Model
	visible  bool
	width    int
	matches  []string
	hasExact bool
	cursor   int
}

func NewPicker() Picker {
	ti := textinput.New()
	ti.Placeholder = "nombre del programa…"
	ti.CharLimit = 120
	return Picker{input: ti}
}

func (p Picker) Visible() bool { return p.visible }

// Open shows the picker seeded with the full catalog and focuses the input.
func (p *Picker) Open(catalog []string) tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	p.matches = catalog
	p.hasExact = false
	p.cursor = 0
	return p.input.Focus()
}

// SetMatches replaces the filtered rows after a search round-trip.
func (p *Picker) SetMatches(matches []string, hasExact bool) {
	p.matches = matches
	p.hasExact = hasExact
	if p.cursor >= p.rowCount() {
		p.cursor = p.rowCount() - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *Picker) SetWidth(w int) { p.width = w }

// Term returns the current search text.
func (p Picker) Term() string { return strings.TrimSpace(p.input.Value()) }

// rowCount includes the synthetic "create" row when the term is new.
func (p Picker) rowCount() int {
	n := len(p.matches)
	if n > maxPickerRows {
		n = maxPickerRows
	}
	if p.showCreateRow() {
		n++
	}
	return n
}

func (p Picker) showCreateRow() bool {
	return p.Term() != "" && !p.hasExact
}

func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PickerCancelMsg{} }
		case "up":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		case "down":
			if p.cursor < p.rowCount()-1 {
				p.cursor++
			}
			return p, nil
		case "enter":
			name := p.selectedName()
			if name == "" {
				return p, nil
			}
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PickerSubmitMsg{Name: name} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Picker) selectedName() string {
	visible := p.matches
	if len(visible) > maxPickerRows {
		visible = visible[:maxPickerRows]
	}
	if p.cursor < len(visible) {
		return visible[p.cursor]
	}
	if p.showCreateRow() {
		return p.Term()
	}
	return ""
}

func (p Picker) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Agregar Programa") + "\n")
	sb.WriteString("/ " + p.input.View() + "\n\n")

	visible := p.matches
	if len(visible) > maxPickerRows {
		visible = visible[:maxPickerRows]
	}
	for i, name := range visible {
		style := pickerRowStyle
		prefix := "  "
		if i == p.cursor {
			style = pickerSelectedStyle
			prefix = "❯ "
		}
		sb.WriteString(style.Render(prefix+name) + "\n")
	}
	if p.showCreateRow() {
		style := pickerRowStyle
		prefix := "  "
		if p.cursor == len(visible) {
			style = pickerSelectedStyle
			prefix = "❯ "
		}
		sb.WriteString(style.Render(prefix+fmt.Sprintf("crear «%s»", p.Term())) + "\n")
	}
	if len(visible) == 0 && !p.showCreateRow() {
		sb.WriteString(pickerRowStyle.Render("  escribe para buscar") + "\n")
	}

	w := p.width
	if w < 20 {
		w = 56
	}
	return pickerStyle.Width(w - 2).Render(sb.String())
}
