package summary

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	summarydto "abaterm/internal/modules/summary/dto"
	"abaterm/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SummaryPort interface {
	Generate(ctx context.Context) summarydto.SummaryOutput
	Ready() bool
}

// ─── messages ────────────────────────────────────────────────────────────────

type GeneratedMsg struct {
	Output summarydto.SummaryOutput
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the generated session summary. Generation runs in the
// background; the session can be saved with or without it.
type Model struct {
	port SummaryPort

	output    summarydto.SummaryOutput
	generated bool
	loading   bool

	body    viewport.Model
	spinner spinner.Model
	width   int
	height  int
}

func New(port SummaryPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, body: vp, spinner: sp}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.width - 4
		m.body.Height = max(m.height-4, 1)

	case GeneratedMsg:
		m.loading = false
		m.generated = true
		m.output = msg.Output
		m.body.SetContent(m.renderBody())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "g" && !m.loading {
			m.loading = true
			return m, tea.Batch(m.generateCmd(), m.spinner.Tick)
		}
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, max(m.height, 1), lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Generando resumen…")
	}
	if !m.generated {
		hint := theme.Muted.Render("Pulsa ") + theme.Hot.Render("g") + theme.Muted.Render(" para generar el resumen de la sesión.")
		if m.port == nil || !m.port.Ready() {
			hint += "\n\n" + theme.Offline.Render("Sin generador configurado: agrega una API key de Gemini o un plugin.")
		}
		return lipgloss.Place(m.width, max(m.height, 1), lipgloss.Center, lipgloss.Center, hint)
	}
	return m.body.View()
}

func (m Model) renderBody() string {
	header := theme.Title.Render("Resumen de Sesión")
	if m.output.Backend != "" {
		header += theme.Muted.Render("  (" + m.output.Backend + ")")
	}
	text := m.output.Text
	if m.output.Failed {
		text = theme.Error.Render(text)
	}
	return header + "\n\n" + text
}

func (m Model) generateCmd() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return GeneratedMsg{Output: summarydto.SummaryOutput{Text: "Resumen no disponible.", Failed: true}}
		}
		return GeneratedMsg{Output: m.port.Generate(context.Background())}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
