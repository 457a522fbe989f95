package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "abaterm/internal/modules/catalog/dto"
	sessiondto "abaterm/internal/modules/session/dto"
	summarydto "abaterm/internal/modules/summary/dto"
	"abaterm/internal/ui/theme"
	programsview "abaterm/internal/ui/views/programs"
	sessionformview "abaterm/internal/ui/views/sessionform"
	summaryview "abaterm/internal/ui/views/summary"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type sessionPort interface {
	Current(ctx context.Context) sessiondto.SessionOutput
	UpdateField(ctx context.Context, field sessiondto.SessionField, value string) sessiondto.SessionOutput
	AddProgram(ctx context.Context, name string) (sessiondto.SessionOutput, bool)
	UpdateProgram(ctx context.Context, programID string, update sessiondto.ProgramUpdate) sessiondto.SessionOutput
	ToggleTag(ctx context.Context, programID string, reinforcer bool, value string) sessiondto.SessionOutput
	RemoveProgram(ctx context.Context, programID string) sessiondto.SessionOutput
	Save(ctx context.Context) (sessiondto.SaveOutput, error)
}

type catalogPort interface {
	Get(ctx context.Context) catalogdto.CatalogOutput
	Refresh(ctx context.Context) catalogdto.CatalogOutput
	SearchPrograms(ctx context.Context, term string) catalogdto.ProgramSearchOutput
}

type summaryPort interface {
	Generate(ctx context.Context) summarydto.SummaryOutput
	Ready() bool
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabSession tabID = iota
	tabPrograms
	tabSummary
	tabCount
)

var tabLabels = [tabCount]string{"Sesión", "Programas", "Resumen"}

// ─── async messages ──────────────────────────────────────────────────────────

type savedMsg struct {
	out sessiondto.SaveOutput
	err error
}

type toastExpiredMsg struct{}

type catalogRefreshedMsg struct {
	catalog catalogdto.CatalogOutput
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Save    key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
	Add     key.Binding
	Summary key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "cambiar pestaña")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "guardar sesión")),
		Refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "recargar listas")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "salir")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "agregar programa")),
		Summary: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generar resumen")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Save, k.Refresh},
		{k.Add, k.Summary},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the save flow with
// its advisory lock, and the status toasts. All business logic is delegated to
// port interfaces; all rendering is delegated to sub-views.
type Model struct {
	session  sessionPort
	catalogs catalogPort

	formView    sessionformview.Model
	programView programsview.Model
	summaryView summaryview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool

	saving     bool
	toast      string
	errorMsg   string
	offline    bool
	emptyLists bool

	width  int
	height int
}

func NewModel(session sessionPort, catalogs catalogPort, summaries summaryPort) Model {
	return Model{
		session:     session,
		catalogs:    catalogs,
		formView:    sessionformview.New(sessionBridge{p: session}, catalogBridge{p: catalogs}),
		programView: programsview.New(sessionBridge{p: session}, catalogBridge{p: catalogs}),
		summaryView: summaryview.New(summaries),
		activeTab:   tabSession,
		keys:        defaultKeys(),
		help:        help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.formView.Init(), m.refreshCatalogCmd(false))
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.propagateSize()

	case catalogRefreshedMsg:
		m.offline = msg.catalog.Degraded
		m.emptyLists = msg.catalog.Empty
		m.formView, _ = m.formView.Update(sessionformview.CatalogLoadedMsg{Catalog: msg.catalog})

	case savedMsg:
		m.saving = false
		if msg.err != nil || !msg.out.Succeeded {
			m.errorMsg = msg.out.Message
			if m.errorMsg == "" && msg.err != nil {
				m.errorMsg = msg.err.Error()
			}
			return m, nil
		}
		m.toast = "Sesión guardada correctamente"
		m.formView.Refresh()
		m.programView.Refresh()
		m.activeTab = tabSession
		return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg { return toastExpiredMsg{} })

	case toastExpiredMsg:
		m.toast = ""

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// A persistent error stays until the user acknowledges it.
		if m.errorMsg != "" {
			if msg.String() == "esc" || msg.String() == "enter" {
				m.errorMsg = ""
			}
			return m, nil
		}

		// Yield to sub-view editors so free typing works.
		if m.subViewEditing() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case "ctrl+s":
			if !m.saving {
				m.saving = true
				return m, m.saveCmd()
			}
			return m, nil
		case "ctrl+r":
			return m, m.refreshCatalogCmd(true)
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabSession:
		m.formView, tabCmd = m.formView.Update(msg)
	case tabPrograms:
		m.programView, tabCmd = m.programView.Update(msg)
	case tabSummary:
		m.summaryView, tabCmd = m.summaryView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.errorMsg != "":
		box := theme.PaneActive.BorderForeground(theme.Red).Render(
			theme.Error.Render("No se pudo guardar") + "\n\n" +
				m.errorMsg + "\n\n" +
				theme.Muted.Render("enter/esc para continuar"))
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, box)
	case m.saving:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, "Guardando sesión…")
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabSession:
		return m.formView.View()
	case tabPrograms:
		return m.programView.View()
	case tabSummary:
		return m.summaryView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "abaterm  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.toast != "":
		left = theme.Success.Render("✓ " + m.toast)
	case m.offline:
		left = theme.Offline.Render("● sin conexión") + theme.Muted.Render("  listas locales en uso")
	case m.emptyLists:
		left = theme.Offline.Render("⚠ la hoja devolvió listas vacías")
	default:
		left = theme.Muted.Render("listo")
	}
	right := theme.Muted.Render("?:ayuda  tab:pestaña  ctrl+s:guardar  q:salir")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewEditing reports whether the active tab holds keyboard focus in an
// editor or overlay, in which case global key bindings must yield.
func (m Model) subViewEditing() bool {
	switch m.activeTab {
	case tabSession:
		return m.formView.Editing()
	case tabPrograms:
		return m.programView.Editing()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.formView, _ = m.formView.Update(sz)
	m.programView, _ = m.programView.Update(sz)
	m.summaryView, _ = m.summaryView.Update(sz)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) saveCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Save(context.Background())
		return savedMsg{out: out, err: err}
	}
}

func (m Model) refreshCatalogCmd(force bool) tea.Cmd {
	return func() tea.Msg {
		if force {
			return catalogRefreshedMsg{catalog: m.catalogs.Refresh(context.Background())}
		}
		return catalogRefreshedMsg{catalog: m.catalogs.Get(context.Background())}
	}
}

// ─── port bridges ────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed
// by a specific sub-view, keeping view packages free of knowledge about the
// wider port surface.

type sessionBridge struct{ p sessionPort }

func (b sessionBridge) Current(ctx context.Context) sessiondto.SessionOutput {
	return b.p.Current(ctx)
}
func (b sessionBridge) UpdateField(ctx context.Context, field sessiondto.SessionField, value string) sessiondto.SessionOutput {
	return b.p.UpdateField(ctx, field, value)
}
func (b sessionBridge) AddProgram(ctx context.Context, name string) (sessiondto.SessionOutput, bool) {
	return b.p.AddProgram(ctx, name)
}
func (b sessionBridge) UpdateProgram(ctx context.Context, programID string, update sessiondto.ProgramUpdate) sessiondto.SessionOutput {
	return b.p.UpdateProgram(ctx, programID, update)
}
func (b sessionBridge) ToggleTag(ctx context.Context, programID string, reinforcer bool, value string) sessiondto.SessionOutput {
	return b.p.ToggleTag(ctx, programID, reinforcer, value)
}
func (b sessionBridge) RemoveProgram(ctx context.Context, programID string) sessiondto.SessionOutput {
	return b.p.RemoveProgram(ctx, programID)
}

type catalogBridge struct{ p catalogPort }

func (b catalogBridge) Get(ctx context.Context) catalogdto.CatalogOutput {
	return b.p.Get(ctx)
}
func (b catalogBridge) SearchPrograms(ctx context.Context, term string) catalogdto.ProgramSearchOutput {
	return b.p.SearchPrograms(ctx, term)
}
