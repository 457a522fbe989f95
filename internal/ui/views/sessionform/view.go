package sessionform

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	catalogdto "abaterm/internal/modules/catalog/dto"
	sessiondto "abaterm/internal/modules/session/dto"
	"abaterm/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type SessionPort interface {
	Current(ctx context.Context) sessiondto.SessionOutput
	UpdateField(ctx context.Context, field sessiondto.SessionField, value string) sessiondto.SessionOutput
}

type CatalogPort interface {
	Get(ctx context.Context) catalogdto.CatalogOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type CatalogLoadedMsg struct {
	Catalog catalogdto.CatalogOutput
}

// ─── field cursor ────────────────────────────────────────────────────────────

type fieldID int

const (
	fieldStudent fieldID = iota
	fieldTherapist
	fieldDate
	fieldObservations
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Estudiante", "Terapeuta", "Fecha", "Observaciones",
}

var fieldNames = [fieldCount]sessiondto.SessionField{
	sessiondto.FieldStudentName,
	sessiondto.FieldTherapistName,
	sessiondto.FieldDate,
	sessiondto.FieldGeneralObservations,
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the session header form: participants, date, times, and the
// general observations. Student and therapist cycle through the catalog with
// ←/→ and accept free text with enter.
type Model struct {
	session  SessionPort
	catalogs CatalogPort

	data    sessiondto.SessionOutput
	catalog catalogdto.CatalogOutput

	cursor  fieldID
	editing bool
	input   textinput.Model
	notes   textarea.Model

	width  int
	height int
}

func New(session SessionPort, catalogs CatalogPort) Model {
	ti := textinput.New()
	ti.CharLimit = 120

	ta := textarea.New()
	ta.Placeholder = "Observaciones generales de la sesión…"
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false

	m := Model{
		session:  session,
		catalogs: catalogs,
		input:    ti,
		notes:    ta,
	}
	if session != nil {
		m.data = session.Current(context.Background())
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.loadCatalogCmd()
}

// Refresh re-reads the session projection, for use after an outside mutation
// such as a save reset.
func (m *Model) Refresh() {
	if m.session != nil {
		m.data = m.session.Current(context.Background())
	}
}

// Editing reports whether a field editor is focused, in which case global key
// bindings must yield.
func (m Model) Editing() bool { return m.editing }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = min(m.width-24, 60)
		m.notes.SetWidth(min(m.width-8, 76))
		m.notes.SetHeight(5)

	case CatalogLoadedMsg:
		m.catalog = msg.Catalog

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < fieldCount-1 {
				m.cursor++
			}
		case "left":
			m.cycleOption(-1)
		case "right":
			m.cycleOption(1)
		case "enter":
			return m.startEditing()
		}
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.cursor == fieldObservations {
		switch msg.String() {
		case "esc":
			m.editing = false
			m.notes.Blur()
			m.data = m.session.UpdateField(context.Background(), sessiondto.FieldGeneralObservations, m.notes.Value())
			return m, nil
		}
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.editing = false
		m.input.Blur()
		m.data = m.session.UpdateField(context.Background(), fieldNames[m.cursor], strings.TrimSpace(m.input.Value()))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startEditing() (Model, tea.Cmd) {
	m.editing = true
	if m.cursor == fieldObservations {
		m.notes.SetValue(m.data.GeneralObservations)
		return m, m.notes.Focus()
	}
	m.input.SetValue(m.fieldValue(m.cursor))
	m.input.CursorEnd()
	return m, m.input.Focus()
}

// cycleOption steps the student or therapist through the catalog list.
func (m *Model) cycleOption(dir int) {
	var options []string
	var field sessiondto.SessionField
	switch m.cursor {
	case fieldStudent:
		options, field = m.catalog.Students, sessiondto.FieldStudentName
	case fieldTherapist:
		options, field = m.catalog.Therapists, sessiondto.FieldTherapistName
	default:
		return
	}
	if len(options) == 0 {
		return
	}
	current := m.fieldValue(m.cursor)
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(options)) % len(options)
	m.data = m.session.UpdateField(context.Background(), field, options[idx])
}

func (m Model) fieldValue(f fieldID) string {
	switch f {
	case fieldStudent:
		return m.data.StudentName
	case fieldTherapist:
		return m.data.TherapistName
	case fieldDate:
		return m.data.Date
	case fieldObservations:
		return m.data.GeneralObservations
	}
	return ""
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Datos de la Sesión") + "\n\n")

	for f := fieldID(0); f < fieldObservations; f++ {
		sb.WriteString(m.renderField(f) + "\n")
	}
	sb.WriteString(theme.Muted.Render("Inicio        ") + m.data.StartTime + "\n")
	end := m.data.EndTime
	if end == "" {
		end = theme.Muted.Render("al guardar")
	}
	sb.WriteString(theme.Muted.Render("Fin           ") + end + "\n\n")

	sb.WriteString(m.renderObservations() + "\n")

	if m.catalog.Degraded {
		sb.WriteString("\n" + theme.Offline.Render("⚠ sin conexión: listas locales") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("↑/↓ campo  ←/→ opción  enter editar"))

	return theme.Pane.Width(max(m.width-2, 20)).Render(sb.String())
}

func (m Model) renderField(f fieldID) string {
	label := fieldLabels[f]
	marker := "  "
	if f == m.cursor {
		marker = theme.Hot.Render("❯ ")
	}
	if m.editing && f == m.cursor {
		return marker + theme.Muted.Render(padLabel(label)) + m.input.View()
	}
	value := m.fieldValue(f)
	if value == "" {
		value = theme.Muted.Render("—")
	}
	return marker + theme.Muted.Render(padLabel(label)) + value
}

func (m Model) renderObservations() string {
	marker := "  "
	if m.cursor == fieldObservations {
		marker = theme.Hot.Render("❯ ")
	}
	header := marker + theme.Muted.Render("Observaciones")
	if m.editing && m.cursor == fieldObservations {
		return header + "\n" + m.notes.View() + "\n" + theme.Muted.Render("  esc guardar")
	}
	body := m.data.GeneralObservations
	if body == "" {
		body = theme.Muted.Render("  —")
	} else {
		body = "  " + body
	}
	return header + "\n" + body
}

func padLabel(label string) string {
	const width = 12
	if len(label) >= width {
		return label + " "
	}
	return label + strings.Repeat(" ", width-len(label)) + " "
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		if m.catalogs == nil {
			return CatalogLoadedMsg{}
		}
		return CatalogLoadedMsg{Catalog: m.catalogs.Get(context.Background())}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
