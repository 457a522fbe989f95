package programs

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "abaterm/internal/modules/catalog/dto"
	sessiondto "abaterm/internal/modules/session/dto"
	"abaterm/internal/ui/components"
	"abaterm/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type SessionPort interface {
	Current(ctx context.Context) sessiondto.SessionOutput
	AddProgram(ctx context.Context, name string) (sessiondto.SessionOutput, bool)
	UpdateProgram(ctx context.Context, programID string, update sessiondto.ProgramUpdate) sessiondto.SessionOutput
	ToggleTag(ctx context.Context, programID string, reinforcer bool, value string) sessiondto.SessionOutput
	RemoveProgram(ctx context.Context, programID string) sessiondto.SessionOutput
}

type CatalogPort interface {
	Get(ctx context.Context) catalogdto.CatalogOutput
	SearchPrograms(ctx context.Context, term string) catalogdto.ProgramSearchOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type searchResultMsg struct {
	out catalogdto.ProgramSearchOutput
}

// ─── field cursor ────────────────────────────────────────────────────────────

type fieldID int

const (
	fieldLevel fieldID = iota
	fieldElements
	fieldCorrect
	fieldIncorrect
	fieldHelp
	fieldReinforcer
	fieldSchedule
	fieldInterval
	fieldNotes
	fieldCount
)

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the per-program trial cards: counters with the accuracy badge,
// help and reinforcer tags, the reinforcement schedule, and notes. Adding a
// program goes through the catalog picker overlay; removal asks first.
type Model struct {
	session  SessionPort
	catalogs CatalogPort

	data     sessiondto.SessionOutput
	selected int
	field    fieldID
	option   int

	editing bool
	input   textinput.Model

	picker     components.Picker
	searchTerm string

	confirmRemove bool

	width  int
	height int
}

func New(session SessionPort, catalogs CatalogPort) Model {
	ti := textinput.New()
	ti.CharLimit = 400

	m := Model{
		session:  session,
		catalogs: catalogs,
		picker:   components.NewPicker(),
		input:    ti,
	}
	if session != nil {
		m.data = session.Current(context.Background())
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Refresh re-reads the session projection after an outside mutation.
func (m *Model) Refresh() {
	if m.session != nil {
		m.data = m.session.Current(context.Background())
	}
	m.clamp()
}

// Editing reports whether an inline editor or overlay has keyboard focus.
func (m Model) Editing() bool {
	return m.editing || m.picker.Visible() || m.confirmRemove
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.SetWidth(min(m.width-4, 56))
		m.input.Width = min(m.width-24, 60)
		return m, nil

	case searchResultMsg:
		m.picker.SetMatches(msg.out.Matches, msg.out.ExactMatch)
		return m, nil

	case components.PickerSubmitMsg:
		if out, ok := m.session.AddProgram(context.Background(), msg.Name); ok {
			m.data = out
			m.selected = len(m.data.Programs) - 1
			m.field = fieldCorrect
		}
		return m, nil

	case components.PickerCancelMsg:
		return m, nil
	}

	if m.picker.Visible() {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		cmds := []tea.Cmd{cmd}
		if term := m.picker.Term(); term != m.searchTerm {
			m.searchTerm = term
			cmds = append(cmds, m.searchCmd(term))
		}
		return m, tea.Batch(cmds...)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirmRemove {
		switch key.String() {
		case "y", "enter":
			m.confirmRemove = false
			if p, ok := m.current(); ok {
				m.data = m.session.RemoveProgram(context.Background(), p.ID)
				m.clamp()
			}
		default:
			m.confirmRemove = false
		}
		return m, nil
	}

	if m.editing {
		return m.updateEditing(key)
	}

	switch key.String() {
	case "a":
		m.searchTerm = ""
		catalog := m.catalogs.Get(context.Background())
		return m, m.picker.Open(catalog.Programs)
	case "up", "k":
		if m.selected > 0 {
			m.selected--
			m.field = fieldLevel
			m.option = 0
		}
	case "down", "j":
		if m.selected < len(m.data.Programs)-1 {
			m.selected++
			m.field = fieldLevel
			m.option = 0
		}
	case " ", "space":
		m.toggleCollapse()
	case "d":
		if _, ok := m.current(); ok {
			m.confirmRemove = true
		}
	case "tab":
		m.moveField(1)
	case "shift+tab":
		m.moveField(-1)
	case "+", "=":
		m.adjustCount(false, 1)
	case "-":
		m.adjustCount(false, -1)
	case "]":
		m.adjustCount(true, 1)
	case "[":
		m.adjustCount(true, -1)
	case "left":
		m.handleArrow(-1)
	case "right":
		m.handleArrow(1)
	case "enter":
		return m.handleEnter()
	}
	return m, nil
}

// ─── key handling ────────────────────────────────────────────────────────────

func (m Model) updateEditing(key tea.KeyMsg) (Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.editing = false
		m.input.Blur()
		m.commitText(strings.TrimSpace(m.input.Value()))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *Model) commitText(value string) {
	p, ok := m.current()
	if !ok {
		return
	}
	update := sessiondto.ProgramUpdate{}
	switch m.field {
	case fieldLevel:
		update.Level = &value
	case fieldElements:
		update.Elements = &value
	case fieldInterval:
		update.ReinforcementScheduleTime = &value
	case fieldNotes:
		update.Notes = &value
	default:
		return
	}
	m.data = m.session.UpdateProgram(context.Background(), p.ID, update)
}

func (m Model) handleEnter() (Model, tea.Cmd) {
	p, ok := m.current()
	if !ok {
		return m, nil
	}
	switch m.field {
	case fieldLevel, fieldElements, fieldInterval, fieldNotes:
		m.editing = true
		m.input.SetValue(m.textValue(p))
		m.input.CursorEnd()
		return m, m.input.Focus()
	case fieldHelp:
		m.toggleOption(false)
	case fieldReinforcer:
		m.toggleOption(true)
	}
	return m, nil
}

func (m *Model) handleArrow(dir int) {
	switch m.field {
	case fieldCorrect:
		m.adjustCount(false, dir)
	case fieldIncorrect:
		m.adjustCount(true, dir)
	case fieldHelp:
		m.moveOption(dir, len(sessiondto.HelpOptions))
	case fieldReinforcer:
		m.moveOption(dir, len(sessiondto.ReinforcerOptions))
	case fieldSchedule:
		m.cycleSchedule(dir)
	}
}

func (m *Model) moveField(dir int) {
	p, ok := m.current()
	if !ok {
		return
	}
	for {
		m.field = (m.field + fieldID(dir) + fieldCount) % fieldCount
		if m.field != fieldInterval || sessiondto.IsIntervalSchedule(p.ReinforcementSchedule) {
			break
		}
	}
	m.option = 0
}

func (m *Model) moveOption(dir, count int) {
	if count == 0 {
		return
	}
	m.option = (m.option + dir + count) % count
}

func (m *Model) toggleOption(reinforcer bool) {
	p, ok := m.current()
	if !ok {
		return
	}
	options := sessiondto.HelpOptions
	if reinforcer {
		options = sessiondto.ReinforcerOptions
	}
	if m.option >= len(options) {
		return
	}
	m.data = m.session.ToggleTag(context.Background(), p.ID, reinforcer, options[m.option])
}

func (m *Model) cycleSchedule(dir int) {
	p, ok := m.current()
	if !ok {
		return
	}
	schedules := sessiondto.Schedules
	idx := -1
	for i, s := range schedules {
		if s == p.ReinforcementSchedule {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(schedules) + 1) % (len(schedules) + 1)
	next := ""
	if idx < len(schedules) {
		next = schedules[idx]
	}
	m.data = m.session.UpdateProgram(context.Background(), p.ID, sessiondto.ProgramUpdate{ReinforcementSchedule: &next})
}

func (m *Model) adjustCount(incorrect bool, delta int) {
	p, ok := m.current()
	if !ok {
		return
	}
	update := sessiondto.ProgramUpdate{}
	if incorrect {
		v := p.IncorrectCount + delta
		update.IncorrectCount = &v
	} else {
		v := p.CorrectCount + delta
		update.CorrectCount = &v
	}
	m.data = m.session.UpdateProgram(context.Background(), p.ID, update)
}

func (m *Model) toggleCollapse() {
	p, ok := m.current()
	if !ok {
		return
	}
	collapsed := !p.IsCollapsed
	m.data = m.session.UpdateProgram(context.Background(), p.ID, sessiondto.ProgramUpdate{IsCollapsed: &collapsed})
}

func (m Model) current() (sessiondto.ProgramOutput, bool) {
	if m.selected < 0 || m.selected >= len(m.data.Programs) {
		return sessiondto.ProgramOutput{}, false
	}
	return m.data.Programs[m.selected], true
}

func (m *Model) clamp() {
	if m.selected >= len(m.data.Programs) {
		m.selected = len(m.data.Programs) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) textValue(p sessiondto.ProgramOutput) string {
	switch m.field {
	case fieldLevel:
		return p.Level
	case fieldElements:
		return p.Elements
	case fieldInterval:
		return p.ReinforcementScheduleTime
	case fieldNotes:
		return p.Notes
	}
	return ""
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.picker.Visible() {
		return lipgloss.Place(m.width, max(m.height, 1), lipgloss.Center, lipgloss.Center, m.picker.View())
	}
	if m.confirmRemove {
		p, _ := m.current()
		box := theme.PaneActive.Render(
			theme.Title.Render("Eliminar programa") + "\n\n" +
				fmt.Sprintf("¿Quitar «%s» de la sesión?\n\n", p.Name) +
				theme.Muted.Render("y/enter confirmar   esc cancelar"))
		return lipgloss.Place(m.width, max(m.height, 1), lipgloss.Center, lipgloss.Center, box)
	}

	if len(m.data.Programs) == 0 {
		empty := theme.Muted.Render("Sin programas. Pulsa ") + theme.Hot.Render("a") + theme.Muted.Render(" para agregar uno.")
		return lipgloss.Place(m.width, max(m.height, 1), lipgloss.Center, lipgloss.Center, empty)
	}

	var cards []string
	for i, p := range m.data.Programs {
		cards = append(cards, m.renderCard(i, p))
	}
	footer := theme.Muted.Render("a agregar  espacio plegar  d quitar  tab campo  +/- aciertos  [/] errores")
	return lipgloss.JoinVertical(lipgloss.Left, append(cards, footer)...)
}

func (m Model) renderCard(idx int, p sessiondto.ProgramOutput) string {
	selected := idx == m.selected
	badge := m.renderBadge(p)

	header := fmt.Sprintf("%s  %s", theme.Title.Render(p.Name), badge)
	if p.IsCollapsed {
		header += theme.Muted.Render(fmt.Sprintf("   ✓%d ✗%d", p.CorrectCount, p.IncorrectCount))
	}

	style := theme.Pane
	if selected {
		style = theme.PaneActive
	}
	if p.IsCollapsed {
		return style.Width(max(m.width-2, 20)).Render(header)
	}

	var sb strings.Builder
	sb.WriteString(header + "\n\n")
	sb.WriteString(m.renderRow(selected, fieldLevel, "Nivel", valueOrDash(p.Level)) + "\n")
	sb.WriteString(m.renderRow(selected, fieldElements, "Elementos", valueOrDash(p.Elements)) + "\n")
	sb.WriteString(m.renderRow(selected, fieldCorrect, "Aciertos", fmt.Sprintf("%d", p.CorrectCount)) + "\n")
	sb.WriteString(m.renderRow(selected, fieldIncorrect, "Errores", fmt.Sprintf("%d", p.IncorrectCount)) + "\n")
	sb.WriteString(m.renderTags(selected, fieldHelp, "Ayudas", sessiondto.HelpOptions, p.SelectedHelp) + "\n")
	sb.WriteString(m.renderTags(selected, fieldReinforcer, "Reforzadores", sessiondto.ReinforcerOptions, p.SelectedReinforcer) + "\n")
	sb.WriteString(m.renderRow(selected, fieldSchedule, "Reforzamiento", valueOrDash(p.ReinforcementSchedule)) + "\n")
	if sessiondto.IsIntervalSchedule(p.ReinforcementSchedule) {
		sb.WriteString(m.renderRow(selected, fieldInterval, "Intervalo (s)", valueOrDash(p.ReinforcementScheduleTime)) + "\n")
	}
	sb.WriteString(m.renderRow(selected, fieldNotes, "Notas", valueOrDash(p.Notes)))

	return style.Width(max(m.width-2, 20)).Render(sb.String())
}

func (m Model) renderBadge(p sessiondto.ProgramOutput) string {
	switch p.Band {
	case sessiondto.BandHigh:
		return theme.BandHigh.Render(p.PercentLabel)
	case sessiondto.BandMid:
		return theme.BandMid.Render(p.PercentLabel)
	case sessiondto.BandLow:
		return theme.BandLow.Render(p.PercentLabel)
	}
	return theme.BandNone.Render(p.PercentLabel)
}

func (m Model) renderRow(selected bool, f fieldID, label, value string) string {
	marker := "  "
	if selected && m.field == f {
		marker = theme.Hot.Render("❯ ")
		if m.editing {
			value = m.input.View()
		}
	}
	return marker + theme.Muted.Render(padLabel(label)) + value
}

func (m Model) renderTags(selected bool, f fieldID, label string, options, active []string) string {
	marker := "  "
	focused := selected && m.field == f
	if focused {
		marker = theme.Hot.Render("❯ ")
	}
	parts := make([]string, len(options))
	for i, opt := range options {
		text := opt
		if contains(active, opt) {
			text = "●" + text
		}
		switch {
		case focused && i == m.option:
			parts[i] = theme.Hot.Render("[" + text + "]")
		case contains(active, opt):
			parts[i] = theme.Success.Render(text)
		default:
			parts[i] = theme.Muted.Render(text)
		}
	}
	return marker + theme.Muted.Render(padLabel(label)) + strings.Join(parts, " ")
}

func valueOrDash(v string) string {
	if v == "" {
		return theme.Muted.Render("—")
	}
	return v
}

func padLabel(label string) string {
	const width = 14
	runes := len([]rune(label))
	if runes >= width {
		return label + " "
	}
	return label + strings.Repeat(" ", width-runes) + " "
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) searchCmd(term string) tea.Cmd {
	return func() tea.Msg {
		return searchResultMsg{out: m.catalogs.SearchPrograms(context.Background(), term)}
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
