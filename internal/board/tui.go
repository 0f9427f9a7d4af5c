package board

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/amishk599/leadbrief/internal/briefing"
	"github.com/amishk599/leadbrief/internal/model"
)

// Lines per row item in the list pane (company + subtitle + blank separator).
const rowItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")) // dim gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	rowTitleStyle = lipgloss.NewStyle().
			Bold(true)

	rowSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedRowTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")). // bright white
				Background(lipgloss.Color("24"))  // dark blue bg

	selectedRowSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(16)

	detailValueStyle = lipgloss.NewStyle()

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)

	followUpStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208")) // orange

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	notesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	priorityStyles = map[model.Priority]lipgloss.Style{
		model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		model.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

type boardModel struct {
	columns []Column
	col     int   // visible column
	cursors []int // per column

	listViewport    viewport.Model
	previewViewport viewport.Model
	width           int
	height          int
	ready           bool

	view           viewState
	detailViewport viewport.Model

	now time.Time
	loc *time.Location

	wantQuit bool
}

func newBoardModel(columns []Column, start int, now time.Time, loc *time.Location) boardModel {
	return boardModel{
		columns: columns,
		col:     clamp(start, 0, max(len(columns)-1, 0)),
		cursors: make([]int, len(columns)),
		now:     now,
		loc:     loc,
	}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderDetail(m.selected(), m.width-8))
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m boardModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "b":
		m.wantQuit = false
		return m, tea.Quit
	case "tab", "right", "l":
		m.switchColumn(1)
		return m, nil
	case "shift+tab", "left", "h":
		m.switchColumn(-1)
		return m, nil
	case "up", "k":
		m.moveCursor(-1)
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "enter":
		return m.openDetailView()
	case "o":
		if r, ok := m.selectedOK(); ok {
			openURL(rowURL(r))
		}
		return m, nil
	}

	// Forward other keys (pgup/pgdn/home/end) to the list viewport.
	var cmd tea.Cmd
	m.listViewport, cmd = m.listViewport.Update(msg)
	return m, cmd
}

func (m boardModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		openURL(rowURL(m.selected()))
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *boardModel) switchColumn(delta int) {
	if len(m.columns) == 0 {
		return
	}
	m.col = (m.col + delta + len(m.columns)) % len(m.columns)
	m.listViewport.SetYOffset(0)
	m.recalcContent()
	m.ensureCursorVisible()
}

func (m *boardModel) moveCursor(delta int) {
	if len(m.columns) == 0 {
		return
	}
	rows := m.columns[m.col].Rows
	m.cursors[m.col] = clamp(m.cursors[m.col]+delta, 0, max(len(rows)-1, 0))
}

func (m *boardModel) ensureCursorVisible() {
	if len(m.columns) == 0 {
		return
	}
	vp := &m.listViewport
	cursorTop := m.cursors[m.col] * rowItemHeight
	cursorBottom := cursorTop + rowItemHeight - 1

	if cursorTop < vp.YOffset {
		vp.SetYOffset(cursorTop)
	} else if cursorBottom >= vp.YOffset+vp.Height {
		vp.SetYOffset(cursorBottom - vp.Height + 1)
	}
}

func (m boardModel) selectedOK() (model.OpportunityRow, bool) {
	if len(m.columns) == 0 || len(m.columns[m.col].Rows) == 0 {
		return model.OpportunityRow{}, false
	}
	return m.columns[m.col].Rows[m.cursors[m.col]], true
}

func (m boardModel) selected() model.OpportunityRow {
	r, _ := m.selectedOK()
	return r
}

func (m boardModel) openDetailView() (tea.Model, tea.Cmd) {
	r, ok := m.selectedOK()
	if !ok {
		return m, nil
	}
	m.view = viewDetail
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderDetail(r, m.width-8))
	return m, nil
}

func (m *boardModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((m.width-5)/2, 20)

	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(m.height-4, 5)

	if !m.ready {
		m.listViewport = viewport.New(paneWidth, paneHeight)
		m.previewViewport = viewport.New(paneWidth, paneHeight)
		m.ready = true
	} else {
		m.listViewport.Width = paneWidth
		m.listViewport.Height = paneHeight
		m.previewViewport.Width = paneWidth
		m.previewViewport.Height = paneHeight
	}

	m.recalcContent()
}

func (m *boardModel) recalcContent() {
	if len(m.columns) == 0 {
		m.listViewport.SetContent("  (sheet is empty)")
		m.previewViewport.SetContent("")
		return
	}
	m.listViewport.SetContent(m.renderRows(m.columns[m.col].Rows, m.cursors[m.col]))
	m.previewViewport.SetContent(m.renderDetail(m.selected(), m.previewViewport.Width-2))
}

func (m boardModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.view == viewDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m boardModel) viewList() string {
	paneWidth := m.listViewport.Width

	listHeader := " (no rows)"
	if len(m.columns) > 0 {
		c := m.columns[m.col]
		listHeader = fmt.Sprintf(" %s (%d)  [%d/%d]", c.Title(), len(c.Rows), m.col+1, len(m.columns))
	}

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(paneWidth+2).Render(activeHeaderStyle.Render(listHeader)),
		" ",
		lipgloss.NewStyle().Width(paneWidth+2).Render(inactiveHeaderStyle.Render(" Details")),
	)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		activeBorderStyle.Width(paneWidth).Render(m.listViewport.View()),
		" ",
		inactiveBorderStyle.Width(paneWidth).Render(m.previewViewport.View()),
	)

	total := 0
	for _, c := range m.columns {
		total += len(c.Rows)
	}
	statusText := fmt.Sprintf(" %d companies | %d statuses    ←/→/Tab status  ↑/↓ cursor  Enter detail  o open link  Esc back  q quit",
		total, len(m.columns))
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return headerRow + "\n" + panes + "\n" + statusBar
}

func (m boardModel) viewDetail() string {
	title := detailTitleStyle.Render(m.selected().Company)
	content := activeBorderStyle.Width(m.width - 2).Render(m.detailViewport.View())
	statusBar := statusBarStyle.Width(m.width).Render(" o open link  esc/backspace back  ↑/↓ scroll  q quit")
	return title + "\n" + content + "\n" + statusBar
}

func (m boardModel) renderRows(rows []model.OpportunityRow, cursor int) string {
	if len(rows) == 0 {
		return "  (no companies)"
	}

	var b strings.Builder
	for i, r := range rows {
		titleSt := rowTitleStyle
		subtitleSt := rowSubtitleStyle
		prefix := "  "
		if i == cursor {
			titleSt = selectedRowTitleStyle
			subtitleSt = selectedRowSubtitleStyle
			prefix = "> "
		}

		b.WriteString(prefix)
		b.WriteString(titleSt.Render(r.Company))
		if r.Priority != "" {
			b.WriteString(" " + priorityStyles[r.Priority].Render("["+string(r.Priority)+"]"))
		}
		if m.needsFollowUp(r) {
			b.WriteString(" " + followUpStyle.Render("follow up"))
		}
		b.WriteByte('\n')

		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(m.subtitle(r)))
		b.WriteByte('\n')

		if i < len(rows)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m boardModel) subtitle(r model.OpportunityRow) string {
	parts := []string{}
	if r.Industry != "" {
		parts = append(parts, r.Industry)
	}
	if added := m.relative(r.DateAdded); added != "" {
		parts = append(parts, "added "+added)
	}
	if len(parts) == 0 {
		return "n/a"
	}
	return strings.Join(parts, " · ")
}

// relative renders a YYYY-MM-DD cell as "3 days ago"; unparseable cells
// render as empty.
func (m boardModel) relative(date string) string {
	days, ok := briefing.DaysSince(date, m.now, m.loc)
	if !ok {
		return ""
	}
	if days == 0 {
		return "today"
	}
	then := m.now.AddDate(0, 0, -days)
	return humanize.RelTime(then, m.now, "ago", "from now")
}

func (m boardModel) needsFollowUp(r model.OpportunityRow) bool {
	return needsFollowUp(r, m.now, m.loc)
}

func (m boardModel) renderDetail(r model.OpportunityRow, width int) string {
	if r.Company == "" {
		return ""
	}
	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteByte('\n')
	}
	withAge := func(date string) string {
		if rel := m.relative(date); rel != "" {
			return date + " (" + rel + ")"
		}
		return date
	}

	addField("Company", r.Company)
	addField("Priority", string(r.Priority))
	addField("Industry", r.Industry)
	addField("Type", r.Type)
	addField("Location", r.Location)
	addField("Status", r.Status)

	b.WriteByte('\n')
	addField("Date Added", withAge(r.DateAdded))
	addField("Last Action", withAge(r.LastAction))
	if m.needsFollowUp(r) {
		b.WriteString(followUpStyle.Render("⚑ needs follow-up") + "\n")
	}

	b.WriteByte('\n')
	addField("Contact", r.Contact)
	addField("Job Link", r.JobLink)
	addField("Website", r.Website)

	if r.Notes != "" {
		width = max(width, 20)
		b.WriteByte('\n')
		b.WriteString(dividerStyle.Render("── Notes "+strings.Repeat("─", max(width-9, 3))) + "\n\n")
		b.WriteString(notesStyle.Render(wordWrap(r.Notes, width)) + "\n")
	}

	return b.String()
}

func rowURL(r model.OpportunityRow) string {
	if r.JobLink != "" {
		return r.JobLink
	}
	return r.Website
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	if url == "" {
		return
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// RunBoard launches the full-screen board starting at column start.
// Returns wantQuit=true if the user pressed q/ctrl+c, false if they pressed
// esc to return to the status picker.
func RunBoard(columns []Column, start int, now time.Time, loc *time.Location) (bool, error) {
	m := newBoardModel(columns, start, now, loc)

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	final := result.(boardModel)
	return final.wantQuit, nil
}
