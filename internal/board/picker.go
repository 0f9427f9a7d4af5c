package board

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 0, 2)

	pickerSummaryStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Padding(0, 0, 1, 2)

	pickerItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 0, 0, 2)

	pickerMixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

const (
	pickerPending = -1
	pickerQuit    = -2
)

type pickerModel struct {
	columns []Column
	tallies []Tally
	total   Tally
	rows    int
	cursor  int
	chosen  int
}

func newPickerModel(columns []Column, now time.Time, loc *time.Location) pickerModel {
	m := pickerModel{columns: columns, chosen: pickerPending}
	for _, c := range columns {
		t := c.Tally(now, loc)
		m.tallies = append(m.tallies, t)
		m.total.FollowUps += t.FollowUps
		m.total.Hot += t.Hot
		m.rows += len(c.Rows)
	}
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k := key.String(); k {
	case "q", "ctrl+c":
		m.chosen = pickerQuit
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.columns)-1 {
			m.cursor++
		}
	case "enter":
		m.chosen = m.cursor
		return m, tea.Quit
	default:
		// 1-9 open a column directly.
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			if i := int(k[0] - '1'); i < len(m.columns) {
				m.chosen = i
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render("Opportunity Board: select a status") + "\n")
	b.WriteString(pickerSummaryStyle.Render(fmt.Sprintf("%d companies · %d need follow-up · %d hot leads",
		m.rows, m.total.FollowUps, m.total.Hot)) + "\n")

	for i, c := range m.columns {
		label := fmt.Sprintf("%d. %-14s %3d  %s", i+1, c.Title(), len(c.Rows), pickerMixStyle.Render(mix(m.tallies[i])))
		if i == m.cursor {
			b.WriteString(pickerSelectedStyle.Render("> "+label) + "\n")
		} else {
			b.WriteString(pickerItemStyle.Render(label) + "\n")
		}
	}

	b.WriteString(pickerHintStyle.Render("↑/↓/j/k navigate  1-9 jump  enter open  q quit"))
	return b.String()
}

// mix describes a column's priority spread and flags, e.g. "H2 M1 L0 · ⚑1".
func mix(t Tally) string {
	s := fmt.Sprintf("H%d M%d L%d", t.High, t.Medium, t.Low)
	if t.Other > 0 {
		s += fmt.Sprintf(" ?%d", t.Other)
	}
	if t.FollowUps > 0 {
		s += fmt.Sprintf(" · ⚑%d", t.FollowUps)
	}
	if t.Hot > 0 {
		s += fmt.Sprintf(" · hot %d", t.Hot)
	}
	return s
}

// RunStatusPicker shows the status columns with their priority mix and
// returns the chosen index, or -1 if the user quit.
func RunStatusPicker(columns []Column, now time.Time, loc *time.Location) (int, error) {
	result, err := tea.NewProgram(newPickerModel(columns, now, loc)).Run()
	if err != nil {
		return -1, err
	}

	final := result.(pickerModel)
	if final.chosen < 0 {
		return -1, nil
	}
	return final.chosen, nil
}
