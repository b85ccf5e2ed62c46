package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tracesplit/pkg/trace"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

const (
	previewMaxLines  = 12
	defaultListRows  = 15
	minimumListRows  = 5
	listChromeHeight = 6 // title, help and table borders
)

// =============================================================================
// TraceListModel - Interactive output trace selection
// =============================================================================

// TraceListModel is the bubbletea model for browsing split output.
type TraceListModel struct {
	Traces  []trace.Trace
	Origins []int
	Points  []int

	Cursor   int
	Offset   int
	Height   int
	Preview  bool
	Selected *trace.Trace
}

// NewTraceListModel creates a list over traces. origins and points are
// parallel to traces and may be shorter.
func NewTraceListModel(traces []trace.Trace, origins, points []int) TraceListModel {
	return TraceListModel{
		Traces:  traces,
		Origins: origins,
		Points:  points,
		Height:  defaultListRows,
	}
}

func (m TraceListModel) Init() tea.Cmd {
	return nil
}

func (m TraceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Traces)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "p":
			m.Preview = !m.Preview
		case "enter":
			if len(m.Traces) == 0 {
				return m, nil
			}
			t := m.Traces[m.Cursor]
			m.Selected = &t
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-listChromeHeight, minimumListRows)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m TraceListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Split Traces"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space preview  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.Traces) == 0 {
		b.WriteString(listDimStyle.Render("  no traces"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Traces))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		t := m.Traces[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, truncate(t.Name(), 28), t.Type(), at(m.Origins, i), at(m.Points, i)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Type", "From", "Points").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(tbl.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Traces))))

	if m.Preview {
		b.WriteString("\n")
		b.WriteString(previewStyle.Render(preview(m.Traces[m.Cursor], previewMaxLines)))
	}
	b.WriteString("\n")

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// at formats s[i], or "-" past the end of s.
func at(s []int, i int) string {
	if i < len(s) {
		return strconv.Itoa(s[i])
	}
	return "-"
}

// preview renders t as indented JSON cut to n lines.
func preview(t trace.Trace, n int) string {
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err.Error()
	}
	lines := strings.Split(string(b), "\n")
	if len(lines) > n {
		lines = append(lines[:n], listDimStyle.Render(fmt.Sprintf("… %d more lines", len(lines)-n)))
	}
	return strings.Join(lines, "\n")
}
