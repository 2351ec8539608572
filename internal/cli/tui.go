package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/siderealab/orrery/pkg/chart"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PlacementModel - Interactive chart browsing
// =============================================================================

// PlacementModel is the bubbletea model for browsing a chart's
// placements.
type PlacementModel struct {
	Chart  *chart.Chart
	Cursor int
	Height int
	Offset int
}

// NewPlacementModel creates a placement browser for a chart.
func NewPlacementModel(c *chart.Chart) PlacementModel {
	return PlacementModel{
		Chart:  c,
		Cursor: 0,
		Height: 12,
		Offset: 0,
	}
}

func (m PlacementModel) Init() tea.Cmd {
	return nil
}

func (m PlacementModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Chart.Placements)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PlacementModel) View() string {
	var b strings.Builder

	title := "Natal Chart"
	if m.Chart.Subject.Name != "" {
		title += " · " + m.Chart.Subject.Name
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Chart.Placements) {
		end = len(m.Chart.Placements)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Chart.Placements[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		motion := "direct"
		if p.Position.Retrograde {
			motion = "retrograde ℞"
		}

		rows = append(rows, []string{
			cursor,
			p.Position.Body.Symbol() + " " + p.Position.Body.String(),
			fmt.Sprintf("%.2f° %s", p.RelativeDegree, p.SignName),
			fmt.Sprintf("house %d", p.House),
			motion,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Body", "Position", "House", "Motion").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Chart.Placements) {
				return lipgloss.NewStyle()
			}
			p := m.Chart.Placements[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 4 && p.Position.Retrograde {
				base = base.Foreground(colorRed)
			} else if col == 4 {
				base = base.Foreground(colorDim)
			}

			if isCurrent {
				return base.Foreground(colorCyan).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s rising · [%d/%d]",
		m.Chart.BigThree.Rising, m.Cursor+1, len(m.Chart.Placements))))

	return b.String()
}
