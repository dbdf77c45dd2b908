package render

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/Sternrassler/issue-board/pkg/issues"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Terminal writes summaries to Out as a bordered table.
type Terminal struct {
	Out io.Writer
}

// Render implements issues.Renderer.
func (t Terminal) Render(_ context.Context, summaries []issues.Summary) error {
	if t.Out == nil {
		return ErrNoTarget
	}
	_, err := fmt.Fprintln(t.Out, TerminalTable(summaries))
	return err
}

// TerminalTable lays summaries out under the issue table columns.
// Links are reduced to their text.
func TerminalTable(summaries []issues.Summary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.Title,
			s.State,
			s.AssigneeLogin(),
			s.MilestoneTitle(),
			s.Updated(),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(issues.Columns...).
		Rows(rows...).
		String()
}
