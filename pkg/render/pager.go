package render

import (
	"html/template"
	"strings"

	"github.com/Sternrassler/issue-board/pkg/pagination"
	"github.com/charmbracelet/lipgloss"
)

const (
	pagerCap   = `<a href="#" class="btn btn-primary">&nbsp;</a>`
	activeMark = "active"
)

// PagerHTML renders controls as a button group framed by two blank buttons.
// href maps a page index to its link; nil links every control to "#".
func PagerHTML(controls []pagination.Control, href func(page int) string) template.HTML {
	var b strings.Builder
	b.WriteString(`<div class="btn-group">`)
	b.WriteString(pagerCap)
	for _, c := range controls {
		link := "#"
		if href != nil {
			link = href(c.Page)
		}
		class := "btn btn-primary clickable"
		if c.Active {
			class += " " + activeMark
		}
		b.WriteString(`<a href="` + template.HTMLEscapeString(link) + `" class="` + class + `">`)
		b.WriteString(template.HTMLEscapeString(c.Label))
		b.WriteString(`</a>`)
	}
	b.WriteString(pagerCap)
	b.WriteString(`</div>`)
	return template.HTML(b.String())
}

var (
	pagerActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	pagerInactiveStyle = lipgloss.NewStyle().Faint(true)
)

// PagerLine renders controls for a terminal, e.g. " 1 [2] 3 ".
func PagerLine(controls []pagination.Control) string {
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		if c.Active {
			parts = append(parts, pagerActiveStyle.Render("["+c.Label+"]"))
			continue
		}
		parts = append(parts, pagerInactiveStyle.Render(" "+c.Label+" "))
	}
	return strings.Join(parts, " ")
}
