package render

import (
	"bytes"
	"html/template"
	"io"

	"github.com/Sternrassler/issue-board/pkg/issues"
	"github.com/Sternrassler/issue-board/pkg/pagination"
)

var templates = template.Must(template.New("board").Parse(`
{{- define "tbody" -}}
<tbody id="{{.ID}}">
{{- range .Rows}}
<tr{{if .Hidden}} hidden="hidden"{{end}}>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
{{- end -}}

{{- define "page" -}}
<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{- if .Top}}
{{.Pager}}
{{- end}}
<table class="table">
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
{{template "tbody" .Body}}
</table>
{{- if .Bottom}}
{{.Pager}}
{{- end}}
</body>
</html>
{{end -}}
`))

// Board is the issue page: the table with a pager before or after it.
type Board struct {
	Title      string
	Body       *TableBody
	Pagination pagination.Config

	// Href links a page index; nil links every control to "#".
	Href func(page int) string
}

type pageData struct {
	Title   string
	Columns []string
	Body    tbodyData
	Pager   template.HTML
	Top     bool
	Bottom  bool
}

// Paginator pages the current body rows and shows page.
func (b *Board) Paginator(page int) *pagination.Paginator[issues.Row] {
	p := pagination.Paginate(b.rows(), b.Pagination)
	p.Show(page)
	return p
}

// WritePage renders the page with page selected. Rows outside it are hidden.
func (b *Board) WritePage(w io.Writer, page int) error {
	rows := b.rows()
	p := b.Paginator(page)

	data := pageData{
		Title:   b.Title,
		Columns: issues.Columns,
		Body:    tbodyData{ID: TableBodyID, Rows: make([]rowData, len(rows))},
	}
	if b.Body != nil {
		data.Body.ID = b.Body.ID()
	}
	for i, r := range rows {
		data.Body.Rows[i] = rowData{Hidden: !p.IsVisible(i), Cells: r.Cells()}
	}

	if p.DisplayControls() {
		data.Pager = PagerHTML(p.Controls(), b.Href)
		data.Top = p.Placement() == pagination.PositionTop
		data.Bottom = p.Placement() == pagination.PositionBottom
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "page", data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

func (b *Board) rows() []issues.Row {
	if b.Body == nil {
		return nil
	}
	return b.Body.Rows()
}
