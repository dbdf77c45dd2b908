// Package render displays issue summaries: as rows of the HTML issue table,
// as a terminal table, and as a full paged board page.
package render

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"io"
	"sync"

	"github.com/Sternrassler/issue-board/pkg/issues"
)

// TableBodyID is the element id rows are appended to.
const TableBodyID = "issue-table-body"

// ErrNoTarget is returned when a renderer has nowhere to put rows.
var ErrNoTarget = errors.New("render target missing")

// TableBody is the body of the issue table. Rows keep their append order.
// It is safe for concurrent use.
type TableBody struct {
	mu   sync.RWMutex
	id   string
	rows []issues.Row
}

// NewTableBody returns an empty body with id TableBodyID.
func NewTableBody() *TableBody {
	return &TableBody{id: TableBodyID}
}

// ID returns the element id.
func (b *TableBody) ID() string {
	return b.id
}

// Append adds rows at the end.
func (b *TableBody) Append(rows ...issues.Row) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rows = append(b.rows, rows...)
}

// Rows returns a copy of the rows.
func (b *TableBody) Rows() []issues.Row {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]issues.Row, len(b.rows))
	copy(out, b.rows)
	return out
}

// Len returns the number of rows.
func (b *TableBody) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.rows)
}

// WriteTo writes the <tbody> element with every row visible.
func (b *TableBody) WriteTo(w io.Writer) (int64, error) {
	rows := b.Rows()
	data := tbodyData{ID: b.id, Rows: make([]rowData, len(rows))}
	for i, r := range rows {
		data.Rows[i] = rowData{Cells: r.Cells()}
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "tbody", data); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// HTMLTable appends one row per summary to Body.
type HTMLTable struct {
	Body *TableBody
}

// Render implements issues.Renderer.
func (t HTMLTable) Render(_ context.Context, summaries []issues.Summary) error {
	if t.Body == nil {
		return ErrNoTarget
	}
	rows := make([]issues.Row, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, s.Row())
	}
	t.Body.Append(rows...)
	return nil
}

type rowData struct {
	Hidden bool
	Cells  []template.HTML
}

type tbodyData struct {
	ID   string
	Rows []rowData
}
