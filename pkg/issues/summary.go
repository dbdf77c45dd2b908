// Package issues fetches the open issues of an account from the search API
// and projects each result into a Summary for display.
package issues

import (
	"html/template"
	"strconv"
	"strings"
	"time"
)

// Assignee is the user an issue is assigned to.
type Assignee struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

// Milestone is the milestone an issue belongs to.
type Milestone struct {
	Title string `json:"title"`
}

// Summary is the display projection of one issue.
// Assignee and Milestone are nil when the issue has none.
type Summary struct {
	ID        int64
	Title     string
	State     string
	Assignee  *Assignee
	Milestone *Milestone
	UpdatedAt time.Time
	URL       string
}

// Row holds the six table cells of a Summary as safe HTML.
type Row struct {
	ID        template.HTML
	Title     template.HTML
	State     template.HTML
	Assignee  template.HTML
	Milestone template.HTML
	Updated   template.HTML
}

// Cells returns the cells in column order.
func (r Row) Cells() []template.HTML {
	return []template.HTML{r.ID, r.Title, r.State, r.Assignee, r.Milestone, r.Updated}
}

// Columns are the table headings matching Row.Cells.
var Columns = []string{"ID", "Title", "State", "Assignee", "Milestone", "Updated"}

// Row derives the escaped cell markup of s.
func (s Summary) Row() Row {
	return Row{
		ID:        anchor(s.URL, strconv.FormatInt(s.ID, 10), true),
		Title:     text(s.Title),
		State:     text(s.State),
		Assignee:  s.assigneeCell(),
		Milestone: text(s.MilestoneTitle()),
		Updated:   text(s.Updated()),
	}
}

// AssigneeLogin returns the assignee login or "".
func (s Summary) AssigneeLogin() string {
	if s.Assignee == nil {
		return ""
	}
	return s.Assignee.Login
}

// MilestoneTitle returns the milestone title or "".
func (s Summary) MilestoneTitle() string {
	if s.Milestone == nil {
		return ""
	}
	return s.Milestone.Title
}

// Updated formats UpdatedAt the way the API reports it.
func (s Summary) Updated() string {
	if s.UpdatedAt.IsZero() {
		return ""
	}
	return s.UpdatedAt.UTC().Format(time.RFC3339)
}

func (s Summary) assigneeCell() template.HTML {
	if s.Assignee == nil {
		return ""
	}
	return anchor(s.Assignee.HTMLURL, s.Assignee.Login, false)
}

// Unsafe href schemes are replaced with #ZgotmplZ.
var anchorTmpl = template.Must(template.New("anchor").Parse(
	`<a href="{{.Href}}"{{if .NewTab}} target="_blank"{{end}}>{{.Label}}</a>`))

func anchor(href, label string, newTab bool) template.HTML {
	var b strings.Builder
	err := anchorTmpl.Execute(&b, struct {
		Href, Label string
		NewTab      bool
	}{href, label, newTab})
	if err != nil {
		return text(label)
	}
	return template.HTML(b.String())
}

func text(s string) template.HTML {
	return template.HTML(template.HTMLEscapeString(s))
}
