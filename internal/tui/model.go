// Package tui implements the interactive issue browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sternrassler/issue-board/pkg/issues"
	"github.com/Sternrassler/issue-board/pkg/pagination"
	"github.com/Sternrassler/issue-board/pkg/render"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Lister loads the issues to browse. *issues.Lister satisfies it.
type Lister interface {
	List(ctx context.Context, r issues.Renderer) issues.Result
}

// MsgIssuesLoaded carries a completed load.
type MsgIssuesLoaded struct {
	Result    issues.Result
	Summaries []issues.Summary
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	footerKey   = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().MarginTop(1)
)

// Model pages through the loaded issues.
type Model struct {
	ctx    context.Context
	lister Lister
	title  string
	config pagination.Config

	paginator *pagination.Paginator[issues.Summary]
	result    issues.Result
	loading   bool
	width     int
}

// New creates a browser that loads through l and pages with cfg.
func New(ctx context.Context, l Lister, title string, cfg pagination.Config) *Model {
	return &Model{
		ctx:       ctx,
		lister:    l,
		title:     title,
		config:    cfg,
		paginator: pagination.Paginate[issues.Summary](nil, cfg),
		loading:   true,
	}
}

// Init starts the first load.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		var loaded []issues.Summary
		res := m.lister.List(m.ctx, issues.RendererFunc(func(_ context.Context, s []issues.Summary) error {
			loaded = append(loaded, s...)
			return nil
		}))
		return MsgIssuesLoaded{Result: res, Summaries: loaded}
	}
}

// Paginator returns the paginator over the loaded issues.
func (m *Model) Paginator() *pagination.Paginator[issues.Summary] {
	return m.paginator
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case MsgIssuesLoaded:
		m.loading = false
		m.result = msg.Result
		m.paginator = pagination.Paginate(msg.Summaries, m.config)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "right", "l", "n":
		m.paginator.Next()

	case "left", "h", "p":
		m.paginator.Prev()

	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.load()

	default:
		// Digits select the control with that label.
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if k := int(key[0] - '1'); k < m.paginator.NumPages() {
				m.paginator.Select(k)
			}
		}
	}
	return m, nil
}

// View renders the current page with its controls.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(mutedStyle.Render("Loading issues..."))
	case !m.result.Succeeded():
		b.WriteString(mutedStyle.Render("No issues available."))
	case m.paginator.Len() == 0:
		b.WriteString(mutedStyle.Render("No issues found."))
	default:
		b.WriteString(m.viewPage())
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m *Model) viewPage() string {
	p := m.paginator
	table := render.TerminalTable(p.Visible())
	if !p.DisplayControls() {
		return table
	}

	pager := render.PagerLine(p.Controls())
	if p.Placement() == pagination.PositionTop {
		return pager + "\n" + table
	}
	return table + "\n" + pager
}

func (m *Model) viewFooter() string {
	content := footerKey.Render("←/→") + " page  " +
		footerKey.Render("1-9") + " jump  " +
		footerKey.Render("r") + " reload  " +
		footerKey.Render("q") + " quit"
	if m.result.Succeeded() && m.paginator.Len() > 0 {
		content = fmt.Sprintf("%d of %d issues  ", m.paginator.Len(), m.result.TotalCount) + content
	}
	return footerStyle.Render(content)
}

// Run opens the browser and blocks until it quits or ctx is done.
func Run(ctx context.Context, l Lister, title string, cfg pagination.Config) error {
	p := tea.NewProgram(New(ctx, l, title, cfg), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
