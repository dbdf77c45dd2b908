package pagination

import "strconv"

// noControl marks that no page control is active.
const noControl = -1

// Control is a page selector. Labels are 1-based, Page is 0-based.
type Control struct {
	Page   int
	Label  string
	Active bool
}

// Paginator partitions rows into pages of Config.Rows items.
type Paginator[T any] struct {
	rows     []T
	config   Config
	numPages int
	current  int
	active   int
}

// Paginate creates a paginator over rows showing page 0.
// A non-positive Rows value yields zero pages.
func Paginate[T any](rows []T, cfg Config) *Paginator[T] {
	p := &Paginator[T]{
		rows:   rows,
		config: cfg,
		active: noControl,
	}
	if cfg.Rows > 0 {
		p.numPages = (len(rows) + cfg.Rows - 1) / cfg.Rows
	}
	p.Show(0)
	return p
}

// Len returns the total number of rows.
func (p *Paginator[T]) Len() int {
	return len(p.rows)
}

// NumPages returns ceil(Len()/Rows).
func (p *Paginator[T]) NumPages() int {
	return p.numPages
}

// CurrentPage returns the 0-based index of the page last shown.
// It may lie outside [0, NumPages()-1] if an out-of-range page was shown.
func (p *Paginator[T]) CurrentPage() int {
	return p.current
}

// Config returns the configuration the paginator was built with.
func (p *Paginator[T]) Config() Config {
	return p.config
}

// Show makes page the current page and returns its rows.
// Out-of-range pages leave every row hidden and no control active.
func (p *Paginator[T]) Show(page int) []T {
	p.current = page
	if p.validPage(page) {
		p.active = page
	} else {
		p.active = noControl
	}
	return p.Visible()
}

// Select activates control k and shows its page.
// It reports whether k named an existing control.
func (p *Paginator[T]) Select(k int) bool {
	p.Show(k)
	return p.validPage(k)
}

// Next shows the following page, staying on the last one.
func (p *Paginator[T]) Next() []T {
	if p.current+1 < p.numPages {
		return p.Show(p.current + 1)
	}
	return p.Visible()
}

// Prev shows the preceding page, staying on the first one.
// From past the end it goes to the last page.
func (p *Paginator[T]) Prev() []T {
	switch {
	case p.numPages > 0 && p.current >= p.numPages:
		return p.Show(p.numPages - 1)
	case p.current > 0:
		return p.Show(p.current - 1)
	}
	return p.Visible()
}

// Visible returns the rows of the current page.
func (p *Paginator[T]) Visible() []T {
	return p.Page(p.current)
}

// Page returns rows[page*Rows : (page+1)*Rows], clipped to the collection.
// It does not change the current page.
func (p *Paginator[T]) Page(page int) []T {
	start, end, ok := p.bounds(page)
	if !ok {
		return nil
	}
	return p.rows[start:end:end]
}

// IsVisible reports whether row i belongs to the current page.
func (p *Paginator[T]) IsVisible(i int) bool {
	start, end, ok := p.bounds(p.current)
	return ok && i >= start && i < end
}

// Hidden returns the number of rows outside the current page.
func (p *Paginator[T]) Hidden() int {
	return len(p.rows) - len(p.Visible())
}

// Controls returns one control per page, labelled 1..NumPages().
func (p *Paginator[T]) Controls() []Control {
	controls := make([]Control, p.numPages)
	for page := range controls {
		controls[page] = Control{
			Page:   page,
			Label:  strconv.Itoa(page + 1),
			Active: page == p.active,
		}
	}
	return controls
}

// ActiveControl returns the page of the active control, or -1 when none is.
func (p *Paginator[T]) ActiveControl() int {
	return p.active
}

// DisplayControls reports whether the control group should be shown.
// With no pages, or an unknown placement, nothing is shown.
func (p *Paginator[T]) DisplayControls() bool {
	if p.numPages == 0 || !p.config.Position.Valid() {
		return false
	}
	return p.config.ShowIfLess || p.config.Rows < len(p.rows)
}

// Placement returns where the control group goes relative to the rows.
func (p *Paginator[T]) Placement() Position {
	return p.config.Position
}

func (p *Paginator[T]) validPage(page int) bool {
	return page >= 0 && page < p.numPages
}

func (p *Paginator[T]) bounds(page int) (start, end int, ok bool) {
	if !p.validPage(page) {
		return 0, 0, false
	}
	start = page * p.config.Rows
	end = start + p.config.Rows
	if end > len(p.rows) {
		end = len(p.rows)
	}
	return start, end, true
}
