package pagination

import (
	"errors"
	"reflect"
	"testing"
)

func makeRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func countActive(controls []Control) (int, int) {
	count, page := 0, -1
	for _, c := range controls {
		if c.Active {
			count++
			page = c.Page
		}
	}
	return count, page
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Rows != 5 {
		t.Errorf("Rows = %d, want 5", cfg.Rows)
	}
	if cfg.Position != PositionBottom {
		t.Errorf("Position = %q, want %q", cfg.Position, PositionBottom)
	}
	if !cfg.ShowIfLess {
		t.Error("ShowIfLess should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"valid top", Config{Rows: 10, Position: PositionTop}, nil},
		{"valid bottom", Config{Rows: 1, Position: PositionBottom}, nil},
		{"zero rows", Config{Rows: 0, Position: PositionBottom}, ErrInvalidRows},
		{"negative rows", Config{Rows: -3, Position: PositionTop}, ErrInvalidRows},
		{"unknown position", Config{Rows: 5, Position: "left"}, ErrInvalidPosition},
		{"empty position", Config{Rows: 5}, ErrInvalidPosition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPaginate_NumPages(t *testing.T) {
	for n := 0; n <= 30; n++ {
		for size := 1; size <= 7; size++ {
			p := Paginate(makeRows(n), Config{Rows: size, Position: PositionBottom})
			want := (n + size - 1) / size
			if p.NumPages() != want {
				t.Errorf("n=%d size=%d: NumPages() = %d, want %d", n, size, p.NumPages(), want)
			}
			if len(p.Controls()) != want {
				t.Errorf("n=%d size=%d: len(Controls()) = %d, want %d", n, size, len(p.Controls()), want)
			}
		}
	}
}

func TestPaginate_PagesReconstructRows(t *testing.T) {
	for n := 0; n <= 30; n++ {
		for size := 1; size <= 7; size++ {
			rows := makeRows(n)
			p := Paginate(rows, Config{Rows: size, Position: PositionBottom})

			var union []int
			seen := make(map[int]bool)
			for page := 0; page < p.NumPages(); page++ {
				for _, row := range p.Show(page) {
					if seen[row] {
						t.Fatalf("n=%d size=%d: row %d appears on two pages", n, size, row)
					}
					seen[row] = true
					union = append(union, row)
				}
			}

			if n == 0 {
				if len(union) != 0 {
					t.Errorf("n=0: union = %v, want empty", union)
				}
				continue
			}
			if !reflect.DeepEqual(union, rows) {
				t.Errorf("n=%d size=%d: union = %v, want %v", n, size, union, rows)
			}
		}
	}
}

func TestPaginate_TwelveRowsFivePerPage(t *testing.T) {
	p := Paginate(makeRows(12), DefaultConfig())

	if p.NumPages() != 3 {
		t.Fatalf("NumPages() = %d, want 3", p.NumPages())
	}

	tests := []struct {
		page int
		want []int
	}{
		{0, []int{0, 1, 2, 3, 4}},
		{1, []int{5, 6, 7, 8, 9}},
		{2, []int{10, 11}},
	}

	for _, tt := range tests {
		got := p.Show(tt.page)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Show(%d) = %v, want %v", tt.page, got, tt.want)
		}
		if p.CurrentPage() != tt.page {
			t.Errorf("CurrentPage() = %d, want %d", p.CurrentPage(), tt.page)
		}
		if p.Hidden() != 12-len(tt.want) {
			t.Errorf("Hidden() = %d, want %d", p.Hidden(), 12-len(tt.want))
		}
	}
}

func TestPaginate_InitialState(t *testing.T) {
	p := Paginate(makeRows(7), DefaultConfig())

	if p.CurrentPage() != 0 {
		t.Errorf("CurrentPage() = %d, want 0", p.CurrentPage())
	}
	if got := p.Visible(); !reflect.DeepEqual(got, []int{0, 1, 2, 3, 4}) {
		t.Errorf("Visible() = %v", got)
	}
	if count, page := countActive(p.Controls()); count != 1 || page != 0 {
		t.Errorf("active controls = %d (page %d), want 1 (page 0)", count, page)
	}
}

func TestPaginate_NoRows(t *testing.T) {
	for _, showIfLess := range []bool{true, false} {
		p := Paginate([]string{}, Config{Rows: 5, Position: PositionBottom, ShowIfLess: showIfLess})

		if p.NumPages() != 0 {
			t.Errorf("NumPages() = %d, want 0", p.NumPages())
		}
		if len(p.Controls()) != 0 {
			t.Errorf("Controls() = %v, want none", p.Controls())
		}
		if p.DisplayControls() {
			t.Errorf("DisplayControls() = true with no rows (showIfLess=%v)", showIfLess)
		}
		if p.ActiveControl() != -1 {
			t.Errorf("ActiveControl() = %d, want -1", p.ActiveControl())
		}
		if len(p.Visible()) != 0 {
			t.Errorf("Visible() = %v, want empty", p.Visible())
		}
	}
}

func TestShow_OutOfRange(t *testing.T) {
	p := Paginate(makeRows(12), DefaultConfig())

	for _, page := range []int{3, 10, -1} {
		got := p.Show(page)
		if len(got) != 0 {
			t.Errorf("Show(%d) = %v, want empty", page, got)
		}
		if p.CurrentPage() != page {
			t.Errorf("CurrentPage() = %d, want %d", p.CurrentPage(), page)
		}
		if p.Hidden() != 12 {
			t.Errorf("Hidden() = %d, want 12", p.Hidden())
		}
		if count, _ := countActive(p.Controls()); count != 0 {
			t.Errorf("Show(%d) left %d controls active, want 0", page, count)
		}
	}
}

func TestShow_Idempotent(t *testing.T) {
	p := Paginate(makeRows(12), DefaultConfig())

	first := p.Show(1)
	firstControls := p.Controls()
	second := p.Show(1)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Show(1) twice: %v then %v", first, second)
	}
	if !reflect.DeepEqual(firstControls, p.Controls()) {
		t.Error("controls differ after repeated Show(1)")
	}
}

func TestShow_ExactlyOneActive(t *testing.T) {
	p := Paginate(makeRows(23), Config{Rows: 4, Position: PositionTop})

	for page := 0; page < p.NumPages(); page++ {
		p.Show(page)
		count, active := countActive(p.Controls())
		if count != 1 {
			t.Errorf("after Show(%d): %d active controls, want 1", page, count)
		}
		if active != page {
			t.Errorf("after Show(%d): control %d active", page, active)
		}
	}
}

func TestSelect_MutualExclusion(t *testing.T) {
	p := Paginate(makeRows(20), DefaultConfig())

	if !p.Select(2) {
		t.Fatal("Select(2) = false, want true")
	}
	if !p.Select(1) {
		t.Fatal("Select(1) = false, want true")
	}

	count, active := countActive(p.Controls())
	if count != 1 || active != 1 {
		t.Errorf("active controls = %d (page %d), want only page 1", count, active)
	}
	if got := p.Visible(); !reflect.DeepEqual(got, []int{5, 6, 7, 8, 9}) {
		t.Errorf("Visible() = %v", got)
	}

	if p.Select(9) {
		t.Error("Select(9) = true for a missing control")
	}
}

func TestNextPrev(t *testing.T) {
	p := Paginate(makeRows(12), DefaultConfig())

	p.Next()
	p.Next()
	p.Next()
	if p.CurrentPage() != 2 {
		t.Errorf("after three Next(): CurrentPage() = %d, want 2", p.CurrentPage())
	}

	p.Prev()
	p.Prev()
	p.Prev()
	if p.CurrentPage() != 0 {
		t.Errorf("after three Prev(): CurrentPage() = %d, want 0", p.CurrentPage())
	}
}

func TestPrev_PastEnd(t *testing.T) {
	p := Paginate(makeRows(12), DefaultConfig())

	p.Show(10)
	if len(p.Visible()) != 0 {
		t.Fatalf("Show(10) visible = %v, want none", p.Visible())
	}

	p.Prev()
	if p.CurrentPage() != 2 {
		t.Errorf("Prev() from page 10: CurrentPage() = %d, want 2", p.CurrentPage())
	}
	if !reflect.DeepEqual(p.Visible(), []int{10, 11}) {
		t.Errorf("Visible() = %v, want [10 11]", p.Visible())
	}
	if n, page := countActive(p.Controls()); n != 1 || page != 2 {
		t.Errorf("active controls = %d on page %d, want 1 on page 2", n, page)
	}

	empty := Paginate(makeRows(0), DefaultConfig())
	empty.Show(3)
	empty.Prev()
	if empty.CurrentPage() != 2 {
		t.Errorf("Prev() without pages: CurrentPage() = %d, want 2", empty.CurrentPage())
	}
}

func TestControls_Labels(t *testing.T) {
	p := Paginate(makeRows(11), DefaultConfig())

	want := []string{"1", "2", "3"}
	for i, c := range p.Controls() {
		if c.Label != want[i] {
			t.Errorf("control %d label = %q, want %q", i, c.Label, want[i])
		}
		if c.Page != i {
			t.Errorf("control %d page = %d", i, c.Page)
		}
	}
}

func TestIsVisible(t *testing.T) {
	p := Paginate(makeRows(12), DefaultConfig())
	p.Show(1)

	for i := 0; i < 12; i++ {
		want := i >= 5 && i < 10
		if p.IsVisible(i) != want {
			t.Errorf("IsVisible(%d) = %v, want %v", i, p.IsVisible(i), want)
		}
	}
}

func TestDisplayControls(t *testing.T) {
	tests := []struct {
		name   string
		rows   int
		config Config
		want   bool
	}{
		{"fits, show if less", 3, Config{Rows: 5, Position: PositionBottom, ShowIfLess: true}, true},
		{"fits, hide if less", 3, Config{Rows: 5, Position: PositionBottom, ShowIfLess: false}, false},
		{"exactly one page, hide if less", 5, Config{Rows: 5, Position: PositionTop, ShowIfLess: false}, false},
		{"overflows, hide if less", 6, Config{Rows: 5, Position: PositionTop, ShowIfLess: false}, true},
		{"unknown position", 12, Config{Rows: 5, Position: "middle", ShowIfLess: true}, false},
		{"no rows", 0, Config{Rows: 5, Position: PositionBottom, ShowIfLess: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(makeRows(tt.rows), tt.config)
			if got := p.DisplayControls(); got != tt.want {
				t.Errorf("DisplayControls() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaginate_DegeneratePageSize(t *testing.T) {
	for _, size := range []int{0, -2} {
		p := Paginate(makeRows(8), Config{Rows: size, Position: PositionBottom, ShowIfLess: true})

		if p.NumPages() != 0 {
			t.Errorf("size=%d: NumPages() = %d, want 0", size, p.NumPages())
		}
		if len(p.Visible()) != 0 {
			t.Errorf("size=%d: Visible() = %v, want empty", size, p.Visible())
		}
		if p.DisplayControls() {
			t.Errorf("size=%d: DisplayControls() = true", size)
		}
	}
}

func TestPage_DoesNotChangeCurrent(t *testing.T) {
	p := Paginate(makeRows(12), DefaultConfig())

	if got := p.Page(2); !reflect.DeepEqual(got, []int{10, 11}) {
		t.Errorf("Page(2) = %v", got)
	}
	if p.CurrentPage() != 0 {
		t.Errorf("CurrentPage() = %d after Page(2), want 0", p.CurrentPage())
	}
}
