// Package pagination splits an ordered collection of rows into fixed-size pages
// and tracks which page, and which page control, is currently selected.
//
// A Paginator never copies or reorders rows. Showing a page only changes which
// window of the collection is visible; every other row is hidden.
//
// Example usage:
//
//	p := pagination.Paginate(rows, pagination.DefaultConfig())
//	visible := p.Show(1)              // rows[5:10]
//	for _, c := range p.Controls() {  // "1", "2", ... with one active
//		fmt.Println(c.Label, c.Active)
//	}
//
// The paginator:
//   - Computes ceil(len(rows)/Rows) pages, zero when there are no rows
//   - Starts on page 0 with the first control active
//   - Keeps exactly one control active after any Show or Select of a valid page
//   - Returns an empty window for out-of-range pages instead of failing
//   - Decides whether the control group is displayed, and where
//
// A Paginator is not safe for concurrent use.
package pagination
