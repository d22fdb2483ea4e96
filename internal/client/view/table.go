package view

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Row is one table line; Deleted rows are hidden unless the table shows
// soft-deleted records.
type Row struct {
	Cells   []string
	Deleted bool
}

// Table is a sortable, paginated listing.
type Table struct {
	Headers []string
	Rows    []Row
	// SortBy names the header to sort on; empty keeps the input order.
	SortBy          string
	Desc            bool
	Page            int
	PerPage         int
	ShowSoftDeleted bool
}

// compareCells orders numbers numerically and everything else
// case-insensitively.
func compareCells(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return cmp.Compare(fa, fb)
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func (t Table) column() int {
	if t.SortBy == "" {
		return -1
	}
	for i, h := range t.Headers {
		if strings.EqualFold(h, t.SortBy) {
			return i
		}
	}
	return -1
}

func (t Table) filtered() []Row {
	rows := make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if r.Deleted && !t.ShowSoftDeleted {
			continue
		}
		rows = append(rows, r)
	}
	if col := t.column(); col >= 0 {
		slices.SortStableFunc(rows, func(a, b Row) int {
			c := compareCells(cell(a, col), cell(b, col))
			if t.Desc {
				return -c
			}
			return c
		})
	}
	return rows
}

func cell(r Row, i int) string {
	if i < len(r.Cells) {
		return r.Cells[i]
	}
	return ""
}

// Pages is the page count for the visible rows; at least 1.
func (t Table) Pages() int {
	n := len(t.filtered())
	if t.PerPage <= 0 || n == 0 {
		return 1
	}
	return (n + t.PerPage - 1) / t.PerPage
}

// Visible returns the rows of the current page after filtering and sorting.
// Page is 1-based and clamped to the valid range.
func (t Table) Visible() []Row {
	rows := t.filtered()
	if t.PerPage <= 0 {
		return rows
	}
	page := min(max(t.Page, 1), t.Pages())
	start := (page - 1) * t.PerPage
	end := min(start+t.PerPage, len(rows))
	return rows[start:end]
}

func (t Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	rows := t.Visible()
	for _, r := range rows {
		line := strings.Join(r.Cells, "\t")
		if r.Deleted {
			line += "\t(deleted)"
		}
		fmt.Fprintln(tw, line)
	}
	if len(rows) == 0 {
		fmt.Fprintln(tw, "No records")
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if t.PerPage > 0 {
		_, err := fmt.Fprintf(w, "Page %d of %d\n", min(max(t.Page, 1), t.Pages()), t.Pages())
		return err
	}
	return nil
}
