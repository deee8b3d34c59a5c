package listview

// Column renders one field of T. Key is stable and used for visibility and
// sorting; Title is what a header shows.
type Column[T any] struct {
	Key       string
	Title     string
	Width     int
	Cell      func(T) string
	SortField string
	Hideable  bool
}

func (c Column[T]) Sortable() bool {
	return c.SortField != ""
}

// Visible drops columns hidden by the user. Non-hideable columns always stay.
func Visible[T any](cols []Column[T], hidden map[string]bool) []Column[T] {
	out := make([]Column[T], 0, len(cols))
	for _, c := range cols {
		if c.Hideable && hidden[c.Key] {
			continue
		}
		out = append(out, c)
	}
	return out
}

func Cells[T any](cols []Column[T], row T) []string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		if c.Cell != nil {
			cells[i] = c.Cell(row)
		}
	}
	return cells
}

func Titles[T any](cols []Column[T]) []string {
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title
	}
	return titles
}

// Erase turns a column over a concrete type into one over a wider row type.
// Rows that do not convert render as empty cells.
func Erase[T, R any](cols []Column[T], conv func(R) (T, bool)) []Column[R] {
	out := make([]Column[R], len(cols))
	for i, c := range cols {
		cell := c.Cell
		out[i] = Column[R]{
			Key:       c.Key,
			Title:     c.Title,
			Width:     c.Width,
			SortField: c.SortField,
			Hideable:  c.Hideable,
			Cell: func(r R) string {
				v, ok := conv(r)
				if !ok || cell == nil {
					return ""
				}
				return cell(v)
			},
		}
	}
	return out
}

// Keyed is anything with a stable row key.
type Keyed interface {
	Key() string
}

// ExportRows returns the selected rows in display order, or every row when
// nothing is selected.
func ExportRows[T Keyed](rows []T, selection map[string]bool) []T {
	if len(selection) == 0 {
		return rows
	}
	out := make([]T, 0, len(selection))
	for _, r := range rows {
		if selection[r.Key()] {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return rows
	}
	return out
}

func Keys[T Keyed](rows []T) []string {
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = r.Key()
	}
	return keys
}
