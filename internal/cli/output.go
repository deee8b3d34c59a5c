package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"site-admin/internal/catalog"
	"site-admin/internal/display"
	"site-admin/internal/domain"
	"site-admin/internal/listview"
	"site-admin/internal/theme"
)

// renderRows draws rows as a bordered table using the resource's columns.
func renderRows(styles *theme.Styles, r *catalog.Resource, rows []domain.Entity) string {
	cols := listview.Visible(r.Columns, nil)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Separator).
		Headers(append([]string{"ID"}, listview.Titles(cols)...)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			return styles.Cell
		})

	for _, e := range rows {
		cells := listview.Cells(cols, e)
		for i, c := range cols {
			if c.Width > 0 {
				cells[i] = display.Truncate(cells[i], c.Width)
			}
		}
		t.Row(append([]string{shortID(e.Key())}, cells...)...)
	}
	return t.Render()
}

// shortID keeps uuids readable in a table. Commands accept the full id or a
// prefix shown here.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printDetail(w io.Writer, styles *theme.Styles, r *catalog.Resource, e domain.Entity) {
	rows := r.Detail(e)

	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(row.Label))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Header.Render(fmt.Sprintf(" %s: %s ", r.Singular, r.Label(e))))
	fmt.Fprintln(w)
	for _, row := range rows {
		label := styles.Subtitle.Render(row.Label + ":" + strings.Repeat(" ", width-lipgloss.Width(row.Label)))
		fmt.Fprintf(w, "  %s %s\n", label, row.Value)
	}
	fmt.Fprintln(w)
}

func printFieldErrors(w io.Writer, styles *theme.Styles, schema domain.Schema, errs domain.FieldErrors) {
	for _, f := range schema.Fields {
		if msg, ok := errs[f.Name]; ok {
			fmt.Fprintln(w, styles.Error.Render(fmt.Sprintf("  %s: %s", f.Label, msg)))
		}
	}
}
