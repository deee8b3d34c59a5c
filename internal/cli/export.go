package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/export"
	"site-admin/internal/listview"
)

var (
	exportOutput     string
	exportFormat     string
	exportFormFields bool
	exportFilters    listRequest
)

var exportCmd = &cobra.Command{
	Use:   "export <resource>",
	Short: "Export every matching record of a resource",
	Long: `Export all records matching the given filters, across every page.

Supported formats:
  - csv: the list's columns, for spreadsheets (default)
  - json: full records in an export document
  - markdown: the list's columns as a table

With --form-fields, CSV and markdown carry one column per form field named
after the field, which 'siteadmin import' reads back.

Examples:
  siteadmin export posts
  siteadmin export posts --published false --format markdown --output drafts.md
  siteadmin export faqs --format json --output -
  siteadmin export tags --form-fields --output tags.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file, - for stdout (default <resource>-<date>.<ext>)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "F", "csv", "Export format (csv, json, markdown)")
	exportCmd.Flags().BoolVar(&exportFormFields, "form-fields", false, "Write form fields instead of list columns")
	exportCmd.Flags().StringVar(&exportFilters.sort, "sort", "", "Sort field, prefix with - for descending")
	exportCmd.Flags().StringVarP(&exportFilters.search, "search", "s", "", "Search text")
	exportCmd.Flags().StringVar(&exportFilters.category, "category", "", "Filter by category")
	exportCmd.Flags().StringVar(&exportFilters.tag, "tag", "", "Filter by tag")
	exportCmd.Flags().StringVar(&exportFilters.published, "published", "", "Filter by published state (true/false)")
	exportCmd.Flags().StringVar(&exportFilters.featured, "featured", "", "Filter by featured flag (true/false)")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	r, err := catalog.Lookup(args[0])
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	req := exportFilters
	req.limit = a.cfg.MaxPageSize
	req, err = resolveRequest(cmd.Context(), a.svc, r, req)
	if err != nil {
		return err
	}
	s, err := buildListState(r, req)
	if err != nil {
		return err
	}

	rows, err := a.svc.Collect(cmd.Context(), r, s.Query())
	if err != nil {
		a.failure("Failed to load %s: %v", r.Name, err)
		return err
	}

	now := time.Now()
	path := exportOutput
	if path == "" {
		path = export.Filename(r.Name, format, now)
	}

	var w io.Writer = a.out
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := writeExport(w, r, format, rows, exportFormFields, now); err != nil {
		return fmt.Errorf("failed to export %s: %w", r.Name, err)
	}

	if path != "-" {
		a.success("Exported %d %s to %s", len(rows), r.Name, path)
	}
	return nil
}

func writeExport(w io.Writer, r *catalog.Resource, format export.Format, rows []domain.Entity, formFields bool, now time.Time) error {
	if format == export.FormatJSON {
		return export.WriteJSON(w, r.Name, rows, now)
	}

	var t export.Table
	if formFields {
		var err error
		if t, err = formTable(r, rows); err != nil {
			return err
		}
	} else {
		t = export.FromColumns(r.Name, listview.Visible(r.Columns, nil), rows)
	}

	if format == export.FormatMarkdown {
		return export.WriteMarkdown(w, t)
	}
	return export.WriteCSV(w, t)
}

// formTable holds the form values of rows, one column per schema field.
func formTable(r *catalog.Resource, rows []domain.Entity) (export.Table, error) {
	t := export.Table{
		Resource: r.Name,
		Headers:  fieldNames(r.Schema),
		Rows:     make([][]string, 0, len(rows)),
	}
	for _, e := range rows {
		values, err := r.Values(e)
		if err != nil {
			return t, err
		}
		row := make([]string, len(t.Headers))
		for i, name := range t.Headers {
			row[i] = values[name]
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
