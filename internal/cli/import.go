package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/export"
	"site-admin/internal/service"
)

var (
	importFormat  string
	importOnError string
	importDryRun  bool
)

var importCmd = &cobra.Command{
	Use:   "import <resource> <file>",
	Short: "Create records from a CSV or JSON file",
	Long: `Create one record per row of a CSV file or per record of a JSON export.

CSV headers are matched to form fields by name or label; other columns are
ignored. JSON accepts an export document or a bare array of records.

Error strategies:
  - stop: stop at the first row that fails (default)
  - skip: report failing rows and continue

Examples:
  siteadmin import tags tags.csv
  siteadmin import posts posts.json --on-error skip
  siteadmin import faqs faqs.csv --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importFormat, "format", "F", "", "Input format (csv, json); guessed from the extension when empty")
	importCmd.Flags().StringVar(&importOnError, "on-error", "stop", "Error strategy (stop, skip)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate rows without creating anything")
}

// serviceCreator creates import rows through the service, so every row is
// validated before it reaches the API.
type serviceCreator struct {
	svc *service.Service
}

func (c serviceCreator) Create(ctx context.Context, resource string, values map[string]string) (domain.Entity, error) {
	r, err := catalog.Lookup(resource)
	if err != nil {
		return nil, err
	}
	return c.svc.Create(ctx, r, values)
}

// validatingCreator checks rows against the schema and creates nothing.
type validatingCreator struct{}

func (validatingCreator) Create(_ context.Context, resource string, values map[string]string) (domain.Entity, error) {
	r, err := catalog.Lookup(resource)
	if err != nil {
		return nil, err
	}
	if errs := r.Schema.Validate(values); errs != nil {
		return nil, &domain.ValidationError{Fields: errs}
	}
	return dryRunEntity(values[r.Schema.Fields[0].Name]), nil
}

type dryRunEntity string

func (d dryRunEntity) Key() string { return string(d) }

func runImport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	r, err := catalog.Lookup(args[0])
	if err != nil {
		return err
	}

	path := args[1]
	formatName := importFormat
	if formatName == "" {
		formatName = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	strategy := export.ErrorStrategy(importOnError)
	if strategy != export.ErrorStrategyStop && strategy != export.ErrorStrategySkip {
		return fmt.Errorf("invalid --on-error '%s' (use stop or skip)", importOnError)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	var creator export.Creator = serviceCreator{svc: a.svc}
	if importDryRun {
		creator = validatingCreator{}
	}

	result, err := export.NewImporter(creator, strategy).Import(cmd.Context(), f, format, r.Name, r.Schema)

	fmt.Fprintln(a.out)
	if result != nil && len(result.Created) > 0 {
		verb := "Imported"
		if importDryRun {
			verb = "Validated"
		}
		a.success("%s %d %s", verb, len(result.Created), strings.ToLower(r.Plural))
	}

	if err != nil {
		var rowErr export.RowError
		if errors.As(err, &rowErr) {
			printRowError(a, r, rowErr)
			fmt.Fprintln(a.out)
			return fmt.Errorf("import stopped at row %d", rowErr.Row)
		}
		return fmt.Errorf("failed to import %s: %w", r.Name, err)
	}

	if len(result.Failed) > 0 {
		a.failure("%d row(s) failed:", len(result.Failed))
		for _, rowErr := range result.Failed {
			printRowError(a, r, rowErr)
		}
		fmt.Fprintln(a.out)
		return fmt.Errorf("%d of %d rows failed", len(result.Failed), len(result.Failed)+len(result.Created))
	}

	fmt.Fprintln(a.out)
	return nil
}

func printRowError(a *app, r *catalog.Resource, rowErr export.RowError) {
	var verr *domain.ValidationError
	if errors.As(rowErr.Err, &verr) {
		a.failure("Row %d is not valid:", rowErr.Row)
		printFieldErrors(a.out, a.styles, r.Schema, verr.Fields)
		return
	}
	a.failure("%v", rowErr)
}
