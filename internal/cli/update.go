package cli

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/spf13/cobra"

	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/service"
)

var updateSet []string

var updateCmd = &cobra.Command{
	Use:     "update <resource> <id>",
	Aliases: []string{"edit"},
	Short:   "Update a record",
	Long: `Update fields of an existing record. Only fields that actually change
are sent. --set field= clears an optional field.

Without --set you are prompted for each field with its current value as the
default; enter - to clear a field.

Examples:
  siteadmin update posts 3f2a9c1e --set published=true
  siteadmin update posts "Hello" --set title="Hello, world" --set tags=go,ux
  siteadmin update team 91bd02aa                          # prompt for each field`,
	Args: cobra.ExactArgs(2),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringArrayVar(&updateSet, "set", nil, "Field assignment field=value (repeatable)")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	r, err := catalog.Lookup(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	e, err := resolveEntity(ctx, a.svc, r, args[1])
	if err != nil {
		return err
	}

	original, err := r.Values(e)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", strings.ToLower(r.Singular), err)
	}

	var values map[string]string
	if len(updateSet) == 0 {
		values, err = promptForValues(cmd, r, original)
		if err != nil {
			return err
		}
	} else {
		changes, err := parseAssignments(r.Schema, updateSet)
		if err != nil {
			return err
		}
		values = maps.Clone(original)
		maps.Copy(values, changes)
	}

	updated, err := a.svc.Update(ctx, r, e.Key(), original, values)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.Is(err, service.ErrNoChanges):
			a.info("No changes to save")
			return nil
		case errors.As(err, &verr):
			a.failure("%s is not valid:", r.Singular)
			printFieldErrors(a.out, a.styles, r.Schema, verr.Fields)
			return fmt.Errorf("failed to update %s", strings.ToLower(r.Singular))
		}
		a.failure("Failed to update %s: %v", strings.ToLower(r.Singular), err)
		return err
	}

	fmt.Fprintln(a.out)
	a.success("%s \"%s\" updated", r.Singular, r.Label(updated))
	fmt.Fprintln(a.out)
	return nil
}
