package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"site-admin/internal/catalog"
	"site-admin/internal/domain"
)

var addSet []string

var addCmd = &cobra.Command{
	Use:     "create <resource>",
	Aliases: []string{"add", "new"},
	Short:   "Create a record",
	Long: `Create a record of a resource.

Field values are given with --set field=value. Without any --set flag you
are prompted for each field in turn. Lists are comma separated and booleans
take true/false.

Examples:
  siteadmin create posts --set title="Hello" --set slug=hello --set content="First post"
  siteadmin create tags --set name=go --set slug=go
  siteadmin create faqs                                   # prompt for each field`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringArrayVar(&addSet, "set", nil, "Field assignment field=value (repeatable)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	r, err := catalog.Lookup(args[0])
	if err != nil {
		return err
	}

	var values map[string]string
	if len(addSet) == 0 {
		values, err = promptForValues(cmd, r, nil)
	} else {
		values, err = parseAssignments(r.Schema, addSet)
	}
	if err != nil {
		return err
	}

	e, err := a.svc.Create(cmd.Context(), r, values)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			a.failure("%s is not valid:", r.Singular)
			printFieldErrors(a.out, a.styles, r.Schema, verr.Fields)
			return fmt.Errorf("failed to create %s", strings.ToLower(r.Singular))
		}
		a.failure("Failed to create %s: %v", strings.ToLower(r.Singular), err)
		return err
	}

	fmt.Fprintln(a.out)
	a.success("%s \"%s\" created", r.Singular, r.Label(e))
	a.info("  ID: %s", e.Key())
	fmt.Fprintln(a.out)
	return nil
}

// promptForValues asks for each schema field. current holds existing values
// offered as defaults; "-" clears a field that has one.
func promptForValues(cmd *cobra.Command, r *catalog.Resource, current map[string]string) (map[string]string, error) {
	in, out := bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout()
	values := make(map[string]string, len(r.Schema.Fields))

	for _, f := range r.Schema.Fields {
		label := f.Label
		if f.Required {
			label += " *"
		}
		if choices := f.Choices(); len(choices) > 0 {
			label += " (" + strings.Join(choices, "/") + ")"
		} else if f.Hint != "" {
			label += " (" + f.Hint + ")"
		}

		v, err := promptForInput(in, out, label, current[f.Name])
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		if v == "-" {
			v = ""
		}
		values[f.Name] = v
	}
	return values, nil
}
