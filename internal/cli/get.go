package cli

import (
	"github.com/spf13/cobra"

	"site-admin/internal/catalog"
)

var getCmd = &cobra.Command{
	Use:     "get <resource> <id>",
	Aliases: []string{"show"},
	Short:   "Show every field of one record",
	Long: `Show one record. The id may be the full id, the short id printed by
'list', or the record's exact title or name.

Examples:
  siteadmin get posts 3f2a9c1e
  siteadmin get categories Design`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	r, err := catalog.Lookup(args[0])
	if err != nil {
		return err
	}

	e, err := resolveEntity(cmd.Context(), a.svc, r, args[1])
	if err != nil {
		return err
	}

	printDetail(a.out, a.styles, r, e)
	return nil
}
