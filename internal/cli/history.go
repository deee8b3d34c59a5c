package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"site-admin/internal/catalog"
	"site-admin/internal/repository/sqlite"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear search history",
	Long: `Committed searches are remembered per resource, with how often they
were used and how many results they had the last time.

Examples:
  siteadmin history list
  siteadmin history list posts --limit 5
  siteadmin history clear posts
  siteadmin history clear`,
}

var historyListCmd = &cobra.Command{
	Use:   "list [resource]",
	Short: "List recent searches",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear [resource]",
	Short: "Forget recent searches",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximum number of entries")
}

// resourceArg resolves an optional resource argument to its name, "" for all.
func resourceArg(args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	r, err := catalog.Lookup(args[0])
	if err != nil {
		return "", err
	}
	return r.Name, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	resource, err := resourceArg(args)
	if err != nil {
		return err
	}

	db, err := a.openState()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := sqlite.NewSearchHistoryRepository(db).List(cmd.Context(), resource, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load search history: %w", err)
	}

	fmt.Fprintln(a.out)
	if len(entries) == 0 {
		a.info("No searches yet.")
		fmt.Fprintln(a.out)
		return nil
	}

	fmt.Fprintln(a.out, a.styles.Header.Render(" Recent Searches "))
	fmt.Fprintln(a.out)
	for _, e := range entries {
		fmt.Fprintf(a.out, "  %-12s %s %s\n", e.Resource, e.GetDisplayText(),
			a.styles.Subtitle.Render(fmt.Sprintf("· %d results", e.ResultCount)))
	}
	fmt.Fprintln(a.out)
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	resource, err := resourceArg(args)
	if err != nil {
		return err
	}

	db, err := a.openState()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := sqlite.NewSearchHistoryRepository(db).Clear(cmd.Context(), resource)
	if err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}

	a.success("Removed %d search(es)", n)
	return nil
}
