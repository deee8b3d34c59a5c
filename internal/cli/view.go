package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"site-admin/internal/catalog"
	"site-admin/internal/display"
	"site-admin/internal/domain"
	"site-admin/internal/repository"
	"site-admin/internal/repository/sqlite"
)

var viewCmd = &cobra.Command{
	Use:     "view",
	Aliases: []string{"views"},
	Short:   "Manage saved views",
	Long: `Manage saved views for quick access to frequently used filters.

A view stores the search text, facets and sort of one resource under a
name. Views can be bound to hot keys 1-9, which apply them in the TUI.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.AddCommand(viewSaveCmd)
	viewCmd.AddCommand(viewListCmd)
	viewCmd.AddCommand(viewShowCmd)
	viewCmd.AddCommand(viewApplyCmd)
	viewCmd.AddCommand(viewDeleteCmd)
	viewCmd.AddCommand(viewHotkeyCmd)
}

var (
	saveViewHotKey  int
	saveViewFilters listRequest
)

var viewSaveCmd = &cobra.Command{
	Use:   "save <resource> [name]",
	Short: "Save a filter configuration as a view",
	Long: `Save a filter configuration as a named view. Saving under an existing
name replaces its filters.

Examples:
  siteadmin view save posts "Drafts" --published false --hotkey 1
  siteadmin view save posts "Featured design" --category design --featured true --sort -updatedAt
  siteadmin view save faqs "Billing" --search billing`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runViewSave,
}

func init() {
	viewSaveCmd.Flags().IntVarP(&saveViewHotKey, "hotkey", "k", 0, "Hot key (1-9)")
	viewSaveCmd.Flags().StringVar(&saveViewFilters.sort, "sort", "", "Sort field, prefix with - for descending")
	viewSaveCmd.Flags().StringVarP(&saveViewFilters.search, "search", "s", "", "Search text")
	viewSaveCmd.Flags().StringVar(&saveViewFilters.category, "category", "", "Filter by category")
	viewSaveCmd.Flags().StringVar(&saveViewFilters.tag, "tag", "", "Filter by tag")
	viewSaveCmd.Flags().StringVar(&saveViewFilters.published, "published", "", "Filter by published state (true/false)")
	viewSaveCmd.Flags().StringVar(&saveViewFilters.featured, "featured", "", "Filter by featured flag (true/false)")
}

// withViews opens the state database for the duration of fn.
func withViews(cmd *cobra.Command, fn func(a *app, repo *sqlite.ViewRepository) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	db, err := a.openState()
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(a, sqlite.NewViewRepository(db))
}

func runViewSave(cmd *cobra.Command, args []string) error {
	r, err := catalog.Lookup(args[0])
	if err != nil {
		return err
	}

	return withViews(cmd, func(a *app, repo *sqlite.ViewRepository) error {
		var name string
		if len(args) > 1 {
			name = args[1]
		} else {
			name, err = promptForInput(bufio.NewReader(cmd.InOrStdin()), a.out, "View name", "")
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
		}

		req, err := resolveRequest(cmd.Context(), a.svc, r, saveViewFilters)
		if err != nil {
			return err
		}
		s, err := buildListState(r, req)
		if err != nil {
			return err
		}

		view := domain.NewSavedView(r.Name, strings.TrimSpace(name))
		view.Filter = s.Saved()
		if saveViewHotKey != 0 {
			hk := saveViewHotKey
			view.HotKey = &hk
		}

		if err := repo.Save(cmd.Context(), view); err != nil {
			a.failure("Failed to save view: %v", err)
			return err
		}

		fmt.Fprintln(a.out)
		a.success("View '%s' saved for %s", view.Name, r.Name)
		a.info("  Filters: %s", view.Summary())
		if view.HotKey != nil {
			a.info("  Hot key: %d", *view.HotKey)
		}
		fmt.Fprintln(a.out)
		return nil
	})
}

var viewListCmd = &cobra.Command{
	Use:   "list [resource]",
	Short: "List saved views",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runViewList,
}

func runViewList(cmd *cobra.Command, args []string) error {
	resource, err := resourceArg(args)
	if err != nil {
		return err
	}

	return withViews(cmd, func(a *app, repo *sqlite.ViewRepository) error {
		views, err := repo.List(cmd.Context(), resource)
		if err != nil {
			return err
		}

		fmt.Fprintln(a.out)
		if len(views) == 0 {
			a.info("No saved views. Create one with 'siteadmin view save <resource> <name>'.")
			fmt.Fprintln(a.out)
			return nil
		}

		fmt.Fprintln(a.out, a.styles.Header.Render(" Saved Views "))
		fmt.Fprintln(a.out)
		for _, v := range views {
			key := " "
			if v.HotKey != nil {
				key = strconv.Itoa(*v.HotKey)
			}
			fmt.Fprintf(a.out, "  [%s] %-12s %-24s %s\n", key, v.Resource, display.Truncate(v.Name, 24),
				a.styles.Subtitle.Render(v.Summary()))
		}
		fmt.Fprintln(a.out)
		return nil
	})
}

var viewShowCmd = &cobra.Command{
	Use:   "show <resource> <name>",
	Short: "Show a saved view",
	Args:  cobra.ExactArgs(2),
	RunE:  runViewShow,
}

func runViewShow(cmd *cobra.Command, args []string) error {
	r, err := catalog.Lookup(args[0])
	if err != nil {
		return err
	}

	return withViews(cmd, func(a *app, repo *sqlite.ViewRepository) error {
		v, err := getView(cmd, repo, r, args[1])
		if err != nil {
			return err
		}

		f := v.Filter
		hotKey := "-"
		if v.HotKey != nil {
			hotKey = strconv.Itoa(*v.HotKey)
		}

		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, a.styles.Header.Render(fmt.Sprintf(" View: %s ", v.Name)))
		fmt.Fprintln(a.out)
		fmt.Fprintf(a.out, "  Resource:   %s\n", v.Resource)
		fmt.Fprintf(a.out, "  Hot key:    %s\n", hotKey)
		fmt.Fprintf(a.out, "  Search:     %s\n", orDash(f.Query))
		fmt.Fprintf(a.out, "  Category:   %s\n", orDash(deref(f.Category)))
		fmt.Fprintf(a.out, "  Tag:        %s\n", orDash(deref(f.Tag)))
		fmt.Fprintf(a.out, "  Published:  %s\n", boolOrDash(f.Published))
		fmt.Fprintf(a.out, "  Featured:   %s\n", boolOrDash(f.Featured))
		fmt.Fprintf(a.out, "  Sort:       %s\n", orDash(f.Sort))
		fmt.Fprintf(a.out, "  Updated:    %s\n", domain.RelativeTime(time.Since(v.UpdatedAt)))
		fmt.Fprintln(a.out)
		return nil
	})
}

var viewApplyCmd = &cobra.Command{
	Use:   "apply <resource> <name|hotkey>",
	Short: "List records through a saved view",
	Long: `Show the first page of a resource filtered by a saved view.
Equivalent to 'siteadmin list <resource> --view <name>'.

Examples:
  siteadmin view apply posts Drafts
  siteadmin view apply posts 1`,
	Args: cobra.ExactArgs(2),
	RunE: runViewApply,
}

func runViewApply(cmd *cobra.Command, args []string) error {
	r, err := catalog.Lookup(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	db, err := a.openState()
	if err != nil {
		return err
	}
	defer db.Close()

	v, err := getView(cmd, sqlite.NewViewRepository(db), r, args[1])
	if err != nil {
		return err
	}

	a.info("View '%s': %s", v.Name, v.Summary())
	return showList(cmd.Context(), a, r, listRequest{view: v}, db)
}

var viewDeleteCmd = &cobra.Command{
	Use:   "delete <resource> <name>",
	Short: "Delete a saved view",
	Args:  cobra.ExactArgs(2),
	RunE:  runViewDelete,
}

func runViewDelete(cmd *cobra.Command, args []string) error {
	r, err := catalog.Lookup(args[0])
	if err != nil {
		return err
	}

	return withViews(cmd, func(a *app, repo *sqlite.ViewRepository) error {
		v, err := getView(cmd, repo, r, args[1])
		if err != nil {
			return err
		}
		if err := repo.Delete(cmd.Context(), r.Name, v.Name); err != nil {
			a.failure("Failed to delete view: %v", err)
			return err
		}
		a.success("View '%s' deleted", v.Name)
		return nil
	})
}

var viewHotkeyCmd = &cobra.Command{
	Use:   "hotkey <resource> <name> <1-9|none>",
	Short: "Assign or remove a view's hot key",
	Args:  cobra.ExactArgs(3),
	RunE:  runViewHotkey,
}

func runViewHotkey(cmd *cobra.Command, args []string) error {
	r, err := catalog.Lookup(args[0])
	if err != nil {
		return err
	}

	var hotKey *int
	if args[2] != "none" {
		n, err := strconv.Atoi(args[2])
		if err != nil || n < 1 || n > 9 {
			return fmt.Errorf("hot key must be between 1 and 9, or none")
		}
		hotKey = &n
	}

	return withViews(cmd, func(a *app, repo *sqlite.ViewRepository) error {
		v, err := repo.Get(cmd.Context(), r.Name, args[1])
		if err != nil {
			return err
		}
		v.HotKey = hotKey
		if err := repo.Save(cmd.Context(), v); err != nil {
			a.failure("Failed to update hot key: %v", err)
			return err
		}
		if hotKey == nil {
			a.success("Hot key removed from '%s'", v.Name)
		} else {
			a.success("'%s' bound to hot key %d", v.Name, *hotKey)
		}
		return nil
	})
}

// getView finds a view by name or by its hot key.
func getView(cmd *cobra.Command, repo repository.ViewRepository, r *catalog.Resource, ref string) (*domain.SavedView, error) {
	ctx := cmd.Context()
	v, err := repo.Get(ctx, r.Name, ref)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if n, convErr := strconv.Atoi(ref); convErr == nil {
		if v, hkErr := repo.GetByHotKey(ctx, r.Name, n); hkErr == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("no saved view '%s' for %s", ref, r.Name)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolOrDash(b *bool) string {
	if b == nil {
		return "-"
	}
	return domain.FormatBool(*b)
}
