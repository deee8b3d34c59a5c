package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"site-admin/internal/catalog"
	"site-admin/internal/domain"
)

var (
	// delete flags
	deleteForce bool
)

var deleteCmd = &cobra.Command{
	Use:     "delete <resource> <id...>",
	Aliases: []string{"rm"},
	Short:   "Delete one or more records",
	Long: `Delete one or more records of a resource.
You will be prompted for confirmation unless you use the --force flag.

Several ids are deleted concurrently and reported item by item; ids that
succeed stay deleted even when others fail.

Examples:
  siteadmin delete posts 3f2a9c1e
  siteadmin delete tags 0b1c2d3e 4f5a6b7c --force`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	r, err := catalog.Lookup(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	targets := make([]domain.Entity, 0, len(args)-1)
	seen := map[string]bool{}
	for _, ref := range args[1:] {
		e, err := resolveEntity(ctx, a.svc, r, ref)
		if err != nil {
			return err
		}
		if !seen[e.Key()] {
			seen[e.Key()] = true
			targets = append(targets, e)
		}
	}

	noun := strings.ToLower(r.Singular)
	if len(targets) > 1 {
		noun = strings.ToLower(r.Plural)
	}

	if !deleteForce {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, a.styles.Error.Render(fmt.Sprintf("⚠  You are about to delete %d %s:", len(targets), noun)))
		for _, e := range targets {
			fmt.Fprintln(a.out, a.styles.Info.Render(fmt.Sprintf("   %s  %s", shortID(e.Key()), r.Label(e))))
		}
		fmt.Fprintln(a.out)

		if !promptForConfirmation(bufio.NewReader(cmd.InOrStdin()), a.out, "   This cannot be undone. Are you sure?") {
			fmt.Fprintln(a.out)
			a.info("Deletion cancelled.")
			fmt.Fprintln(a.out)
			return nil
		}
	}

	fmt.Fprintln(a.out)

	if len(targets) == 1 {
		e := targets[0]
		if err := a.svc.Delete(ctx, r, e.Key()); err != nil {
			a.failure("Failed to delete %s \"%s\": %v", noun, r.Label(e), err)
			return err
		}
		a.success("%s \"%s\" deleted", r.Singular, r.Label(e))
		fmt.Fprintln(a.out)
		return nil
	}

	ids := make([]string, len(targets))
	labels := make(map[string]string, len(targets))
	for i, e := range targets {
		ids[i] = e.Key()
		labels[e.Key()] = r.Label(e)
	}

	res := a.svc.BulkDelete(ctx, r, ids)
	failed := res.Failed()
	if len(failed) == 0 {
		a.success("%s", res.Summary(noun))
	} else {
		a.failure("%s", res.Summary(noun))
	}
	for _, item := range res.Items {
		if item.Err != nil {
			fmt.Fprintln(a.out, a.styles.Error.Render(fmt.Sprintf("  ✗ %s  %s: %v", shortID(item.ID), labels[item.ID], item.Err)))
		} else {
			fmt.Fprintln(a.out, a.styles.Success.Render(fmt.Sprintf("  ✓ %s  %s", shortID(item.ID), labels[item.ID])))
		}
	}
	fmt.Fprintln(a.out)

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d deletes failed", len(failed), len(ids))
	}
	return nil
}
