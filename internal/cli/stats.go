package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/listview"
	"site-admin/internal/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats [resource...]",
	Short: "Show content statistics",
	Long: `Display record counts for every resource, or for the ones given.

Provides an overview of:
  - Totals per resource
  - Published and draft counts where records can be published
  - Featured counts where records can be featured
  - Categories ranked by post count

Examples:
  siteadmin stats                  # Every resource
  siteadmin stats posts faqs       # Only posts and FAQs
  siteadmin stats --top 10         # Show top 10 categories`,
	RunE: runStats,
}

var (
	statsTopLimit int
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntVar(&statsTopLimit, "top", 5, "Number of top categories to show")
}

type resourceStats struct {
	resource *catalog.Resource
	stats    listview.Stats
	rows     []domain.Entity
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	resources := catalog.All()
	if len(args) > 0 {
		resources = resources[:0]
		for _, name := range args {
			r, err := catalog.Lookup(name)
			if err != nil {
				return err
			}
			resources = append(resources, r)
		}
	}

	results := make([]resourceStats, len(resources))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(a.cfg.BulkConcurrency, 1))
	for i, r := range resources {
		g.Go(func() error {
			rows, err := a.svc.Collect(ctx, r, listview.Query{Limit: a.cfg.MaxPageSize})
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", r.Name, err)
			}
			results[i] = resourceStats{resource: r, stats: listview.ComputeStats(rows, len(rows)), rows: rows}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.failure("Failed to get statistics: %v", err)
		return err
	}

	displayStatistics(a.out, a.styles, results, statsTopLimit)
	return nil
}

func displayStatistics(w io.Writer, styles *theme.Styles, results []resourceStats, top int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Title.Render("📊 Content Statistics"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Subtitle.Render("Records"))
	for _, res := range results {
		st := res.stats
		line := fmt.Sprintf("  %-14s %s", res.resource.Plural+":", styles.Info.Render(fmt.Sprintf("%4d", st.Total)))
		if st.HasPublished {
			line += fmt.Sprintf("  %s published  %s drafts",
				styles.StateStyle(theme.StatePublished).Render(fmt.Sprintf("%d", st.Published)),
				styles.StateStyle(theme.StateDraft).Render(fmt.Sprintf("%d", st.Drafts)))
		}
		if st.HasFeatured {
			line += fmt.Sprintf("  %s featured", styles.StateStyle(theme.StateFeatured).Render(fmt.Sprintf("%d", st.Featured)))
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	for _, res := range results {
		switch res.resource {
		case catalog.Posts:
			st := res.stats
			fmt.Fprintln(w, styles.Subtitle.Render("Publishing"))
			if st.Total > 0 {
				pct := float64(st.Published) / float64(st.Total) * 100
				fmt.Fprintf(w, "  Published: %s %s\n", renderBar(int(pct/5), 20, "█"), fmt.Sprintf("%d (%.1f%%)", st.Published, pct))
			} else {
				fmt.Fprintln(w, "  No posts yet")
			}
			fmt.Fprintln(w)

		case catalog.Categories:
			counts := topCategories(res.rows, top)
			if len(counts) == 0 {
				continue
			}
			fmt.Fprintln(w, styles.Subtitle.Render(fmt.Sprintf("Top %d Categories by Post Count", len(counts))))
			for i, c := range counts {
				fmt.Fprintf(w, "  %d. %s %s %s\n", i+1, styles.Info.Render(fmt.Sprintf("%-16s", c.Name)), renderBar(c.PostCount, 20, "█"),
					styles.Cell.Render(fmt.Sprintf("(%d posts)", c.PostCount)))
			}
			fmt.Fprintln(w)
		}
	}
}

// topCategories ranks categories by the post count the API reports.
func topCategories(rows []domain.Entity, limit int) []domain.Category {
	cats := make([]domain.Category, 0, len(rows))
	for _, e := range rows {
		if c, ok := e.(domain.Category); ok {
			cats = append(cats, c)
		}
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].PostCount != cats[j].PostCount {
			return cats[i].PostCount > cats[j].PostCount
		}
		return cats[i].Name < cats[j].Name
	})
	if limit >= 0 && len(cats) > limit {
		cats = cats[:limit]
	}
	return cats
}

func renderBar(filled, width int, char string) string {
	filled = min(max(filled, 0), width)
	return "[" + strings.Repeat(char, filled) + strings.Repeat("·", width-filled) + "]"
}
