package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/listview"
	"site-admin/internal/repository/sqlite"
)

var listCmd = &cobra.Command{
	Use:     "list <resource>",
	Aliases: []string{"ls"},
	Short:   "List records of a resource",
	Long: `List one page of a resource with optional search, facets and sorting.

Facets (--category, --tag, --published, --featured) are only accepted by
resources that support them. Categories and tags can be given by id, name
or slug. The search text may carry facets too: tag:go, #go,
category:"Company News", is:draft, is:featured. --view starts from a saved view, by name or hot key; flags given
alongside it override the view.

Examples:
  siteadmin list posts
  siteadmin list posts --search launch --published true
  siteadmin list posts --search "is:draft #go"
  siteadmin list posts --category design --sort -createdAt --page 2
  siteadmin list faqs --limit 50
  siteadmin list posts --view drafts`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

var (
	listPage      int
	listLimit     int
	listSort      string
	listSearch    string
	listCategory  string
	listTag       string
	listPublished string
	listFeatured  string
	listView      string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "Page number, starting at 1")
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 0, "Rows per page (default from page_size)")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort field, prefix with - for descending (e.g. -createdAt)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Search text")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Filter by tag")
	listCmd.Flags().StringVar(&listPublished, "published", "", "Filter by published state (true/false)")
	listCmd.Flags().StringVar(&listFeatured, "featured", "", "Filter by featured flag (true/false)")
	listCmd.Flags().StringVar(&listView, "view", "", "Start from a saved view")
}

// listRequest is the flag set of a list command, shared with export and views.
type listRequest struct {
	page      int
	limit     int
	sort      string
	search    string
	category  string
	tag       string
	published string
	featured  string
	view      *domain.SavedView
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	r, err := catalog.Lookup(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var state *sqlite.DB
	if db, err := a.openState(); err != nil {
		a.logger.Warn("search history unavailable", "err", err)
	} else {
		state = db
		defer db.Close()
	}

	req := listRequest{
		page:      listPage,
		limit:     listLimit,
		sort:      listSort,
		search:    listSearch,
		category:  listCategory,
		tag:       listTag,
		published: listPublished,
		featured:  listFeatured,
	}
	if listView != "" {
		if state == nil {
			return fmt.Errorf("saved views are not available")
		}
		v, err := getView(cmd, sqlite.NewViewRepository(state), r, listView)
		if err != nil {
			return err
		}
		req.view = v
	}

	return showList(ctx, a, r, req, state)
}

// showList prints one page and remembers its search when state is available.
func showList(ctx context.Context, a *app, r *catalog.Resource, req listRequest, state *sqlite.DB) error {
	if req.limit <= 0 {
		req.limit = a.cfg.PageSize
	}
	req, err := resolveRequest(ctx, a.svc, r, req)
	if err != nil {
		return err
	}
	s, err := buildListState(r, req)
	if err != nil {
		return err
	}

	s, rows, err := fetchPage(ctx, a, r, s)
	if err != nil {
		a.failure("Failed to list %s: %v", r.Name, err)
		return err
	}

	if q := s.Filter.Query; q != "" && state != nil {
		entry := domain.NewSearchHistory(r.Name, q)
		entry.ResultCount = s.Total
		if err := sqlite.NewSearchHistoryRepository(state).Record(ctx, entry); err != nil {
			a.logger.Warn("failed to record search", "err", err)
		}
	}

	printPage(a, r, s, rows)
	return nil
}

// buildListState reduces the requested filters into a list state. A saved
// view is applied first so explicit flags win.
func buildListState(r *catalog.Resource, req listRequest) (listview.State, error) {
	s := listview.New(req.limit, r.DefaultSort)

	var actions []listview.Action
	if req.view != nil {
		actions = append(actions, listview.ApplySaved(req.view.Filter)...)
	}

	facets := []struct {
		facet listview.Facet
		value string
	}{
		{listview.FacetCategory, req.category},
		{listview.FacetTag, req.tag},
		{listview.FacetPublished, req.published},
		{listview.FacetFeatured, req.featured},
	}
	for _, f := range facets {
		if f.value == "" {
			continue
		}
		if !r.HasFacet(f.facet) {
			return s, fmt.Errorf("%s cannot be filtered by %s", r.Name, f.facet)
		}
		value := f.value
		if f.facet == listview.FacetPublished || f.facet == listview.FacetFeatured {
			b, ok := domain.ParseBool(value)
			if !ok {
				return s, fmt.Errorf("--%s must be true or false", f.facet)
			}
			value = fmt.Sprint(b)
		}
		actions = append(actions, listview.SetFacet{Facet: f.facet, Value: value})
	}

	if req.search != "" {
		actions = append(actions, listview.SetQuery{Query: strings.TrimSpace(req.search)})
	}
	if req.sort != "" {
		actions = append(actions, listview.SetSort{Sort: listview.ParseSort(req.sort)})
	}

	for _, act := range actions {
		s, _ = listview.Reduce(s, act)
	}

	if req.page > 1 {
		s.PageIndex = req.page - 1
	}
	return s, nil
}

// fetchPage loads the current page from the API. Asking past the end lands
// on the last page.
func fetchPage(ctx context.Context, a *app, r *catalog.Resource, s listview.State) (listview.State, []domain.Entity, error) {
	for range 2 {
		s, _ = listview.Reduce(s, listview.LoadStarted{})
		res, err := a.svc.Reload(ctx, r, s.Query())
		if err != nil {
			s, _ = listview.Reduce(s, listview.LoadFailed{Generation: s.Generation})
			return s, nil, err
		}

		var events []listview.Event
		s, events = listview.Reduce(s, listview.Loaded{Generation: s.Generation, Total: res.Total})
		if !listview.NeedsFetch(events) {
			return s, res.Rows, nil
		}
		a.logger.Debug("page out of range, loading last page", "page", s.PageIndex+1)
	}
	return s, nil, fmt.Errorf("failed to settle on a page of %s", r.Name)
}

func printPage(a *app, r *catalog.Resource, s listview.State, rows []domain.Entity) {
	fmt.Fprintln(a.out)
	if len(rows) == 0 {
		if s.Filter.IsZero() {
			a.info("No %s yet. Create one with 'siteadmin create %s'.", strings.ToLower(r.Plural), r.Name)
		} else {
			a.info("No %s match the current filters.", strings.ToLower(r.Plural))
		}
		fmt.Fprintln(a.out)
		return
	}

	fmt.Fprintln(a.out, renderRows(a.styles, r, rows))
	fmt.Fprintln(a.out)

	first, last := s.Range(len(rows))
	fmt.Fprintf(a.out, "%s · rows %d-%d · sort %s\n", s.PageLabel(), first, last, s.Sort)
	fmt.Fprintln(a.out, a.styles.Subtitle.Render(listview.ComputeStats(rows, s.Total).String()))
	fmt.Fprintln(a.out)
}
