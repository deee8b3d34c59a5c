package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/listview"
	"site-admin/internal/repository"
	"site-admin/internal/service"
	"site-admin/internal/theme"
)

var errNoViewStore = errors.New("saved views are not available")

var pageSizes = []int{10, 20, 50, 100}

type viewMode int

const (
	tableView viewMode = iota
	detailView
	formView
	filterView
	resourceView
	viewPickerView
)

type confirmDialog struct {
	active    bool
	message   string
	onConfirm func(m *Model) tea.Cmd
}

type notification struct {
	text    string
	isError bool
	seq     int
}

// filterItem is one line of the filter panel: a facet or a hideable column.
type filterItem struct {
	facet  listview.Facet
	column string
	label  string
}

type filterPanel struct {
	cursor  int
	items   []filterItem
	options map[listview.Facet][]service.Option
}

type picker struct {
	cursor int
}

type viewPicker struct {
	cursor  int
	naming  bool
	nameBox textinput.Model
}

type detail struct {
	entity   domain.Entity
	viewport viewport.Model
}

type Options struct {
	// Context bounds every request the model makes.
	Context  context.Context
	Source   Source
	History  repository.SearchHistoryRepository
	Views    repository.ViewRepository
	Resource *catalog.Resource
	PageSize int
	Debounce time.Duration
	// how long notifications stay up
	NotifyFor time.Duration
	ExportDir string
	Theme     *theme.Theme
	Logger    *log.Logger
	Now       func() time.Time
}

type Model struct {
	ctx     context.Context
	src     Source
	history repository.SearchHistoryRepository
	views   repository.ViewRepository
	logger  *log.Logger

	resource *catalog.Resource
	state    listview.State
	rows     []domain.Entity

	debouncer     listview.Debouncer
	pending       listview.Ticket
	pendingSearch string
	searching     bool
	searchInput   textinput.Model

	searchHistory   []*domain.SearchHistory
	historyDropdown struct {
		active bool
		cursor int
	}

	savedViews []*domain.SavedView

	table table.Model
	keys  keyMap

	viewMode viewMode
	filter   filterPanel
	form     schemaForm
	confirm  confirmDialog
	detail   detail
	switcher picker
	picker   viewPicker
	notice   notification

	notifyFor time.Duration
	exportDir string
	now       func() time.Time

	width    int
	height   int
	showHelp bool

	theme  *theme.Theme
	styles *theme.Styles
}

func NewModel(opts Options) Model {
	if opts.Resource == nil {
		opts.Resource = catalog.Posts
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.NotifyFor <= 0 {
		opts.NotifyFor = 4 * time.Second
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	if opts.Theme == nil {
		opts.Theme = theme.Resolve(theme.FallbackName)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	t := table.New(
		table.WithColumns([]table.Column{}),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(opts.PageSize+1),
	)
	t.SetStyles(tableStyles(opts.Theme))

	si := textinput.New()
	si.Prompt = "🔍 "
	si.CharLimit = 100
	si.Width = 50

	nameBox := textinput.New()
	nameBox.Placeholder = "View name"
	nameBox.CharLimit = 100
	nameBox.Width = 40

	m := Model{
		ctx:         opts.Context,
		src:         opts.Source,
		history:     opts.History,
		views:       opts.Views,
		logger:      opts.Logger.WithPrefix("tui"),
		debouncer:   listview.NewDebouncer(opts.Debounce),
		searchInput: si,
		table:       t,
		keys:        defaultKeyMap(),
		viewMode:    tableView,
		filter:      filterPanel{options: map[listview.Facet][]service.Option{}},
		picker:      viewPicker{nameBox: nameBox},
		notifyFor:   opts.NotifyFor,
		exportDir:   opts.ExportDir,
		now:         opts.Now,
		width:       100,
		height:      30,
		theme:       opts.Theme,
		styles:      theme.NewStyles(opts.Theme),
	}
	m.resetResource(opts.Resource, opts.PageSize)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchPageCmd(m.ctx, m.src, m.resource, m.state.Query(), m.state.Generation, false),
		fetchSearchHistoryCmd(m.ctx, m.history, m.resource.Name, historyLimit),
		fetchViewsCmd(m.ctx, m.views, m.resource.Name),
	)
}

// resetResource points the screen at r with a fresh list state. The load
// generation keeps counting so responses for the previous resource are stale.
func (m *Model) resetResource(r *catalog.Resource, pageSize int) {
	generation := m.state.Generation
	m.resource = r
	m.state = listview.New(pageSize, r.DefaultSort)
	m.state.Generation = generation
	m.state, _ = listview.Reduce(m.state, listview.LoadStarted{})
	m.rows = nil
	m.pendingSearch = ""
	m.searchInput.SetValue("")
	m.searchInput.Placeholder = "Search " + r.Plural + "..."
	m.debouncer.Reset("")
	m.searchHistory = nil
	m.savedViews = nil
	m.refreshTable()
}

// columns are the resource columns the user has not hidden
func (m *Model) columns() []listview.Column[domain.Entity] {
	return listview.Visible(m.resource.Columns, m.state.Hidden)
}

// refreshTable rebuilds the table from state and rows. Loading pages show
// skeleton rows instead of data.
func (m *Model) refreshTable() {
	cols := m.columns()

	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: " ", Width: 2})
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c.Title, Width: c.Width})
	}

	var rows []table.Row
	if m.state.Loading {
		n := m.state.PageSize
		if len(m.rows) > 0 && len(m.rows) < n {
			n = len(m.rows)
		}
		for range n {
			row := table.Row{""}
			for _, c := range cols {
				row = append(row, skeleton(c.Width))
			}
			rows = append(rows, row)
		}
	} else {
		for _, e := range m.rows {
			mark := " "
			if m.state.IsSelected(e.Key()) {
				mark = "✓"
			}
			rows = append(rows, append(table.Row{mark}, listview.Cells(cols, e)...))
		}
	}

	// rows must never be wider than the columns
	m.table.SetRows(nil)
	m.table.SetColumns(tcols)
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// current returns the row under the cursor.
func (m *Model) current() domain.Entity {
	if m.state.Loading || len(m.rows) == 0 {
		return nil
	}
	c := m.table.Cursor()
	if c < 0 || c >= len(m.rows) {
		return nil
	}
	return m.rows[c]
}

// dispatch reduces actions in order, forwards the raised events to the
// callbacks and starts a load when the page contents changed.
func (m *Model) dispatch(actions ...listview.Action) tea.Cmd {
	var events []listview.Event
	for _, a := range actions {
		var ev []listview.Event
		m.state, ev = listview.Reduce(m.state, a)
		events = append(events, ev...)
	}

	var cmds []tea.Cmd
	cb := listview.Callbacks{
		OnGlobalFilterChange: func(q string) {
			m.pendingSearch = q
		},
		OnSortChange: func(s listview.Sort) {
			m.logger.Debug("sort changed", "resource", m.resource.Name, "sort", s.Param())
		},
		OnPaginationChange: func(p listview.Pagination) {
			m.logger.Debug("page changed", "resource", m.resource.Name, "page", p.PageIndex+1, "size", p.PageSize)
		},
		OnCreateNew: func() {
			m.openForm(nil)
		},
	}
	cb.Emit(events)

	if listview.NeedsFetch(events) {
		cmds = append(cmds, m.fetch())
	} else {
		m.refreshTable()
	}
	return tea.Batch(cmds...)
}

// notify shows a transient message that clears itself.
func (m *Model) notify(text string, isError bool) tea.Cmd {
	m.notice.seq++
	m.notice.text = text
	m.notice.isError = isError
	return clearNotificationCmd(m.notice.seq, m.notifyFor)
}

func (m *Model) openForm(e domain.Entity) {
	values := map[string]string{}
	id := ""
	if e != nil {
		v, err := m.resource.Values(e)
		if err != nil {
			m.logger.Error("failed to read form values", "resource", m.resource.Name, "err", err)
		} else {
			values = v
		}
		id = e.Key()
	}
	m.form = newSchemaForm(m.resource.Schema, values, id, m.width-30)
	m.viewMode = formView
}

func (m *Model) openDetail(e domain.Entity) {
	m.detail.entity = e
	m.detail.viewport = viewport.New(max(m.width-6, 40), max(m.height-10, 8))
	m.detail.viewport.SetContent(m.renderDetailContent(e))
	m.viewMode = detailView
}

func (m *Model) buildFilterItems() []filterItem {
	var items []filterItem
	for _, f := range m.resource.Facets {
		items = append(items, filterItem{facet: f, label: facetTitle(f)})
	}
	for _, c := range m.resource.Columns {
		if c.Hideable {
			items = append(items, filterItem{column: c.Key, label: c.Title})
		}
	}
	return items
}

// facetLabel resolves a facet value to the option label shown for it.
func (m *Model) facetLabel(f listview.Facet, value string) string {
	if value == "" {
		return "All"
	}
	for _, o := range m.filter.options[f] {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

func facetTitle(f listview.Facet) string {
	switch f {
	case listview.FacetCategory:
		return "Category"
	case listview.FacetTag:
		return "Tag"
	case listview.FacetPublished:
		return "Status"
	case listview.FacetFeatured:
		return "Featured"
	}
	return string(f)
}

// sortFields lists the sortable fields of the visible columns, default first.
func (m *Model) sortFields() []string {
	fields := []string{m.resource.DefaultSort.Field}
	for _, c := range m.columns() {
		if c.Sortable() && c.SortField != m.resource.DefaultSort.Field {
			fields = append(fields, c.SortField)
		}
	}
	return fields
}

func (m *Model) hotKeyView(k int) *domain.SavedView {
	for _, v := range m.savedViews {
		if v.HotKey != nil && *v.HotKey == k {
			return v
		}
	}
	return nil
}
