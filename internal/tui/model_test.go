package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/export"
	"site-admin/internal/listview"
	"site-admin/internal/service"
)

type fakeSource struct {
	mu      sync.Mutex
	rows    []domain.Entity
	queries []listview.Query
	creates int
	deleted []string
	fail    map[string]error
	reloads int
}

func (f *fakeSource) List(_ context.Context, _ *catalog.Resource, q listview.Query) (*service.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)

	start := min((q.Page-1)*q.Limit, len(f.rows))
	end := min(start+q.Limit, len(f.rows))
	return &service.Result{Rows: f.rows[start:end], Total: len(f.rows)}, nil
}

func (f *fakeSource) Reload(ctx context.Context, r *catalog.Resource, q listview.Query) (*service.Result, error) {
	f.mu.Lock()
	f.reloads++
	f.mu.Unlock()
	return f.List(ctx, r, q)
}

func (f *fakeSource) Create(_ context.Context, _ *catalog.Resource, values map[string]string) (domain.Entity, error) {
	f.creates++
	return domain.Post{ID: "new", Title: values["title"]}, nil
}

func (f *fakeSource) Update(_ context.Context, _ *catalog.Resource, id string, _, values map[string]string) (domain.Entity, error) {
	return domain.Post{ID: id, Title: values["title"]}, nil
}

func (f *fakeSource) Delete(_ context.Context, _ *catalog.Resource, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[id]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSource) BulkDelete(ctx context.Context, r *catalog.Resource, ids []string) service.BulkResult {
	res := service.BulkResult{Items: make([]service.ItemResult, len(ids))}
	for i, id := range ids {
		res.Items[i] = service.ItemResult{ID: id, Err: f.Delete(ctx, r, id)}
	}
	return res
}

func (f *fakeSource) FacetOptions(context.Context, listview.Facet) ([]service.Option, error) {
	return []service.Option{{Value: "true", Label: "Yes"}}, nil
}

type fakeHistory struct {
	recorded []*domain.SearchHistory
}

func (h *fakeHistory) Record(_ context.Context, e *domain.SearchHistory) error {
	h.recorded = append(h.recorded, e)
	return nil
}

func (h *fakeHistory) List(context.Context, string, int) ([]*domain.SearchHistory, error) {
	return h.recorded, nil
}

func (h *fakeHistory) Delete(context.Context, int64) error { return nil }

func (h *fakeHistory) Clear(context.Context, string) (int64, error) { return 0, nil }

func (h *fakeHistory) Count(context.Context) (int64, error) { return int64(len(h.recorded)), nil }

func posts(n int) []domain.Entity {
	rows := make([]domain.Entity, n)
	for i := range rows {
		rows[i] = domain.Post{ID: fmt.Sprintf("p%02d", i+1), Title: fmt.Sprintf("Post %d", i+1), Published: i%2 == 0}
	}
	return rows
}

func newTestModel(t *testing.T, src *fakeSource, history *fakeHistory) Model {
	t.Helper()
	opts := Options{Source: src, Resource: catalog.Posts, PageSize: 10, ExportDir: t.TempDir()}
	if history != nil {
		opts.History = history
	}
	return NewModel(opts)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = send(t, m, msg)
	}
	return m
}

// execute runs cmd and any commands it batches. Only use it on commands
// that do not wait on timers.
func execute(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, execute(c)...)
	}
	return out
}

// load answers the outstanding fetch for the model's current generation.
func load(t *testing.T, m Model, src *fakeSource) (Model, tea.Cmd) {
	t.Helper()
	res, _ := src.List(context.Background(), m.resource, m.state.Query())
	return send(t, m, pageLoadedMsg{
		resource:   m.resource.Name,
		generation: m.state.Generation,
		rows:       res.Rows,
		total:      res.Total,
	})
}

func TestNewModelStartsLoading(t *testing.T) {
	m := newTestModel(t, &fakeSource{}, nil)

	if !m.state.Loading {
		t.Fatal("expected model to start in loading state")
	}
	if m.current() != nil {
		t.Error("current() should be nil while loading")
	}
	if got := len(m.table.Rows()); got != 10 {
		t.Errorf("skeleton rows = %d, want 10", got)
	}
}

func TestPageLoaded(t *testing.T) {
	src := &fakeSource{rows: posts(25)}
	m := newTestModel(t, src, nil)

	m, _ = load(t, m, src)

	if m.state.Loading {
		t.Error("expected loading to finish")
	}
	if m.state.Total != 25 {
		t.Errorf("Total = %d, want 25", m.state.Total)
	}
	if got := m.state.PageLabel(); got != "Page 1 of 3" {
		t.Errorf("PageLabel() = %q, want %q", got, "Page 1 of 3")
	}
	if len(m.rows) != 10 {
		t.Errorf("rows = %d, want 10", len(m.rows))
	}
}

func TestRefreshReloadsFromSource(t *testing.T) {
	src := &fakeSource{rows: posts(3)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)

	src.rows = posts(1)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if !m.state.Loading {
		t.Fatal("expected refresh to start a load")
	}
	for _, msg := range execute(cmd) {
		m, _ = send(t, m, msg)
	}

	if src.reloads != 1 {
		t.Errorf("reloads = %d, want 1", src.reloads)
	}
	if m.state.Total != 1 {
		t.Errorf("Total = %d, want 1", m.state.Total)
	}
}

func TestWriteCSVFile(t *testing.T) {
	table := export.Table{Resource: "tags", Headers: []string{"Name"}, Rows: [][]string{{"go"}}}

	path := filepath.Join(t.TempDir(), "tags.csv")
	if err := writeCSVFile(path, table); err != nil {
		t.Fatalf("writeCSVFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "Name\r\ngo\r\n" {
		t.Errorf("file = %q, want %q", got, "Name\r\ngo\r\n")
	}

	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	if err := writeCSVFile("/dev/full", table); err == nil {
		t.Error("expected an error when the data cannot be written")
	}
}

func TestStalePageIsDropped(t *testing.T) {
	src := &fakeSource{rows: posts(25)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)

	stale := m.state.Generation
	m = press(t, m, "]")
	if m.state.Generation == stale {
		t.Fatal("page change should start a new load")
	}

	m, _ = send(t, m, pageLoadedMsg{resource: "posts", generation: stale, rows: posts(1), total: 1})
	if !m.state.Loading {
		t.Error("stale response must not finish the current load")
	}
	if m.state.Total != 25 {
		t.Errorf("stale response changed Total to %d", m.state.Total)
	}

	m, _ = send(t, m, pageLoadedMsg{resource: "categories", generation: m.state.Generation, rows: posts(1), total: 1})
	if !m.state.Loading {
		t.Error("response for another resource must be dropped")
	}
}

func TestPageFailedKeepsRows(t *testing.T) {
	src := &fakeSource{rows: posts(5)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)

	m = press(t, m, "r")
	m, _ = send(t, m, pageFailedMsg{resource: "posts", generation: m.state.Generation, err: errors.New("boom")})

	if m.state.Loading {
		t.Error("failed load should stop loading")
	}
	if len(m.rows) != 5 {
		t.Errorf("rows = %d, want previous 5", len(m.rows))
	}
	if !m.notice.isError || !strings.Contains(m.notice.text, "boom") {
		t.Errorf("notice = %+v, want error mentioning boom", m.notice)
	}
}

func TestDebouncedSearch(t *testing.T) {
	src := &fakeSource{rows: posts(25)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)
	m = press(t, m, "]")
	m, _ = load(t, m, src)

	m = press(t, m, "/", "g")
	first := m.pending
	m = press(t, m, "o")
	latest := m.pending

	if m.debouncer.State() != listview.DebounceTyping {
		t.Fatalf("debouncer state = %v, want typing", m.debouncer.State())
	}

	m, _ = send(t, m, debounceMsg{ticket: first})
	if m.state.Filter.Query != "" {
		t.Errorf("superseded ticket committed %q", m.state.Filter.Query)
	}

	m, cmd := send(t, m, debounceMsg{ticket: latest})
	if m.state.Filter.Query != "go" {
		t.Errorf("Query = %q, want %q", m.state.Filter.Query, "go")
	}
	if m.state.PageIndex != 0 {
		t.Errorf("PageIndex = %d, want 0 after search", m.state.PageIndex)
	}
	if !m.state.Loading || cmd == nil {
		t.Error("committed search should start a load")
	}
	if m.debouncer.State() != listview.DebounceIdle {
		t.Errorf("debouncer state = %v, want idle", m.debouncer.State())
	}
}

func TestEnterCommitsSearchImmediately(t *testing.T) {
	src := &fakeSource{rows: posts(3)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)

	m = press(t, m, "/", "h", "i")
	pending := m.pending
	m = press(t, m, "enter")

	if m.state.Filter.Query != "hi" {
		t.Errorf("Query = %q, want %q", m.state.Filter.Query, "hi")
	}
	if m.searching {
		t.Error("enter should leave search mode")
	}

	gen := m.state.Generation
	m, _ = send(t, m, debounceMsg{ticket: pending})
	if m.state.Generation != gen {
		t.Error("ticket issued before enter should not trigger another load")
	}
}

func TestSearchRecordedAfterLoad(t *testing.T) {
	src := &fakeSource{rows: posts(4)}
	history := &fakeHistory{}
	m := newTestModel(t, src, history)
	m, _ = load(t, m, src)

	m = press(t, m, "/", "a", "enter")
	m, cmd := load(t, m, src)
	if cmd == nil {
		t.Fatal("expected a command recording the search")
	}
	var recorded bool
	for _, msg := range execute(cmd) {
		if _, ok := msg.(searchRecordedMsg); ok {
			recorded = true
		}
	}
	if !recorded {
		t.Fatal("expected a searchRecordedMsg")
	}

	if len(history.recorded) != 1 {
		t.Fatalf("recorded %d searches, want 1", len(history.recorded))
	}
	got := history.recorded[0]
	if got.Resource != "posts" || got.QueryText != "a" || got.ResultCount != 4 {
		t.Errorf("recorded %+v", got)
	}
	if m.pendingSearch != "" {
		t.Error("pending search should be cleared once recorded")
	}
}

func TestSelection(t *testing.T) {
	src := &fakeSource{rows: posts(25)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)

	m = press(t, m, "space", "down", "space")
	if got := m.state.SelectedKeys(); len(got) != 2 || got[0] != "p01" || got[1] != "p02" {
		t.Errorf("SelectedKeys() = %v, want [p01 p02]", got)
	}
	if m.table.Rows()[0][0] != "✓" {
		t.Error("selected row should be marked")
	}

	m = press(t, m, "space")
	if got := len(m.state.Selection); got != 1 {
		t.Errorf("selection after toggle = %d, want 1", got)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	if got := len(m.state.Selection); got != 10 {
		t.Errorf("select all = %d, want 10", got)
	}

	m = press(t, m, "]")
	if got := len(m.state.Selection); got != 0 {
		t.Errorf("selection after page change = %d, want 0", got)
	}
}

func TestClearFilters(t *testing.T) {
	src := &fakeSource{rows: posts(25)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)

	m = press(t, m, "/", "x", "y", "enter")
	m, _ = load(t, m, src)
	m.dispatch(listview.SetFacet{Facet: listview.FacetPublished, Value: "true"})
	m, _ = load(t, m, src)

	if m.state.Filter.ActiveCount() == 0 {
		t.Fatal("expected active filters")
	}

	m = press(t, m, "F")
	if !m.state.Filter.IsZero() {
		t.Errorf("Filter = %+v, want zero", m.state.Filter)
	}
	if m.searchInput.Value() != "" {
		t.Errorf("search input = %q, want empty", m.searchInput.Value())
	}
	if !m.state.Loading {
		t.Error("clearing filters should reload")
	}
}

func TestFilterPanelCyclesFacet(t *testing.T) {
	src := &fakeSource{rows: posts(5)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)

	m = press(t, m, "f")
	if m.viewMode != filterView {
		t.Fatalf("viewMode = %v, want filterView", m.viewMode)
	}
	m, _ = send(t, m, facetOptionsMsg{facet: listview.FacetCategory, options: []service.Option{{Value: "c1", Label: "News"}}})

	m = press(t, m, "l")
	if got := m.state.Filter.Value(listview.FacetCategory); got != "c1" {
		t.Errorf("category = %q, want c1", got)
	}
	if got := m.facetLabel(listview.FacetCategory, "c1"); got != "News" {
		t.Errorf("facetLabel = %q, want News", got)
	}

	m, _ = load(t, m, src)
	m = press(t, m, "l")
	if got := m.state.Filter.Value(listview.FacetCategory); got != "" {
		t.Errorf("category = %q, want unset after wrapping", got)
	}
}

func TestToggleColumnFromFilterPanel(t *testing.T) {
	src := &fakeSource{rows: posts(5)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)

	before := len(m.columns())
	m = press(t, m, "f")
	for i, item := range m.filter.items {
		if item.column == "author" {
			m.filter.cursor = i
		}
	}
	m = press(t, m, "enter")

	if !m.state.Hidden["author"] {
		t.Error("author column should be hidden")
	}
	if got := len(m.columns()); got != before-1 {
		t.Errorf("visible columns = %d, want %d", got, before-1)
	}
	if m.state.Loading {
		t.Error("hiding a column should not reload")
	}
}

func TestBulkDelete(t *testing.T) {
	src := &fakeSource{rows: posts(5), fail: map[string]error{"p02": errors.New("locked")}}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)

	m = press(t, m, "space", "down", "space", "down", "space", "d")
	if !m.confirm.active {
		t.Fatal("expected confirm dialog")
	}
	if !strings.Contains(m.confirm.message, "Delete 3 posts") {
		t.Errorf("confirm message = %q", m.confirm.message)
	}

	next, cmd := m.updateConfirmDialog(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("confirming should start the delete")
	}
	msg := cmd()
	if len(src.deleted) != 2 {
		t.Errorf("deleted %v, want p01 and p03", src.deleted)
	}

	m, _ = send(t, m, msg)
	if !m.notice.isError {
		t.Error("partial failure should be reported as an error")
	}
	for _, want := range []string{"Deleted 2 of 3 posts", "p02", "locked"} {
		if !strings.Contains(m.notice.text, want) {
			t.Errorf("notice %q missing %q", m.notice.text, want)
		}
	}
	if !m.state.Loading {
		t.Error("bulk delete should reload the page")
	}
}

func TestDeleteCancelled(t *testing.T) {
	src := &fakeSource{rows: posts(2)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)

	m = press(t, m, "d")
	if !strings.Contains(m.confirm.message, `"Post 1"`) {
		t.Errorf("confirm message = %q", m.confirm.message)
	}
	m = press(t, m, "n")
	if m.confirm.active {
		t.Error("dialog should close")
	}
	if len(src.deleted) != 0 {
		t.Errorf("deleted %v after cancel", src.deleted)
	}
}

func TestFormValidationBlocksSave(t *testing.T) {
	src := &fakeSource{rows: posts(2)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)

	m = press(t, m, "n")
	if m.viewMode != formView || !m.form.isNew() {
		t.Fatal("expected an empty create form")
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("invalid form must not issue a request")
	}
	if src.creates != 0 {
		t.Errorf("creates = %d, want 0", src.creates)
	}
	for _, field := range []string{"title", "slug", "content"} {
		if _, ok := m.form.errors[field]; !ok {
			t.Errorf("expected error for %s, got %v", field, m.form.errors)
		}
	}
	if m.form.focused().field.Name != "title" {
		t.Errorf("focus = %s, want first invalid field", m.form.focused().field.Name)
	}
}

func TestFormSaveFlow(t *testing.T) {
	src := &fakeSource{rows: posts(2)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)

	m = press(t, m, "n")
	for i := range m.form.fields {
		ff := &m.form.fields[i]
		switch ff.field.Name {
		case "title":
			ff.input.SetValue("Hello")
		case "slug":
			ff.input.SetValue("hello")
		case "content":
			ff.area.SetValue("Body")
		}
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil || !m.form.saving {
		t.Fatal("valid form should be submitted")
	}
	m, _ = send(t, m, cmd())

	if src.creates != 1 {
		t.Errorf("creates = %d, want 1", src.creates)
	}
	if m.viewMode != tableView {
		t.Error("form should close after saving")
	}
	if m.notice.text != `Post "Hello" created` {
		t.Errorf("notice = %q", m.notice.text)
	}
}

func TestSaveErrors(t *testing.T) {
	src := &fakeSource{rows: posts(2)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)
	m = press(t, m, "e")

	m, _ = send(t, m, savedMsg{err: &domain.ValidationError{Fields: domain.FieldErrors{"slug": "already taken"}}})
	if m.viewMode != formView {
		t.Fatal("server validation errors should keep the form open")
	}
	if m.form.errors["slug"] != "already taken" {
		t.Errorf("errors = %v", m.form.errors)
	}

	m, _ = send(t, m, savedMsg{err: service.ErrNoChanges})
	if m.viewMode != tableView {
		t.Error("no-change save should close the form")
	}
	if m.notice.isError {
		t.Error("no-change save is not an error")
	}
}

func TestApplySavedViewHotKey(t *testing.T) {
	src := &fakeSource{rows: posts(25)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)

	published := true
	key := 1
	view := domain.NewSavedView("posts", "live")
	view.Filter = domain.SavedViewFilter{Published: &published, Query: "go", Sort: "title"}
	view.HotKey = &key
	m, _ = send(t, m, viewsLoadedMsg{resource: "posts", views: []*domain.SavedView{view}})

	m = press(t, m, "1")
	if got := m.state.Filter.Value(listview.FacetPublished); got != "true" {
		t.Errorf("published = %q, want true", got)
	}
	if m.state.Filter.Query != "go" || m.searchInput.Value() != "go" {
		t.Errorf("query = %q, input = %q", m.state.Filter.Query, m.searchInput.Value())
	}
	if m.state.Sort != (listview.Sort{Field: "title"}) {
		t.Errorf("Sort = %+v", m.state.Sort)
	}
	if !m.state.Loading {
		t.Error("applying a view should reload")
	}

	m = press(t, m, "2")
	if !strings.Contains(m.notice.text, "No view assigned to key 2") {
		t.Errorf("notice = %q", m.notice.text)
	}
}

func TestFirstFreeHotKey(t *testing.T) {
	one, two := 1, 2
	views := []*domain.SavedView{{HotKey: &one}, {}, {HotKey: &two}}
	if got := firstFreeHotKey(views); got == nil || *got != 3 {
		t.Errorf("firstFreeHotKey() = %v, want 3", got)
	}

	var full []*domain.SavedView
	for k := 1; k <= 9; k++ {
		full = append(full, &domain.SavedView{HotKey: &k})
	}
	if got := firstFreeHotKey(full); got != nil {
		t.Errorf("firstFreeHotKey() = %d, want nil", *got)
	}
}

func TestSwitchResourceDropsOldResponses(t *testing.T) {
	src := &fakeSource{rows: posts(5)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)
	m = press(t, m, "/", "q", "enter")
	oldGen := m.state.Generation

	cmd := m.switchResource(catalog.Tags)
	if cmd == nil {
		t.Fatal("expected a fetch for the new resource")
	}
	if m.resource != catalog.Tags || m.state.Filter.Query != "" || m.searchInput.Value() != "" {
		t.Error("switching resource should reset the list state")
	}

	m, _ = send(t, m, pageLoadedMsg{resource: "posts", generation: oldGen, rows: posts(5), total: 5})
	if !m.state.Loading {
		t.Error("response for the previous resource must be dropped")
	}
}

func TestNotificationClearsBySequence(t *testing.T) {
	m := newTestModel(t, &fakeSource{}, nil)

	m.notify("first", false)
	first := m.notice.seq
	m.notify("second", false)

	m, _ = send(t, m, clearNotificationMsg{seq: first})
	if m.notice.text != "second" {
		t.Errorf("older timer cleared %q", m.notice.text)
	}
	m, _ = send(t, m, clearNotificationMsg{seq: m.notice.seq})
	if m.notice.text != "" {
		t.Errorf("notice = %q, want cleared", m.notice.text)
	}
}

func TestLastPageShrinks(t *testing.T) {
	src := &fakeSource{rows: posts(21)}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)
	m = press(t, m, "}")
	m, _ = load(t, m, src)
	if m.state.PageIndex != 2 {
		t.Fatalf("PageIndex = %d, want 2", m.state.PageIndex)
	}

	src.rows = posts(20)
	m = press(t, m, "r")
	m, cmd := load(t, m, src)
	if m.state.PageIndex != 1 {
		t.Errorf("PageIndex = %d, want 1 after the last page emptied", m.state.PageIndex)
	}
	if cmd == nil || !m.state.Loading {
		t.Error("expected a refetch of the new last page")
	}
}

func TestViewRendersStates(t *testing.T) {
	src := &fakeSource{}
	m := newTestModel(t, src, nil)
	m, _ = load(t, m, src)

	if out := m.View(); !strings.Contains(out, "No posts yet") {
		t.Errorf("empty view missing hint:\n%s", out)
	}

	src.rows = posts(3)
	m = press(t, m, "r")
	m, _ = load(t, m, src)
	out := m.View()
	for _, want := range []string{"Post 1", "Page 1 of 1", "3 of 3 loaded"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("the quick brown fox jumps", 10)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 10 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if wrapText("short", 10) != "short" {
		t.Error("short text should be unchanged")
	}
}
