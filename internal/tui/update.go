package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/listview"
	"site-admin/internal/service"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-14, 5))
		if m.viewMode == detailView {
			m.detail.viewport.Width = max(msg.Width-6, 40)
			m.detail.viewport.Height = max(msg.Height-10, 8)
		}
		return m, nil

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case pageFailedMsg:
		if msg.resource != m.resource.Name || msg.generation != m.state.Generation {
			return m, nil
		}
		m.state, _ = listview.Reduce(m.state, listview.LoadFailed{Generation: msg.generation})
		m.refreshTable()
		m.logger.Error("failed to load page", "resource", m.resource.Name, "err", msg.err)
		return m, m.notify(msg.err.Error(), true)

	case debounceMsg:
		q, ok := m.debouncer.Fire(msg.ticket)
		if !ok {
			return m, nil
		}
		cmd := m.dispatch(listview.SetQuery{Query: q})
		m.debouncer.Settle()
		return m, cmd

	case savedMsg:
		return m.handleSaved(msg)

	case deletedMsg:
		if msg.err != nil {
			m.logger.Error("delete failed", "resource", m.resource.Name, "id", msg.id, "err", msg.err)
			return m, m.notify(msg.err.Error(), true)
		}
		if m.viewMode == detailView {
			m.viewMode = tableView
		}
		return m, tea.Batch(
			m.notify(fmt.Sprintf("%s %q deleted", m.resource.Singular, msg.label), false),
			m.fetch(),
		)

	case bulkDeletedMsg:
		failed := len(msg.result.Failed())
		cmds := []tea.Cmd{m.notify(msg.result.Summary(strings.ToLower(m.resource.Plural)), failed > 0)}
		// nothing changed when every delete failed
		if failed < len(msg.result.Items) {
			cmds = append(cmds, m.fetch())
		}
		return m, tea.Batch(cmds...)

	case facetOptionsMsg:
		if msg.err != nil {
			m.logger.Error("failed to load filter options", "facet", msg.facet, "err", msg.err)
			return m, m.notify(fmt.Sprintf("Failed to load %s options: %v", facetTitle(msg.facet), msg.err), true)
		}
		m.filter.options[msg.facet] = msg.options
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			return m, m.notify(msg.err.Error(), true)
		}
		return m, m.notify(fmt.Sprintf("Exported %d %s to %s", msg.count, strings.ToLower(m.resource.Plural), msg.path), false)

	case clearNotificationMsg:
		if msg.seq == m.notice.seq {
			m.notice.text = ""
			m.notice.isError = false
		}
		return m, nil

	case searchHistoryLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to load search history", "err", msg.err)
			return m, nil
		}
		if msg.resource == m.resource.Name {
			m.searchHistory = msg.history
		}
		return m, nil

	case searchRecordedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to record search", "err", msg.err)
			return m, nil
		}
		if msg.entry != nil {
			return m, fetchSearchHistoryCmd(m.ctx, m.history, m.resource.Name, historyLimit)
		}
		return m, nil

	case viewsLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to load saved views", "err", msg.err)
			return m, nil
		}
		if msg.resource == m.resource.Name {
			m.savedViews = msg.views
		}
		return m, nil

	case viewSavedMsg:
		if msg.err != nil {
			return m, m.notify(fmt.Sprintf("Failed to save view: %v", msg.err), true)
		}
		hint := ""
		if msg.view.HotKey != nil {
			hint = fmt.Sprintf(" (key %d)", *msg.view.HotKey)
		}
		return m, tea.Batch(
			m.notify(fmt.Sprintf("Saved view %q%s", msg.view.Name, hint), false),
			fetchViewsCmd(m.ctx, m.views, m.resource.Name),
		)

	case viewDeletedMsg:
		if msg.err != nil {
			return m, m.notify(fmt.Sprintf("Failed to delete view: %v", msg.err), true)
		}
		return m, tea.Batch(
			m.notify(fmt.Sprintf("Deleted view %q", msg.name), false),
			fetchViewsCmd(m.ctx, m.views, m.resource.Name),
		)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.forward(msg)
	}

	if m.confirm.active {
		return m.updateConfirmDialog(keyMsg)
	}

	switch m.viewMode {
	case formView:
		return m.updateFormMode(keyMsg)
	case detailView:
		return m.updateDetailMode(keyMsg)
	case filterView:
		return m.updateFilterMode(keyMsg)
	case resourceView:
		return m.updateResourcePicker(keyMsg)
	case viewPickerView:
		return m.updateViewPicker(keyMsg)
	}

	if m.searching {
		return m.updateSearchMode(keyMsg)
	}

	return m.handleKeyPress(keyMsg)
}

// forward hands non-key messages such as cursor blinks to whatever has focus.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.viewMode == formView:
		cmd = m.form.update(msg)
	case m.viewMode == viewPickerView && m.picker.naming:
		m.picker.nameBox, cmd = m.picker.nameBox.Update(msg)
	case m.viewMode == detailView:
		m.detail.viewport, cmd = m.detail.viewport.Update(msg)
	case m.searching:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case m.viewMode == tableView:
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

func (m Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.resource != m.resource.Name || msg.generation != m.state.Generation {
		m.logger.Debug("dropping stale page", "resource", msg.resource, "generation", msg.generation, "current", m.state.Generation)
		return m, nil
	}

	var events []listview.Event
	m.rows = msg.rows
	m.state, events = listview.Reduce(m.state, listview.Loaded{Generation: msg.generation, Total: msg.total})

	var cmds []tea.Cmd
	if listview.NeedsFetch(events) {
		// the page we were on no longer exists
		cmds = append(cmds, m.fetch())
	} else {
		m.refreshTable()
	}

	if q := m.pendingSearch; q != "" {
		m.pendingSearch = ""
		entry := domain.NewSearchHistory(m.resource.Name, q)
		entry.ResultCount = msg.total
		if entry.Validate() == nil {
			cmds = append(cmds, recordSearchCmd(m.ctx, m.history, entry))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.form.saving = false

	if msg.err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.Is(msg.err, service.ErrNoChanges):
			m.form.active = false
			m.viewMode = tableView
			return m, m.notify("No changes to save", false)
		case errors.As(msg.err, &verr):
			m.form.errors = verr.Fields
			return m, nil
		default:
			m.logger.Error("save failed", "resource", m.resource.Name, "err", msg.err)
			return m, m.notify(msg.err.Error(), true)
		}
	}

	m.form.active = false
	m.viewMode = tableView

	verb := "updated"
	if msg.created {
		verb = "created"
	}
	text := fmt.Sprintf("%s %s", m.resource.Singular, verb)
	if msg.entity != nil {
		text = fmt.Sprintf("%s %q %s", m.resource.Singular, m.resource.Label(msg.entity), verb)
	}
	return m, tea.Batch(m.notify(text, false), m.fetch())
}

func (m Model) updateConfirmDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirm.active = false
		cmd := m.confirm.onConfirm(&m)
		return m, cmd

	case "n", "N", "esc":
		m.confirm.active = false
		return m, nil
	}
	return m, nil
}

func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.historyDropdown.active {
		switch msg.String() {
		case "esc":
			m.historyDropdown.active = false
			m.historyDropdown.cursor = 0
			return m, nil

		case "up", "ctrl+p":
			if m.historyDropdown.cursor > 0 {
				m.historyDropdown.cursor--
			} else {
				m.historyDropdown.active = false
			}
			return m, nil

		case "down", "ctrl+n":
			if m.historyDropdown.cursor < len(m.searchHistory)-1 {
				m.historyDropdown.cursor++
			}
			return m, nil

		case "enter":
			m.historyDropdown.active = false
			if m.historyDropdown.cursor < len(m.searchHistory) {
				selected := m.searchHistory[m.historyDropdown.cursor]
				m.searchInput.SetValue(selected.QueryText)
				m.searchInput.CursorEnd()
				m.historyDropdown.cursor = 0
				return m, m.commitSearch()
			}
			return m, nil
		}
	}

	switch {
	case msg.String() == "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil

	case msg.String() == "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, m.commitSearch()

	case msg.String() == "down":
		if len(m.searchHistory) > 0 {
			m.historyDropdown.active = true
			m.historyDropdown.cursor = 0
		}
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}

	m.pending = m.debouncer.Keystroke(strings.TrimSpace(m.searchInput.Value()))
	return m, tea.Batch(cmd, debounceCmd(m.pending, m.debouncer.Window))
}

// commitSearch applies the search box immediately, superseding any pending
// debounce ticket.
func (m *Model) commitSearch() tea.Cmd {
	q := strings.TrimSpace(m.searchInput.Value())
	m.debouncer.Reset(q)
	return m.dispatch(listview.SetQuery{Query: q})
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		m.searchInput.CursorEnd()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.viewMode = filterView
		m.filter.cursor = 0
		m.filter.items = m.buildFilterItems()
		var cmds []tea.Cmd
		for _, f := range m.resource.Facets {
			if _, ok := m.filter.options[f]; !ok {
				cmds = append(cmds, facetOptionsCmd(m.ctx, m.src, f))
			}
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keys.ClearFilters):
		m.searchInput.SetValue("")
		m.debouncer.Reset("")
		return m, m.dispatch(listview.ClearFilters{})

	case key.Matches(msg, m.keys.Sort):
		return m, m.dispatch(listview.SetSort{Sort: m.nextSort()})

	case key.Matches(msg, m.keys.SortOrder):
		s := m.state.Sort
		if s.Field == "" {
			return m, nil
		}
		s.Desc = !s.Desc
		return m, m.dispatch(listview.SetSort{Sort: s})

	case key.Matches(msg, m.keys.NextPage):
		return m, m.dispatch(listview.SetPage{Index: m.state.PageIndex + 1})

	case key.Matches(msg, m.keys.PrevPage):
		return m, m.dispatch(listview.SetPage{Index: m.state.PageIndex - 1})

	case key.Matches(msg, m.keys.FirstPage):
		return m, m.dispatch(listview.SetPage{Index: 0})

	case key.Matches(msg, m.keys.LastPage):
		return m, m.dispatch(listview.SetPage{Index: m.state.PageCount() - 1})

	case key.Matches(msg, m.keys.PageSize):
		return m, m.dispatch(listview.SetPageSize{Size: nextPageSize(m.state.PageSize)})

	case key.Matches(msg, m.keys.Refresh):
		if m.state.Loading {
			return m, nil
		}
		return m, m.reload()

	case key.Matches(msg, m.keys.New):
		return m, m.dispatch(listview.CreateNew{})

	case key.Matches(msg, m.keys.Edit):
		if e := m.current(); e != nil {
			m.openForm(e)
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if e := m.current(); e != nil {
			m.openDetail(e)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		return m.handleDelete()

	case key.Matches(msg, m.keys.ToggleSelection):
		if e := m.current(); e != nil {
			return m, m.dispatch(listview.ToggleRow{Key: e.Key()})
		}
		return m, nil

	case key.Matches(msg, m.keys.SelectAll):
		if m.state.Loading {
			return m, nil
		}
		return m, m.dispatch(listview.SelectAll{Keys: listview.Keys(m.rows)})

	case key.Matches(msg, m.keys.DeselectAll):
		return m, m.dispatch(listview.ClearSelection{})

	case key.Matches(msg, m.keys.Export):
		if m.state.Loading || len(m.rows) == 0 {
			return m, m.notify("Nothing to export", true)
		}
		rows := listview.ExportRows(m.rows, m.state.Selection)
		return m, exportCmd(m.resource, m.columns(), rows, m.exportDir, m.now())

	case key.Matches(msg, m.keys.Resources):
		m.viewMode = resourceView
		m.switcher.cursor = max(catalog.Index(m.resource), 0)
		return m, nil

	case key.Matches(msg, m.keys.Views):
		m.viewMode = viewPickerView
		m.picker.cursor = 0
		m.picker.naming = false
		return m, fetchViewsCmd(m.ctx, m.views, m.resource.Name)

	case key.Matches(msg, m.keys.SaveView):
		m.viewMode = viewPickerView
		m.picker.naming = true
		m.picker.nameBox.SetValue("")
		m.picker.nameBox.Focus()
		return m, nil
	}

	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= 9 {
		return m.applyHotKey(n)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleDelete() (tea.Model, tea.Cmd) {
	if m.state.Loading {
		return m, nil
	}

	r := m.resource
	if ids := m.state.SelectedKeys(); len(ids) > 0 {
		noun := r.Plural
		if len(ids) == 1 {
			noun = r.Singular
		}
		m.confirm = confirmDialog{
			active:  true,
			message: fmt.Sprintf("Delete %d %s? This cannot be undone.", len(ids), strings.ToLower(noun)),
			onConfirm: func(m *Model) tea.Cmd {
				return bulkDeleteCmd(m.ctx, m.src, r, ids)
			},
		}
		return m, nil
	}

	e := m.current()
	if m.viewMode == detailView {
		e = m.detail.entity
	}
	if e == nil {
		return m, nil
	}
	id, label := e.Key(), r.Label(e)
	m.confirm = confirmDialog{
		active:  true,
		message: fmt.Sprintf("Delete %s %q? This cannot be undone.", strings.ToLower(r.Singular), label),
		onConfirm: func(m *Model) tea.Cmd {
			return deleteCmd(m.ctx, m.src, r, id, label)
		},
	}
	return m, nil
}

// nextSort moves to the next sortable column, keeping the direction.
func (m *Model) nextSort() listview.Sort {
	fields := m.sortFields()
	cur := m.state.Sort
	for i, f := range fields {
		if f == cur.Field {
			return listview.Sort{Field: fields[(i+1)%len(fields)], Desc: cur.Desc}
		}
	}
	return m.resource.DefaultSort
}

func nextPageSize(size int) int {
	for i, s := range pageSizes {
		if s == size {
			return pageSizes[(i+1)%len(pageSizes)]
		}
	}
	return pageSizes[0]
}

func (m Model) updateDetailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.viewMode = tableView
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if m.detail.entity != nil {
			m.openForm(m.detail.entity)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		return m.handleDelete()
	}

	var cmd tea.Cmd
	m.detail.viewport, cmd = m.detail.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form.active = false
		m.viewMode = tableView
		return m, nil

	case "ctrl+s":
		return m.handleSave()

	case "tab", "down":
		m.form.setFocus(m.form.focus + 1)
		return m, nil

	case "shift+tab", "up":
		m.form.setFocus(m.form.focus - 1)
		return m, nil

	case "left", "right", " ":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		if m.form.cycle(delta) {
			return m, nil
		}
	}

	if ff := m.form.focused(); ff != nil {
		delete(m.form.errors, ff.field.Name)
	}
	return m, m.form.update(msg)
}

// handleSave validates locally; an invalid form never reaches the API.
func (m Model) handleSave() (tea.Model, tea.Cmd) {
	if m.form.saving {
		return m, nil
	}

	values := m.form.values()
	if errs := m.resource.Schema.Validate(values); len(errs) > 0 {
		m.form.errors = errs
		for i, ff := range m.form.fields {
			if _, bad := errs[ff.field.Name]; bad {
				m.form.setFocus(i)
				break
			}
		}
		return m, nil
	}

	m.form.errors = domain.FieldErrors{}
	m.form.saving = true
	if m.form.isNew() {
		return m, createCmd(m.ctx, m.src, m.resource, values)
	}
	return m, updateCmd(m.ctx, m.src, m.resource, m.form.id, m.form.original, values)
}

func (m Model) updateFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Filter):
		m.viewMode = tableView
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.filter.cursor > 0 {
			m.filter.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.filter.cursor < len(m.filter.items)-1 {
			m.filter.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearFilters):
		m.searchInput.SetValue("")
		m.debouncer.Reset("")
		return m, m.dispatch(listview.ClearFilters{})
	}

	if m.filter.cursor >= len(m.filter.items) {
		return m, nil
	}
	item := m.filter.items[m.filter.cursor]

	switch msg.String() {
	case "enter", " ", "right", "l", "left", "h":
		if item.column != "" {
			return m, m.dispatch(listview.ToggleColumn{Key: item.column})
		}
		delta := 1
		if s := msg.String(); s == "left" || s == "h" {
			delta = -1
		}
		return m, m.dispatch(listview.SetFacet{Facet: item.facet, Value: m.cycleFacet(item.facet, delta)})

	case "backspace", "x":
		if item.facet != "" {
			return m, m.dispatch(listview.SetFacet{Facet: item.facet})
		}
	}
	return m, nil
}

// cycleFacet returns the option after (or before) the facet's current value.
// The cycle includes the unset value.
func (m *Model) cycleFacet(f listview.Facet, delta int) string {
	values := []string{""}
	for _, o := range m.filter.options[f] {
		values = append(values, o.Value)
	}
	cur := m.state.Filter.Value(f)
	idx := 0
	for i, v := range values {
		if v == cur {
			idx = i
			break
		}
	}
	n := len(values)
	return values[((idx+delta)%n+n)%n]
}

func (m Model) updateResourcePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	all := catalog.All()
	switch {
	case key.Matches(msg, m.keys.Back):
		m.viewMode = tableView
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.switcher.cursor > 0 {
			m.switcher.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.switcher.cursor < len(all)-1 {
			m.switcher.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.viewMode = tableView
		r := all[m.switcher.cursor]
		if r == m.resource {
			return m, nil
		}
		return m, m.switchResource(r)
	}
	return m, nil
}

func (m *Model) switchResource(r *catalog.Resource) tea.Cmd {
	m.logger.Info("switching resource", "from", m.resource.Name, "to", r.Name)
	m.resetResource(r, m.state.PageSize)
	m.searching = false
	m.historyDropdown.active = false
	return tea.Batch(
		fetchPageCmd(m.ctx, m.src, m.resource, m.state.Query(), m.state.Generation, false),
		fetchSearchHistoryCmd(m.ctx, m.history, r.Name, historyLimit),
		fetchViewsCmd(m.ctx, m.views, r.Name),
	)
}

func (m Model) updateViewPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.naming {
		switch msg.String() {
		case "esc":
			m.picker.naming = false
			m.picker.nameBox.Blur()
			m.viewMode = tableView
			return m, nil

		case "enter":
			name := strings.TrimSpace(m.picker.nameBox.Value())
			if name == "" {
				return m, nil
			}
			m.picker.naming = false
			m.picker.nameBox.Blur()
			m.viewMode = tableView
			return m, m.saveCurrentView(name)
		}
		var cmd tea.Cmd
		m.picker.nameBox, cmd = m.picker.nameBox.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.viewMode = tableView
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.picker.cursor > 0 {
			m.picker.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.picker.cursor < len(m.savedViews)-1 {
			m.picker.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.picker.cursor < len(m.savedViews) {
			m.viewMode = tableView
			return m, m.applyView(m.savedViews[m.picker.cursor])
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.picker.cursor < len(m.savedViews) {
			v := m.savedViews[m.picker.cursor]
			m.confirm = confirmDialog{
				active:  true,
				message: fmt.Sprintf("Delete saved view %q?", v.Name),
				onConfirm: func(m *Model) tea.Cmd {
					return deleteViewCmd(m.ctx, m.views, v.Resource, v.Name)
				},
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.SaveView):
		m.picker.naming = true
		m.picker.nameBox.SetValue("")
		m.picker.nameBox.Focus()
		return m, nil
	}
	return m, nil
}

// saveCurrentView stores the current filter and sort under name. An existing
// view keeps its hot key, a new one gets the first free key.
func (m *Model) saveCurrentView(name string) tea.Cmd {
	view := domain.NewSavedView(m.resource.Name, name)
	view.Filter = m.state.Saved()
	for _, v := range m.savedViews {
		if v.Name == name {
			view.HotKey = v.HotKey
			break
		}
	}
	if view.HotKey == nil {
		view.HotKey = firstFreeHotKey(m.savedViews)
	}
	if err := view.Validate(); err != nil {
		return m.notify(err.Error(), true)
	}
	return saveViewCmd(m.ctx, m.views, view)
}

func (m *Model) applyView(v *domain.SavedView) tea.Cmd {
	m.searchInput.SetValue(v.Filter.Query)
	m.debouncer.Reset(v.Filter.Query)
	return tea.Batch(
		m.dispatch(listview.ApplySaved(v.Filter)...),
		m.notify(fmt.Sprintf("Applied view: %s", v.Name), false),
	)
}

func (m Model) applyHotKey(k int) (tea.Model, tea.Cmd) {
	v := m.hotKeyView(k)
	if v == nil {
		return m, m.notify(fmt.Sprintf("No view assigned to key %d", k), false)
	}
	return m, m.applyView(v)
}
