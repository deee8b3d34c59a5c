package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"site-admin/internal/catalog"
	"site-admin/internal/display"
	"site-admin/internal/domain"
	"site-admin/internal/listview"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.confirm.active {
		b.WriteString(m.renderConfirmDialog())
		b.WriteString("\n")
		return b.String()
	}

	switch m.viewMode {
	case formView:
		b.WriteString(m.renderForm())
		b.WriteString("\n")
		b.WriteString(m.renderNotification())
		b.WriteString(m.styles.TUIHelp.Render(strings.Join([]string{
			"tab/shift+tab: move",
			"←/→/space: change choice",
			"ctrl+s: save",
			"esc: cancel",
		}, "  •  ")))
		return b.String()

	case detailView:
		b.WriteString(m.renderNotification())
		b.WriteString(m.styles.DetailContainer.Render(m.detail.viewport.View()))
		b.WriteString("\n")
		b.WriteString(m.styles.TUIHelp.Render("e: edit  •  d: delete  •  ↑/↓: scroll  •  esc: back"))
		return b.String()

	case resourceView:
		b.WriteString(m.renderResourcePicker())
		return b.String()

	case viewPickerView:
		b.WriteString(m.renderViewPicker())
		b.WriteString("\n")
		b.WriteString(m.renderNotification())
		return b.String()
	}

	b.WriteString(m.renderSearchBox())
	b.WriteString("\n")
	if chips := m.renderFilterChips(); chips != "" {
		b.WriteString(chips)
		b.WriteString("\n")
	}
	b.WriteString(m.renderNotification())

	if m.viewMode == filterView {
		b.WriteString(m.renderFilterPanel())
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTable())
		b.WriteString("\n")
	}

	b.WriteString(m.renderPagination())
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

// renderHeader shows the resource tabs with the current one highlighted.
func (m Model) renderHeader() string {
	title := m.styles.TUITitle.Render("  Site Admin  ")

	var tabs []string
	for _, r := range catalog.All() {
		if r == m.resource {
			tabs = append(tabs, m.styles.ActiveTab.Render(r.Plural))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(r.Plural))
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	if m.width > 0 && lipgloss.Width(line) > m.width-lipgloss.Width(title)-1 {
		line = m.styles.ActiveTab.Render(m.resource.Plural) +
			m.styles.TUIHelp.Render(fmt.Sprintf("  (%d/%d, tab to switch)", catalog.Index(m.resource)+1, len(catalog.All())))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", line)
}

func (m Model) renderSearchBox() string {
	style := m.styles.SearchBox
	if m.searching {
		style = m.styles.SearchFocused
	}
	line := m.searchInput.View()
	if m.debouncer.State() == listview.DebounceTyping {
		line += m.styles.TUIHelp.Render("  typing…")
	}
	box := style.Render(line)

	if !m.historyDropdown.active || len(m.searchHistory) == 0 {
		return box
	}

	var items []string
	for i, h := range m.searchHistory {
		text := h.GetDisplayText()
		if h.ResultCount > 0 {
			text += fmt.Sprintf(" · %d results", h.ResultCount)
		}
		if i == m.historyDropdown.cursor {
			items = append(items, m.styles.FormFocused.Render("› "+text))
		} else {
			items = append(items, m.styles.TUIHelp.Render("  "+text))
		}
	}
	return box + "\n" + m.styles.Dialog.Render(strings.Join(items, "\n"))
}

// renderFilterChips lists active facets and the committed query.
func (m Model) renderFilterChips() string {
	var chips []string
	for _, f := range m.resource.Facets {
		if v := m.state.Filter.Value(f); v != "" {
			chips = append(chips, m.styles.FacetActive.Render(facetTitle(f)+": "+m.facetLabel(f, v)))
		}
	}
	if q := m.state.Filter.Query; q != "" {
		chips = append(chips, m.styles.FacetActive.Render(fmt.Sprintf("Search: %q", q)))
	}
	if n := len(m.state.Hidden); n > 0 {
		chips = append(chips, m.styles.FacetInactive.Render(fmt.Sprintf("%d hidden columns", n)))
	}
	if len(chips) == 0 {
		return ""
	}
	chips = append(chips, m.styles.TUIHelp.Render("F: clear"))
	return strings.Join(chips, " ")
}

func (m Model) renderNotification() string {
	if m.notice.text == "" {
		return ""
	}
	return m.styles.Notification(m.notice.isError).Render(m.notice.text) + "\n"
}

func (m Model) renderTable() string {
	if !m.state.Loading && len(m.rows) == 0 {
		text := fmt.Sprintf("No %s yet. Press n to create one.", strings.ToLower(m.resource.Plural))
		if !m.state.Filter.IsZero() {
			text = fmt.Sprintf("No %s match the current filters.", strings.ToLower(m.resource.Plural))
		}
		return m.styles.Info.Render(text) + "\n"
	}
	return m.table.View()
}

// renderPagination dims the controls that cannot be used.
func (m Model) renderPagination() string {
	prev := m.styles.TUIHelp.Render("[ prev")
	if m.state.CanPrev() && !m.state.Loading {
		prev = m.styles.FacetActive.Render("[ prev")
	}
	next := m.styles.TUIHelp.Render("next ]")
	if m.state.CanNext() && !m.state.Loading {
		next = m.styles.FacetActive.Render("next ]")
	}

	label := m.state.PageLabel()
	if m.state.Total > 0 && !m.state.Loading {
		from, to := m.state.Range(len(m.rows))
		label = fmt.Sprintf("%s (%d-%d of %d)", label, from, to, m.state.Total)
	}
	size := m.styles.TUIHelp.Render(fmt.Sprintf("%d per page · sort %s", m.state.PageSize, m.state.Sort))
	return strings.Join([]string{prev, label, next, size}, "  ")
}

func (m Model) renderStats() string {
	if m.state.Loading {
		return m.styles.Stats.Render("Loading " + strings.ToLower(m.resource.Plural) + "…")
	}
	line := listview.ComputeStats(m.rows, m.state.Total).String()
	if n := len(m.state.Selection); n > 0 {
		line = m.styles.Marked.Render(fmt.Sprintf("✓ %d selected", n)) + m.styles.Stats.Render(" · "+line)
		return line
	}
	return m.styles.Stats.Render(line)
}

func (m Model) renderHelp() string {
	if !m.showHelp {
		var hints []string
		for _, k := range m.keys.ShortHelp() {
			h := k.Help()
			hints = append(hints, h.Key+": "+h.Desc)
		}
		return m.styles.TUIHelp.Render(strings.Join(hints, "  •  "))
	}

	var cols []string
	for _, group := range m.keys.FullHelp() {
		var lines []string
		for _, k := range group {
			h := k.Help()
			lines = append(lines, fmt.Sprintf("%-8s %s", h.Key, h.Desc))
		}
		cols = append(cols, m.styles.TUIHelp.Render(strings.Join(lines, "\n")))
	}
	hotkeys := m.styles.TUIHelp.Render("1-9: apply saved view")
	grid := lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(cols, "   ")...)
	return grid + "\n" + hotkeys
}

func joinWithGap(cols []string, gap string) []string {
	out := make([]string, 0, len(cols)*2)
	for i, c := range cols {
		if i > 0 {
			out = append(out, gap)
		}
		out = append(out, c)
	}
	return out
}

func (m Model) renderConfirmDialog() string {
	message := m.styles.Warning.Render(m.confirm.message)
	prompt := m.styles.TUISubtitle.Render("Are you sure? (y/n)")
	content := lipgloss.JoinVertical(lipgloss.Left, message, "", prompt)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Warning)).
		Padding(1, 2).
		Render(content)
}

// renderDetailContent is the body of the detail viewport.
func (m *Model) renderDetailContent(e domain.Entity) string {
	rows := m.resource.Detail(e)
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Label))
	}

	var b strings.Builder
	b.WriteString(m.styles.TUISubtitle.Render(m.resource.Singular + ": " + m.resource.Label(e)))
	b.WriteString("\n\n")
	for _, r := range rows {
		label := m.styles.DetailLabel.Width(width + 2).Render(r.Label + ":")
		value := r.Value
		if p, ok := e.(domain.Publishable); ok && r.Label == "Published" {
			value = m.styles.PublishStyle(p.IsPublished()).Render(display.StatusLabel(p.IsPublished()))
		} else {
			value = m.styles.DetailValue.Render(wrapText(value, max(m.width-width-12, 30)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, " ", value))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder

	title := "New " + m.resource.Singular
	if !m.form.isNew() {
		title = "Edit " + m.resource.Singular
	}
	b.WriteString(m.styles.TUISubtitle.Render(title))
	b.WriteString("\n\n")

	for i, ff := range m.form.fields {
		label := ff.field.Label
		if ff.field.Required {
			label += " *"
		}
		if i == m.form.focus {
			b.WriteString(m.styles.FormFocused.Render("› " + label))
		} else {
			b.WriteString(m.styles.FormLabel.Render("  " + label))
		}
		b.WriteString("\n  ")

		switch {
		case ff.field.IsChoice():
			b.WriteString(m.renderChoice(ff))
		case ff.field.Kind == domain.KindLongText:
			b.WriteString(ff.area.View())
		default:
			b.WriteString(ff.input.View())
		}
		b.WriteString("\n")

		if msg, bad := m.form.errors[ff.field.Name]; bad {
			b.WriteString(m.styles.FormError.Render("  " + msg))
			b.WriteString("\n")
		} else if ff.field.Hint != "" && i == m.form.focus && !ff.field.IsChoice() {
			b.WriteString(m.styles.FormHint.Render("  " + ff.field.Hint))
			b.WriteString("\n")
		}
	}

	if m.form.saving {
		b.WriteString("\n")
		b.WriteString(m.styles.Info.Render("Saving…"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderChoice(ff formField) string {
	v := ff.value()
	text := v
	switch ff.field.Kind {
	case domain.KindIcon:
		if v != "" {
			text = display.IconLabel(domain.Icon(v))
		}
	case domain.KindBool:
		if v != "" && ff.field.Name == "published" {
			return "‹ " + m.styles.PublishStyle(v == "yes").Render(display.StatusLabel(v == "yes")) + " ›"
		}
	}
	if text == "" {
		text = "(none)"
	}
	return "‹ " + m.styles.DetailValue.Render(text) + " ›"
}

func (m Model) renderFilterPanel() string {
	var b strings.Builder
	b.WriteString(m.styles.TUISubtitle.Render("Filters & columns"))
	b.WriteString("\n\n")

	for i, item := range m.filter.items {
		cursor := "  "
		if i == m.filter.cursor {
			cursor = "› "
		}

		var value string
		if item.column != "" {
			if m.state.Hidden[item.column] {
				value = m.styles.FacetInactive.Render("hidden")
			} else {
				value = m.styles.FacetActive.Render("shown")
			}
		} else {
			v := m.state.Filter.Value(item.facet)
			style := m.styles.FacetInactive
			if v != "" {
				style = m.styles.FacetActive
			}
			value = style.Render("‹ " + m.facetLabel(item.facet, v) + " ›")
			if _, loaded := m.filter.options[item.facet]; !loaded {
				value += m.styles.TUIHelp.Render(" loading…")
			}
		}

		label := fmt.Sprintf("%s%-12s", cursor, item.label)
		if i == m.filter.cursor {
			label = m.styles.FormFocused.Render(label)
		} else {
			label = m.styles.FormLabel.Render(label)
		}
		b.WriteString(label + " " + value + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.TUIHelp.Render("←/→: change  •  enter: toggle column  •  x: unset  •  F: clear all  •  esc: done"))
	return b.String()
}

func (m Model) renderResourcePicker() string {
	var b strings.Builder
	b.WriteString(m.styles.TUISubtitle.Render("Switch resource"))
	b.WriteString("\n\n")
	for i, r := range catalog.All() {
		line := fmt.Sprintf("%-14s %s paging", r.Plural, r.Paging)
		switch {
		case i == m.switcher.cursor:
			b.WriteString(m.styles.FormFocused.Render("› " + line))
		case r == m.resource:
			b.WriteString(m.styles.ActiveTab.Render("  " + line))
		default:
			b.WriteString(m.styles.FormLabel.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.TUIHelp.Render("↑/↓: move  •  enter: open  •  esc: cancel"))
	return b.String()
}

func (m Model) renderViewPicker() string {
	var b strings.Builder
	b.WriteString(m.styles.TUISubtitle.Render("Saved views · " + m.resource.Plural))
	b.WriteString("\n\n")

	if m.picker.naming {
		b.WriteString(m.styles.FormLabel.Render("Save current filters as:"))
		b.WriteString("\n")
		b.WriteString(m.picker.nameBox.View())
		b.WriteString("\n")
		preview := domain.SavedView{Filter: m.state.Saved()}
		b.WriteString(m.styles.FormHint.Render(preview.Summary()))
		b.WriteString("\n\n")
		b.WriteString(m.styles.TUIHelp.Render("enter: save  •  esc: cancel"))
		return b.String()
	}

	if len(m.savedViews) == 0 {
		b.WriteString(m.styles.Info.Render("No saved views. Press w to save the current filters."))
		b.WriteString("\n")
	}
	for i, v := range m.savedViews {
		key := " "
		if v.HotKey != nil {
			key = fmt.Sprintf("%d", *v.HotKey)
		}
		line := fmt.Sprintf("[%s] %-20s %s", key, v.Name, v.Summary())
		if i == m.picker.cursor {
			b.WriteString(m.styles.FormFocused.Render("› " + line))
		} else {
			b.WriteString(m.styles.FormLabel.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.TUIHelp.Render("enter: apply  •  w: save current  •  d: delete  •  esc: back"))
	return b.String()
}

// wrapText breaks text at word boundaries so no line exceeds width.
func wrapText(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				out = append(out, line)
				line = w
				continue
			}
			line += " " + w
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
