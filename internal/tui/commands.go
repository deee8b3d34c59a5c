package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/export"
	"site-admin/internal/listview"
	"site-admin/internal/service"
)

// Source is what the screen needs from the data layer. *service.Service
// satisfies it.
type Source interface {
	List(ctx context.Context, r *catalog.Resource, q listview.Query) (*service.Result, error)
	Reload(ctx context.Context, r *catalog.Resource, q listview.Query) (*service.Result, error)
	Create(ctx context.Context, r *catalog.Resource, values map[string]string) (domain.Entity, error)
	Update(ctx context.Context, r *catalog.Resource, id string, original, values map[string]string) (domain.Entity, error)
	Delete(ctx context.Context, r *catalog.Resource, id string) error
	BulkDelete(ctx context.Context, r *catalog.Resource, ids []string) service.BulkResult
	FacetOptions(ctx context.Context, f listview.Facet) ([]service.Option, error)
}

// Message types for async operations

// pageLoadedMsg carries the generation it was requested under so late
// responses can be dropped
type pageLoadedMsg struct {
	resource   string
	generation int
	rows       []domain.Entity
	total      int
}

type pageFailedMsg struct {
	resource   string
	generation int
	err        error
}

type debounceMsg struct {
	ticket listview.Ticket
}

type savedMsg struct {
	entity  domain.Entity
	created bool
	err     error
}

type deletedMsg struct {
	id    string
	label string
	err   error
}

type bulkDeletedMsg struct {
	result service.BulkResult
}

type facetOptionsMsg struct {
	facet   listview.Facet
	options []service.Option
	err     error
}

type exportedMsg struct {
	path  string
	count int
	err   error
}

type clearNotificationMsg struct {
	seq int
}

func fetchPageCmd(ctx context.Context, src Source, r *catalog.Resource, q listview.Query, generation int, reload bool) tea.Cmd {
	return func() tea.Msg {
		list := src.List
		if reload {
			list = src.Reload
		}
		res, err := list(ctx, r, q)
		if err != nil {
			return pageFailedMsg{resource: r.Name, generation: generation, err: err}
		}
		return pageLoadedMsg{resource: r.Name, generation: generation, rows: res.Rows, total: res.Total}
	}
}

func createCmd(ctx context.Context, src Source, r *catalog.Resource, values map[string]string) tea.Cmd {
	return func() tea.Msg {
		e, err := src.Create(ctx, r, values)
		return savedMsg{entity: e, created: true, err: err}
	}
}

func updateCmd(ctx context.Context, src Source, r *catalog.Resource, id string, original, values map[string]string) tea.Cmd {
	return func() tea.Msg {
		e, err := src.Update(ctx, r, id, original, values)
		return savedMsg{entity: e, err: err}
	}
}

func deleteCmd(ctx context.Context, src Source, r *catalog.Resource, id, label string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, label: label, err: src.Delete(ctx, r, id)}
	}
}

func bulkDeleteCmd(ctx context.Context, src Source, r *catalog.Resource, ids []string) tea.Cmd {
	return func() tea.Msg {
		return bulkDeletedMsg{result: src.BulkDelete(ctx, r, ids)}
	}
}

func facetOptionsCmd(ctx context.Context, src Source, f listview.Facet) tea.Cmd {
	return func() tea.Msg {
		opts, err := src.FacetOptions(ctx, f)
		return facetOptionsMsg{facet: f, options: opts, err: err}
	}
}

// exportCmd writes rows as CSV into dir using the visible columns.
func exportCmd(r *catalog.Resource, cols []listview.Column[domain.Entity], rows []domain.Entity, dir string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, export.Filename(r.Name, export.FormatCSV, now))
		if err := writeCSVFile(path, export.FromColumns(r.Name, cols, rows)); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path, count: len(rows)}
	}
}

// writeCSVFile reports a failed close too; buffered data may only hit the
// disk there.
func writeCSVFile(path string, t export.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.WriteCSV(f, t); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

func debounceCmd(ticket listview.Ticket, window time.Duration) tea.Cmd {
	return tea.Tick(window, func(time.Time) tea.Msg {
		return debounceMsg{ticket: ticket}
	})
}

func clearNotificationCmd(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearNotificationMsg{seq: seq}
	})
}

// fetch starts a load for the current state. Any response to an earlier
// load is stale from here on.
func (m *Model) fetch() tea.Cmd {
	return m.load(false)
}

// reload is fetch without cached responses, for an explicit refresh.
func (m *Model) reload() tea.Cmd {
	return m.load(true)
}

func (m *Model) load(reload bool) tea.Cmd {
	m.state, _ = listview.Reduce(m.state, listview.LoadStarted{})
	m.refreshTable()
	return fetchPageCmd(m.ctx, m.src, m.resource, m.state.Query(), m.state.Generation, reload)
}
