package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"site-admin/internal/domain"
	"site-admin/internal/repository"
)

type (
	viewsLoadedMsg struct {
		resource string
		views    []*domain.SavedView
		err      error
	}

	viewSavedMsg struct {
		view *domain.SavedView
		err  error
	}

	viewDeletedMsg struct {
		name string
		err  error
	}
)

func fetchViewsCmd(ctx context.Context, repo repository.ViewRepository, resource string) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return viewsLoadedMsg{resource: resource}
		}
		views, err := repo.List(ctx, resource)
		return viewsLoadedMsg{resource: resource, views: views, err: err}
	}
}

func saveViewCmd(ctx context.Context, repo repository.ViewRepository, view *domain.SavedView) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return viewSavedMsg{err: errNoViewStore}
		}
		if err := repo.Save(ctx, view); err != nil {
			return viewSavedMsg{err: err}
		}
		return viewSavedMsg{view: view}
	}
}

func deleteViewCmd(ctx context.Context, repo repository.ViewRepository, resource, name string) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return viewDeletedMsg{name: name, err: errNoViewStore}
		}
		return viewDeletedMsg{name: name, err: repo.Delete(ctx, resource, name)}
	}
}

// firstFreeHotKey returns the lowest key 1-9 not used by views, or nil.
func firstFreeHotKey(views []*domain.SavedView) *int {
	used := make(map[int]bool, len(views))
	for _, v := range views {
		if v.HotKey != nil {
			used[*v.HotKey] = true
		}
	}
	for k := 1; k <= 9; k++ {
		if !used[k] {
			return &k
		}
	}
	return nil
}
