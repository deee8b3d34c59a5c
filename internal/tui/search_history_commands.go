package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"site-admin/internal/domain"
	"site-admin/internal/repository"
)

const historyLimit = 8

type (
	searchHistoryLoadedMsg struct {
		resource string
		history  []*domain.SearchHistory
		err      error
	}

	searchRecordedMsg struct {
		entry *domain.SearchHistory
		err   error
	}
)

func fetchSearchHistoryCmd(ctx context.Context, repo repository.SearchHistoryRepository, resource string, limit int) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return searchHistoryLoadedMsg{resource: resource, history: []*domain.SearchHistory{}}
		}

		history, err := repo.List(ctx, resource, limit)
		if err != nil {
			return searchHistoryLoadedMsg{resource: resource, err: err}
		}

		return searchHistoryLoadedMsg{resource: resource, history: history}
	}
}

func recordSearchCmd(ctx context.Context, repo repository.SearchHistoryRepository, entry *domain.SearchHistory) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return searchRecordedMsg{}
		}

		if err := repo.Record(ctx, entry); err != nil {
			return searchRecordedMsg{err: err}
		}

		return searchRecordedMsg{entry: entry}
	}
}
