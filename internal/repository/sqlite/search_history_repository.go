package sqlite

import (
	"context"
	"fmt"
	"time"

	"site-admin/internal/domain"
	"site-admin/internal/repository"
)

type searchHistoryRepository struct {
	db *DB
}

func NewSearchHistoryRepository(db *DB) repository.SearchHistoryRepository {
	return &searchHistoryRepository{db: db}
}

func (r *searchHistoryRepository) Record(ctx context.Context, entry *domain.SearchHistory) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid search history entry: %w", err)
	}

	now := time.Now()
	upsert := `
		INSERT INTO search_history (resource, query_text, use_count, result_count, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?, ?)
		ON CONFLICT(resource, query_text) DO UPDATE SET
			use_count = use_count + 1,
			result_count = excluded.result_count,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, upsert, entry.Resource, entry.QueryText, entry.ResultCount, now, now); err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}

	query := `
		SELECT id, resource, query_text, use_count, result_count, created_at, updated_at
		FROM search_history
		WHERE resource = ? AND query_text = ?
	`
	if err := r.db.GetContext(ctx, entry, query, entry.Resource, entry.QueryText); err != nil {
		return fmt.Errorf("failed to reload search history: %w", err)
	}

	return nil
}

func (r *searchHistoryRepository) List(ctx context.Context, resource string, limit int) ([]*domain.SearchHistory, error) {
	query := `
		SELECT id, resource, query_text, use_count, result_count, created_at, updated_at
		FROM search_history
		WHERE (? = '' OR resource = ?)
		ORDER BY updated_at DESC, id DESC
	`
	args := []any{resource, resource}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	entries := []*domain.SearchHistory{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}

	return entries, nil
}

func (r *searchHistoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM search_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete search history: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("search history entry %d: %w", id, repository.ErrNotFound)
	}

	return nil
}

func (r *searchHistoryRepository) Clear(ctx context.Context, resource string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM search_history WHERE (? = '' OR resource = ?)`, resource, resource)
	if err != nil {
		return 0, fmt.Errorf("failed to clear search history: %w", err)
	}

	return result.RowsAffected()
}

func (r *searchHistoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM search_history`); err != nil {
		return 0, fmt.Errorf("failed to count search history: %w", err)
	}

	return count, nil
}
