package repository

import (
	"context"

	"site-admin/internal/domain"
)

// SearchHistoryRepository remembers committed searches per resource.
type SearchHistoryRepository interface {
	// Record inserts the query or, when the resource already has it, bumps
	// its use count and recency.
	Record(ctx context.Context, entry *domain.SearchHistory) error

	// List returns the most recent entries for resource, or for every
	// resource when resource is empty. limit <= 0 means no limit.
	List(ctx context.Context, resource string, limit int) ([]*domain.SearchHistory, error)

	Delete(ctx context.Context, id int64) error

	// Clear removes the entries for resource, or all of them when empty.
	Clear(ctx context.Context, resource string) (int64, error)

	Count(ctx context.Context) (int64, error)
}
