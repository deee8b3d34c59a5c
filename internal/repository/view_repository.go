package repository

import (
	"context"

	"site-admin/internal/domain"
)

// ViewRepository stores named filter presets. Names are unique per resource.
type ViewRepository interface {
	// Save creates the view or replaces the filter and hot key of the
	// existing view with the same resource and name.
	Save(ctx context.Context, view *domain.SavedView) error
	Get(ctx context.Context, resource, name string) (*domain.SavedView, error)
	GetByHotKey(ctx context.Context, resource string, hotKey int) (*domain.SavedView, error)
	List(ctx context.Context, resource string) ([]*domain.SavedView, error)
	Delete(ctx context.Context, resource, name string) error
}
