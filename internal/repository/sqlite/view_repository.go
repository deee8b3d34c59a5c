package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"site-admin/internal/domain"
	"site-admin/internal/repository"
)

type ViewRepository struct {
	db *DB
}

func NewViewRepository(db *DB) *ViewRepository {
	return &ViewRepository{db: db}
}

var _ repository.ViewRepository = (*ViewRepository)(nil)

type dbView struct {
	ID           int64         `db:"id"`
	Resource     string        `db:"resource"`
	Name         string        `db:"name"`
	FilterConfig string        `db:"filter_config"`
	HotKey       sql.NullInt64 `db:"hot_key"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

func (dv *dbView) toView() (*domain.SavedView, error) {
	view := &domain.SavedView{
		ID:        dv.ID,
		Resource:  dv.Resource,
		Name:      dv.Name,
		HotKey:    intPtr(dv.HotKey),
		CreatedAt: dv.CreatedAt,
		UpdatedAt: dv.UpdatedAt,
	}

	if err := json.Unmarshal([]byte(dv.FilterConfig), &view.Filter); err != nil {
		return nil, fmt.Errorf("failed to unmarshal filter config: %w", err)
	}

	return view, nil
}

const viewColumns = `id, resource, name, filter_config, hot_key, created_at, updated_at`

func (r *ViewRepository) Save(ctx context.Context, view *domain.SavedView) error {
	if err := view.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	filterJSON, err := json.Marshal(view.Filter)
	if err != nil {
		return fmt.Errorf("failed to marshal filter config: %w", err)
	}

	if view.HotKey != nil {
		existing, err := r.GetByHotKey(ctx, view.Resource, *view.HotKey)
		if err == nil && existing.Name != view.Name {
			return fmt.Errorf("hot key %d is already assigned to view '%s'", *view.HotKey, existing.Name)
		}
	}

	now := time.Now()
	query := `
		INSERT INTO saved_views (resource, name, filter_config, hot_key, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(resource, name) DO UPDATE SET
			filter_config = excluded.filter_config,
			hot_key = excluded.hot_key,
			updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, view.Resource, view.Name, string(filterJSON), nullInt64Ptr(view.HotKey), now, now)
	if err != nil {
		return fmt.Errorf("failed to save view: %w", err)
	}

	saved, err := r.Get(ctx, view.Resource, view.Name)
	if err != nil {
		return err
	}
	*view = *saved

	return nil
}

func (r *ViewRepository) Get(ctx context.Context, resource, name string) (*domain.SavedView, error) {
	query := `SELECT ` + viewColumns + ` FROM saved_views WHERE resource = ? AND name = ?`

	var dv dbView
	if err := r.db.GetContext(ctx, &dv, query, resource, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("view '%s' for %s: %w", name, resource, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get view: %w", err)
	}

	return dv.toView()
}

func (r *ViewRepository) GetByHotKey(ctx context.Context, resource string, hotKey int) (*domain.SavedView, error) {
	query := `SELECT ` + viewColumns + ` FROM saved_views WHERE resource = ? AND hot_key = ?`

	var dv dbView
	if err := r.db.GetContext(ctx, &dv, query, resource, hotKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no view assigned to hot key %d: %w", hotKey, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get view by hot key: %w", err)
	}

	return dv.toView()
}

// List returns the views of resource, or of every resource when empty.
func (r *ViewRepository) List(ctx context.Context, resource string) ([]*domain.SavedView, error) {
	query := `SELECT ` + viewColumns + ` FROM saved_views
		WHERE (? = '' OR resource = ?)
		ORDER BY resource, COALESCE(hot_key, 10), name`

	var rows []dbView
	if err := r.db.SelectContext(ctx, &rows, query, resource, resource); err != nil {
		return nil, fmt.Errorf("failed to list views: %w", err)
	}

	views := make([]*domain.SavedView, 0, len(rows))
	for i := range rows {
		v, err := rows[i].toView()
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}

	return views, nil
}

func (r *ViewRepository) Delete(ctx context.Context, resource, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_views WHERE resource = ? AND name = ?`, resource, name)
	if err != nil {
		return fmt.Errorf("failed to delete view: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("view '%s' for %s: %w", name, resource, repository.ErrNotFound)
	}

	return nil
}
