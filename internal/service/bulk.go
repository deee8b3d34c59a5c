package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"site-admin/internal/catalog"
)

type ItemResult struct {
	ID  string
	Err error
}

// BulkResult holds one entry per requested id, in request order.
type BulkResult struct {
	Items []ItemResult
}

func (b BulkResult) Succeeded() []string {
	var ids []string
	for _, it := range b.Items {
		if it.Err == nil {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

func (b BulkResult) Failed() []ItemResult {
	var failed []ItemResult
	for _, it := range b.Items {
		if it.Err != nil {
			failed = append(failed, it)
		}
	}
	return failed
}

// Err joins every per-item failure, or nil when all succeeded.
func (b BulkResult) Err() error {
	var errs []error
	for _, it := range b.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", it.ID, it.Err))
	}
	return errors.Join(errs...)
}

// Summary is a single line suitable for a notification.
func (b BulkResult) Summary(noun string) string {
	ok := len(b.Succeeded())
	failed := b.Failed()
	if len(failed) == 0 {
		return fmt.Sprintf("Deleted %d %s", ok, noun)
	}

	parts := make([]string, 0, len(failed))
	for _, f := range failed {
		parts = append(parts, fmt.Sprintf("%s (%v)", f.ID, f.Err))
	}
	return fmt.Sprintf("Deleted %d of %d %s; failed: %s", ok, len(b.Items), noun, strings.Join(parts, ", "))
}

// BulkDelete deletes every id concurrently and waits for all of them. A failed
// id never cancels the others. The cache is invalidated if anything was deleted.
func (s *Service) BulkDelete(ctx context.Context, r *catalog.Resource, ids []string) BulkResult {
	result := BulkResult{Items: make([]ItemResult, len(ids))}

	var g errgroup.Group
	g.SetLimit(s.bulkConcurrency)

	for i, id := range ids {
		result.Items[i].ID = id
		g.Go(func() error {
			result.Items[i].Err = s.api.Delete(ctx, r.Name, id)
			return nil
		})
	}
	_ = g.Wait()

	if deleted := len(result.Succeeded()); deleted > 0 {
		s.Invalidate(r)
		s.logger.Info("bulk delete", "resource", r.Name, "deleted", deleted, "failed", len(ids)-deleted)
	}
	for _, f := range result.Failed() {
		s.logger.Error("bulk delete item failed", "resource", r.Name, "id", f.ID, "err", f.Err)
	}
	return result
}
