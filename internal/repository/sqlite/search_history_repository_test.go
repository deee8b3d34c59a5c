package sqlite

import (
	"context"
	"errors"
	"testing"

	"site-admin/internal/domain"
	"site-admin/internal/repository"
)

func setupTestDB(t *testing.T) (*DB, context.Context) {
	t.Helper()
	db, err := NewDB(Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, context.Background()
}

func TestSearchHistoryRepository_Record(t *testing.T) {
	db, ctx := setupTestDB(t)
	repo := NewSearchHistoryRepository(db)

	t.Run("create new entry", func(t *testing.T) {
		entry := domain.NewSearchHistory("posts", "launch")
		entry.ResultCount = 3

		if err := repo.Record(ctx, entry); err != nil {
			t.Fatalf("failed to record search: %v", err)
		}
		if entry.ID == 0 {
			t.Error("expected ID to be set after insert")
		}
		if entry.UseCount != 1 {
			t.Errorf("expected use count 1, got %d", entry.UseCount)
		}
	})

	t.Run("deduplicate per resource", func(t *testing.T) {
		first := domain.NewSearchHistory("posts", "pricing")
		if err := repo.Record(ctx, first); err != nil {
			t.Fatalf("failed to record first search: %v", err)
		}

		second := domain.NewSearchHistory("posts", "pricing")
		second.ResultCount = 7
		if err := repo.Record(ctx, second); err != nil {
			t.Fatalf("failed to record second search: %v", err)
		}

		if second.ID != first.ID {
			t.Errorf("expected deduplication to reuse ID %d, got %d", first.ID, second.ID)
		}
		if second.UseCount != 2 {
			t.Errorf("expected use count 2, got %d", second.UseCount)
		}
		if second.ResultCount != 7 {
			t.Errorf("expected latest result count 7, got %d", second.ResultCount)
		}
		if second.CreatedAt.Unix() != first.CreatedAt.Unix() {
			t.Errorf("expected created_at to stay %v, got %v", first.CreatedAt, second.CreatedAt)
		}
	})

	t.Run("same query on another resource is separate", func(t *testing.T) {
		other := domain.NewSearchHistory("projects", "pricing")
		if err := repo.Record(ctx, other); err != nil {
			t.Fatalf("failed to record: %v", err)
		}

		count, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 3 {
			t.Errorf("expected 3 entries, got %d", count)
		}
	})

	t.Run("validation error on empty query", func(t *testing.T) {
		if err := repo.Record(ctx, domain.NewSearchHistory("posts", "  ")); err == nil {
			t.Error("expected validation error for empty query text")
		}
	})
}

func TestSearchHistoryRepository_ListMostRecentFirst(t *testing.T) {
	db, ctx := setupTestDB(t)
	repo := NewSearchHistoryRepository(db)

	for _, q := range []string{"alpha", "beta", "gamma"} {
		if err := repo.Record(ctx, domain.NewSearchHistory("faqs", q)); err != nil {
			t.Fatalf("failed to record %q: %v", q, err)
		}
	}
	if err := repo.Record(ctx, domain.NewSearchHistory("tags", "delta")); err != nil {
		t.Fatalf("failed to record: %v", err)
	}
	// using alpha again moves it to the front
	if err := repo.Record(ctx, domain.NewSearchHistory("faqs", "alpha")); err != nil {
		t.Fatalf("failed to record: %v", err)
	}

	entries, err := repo.List(ctx, "faqs", 0)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}

	want := []string{"alpha", "gamma", "beta"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, w := range want {
		if entries[i].QueryText != w {
			t.Errorf("entry %d: expected %q, got %q", i, w, entries[i].QueryText)
		}
	}

	limited, err := repo.List(ctx, "", 2)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 entries with limit, got %d", len(limited))
	}
}

func TestSearchHistoryRepository_ClearAndDelete(t *testing.T) {
	db, ctx := setupTestDB(t)
	repo := NewSearchHistoryRepository(db)

	for _, res := range []string{"posts", "posts", "tags"} {
		entry := domain.NewSearchHistory(res, "q-"+res)
		if err := repo.Record(ctx, entry); err != nil {
			t.Fatalf("failed to record: %v", err)
		}
	}
	extra := domain.NewSearchHistory("tags", "other")
	if err := repo.Record(ctx, extra); err != nil {
		t.Fatalf("failed to record: %v", err)
	}

	if err := repo.Delete(ctx, extra.ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if err := repo.Delete(ctx, extra.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}

	removed, err := repo.Clear(ctx, "posts")
	if err != nil {
		t.Fatalf("failed to clear: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed entry, got %d", removed)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 entry left, got %d", count)
	}

	if _, err := repo.Clear(ctx, ""); err != nil {
		t.Fatalf("failed to clear all: %v", err)
	}
	if count, _ := repo.Count(ctx); count != 0 {
		t.Errorf("expected empty history, got %d", count)
	}
}
