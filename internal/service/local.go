package service

import (
	"encoding/json"
	"sort"
	"strings"

	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/fuzzy"
	"site-admin/internal/listview"
)

// applyLocal filters, sorts and pages a fully loaded collection the way the
// API would. Limit <= 0 returns every matching row.
func applyLocal(r *catalog.Resource, rows []domain.Entity, q listview.Query) *Result {
	matched := make([]domain.Entity, 0, len(rows))
	for _, e := range rows {
		if matchesFacets(e, q.Filter) {
			matched = append(matched, e)
		}
	}
	matched = fuzzy.Filter(q.Filter.Query, matched, r.SearchText, fuzzy.DefaultThreshold)
	sortRows(matched, q.Sort)

	total := len(matched)
	if q.Limit <= 0 {
		return &Result{Rows: matched, Total: total}
	}

	page := max(q.Page, 1)
	start := min((page-1)*q.Limit, total)
	end := min(start+q.Limit, total)
	return &Result{Rows: matched[start:end], Total: total}
}

func matchesFacets(e domain.Entity, f listview.Filter) bool {
	if f.Category != nil {
		c, ok := e.(domain.Categorized)
		if !ok || c.CategoryKey() != *f.Category {
			return false
		}
	}
	if f.Tag != nil {
		t, ok := e.(domain.Tagged)
		if !ok || !t.HasTag(*f.Tag) {
			return false
		}
	}
	if f.Published != nil {
		p, ok := e.(domain.Publishable)
		if !ok || p.IsPublished() != *f.Published {
			return false
		}
	}
	if f.Featured != nil {
		ft, ok := e.(domain.Featurable)
		if !ok || ft.IsFeatured() != *f.Featured {
			return false
		}
	}
	return true
}

// sortRows orders rows by a JSON field of the record. Missing values sort last
// in either direction.
func sortRows(rows []domain.Entity, s listview.Sort) {
	if s.Field == "" || len(rows) < 2 {
		return
	}

	keys := make(map[string]any, len(rows))
	for _, e := range rows {
		keys[e.Key()] = fieldOf(e, s.Field)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := keys[rows[i].Key()], keys[rows[j].Key()]
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		c := compare(a, b)
		if s.Desc {
			return c > 0
		}
		return c < 0
	})
}

func fieldOf(e domain.Entity, field string) any {
	data, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil
	}
	return record[field]
}

func compare(a, b any) int {
	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			}
			return 1
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
		}
	}
	return 0
}
