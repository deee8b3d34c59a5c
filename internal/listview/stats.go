package listview

import (
	"fmt"
	"strings"

	"site-admin/internal/domain"
)

// Stats summarizes the rows currently loaded, not the whole collection.
type Stats struct {
	Loaded    int
	Total     int
	Published int
	Drafts    int
	Featured  int

	HasPublished bool
	HasFeatured  bool
}

func ComputeStats[T any](rows []T, total int) Stats {
	st := Stats{Loaded: len(rows), Total: total}
	for _, r := range rows {
		if p, ok := any(r).(domain.Publishable); ok {
			st.HasPublished = true
			if p.IsPublished() {
				st.Published++
			} else {
				st.Drafts++
			}
		}
		if f, ok := any(r).(domain.Featurable); ok {
			st.HasFeatured = true
			if f.IsFeatured() {
				st.Featured++
			}
		}
	}
	return st
}

func (s Stats) String() string {
	parts := []string{fmt.Sprintf("%d of %d loaded", s.Loaded, s.Total)}
	if s.HasPublished {
		parts = append(parts, fmt.Sprintf("%d published", s.Published), fmt.Sprintf("%d drafts", s.Drafts))
	}
	if s.HasFeatured {
		parts = append(parts, fmt.Sprintf("%d featured", s.Featured))
	}
	return strings.Join(parts, " · ")
}
