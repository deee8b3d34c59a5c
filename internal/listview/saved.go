package listview

import (
	"strings"

	"site-admin/internal/domain"
)

// Saved captures the filter and sort of s for storage.
func (s State) Saved() domain.SavedViewFilter {
	return domain.SavedViewFilter{
		Category:  s.Filter.Category,
		Tag:       s.Filter.Tag,
		Published: s.Filter.Published,
		Featured:  s.Filter.Featured,
		Query:     s.Filter.Query,
		Sort:      s.Sort.Param(),
	}
}

// ParseSort reads the "-field" form back into a Sort.
func ParseSort(param string) Sort {
	param = strings.TrimSpace(param)
	if strings.HasPrefix(param, "-") {
		return Sort{Field: param[1:], Desc: true}
	}
	return Sort{Field: param}
}

// ApplySaved is the action sequence that turns the current state into the
// saved one, sort included; an empty saved sort clears the current one.
// Reducing them in order raises the usual refetch events.
func ApplySaved(f domain.SavedViewFilter) []Action {
	return []Action{
		ClearFilters{},
		SetFacet{Facet: FacetCategory, Value: deref(f.Category)},
		SetFacet{Facet: FacetTag, Value: deref(f.Tag)},
		SetFacet{Facet: FacetPublished, Value: boolValue(f.Published)},
		SetFacet{Facet: FacetFeatured, Value: boolValue(f.Featured)},
		SetQuery{Query: f.Query},
		SetSort{Sort: ParseSort(f.Sort)},
	}
}
