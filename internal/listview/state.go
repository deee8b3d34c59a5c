// Package listview holds the state of a server-paginated, filterable table.
//
// The state never owns rows and never fetches. Every transition that should
// change the dataset comes back from Reduce as an Event, and the caller is
// expected to refetch in response.
package listview

import (
	"fmt"
	"sort"
	"strconv"
)

type Facet string

const (
	FacetCategory  Facet = "category"
	FacetTag       Facet = "tag"
	FacetPublished Facet = "published"
	FacetFeatured  Facet = "featured"
)

var AllFacets = []Facet{FacetCategory, FacetTag, FacetPublished, FacetFeatured}

// Filter is the set of optional constraints. A nil field means no constraint.
type Filter struct {
	Category  *string
	Tag       *string
	Published *bool
	Featured  *bool
	Query     string
}

func (f Filter) IsZero() bool {
	return f.Category == nil && f.Tag == nil && f.Published == nil && f.Featured == nil && f.Query == ""
}

func (f Filter) ActiveCount() int {
	n := 0
	for _, facet := range AllFacets {
		if f.Value(facet) != "" {
			n++
		}
	}
	if f.Query != "" {
		n++
	}
	return n
}

// Value returns the facet's wire value, "" when unset.
func (f Filter) Value(facet Facet) string {
	switch facet {
	case FacetCategory:
		return deref(f.Category)
	case FacetTag:
		return deref(f.Tag)
	case FacetPublished:
		return boolValue(f.Published)
	case FacetFeatured:
		return boolValue(f.Featured)
	}
	return ""
}

func (f Filter) with(facet Facet, value string) Filter {
	switch facet {
	case FacetCategory:
		f.Category = strPtr(value)
	case FacetTag:
		f.Tag = strPtr(value)
	case FacetPublished:
		f.Published = boolPtr(value)
	case FacetFeatured:
		f.Featured = boolPtr(value)
	}
	return f
}

type Sort struct {
	Field string
	Desc  bool
}

// Param renders the sort the way the API expects it: "-field" for descending.
func (s Sort) Param() string {
	if s.Field == "" {
		return ""
	}
	if s.Desc {
		return "-" + s.Field
	}
	return s.Field
}

func (s Sort) String() string {
	if s.Field == "" {
		return "default"
	}
	if s.Desc {
		return s.Field + " ↓"
	}
	return s.Field + " ↑"
}

type Pagination struct {
	PageIndex int
	PageSize  int
}

type State struct {
	Filter Filter
	Sort   Sort
	Pagination
	Total int

	Selection map[string]bool
	Hidden    map[string]bool

	Loading    bool
	Generation int
}

func New(pageSize int, sort Sort) State {
	if pageSize <= 0 {
		pageSize = 10
	}
	return State{
		Sort:       sort,
		Pagination: Pagination{PageIndex: 0, PageSize: pageSize},
		Selection:  map[string]bool{},
		Hidden:     map[string]bool{},
	}
}

// PageCount is ceil(total/pageSize), never less than one.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

func (s State) PageCount() int {
	return PageCount(s.Total, s.PageSize)
}

func (s State) CanPrev() bool {
	return s.PageIndex > 0
}

func (s State) CanNext() bool {
	return s.PageIndex < s.PageCount()-1
}

func (s State) PageLabel() string {
	return fmt.Sprintf("Page %d of %d", s.PageIndex+1, s.PageCount())
}

// Range returns the 1-based first and last row numbers shown on this page.
func (s State) Range(rowsOnPage int) (int, int) {
	if rowsOnPage == 0 {
		return 0, 0
	}
	first := s.PageIndex*s.PageSize + 1
	return first, first + rowsOnPage - 1
}

func (s State) IsSelected(key string) bool {
	return s.Selection[key]
}

func (s State) SelectedKeys() []string {
	keys := make([]string, 0, len(s.Selection))
	for k, on := range s.Selection {
		if on {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Query is what a data source needs to produce the current page.
type Query struct {
	Page   int // 1-based
	Limit  int
	Sort   Sort
	Filter Filter
}

func (s State) Query() Query {
	return Query{
		Page:   s.PageIndex + 1,
		Limit:  s.PageSize,
		Sort:   s.Sort,
		Filter: s.Filter,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func boolValue(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func boolPtr(v string) *bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
