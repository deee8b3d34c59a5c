// Package query pulls facet filters out of free search text, so a search
// like "tag:go is:draft launch" narrows by facet and searches for "launch".
package query

import (
	"fmt"
	"regexp"
	"strings"

	"site-admin/internal/domain"
	"site-admin/internal/listview"
)

// Filter is one facet token found in a search.
type Filter struct {
	Facet listview.Facet
	Value string
}

func (f Filter) String() string {
	return string(f.Facet) + ":" + f.Value
}

type Search struct {
	Text    string // search text with facet tokens removed
	Filters []Filter
}

// Value returns the last value given for a facet.
func (s Search) Value(f listview.Facet) (string, bool) {
	for i := len(s.Filters) - 1; i >= 0; i-- {
		if s.Filters[i].Facet == f {
			return s.Filters[i].Value, true
		}
	}
	return "", false
}

func (s Search) HasFilters() bool {
	return len(s.Filters) > 0
}

var (
	// field:value, field:"quoted value", #tag
	tokenRegex = regexp.MustCompile(`(?:^|\s)(?:([a-zA-Z]+):(?:"([^"]*)"|(\S+))|#([\w-]+))`)

	fieldAliases = map[string]listview.Facet{
		"category":  listview.FacetCategory,
		"cat":       listview.FacetCategory,
		"tag":       listview.FacetTag,
		"published": listview.FacetPublished,
		"featured":  listview.FacetFeatured,
	}
)

// Parse splits input into facet filters and the remaining search text.
// Words that merely contain a colon, like "10:30", stay in the text.
func Parse(input string) (Search, error) {
	var (
		s    Search
		errs []string
	)

	text := tokenRegex.ReplaceAllStringFunc(input, func(match string) string {
		m := tokenRegex.FindStringSubmatch(match)
		field, quoted, bare, hashTag := strings.ToLower(m[1]), m[2], m[3], m[4]

		if hashTag != "" {
			s.Filters = append(s.Filters, Filter{Facet: listview.FacetTag, Value: hashTag})
			return " "
		}

		value := bare
		if quoted != "" {
			value = quoted
		}

		if field == "is" {
			f, ok := stateFilter(value)
			if !ok {
				errs = append(errs, fmt.Sprintf("unknown state '%s' (use published, draft or featured)", value))
				return " "
			}
			s.Filters = append(s.Filters, f)
			return " "
		}

		facet, ok := fieldAliases[field]
		if !ok {
			return match
		}
		if facet == listview.FacetPublished || facet == listview.FacetFeatured {
			b, ok := domain.ParseBool(value)
			if !ok {
				errs = append(errs, fmt.Sprintf("%s must be true or false, got '%s'", facet, value))
				return " "
			}
			value = fmt.Sprint(b)
		}
		if value == "" {
			errs = append(errs, fmt.Sprintf("%s needs a value", facet))
			return " "
		}
		s.Filters = append(s.Filters, Filter{Facet: facet, Value: value})
		return " "
	})

	s.Text = strings.Join(strings.Fields(text), " ")
	if len(errs) > 0 {
		return s, fmt.Errorf("invalid search: %s", strings.Join(errs, "; "))
	}
	return s, nil
}

func stateFilter(v string) (Filter, bool) {
	switch strings.ToLower(v) {
	case "published", "live":
		return Filter{Facet: listview.FacetPublished, Value: "true"}, true
	case "draft", "drafts", "unpublished":
		return Filter{Facet: listview.FacetPublished, Value: "false"}, true
	case "featured":
		return Filter{Facet: listview.FacetFeatured, Value: "true"}, true
	}
	return Filter{}, false
}
