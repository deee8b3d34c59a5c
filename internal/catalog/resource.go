// Package catalog binds every content resource to its API path, form schema,
// columns and filters.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"site-admin/internal/display"
	"site-admin/internal/domain"
	"site-admin/internal/listview"
)

type PagingMode int

const (
	// the API pages, sorts and filters
	ServerPaging PagingMode = iota
	// the whole collection is loaded once and paged in memory
	LocalPaging
)

func (m PagingMode) String() string {
	if m == LocalPaging {
		return "local"
	}
	return "server"
}

type DetailRow struct {
	Label string
	Value string
}

// Spec describes a resource in terms of its concrete row type.
type Spec[T domain.Entity] struct {
	Name     string
	Singular string
	Plural   string
	Aliases  []string

	Schema      domain.Schema
	Columns     []listview.Column[T]
	Facets      []listview.Facet
	Paging      PagingMode
	DefaultSort listview.Sort

	Label func(T) string
	Extra func(T) []DetailRow
}

// Resource is a Spec with its row type erased to domain.Entity.
type Resource struct {
	Name     string
	Singular string
	Plural   string
	Aliases  []string

	Schema      domain.Schema
	Columns     []listview.Column[domain.Entity]
	Facets      []listview.Facet
	Paging      PagingMode
	DefaultSort listview.Sort

	decodeOne  func(json.RawMessage) (domain.Entity, error)
	decodeList func(json.RawMessage) ([]domain.Entity, error)
	label      func(domain.Entity) string
	extra      func(domain.Entity) []DetailRow
}

func Bind[T domain.Entity](s Spec[T]) *Resource {
	conv := func(e domain.Entity) (T, bool) {
		v, ok := e.(T)
		return v, ok
	}

	r := &Resource{
		Name:        s.Name,
		Singular:    s.Singular,
		Plural:      s.Plural,
		Aliases:     s.Aliases,
		Schema:      s.Schema,
		Columns:     listview.Erase(s.Columns, conv),
		Facets:      s.Facets,
		Paging:      s.Paging,
		DefaultSort: s.DefaultSort,
		decodeOne: func(raw json.RawMessage) (domain.Entity, error) {
			var v T
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, err
			}
			return v, nil
		},
		decodeList: func(raw json.RawMessage) ([]domain.Entity, error) {
			var items []T
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, err
			}
			out := make([]domain.Entity, len(items))
			for i, v := range items {
				out[i] = v
			}
			return out, nil
		},
	}

	if s.Label != nil {
		r.label = func(e domain.Entity) string {
			if v, ok := conv(e); ok {
				return s.Label(v)
			}
			return e.Key()
		}
	}
	if s.Extra != nil {
		r.extra = func(e domain.Entity) []DetailRow {
			if v, ok := conv(e); ok {
				return s.Extra(v)
			}
			return nil
		}
	}
	return r
}

func (r *Resource) Decode(raw json.RawMessage) (domain.Entity, error) {
	e, err := r.decodeOne(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.Singular, err)
	}
	return e, nil
}

func (r *Resource) DecodeList(raw json.RawMessage) ([]domain.Entity, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []domain.Entity{}, nil
	}
	items, err := r.decodeList(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.Plural, err)
	}
	return items, nil
}

// Label is the human name of one record, e.g. a post's title.
func (r *Resource) Label(e domain.Entity) string {
	if r.label != nil {
		if l := r.label(e); l != "" {
			return l
		}
	}
	return e.Key()
}

func (r *Resource) HasFacet(f listview.Facet) bool {
	for _, x := range r.Facets {
		if x == f {
			return true
		}
	}
	return false
}

// Values are the form values of an existing record.
func (r *Resource) Values(e domain.Entity) (map[string]string, error) {
	return r.Schema.ValuesOf(e)
}

// SearchText is what the local fuzzy filter matches against.
func (r *Resource) SearchText(e domain.Entity) string {
	values, err := r.Values(e)
	if err != nil {
		return r.Label(e)
	}
	var parts []string
	for _, f := range r.Schema.Fields {
		switch f.Kind {
		case domain.KindText, domain.KindLongText, domain.KindEmail, domain.KindList, domain.KindEnum:
			if v := values[f.Name]; v != "" {
				parts = append(parts, v)
			}
		}
	}
	return strings.Join(parts, " ")
}

// Detail lists every form field followed by resource specific rows and timestamps.
func (r *Resource) Detail(e domain.Entity) []DetailRow {
	rows := []DetailRow{{Label: "ID", Value: e.Key()}}

	values, _ := r.Values(e)
	for _, f := range r.Schema.Fields {
		v := values[f.Name]
		if v == "" {
			v = "-"
		} else if f.Kind == domain.KindIcon {
			v = display.IconLabel(domain.Icon(v))
		}
		rows = append(rows, DetailRow{Label: f.Label, Value: v})
	}

	if r.extra != nil {
		rows = append(rows, r.extra(e)...)
	}

	if s, ok := e.(domain.Stamped); ok {
		ts := s.Times()
		rows = append(rows,
			DetailRow{Label: "Created", Value: display.FormatDateTime(&ts.CreatedAt)},
			DetailRow{Label: "Updated", Value: display.FormatDateTime(&ts.UpdatedAt)},
		)
	}
	return rows
}
