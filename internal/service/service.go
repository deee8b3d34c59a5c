// Package service runs list and mutation operations for a catalog resource
// against the content API.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"site-admin/internal/api"
	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/listview"
)

// ErrNoChanges is returned by Update when the form matches the stored record.
var ErrNoChanges = errors.New("no changes to save")

// API is the subset of the HTTP client the service needs.
type API interface {
	List(ctx context.Context, resource string, p api.ListParams) (*api.Page, error)
	Get(ctx context.Context, resource, id string) (json.RawMessage, error)
	Create(ctx context.Context, resource string, payload any) (json.RawMessage, error)
	Update(ctx context.Context, resource, id string, payload any) (json.RawMessage, error)
	Delete(ctx context.Context, resource, id string) error
	Invalidate(resource string)
}

type Service struct {
	api             API
	bulkConcurrency int
	logger          *log.Logger
}

func New(client API, bulkConcurrency int, logger *log.Logger) *Service {
	if bulkConcurrency <= 0 {
		bulkConcurrency = 4
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		api:             client,
		bulkConcurrency: bulkConcurrency,
		logger:          logger.WithPrefix("service"),
	}
}

// Result is one page of rows plus the total the pagination is computed from.
type Result struct {
	Rows  []domain.Entity
	Total int
}

func (s *Service) List(ctx context.Context, r *catalog.Resource, q listview.Query) (*Result, error) {
	if r.Paging == catalog.LocalPaging {
		all, err := s.loadAll(ctx, r)
		if err != nil {
			return nil, err
		}
		return applyLocal(r, all, q), nil
	}

	page, err := s.api.List(ctx, r.Name, listParams(r, q))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.Name, err)
	}

	rows, err := r.DecodeList(page.Data)
	if err != nil {
		return nil, err
	}

	total := len(rows)
	if page.Pagination != nil {
		total = page.Pagination.Total
	}
	return &Result{Rows: rows, Total: total}, nil
}

// Collect walks every page matching q and returns all rows.
func (s *Service) Collect(ctx context.Context, r *catalog.Resource, q listview.Query) ([]domain.Entity, error) {
	if r.Paging == catalog.LocalPaging {
		all, err := s.loadAll(ctx, r)
		if err != nil {
			return nil, err
		}
		q.Page, q.Limit = 1, 0
		return applyLocal(r, all, q).Rows, nil
	}

	if q.Limit <= 0 {
		q.Limit = 100
	}
	var rows []domain.Entity
	for q.Page = 1; ; q.Page++ {
		res, err := s.List(ctx, r, q)
		if err != nil {
			return nil, err
		}
		rows = append(rows, res.Rows...)
		if len(res.Rows) == 0 || len(rows) >= res.Total {
			return rows, nil
		}
	}
}

func (s *Service) loadAll(ctx context.Context, r *catalog.Resource) ([]domain.Entity, error) {
	page, err := s.api.List(ctx, r.Name, api.ListParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.Name, err)
	}
	return r.DecodeList(page.Data)
}

func listParams(r *catalog.Resource, q listview.Query) api.ListParams {
	facets := make(map[string]string)
	for _, f := range r.Facets {
		if v := q.Filter.Value(f); v != "" {
			facets[string(f)] = v
		}
	}
	return api.ListParams{
		Page:   q.Page,
		Limit:  q.Limit,
		Sort:   q.Sort.Param(),
		Search: q.Filter.Query,
		Facets: facets,
	}
}

func (s *Service) Get(ctx context.Context, r *catalog.Resource, id string) (domain.Entity, error) {
	data, err := s.api.Get(ctx, r.Name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", r.Singular, id, err)
	}
	return r.Decode(data)
}

// Create validates values first; an invalid form never reaches the API.
func (s *Service) Create(ctx context.Context, r *catalog.Resource, values map[string]string) (domain.Entity, error) {
	payload, err := r.Schema.Payload(values)
	if err != nil {
		return nil, err
	}

	data, err := s.api.Create(ctx, r.Name, payload)
	if err != nil {
		s.logger.Error("create failed", "resource", r.Name, "err", err)
		return nil, err
	}
	s.Invalidate(r)

	e, err := r.Decode(data)
	if err != nil {
		return nil, err
	}
	s.logger.Info("created", "resource", r.Name, "id", e.Key())
	return e, nil
}

// Update sends only the fields that differ from original.
func (s *Service) Update(ctx context.Context, r *catalog.Resource, id string, original, values map[string]string) (domain.Entity, error) {
	payload, err := r.Schema.PatchPayload(original, values)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, ErrNoChanges
	}

	data, err := s.api.Update(ctx, r.Name, id, payload)
	if err != nil {
		s.logger.Error("update failed", "resource", r.Name, "id", id, "err", err)
		return nil, err
	}
	s.Invalidate(r)

	e, err := r.Decode(data)
	if err != nil {
		return nil, err
	}
	s.logger.Info("updated", "resource", r.Name, "id", id, "fields", len(payload))
	return e, nil
}

func (s *Service) Delete(ctx context.Context, r *catalog.Resource, id string) error {
	if err := s.api.Delete(ctx, r.Name, id); err != nil {
		s.logger.Error("delete failed", "resource", r.Name, "id", id, "err", err)
		return err
	}
	s.Invalidate(r)
	s.logger.Info("deleted", "resource", r.Name, "id", id)
	return nil
}

// Reload lists q from the API, never from cached responses.
func (s *Service) Reload(ctx context.Context, r *catalog.Resource, q listview.Query) (*Result, error) {
	s.Invalidate(r)
	return s.List(ctx, r, q)
}

// Invalidate drops cached lists for r so the next List hits the API.
// Category post counts depend on posts, so post changes drop those too.
func (s *Service) Invalidate(r *catalog.Resource) {
	s.api.Invalidate(r.Name)
	if r == catalog.Posts {
		s.api.Invalidate(catalog.Categories.Name)
	}
}

type Option struct {
	Value string
	Label string
}

// FacetOptions lists the choices a facet filter offers.
func (s *Service) FacetOptions(ctx context.Context, f listview.Facet) ([]Option, error) {
	switch f {
	case listview.FacetPublished:
		return []Option{{Value: "true", Label: "Published"}, {Value: "false", Label: "Draft"}}, nil
	case listview.FacetFeatured:
		return []Option{{Value: "true", Label: "Featured"}, {Value: "false", Label: "Not featured"}}, nil
	case listview.FacetCategory:
		return s.optionsFrom(ctx, catalog.Categories)
	case listview.FacetTag:
		return s.optionsFrom(ctx, catalog.Tags)
	}
	return nil, fmt.Errorf("unknown facet %q", f)
}

func (s *Service) optionsFrom(ctx context.Context, r *catalog.Resource) ([]Option, error) {
	rows, err := s.loadAll(ctx, r)
	if err != nil {
		return nil, err
	}
	rows = applyLocal(r, rows, listview.Query{Sort: r.DefaultSort}).Rows
	opts := make([]Option, 0, len(rows))
	for _, e := range rows {
		opts = append(opts, Option{Value: e.Key(), Label: r.Label(e)})
	}
	return opts, nil
}
