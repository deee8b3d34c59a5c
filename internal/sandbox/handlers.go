package sandbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/listview"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// server managed keys, never taken from a request body
var reserved = map[string]bool{"id": true, "createdAt": true, "updatedAt": true, "publishedAt": true, "postCount": true}

// list handles GET /{resource}. Without page or limit every match is returned
// and the pagination block is left out.
func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	res := resourceFrom(r)
	params := r.URL.Query()

	q := Query{
		Search:       params.Get("search"),
		SearchFields: searchFields(res),
		Equals:       map[string]any{},
		Contains:     map[string]string{},
	}

	paged := params.Has("page") || params.Has("limit")
	page, limit := 1, DefaultPageSize
	if v := params.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid page: "+v)
			return
		}
		page = max(n, 1)
	}
	if v := params.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid limit: "+v)
			return
		}
		limit = min(n, s.cfg.MaxPageSize)
	}
	if paged {
		q.Limit = limit
		q.Offset = (page - 1) * limit
	}

	sortBy := res.DefaultSort
	if v := params.Get("sort"); v != "" {
		sortBy = listview.ParseSort(v)
		if !sortable(res, sortBy.Field) {
			writeError(w, http.StatusBadRequest, "Invalid sort field: "+sortBy.Field)
			return
		}
	}
	q.SortField, q.Desc = sortBy.Field, sortBy.Desc

	for _, facet := range listview.AllFacets {
		v := params.Get(string(facet))
		if v == "" {
			continue
		}
		if !res.HasFacet(facet) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s cannot be filtered by %s", res.Plural, facet))
			return
		}
		switch facet {
		case listview.FacetCategory:
			q.Equals["category"] = v
		case listview.FacetTag:
			q.Contains["tags"] = v
		case listview.FacetPublished, listview.FacetFeatured:
			b, err := strconv.ParseBool(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s: %s", facet, v))
				return
			}
			q.Equals[flagField(res, facet)] = b
		}
	}

	docs, total, err := s.store.List(r.Context(), res.Name, q)
	if err != nil {
		s.logger.Error("list failed", "resource", res.Name, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to load "+res.Plural)
		return
	}

	if res == catalog.Categories {
		if docs, err = s.withPostCounts(r, docs); err != nil {
			s.logger.Error("post counts failed", "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to load "+res.Plural)
			return
		}
	}

	body := response{Success: true, Data: docs}
	if paged {
		body.Pagination = &pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: listview.PageCount(total, limit),
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) withPostCounts(r *http.Request, docs []json.RawMessage) ([]json.RawMessage, error) {
	counts, err := s.store.CountBy(r.Context(), catalog.Posts.Name, "category")
	if err != nil {
		return nil, err
	}

	out := make([]json.RawMessage, len(docs))
	for i, raw := range docs {
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		id, _ := doc["id"].(string)
		doc["postCount"] = counts[id]
		if out[i], err = json.Marshal(doc); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	res := resourceFrom(r)
	doc, ok := s.load(w, r, res)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, doc)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	res := resourceFrom(r)

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, ok := s.validate(w, res, body)
	if !ok {
		return
	}
	if !s.checkUnique(w, r, res, doc, "") {
		return
	}

	now := formatTime(s.now())
	id := uuid.NewString()
	doc["id"] = id
	doc["createdAt"] = now
	doc["updatedAt"] = now
	if res == catalog.Posts && doc["published"] == true {
		doc["publishedAt"] = now
	}

	if err := s.store.Put(r.Context(), res.Name, id, doc); err != nil {
		s.logger.Error("create failed", "resource", res.Name, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to create "+strings.ToLower(res.Singular))
		return
	}
	writeData(w, http.StatusCreated, doc)
}

// update applies a partial body. Keys sent as null are cleared.
func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	res := resourceFrom(r)
	existing, ok := s.load(w, r, res)
	if !ok {
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	merged := make(map[string]any, len(existing))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range body {
		if reserved[k] {
			continue
		}
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}

	doc, ok := s.validate(w, res, merged)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if !s.checkUnique(w, r, res, doc, id) {
		return
	}

	// keep server managed and non-form keys such as socialLinks
	for k, v := range existing {
		if _, isField := res.Schema.Field(k); !isField {
			doc[k] = v
		}
	}
	now := formatTime(s.now())
	doc["updatedAt"] = now
	if res == catalog.Posts {
		switch {
		case doc["published"] == true && existing["published"] != true:
			doc["publishedAt"] = now
		case doc["published"] != true:
			delete(doc, "publishedAt")
		}
	}

	if err := s.store.Put(r.Context(), res.Name, id, doc); err != nil {
		s.logger.Error("update failed", "resource", res.Name, "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to update "+strings.ToLower(res.Singular))
		return
	}
	writeData(w, http.StatusOK, doc)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	res := resourceFrom(r)
	id := chi.URLParam(r, "id")

	err := s.store.Delete(r.Context(), res.Name, id)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, res.Singular+" not found")
		return
	}
	if err != nil {
		s.logger.Error("delete failed", "resource", res.Name, "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete "+strings.ToLower(res.Singular))
		return
	}
	writeJSON(w, http.StatusOK, response{Success: true, Message: res.Singular + " deleted"})
}

func (s *Server) load(w http.ResponseWriter, r *http.Request, res *catalog.Resource) (map[string]any, bool) {
	id := chi.URLParam(r, "id")
	doc, err := s.store.Get(r.Context(), res.Name, id)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, res.Singular+" not found")
		return nil, false
	}
	if err != nil {
		s.logger.Error("get failed", "resource", res.Name, "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to load "+strings.ToLower(res.Singular))
		return nil, false
	}
	return doc, true
}

// validate runs a record through the resource's form schema and returns the
// typed document holding only schema fields.
func (s *Server) validate(w http.ResponseWriter, res *catalog.Resource, record map[string]any) (map[string]any, bool) {
	doc, err := res.Schema.Payload(res.Schema.Values(record))
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeValidation(w, verr)
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	for _, f := range res.Schema.Fields {
		if _, set := doc[f.Name]; set {
			continue
		}
		switch f.Kind {
		case domain.KindBool:
			doc[f.Name] = false
		case domain.KindInt:
			doc[f.Name] = 0
		}
	}
	return doc, true
}

func (s *Server) checkUnique(w http.ResponseWriter, r *http.Request, res *catalog.Resource, doc map[string]any, id string) bool {
	for _, field := range []string{"slug", "email"} {
		if _, ok := res.Schema.Field(field); !ok {
			continue
		}
		value, _ := doc[field].(string)
		if value == "" || (field == "email" && res != catalog.Users) {
			continue
		}
		taken, err := s.store.Taken(r.Context(), res.Name, field, value, id)
		if err != nil {
			s.logger.Error("uniqueness check failed", "resource", res.Name, "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to save "+strings.ToLower(res.Singular))
			return false
		}
		if taken {
			writeError(w, http.StatusConflict, fmt.Sprintf("A %s with %s %q already exists", strings.ToLower(res.Singular), field, value))
			return false
		}
	}
	return true
}

func searchFields(res *catalog.Resource) []string {
	var fields []string
	for _, f := range res.Schema.Fields {
		switch f.Kind {
		case domain.KindText, domain.KindLongText, domain.KindEmail, domain.KindList, domain.KindEnum:
			fields = append(fields, f.Name)
		}
	}
	return fields
}

func sortable(res *catalog.Resource, field string) bool {
	if field == "createdAt" || field == "updatedAt" {
		return true
	}
	_, ok := res.Schema.Field(field)
	return ok
}

// flagField maps a boolean facet onto the record key that carries it.
func flagField(res *catalog.Resource, facet listview.Facet) string {
	if facet == listview.FacetPublished {
		if _, ok := res.Schema.Field("published"); !ok {
			if _, ok := res.Schema.Field("active"); ok {
				return "active"
			}
		}
	}
	return string(facet)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
