package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/", Token: "secret", CacheTTL: time.Minute}, nil)
	require.NoError(t, err)
	return c
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "ftp://example.com"} {
		_, err := NewClient(Config{BaseURL: raw}, nil)
		assert.Error(t, err, raw)
	}
}

func TestListSendsQueryAndHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "-createdAt", r.URL.Query().Get("sort"))
		assert.Equal(t, "go", r.URL.Query().Get("search"))
		assert.Equal(t, "true", r.URL.Query().Get("published"))
		assert.False(t, r.URL.Query().Has("category"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(requestIDHeader))

		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"p1"}],"pagination":{"page":2,"limit":10,"total":11,"pages":2}}`))
	})

	page, err := c.List(t.Context(), "posts", ListParams{
		Page:   2,
		Limit:  10,
		Sort:   "-createdAt",
		Search: "go",
		Facets: map[string]string{"published": "true", "category": ""},
	})
	require.NoError(t, err)
	require.NotNil(t, page.Pagination)
	assert.Equal(t, 11, page.Pagination.Total)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(page.Data))
}

func TestListIsCachedUntilInvalidated(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})

	for i := 0; i < 3; i++ {
		_, err := c.List(t.Context(), "tags", ListParams{})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())

	c.Invalidate("tags")
	_, err := c.List(t.Context(), "tags", ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestErrorCarriesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"Slug already exists"}`))
	})

	_, err := c.Create(t.Context(), "posts", map[string]any{"title": "x"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Slug already exists", apiErr.Error())
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestSuccessFalseIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"nope"}`))
	})
	err := c.Delete(t.Context(), "faqs", "1")
	assert.EqualError(t, err, "nope")
}

func TestNonJSONErrorFallsBackToStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html>gateway</html>", http.StatusBadGateway)
	})
	_, err := c.Get(t.Context(), "posts", "p1")
	assert.EqualError(t, err, "Bad Gateway")
	assert.False(t, IsNotFound(err))
}

func TestUpdateSendsPartialPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/faqs/a%2Fb", r.URL.EscapedPath())
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"answer": nil}, body)

		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"a/b"}}`))
	})

	data, err := c.Update(t.Context(), "faqs", "a/b", map[string]any{"answer": nil})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a/b"}`, string(data))
}

func TestDeleteNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	assert.NoError(t, c.Delete(t.Context(), "tags", "t1"))
}

func TestIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Post not found"}`))
	})
	_, err := c.Get(t.Context(), "posts", "missing")
	assert.True(t, IsNotFound(err))
}
