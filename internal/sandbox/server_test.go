package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-admin/internal/api"
	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/listview"
	"site-admin/internal/service"
)

var seedTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func setupServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()

	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = Seed(context.Background(), store, SeedOptions{Now: seedTime})
	require.NoError(t, err)

	ts := httptest.NewServer(NewServer(store, cfg, nil).Router())
	t.Cleanup(ts.Close)
	return ts
}

type listBody struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       []json.RawMessage `json:"data"`
	Pagination *pagination       `json:"pagination"`
	Errors     map[string]string `json:"errors"`
}

func getJSON(t *testing.T, url string) (int, listBody) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body listBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestListPaginates(t *testing.T) {
	ts := setupServer(t, Config{})

	status, body := getJSON(t, ts.URL+"/posts?page=3&limit=10")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 4)
	assert.Equal(t, &pagination{Page: 3, Limit: 10, Total: 24, Pages: 3}, body.Pagination)

	// without page or limit the whole collection comes back unpaged
	_, body = getJSON(t, ts.URL+"/posts")
	assert.Len(t, body.Data, 24)
	assert.Nil(t, body.Pagination)

	_, body = getJSON(t, ts.URL+"/posts?limit=500")
	assert.Equal(t, MaxPageSize, body.Pagination.Limit)
}

func TestListSortsNewestFirst(t *testing.T) {
	ts := setupServer(t, Config{})

	_, body := getJSON(t, ts.URL+"/posts?page=1&limit=2&sort=-createdAt")
	require.Len(t, body.Data, 2)

	var first, second domain.Post
	require.NoError(t, json.Unmarshal(body.Data[0], &first))
	require.NoError(t, json.Unmarshal(body.Data[1], &second))
	assert.True(t, first.CreatedAt.After(second.CreatedAt))
	assert.Equal(t, "Retrospective: Q3 launches, part 2", first.Title)

	status, body := getJSON(t, ts.URL+"/posts?sort=password")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid sort field: password", body.Message)
}

func TestListFacetsAndSearch(t *testing.T) {
	ts := setupServer(t, Config{})

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"drafts", "/posts?published=false", 8},
		{"featured", "/posts?featured=true", 5},
		{"tag", "/posts?tag=" + seedID("tags", "go"), 8},
		{"category", "/posts?category=" + seedID("categories", "Design"), 6},
		{"search", "/posts?search=HIRING", 2},
		{"search and facet", "/posts?search=hiring&published=true", 2},
		{"hero active", "/hero?published=true", 2},
		{"like wildcards are literal", "/posts?search=%25", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := getJSON(t, ts.URL+tt.query)
			require.Equal(t, http.StatusOK, status, body.Message)
			assert.Len(t, body.Data, tt.want)
		})
	}
}

func TestListRejectsUnsupportedFacet(t *testing.T) {
	ts := setupServer(t, Config{})

	status, body := getJSON(t, ts.URL+"/tags?featured=true")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Tags cannot be filtered by featured", body.Message)

	status, body = getJSON(t, ts.URL+"/posts?published=maybe")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid published: maybe", body.Message)

	status, body = getJSON(t, ts.URL+"/widgets")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Unknown resource: widgets", body.Message)
}

func TestCategoriesCarryPostCounts(t *testing.T) {
	ts := setupServer(t, Config{})

	_, body := getJSON(t, ts.URL+"/categories")
	require.Len(t, body.Data, 4)

	total := 0
	for _, raw := range body.Data {
		var c domain.Category
		require.NoError(t, json.Unmarshal(raw, &c))
		total += c.PostCount
	}
	assert.Equal(t, 24, total)
}

func TestCreateValidates(t *testing.T) {
	ts := setupServer(t, Config{})

	resp, err := http.Post(ts.URL+"/tags", "application/json", bytes.NewBufferString(`{"name":""}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body listBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Errors, "name")
	assert.Contains(t, body.Errors, "slug")
}

func TestRequiresToken(t *testing.T) {
	ts := setupServer(t, Config{Token: "secret"})

	status, body := getJSON(t, ts.URL+"/tags")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", body.Message)

	status, _ = getJSON(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, status)

	client, err := api.NewClient(api.Config{BaseURL: ts.URL, Token: "secret"}, nil)
	require.NoError(t, err)
	page, err := client.List(t.Context(), "tags", api.ListParams{})
	require.NoError(t, err)
	assert.NotEmpty(t, page.Data)
}

func newService(t *testing.T, ts *httptest.Server) *service.Service {
	t.Helper()
	client, err := api.NewClient(api.Config{BaseURL: ts.URL, CacheTTL: time.Minute}, nil)
	require.NoError(t, err)
	return service.New(client, 4, nil)
}

func TestServiceAgainstSandbox(t *testing.T) {
	ts := setupServer(t, Config{})
	svc := newService(t, ts)
	ctx := t.Context()

	published := true
	res, err := svc.List(ctx, catalog.Posts, listview.Query{
		Page:   2,
		Limit:  10,
		Sort:   listview.Sort{Field: "createdAt", Desc: true},
		Filter: listview.Filter{Published: &published},
	})
	require.NoError(t, err)
	assert.Equal(t, 16, res.Total)
	assert.Len(t, res.Rows, 6)

	faqs, err := svc.List(ctx, catalog.FAQs, listview.Query{Page: 1, Limit: 10, Filter: listview.Filter{Query: "refund"}})
	require.NoError(t, err)
	assert.Equal(t, 1, faqs.Total)

	created, err := svc.Create(ctx, catalog.Tags, map[string]string{"name": "Security", "slug": "security"})
	require.NoError(t, err)
	tag := created.(domain.Tag)
	assert.Equal(t, "Security", tag.Name)
	assert.False(t, tag.CreatedAt.IsZero())

	// the cached tag list was invalidated by the create
	tags, err := svc.List(ctx, catalog.Tags, listview.Query{Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 7, tags.Total)

	_, err = svc.Create(ctx, catalog.Tags, map[string]string{"name": "Security again", "slug": "security"})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, `A tag with slug "security" already exists`, apiErr.Error())

	original, err := catalog.Tags.Values(tag)
	require.NoError(t, err)
	changed := map[string]string{"name": "SecOps", "slug": "security"}
	updated, err := svc.Update(ctx, catalog.Tags, tag.ID, original, changed)
	require.NoError(t, err)
	assert.Equal(t, "SecOps", updated.(domain.Tag).Name)
}

func TestUpdateClearsAndKeepsExtras(t *testing.T) {
	ts := setupServer(t, Config{})
	svc := newService(t, ts)
	ctx := t.Context()

	id := seedID("team", "Avery Quinn")
	e, err := svc.Get(ctx, catalog.Team, id)
	require.NoError(t, err)
	member := e.(domain.TeamMember)
	require.NotEmpty(t, member.Bio)

	original, err := catalog.Team.Values(member)
	require.NoError(t, err)
	changed := make(map[string]string, len(original))
	for k, v := range original {
		changed[k] = v
	}
	changed["bio"] = ""

	e, err = svc.Update(ctx, catalog.Team, id, original, changed)
	require.NoError(t, err)
	member = e.(domain.TeamMember)
	assert.Empty(t, member.Bio)
	assert.Len(t, member.SocialLinks, 2, "links are not form fields and survive an update")
}

func TestBulkDeleteAgainstSandbox(t *testing.T) {
	ts := setupServer(t, Config{})
	svc := newService(t, ts)
	ctx := t.Context()

	ids := []string{seedID("faqs", "How do refunds work?"), "missing", seedID("faqs", "Do you offer ongoing support?")}
	result := svc.BulkDelete(ctx, catalog.FAQs, ids)

	assert.Equal(t, []string{ids[0], ids[2]}, result.Succeeded())
	require.Len(t, result.Failed(), 1)
	assert.True(t, api.IsNotFound(result.Failed()[0].Err))
	assert.Equal(t, "Deleted 2 of 3 FAQs; failed: missing (FAQ not found)", result.Summary("FAQs"))

	_, err := svc.Get(ctx, catalog.FAQs, ids[0])
	assert.True(t, api.IsNotFound(err))

	left, err := svc.List(ctx, catalog.FAQs, listview.Query{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, left.Total)
}
