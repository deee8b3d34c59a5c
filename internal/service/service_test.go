package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-admin/internal/api"
	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/listview"
)

type fakeAPI struct {
	mu          sync.Mutex
	lists       map[string]string
	pagination  *api.Pagination
	lastParams  api.ListParams
	calls       int
	created     []any
	updated     []any
	deleteErrs  map[string]error
	deleted     []string
	invalidated []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{lists: map[string]string{}, deleteErrs: map[string]error{}}
}

func (f *fakeAPI) List(_ context.Context, resource string, p api.ListParams) (*api.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastParams = p
	return &api.Page{Data: json.RawMessage(f.lists[resource]), Pagination: f.pagination}, nil
}

func (f *fakeAPI) Get(_ context.Context, resource, id string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return json.RawMessage(fmt.Sprintf(`{"id":%q}`, id)), nil
}

func (f *fakeAPI) Create(_ context.Context, _ string, payload any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.created = append(f.created, payload)
	return json.RawMessage(`{"id":"new-1","name":"Go","slug":"go"}`), nil
}

func (f *fakeAPI) Update(_ context.Context, _ string, id string, payload any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.updated = append(f.updated, payload)
	return json.RawMessage(fmt.Sprintf(`{"id":%q}`, id)), nil
}

func (f *fakeAPI) Delete(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.deleteErrs[id]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) Invalidate(resource string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, resource)
}

func ptr[T any](v T) *T { return &v }

func TestServerPagingForwardsQuery(t *testing.T) {
	fake := newFakeAPI()
	fake.lists["posts"] = `[{"id":"p11","title":"Eleven"}]`
	fake.pagination = &api.Pagination{Page: 2, Limit: 10, Total: 11, Pages: 2}
	svc := New(fake, 2, nil)

	q := listview.Query{
		Page:  2,
		Limit: 10,
		Sort:  listview.Sort{Field: "createdAt", Desc: true},
		Filter: listview.Filter{
			Category:  ptr("design"),
			Published: ptr(false),
			Query:     "hello",
		},
	}
	res, err := svc.List(context.Background(), catalog.Posts, q)
	require.NoError(t, err)

	assert.Equal(t, 11, res.Total)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "p11", res.Rows[0].Key())

	assert.Equal(t, api.ListParams{
		Page:   2,
		Limit:  10,
		Sort:   "-createdAt",
		Search: "hello",
		Facets: map[string]string{"category": "design", "published": "false"},
	}, fake.lastParams)
}

func TestLocalPagingFiltersSortsAndSlices(t *testing.T) {
	fake := newFakeAPI()
	fake.lists["faqs"] = `[
		{"id":"1","question":"How do refunds work?","order":3,"published":true},
		{"id":"2","question":"Do you offer support?","order":1,"published":true},
		{"id":"3","question":"Refund window length","order":2,"published":false},
		{"id":"4","question":"Where are you based?","order":4,"published":true}
	]`
	svc := New(fake, 2, nil)
	ctx := context.Background()

	res, err := svc.List(ctx, catalog.FAQs, listview.Query{Page: 1, Limit: 2, Sort: listview.Sort{Field: "order"}})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, []string{"2", "3"}, listview.Keys(res.Rows))
	assert.Equal(t, api.ListParams{}, fake.lastParams, "local paging loads the whole collection")

	res, err = svc.List(ctx, catalog.FAQs, listview.Query{Page: 2, Limit: 2, Sort: listview.Sort{Field: "order", Desc: true}})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2"}, listview.Keys(res.Rows))

	res, err = svc.List(ctx, catalog.FAQs, listview.Query{Page: 1, Limit: 10, Filter: listview.Filter{Query: "refund", Published: ptr(true)}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "1", res.Rows[0].Key())

	// a page past the end is empty, not an error
	res, err = svc.List(ctx, catalog.FAQs, listview.Query{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.Equal(t, 4, res.Total)
}

func TestCollectWalksServerPages(t *testing.T) {
	fake := newFakeAPI()
	fake.lists["posts"] = `[{"id":"a"},{"id":"b"}]`
	fake.pagination = &api.Pagination{Total: 4}
	svc := New(fake, 2, nil)

	rows, err := svc.Collect(context.Background(), catalog.Posts, listview.Query{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, 2, fake.lastParams.Page)
}

func TestCreateValidatesBeforeNetwork(t *testing.T) {
	fake := newFakeAPI()
	svc := New(fake, 2, nil)

	_, err := svc.Create(context.Background(), catalog.Tags, map[string]string{"name": ""})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "slug")
	assert.Equal(t, 0, fake.calls, "an invalid form must not reach the API")
	assert.Empty(t, fake.invalidated)
}

func TestCreateInvalidates(t *testing.T) {
	fake := newFakeAPI()
	svc := New(fake, 2, nil)

	e, err := svc.Create(context.Background(), catalog.Tags, map[string]string{"name": "Go", "slug": "go"})
	require.NoError(t, err)
	assert.Equal(t, "new-1", e.Key())
	assert.Equal(t, []string{"tags"}, fake.invalidated)
	assert.Equal(t, map[string]any{"name": "Go", "slug": "go"}, fake.created[0])
}

func TestUpdateSendsOnlyChanges(t *testing.T) {
	fake := newFakeAPI()
	svc := New(fake, 2, nil)
	ctx := context.Background()

	original := map[string]string{"question": "Q", "answer": "A", "category": "billing", "order": "1", "published": "yes"}

	_, err := svc.Update(ctx, catalog.FAQs, "f1", original, original)
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.Equal(t, 0, fake.calls)

	changed := map[string]string{"question": "Q", "answer": "A", "category": "", "order": "2", "published": "yes"}
	_, err = svc.Update(ctx, catalog.FAQs, "f1", original, changed)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"category": nil, "order": 2}, fake.updated[0])
	assert.Equal(t, []string{"faqs"}, fake.invalidated)
}

func TestDeleteFailureLeavesCache(t *testing.T) {
	fake := newFakeAPI()
	fake.deleteErrs["x"] = &api.Error{Status: 404, Message: "Not found"}
	svc := New(fake, 2, nil)

	err := svc.Delete(context.Background(), catalog.Tags, "x")
	assert.True(t, api.IsNotFound(err))
	assert.Empty(t, fake.invalidated)

	require.NoError(t, svc.Delete(context.Background(), catalog.Tags, "y"))
	assert.Equal(t, []string{"tags"}, fake.invalidated)
}

func TestBulkDeleteItemizesResults(t *testing.T) {
	fake := newFakeAPI()
	fake.deleteErrs["b"] = &api.Error{Status: 403, Message: "Forbidden"}
	fake.deleteErrs["d"] = errors.New("connection reset")
	svc := New(fake, 2, nil)

	res := svc.BulkDelete(context.Background(), catalog.Posts, []string{"a", "b", "c", "d"})

	require.Len(t, res.Items, 4)
	assert.Equal(t, []string{"a", "c"}, res.Succeeded())
	assert.ElementsMatch(t, []string{"a", "c"}, fake.deleted)
	require.Len(t, res.Failed(), 2)
	assert.Equal(t, "b", res.Failed()[0].ID)
	assert.Error(t, res.Err())
	assert.Equal(t, "Deleted 2 of 4 posts; failed: b (Forbidden), d (connection reset)", res.Summary("posts"))
	assert.Equal(t, []string{"posts"}, fake.invalidated, "partial success still invalidates once")
}

func TestBulkDeleteAllFailedDoesNotInvalidate(t *testing.T) {
	fake := newFakeAPI()
	fake.deleteErrs["a"] = errors.New("boom")
	svc := New(fake, 2, nil)

	res := svc.BulkDelete(context.Background(), catalog.Tags, []string{"a"})
	assert.Empty(t, res.Succeeded())
	assert.Empty(t, fake.invalidated)

	ok := svc.BulkDelete(context.Background(), catalog.Tags, []string{"z"})
	assert.NoError(t, ok.Err())
	assert.Equal(t, "Deleted 1 tags", ok.Summary("tags"))
}

func TestFacetOptions(t *testing.T) {
	fake := newFakeAPI()
	fake.lists["categories"] = `[{"id":"c2","name":"Zeta"},{"id":"c1","name":"alpha"}]`
	svc := New(fake, 2, nil)

	opts, err := svc.FacetOptions(context.Background(), listview.FacetCategory)
	require.NoError(t, err)
	assert.Equal(t, []Option{{Value: "c1", Label: "alpha"}, {Value: "c2", Label: "Zeta"}}, opts)

	opts, err = svc.FacetOptions(context.Background(), listview.FacetPublished)
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}

func TestReloadBypassesListCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if hits.Add(1) == 1 {
			fmt.Fprint(w, `{"success":true,"data":[{"id":"p1","title":"First"}],"pagination":{"page":1,"limit":10,"total":1,"pages":1}}`)
			return
		}
		fmt.Fprint(w, `{"success":true,"data":[],"pagination":{"page":1,"limit":10,"total":0,"pages":1}}`)
	}))
	defer srv.Close()

	client, err := api.NewClient(api.Config{BaseURL: srv.URL, CacheTTL: 30 * time.Second}, nil)
	require.NoError(t, err)
	svc := New(client, 2, nil)
	ctx := context.Background()
	q := listview.Query{Page: 1, Limit: 10}

	first, err := svc.List(ctx, catalog.Posts, q)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Total)

	cached, err := svc.List(ctx, catalog.Posts, q)
	require.NoError(t, err)
	assert.Equal(t, 1, cached.Total)
	assert.Equal(t, int32(1), hits.Load())

	reloaded, err := svc.Reload(ctx, catalog.Posts, q)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Total)

	_, err = svc.Reload(ctx, catalog.Posts, q)
	require.NoError(t, err)
	assert.Equal(t, int32(3), hits.Load())
}

func TestPostChangesInvalidateCategories(t *testing.T) {
	fake := newFakeAPI()
	svc := New(fake, 2, nil)

	require.NoError(t, svc.Delete(context.Background(), catalog.Posts, "p1"))
	assert.Equal(t, []string{"posts", "categories"}, fake.invalidated)

	fake.invalidated = nil
	require.NoError(t, svc.Delete(context.Background(), catalog.Tags, "t1"))
	assert.Equal(t, []string{"tags"}, fake.invalidated)
}
