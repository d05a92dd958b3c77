package content

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecontent/internal/backend"
	"sitecontent/internal/contract"
	"sitecontent/internal/i18n"
	"sitecontent/internal/mock"
	"sitecontent/internal/models"
	"sitecontent/internal/tenant"
)

// fakeBackend records queries and answers with the configured functions.
// A nil function fails with a 503.
type fakeBackend struct {
	mu    sync.Mutex
	lists []backend.ListQuery
	gets  []backend.GetQuery
	list  func(backend.ListQuery) (*backend.Envelope, error)
	get   func(backend.GetQuery) (*backend.Detail, error)
}

func (f *fakeBackend) List(_ context.Context, q backend.ListQuery) (*backend.Envelope, error) {
	f.mu.Lock()
	f.lists = append(f.lists, q)
	f.mu.Unlock()
	if f.list == nil {
		return nil, &backend.APIError{Status: 503}
	}
	return f.list(q)
}

func (f *fakeBackend) Get(_ context.Context, q backend.GetQuery) (*backend.Detail, error) {
	f.mu.Lock()
	f.gets = append(f.gets, q)
	f.mu.Unlock()
	if f.get == nil {
		return nil, &backend.APIError{Status: 503}
	}
	return f.get(q)
}

func newService(t *testing.T, resource models.Resource, be backend.Backend, withMocks bool) *Service {
	t.Helper()
	cfg := Config{
		Resource:   resource,
		Route:      "/" + resource.Endpoint(),
		Collection: resource.Collection(),
		Backend:    be,
	}
	if withMocks {
		set, ok := mock.NewDataset().Set(resource)
		require.True(t, ok)
		cfg.Mocks = set
	}
	svc, err := NewService(cfg)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresBackend(t *testing.T) {
	_, err := NewService(Config{Resource: models.ResourceBlog})
	assert.Error(t, err)
}

// TestListFallsBackToMockData covers blog posts page 2, limit 5 with an
// unreachable backend: 18 English posts make four pages.
func TestListFallsBackToMockData(t *testing.T) {
	svc := newService(t, models.ResourceBlog, &fakeBackend{}, true)

	page, err := svc.List(context.Background(), ListParams{Page: 2, Limit: 5, Language: i18n.English})
	require.NoError(t, err)

	assert.Len(t, page.Items, 5)
	assert.Equal(t, 4, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 18, page.TotalItems)
	assert.Equal(t, models.SourceMock, page.Source)
	assert.Equal(t, "6", page.Items[0].Item.ID)
	for _, doc := range page.Items {
		assert.True(t, doc.Trusted)
		assert.Equal(t, i18n.English, doc.Item.Language)
	}
}

func TestListFallbackFiltersByLanguage(t *testing.T) {
	tests := []struct {
		name       string
		lang       i18n.Language
		limit      int
		wantTotal  int
		wantPages  int
		wantLength int
	}{
		{name: "spanish posts", lang: i18n.Spanish, limit: 5, wantTotal: 17, wantPages: 4, wantLength: 5},
		{name: "unset language is english", lang: "", limit: 10, wantTotal: 18, wantPages: 2, wantLength: 10},
		{name: "unknown language is english", lang: "fr", limit: 20, wantTotal: 18, wantPages: 1, wantLength: 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, models.ResourceBlog, &fakeBackend{}, true)
			page, err := svc.List(context.Background(), ListParams{Limit: tt.limit, Language: tt.lang})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, page.TotalItems)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Len(t, page.Items, tt.wantLength)
		})
	}
}

func TestListFallbackIncludesUntaggedItemsForDefaultLanguage(t *testing.T) {
	set := mock.Static(models.ResourceBlog,
		models.Item{ID: "1", Title: "t", Body: "b", Date: "2024-01-01"},
		models.Item{ID: "2", Title: "t", Body: "b", Date: "2024-01-01", Language: i18n.English},
		models.Item{ID: "3", Title: "t", Body: "b", Date: "2024-01-01", Language: i18n.Portuguese},
	)
	svc, err := NewService(Config{Resource: models.ResourceBlog, Route: "/posts", Backend: &fakeBackend{}, Mocks: set})
	require.NoError(t, err)

	page, err := svc.List(context.Background(), ListParams{Language: i18n.English})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)

	page, err = svc.List(context.Background(), ListParams{Language: i18n.Portuguese})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)
}

// TestPaginationInvariant checks the page length and current page bounds
// over every page and limit of the mock fallback path.
func TestPaginationInvariant(t *testing.T) {
	svc := newService(t, models.ResourceProjects, &fakeBackend{}, true)
	ctx := context.Background()

	for _, lang := range i18n.Supported() {
		for limit := 1; limit <= 15; limit++ {
			for page := 1; page <= 14; page++ {
				got, err := svc.List(ctx, ListParams{Page: page, Limit: limit, Language: lang})
				require.NoError(t, err)

				want := min(limit, got.TotalItems-(page-1)*limit)
				want = max(want, 0)
				require.Len(t, got.Items, want, "lang=%s page=%d limit=%d", lang, page, limit)
				require.Equal(t, models.TotalPages(got.TotalItems, limit), got.TotalPages)
				require.GreaterOrEqual(t, got.CurrentPage, 1)
				require.LessOrEqual(t, got.CurrentPage, max(got.TotalPages, 1))
			}
		}
	}
}

func TestListEmptyMockSet(t *testing.T) {
	svc, err := NewService(Config{Resource: models.ResourceBlog, Backend: &fakeBackend{}, Mocks: mock.Static(models.ResourceBlog)})
	require.NoError(t, err)
	page, err := svc.List(context.Background(), ListParams{Page: 3})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestListWithoutMocksReturnsOriginalError(t *testing.T) {
	svc := newService(t, models.ResourceBlog, &fakeBackend{}, false)
	_, err := svc.List(context.Background(), ListParams{})

	var apiErr *backend.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "API error: 503", err.Error())
}

func TestListFromBackend(t *testing.T) {
	be := &fakeBackend{list: func(q backend.ListQuery) (*backend.Envelope, error) {
		return &backend.Envelope{
			Items: []json.RawMessage{
				json.RawMessage(`{"id":"1","title":"a","body":"b","date":"2024-01-01"}`),
				json.RawMessage(`{"id":"2","title":"c","body":"d","date":"2024-01-02"}`),
				json.RawMessage(`{"id":"3","title":"e","body":"f","date":"2024-01-03"}`),
			},
			TotalPages:  7,
			CurrentPage: 9,
			TotalItems:  20,
		}, nil
	}}
	svc := newService(t, models.ResourceBlog, be, true)

	page, err := svc.List(context.Background(), ListParams{Tenant: "acme", Page: 2, Limit: 2, Language: i18n.Portuguese})
	require.NoError(t, err)

	assert.Equal(t, models.SourceBackend, page.Source)
	assert.Len(t, page.Items, 2, "items are capped at the limit")
	assert.Equal(t, 20, page.TotalItems)
	assert.Equal(t, 7, page.TotalPages)
	assert.Equal(t, 7, page.CurrentPage, "current page is clamped")

	require.Len(t, be.lists, 1)
	q := be.lists[0]
	assert.Equal(t, "posts", q.Route)
	assert.Equal(t, "posts", q.Collection)
	assert.Equal(t, "acme", q.Tenant)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 2, q.Limit)
	assert.Equal(t, i18n.Portuguese, q.Language)
}

// TestListKeepsInvalidItems checks that an item missing a required field
// is served unmodified instead of being dropped.
func TestListKeepsInvalidItems(t *testing.T) {
	bad := `{"id":"2","body":"no title here","date":"2024-01-01","extra":true}`
	be := &fakeBackend{list: func(backend.ListQuery) (*backend.Envelope, error) {
		return &backend.Envelope{
			Items: []json.RawMessage{
				json.RawMessage(`{"id":"1","title":"a","body":"b","date":"2024-01-01"}`),
				json.RawMessage(bad),
			},
			TotalPages: 1, CurrentPage: 1, TotalItems: 2,
		}, nil
	}}
	svc := newService(t, models.ResourceBlog, be, true)

	page, err := svc.List(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.Items[0].Trusted)
	assert.False(t, page.Items[1].Trusted)
	assert.NotEmpty(t, page.Items[1].Issues)

	encoded, err := json.Marshal(page.Items[1])
	require.NoError(t, err)
	assert.JSONEq(t, bad, string(encoded))
}

func TestListCancelledSkipsFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	be := &fakeBackend{list: func(backend.ListQuery) (*backend.Envelope, error) {
		cancel()
		return nil, context.Canceled
	}}
	svc := newService(t, models.ResourceBlog, be, true)

	_, err := svc.List(ctx, ListParams{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTenantPrecedence(t *testing.T) {
	resolver := tenant.NewResolver(true, true, "demo")
	tests := []struct {
		name     string
		ctx      context.Context
		explicit string
		want     string
	}{
		{name: "explicit wins", ctx: tenant.WithTenant(context.Background(), "ctx"), explicit: "acme", want: "acme"},
		{name: "context next", ctx: tenant.WithTenant(context.Background(), "ctx"), want: "ctx"},
		{name: "resolver default", ctx: context.Background(), want: "demo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := &fakeBackend{}
			svc, err := NewService(Config{Resource: models.ResourceBlog, Backend: be, Tenants: resolver})
			require.NoError(t, err)
			_, _ = svc.List(tt.ctx, ListParams{Tenant: tt.explicit})
			require.Len(t, be.lists, 1)
			assert.Equal(t, tt.want, be.lists[0].Tenant)
		})
	}
}

func TestTenantDefaultsWhenMultiTenancyDisabled(t *testing.T) {
	be := &fakeBackend{}
	svc, err := NewService(Config{Resource: models.ResourceBlog, Backend: be})
	require.NoError(t, err)
	_, _ = svc.ByID(context.Background(), ByIDParams{ID: "1"})
	require.Len(t, be.gets, 1)
	assert.Equal(t, tenant.Default, be.gets[0].Tenant)
}

func TestByIDRequiresID(t *testing.T) {
	be := &fakeBackend{}
	svc := newService(t, models.ResourceBlog, be, true)

	for _, id := range []string{"", "   "} {
		_, err := svc.ByID(context.Background(), ByIDParams{ID: id, Language: i18n.Spanish})
		assert.ErrorIs(t, err, ErrIDRequired)
		assert.Equal(t, "ID is required", err.Error())
	}
	assert.Empty(t, be.gets, "a missing id never reaches the backend")
}

// TestByIDFallsBackToDefaultLanguage covers project "2", which only exists
// in English and Spanish, requested in Portuguese.
func TestByIDFallsBackToDefaultLanguage(t *testing.T) {
	svc := newService(t, models.ResourceProjects, &fakeBackend{}, true)

	res, err := svc.ByID(context.Background(), ByIDParams{ID: "2", Language: i18n.Portuguese})
	require.NoError(t, err)
	assert.Equal(t, i18n.English, res.LangUsed)
	assert.Equal(t, i18n.English, res.Document.Item.Language)
	assert.Equal(t, models.SourceMock, res.Source)
	assert.NotEqual(t, i18n.Portuguese, res.LangUsed)
}

func TestByIDMockLookup(t *testing.T) {
	tests := []struct {
		name     string
		resource models.Resource
		id       string
		lang     i18n.Language
		wantLang i18n.Language
		wantErr  bool
	}{
		{name: "exact spanish", resource: models.ResourceProjects, id: "2", lang: i18n.Spanish, wantLang: i18n.Spanish},
		{name: "english only post requested in spanish", resource: models.ResourceBlog, id: "18", lang: i18n.Spanish, wantLang: i18n.English},
		{name: "unset language takes the first variant", resource: models.ResourceBlog, id: "4", wantLang: i18n.English},
		{name: "unknown id", resource: models.ResourceBlog, id: "99", lang: i18n.Spanish, wantErr: true},
		{name: "unknown id in default language", resource: models.ResourceBlog, id: "99", lang: i18n.English, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, tt.resource, &fakeBackend{}, true)
			res, err := svc.ByID(context.Background(), ByIDParams{ID: tt.id, Language: tt.lang})
			if tt.wantErr {
				var apiErr *backend.APIError
				assert.True(t, errors.As(err, &apiErr), "original error is returned")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLang, res.LangUsed)
			assert.Equal(t, tt.id, res.Document.Item.ID)
		})
	}
}

func TestByIDFromBackend(t *testing.T) {
	tests := []struct {
		name     string
		detail   backend.Detail
		lang     i18n.Language
		wantLang i18n.Language
		trusted  bool
	}{
		{
			name:     "backend reports language",
			detail:   backend.Detail{Item: json.RawMessage(`{"id":"5","title":"t","body":"b","category":"web","language":"en"}`), LangUsed: i18n.English},
			lang:     i18n.Spanish,
			wantLang: i18n.English,
			trusted:  true,
		},
		{
			name:     "language read from item",
			detail:   backend.Detail{Item: json.RawMessage(`{"id":"5","title":"t","body":"b","category":"web","language":"pt"}`)},
			wantLang: i18n.Portuguese,
			trusted:  true,
		},
		{
			name:     "invalid item served raw",
			detail:   backend.Detail{Item: json.RawMessage(`{"id":"5","body":"b"}`)},
			lang:     i18n.Spanish,
			wantLang: i18n.Spanish,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := &fakeBackend{get: func(backend.GetQuery) (*backend.Detail, error) {
				d := tt.detail
				return &d, nil
			}}
			svc := newService(t, models.ResourceProjects, be, true)

			res, err := svc.ByID(context.Background(), ByIDParams{ID: "5", Language: tt.lang})
			require.NoError(t, err)
			assert.Equal(t, tt.wantLang, res.LangUsed)
			assert.Equal(t, tt.trusted, res.Document.Trusted)
			assert.Equal(t, models.SourceBackend, res.Source)

			require.Len(t, be.gets, 1)
			assert.Equal(t, "projects", be.gets[0].Route)
			assert.Equal(t, tt.lang, be.gets[0].Language)
		})
	}
}

func TestByIDWithoutMocksReturnsOriginalError(t *testing.T) {
	be := &fakeBackend{get: func(backend.GetQuery) (*backend.Detail, error) {
		return nil, backend.ErrNotFound
	}}
	svc := newService(t, models.ResourceBlog, be, false)
	_, err := svc.ByID(context.Background(), ByIDParams{ID: "1"})
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

// TestServiceOverMockBackend runs the service against the REST client
// talking to the mock backend in-process.
func TestServiceOverMockBackend(t *testing.T) {
	ds := mock.NewDataset()
	rest, err := backend.NewREST("http://mock.local/api",
		backend.WithHTTPClient(contract.NewClient(apiHandler(ds), time.Second)))
	require.NoError(t, err)

	svc, err := NewService(Config{Resource: models.ResourceProjects, Route: "/projects", Collection: "projects", Backend: rest})
	require.NoError(t, err)

	page, err := svc.List(context.Background(), ListParams{Page: 2, Limit: 5, Language: i18n.Portuguese})
	require.NoError(t, err)
	assert.Equal(t, models.SourceBackend, page.Source)
	assert.Equal(t, 11, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 5)

	res, err := svc.ByID(context.Background(), ByIDParams{ID: "2", Language: i18n.Portuguese})
	require.NoError(t, err)
	assert.Equal(t, i18n.English, res.LangUsed)
	assert.True(t, res.Document.Trusted)
}
