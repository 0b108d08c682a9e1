package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/category-api/internal/domain"
	"github.com/phrazzld/category-api/internal/platform/logger"
	"github.com/phrazzld/category-api/internal/service"
	"github.com/phrazzld/category-api/internal/store"
	"github.com/phrazzld/category-api/internal/store/memory"
	"github.com/phrazzld/category-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCategoryService is a service.CategoryService whose methods can be overridden per test.
type MockCategoryService struct {
	ListFn   func(ctx context.Context) ([]*domain.Category, error)
	GetFn    func(ctx context.Context, id string) (*domain.Category, error)
	CreateFn func(ctx context.Context, req domain.CategoryRequest) (service.Result, error)
	UpdateFn func(ctx context.Context, id string, req domain.CategoryRequest) (service.Result, error)
	DeleteFn func(ctx context.Context, id string) error
}

func (m *MockCategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *MockCategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, store.ErrCategoryNotFound
}

func (m *MockCategoryService) Create(ctx context.Context, req domain.CategoryRequest) (service.Result, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, req)
	}
	return service.Result{}, errors.New("not implemented")
}

func (m *MockCategoryService) Update(
	ctx context.Context,
	id string,
	req domain.CategoryRequest,
) (service.Result, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, req)
	}
	return service.Result{}, errors.New("not implemented")
}

func (m *MockCategoryService) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return errors.New("not implemented")
}

// newTestRouter mounts the category routes backed by svc.
func newTestRouter(t *testing.T, svc service.CategoryService) http.Handler {
	t.Helper()
	_, l := logger.NewTestLogger(t)
	r := chi.NewRouter()
	RegisterCategoryRoutes(r, NewCategoryHandler(svc, NewCategoryViewFactory(), l))
	return r
}

// newRealRouter mounts the category routes backed by an in-memory store.
func newRealRouter(t *testing.T) http.Handler {
	t.Helper()
	_, l := logger.NewTestLogger(t)
	v, err := validation.New(validation.DefaultRules())
	require.NoError(t, err)
	svc, err := service.NewCategoryService(memory.NewCategoryStore(l), v, nil, nil, nil, l)
	require.NoError(t, err)
	return newTestRouter(t, svc)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) CategoryView {
	t.Helper()
	var view CategoryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	return view
}

func TestCategoryRoutes_EndToEnd(t *testing.T) {
	t.Parallel()
	h := newRealRouter(t)

	w := do(t, h, http.MethodPost, "/categories", `{"name":"Tech"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	created := decodeView(t, w)
	assert.Equal(t, "Tech", created.Name)
	_, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	w = do(t, h, http.MethodGet, "/categories/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decodeView(t, w))

	w = do(t, h, http.MethodPatch, "/categories/"+created.ID, `{"name":"Technology"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, CategoryView{ID: created.ID, Name: "Technology"}, decodeView(t, w))

	w = do(t, h, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []CategoryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, []CategoryView{{ID: created.ID, Name: "Technology"}}, list)

	w = do(t, h, http.MethodDelete, "/categories/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(t, h, http.MethodGet, "/categories/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No category with id "+created.ID, w.Body.String())

	w = do(t, h, http.MethodDelete, "/categories/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryRoutes_EmptyListIsArray(t *testing.T) {
	t.Parallel()
	w := do(t, newRealRouter(t), http.MethodGet, "/categories", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCategoryRoutes_Failures(t *testing.T) {
	t.Parallel()
	unknown := uuid.NewString()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"get unknown id", http.MethodGet, "/categories/" + unknown, "", http.StatusNotFound, "No category with id " + unknown},
		{"get malformed id", http.MethodGet, "/categories/not-a-uuid", "", http.StatusBadRequest, msgMalformedID},
		{"get nil id", http.MethodGet, "/categories/" + uuid.Nil.String(), "", http.StatusBadRequest, msgMalformedID},
		{"patch unknown id", http.MethodPatch, "/categories/" + unknown, `{"name":"Tech"}`, http.StatusNotFound, msgCategoryNotFound},
		{"patch malformed id", http.MethodPatch, "/categories/123", `{"name":"Tech"}`, http.StatusBadRequest, msgMalformedID},
		{"patch malformed body", http.MethodPatch, "/categories/" + unknown, `{"name":`, http.StatusBadRequest, msgMalformedBody},
		{"delete unknown id", http.MethodDelete, "/categories/" + unknown, "", http.StatusNotFound, msgCategoryNotFound},
		{"delete malformed id", http.MethodDelete, "/categories/xyz", "", http.StatusBadRequest, msgMalformedID},
		{"post malformed body", http.MethodPost, "/categories", `not json`, http.StatusBadRequest, msgMalformedBody},
		{"post empty body", http.MethodPost, "/categories", "", http.StatusBadRequest, msgMalformedBody},
		{"post wrong type", http.MethodPost, "/categories", `{"name":42}`, http.StatusBadRequest, msgMalformedBody},
		{"post trailing data", http.MethodPost, "/categories", `{"name":"a"} {}`, http.StatusBadRequest, msgMalformedBody},
	}

	h := newRealRouter(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, h, tc.method, tc.path, tc.body)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantBody, w.Body.String())
			assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		})
	}
}

func TestCategoryRoutes_Violations(t *testing.T) {
	t.Parallel()
	h := newRealRouter(t)

	created := decodeView(t, do(t, h, http.MethodPost, "/categories", `{"name":"Tech"}`))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"post empty name", http.MethodPost, "/categories", `{"name":""}`},
		{"post blank name", http.MethodPost, "/categories", `{"name":"   "}`},
		{"post missing name", http.MethodPost, "/categories", `{}`},
		{"post null body", http.MethodPost, "/categories", `null`},
		{"patch blank name", http.MethodPatch, "/categories/" + created.ID, `{"name":" "}`},
		{"patch blank name on unknown id", http.MethodPatch, "/categories/" + uuid.NewString(), `{"name":""}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, h, tc.method, tc.path, tc.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var violations []map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &violations))
			require.NotEmpty(t, violations)
			assert.Equal(t, "name", violations[0]["field"])
			assert.NotEmpty(t, violations[0]["message"])
		})
	}

	w := do(t, h, http.MethodGet, "/categories/"+created.ID, "")
	assert.Equal(t, created, decodeView(t, w), "rejected update must not change the category")
}

func TestCategoryRoutes_ServiceErrors(t *testing.T) {
	t.Parallel()
	secret := errors.New("dial tcp 10.0.0.5:5432: password=hunter2 refused")

	svc := &MockCategoryService{
		ListFn: func(context.Context) ([]*domain.Category, error) { return nil, secret },
		GetFn:  func(context.Context, string) (*domain.Category, error) { return nil, secret },
		CreateFn: func(context.Context, domain.CategoryRequest) (service.Result, error) {
			return service.Result{}, secret
		},
		UpdateFn: func(context.Context, string, domain.CategoryRequest) (service.Result, error) {
			return service.Result{}, secret
		},
		DeleteFn: func(context.Context, string) error { return secret },
	}
	h := newTestRouter(t, svc)
	id := uuid.NewString()

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/categories", ""},
		{http.MethodGet, "/categories/" + id, ""},
		{http.MethodPost, "/categories", `{"name":"Tech"}`},
		{http.MethodPatch, "/categories/" + id, `{"name":"Tech"}`},
		{http.MethodDelete, "/categories/" + id, ""},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := do(t, h, tc.method, tc.path, tc.body)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.NotContains(t, w.Body.String(), "hunter2")
			assert.NotContains(t, w.Body.String(), "10.0.0.5")

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "An unexpected error occurred", resp["error"])
		})
	}
}

func TestCategoryHandler_PassesCanonicalID(t *testing.T) {
	t.Parallel()
	id := uuid.New()
	var got string

	svc := &MockCategoryService{
		GetFn: func(_ context.Context, s string) (*domain.Category, error) {
			got = s
			return &domain.Category{ID: id, Name: "Tech"}, nil
		},
	}

	w := do(t, newTestRouter(t, svc), http.MethodGet, "/categories/"+strings.ToUpper(id.String()), "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.String(), got)
}

func TestNewCategoryHandler_RequiresDependencies(t *testing.T) {
	t.Parallel()
	_, l := logger.NewTestLogger(t)

	assert.Panics(t, func() { NewCategoryHandler(nil, NewCategoryViewFactory(), l) })
	assert.Panics(t, func() { NewCategoryHandler(&MockCategoryService{}, NewCategoryViewFactory(), nil) })
}
