package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/interfaces/http/dto"
	"github.com/shop/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createWidget struct {
	Name  string           `json:"name" binding:"required,max=20"`
	Price *decimal.Decimal `json:"price"`
}

type updateWidget struct {
	Name *string `json:"name" binding:"omitempty,max=20"`
}

type widget struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Archived bool      `json:"archived"`
}

type widgetStore struct {
	mu      sync.Mutex
	items   map[uuid.UUID]*widget
	filters []shared.Filter
}

func newWidgetStore() *widgetStore {
	return &widgetStore{items: map[uuid.UUID]*widget{}}
}

func (s *widgetStore) List(_ context.Context, filter shared.Filter) ([]widget, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = append(s.filters, filter)
	out := make([]widget, 0, len(s.items))
	for _, w := range s.items {
		out = append(out, *w)
	}
	return out, int64(len(out)), nil
}

func (s *widgetStore) Get(_ context.Context, id uuid.UUID) (*widget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (s *widgetStore) Create(_ context.Context, req createWidget) (*widget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.items {
		if w.Name == req.Name {
			return nil, shared.NewConstraintError(catalog.CodeDuplicateName, "Name already in use", "widget_name_unique")
		}
	}
	w := &widget{ID: uuid.New(), Name: req.Name}
	s.items[w.ID] = w
	cp := *w
	return &cp, nil
}

func (s *widgetStore) Update(ctx context.Context, id uuid.UUID, req updateWidget) (*widget, error) {
	s.mu.Lock()
	w, ok := s.items[id]
	if ok && req.Name != nil {
		w.Name = *req.Name
	}
	s.mu.Unlock()
	if !ok {
		return nil, shared.ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *widgetStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *widgetStore) archive(ctx context.Context, id uuid.UUID) (*widget, error) {
	s.mu.Lock()
	w, ok := s.items[id]
	if ok {
		w.Archived = true
	}
	s.mu.Unlock()
	if !ok {
		return nil, shared.ErrNotFound
	}
	return s.Get(ctx, id)
}

func newTestSite(t *testing.T) (*gin.Engine, *widgetStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	store := newWidgetStore()
	site := NewSite("Test admin")
	Register[createWidget, updateWidget, widget](site, Options{Name: "shop-widgets", OrderFields: []string{"name"}, Searchable: true}, store,
		Action[widget]{Name: "archive", Run: store.archive},
	)

	router := gin.New()
	site.RegisterRoutes(router.Group("/admin"))
	return router, store
}

func do(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) (T, *dto.ErrorInfo) {
	t.Helper()
	var resp struct {
		Data  T              `json:"data"`
		Error *dto.ErrorInfo `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data, resp.Error
}

func TestSite_Index(t *testing.T) {
	router, _ := newTestSite(t)

	w := do(router, http.MethodGet, "/admin/", "")

	require.Equal(t, http.StatusOK, w.Code)
	index, _ := decode[IndexResponse](t, w)
	assert.Equal(t, "Test admin", index.Title)
	require.Len(t, index.Resources, 1)

	res := index.Resources[0]
	assert.Equal(t, "Shop Widgets", res.Title)
	assert.Equal(t, "/admin/shop-widgets/", res.URL)
	assert.Equal(t, []string{"archive"}, res.Actions)
	assert.True(t, res.Searchable)
	assert.Equal(t, []Field{
		{Name: "id", Type: "uuid"},
		{Name: "name", Type: "string"},
		{Name: "archived", Type: "boolean"},
	}, res.Columns)
	assert.Equal(t, []Field{
		{Name: "name", Type: "string", Required: true},
		{Name: "price", Type: "decimal", Nullable: true},
	}, res.CreateForm)
}

func TestSite_CRUD(t *testing.T) {
	router, store := newTestSite(t)

	w := do(router, http.MethodPost, "/admin/shop-widgets/", `{"name":"Sprocket"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created, _ := decode[widget](t, w)
	path := "/admin/shop-widgets/" + created.ID.String()

	w = do(router, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	got, _ := decode[widget](t, w)
	assert.Equal(t, "Sprocket", got.Name)

	w = do(router, http.MethodPut, path, `{"name":"Cog"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated, _ := decode[widget](t, w)
	assert.Equal(t, "Cog", updated.Name)

	w = do(router, http.MethodPost, path+"/archive", "")
	require.Equal(t, http.StatusOK, w.Code)
	archived, _ := decode[widget](t, w)
	assert.True(t, archived.Archived)

	w = do(router, http.MethodGet, "/admin/shop-widgets/?page=1&page_size=10&order_by=name&order_dir=desc&search=co", "")
	require.Equal(t, http.StatusOK, w.Code)
	items, _ := decode[[]widget](t, w)
	assert.Len(t, items, 1)
	assert.Equal(t, shared.Filter{Page: 1, PageSize: 10, OrderBy: "name", OrderDir: "desc", Search: "co"}, store.filters[0])

	w = do(router, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(router, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSite_Errors(t *testing.T) {
	router, _ := newTestSite(t)
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/admin/shop-widgets/", `{"name":"Sprocket"}`).Code)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"validation", http.MethodPost, "/admin/shop-widgets/", `{"name":""}`, http.StatusBadRequest, dto.ErrCodeValidation},
		{"duplicate", http.MethodPost, "/admin/shop-widgets/", `{"name":"Sprocket"}`, http.StatusConflict, catalog.CodeDuplicateName},
		{"bad id", http.MethodGet, "/admin/shop-widgets/42", "", http.StatusBadRequest, dto.ErrCodeBadRequest},
		{"unknown id", http.MethodDelete, "/admin/shop-widgets/" + uuid.NewString(), "", http.StatusNotFound, dto.ErrCodeNotFound},
		{"unknown action target", http.MethodPost, "/admin/shop-widgets/" + uuid.NewString() + "/archive", "", http.StatusNotFound, dto.ErrCodeNotFound},
		{"order field", http.MethodGet, "/admin/shop-widgets/?order_by=password", "", http.StatusBadRequest, dto.ErrCodeInvalidInput},
		{"page size", http.MethodGet, "/admin/shop-widgets/?page_size=5000", "", http.StatusBadRequest, dto.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, tt.method, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			_, errInfo := decode[json.RawMessage](t, w)
			require.NotNil(t, errInfo)
			assert.Equal(t, tt.wantCode, errInfo.Code)
		})
	}
}

func TestRegister_Panics(t *testing.T) {
	site := NewSite("x")
	store := newWidgetStore()

	assert.Panics(t, func() {
		Register[createWidget, updateWidget, widget](site, Options{}, store)
	})

	Register[createWidget, updateWidget, widget](site, Options{Name: "widgets"}, store)
	assert.Panics(t, func() {
		Register[createWidget, updateWidget, widget](site, Options{Name: "widgets"}, store)
	})
}
