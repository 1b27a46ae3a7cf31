package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcatalog/projects-api/internal/apperrors"
	"github.com/devcatalog/projects-api/internal/technologies/domain"
)

type stubStore struct {
	items []domain.Technology
	tech  *domain.Technology
	err   error

	gotCreate domain.CreateTechnologyRequest
}

func (s *stubStore) List(context.Context) ([]domain.Technology, error) {
	return s.items, s.err
}

func (s *stubStore) Create(_ context.Context, req domain.CreateTechnologyRequest) (*domain.Technology, error) {
	s.gotCreate = req
	return s.tech, s.err
}

func newTestRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(store).Register(r.Group("/technologies"))
	return r
}

func TestList(t *testing.T) {
	store := &stubStore{items: []domain.Technology{
		{ID: uuid.New(), Name: "Go"},
		{ID: uuid.New(), Name: "Rust"},
	}}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/technologies", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []domain.Technology
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Go", got[0].Name)
}

func TestCreateSuccess(t *testing.T) {
	created := domain.New(domain.CreateTechnologyRequest{Name: "Postgres"})
	store := &stubStore{tech: &created}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/technologies",
		strings.NewReader(`{"name":"Postgres"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Postgres", store.gotCreate.Name)
	assert.Contains(t, w.Body.String(), "Postgres")
}

func TestCreateMissingName(t *testing.T) {
	r := newTestRouter(&stubStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/technologies",
		strings.NewReader(`{"description":"a database"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateDuplicate(t *testing.T) {
	store := &stubStore{err: apperrors.Duplicate("Technology with name 'Go' already exists")}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/technologies",
		strings.NewReader(`{"name":"Go"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}
