package bookmark

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fmcarvalho/linkmark/internal/api/auth"
	"github.com/fmcarvalho/linkmark/internal/types"
)

const (
	ownerID     = "11111111-1111-1111-1111-111111111111"
	bookmarkOne = "22222222-2222-2222-2222-222222222222"
)

func newBookmarkRouter(repo BookmarkRepo) chi.Router {
	service := NewBookmarkService(repo, slog.Default())
	handler := NewHandlerImpl(service, slog.Default())

	r := chi.NewRouter()
	r.Route("/bookmarks", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.GetByID)
		r.Patch("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
	return r
}

// asUser simulates a request that already passed the identity guard.
func asUser(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), auth.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestBookmarkHandlerList(t *testing.T) {
	t.Run("EmptyListSerializesAsArray", func(t *testing.T) {
		mockRepo := new(MockBookmarkRepo)
		router := newBookmarkRouter(mockRepo)

		mockRepo.On("List", mock.Anything, ownerID).Return([]types.Bookmark{}, nil).Once()

		req := asUser(httptest.NewRequest(http.MethodGet, "/bookmarks", nil), ownerID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})

	t.Run("NoIdentityInContext", func(t *testing.T) {
		mockRepo := new(MockBookmarkRepo)
		router := newBookmarkRouter(mockRepo)

		req := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestBookmarkHandlerCreate(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mockRepo := new(MockBookmarkRepo)
		router := newBookmarkRouter(mockRepo)

		params := types.CreateBookmarkParams{Title: "First Bookmark", Link: "https://example.com/a"}
		created := &types.Bookmark{ID: bookmarkOne, UserID: ownerID, Title: params.Title, Link: params.Link}
		mockRepo.On("Create", mock.Anything, ownerID, params).Return(created, nil).Once()

		body, _ := json.Marshal(params)
		req := asUser(httptest.NewRequest(http.MethodPost, "/bookmarks", bytes.NewReader(body)), ownerID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp types.Bookmark
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, bookmarkOne, resp.ID)
	})

	t.Run("UnknownFieldRejected", func(t *testing.T) {
		mockRepo := new(MockBookmarkRepo)
		router := newBookmarkRouter(mockRepo)

		body := []byte(`{"title":"x","link":"https://example.com","owner":"someone-else"}`)
		req := asUser(httptest.NewRequest(http.MethodPost, "/bookmarks", bytes.NewReader(body)), ownerID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBookmarkHandlerGetByID(t *testing.T) {
	t.Run("NotOwnedReturns404", func(t *testing.T) {
		mockRepo := new(MockBookmarkRepo)
		router := newBookmarkRouter(mockRepo)

		mockRepo.On("GetByID", mock.Anything, ownerID, bookmarkOne).
			Return(nil, types.ErrNotFound).Once()

		req := asUser(httptest.NewRequest(http.MethodGet, "/bookmarks/"+bookmarkOne, nil), ownerID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("NonUUIDIDReturns404", func(t *testing.T) {
		mockRepo := new(MockBookmarkRepo)
		router := newBookmarkRouter(mockRepo)

		req := asUser(httptest.NewRequest(http.MethodGet, "/bookmarks/not-a-uuid", nil), ownerID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBookmarkHandlerDelete(t *testing.T) {
	t.Run("NoContentOnSuccess", func(t *testing.T) {
		mockRepo := new(MockBookmarkRepo)
		router := newBookmarkRouter(mockRepo)

		mockRepo.On("Delete", mock.Anything, ownerID, bookmarkOne).Return(nil).Once()

		req := asUser(httptest.NewRequest(http.MethodDelete, "/bookmarks/"+bookmarkOne, nil), ownerID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
}
