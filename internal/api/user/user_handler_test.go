package user

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fmcarvalho/linkmark/internal/api/auth"
	"github.com/fmcarvalho/linkmark/internal/types"
)

func TestGetMeHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		handler := NewHandlerImpl(NewUserService(mockRepo, slog.Default()), slog.Default())

		profile := &types.UserProfile{ID: "user-123", Email: "a@b.com"}
		mockRepo.On("GetProfile", mock.Anything, "user-123").Return(profile, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, "user-123"))
		rr := httptest.NewRecorder()
		handler.GetMe(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "a@b.com", body["email"])
		// The password hash has no way into the response payload.
		assert.NotContains(t, body, "password_hash")
		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("NoIdentityInContext", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		handler := NewHandlerImpl(NewUserService(mockRepo, slog.Default()), slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rr := httptest.NewRecorder()
		handler.GetMe(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockRepo.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	t.Run("InvalidEmailRejected", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		handler := NewHandlerImpl(NewUserService(mockRepo, slog.Default()), slog.Default())

		req := httptest.NewRequest(http.MethodPatch, "/users",
			jsonBody(t, map[string]string{"email": "not-an-email"}))
		req = req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, "user-123"))
		rr := httptest.NewRecorder()
		handler.UpdateProfile(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(payload)
}
