package bookmark

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fmcarvalho/linkmark/internal/api"
	"github.com/fmcarvalho/linkmark/internal/api/auth"
	"github.com/fmcarvalho/linkmark/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	bookmarkService BookmarkService
	logger          *slog.Logger
}

func NewHandlerImpl(bookmarkService BookmarkService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		bookmarkService: bookmarkService,
		logger:          logger,
	}
}

// callerID extracts the authenticated user id placed by the identity guard.
func (h *HandlerImpl) callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok || userID == "" {
		h.logger.ErrorContext(r.Context(), "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return userID, true
}

// bookmarkID parses the {id} URL parameter.
func (h *HandlerImpl) bookmarkID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "Bookmark not found")
		return "", false
	}
	return id, true
}

// List godoc
// @Summary      List Bookmarks
// @Description  Returns all bookmarks owned by the caller.
// @Tags         Bookmarks
// @Produce      json
// @Success      200 {array} types.Bookmark
// @Failure      401 {object} types.Response "Unauthorized"
// @Security     BearerAuth
// @Router       /bookmarks [get]
func (h *HandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	bookmarks, err := h.bookmarkService.List(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list bookmarks", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list bookmarks")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, bookmarks)
}

// Create godoc
// @Summary      Create Bookmark
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        bookmark body types.CreateBookmarkParams true "Bookmark fields"
// @Success      201 {object} types.Bookmark
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      401 {object} types.Response "Unauthorized"
// @Security     BearerAuth
// @Router       /bookmarks [post]
func (h *HandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Create"))
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var params types.CreateBookmarkParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.bookmarkService.Create(ctx, userID, params)
	if err != nil {
		if errors.Is(err, types.ErrValidation) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to create bookmark", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create bookmark")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, b)
}

// GetByID godoc
// @Summary      Get Bookmark
// @Tags         Bookmarks
// @Produce      json
// @Param        id path string true "Bookmark ID"
// @Success      200 {object} types.Bookmark
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Not Found"
// @Security     BearerAuth
// @Router       /bookmarks/{id} [get]
func (h *HandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	id, ok := h.bookmarkID(w, r)
	if !ok {
		return
	}

	b, err := h.bookmarkService.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Bookmark not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get bookmark", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to get bookmark")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, b)
}

// Update godoc
// @Summary      Update Bookmark
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        id path string true "Bookmark ID"
// @Param        bookmark body types.UpdateBookmarkParams true "Bookmark fields"
// @Success      200 {object} types.Bookmark
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Not Found"
// @Security     BearerAuth
// @Router       /bookmarks/{id} [patch]
func (h *HandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Update"))
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	id, ok := h.bookmarkID(w, r)
	if !ok {
		return
	}

	var params types.UpdateBookmarkParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.bookmarkService.Update(ctx, userID, id, params)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrValidation):
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "Bookmark not found")
		default:
			l.ErrorContext(ctx, "Failed to update bookmark", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update bookmark")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, b)
}

// Delete godoc
// @Summary      Delete Bookmark
// @Tags         Bookmarks
// @Param        id path string true "Bookmark ID"
// @Success      204 "No Content"
// @Failure      401 {object} types.Response "Unauthorized"
// @Failure      404 {object} types.Response "Not Found"
// @Security     BearerAuth
// @Router       /bookmarks/{id} [delete]
func (h *HandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}
	id, ok := h.bookmarkID(w, r)
	if !ok {
		return
	}

	if err := h.bookmarkService.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Bookmark not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to delete bookmark", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to delete bookmark")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
