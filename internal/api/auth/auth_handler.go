package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fmcarvalho/linkmark/internal/api"
	"github.com/fmcarvalho/linkmark/internal/types"
)

type AuthHandler struct {
	authService AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Signup godoc
// @Summary      Register a new account
// @Description  Creates a user from an email/password pair and returns an access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials body SignupRequest true "Signup credentials"
// @Success      201 {object} types.TokenResponse "Access Token"
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      409 {object} types.Response "Email Already Registered"
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Signup"))

	var req SignupRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.authService.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, types.TokenResponse{AccessToken: token})
}

// Signin godoc
// @Summary      Sign in
// @Description  Verifies credentials and returns a fresh access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials body SigninRequest true "Signin credentials"
// @Success      200 {object} types.TokenResponse "Access Token"
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      401 {object} types.Response "Invalid Credentials"
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Signin"))

	var req SigninRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.authService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		h.writeAuthError(w, r, err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.TokenResponse{AccessToken: token})
}

// writeAuthError maps service errors onto the response taxonomy. Internal
// failures never leak detail to the client.
func (h *AuthHandler) writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, types.ErrValidation):
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, types.ErrConflict):
		api.ErrorResponse(w, r, http.StatusConflict, "email already registered")
	case errors.Is(err, types.ErrUnauthenticated):
		api.ErrorResponse(w, r, http.StatusUnauthorized, "invalid credentials")
	default:
		h.logger.ErrorContext(r.Context(), "Unexpected auth failure", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "internal server error")
	}
}
