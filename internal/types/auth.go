package types

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserAuth is the credential-store view of a user: the only place the
// password hash travels. It is never serialized to clients.
type UserAuth struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Claims are the fields embedded in a signed access token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenResponse is the body returned by signup and signin.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Response is a generic success/error envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
