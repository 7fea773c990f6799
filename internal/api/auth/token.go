package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fmcarvalho/linkmark/config"
	"github.com/fmcarvalho/linkmark/internal/types"
)

// TokenIssuer creates and verifies signed access tokens. The secret is
// resolved once at startup and only read afterwards, so concurrent use
// needs no synchronization.
type TokenIssuer struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
}

func NewTokenIssuer(cfg config.JWTConfig) (*TokenIssuer, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret key cannot be empty")
	}
	return &TokenIssuer{
		secretKey: []byte(cfg.SecretKey),
		ttl:       cfg.AccessTokenTTL,
		issuer:    cfg.Issuer,
	}, nil
}

// Issue signs a token for the given user. Tokens carry the subject's id and
// email plus issuance and expiry timestamps; nothing is stored server-side.
func (t *TokenIssuer) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := &types.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates tokenString. Any failure (malformed input, bad
// signature, expiry, issuer mismatch) comes back wrapped in
// types.ErrUnauthenticated so callers cannot leak internal detail.
func (t *TokenIssuer) Verify(tokenString string) (*types.Claims, error) {
	claims := &types.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secretKey, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithExpirationRequired())

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: token has expired", types.ErrUnauthenticated)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("%w: malformed token", types.ErrUnauthenticated)
		case errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, fmt.Errorf("%w: invalid token signature", types.ErrUnauthenticated)
		default:
			return nil, fmt.Errorf("%w: invalid token", types.ErrUnauthenticated)
		}
	}
	if !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("%w: invalid token", types.ErrUnauthenticated)
	}

	return claims, nil
}
