package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/newsroomlabs/admin-auth/internal/domain"
	apperrors "github.com/newsroomlabs/admin-auth/pkg/util"
)

// TokenManager handles issuing and validating JWT session tokens. The secret
// is read-only after construction, so a single manager is safe for concurrent
// use across request handlers.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims describes the JWT payload. The subject is the admin ID.
type Claims struct {
	Email string           `json:"email"`
	Role  domain.AdminRole `json:"role"`
	jwt.RegisteredClaims
}

// Issue builds and signs a session token for the admin.
func (tm *TokenManager) Issue(admin *domain.Admin) (*domain.Session, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Email: admin.Email,
		Role:  admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		Token:     signed,
		AdminID:   admin.ID,
		Email:     admin.Email,
		Role:      admin.Role,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse validates a token string and returns its claims. It is a pure
// function of (token, current time, secret): no side effects, no shared
// mutable state. Rejections carry distinct internal codes for malformed
// structure, bad signature, and expiry.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.NewTokenExpired(err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, apperrors.NewInvalidSignature(err)
		default:
			return nil, apperrors.NewMalformedToken(err)
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, apperrors.NewMalformedToken(errors.New("invalid token claims"))
	}
	return claims, nil
}
