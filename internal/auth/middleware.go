package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/newsroomlabs/admin-auth/pkg/util"
)

const claimsKey = "auth_claims"

// AuthMiddleware validates bearer tokens on protected routes. Verification is
// signature + expiry only; no store lookup happens per request (pure bearer
// model).
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. A missing or
// non-bearer Authorization header is 401; a token that fails verification for
// any reason is 403.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("Access token required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return apperrors.NewUnauthorized("Access token required")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		return err
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the verified claims for the request.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
