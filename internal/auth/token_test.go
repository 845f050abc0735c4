package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsroomlabs/admin-auth/internal/domain"
	apperrors "github.com/newsroomlabs/admin-auth/pkg/util"
)

func testAdmin() *domain.Admin {
	return &domain.Admin{
		ID:    "7b6a3c1e-1111-2222-3333-444455556666",
		Name:  "Desk Editor",
		Email: "editor@newsroom.example",
		Role:  domain.RoleAdmin,
	}
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("unit-secret", 24*time.Hour)

	session, err := tm.Issue(testAdmin())
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), session.ExpiresAt, 5*time.Second)

	claims, err := tm.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "7b6a3c1e-1111-2222-3333-444455556666", claims.Subject)
	assert.Equal(t, "editor@newsroom.example", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestTokenManager_Parse_Expired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("unit-secret", 24*time.Hour)

	// Sign a token whose lifetime ended an hour ago, as if issued 25h back.
	now := time.Now()
	claims := &Claims{
		Email: "editor@newsroom.example",
		Role:  domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-secret"))
	require.NoError(t, err)

	_, err = tm.Parse(signed)
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "TOKEN_EXPIRED", de.Code)
	assert.Equal(t, "Invalid or expired token", de.Message)
}

func TestTokenManager_Parse_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("right-secret", time.Hour)
	verifier := NewTokenManager("wrong-secret", time.Hour)

	session, err := issuer.Issue(testAdmin())
	require.NoError(t, err)

	_, err = verifier.Parse(session.Token)
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "INVALID_SIGNATURE", de.Code)
	assert.Equal(t, "Invalid or expired token", de.Message)
}

func TestTokenManager_Parse_Malformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("unit-secret", time.Hour)

	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		_, err := tm.Parse(tok)
		require.Error(t, err)
		de := apperrors.ToDomainError(err)
		assert.Equal(t, "MALFORMED_TOKEN", de.Code)
	}
}

func TestTokenManager_Parse_WrongSigningMethod(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("unit-secret", time.Hour)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: "a1",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Parse(unsigned)
	require.Error(t, err)
}

func TestTokenManager_ValidAcrossLifetime(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("unit-secret", 2*time.Second)

	session, err := tm.Issue(testAdmin())
	require.NoError(t, err)

	// Immediately after issuance the token verifies.
	_, err = tm.Parse(session.Token)
	require.NoError(t, err)
}
