package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsroomlabs/admin-auth/internal/api/http/handlers"
	"github.com/newsroomlabs/admin-auth/internal/auth"
	"github.com/newsroomlabs/admin-auth/internal/config"
	"github.com/newsroomlabs/admin-auth/internal/domain"
	"github.com/newsroomlabs/admin-auth/internal/observability"
	"github.com/newsroomlabs/admin-auth/internal/service"
)

const testSecret = "router-test-secret"

type memoryAdminRepo struct {
	byEmail map[string]*domain.Admin
}

func (m *memoryAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	key := strings.ToLower(admin.Email)
	admin.ID = "admin-" + key
	admin.CreatedAt = time.Now()
	m.byEmail[key] = admin
	return nil
}

func (m *memoryAdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	for _, admin := range m.byEmail {
		if admin.ID == id {
			return admin, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	admin, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return admin, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app, _ := newTestAppWithMetrics(t)
	return app
}

func newTestAppWithMetrics(t *testing.T) (*fiber.App, *observability.Metrics) {
	t.Helper()

	authCfg := config.AuthConfig{
		JWTSecret:      testSecret,
		TokenTTLHours:  24,
		BcryptCost:     bcrypt.MinCost,
		MinPasswordLen: 6,
	}
	repo := &memoryAdminRepo{byEmail: map[string]*domain.Admin{}}
	authService := service.NewAuthService(authCfg, service.AuthDependencies{AdminRepo: repo})

	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Admin:          handlers.NewAdminHandler(authService),
		Accounts:       handlers.NewAccountsHandler(authService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
		Health:         handlers.NewHealthHandler("test", "dev", nil, nil),
	})
	return app, metrics
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func registerAdmin(t *testing.T, app *fiber.App, email, password string) {
	t.Helper()
	resp, _ := doJSON(t, app, "POST", "/api/register", map[string]string{
		"name": "Alice", "email": email, "password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRegisterThenLoginScenario(t *testing.T) {
	app := newTestApp(t)

	registerAdmin(t, app, "a@x.com", "secret1")

	resp, body := doJSON(t, app, "POST", "/api/admin/login", map[string]string{
		"email": "a@x.com", "password": "secret1",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	admin, ok := body["admin"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", admin["email"])
	assert.NotEmpty(t, admin["id"])
	// Password material never leaves the server.
	_, hasPassword := admin["password"]
	assert.False(t, hasPassword)

	resp, body = doJSON(t, app, "POST", "/api/admin/login", map[string]string{
		"email": "a@x.com", "password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestLogin_UnknownEmailMatchesWrongPassword(t *testing.T) {
	app := newTestApp(t)
	registerAdmin(t, app, "a@x.com", "secret1")

	respWrong, bodyWrong := doJSON(t, app, "POST", "/api/admin/login", map[string]string{
		"email": "a@x.com", "password": "wrong",
	}, nil)
	respUnknown, bodyUnknown := doJSON(t, app, "POST", "/api/admin/login", map[string]string{
		"email": "ghost@x.com", "password": "secret1",
	}, nil)

	assert.Equal(t, respWrong.StatusCode, respUnknown.StatusCode)
	assert.Equal(t, bodyWrong, bodyUnknown)
}

func TestRegister_DuplicateAndInvalid(t *testing.T) {
	app := newTestApp(t)
	registerAdmin(t, app, "a@x.com", "secret1")

	resp, body := doJSON(t, app, "POST", "/api/register", map[string]string{
		"name": "Mallory", "email": "A@X.com", "password": "secret2",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Email already registered", body["message"])

	resp, _ = doJSON(t, app, "POST", "/api/register", map[string]string{
		"name": "Bob", "email": "not-an-email", "password": "secret1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/register", map[string]string{
		"name": "Bob", "email": "b@x.com", "password": "short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVerify_MissingToken(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/admin/verify", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Access token required", body["message"])
}

func TestVerify_ValidToken(t *testing.T) {
	app := newTestApp(t)
	registerAdmin(t, app, "a@x.com", "secret1")

	_, loginBody := doJSON(t, app, "POST", "/api/admin/login", map[string]string{
		"email": "a@x.com", "password": "secret1",
	}, nil)
	token, _ := loginBody["token"].(string)
	require.NotEmpty(t, token)

	resp, body := doJSON(t, app, "GET", "/api/admin/verify", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	admin, ok := body["admin"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", admin["email"])
	assert.Equal(t, "admin", admin["role"])
}

func TestVerify_GarbageToken(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/admin/verify", nil, map[string]string{
		"Authorization": "Bearer not.a.jwt",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestVerify_TokenIssued25HoursAgo(t *testing.T) {
	app := newTestApp(t)

	issued := time.Now().Add(-25 * time.Hour)
	claims := &auth.Claims{
		Email: "a@x.com",
		Role:  domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-a@x.com",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(24 * time.Hour)),
		},
	}
	stale, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp, body := doJSON(t, app, "GET", "/api/admin/verify", nil, map[string]string{
		"Authorization": "Bearer " + stale,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestVerify_TokenSignedWithOtherSecret(t *testing.T) {
	app := newTestApp(t)

	other := auth.NewTokenManager("some-other-secret", 24*time.Hour)
	session, err := other.Issue(&domain.Admin{ID: "a1", Email: "a@x.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	resp, body := doJSON(t, app, "GET", "/api/admin/verify", nil, map[string]string{
		"Authorization": "Bearer " + session.Token,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/health/live", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])
}

func TestMetricsRecordMappedStatusOnErrors(t *testing.T) {
	app, metrics := newTestAppWithMetrics(t)

	resp, _ := doJSON(t, app, "GET", "/api/admin/verify", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/admin/login", map[string]string{
		"email": "ghost@x.com", "password": "secret1",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	requests, errs := metrics.Snapshot()
	assert.Equal(t, int64(1), requests["/api/admin/verify|GET|401"])
	assert.Equal(t, int64(1), requests["/api/admin/login|POST|401"])
	assert.Zero(t, requests["/api/admin/verify|GET|200"])
	assert.Zero(t, requests["/api/admin/login|POST|200"])
	assert.Equal(t, int64(1), errs["/api/admin/verify|GET|UNAUTHORIZED"])
	assert.Equal(t, int64(1), errs["/api/admin/login|POST|INVALID_CREDENTIALS"])
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, "GET", "/health/live", nil, map[string]string{
		"X-Request-Id": "req-42",
	})
	assert.Equal(t, "req-42", resp.Header.Get("X-Request-Id"))
}
