package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/newsroomlabs/admin-auth/internal/auth"
	"github.com/newsroomlabs/admin-auth/internal/config"
	"github.com/newsroomlabs/admin-auth/internal/domain"
	"github.com/newsroomlabs/admin-auth/internal/repository"
	apperrors "github.com/newsroomlabs/admin-auth/pkg/util"
)

// AuthService coordinates registration, login, and token verification.
type AuthService struct {
	admins         repository.AdminRepository
	tokenMgr       *auth.TokenManager
	limiter        *LoginLimiter
	bcryptCost     int
	minPasswordLen int
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	AdminRepo repository.AdminRepository
	Limiter   *LoginLimiter
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		admins:         deps.AdminRepo,
		tokenMgr:       auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		limiter:        deps.Limiter,
		bcryptCost:     cfg.BcryptCost,
		minPasswordLen: cfg.MinPasswordLen,
	}
}

// Register creates a new admin credential record. The plaintext password is
// hashed immediately and never stored, logged, or returned.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.Admin, error) {
	// Normalize once; validation, the duplicate pre-check, and the persisted
	// record all see the same address.
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicateEmail()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	admin := &domain.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		// Two near-simultaneous registrations can both pass the existence
		// check above; the insert race resolves here.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateEmail()
		}
		return nil, apperrors.NewInternalError(err)
	}
	return admin, nil
}

// Login authenticates an admin and issues a session token. An unknown email
// and a wrong password produce the same error so callers cannot probe which
// addresses are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Admin, *domain.Session, error) {
	if email == "" || password == "" {
		return nil, nil, apperrors.NewInvalidInput("email and password required")
	}

	if !s.limiter.Allow(ctx, email) {
		return nil, nil, apperrors.NewRateLimited()
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.limiter.RecordFailure(ctx, email)
			return nil, nil, apperrors.NewInvalidCredentials()
		}
		return nil, nil, apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		s.limiter.RecordFailure(ctx, email)
		return nil, nil, apperrors.NewInvalidCredentials()
	}

	session, err := s.tokenMgr.Issue(admin)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}

	s.limiter.Reset(ctx, email)
	return admin, session, nil
}

// Verify checks a token string and returns its claims. Pure: no persistence,
// no shared mutable state.
func (s *AuthService) Verify(token string) (*auth.Claims, error) {
	return s.tokenMgr.Parse(token)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) validateRegistration(name, email, password string) error {
	if name == "" {
		return apperrors.NewInvalidInput("name required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.NewInvalidInput("invalid email address")
	}
	if len(password) < s.minPasswordLen {
		return apperrors.NewInvalidInput("password too short")
	}
	return nil
}
