package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/newsroomlabs/admin-auth/internal/api/dto"
	"github.com/newsroomlabs/admin-auth/internal/auth"
	"github.com/newsroomlabs/admin-auth/internal/service"
	apperrors "github.com/newsroomlabs/admin-auth/pkg/util"
)

// AdminHandler exposes the admin console auth endpoints.
type AdminHandler struct {
	auth *service.AuthService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{auth: authService}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewInvalidInput("email and password required")
	}

	admin, session, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(dto.LoginResponse{
		Success: true,
		Token:   session.Token,
		Admin: dto.AdminInfo{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
		},
	})
}

// Verify handles GET /api/admin/verify. The auth middleware has already
// validated the bearer token; this just echoes the claims back.
func (h *AdminHandler) Verify(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Access token required")
	}

	return c.JSON(dto.VerifyResponse{
		Success: true,
		Admin: dto.AdminInfo{
			ID:    claims.Subject,
			Email: claims.Email,
			Role:  string(claims.Role),
		},
	})
}
