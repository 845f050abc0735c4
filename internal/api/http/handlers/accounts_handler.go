package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/newsroomlabs/admin-auth/internal/api/dto"
	"github.com/newsroomlabs/admin-auth/internal/service"
	apperrors "github.com/newsroomlabs/admin-auth/pkg/util"
)

// AccountsHandler exposes the registration collaborator endpoint.
type AccountsHandler struct {
	auth *service.AuthService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(authService *service.AuthService) *AccountsHandler {
	return &AccountsHandler{auth: authService}
}

// Register handles POST /api/register.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload")
	}

	admin, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.RegisterResponse{
		Success: true,
		Admin: dto.AdminInfo{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
		},
	})
}
