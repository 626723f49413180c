package handlers

import (
	"vetcare-api/internal/core/services"
	"vetcare-api/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers handles listing all users (Admin only)
// @Summary List all users
// @Description Get a paginated list of users, optionally filtered by role (Admin only)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param role query string false "CLIENTE, RECEPCIONISTA, VETERINARIO or ADMIN"
// @Success 200 {object} pagination.Page[models.UserResponse]
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	p := pagination.FromQuery(c)

	users, total, err := h.userService.ListUsers(c.UserContext(), c.Query("role"), p.Offset, p.Limit)
	if err != nil {
		return writeError(c, err, "User not found")
	}

	return c.JSON(pagination.NewPage(users, p, total))
}
