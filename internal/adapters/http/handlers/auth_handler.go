package handlers

import (
	"vetcare-api/internal/core/services"
	"vetcare-api/internal/pkg/response"
	"vetcare-api/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	validate    *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, userService *services.UserService, validate *validator.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		validate:    validate,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=191"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ResetPasswordRequest identifies the account by email or name
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required_without=Name"`
	Name        string `json:"name" validate:"required_without=Email"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Message string `json:"message"`
	*services.AuthResult
}

// Register handles user registration
// @Summary Register new user
// @Description Create an account with one of the clinic roles and receive a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.authService.Register(c.UserContext(), &services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return writeError(c, err, "User not found")
	}

	return response.Created(c, AuthResponse{Message: "User registered successfully", AuthResult: result})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password and receive a session token valid for 8 hours
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.authService.Login(c.UserContext(), &services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err, "User not found")
	}

	return response.OK(c, AuthResponse{Message: "Login successful", AuthResult: result})
}

// ResetPassword handles password reset
// @Summary Reset password
// @Description Replace the password of the account matching the email or name
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "Account and new password"
// @Success 200 {object} response.MessageBody
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	err := h.authService.ResetPassword(c.UserContext(), &services.ResetPasswordInput{
		Email:       req.Email,
		Name:        req.Name,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return writeError(c, err, "User not found")
	}

	return response.Message(c, "Password updated successfully")
}

// Me handles getting current user info
// @Summary Get current user
// @Description Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]models.UserResponse
// @Failure 401 {object} response.ErrorBody
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}

	user, err := h.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err, "User not found")
	}

	return response.OK(c, fiber.Map{"user": user})
}
