package handlers

import (
	"strings"

	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles librarian login
// @Summary Login librarian
// @Description Authenticate a librarian and return an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}
	input.Username = strings.TrimSpace(input.Username)

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Login successful", result)
}

// Me returns the authenticated librarian
// @Summary Current librarian
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	librarianID, ok := c.Locals("librarianID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	librarian, err := h.authService.GetLibrarian(c.Context(), librarianID)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Librarian retrieved successfully", fiber.Map{
		"librarian": librarian,
	})
}
