package handlers

import (
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles report endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetOverview returns the headline counters
// @Summary Library overview
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/overview [get]
func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetOverview(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Dashboard data retrieved successfully", data)
}

// GetPopularBooks returns the most borrowed books
// @Summary Popular books
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/books/popular [get]
func (h *DashboardHandler) GetPopularBooks(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetPopularBooks(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Dashboard data retrieved successfully", fiber.Map{"books": data})
}

// GetBooksByCategory returns per-category book counts
// @Summary Books by category
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/books/by-category [get]
func (h *DashboardHandler) GetBooksByCategory(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetBooksByCategory(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Dashboard data retrieved successfully", fiber.Map{"categories": data})
}

// GetTopBorrowers returns the members with the most loans
// @Summary Top borrowers
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/members/top-borrowers [get]
func (h *DashboardHandler) GetTopBorrowers(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetTopBorrowers(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Dashboard data retrieved successfully", fiber.Map{"members": data})
}

// GetOverdueBorrows returns overdue loans
// @Summary Overdue loans
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param as_of query string false "YYYY-MM-DD or RFC 3339, defaults to now"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /dashboard/borrows/overdue [get]
func (h *DashboardHandler) GetOverdueBorrows(c *fiber.Ctx) error {
	asOf, err := queryTime(c, "as_of")
	if err != nil {
		return handleError(c, err)
	}

	data, err := h.dashboardService.GetOverdueBorrows(c.Context(), asOf)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Dashboard data retrieved successfully", fiber.Map{"borrows": data})
}

// GetRecentBorrows returns the newest loans
// @Summary Recent loans
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Feed size (default 10, max 100)"
// @Success 200 {object} response.Response
// @Router /dashboard/borrows/recent [get]
func (h *DashboardHandler) GetRecentBorrows(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", services.DefaultRecentLimit)

	data, err := h.dashboardService.GetRecentBorrows(c.Context(), limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Dashboard data retrieved successfully", fiber.Map{"borrows": data})
}
