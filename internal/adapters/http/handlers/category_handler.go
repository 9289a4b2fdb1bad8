package handlers

import (
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List lists categories
// @Summary List categories
// @Tags Categories
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	items, total, err := h.categoryService.List(c.Context(), params)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Categories retrieved successfully", pagination.NewResponse(items, params, total))
}

// Search finds categories by name
// @Summary Search categories
// @Tags Categories
// @Produce json
// @Param name query string true "Name contains (case-insensitive)"
// @Success 200 {object} response.Response
// @Router /categories/search [get]
func (h *CategoryHandler) Search(c *fiber.Ctx) error {
	items, err := h.categoryService.Search(c.Context(), c.Query("name"))
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Categories retrieved successfully", fiber.Map{"categories": items})
}

// Get gets a category by ID
// @Summary Get category
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	item, err := h.categoryService.Get(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Category retrieved successfully", fiber.Map{"category": item})
}

// ListBooks lists the books of a category
// @Summary List category books
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categories/{id}/books [get]
func (h *CategoryHandler) ListBooks(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	books, err := h.categoryService.ListBooks(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Books retrieved successfully", fiber.Map{"books": books})
}

// Create creates a category
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CategoryInput true "Category"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var input services.CategoryInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	item, err := h.categoryService.Create(c.Context(), &input)
	if err != nil {
		return handleError(c, err)
	}

	return response.Created(c, "Category created successfully", fiber.Map{"category": item})
}

// Update updates a category
// @Summary Update category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param body body services.CategoryInput true "Category"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	var input services.CategoryInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	item, err := h.categoryService.Update(c.Context(), id, &input)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Category updated successfully", fiber.Map{"category": item})
}

// Delete deletes a category; its books are kept
// @Summary Delete category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.categoryService.Delete(c.Context(), id); err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Category deleted successfully", nil)
}
