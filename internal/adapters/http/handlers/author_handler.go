package handlers

import (
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthorHandler handles author endpoints
type AuthorHandler struct {
	authorService *services.AuthorService
}

// NewAuthorHandler creates a new author handler
func NewAuthorHandler(authorService *services.AuthorService) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

// List lists authors
// @Summary List authors
// @Tags Authors
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /authors [get]
func (h *AuthorHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	items, total, err := h.authorService.List(c.Context(), params)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Authors retrieved successfully", pagination.NewResponse(items, params, total))
}

// Search finds authors by name
// @Summary Search authors
// @Tags Authors
// @Produce json
// @Param name query string true "Name contains (case-insensitive)"
// @Success 200 {object} response.Response
// @Router /authors/search [get]
func (h *AuthorHandler) Search(c *fiber.Ctx) error {
	items, err := h.authorService.Search(c.Context(), c.Query("name"))
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Authors retrieved successfully", fiber.Map{"authors": items})
}

// Get gets an author by ID
// @Summary Get author
// @Tags Authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /authors/{id} [get]
func (h *AuthorHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	item, err := h.authorService.Get(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Author retrieved successfully", fiber.Map{"author": item})
}

// ListBooks lists the books of an author
// @Summary List author books
// @Tags Authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /authors/{id}/books [get]
func (h *AuthorHandler) ListBooks(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	books, err := h.authorService.ListBooks(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Books retrieved successfully", fiber.Map{"books": books})
}

// Create creates an author
// @Summary Create author
// @Tags Authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AuthorInput true "Author"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /authors [post]
func (h *AuthorHandler) Create(c *fiber.Ctx) error {
	var input services.AuthorInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	item, err := h.authorService.Create(c.Context(), &input)
	if err != nil {
		return handleError(c, err)
	}

	return response.Created(c, "Author created successfully", fiber.Map{"author": item})
}

// Update updates an author
// @Summary Update author
// @Tags Authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Param body body services.AuthorInput true "Author"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /authors/{id} [put]
func (h *AuthorHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	var input services.AuthorInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	item, err := h.authorService.Update(c.Context(), id, &input)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Author updated successfully", fiber.Map{"author": item})
}

// Delete deletes an author with all of its books
// @Summary Delete author
// @Description Also deletes the author's books and their borrow records
// @Tags Authors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /authors/{id} [delete]
func (h *AuthorHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.authorService.Delete(c.Context(), id); err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Author deleted successfully", nil)
}
