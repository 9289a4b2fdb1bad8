package handlers

import (
	"strconv"
	"strings"

	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles book endpoints
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

func bookFilter(c *fiber.Ctx) (repositories.BookFilter, error) {
	filter := repositories.BookFilter{Title: c.Query("title")}

	var err error
	if filter.AuthorID, err = queryUint(c, "author_id"); err != nil {
		return filter, err
	}
	if filter.CategoryID, err = queryUint(c, "category_id"); err != nil {
		return filter, err
	}
	if filter.Available, err = queryBool(c, "available"); err != nil {
		return filter, err
	}
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return filter, domain.NewValidation("year: must be an integer")
		}
		filter.Year = &year
	}
	return filter, nil
}

// ListBooks lists books
// @Summary List books
// @Tags Books
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Param title query string false "Title contains (case-insensitive)"
// @Param author_id query int false "Author ID"
// @Param category_id query int false "Category ID"
// @Param year query int false "Publication year"
// @Param available query bool false "Only available (true) or only borrowed (false) books"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /books [get]
func (h *BookHandler) ListBooks(c *fiber.Ctx) error {
	filter, err := bookFilter(c)
	if err != nil {
		return handleError(c, err)
	}
	params := pagination.GetParams(c)

	books, total, err := h.bookService.List(c.Context(), filter, params)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Books retrieved successfully", pagination.NewResponse(books, params, total))
}

// GetBook gets a book by ID
// @Summary Get book
// @Tags Books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	book, err := h.bookService.Get(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Book retrieved successfully", fiber.Map{"book": book})
}

// GetBookByISBN gets a book by ISBN
// @Summary Get book by ISBN
// @Tags Books
// @Produce json
// @Param isbn path string true "ISBN"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/isbn/{isbn} [get]
func (h *BookHandler) GetBookByISBN(c *fiber.Ctx) error {
	book, err := h.bookService.GetByISBN(c.Context(), c.Params("isbn"))
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Book retrieved successfully", fiber.Map{"book": book})
}

// CreateBook creates a book
// @Summary Create book
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BookInput true "Book"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books [post]
func (h *BookHandler) CreateBook(c *fiber.Ctx) error {
	var input services.BookInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	book, err := h.bookService.Create(c.Context(), &input)
	if err != nil {
		return handleError(c, err)
	}

	return response.Created(c, "Book created successfully", fiber.Map{"book": book})
}

// UpdateBook updates a book
// @Summary Update book
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param body body services.BookInput true "Book"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) UpdateBook(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	var input services.BookInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	book, err := h.bookService.Update(c.Context(), id, &input)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Book updated successfully", fiber.Map{"book": book})
}

// DeleteBook deletes a book with its borrow history
// @Summary Delete book
// @Tags Books
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.bookService.Delete(c.Context(), id); err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Book deleted successfully", nil)
}
