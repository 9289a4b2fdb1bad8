package handlers

import (
	"strings"

	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BorrowHandler handles borrow ledger endpoints
type BorrowHandler struct {
	borrowService *services.BorrowService
}

// NewBorrowHandler creates a new borrow handler
func NewBorrowHandler(borrowService *services.BorrowService) *BorrowHandler {
	return &BorrowHandler{borrowService: borrowService}
}

// Borrow lends a book to a member
// @Summary Borrow book
// @Description Fails with 409 when the book is already borrowed or the member has overdue books
// @Tags Borrowing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BorrowInput true "Borrow request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /borrowed-books/borrow [post]
func (h *BorrowHandler) Borrow(c *fiber.Ctx) error {
	var input services.BorrowInput
	if err := bind(c, &input); err != nil {
		return handleError(c, err)
	}

	record, err := h.borrowService.Borrow(c.Context(), input)
	if err != nil {
		return handleError(c, err)
	}

	return response.Created(c, "Book borrowed successfully", fiber.Map{"borrow": record})
}

// Return closes a loan
// @Summary Return book
// @Tags Borrowing
// @Produce json
// @Security BearerAuth
// @Param id path int true "Borrow record ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /borrowed-books/{id}/return [post]
func (h *BorrowHandler) Return(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	record, err := h.borrowService.Return(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Book returned successfully", fiber.Map{"borrow": record})
}

// GetBorrow gets a borrow record
// @Summary Get borrow record
// @Tags Borrowing
// @Produce json
// @Security BearerAuth
// @Param id path int true "Borrow record ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /borrowed-books/{id} [get]
func (h *BorrowHandler) GetBorrow(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	record, err := h.borrowService.Get(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Borrow record retrieved successfully", fiber.Map{"borrow": record})
}

// ListBorrows lists borrow records
// @Summary List borrow records
// @Tags Borrowing
// @Produce json
// @Security BearerAuth
// @Param status query string false "BORROWED or RETURNED"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /borrowed-books [get]
func (h *BorrowHandler) ListBorrows(c *fiber.Ctx) error {
	var status *domain.BorrowStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		s := domain.BorrowStatus(strings.ToUpper(raw))
		status = &s
	}

	records, err := h.borrowService.List(c.Context(), status)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Borrow records retrieved successfully", fiber.Map{"borrows": records})
}

// ListForMember lists a member's loans
// @Summary List member loans
// @Tags Borrowing
// @Produce json
// @Security BearerAuth
// @Param memberId path int true "Member ID"
// @Param current query bool false "Only open loans"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /borrowed-books/member/{memberId} [get]
func (h *BorrowHandler) ListForMember(c *fiber.Ctx) error {
	memberID, err := paramID(c, "memberId")
	if err != nil {
		return handleError(c, err)
	}
	current, err := queryBool(c, "current")
	if err != nil {
		return handleError(c, err)
	}

	records, err := h.borrowService.ListForMember(c.Context(), memberID, current != nil && *current)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Borrow records retrieved successfully", fiber.Map{"borrows": records})
}

// ListForBook lists a book's loan history
// @Summary List book loan history
// @Tags Borrowing
// @Produce json
// @Security BearerAuth
// @Param bookId path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /borrowed-books/book/{bookId} [get]
func (h *BorrowHandler) ListForBook(c *fiber.Ctx) error {
	bookID, err := paramID(c, "bookId")
	if err != nil {
		return handleError(c, err)
	}

	records, err := h.borrowService.ListForBook(c.Context(), bookID)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Borrow records retrieved successfully", fiber.Map{"borrows": records})
}

// ListDueBefore lists open loans due before a date, now when date is omitted
// @Summary List loans due before a date
// @Tags Borrowing
// @Produce json
// @Security BearerAuth
// @Param date query string false "YYYY-MM-DD or RFC 3339, defaults to now"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /borrowed-books/due-before [get]
func (h *BorrowHandler) ListDueBefore(c *fiber.Ctx) error {
	date, err := queryTime(c, "date")
	if err != nil {
		return handleError(c, err)
	}

	records, err := h.borrowService.ListOverdue(c.Context(), date)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, "Borrow records retrieved successfully", fiber.Map{"borrows": records})
}
