package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// BookService handles book business logic
type BookService struct {
	store *repositories.Store
}

// NewBookService creates a new book service
func NewBookService(store *repositories.Store) *BookService {
	return &BookService{store: store}
}

// BookInput represents book create/update input
type BookInput struct {
	Title           string `json:"title" validate:"required,notblank,max=255"`
	Description     string `json:"description"`
	ImgURL          string `json:"img_url" validate:"omitempty,max=500"`
	ISBN            string `json:"isbn" validate:"required,notblank,max=20"`
	PublicationYear *int   `json:"publication_year" validate:"omitempty,gte=0,lte=9999"`
	AuthorID        uint   `json:"author_id" validate:"required"`
	CategoryIDs     []uint `json:"category_ids"`
}

// toBookResponses attaches availability to each book
func toBookResponses(ctx context.Context, borrows repositories.BorrowRepository, books []*models.Book) ([]*models.BookResponse, error) {
	ids := make([]uint, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}

	borrowed, err := borrows.BorrowedBookIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*models.BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, b.ToResponse(!borrowed[b.ID]))
	}
	return out, nil
}

func (s *BookService) toResponse(ctx context.Context, book *models.Book) (*models.BookResponse, error) {
	borrowed, err := s.store.Borrows.ExistsBorrowedForBook(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	return book.ToResponse(!borrowed), nil
}

// List lists books matching filter with pagination
func (s *BookService) List(ctx context.Context, filter repositories.BookFilter, params *pagination.Params) ([]*models.BookResponse, int64, error) {
	filter.Title = strings.TrimSpace(filter.Title)
	books, total, err := s.store.Books.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, 0, err
	}
	out, err := toBookResponses(ctx, s.store.Borrows, books)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Get gets a book by ID
func (s *BookService) Get(ctx context.Context, id uint) (*models.BookResponse, error) {
	book, err := s.store.Books.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, domain.EntityBook, id)
	}
	return s.toResponse(ctx, book)
}

// GetByISBN gets a book by ISBN
func (s *BookService) GetByISBN(ctx context.Context, isbn string) (*models.BookResponse, error) {
	book, err := s.store.Books.GetByISBN(ctx, strings.TrimSpace(isbn))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Entity: domain.EntityBook, Field: "isbn", Value: isbn}
		}
		return nil, err
	}
	return s.toResponse(ctx, book)
}

// resolveRefs checks the author and loads the categories named by input
func resolveRefs(ctx context.Context, tx *repositories.Store, input *BookInput) ([]models.Category, error) {
	exists, err := tx.Authors.ExistsByID(ctx, input.AuthorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFound(domain.EntityAuthor, input.AuthorID)
	}

	ids := uniqueIDs(input.CategoryIDs)
	categories, err := tx.Categories.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		found := make(map[uint]bool, len(categories))
		for _, c := range categories {
			found[c.ID] = true
		}
		for _, id := range ids {
			if !found[id] {
				return nil, domain.NewNotFound(domain.EntityCategory, id)
			}
		}
	}
	return categories, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Create creates a new book
func (s *BookService) Create(ctx context.Context, input *BookInput) (*models.BookResponse, error) {
	isbn := strings.TrimSpace(input.ISBN)

	var bookID uint
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		categories, err := resolveRefs(ctx, tx, input)
		if err != nil {
			return err
		}

		exists, err := tx.Books.ExistsByISBN(ctx, isbn, 0)
		if err != nil {
			return err
		}
		if exists {
			return domain.NewAlreadyExists(domain.EntityBook, "isbn", isbn)
		}

		book := &models.Book{
			Title:           strings.TrimSpace(input.Title),
			Description:     input.Description,
			ImgURL:          input.ImgURL,
			ISBN:            isbn,
			PublicationYear: input.PublicationYear,
			AuthorID:        input.AuthorID,
			Categories:      categories,
		}
		if err := tx.Books.Create(ctx, book); err != nil {
			return duplicateOr(err, domain.EntityBook, "isbn", isbn)
		}
		bookID = book.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	book, err := s.store.Books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Book created: %s (ISBN: %s, ID: %d)", book.Title, book.ISBN, book.ID)
	return book.ToResponse(true), nil
}

// Update updates a book; a changed ISBN must stay unique
func (s *BookService) Update(ctx context.Context, id uint, input *BookInput) (*models.BookResponse, error) {
	isbn := strings.TrimSpace(input.ISBN)

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		book, err := tx.Books.GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, domain.EntityBook, id)
		}

		categories, err := resolveRefs(ctx, tx, input)
		if err != nil {
			return err
		}

		if isbn != book.ISBN {
			exists, err := tx.Books.ExistsByISBN(ctx, isbn, id)
			if err != nil {
				return err
			}
			if exists {
				return domain.NewAlreadyExists(domain.EntityBook, "isbn", isbn)
			}
		}

		book.Title = strings.TrimSpace(input.Title)
		book.Description = input.Description
		book.ImgURL = input.ImgURL
		book.ISBN = isbn
		book.PublicationYear = input.PublicationYear
		book.AuthorID = input.AuthorID
		book.Author = nil
		if err := tx.Books.Update(ctx, book, categories); err != nil {
			return duplicateOr(err, domain.EntityBook, "isbn", isbn)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete deletes a book with its borrow history and category links
func (s *BookService) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		exists, err := tx.Books.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewNotFound(domain.EntityBook, id)
		}
		return tx.Books.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Printf("🗑️ Book deleted (ID: %d)", id)
	return nil
}
