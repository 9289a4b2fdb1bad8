package services

import (
	"context"
	"log"
	"strings"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/pagination"
)

// AuthorService handles author business logic
type AuthorService struct {
	store *repositories.Store
}

// NewAuthorService creates a new author service
func NewAuthorService(store *repositories.Store) *AuthorService {
	return &AuthorService{store: store}
}

// AuthorInput represents author create/update input
type AuthorInput struct {
	Name      string `json:"name" validate:"required,notblank,max=150"`
	Biography string `json:"biography"`
}

// List lists authors with pagination
func (s *AuthorService) List(ctx context.Context, params *pagination.Params) ([]*models.Author, int64, error) {
	return s.store.Authors.List(ctx, params.Offset, params.Limit)
}

// Search finds authors by name, case-insensitively
func (s *AuthorService) Search(ctx context.Context, name string) ([]*models.Author, error) {
	return s.store.Authors.Search(ctx, strings.TrimSpace(name))
}

// Get gets an author by ID
func (s *AuthorService) Get(ctx context.Context, id uint) (*models.Author, error) {
	author, err := s.store.Authors.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, domain.EntityAuthor, id)
	}
	return author, nil
}

// Create creates a new author with a unique name
func (s *AuthorService) Create(ctx context.Context, input *AuthorInput) (*models.Author, error) {
	author := &models.Author{
		Name:      strings.TrimSpace(input.Name),
		Biography: input.Biography,
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		exists, err := tx.Authors.ExistsByName(ctx, author.Name, 0)
		if err != nil {
			return err
		}
		if exists {
			return domain.NewAlreadyExists(domain.EntityAuthor, "name", author.Name)
		}
		return duplicateOr(tx.Authors.Create(ctx, author), domain.EntityAuthor, "name", author.Name)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Author created: %s (ID: %d)", author.Name, author.ID)
	return author, nil
}

// Update updates an author; a changed name must stay unique
func (s *AuthorService) Update(ctx context.Context, id uint, input *AuthorInput) (*models.Author, error) {
	var author *models.Author
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		author, err = tx.Authors.GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, domain.EntityAuthor, id)
		}

		name := strings.TrimSpace(input.Name)
		if name != author.Name {
			exists, err := tx.Authors.ExistsByName(ctx, name, id)
			if err != nil {
				return err
			}
			if exists {
				return domain.NewAlreadyExists(domain.EntityAuthor, "name", name)
			}
		}

		author.Name = name
		author.Biography = input.Biography
		return duplicateOr(tx.Authors.Update(ctx, author), domain.EntityAuthor, "name", name)
	})
	if err != nil {
		return nil, err
	}
	return author, nil
}

// Delete deletes an author, its books, and their borrow records
func (s *AuthorService) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		exists, err := tx.Authors.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewNotFound(domain.EntityAuthor, id)
		}
		return tx.Authors.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Printf("🗑️ Author deleted (ID: %d)", id)
	return nil
}

// ListBooks lists an author's books
func (s *AuthorService) ListBooks(ctx context.Context, id uint) ([]*models.BookResponse, error) {
	exists, err := s.store.Authors.ExistsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFound(domain.EntityAuthor, id)
	}
	books, err := s.store.Books.ListByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookResponses(ctx, s.store.Borrows, books)
}
