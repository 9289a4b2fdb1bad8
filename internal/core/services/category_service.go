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

// CategoryService handles category business logic
type CategoryService struct {
	store *repositories.Store
}

// NewCategoryService creates a new category service
func NewCategoryService(store *repositories.Store) *CategoryService {
	return &CategoryService{store: store}
}

// CategoryInput represents category create/update input
type CategoryInput struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description"`
}

// List lists categories with pagination
func (s *CategoryService) List(ctx context.Context, params *pagination.Params) ([]*models.Category, int64, error) {
	return s.store.Categories.List(ctx, params.Offset, params.Limit)
}

// Search finds categories by name, case-insensitively
func (s *CategoryService) Search(ctx context.Context, name string) ([]*models.Category, error) {
	return s.store.Categories.Search(ctx, strings.TrimSpace(name))
}

// Get gets a category by ID
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.store.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, domain.EntityCategory, id)
	}
	return category, nil
}

// Create creates a new category with a unique name
func (s *CategoryService) Create(ctx context.Context, input *CategoryInput) (*models.Category, error) {
	category := &models.Category{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		exists, err := tx.Categories.ExistsByName(ctx, category.Name, 0)
		if err != nil {
			return err
		}
		if exists {
			return domain.NewAlreadyExists(domain.EntityCategory, "name", category.Name)
		}
		return duplicateOr(tx.Categories.Create(ctx, category), domain.EntityCategory, "name", category.Name)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Category created: %s (ID: %d)", category.Name, category.ID)
	return category, nil
}

// Update updates a category; a changed name must stay unique
func (s *CategoryService) Update(ctx context.Context, id uint, input *CategoryInput) (*models.Category, error) {
	var category *models.Category
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		category, err = tx.Categories.GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, domain.EntityCategory, id)
		}

		name := strings.TrimSpace(input.Name)
		if name != category.Name {
			exists, err := tx.Categories.ExistsByName(ctx, name, id)
			if err != nil {
				return err
			}
			if exists {
				return domain.NewAlreadyExists(domain.EntityCategory, "name", name)
			}
		}

		category.Name = name
		category.Description = input.Description
		return duplicateOr(tx.Categories.Update(ctx, category), domain.EntityCategory, "name", name)
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Delete deletes a category. Its books stay in the catalog.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		exists, err := tx.Categories.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewNotFound(domain.EntityCategory, id)
		}
		return tx.Categories.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Printf("🗑️ Category deleted (ID: %d)", id)
	return nil
}

// ListBooks lists the books in a category
func (s *CategoryService) ListBooks(ctx context.Context, id uint) ([]*models.BookResponse, error) {
	exists, err := s.store.Categories.ExistsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFound(domain.EntityCategory, id)
	}
	books, err := s.store.Books.ListByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookResponses(ctx, s.store.Borrows, books)
}
