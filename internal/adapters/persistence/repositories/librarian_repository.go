package repositories

import (
	"context"

	"libraryhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// librarianRepository implements LibrarianRepository interface
type librarianRepository struct {
	db *gorm.DB
}

// NewLibrarianRepository creates a new librarian repository
func NewLibrarianRepository(db *gorm.DB) LibrarianRepository {
	return &librarianRepository{db: db}
}

// Create creates a new librarian
func (r *librarianRepository) Create(ctx context.Context, librarian *models.Librarian) error {
	return r.db.WithContext(ctx).Create(librarian).Error
}

// GetByID gets a librarian by ID
func (r *librarianRepository) GetByID(ctx context.Context, id uint) (*models.Librarian, error) {
	var librarian models.Librarian
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&librarian).Error
	if err != nil {
		return nil, err
	}
	return &librarian, nil
}

// GetByUsername gets a librarian by username
func (r *librarianRepository) GetByUsername(ctx context.Context, username string) (*models.Librarian, error) {
	var librarian models.Librarian
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&librarian).Error
	if err != nil {
		return nil, err
	}
	return &librarian, nil
}

// ExistsByUsername checks if username exists
func (r *librarianRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Librarian{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if email exists
func (r *librarianRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Librarian{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// CountByRole counts librarians holding role
func (r *librarianRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Librarian{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
