package repositories

import (
	"context"
	"strings"

	"libraryhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// authorRepository implements AuthorRepository interface
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

// Create creates a new author
func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

// GetByID gets an author by ID
func (r *authorRepository) GetByID(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&author).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Update updates an author
func (r *authorRepository) Update(ctx context.Context, author *models.Author) error {
	return r.db.WithContext(ctx).Save(author).Error
}

// Delete removes the author together with its books
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)

	var bookIDs []uint
	if err := db.Model(&models.Book{}).Where("author_id = ?", id).Pluck("id", &bookIDs).Error; err != nil {
		return err
	}

	if len(bookIDs) > 0 {
		if err := db.Where("book_id IN ?", bookIDs).Delete(&models.BorrowRecord{}).Error; err != nil {
			return err
		}
		if err := db.Exec("DELETE FROM book_categories WHERE book_id IN ?", bookIDs).Error; err != nil {
			return err
		}
	}
	if err := db.Where("author_id = ?", id).Delete(&models.Book{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Author{}, id).Error
}

// List lists authors with pagination
func (r *authorRepository) List(ctx context.Context, offset, limit int) ([]*models.Author, int64, error) {
	var authors []*models.Author
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Author{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}

	return authors, total, nil
}

// Search finds authors whose name contains name, case-insensitively
func (r *authorRepository) Search(ctx context.Context, name string) ([]*models.Author, error) {
	var authors []*models.Author
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%").
		Order("id ASC").
		Find(&authors).Error
	if err != nil {
		return nil, err
	}
	return authors, nil
}

// ExistsByID checks if an author exists
func (r *authorRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Author{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ExistsByName checks if another author already uses name
func (r *authorRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Author{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}
