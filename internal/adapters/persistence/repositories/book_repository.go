package repositories

import (
	"context"
	"strings"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// bookRepository implements BookRepository interface
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("categories.id ASC")
		})
}

// Create creates a new book and links it to its categories.
// The categories themselves must already exist.
func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Omit("Author", "Categories.*").Create(book).Error
}

// GetByID gets a book by ID with its author and categories
func (r *bookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.withRelations(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByIDForUpdate gets a book by ID holding a row lock
func (r *bookRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByISBN gets a book by ISBN
func (r *bookRepository) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	var book models.Book
	err := r.withRelations(ctx).Where("isbn = ?", isbn).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Update updates book columns and replaces its category links
func (r *bookRepository) Update(ctx context.Context, book *models.Book, categories []models.Category) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Save(book).Error; err != nil {
		return err
	}

	assoc := db.Model(book).Association("Categories")
	if len(categories) == 0 {
		if err := assoc.Clear(); err != nil {
			return err
		}
		book.Categories = []models.Category{}
		return nil
	}
	if err := assoc.Replace(categories); err != nil {
		return err
	}
	book.Categories = categories
	return nil
}

// Delete removes the book with its borrow records and category links
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("book_id = ?", id).Delete(&models.BorrowRecord{}).Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM book_categories WHERE book_id = ?", id).Error; err != nil {
		return err
	}
	return db.Delete(&models.Book{}, id).Error
}

func applyBookFilter(db *gorm.DB, f BookFilter) *gorm.DB {
	if f.Title != "" {
		db = db.Where("LOWER(books.title) LIKE ?", "%"+strings.ToLower(f.Title)+"%")
	}
	if f.AuthorID != 0 {
		db = db.Where("books.author_id = ?", f.AuthorID)
	}
	if f.CategoryID != 0 {
		db = db.Where("books.id IN (SELECT book_id FROM book_categories WHERE category_id = ?)", f.CategoryID)
	}
	if f.Year != nil {
		db = db.Where("books.publication_year = ?", *f.Year)
	}
	if f.Available != nil {
		borrowed := "SELECT book_id FROM borrowed_books WHERE status = ?"
		if *f.Available {
			db = db.Where("books.id NOT IN ("+borrowed+")", domain.StatusBorrowed)
		} else {
			db = db.Where("books.id IN ("+borrowed+")", domain.StatusBorrowed)
		}
	}
	return db
}

// List lists books matching filter with pagination
func (r *bookRepository) List(ctx context.Context, filter BookFilter, offset, limit int) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	if err := applyBookFilter(r.db.WithContext(ctx).Model(&models.Book{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := applyBookFilter(r.withRelations(ctx), filter).
		Order("books.id ASC").
		Offset(offset).Limit(limit).
		Find(&books).Error; err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// ListByAuthor lists the books written by an author
func (r *bookRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Book, error) {
	var books []*models.Book
	err := r.withRelations(ctx).
		Where("author_id = ?", authorID).
		Order("id ASC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// ListByCategory lists the books linked to a category
func (r *bookRepository) ListByCategory(ctx context.Context, categoryID uint) ([]*models.Book, error) {
	return r.listFiltered(ctx, BookFilter{CategoryID: categoryID})
}

func (r *bookRepository) listFiltered(ctx context.Context, filter BookFilter) ([]*models.Book, error) {
	var books []*models.Book
	err := applyBookFilter(r.withRelations(ctx), filter).
		Order("books.id ASC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// ExistsByID checks if a book exists
func (r *bookRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ExistsByISBN checks if another book already uses isbn
func (r *bookRepository) ExistsByISBN(ctx context.Context, isbn string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("isbn = ? AND id <> ?", isbn, excludeID).
		Count(&count).Error
	return count > 0, err
}
