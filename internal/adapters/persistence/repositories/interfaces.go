package repositories

import (
	"context"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/domain"
)

// LibrarianRepository defines librarian repository interface
type LibrarianRepository interface {
	Create(ctx context.Context, librarian *models.Librarian) error
	GetByID(ctx context.Context, id uint) (*models.Librarian, error)
	GetByUsername(ctx context.Context, username string) (*models.Librarian, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// AuthorRepository defines author repository interface
type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
	GetByID(ctx context.Context, id uint) (*models.Author, error)
	Update(ctx context.Context, author *models.Author) error
	// Delete removes the author, its books, and everything those books own
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Author, int64, error)
	Search(ctx context.Context, name string) ([]*models.Author, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	// ExistsByName ignores the row with excludeID (0 excludes nothing)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
}

// CategoryRepository defines category repository interface
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	// Delete removes the category and its book links; books are kept
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Category, int64, error)
	Search(ctx context.Context, name string) ([]*models.Category, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
}

// BookFilter narrows book listings
type BookFilter struct {
	Title      string
	AuthorID   uint
	CategoryID uint
	Year       *int
	Available  *bool
}

// BookRepository defines book repository interface
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	// GetByIDForUpdate locks the book row for the rest of the transaction
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*models.Book, error)
	Update(ctx context.Context, book *models.Book, categories []models.Category) error
	// Delete removes the book, its borrow records, and its category links
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter BookFilter, offset, limit int) ([]*models.Book, int64, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]*models.Book, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]*models.Book, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByISBN(ctx context.Context, isbn string, excludeID uint) (bool, error)
}

// MemberRepository defines member repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	// Delete removes the member and its borrow records
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Member, int64, error)
	Search(ctx context.Context, name string) ([]*models.Member, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	ExistsByPhone(ctx context.Context, phone string, excludeID uint) (bool, error)
}

// BorrowRepository defines borrow record repository interface
type BorrowRepository interface {
	Create(ctx context.Context, record *models.BorrowRecord) error
	GetByID(ctx context.Context, id uint) (*models.BorrowRecord, error)
	// GetByIDForUpdate locks the record row for the rest of the transaction
	GetByIDForUpdate(ctx context.Context, id uint) (*models.BorrowRecord, error)
	Update(ctx context.Context, record *models.BorrowRecord) error
	List(ctx context.Context, status *domain.BorrowStatus) ([]*models.BorrowRecord, error)
	ListByMember(ctx context.Context, memberID uint, currentOnly bool) (models.BorrowRecords, error)
	// ListCurrentByMembers lists the live records of several members at once
	ListCurrentByMembers(ctx context.Context, memberIDs []uint) (models.BorrowRecords, error)
	ListByBook(ctx context.Context, bookID uint) (models.BorrowRecords, error)
	ListDueBefore(ctx context.Context, t time.Time) (models.BorrowRecords, error)
	ExistsBorrowedForBook(ctx context.Context, bookID uint) (bool, error)
	ExistsOverdueForMember(ctx context.Context, memberID uint, now time.Time) (bool, error)
	// BorrowedBookIDs returns which of bookIDs currently have a BORROWED record
	BorrowedBookIDs(ctx context.Context, bookIDs []uint) (map[uint]bool, error)
}
