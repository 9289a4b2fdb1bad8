package repositories

import (
	"context"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// borrowRepository implements BorrowRepository interface
type borrowRepository struct {
	db *gorm.DB
}

// NewBorrowRepository creates a new borrow record repository
func NewBorrowRepository(db *gorm.DB) BorrowRepository {
	return &borrowRepository{db: db}
}

func (r *borrowRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Book").
		Preload("Book.Author").
		Preload("Member")
}

// Create creates a new borrow record
func (r *borrowRepository) Create(ctx context.Context, record *models.BorrowRecord) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error
}

// GetByID gets a borrow record by ID with its book and member
func (r *borrowRepository) GetByID(ctx context.Context, id uint) (*models.BorrowRecord, error) {
	var record models.BorrowRecord
	err := r.withRelations(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByIDForUpdate gets a borrow record by ID holding a row lock
func (r *borrowRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.BorrowRecord, error) {
	var record models.BorrowRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Update updates a borrow record
func (r *borrowRepository) Update(ctx context.Context, record *models.BorrowRecord) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(record).Error
}

// List lists borrow records, optionally by status, newest first
func (r *borrowRepository) List(ctx context.Context, status *domain.BorrowStatus) ([]*models.BorrowRecord, error) {
	var records []*models.BorrowRecord
	query := r.withRelations(ctx)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Order("borrow_date DESC, id DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListByMember lists a member's records, only the live ones when currentOnly
func (r *borrowRepository) ListByMember(ctx context.Context, memberID uint, currentOnly bool) (models.BorrowRecords, error) {
	var records models.BorrowRecords
	query := r.withRelations(ctx).Where("member_id = ?", memberID)
	if currentOnly {
		query = query.Where("status = ?", domain.StatusBorrowed)
	}
	err := query.Order("borrow_date DESC, id DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListCurrentByMembers lists the live records of memberIDs
func (r *borrowRepository) ListCurrentByMembers(ctx context.Context, memberIDs []uint) (models.BorrowRecords, error) {
	records := make(models.BorrowRecords, 0)
	if len(memberIDs) == 0 {
		return records, nil
	}
	err := r.db.WithContext(ctx).
		Where("member_id IN ? AND status = ?", memberIDs, domain.StatusBorrowed).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListByBook lists a book's borrow history, newest first
func (r *borrowRepository) ListByBook(ctx context.Context, bookID uint) (models.BorrowRecords, error) {
	var records models.BorrowRecords
	err := r.withRelations(ctx).
		Where("book_id = ?", bookID).
		Order("borrow_date DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListDueBefore lists live records due strictly before t, oldest due first
func (r *borrowRepository) ListDueBefore(ctx context.Context, t time.Time) (models.BorrowRecords, error) {
	var records models.BorrowRecords
	err := r.withRelations(ctx).
		Where("status = ? AND due_date < ?", domain.StatusBorrowed, t).
		Order("due_date ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ExistsBorrowedForBook checks if the book has a live record
func (r *borrowRepository) ExistsBorrowedForBook(ctx context.Context, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BorrowRecord{}).
		Where("book_id = ? AND status = ?", bookID, domain.StatusBorrowed).
		Count(&count).Error
	return count > 0, err
}

// ExistsOverdueForMember checks if the member has a live record due before now
func (r *borrowRepository) ExistsOverdueForMember(ctx context.Context, memberID uint, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BorrowRecord{}).
		Where("member_id = ? AND status = ? AND due_date < ?", memberID, domain.StatusBorrowed, now).
		Count(&count).Error
	return count > 0, err
}

// BorrowedBookIDs reports which of bookIDs are currently borrowed
func (r *borrowRepository) BorrowedBookIDs(ctx context.Context, bookIDs []uint) (map[uint]bool, error) {
	borrowed := make(map[uint]bool, len(bookIDs))
	if len(bookIDs) == 0 {
		return borrowed, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.BorrowRecord{}).
		Where("book_id IN ? AND status = ?", bookIDs, domain.StatusBorrowed).
		Distinct().
		Pluck("book_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		borrowed[id] = true
	}
	return borrowed, nil
}
