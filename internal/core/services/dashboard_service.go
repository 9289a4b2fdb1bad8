package services

import (
	"context"
	"time"

	"libraryhub/internal/core/domain"

	"gorm.io/gorm"
)

const (
	// TopListSize bounds the popular-books and top-borrowers lists
	TopListSize = 10

	DefaultRecentLimit = 10
	MaxRecentLimit     = 100
)

// DashboardService serves read-only reports over the catalog and the ledger
type DashboardService struct {
	db     *gorm.DB
	ledger *BorrowService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB, ledger *BorrowService) *DashboardService {
	return &DashboardService{db: db, ledger: ledger}
}

// ============================================================
// Overview
// ============================================================

// Overview represents the headline library counters
type Overview struct {
	TotalBooks         int64 `json:"total_books"`
	BorrowedBooks      int64 `json:"borrowed_books"`
	AvailableBooks     int64 `json:"available_books"`
	TotalMembers       int64 `json:"total_members"`
	ActiveMembers      int64 `json:"active_members"`
	MembersWithOverdue int64 `json:"members_with_overdue"`
}

// GetOverview returns the headline counters
func (s *DashboardService) GetOverview(ctx context.Context) (*Overview, error) {
	data := &Overview{}
	db := s.db.WithContext(ctx)
	now := s.ledger.Now()

	if err := db.Table("books").Count(&data.TotalBooks).Error; err != nil {
		return nil, err
	}

	if err := db.Table("borrowed_books").
		Where("status = ?", domain.StatusBorrowed).
		Distinct("book_id").
		Count(&data.BorrowedBooks).Error; err != nil {
		return nil, err
	}
	data.AvailableBooks = data.TotalBooks - data.BorrowedBooks

	if err := db.Table("members").Count(&data.TotalMembers).Error; err != nil {
		return nil, err
	}

	if err := db.Table("borrowed_books").
		Where("status = ?", domain.StatusBorrowed).
		Distinct("member_id").
		Count(&data.ActiveMembers).Error; err != nil {
		return nil, err
	}

	if err := db.Table("borrowed_books").
		Where("status = ? AND due_date < ?", domain.StatusBorrowed, now).
		Distinct("member_id").
		Count(&data.MembersWithOverdue).Error; err != nil {
		return nil, err
	}

	return data, nil
}

// ============================================================
// Book Reports
// ============================================================

// PopularBook represents a book with its lifetime borrow count
type PopularBook struct {
	BookID      uint   `json:"book_id"`
	Title       string `json:"title"`
	AuthorName  string `json:"author_name"`
	BorrowCount int64  `json:"borrow_count"`
}

// GetPopularBooks returns the most borrowed books, ties broken by book ID
func (s *DashboardService) GetPopularBooks(ctx context.Context) ([]PopularBook, error) {
	rows := make([]PopularBook, 0, TopListSize)
	err := s.db.WithContext(ctx).Table("books").
		Select("books.id AS book_id, books.title, authors.name AS author_name, COUNT(borrowed_books.id) AS borrow_count").
		Joins("LEFT JOIN authors ON authors.id = books.author_id").
		Joins("LEFT JOIN borrowed_books ON borrowed_books.book_id = books.id").
		Group("books.id, books.title, authors.name").
		Order("borrow_count DESC, books.id ASC").
		Limit(TopListSize).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CategoryCount represents the number of books in a category
type CategoryCount struct {
	CategoryID uint   `json:"category_id"`
	Category   string `json:"category"`
	BookCount  int64  `json:"book_count"`
}

// GetBooksByCategory returns per-category book counts ordered by category ID
func (s *DashboardService) GetBooksByCategory(ctx context.Context) ([]CategoryCount, error) {
	rows := make([]CategoryCount, 0)
	err := s.db.WithContext(ctx).Table("categories").
		Select("categories.id AS category_id, categories.name AS category, COUNT(book_categories.book_id) AS book_count").
		Joins("LEFT JOIN book_categories ON book_categories.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ============================================================
// Member Reports
// ============================================================

// TopBorrower represents a member with lifetime and current borrow counts
type TopBorrower struct {
	MemberID       uint   `json:"member_id"`
	Name           string `json:"name"`
	BorrowCount    int64  `json:"borrow_count"`
	CurrentBorrows int64  `json:"current_borrows"`
}

// GetTopBorrowers returns the members with the most loans, ties broken by member ID
func (s *DashboardService) GetTopBorrowers(ctx context.Context) ([]TopBorrower, error) {
	var rows []struct {
		MemberID       uint
		FirstName      string
		LastName       string
		BorrowCount    int64
		CurrentBorrows int64
	}
	err := s.db.WithContext(ctx).Table("members").
		Select(`
			members.id AS member_id,
			members.first_name,
			members.last_name,
			COUNT(borrowed_books.id) AS borrow_count,
			COALESCE(SUM(CASE WHEN borrowed_books.status = ? THEN 1 ELSE 0 END), 0) AS current_borrows
		`, domain.StatusBorrowed).
		Joins("LEFT JOIN borrowed_books ON borrowed_books.member_id = members.id").
		Group("members.id, members.first_name, members.last_name").
		Order("borrow_count DESC, members.id ASC").
		Limit(TopListSize).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]TopBorrower, len(rows))
	for i, r := range rows {
		out[i] = TopBorrower{
			MemberID:       r.MemberID,
			Name:           r.FirstName + " " + r.LastName,
			BorrowCount:    r.BorrowCount,
			CurrentBorrows: r.CurrentBorrows,
		}
	}
	return out, nil
}

// ============================================================
// Borrow Reports
// ============================================================

// OverdueBorrow represents one overdue loan
type OverdueBorrow struct {
	BorrowID    uint      `json:"borrow_id"`
	BookID      uint      `json:"book_id"`
	BookTitle   string    `json:"book_title"`
	MemberID    uint      `json:"member_id"`
	MemberName  string    `json:"member_name"`
	DueDate     time.Time `json:"due_date"`
	DaysOverdue int       `json:"days_overdue"`
}

// GetOverdueBorrows returns open loans due before asOf (now when nil)
// with the number of whole days elapsed since each due date
func (s *DashboardService) GetOverdueBorrows(ctx context.Context, asOf *time.Time) ([]OverdueBorrow, error) {
	cutoff := s.ledger.Now()
	if asOf != nil {
		cutoff = asOf.UTC()
	}

	records, err := s.ledger.ListOverdue(ctx, &cutoff)
	if err != nil {
		return nil, err
	}

	out := make([]OverdueBorrow, 0, len(records))
	for _, r := range records {
		item := OverdueBorrow{
			BorrowID:    r.ID,
			BookID:      r.BookID,
			MemberID:    r.MemberID,
			DueDate:     r.DueDate,
			DaysOverdue: r.DaysOverdue(cutoff),
		}
		if r.Book != nil {
			item.BookTitle = r.Book.Title
		}
		if r.Member != nil {
			item.MemberName = r.Member.FullName()
		}
		out = append(out, item)
	}
	return out, nil
}

// RecentBorrow represents a loan in the recent activity feed
type RecentBorrow struct {
	BorrowID   uint                `json:"borrow_id"`
	BookTitle  string              `json:"book_title"`
	MemberName string              `json:"member_name"`
	BorrowDate time.Time           `json:"borrow_date"`
	DueDate    time.Time           `json:"due_date"`
	Status     domain.BorrowStatus `json:"status"`
}

// ClampRecentLimit applies the default and maximum to a requested feed size
func ClampRecentLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		return MaxRecentLimit
	}
	return limit
}

// GetRecentBorrows returns the newest loans, ties broken by newest ID
func (s *DashboardService) GetRecentBorrows(ctx context.Context, limit int) ([]RecentBorrow, error) {
	var rows []struct {
		ID         uint
		Title      string
		FirstName  string
		LastName   string
		BorrowDate time.Time
		DueDate    time.Time
		Status     domain.BorrowStatus
	}
	err := s.db.WithContext(ctx).Table("borrowed_books").
		Select("borrowed_books.id, books.title, members.first_name, members.last_name, borrowed_books.borrow_date, borrowed_books.due_date, borrowed_books.status").
		Joins("JOIN books ON books.id = borrowed_books.book_id").
		Joins("JOIN members ON members.id = borrowed_books.member_id").
		Order("borrowed_books.borrow_date DESC, borrowed_books.id DESC").
		Limit(ClampRecentLimit(limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]RecentBorrow, len(rows))
	for i, r := range rows {
		out[i] = RecentBorrow{
			BorrowID:   r.ID,
			BookTitle:  r.Title,
			MemberName: r.FirstName + " " + r.LastName,
			BorrowDate: r.BorrowDate,
			DueDate:    r.DueDate,
			Status:     r.Status,
		}
	}
	return out, nil
}
