package models

import (
	"time"

	"libraryhub/internal/core/domain"
)

// BorrowRecord represents borrowed_books table.
// Created only by a borrow, mutated only by a return.
type BorrowRecord struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	BookID     uint                `gorm:"not null;index" json:"book_id"`
	MemberID   uint                `gorm:"not null;index" json:"member_id"`
	BorrowDate time.Time           `gorm:"not null;index" json:"borrow_date"`
	DueDate    time.Time           `gorm:"not null;index" json:"due_date"`
	ReturnDate *time.Time          `json:"return_date"`
	Status     domain.BorrowStatus `gorm:"size:20;not null;index;default:'BORROWED'" json:"status"`
	CreatedAt  time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Book   *Book   `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (BorrowRecord) TableName() string {
	return "borrowed_books"
}

// IsBorrowed reports whether the record is a live loan
func (r *BorrowRecord) IsBorrowed() bool {
	return r.Status == domain.StatusBorrowed
}

// IsOverdue reports whether the record is a live loan past its due date at now
func (r *BorrowRecord) IsOverdue(now time.Time) bool {
	return r.IsBorrowed() && r.DueDate.Before(now)
}

// DaysOverdue returns whole days elapsed since the due date, or 0 if not yet due
func (r *BorrowRecord) DaysOverdue(now time.Time) int {
	if !r.DueDate.Before(now) {
		return 0
	}
	return int(now.Sub(r.DueDate) / (24 * time.Hour))
}

// BorrowRecords is a read-only view over a set of borrow records
type BorrowRecords []*BorrowRecord

// Current returns the records still borrowed
func (rs BorrowRecords) Current() BorrowRecords {
	out := make(BorrowRecords, 0, len(rs))
	for _, r := range rs {
		if r.IsBorrowed() {
			out = append(out, r)
		}
	}
	return out
}

// AnyBorrowed reports whether any record is still borrowed
func (rs BorrowRecords) AnyBorrowed() bool {
	for _, r := range rs {
		if r.IsBorrowed() {
			return true
		}
	}
	return false
}

// AnyOverdue reports whether any borrowed record is due strictly before now
func (rs BorrowRecords) AnyOverdue(now time.Time) bool {
	for _, r := range rs {
		if r.IsOverdue(now) {
			return true
		}
	}
	return false
}

// DueBefore returns the borrowed records due strictly before t
func (rs BorrowRecords) DueBefore(t time.Time) BorrowRecords {
	out := make(BorrowRecords, 0)
	for _, r := range rs {
		if r.IsOverdue(t) {
			out = append(out, r)
		}
	}
	return out
}
