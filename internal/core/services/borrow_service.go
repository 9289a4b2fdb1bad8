package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// BorrowService is the borrow ledger. It is the only writer of borrow records.
type BorrowService struct {
	store  *repositories.Store
	cfg    config.BorrowConfig
	now    func() time.Time
	tracer trace.Tracer
}

// NewBorrowService creates a new borrow service
func NewBorrowService(store *repositories.Store, cfg config.BorrowConfig) *BorrowService {
	if cfg.DefaultDays <= 0 {
		cfg.DefaultDays = domain.DefaultBorrowDays
	}
	return &BorrowService{
		store:  store,
		cfg:    cfg,
		now:    time.Now,
		tracer: otel.Tracer("libraryhub/ledger"),
	}
}

// WithClock replaces the time source
func (s *BorrowService) WithClock(now func() time.Time) *BorrowService {
	s.now = now
	return s
}

// Now returns the ledger's current time in UTC
func (s *BorrowService) Now() time.Time {
	return s.now().UTC()
}

// BorrowInput represents borrow input
type BorrowInput struct {
	BookID       uint `json:"book_id" validate:"required"`
	MemberID     uint `json:"member_id" validate:"required"`
	DurationDays *int `json:"duration_days"`
}

func (s *BorrowService) loanDays(input BorrowInput) (int, error) {
	if input.DurationDays == nil {
		return s.cfg.DefaultDays, nil
	}
	days := *input.DurationDays
	if days <= 0 {
		return 0, domain.NewValidation("duration_days: must be a positive integer")
	}
	if s.cfg.MaxDays > 0 && days > s.cfg.MaxDays {
		return 0, domain.NewValidation(fmt.Sprintf("duration_days: must be at most %d", s.cfg.MaxDays))
	}
	return days, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// Borrow opens a loan of a book to a member.
// Checks run in order under a lock on the book row: book exists, book is
// not already borrowed, member exists, member has no overdue loans.
func (s *BorrowService) Borrow(ctx context.Context, input BorrowInput) (*models.BorrowRecord, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Borrow", trace.WithAttributes(
		attribute.Int64("book.id", int64(input.BookID)),
		attribute.Int64("member.id", int64(input.MemberID)),
	))
	defer span.End()

	days, err := s.loanDays(input)
	if err != nil {
		return nil, fail(span, err)
	}

	var recordID uint
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Books.GetByIDForUpdate(ctx, input.BookID); err != nil {
			return notFoundOr(err, domain.EntityBook, input.BookID)
		}

		borrowed, err := tx.Borrows.ExistsBorrowedForBook(ctx, input.BookID)
		if err != nil {
			return err
		}
		if borrowed {
			return domain.ErrBookAlreadyBorrowed
		}

		exists, err := tx.Members.ExistsByID(ctx, input.MemberID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewNotFound(domain.EntityMember, input.MemberID)
		}

		now := s.Now()
		overdue, err := tx.Borrows.ExistsOverdueForMember(ctx, input.MemberID, now)
		if err != nil {
			return err
		}
		if overdue {
			return domain.ErrMemberHasOverdue
		}

		record := &models.BorrowRecord{
			BookID:     input.BookID,
			MemberID:   input.MemberID,
			BorrowDate: now,
			DueDate:    now.AddDate(0, 0, days),
			Status:     domain.StatusBorrowed,
		}
		if err := tx.Borrows.Create(ctx, record); err != nil {
			return err
		}
		recordID = record.ID
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}

	record, err := s.store.Borrows.GetByID(ctx, recordID)
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int64("borrow.id", int64(record.ID)))

	log.Printf("📚 Book %d borrowed by member %d (record %d, due %s)",
		record.BookID, record.MemberID, record.ID, record.DueDate.Format(time.DateOnly))
	return record, nil
}

// Return closes a live loan. A record is returned at most once.
func (s *BorrowService) Return(ctx context.Context, borrowID uint) (*models.BorrowRecord, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Return", trace.WithAttributes(
		attribute.Int64("borrow.id", int64(borrowID)),
	))
	defer span.End()

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		record, err := tx.Borrows.GetByIDForUpdate(ctx, borrowID)
		if err != nil {
			return notFoundOr(err, domain.EntityBorrow, borrowID)
		}
		if !record.IsBorrowed() {
			return domain.ErrAlreadyReturned
		}

		now := s.Now()
		record.ReturnDate = &now
		record.Status = domain.StatusReturned
		return tx.Borrows.Update(ctx, record)
	})
	if err != nil {
		return nil, fail(span, err)
	}

	record, err := s.store.Borrows.GetByID(ctx, borrowID)
	if err != nil {
		return nil, fail(span, err)
	}

	log.Printf("📗 Book %d returned by member %d (record %d)", record.BookID, record.MemberID, record.ID)
	return record, nil
}

// Get gets a borrow record by ID
func (s *BorrowService) Get(ctx context.Context, id uint) (*models.BorrowRecord, error) {
	record, err := s.store.Borrows.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, domain.EntityBorrow, id)
	}
	return record, nil
}

// List lists borrow records, all of them when status is nil
func (s *BorrowService) List(ctx context.Context, status *domain.BorrowStatus) ([]*models.BorrowRecord, error) {
	if status != nil && !status.Valid() {
		return nil, domain.NewValidation(fmt.Sprintf("status: must be %s or %s", domain.StatusBorrowed, domain.StatusReturned))
	}
	return s.store.Borrows.List(ctx, status)
}

// ListForMember lists a member's loans, only the open ones when currentOnly
func (s *BorrowService) ListForMember(ctx context.Context, memberID uint, currentOnly bool) ([]*models.BorrowRecord, error) {
	exists, err := s.store.Members.ExistsByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFound(domain.EntityMember, memberID)
	}
	return s.store.Borrows.ListByMember(ctx, memberID, currentOnly)
}

// ListForBook lists a book's loan history, newest first
func (s *BorrowService) ListForBook(ctx context.Context, bookID uint) ([]*models.BorrowRecord, error) {
	exists, err := s.store.Books.ExistsByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFound(domain.EntityBook, bookID)
	}
	return s.store.Borrows.ListByBook(ctx, bookID)
}

// ListOverdue lists open loans due strictly before asOf, or before now when asOf is nil
func (s *BorrowService) ListOverdue(ctx context.Context, asOf *time.Time) ([]*models.BorrowRecord, error) {
	cutoff := s.Now()
	if asOf != nil {
		cutoff = asOf.UTC()
	}
	return s.store.Borrows.ListDueBefore(ctx, cutoff)
}
