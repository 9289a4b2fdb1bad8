package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories bound to one *gorm.DB handle,
// either the connection pool or an open transaction.
type Store struct {
	db *gorm.DB

	Librarians LibrarianRepository
	Authors    AuthorRepository
	Categories CategoryRepository
	Books      BookRepository
	Members    MemberRepository
	Borrows    BorrowRepository
}

// NewStore creates a store over db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Librarians: NewLibrarianRepository(db),
		Authors:    NewAuthorRepository(db),
		Categories: NewCategoryRepository(db),
		Books:      NewBookRepository(db),
		Members:    NewMemberRepository(db),
		Borrows:    NewBorrowRepository(db),
	}
}

// DB returns the underlying handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a store bound to a single transaction.
// Any error returned by fn rolls the transaction back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
