// Package testutil provides a throwaway SQLite database and fixtures for tests.
package testutil

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Epoch is the fixed "now" most tests run at
var Epoch = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

// NewDB opens a migrated SQLite database in a temp dir, closed when the test ends
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	password.Cost = bcrypt.MinCost

	db, err := config.Open(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "library.db"),
	}, logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Clock is a settable time source
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock stopped at now
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current fake time
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ============================================================
// Fixtures
// ============================================================

func Author(t testing.TB, db *gorm.DB, name string) *models.Author {
	t.Helper()
	a := &models.Author{Name: name}
	require.NoError(t, db.Create(a).Error)
	return a
}

func Category(t testing.TB, db *gorm.DB, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

func Book(t testing.TB, db *gorm.DB, authorID uint, isbn, title string, categories ...models.Category) *models.Book {
	t.Helper()
	b := &models.Book{Title: title, ISBN: isbn, AuthorID: authorID, Categories: categories}
	require.NoError(t, db.Omit("Categories.*").Create(b).Error)
	return b
}

func Member(t testing.TB, db *gorm.DB, first, last, email, phone string) *models.Member {
	t.Helper()
	m := &models.Member{FirstName: first, LastName: last, Email: email, Phone: phone}
	require.NoError(t, db.Create(m).Error)
	return m
}

// Librarian creates a librarian whose password hashes to plain
func Librarian(t testing.TB, db *gorm.DB, username, plain string, role domain.Role, active bool) *models.Librarian {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)

	l := &models.Librarian{
		Username: username,
		Email:    username + "@libraryhub.test",
		Password: hash,
		Role:     string(role),
		IsActive: true,
	}
	require.NoError(t, db.Create(l).Error)
	if !active {
		// gorm skips zero values on create, so the default would win
		require.NoError(t, db.Model(l).Update("is_active", false).Error)
		l.IsActive = false
	}
	return l
}

// Loan inserts a BORROWED record directly, bypassing the ledger checks
func Loan(t testing.TB, db *gorm.DB, bookID, memberID uint, borrowed, due time.Time) *models.BorrowRecord {
	t.Helper()
	r := &models.BorrowRecord{
		BookID:     bookID,
		MemberID:   memberID,
		BorrowDate: borrowed.UTC(),
		DueDate:    due.UTC(),
		Status:     domain.StatusBorrowed,
	}
	require.NoError(t, db.Omit("Book", "Member").Create(r).Error)
	return r
}
