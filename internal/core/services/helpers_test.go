package services

import (
	"testing"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"
	"libraryhub/internal/testutil"

	"gorm.io/gorm"
)

// library is a small seeded catalog with a ledger running on a fake clock
type library struct {
	db     *gorm.DB
	store  *repositories.Store
	clock  *testutil.Clock
	ledger *BorrowService

	author *models.Author
	b1, b2 *models.Book
	m1, m2 *models.Member
}

func newLibrary(t *testing.T) *library {
	t.Helper()

	db := testutil.NewDB(t)
	store := repositories.NewStore(db)
	clock := testutil.NewClock(testutil.Epoch)

	lib := &library{
		db:    db,
		store: store,
		clock: clock,
		ledger: NewBorrowService(store, config.BorrowConfig{
			DefaultDays: 14,
			MaxDays:     90,
		}).WithClock(clock.Now),
	}

	lib.author = testutil.Author(t, db, "Ursula K. Le Guin")
	lib.b1 = testutil.Book(t, db, lib.author.ID, "978-0441478125", "The Left Hand of Darkness")
	lib.b2 = testutil.Book(t, db, lib.author.ID, "978-0060512750", "The Dispossessed")
	lib.m1 = testutil.Member(t, db, "Genly", "Ai", "genly@ekumen.org", "555-0001")
	lib.m2 = testutil.Member(t, db, "Estraven", "Harth", "estraven@karhide.gov", "555-0002")
	return lib
}

func days(n int) *int {
	return &n
}
