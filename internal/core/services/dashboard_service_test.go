package services

import (
	"context"
	"testing"
	"time"

	"libraryhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_OverviewAndRankings(t *testing.T) {
	lib := newLibrary(t)
	dashboard := NewDashboardService(lib.db, lib.ledger)
	ctx := context.Background()

	fiction := testutil.Category(t, lib.db, "Fiction")
	testutil.Category(t, lib.db, "Poetry")
	require.NoError(t, lib.db.Model(lib.b1).Association("Categories").Append(fiction))
	require.NoError(t, lib.db.Model(lib.b2).Association("Categories").Append(fiction))

	// b2 is borrowed twice, b1 once; m1 is late on b1
	r, err := lib.ledger.Borrow(ctx, BorrowInput{BookID: lib.b2.ID, MemberID: lib.m2.ID})
	require.NoError(t, err)
	lib.clock.Advance(time.Hour)
	_, err = lib.ledger.Return(ctx, r.ID)
	require.NoError(t, err)
	_, err = lib.ledger.Borrow(ctx, BorrowInput{BookID: lib.b2.ID, MemberID: lib.m2.ID})
	require.NoError(t, err)
	testutil.Loan(t, lib.db, lib.b1.ID, lib.m1.ID, testutil.Epoch.AddDate(0, 0, -20), testutil.Epoch.AddDate(0, 0, -6))

	overview, err := dashboard.GetOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), overview.TotalBooks)
	assert.Equal(t, int64(2), overview.BorrowedBooks)
	assert.Equal(t, int64(0), overview.AvailableBooks)
	assert.Equal(t, int64(2), overview.TotalMembers)
	assert.Equal(t, int64(2), overview.ActiveMembers)
	assert.Equal(t, int64(1), overview.MembersWithOverdue)

	popular, err := dashboard.GetPopularBooks(ctx)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, lib.b2.ID, popular[0].BookID)
	assert.Equal(t, int64(2), popular[0].BorrowCount)
	assert.Equal(t, lib.author.Name, popular[0].AuthorName)
	assert.Equal(t, lib.b1.ID, popular[1].BookID)

	byCategory, err := dashboard.GetBooksByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, byCategory, 2)
	assert.Equal(t, "Fiction", byCategory[0].Category)
	assert.Equal(t, int64(2), byCategory[0].BookCount)
	assert.Equal(t, int64(0), byCategory[1].BookCount)

	top, err := dashboard.GetTopBorrowers(ctx)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, lib.m2.ID, top[0].MemberID)
	assert.Equal(t, int64(2), top[0].BorrowCount)
	assert.Equal(t, int64(1), top[0].CurrentBorrows)
	assert.Equal(t, "Estraven Harth", top[0].Name)
}

func TestDashboard_PopularTiesKeepIdentityOrder(t *testing.T) {
	lib := newLibrary(t)
	dashboard := NewDashboardService(lib.db, lib.ledger)

	popular, err := dashboard.GetPopularBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, lib.b1.ID, popular[0].BookID)
	assert.Equal(t, lib.b2.ID, popular[1].BookID)
	assert.Zero(t, popular[0].BorrowCount)
}

func TestDashboard_OverdueDaysAcrossYearBoundary(t *testing.T) {
	lib := newLibrary(t)
	dashboard := NewDashboardService(lib.db, lib.ledger)
	ctx := context.Background()

	due := time.Date(2023, time.December, 28, 9, 0, 0, 0, time.UTC)
	rec := testutil.Loan(t, lib.db, lib.b1.ID, lib.m1.ID, due.AddDate(0, 0, -14), due)

	asOf := time.Date(2024, time.January, 4, 12, 0, 0, 0, time.UTC)
	overdue, err := dashboard.GetOverdueBorrows(ctx, &asOf)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, rec.ID, overdue[0].BorrowID)
	assert.Equal(t, 7, overdue[0].DaysOverdue)
	assert.Equal(t, lib.b1.Title, overdue[0].BookTitle)
	assert.Equal(t, "Genly Ai", overdue[0].MemberName)

	// Default reference time is the ledger clock
	overdue, err = dashboard.GetOverdueBorrows(ctx, nil)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, int(testutil.Epoch.Sub(due).Hours())/24, overdue[0].DaysOverdue)
}

func TestDashboard_RecentBorrows(t *testing.T) {
	lib := newLibrary(t)
	dashboard := NewDashboardService(lib.db, lib.ledger)
	ctx := context.Background()

	first, err := lib.ledger.Borrow(ctx, BorrowInput{BookID: lib.b1.ID, MemberID: lib.m1.ID})
	require.NoError(t, err)
	lib.clock.Advance(time.Minute)
	second, err := lib.ledger.Borrow(ctx, BorrowInput{BookID: lib.b2.ID, MemberID: lib.m2.ID})
	require.NoError(t, err)

	recent, err := dashboard.GetRecentBorrows(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, second.ID, recent[0].BorrowID)
	assert.Equal(t, first.ID, recent[1].BorrowID)

	recent, err = dashboard.GetRecentBorrows(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, second.ID, recent[0].BorrowID)
}

func TestClampRecentLimit(t *testing.T) {
	assert.Equal(t, DefaultRecentLimit, ClampRecentLimit(0))
	assert.Equal(t, DefaultRecentLimit, ClampRecentLimit(-5))
	assert.Equal(t, 7, ClampRecentLimit(7))
	assert.Equal(t, MaxRecentLimit, ClampRecentLimit(MaxRecentLimit+1))
}
