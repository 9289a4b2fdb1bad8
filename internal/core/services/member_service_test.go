package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMemberService(lib *library) *MemberService {
	return NewMemberService(lib.store).WithClock(lib.clock.Now)
}

func TestMemberService_CreateNormalizesAndChecksUniqueness(t *testing.T) {
	lib := newLibrary(t)
	members := newMemberService(lib)
	ctx := context.Background()

	created, err := members.Create(ctx, &MemberInput{
		FirstName: " Shevek ",
		LastName:  "Anarres",
		Email:     " Shevek@Anarres.ORG ",
		Phone:     "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, "Shevek", created.FirstName)
	assert.Equal(t, "shevek@anarres.org", created.Email)
	assert.Empty(t, created.CurrentBorrows)
	assert.False(t, created.HasOverdueBooks)

	_, err = members.Create(ctx, &MemberInput{FirstName: "a", LastName: "b", Email: "SHEVEK@anarres.org", Phone: "555-0199"})
	var ae *domain.AlreadyExistsError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "email", ae.Field)

	_, err = members.Create(ctx, &MemberInput{FirstName: "a", LastName: "b", Email: "other@anarres.org", Phone: lib.m1.Phone})
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "phone", ae.Field)

	assert.Equal(t, int64(3), count(t, lib, &models.Member{}))
}

func TestMemberService_DuplicateKeyNamesCollidingColumn(t *testing.T) {
	lib := newLibrary(t)
	members := newMemberService(lib)
	ctx := context.Background()

	var ae *domain.AlreadyExistsError
	err := members.duplicateOr(ctx, gorm.ErrDuplicatedKey, &MemberInput{Email: "fresh@anarres.org", Phone: lib.m1.Phone}, 0)
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "phone", ae.Field)
	assert.Equal(t, lib.m1.Phone, ae.Value)

	err = members.duplicateOr(ctx, gorm.ErrDuplicatedKey, &MemberInput{Email: lib.m2.Email, Phone: "555-0999"}, 0)
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "email", ae.Field)

	// the colliding row is gone again by the time it is looked up
	err = members.duplicateOr(ctx, gorm.ErrDuplicatedKey, &MemberInput{Email: "fresh@anarres.org", Phone: "555-0999"}, 0)
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "email/phone", ae.Field)

	assert.ErrorIs(t, members.duplicateOr(ctx, context.Canceled, &MemberInput{}, 0), context.Canceled)
}

func TestMemberService_UpdateKeepsOwnEmail(t *testing.T) {
	lib := newLibrary(t)
	members := newMemberService(lib)
	ctx := context.Background()

	updated, err := members.Update(ctx, lib.m1.ID, &MemberInput{
		FirstName: "Genly",
		LastName:  "Ai",
		Email:     lib.m1.Email,
		Phone:     "555-0009",
	})
	require.NoError(t, err)
	assert.Equal(t, "555-0009", updated.Phone)

	_, err = members.Update(ctx, lib.m1.ID, &MemberInput{FirstName: "G", LastName: "A", Email: lib.m2.Email, Phone: "555-0009"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = members.Update(ctx, 999, &MemberInput{FirstName: "G", LastName: "A", Email: "x@y.z", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemberService_DerivedLoanViews(t *testing.T) {
	lib := newLibrary(t)
	members := newMemberService(lib)
	ctx := context.Background()

	r1, err := lib.ledger.Borrow(ctx, BorrowInput{BookID: lib.b1.ID, MemberID: lib.m1.ID, DurationDays: days(2)})
	require.NoError(t, err)
	r2, err := lib.ledger.Borrow(ctx, BorrowInput{BookID: lib.b2.ID, MemberID: lib.m1.ID})
	require.NoError(t, err)

	got, err := members.Get(ctx, lib.m1.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{r1.ID, r2.ID}, got.CurrentBorrows)
	assert.False(t, got.HasOverdueBooks)

	lib.clock.Advance(3 * 24 * time.Hour)
	got, err = members.Get(ctx, lib.m1.ID)
	require.NoError(t, err)
	assert.True(t, got.HasOverdueBooks)

	_, err = lib.ledger.Return(ctx, r1.ID)
	require.NoError(t, err)

	list, total, err := members.List(ctx, pagination.NewParams(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, []uint{r2.ID}, list[0].CurrentBorrows)
	assert.False(t, list[0].HasOverdueBooks)
	assert.Empty(t, list[1].CurrentBorrows)
}

func TestMemberService_Search(t *testing.T) {
	lib := newLibrary(t)
	members := newMemberService(lib)
	ctx := context.Background()

	byName, err := members.Search(ctx, "harth")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, lib.m2.ID, byName[0].ID)

	byEmail, err := members.Search(ctx, "GENLY@ekumen.org")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, lib.m1.ID, byEmail[0].ID)

	// Email lookups are exact, not substring matches
	none, err := members.Search(ctx, "@ekumen.org")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemberService_DeleteRemovesLoanHistory(t *testing.T) {
	lib := newLibrary(t)
	members := newMemberService(lib)
	ctx := context.Background()

	_, err := lib.ledger.Borrow(ctx, BorrowInput{BookID: lib.b1.ID, MemberID: lib.m1.ID})
	require.NoError(t, err)
	testutil.Loan(t, lib.db, lib.b2.ID, lib.m2.ID, testutil.Epoch, testutil.Epoch.AddDate(0, 0, 14))

	require.NoError(t, members.Delete(ctx, lib.m1.ID))
	assert.Equal(t, int64(1), count(t, lib, &models.BorrowRecord{}))
	assert.Equal(t, int64(2), count(t, lib, &models.Book{}), "books survive")

	// The book is free again
	_, err = lib.ledger.Borrow(ctx, BorrowInput{BookID: lib.b1.ID, MemberID: lib.m2.ID})
	assert.NoError(t, err)

	assert.ErrorIs(t, members.Delete(ctx, lib.m1.ID), domain.ErrNotFound)
}
