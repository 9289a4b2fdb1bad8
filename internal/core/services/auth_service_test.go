package services

import (
	"context"
	"testing"

	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	lib := newLibrary(t)
	auth := NewAuthService(lib.store.Librarians, config.JWTConfig{Secret: "test-secret", AccessTokenMins: 15})
	ctx := context.Background()

	admin := testutil.Librarian(t, lib.db, "admin", "correct-horse", domain.RoleAdmin, true)
	testutil.Librarian(t, lib.db, "retired", "correct-horse", domain.RoleLibrarian, false)

	resp, err := auth.Login(ctx, &LoginInput{Username: "admin", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, admin.ID, resp.Librarian.ID)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := auth.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.LibrarianID)
	assert.Equal(t, string(domain.RoleAdmin), claims.Role)

	_, err = auth.Login(ctx, &LoginInput{Username: "admin", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = auth.Login(ctx, &LoginInput{Username: "nobody", Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = auth.Login(ctx, &LoginInput{Username: "retired", Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)

	me, err := auth.GetLibrarian(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", me.Username)

	_, err = auth.GetLibrarian(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistry(t *testing.T) {
	db := testutil.NewDB(t)
	reg := NewRegistry(db, &config.Config{
		JWT:    config.JWTConfig{Secret: "s", AccessTokenMins: 5},
		Borrow: config.BorrowConfig{},
	})

	require.NotNil(t, reg.Borrows)
	require.NotNil(t, reg.Dashboard)
	assert.Equal(t, db, reg.Store.DB())

	record, err := reg.Borrows.Borrow(context.Background(), BorrowInput{BookID: 1, MemberID: 1})
	assert.Nil(t, record)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
