package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	notFound := NewNotFound(EntityBook, uint(4))
	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.NotErrorIs(t, notFound, ErrConflict)
	assert.Equal(t, "Book not found with id: '4'", notFound.Error())

	exists := NewAlreadyExists(EntityMember, "email", "a@b.c")
	assert.ErrorIs(t, exists, ErrAlreadyExists)
	assert.Equal(t, "Member already exists with email: 'a@b.c'", exists.Error())

	verr := NewValidation("duration_days: must be a positive integer")
	assert.ErrorIs(t, verr, ErrValidation)
	assert.Contains(t, verr.Error(), "duration_days")
}

func TestConflictMatching(t *testing.T) {
	wrapped := fmt.Errorf("borrow: %w", ErrBookAlreadyBorrowed)

	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.ErrorIs(t, wrapped, ErrBookAlreadyBorrowed)
	assert.NotErrorIs(t, wrapped, ErrMemberHasOverdue)
	assert.ErrorIs(t, &ConflictError{Reason: "already returned"}, ErrAlreadyReturned)

	var ce *ConflictError
	assert.True(t, errors.As(wrapped, &ce))
	assert.Equal(t, "book already borrowed", ce.Reason)
}

func TestBorrowStatusValid(t *testing.T) {
	assert.True(t, StatusBorrowed.Valid())
	assert.True(t, StatusReturned.Valid())
	assert.False(t, BorrowStatus("LOST").Valid())
	assert.False(t, BorrowStatus("borrowed").Valid())
}
