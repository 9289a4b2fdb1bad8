package validate

import (
	"errors"
	"testing"

	"libraryhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(&signup{Name: "ada", Email: "ada@example.com"}))

	err := Struct(&signup{Name: "ada lovelace", Email: "nope", Age: -1})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{
		"name: must be at most 5",
		"email: must be a valid email",
		"age: must be at least 0",
	}, verr.Fields)
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = Struct(&signup{})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name: is required")
}

type titled struct {
	Title string `json:"title" validate:"required,notblank,max=10"`
}

func TestStruct_BlankString(t *testing.T) {
	assert.NoError(t, Struct(&titled{Title: " Emma "}))

	for _, title := range []string{"", "   ", "\t\n"} {
		err := Struct(&titled{Title: title})
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr), "title %q", title)
		assert.Equal(t, []string{"title: is required"}, verr.Fields)
	}
}
