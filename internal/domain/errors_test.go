package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldErrorsWrapValidation(t *testing.T) {
	fieldErrs := []error{
		ErrEmptyUserID,
		ErrEmptyUserName,
		ErrEmptyEmail,
		ErrEmptyHashedPassword,
		ErrEmptyBlogID,
		ErrEmptyBlogTitle,
		ErrEmptyBlogBody,
		ErrEmptyBlogAuthorID,
	}

	for _, err := range fieldErrs {
		assert.ErrorIs(t, err, ErrValidation)
	}
}
