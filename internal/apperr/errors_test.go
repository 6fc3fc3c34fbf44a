package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByKind(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", ErrUnknownEmail)

	assert.True(t, errors.Is(wrapped, ErrUserNotFound))
	assert.False(t, errors.Is(wrapped, ErrWrongPassword))
	assert.False(t, errors.Is(ErrWrongPassword, ErrUserNotFound))
}

func TestStatuses(t *testing.T) {
	cases := map[*Error]int{
		ErrMissingCredential: http.StatusUnauthorized,
		ErrInvalidCredential: http.StatusUnauthorized,
		ErrDuplicateEmail:    http.StatusBadRequest,
		ErrWrongPassword:     http.StatusBadRequest,
		ErrUnknownEmail:      http.StatusBadRequest,
		ErrUserNotFound:      http.StatusNotFound,
	}
	for e, want := range cases {
		assert.Equal(t, want, e.Status(), e.Message())
	}
}

func TestAsAndWithMessage(t *testing.T) {
	err := fmt.Errorf("decode: %w", ErrInvalidInput.WithMessage("email: cannot be blank."))

	e, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, "email: cannot be blank.", e.Message())
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, ok = As(errors.New("boom"))
	assert.False(t, ok)
}
