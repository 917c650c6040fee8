package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	t.Run("should lower-case and trim", func(t *testing.T) {
		assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
	})

	t.Run("should leave a normalized address untouched", func(t *testing.T) {
		assert.Equal(t, "ada@example.com", NormalizeEmail("ada@example.com"))
	})
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("persistence error unwraps to its cause", func(t *testing.T) {
		err := &PersistenceError{Op: "users.create", Err: ErrEmailTaken}

		assert.True(t, errors.Is(err, ErrEmailTaken))
		assert.Contains(t, err.Error(), "users.create")
	})

	t.Run("hashing error unwraps to its cause", func(t *testing.T) {
		cause := errors.New("password length exceeds 72 bytes")
		err := &HashingError{Err: cause}

		assert.True(t, errors.Is(err, cause))

		var hashErr *HashingError
		assert.True(t, errors.As(err, &hashErr))
	})

	t.Run("not found is distinguishable from persistence failures", func(t *testing.T) {
		assert.False(t, errors.Is(ErrNotFound, ErrEmailTaken))

		var persistErr *PersistenceError
		assert.False(t, errors.As(ErrNotFound, &persistErr))
	})
}
