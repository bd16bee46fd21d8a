package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/crewboard/core/internal/domain/entities"
)

func TestUniqueViolationMapping(t *testing.T) {
	emailErr := &pq.Error{Code: "23505", Constraint: "users_email_key"}
	usernameErr := &pq.Error{Code: "23505", Constraint: "users_username_key"}

	assert.ErrorIs(t, uniqueViolation(emailErr), entities.ErrEmailTaken)
	assert.ErrorIs(t, uniqueViolation(usernameErr), entities.ErrUsernameTaken)

	t.Run("wrapped errors unwrap", func(t *testing.T) {
		wrapped := fmt.Errorf("insert user: %w", emailErr)
		assert.ErrorIs(t, uniqueViolation(wrapped), entities.ErrEmailTaken)
	})

	t.Run("other pq errors pass through", func(t *testing.T) {
		fkErr := &pq.Error{Code: "23503", Constraint: "projects_owner_id_fkey"}
		assert.Nil(t, uniqueViolation(fkErr))
	})

	t.Run("non-pq errors pass through", func(t *testing.T) {
		assert.Nil(t, uniqueViolation(errors.New("connection reset")))
	})
}
