package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circleshare/service-sharing/internal/domain"
)

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("", "alice@example.com")
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = NewUser("Alice", "")
	require.ErrorAs(t, err, &validation)

	_, err = NewUser("Alice", "not-an-email")
	require.ErrorAs(t, err, &validation)

	u, err := NewUser("Alice", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name())
	assert.Equal(t, "alice@example.com", u.Email())
}

func TestUserUpdate_PartialFields(t *testing.T) {
	u, err := NewUser("Alice", "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, u.Update("Alicia", ""))
	assert.Equal(t, "Alicia", u.Name())
	assert.Equal(t, "alice@example.com", u.Email())

	require.NoError(t, u.Update("", "alicia@example.com"))
	assert.Equal(t, "Alicia", u.Name())
	assert.Equal(t, "alicia@example.com", u.Email())

	err = u.Update("", "malformed")
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "alicia@example.com", u.Email())
}
