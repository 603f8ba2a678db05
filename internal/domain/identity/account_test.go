package identity

import (
	"errors"
	"testing"

	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	t.Run("hashes password", func(t *testing.T) {
		account, err := NewAccount(" admin ", "secret123", "Manager")

		require.NoError(t, err)
		assert.Equal(t, "admin", account.ID)
		assert.Equal(t, "Manager", account.Name)
		assert.NotEqual(t, "secret123", account.PasswordHash)
		assert.True(t, account.IsHashed())
		assert.True(t, account.VerifyPassword("secret123"))
		assert.False(t, account.VerifyPassword("wrong"))
	})

	t.Run("requires id", func(t *testing.T) {
		_, err := NewAccount("  ", "secret123", "")
		assert.True(t, errors.Is(err, shared.ErrInvalidArgument))
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewAccount("admin", "abc", "")
		assert.True(t, errors.Is(err, shared.ErrInvalidArgument))
	})
}

func TestAccount_VerifyPassword_Legacy(t *testing.T) {
	account := &Account{ID: "old", PasswordHash: "plain-pass"}

	assert.False(t, account.IsHashed())
	assert.True(t, account.VerifyPassword("plain-pass"))
	assert.False(t, account.VerifyPassword("plain-pas"))
}

func TestMenu_IsTopLevel(t *testing.T) {
	parent := 10
	assert.True(t, (&Menu{MenuCode: 10}).IsTopLevel())
	assert.False(t, (&Menu{MenuCode: 11, ParentCode: &parent}).IsTopLevel())
}
