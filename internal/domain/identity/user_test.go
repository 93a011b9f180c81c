package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPortalUser(t *testing.T) *User {
	user, err := NewUser("amina.berrada", "amina@example.com", "s3cret-pass", RoleTeacher)
	require.NoError(t, err)
	return user
}

func TestNewUser(t *testing.T) {
	t.Run("creates active user", func(t *testing.T) {
		user := newPortalUser(t)

		assert.Equal(t, "amina.berrada", user.Username)
		assert.True(t, user.IsActive)
		assert.Nil(t, user.LastLoginAt)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.CheckPassword("s3cret-pass"))
	})

	t.Run("normalizes username", func(t *testing.T) {
		user, err := NewUser("  Amina.Berrada  ", "amina@example.com", "s3cret-pass", RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, "amina.berrada", user.Username)
	})

	t.Run("rejects empty username and email", func(t *testing.T) {
		_, err := NewUser("   ", "a@example.com", "s3cret-pass", RoleAdmin)
		require.Error(t, err)

		_, err = NewUser("amina", "", "s3cret-pass", RoleAdmin)
		require.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("amina", "a@example.com", "short", RoleAdmin)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("rejects missing or unknown roles", func(t *testing.T) {
		_, err := NewUser("amina", "a@example.com", "s3cret-pass")
		require.Error(t, err)

		_, err = NewUser("amina", "a@example.com", "s3cret-pass", Role("SUPERUSER"))
		require.Error(t, err)
	})
}

func TestUser_Password(t *testing.T) {
	t.Run("check rejects wrong password", func(t *testing.T) {
		user := newPortalUser(t)
		assert.False(t, user.CheckPassword("wrong-pass"))
	})

	t.Run("change verifies the current password", func(t *testing.T) {
		user := newPortalUser(t)

		err := user.ChangePassword("wrong-pass", "brand-new-pass")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "incorrect")

		require.NoError(t, user.ChangePassword("s3cret-pass", "brand-new-pass"))
		assert.True(t, user.CheckPassword("brand-new-pass"))
		assert.False(t, user.CheckPassword("s3cret-pass"))
	})

	t.Run("change rejects weak replacement", func(t *testing.T) {
		user := newPortalUser(t)
		require.Error(t, user.ChangePassword("s3cret-pass", "short"))
	})
}

func TestUser_Roles(t *testing.T) {
	user, err := NewUser("staff", "staff@example.com", "s3cret-pass", RoleHRManager, RoleAccountant)
	require.NoError(t, err)

	assert.True(t, user.HasRole(RoleHRManager))
	assert.False(t, user.HasRole(RoleNurse))
	assert.Equal(t, []string{"HR_MANAGER", "ACCOUNTANT"}, user.RoleStrings())
}

func TestUser_Lifecycle(t *testing.T) {
	user := newPortalUser(t)

	user.RecordLogin()
	require.NotNil(t, user.LastLoginAt)

	user.Deactivate()
	assert.False(t, user.IsActive)
}
