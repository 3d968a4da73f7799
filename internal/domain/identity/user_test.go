package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	entityID := uuid.New()

	t.Run("valid user", func(t *testing.T) {
		user, err := NewUser(entityID, "john.doe", "password123", RoleEntityUser)
		require.NoError(t, err)
		assert.Equal(t, "john.doe", user.Username)
		assert.Equal(t, entityID, user.EntityID)
		assert.Equal(t, RoleEntityUser, user.Role)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "password123", user.PasswordHash)
	})

	t.Run("username is normalised to lowercase", func(t *testing.T) {
		user, err := NewUser(entityID, "  John.Doe  ", "password123", RoleEntityUser)
		require.NoError(t, err)
		assert.Equal(t, "john.doe", user.Username)
	})

	t.Run("empty username", func(t *testing.T) {
		_, err := NewUser(entityID, "", "password123", RoleEntityUser)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("short password", func(t *testing.T) {
		_, err := NewUser(entityID, "john", "pw1", RoleEntityUser)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("password without number", func(t *testing.T) {
		_, err := NewUser(entityID, "john", "passwordonly", RoleEntityUser)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := NewUser(entityID, "john", "password123", Role("SUPERUSER"))
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})
}

func TestUserVerifyPassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "john", "password123", RoleEntityAdmin)
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("password123"))
	assert.False(t, user.VerifyPassword("wrongpassword1"))
}

func TestUserLifecycle(t *testing.T) {
	user, err := NewUser(uuid.New(), "john", "password123", RoleEntityUser)
	require.NoError(t, err)

	require.NoError(t, err)
	assert.True(t, user.CanLogin())

	err = user.Deactivate()
	require.NoError(t, err)
	assert.False(t, user.CanLogin())

	err = user.Deactivate()
	assert.Error(t, err)

	err = user.Activate()
	require.NoError(t, err)
	assert.True(t, user.CanLogin())
}

func TestUserAssignRole(t *testing.T) {
	user, err := NewUser(uuid.New(), "john", "password123", RoleEntityUser)
	require.NoError(t, err)

	err = user.AssignRole(RoleEntityAdmin)
	require.NoError(t, err)
	assert.Equal(t, RoleEntityAdmin, user.Role)

	err = user.AssignRole(Role("NOPE"))
	assert.True(t, shared.IsCode(err, shared.CodeValidation))
	assert.Equal(t, RoleEntityAdmin, user.Role)
}

func TestUserPrincipalFor(t *testing.T) {
	entityID := uuid.New()
	accountID := uuid.New()
	user, err := NewUser(entityID, "john", "password123", RoleAccountAdmin)
	require.NoError(t, err)

	p := user.PrincipalFor(&accountID)
	assert.Equal(t, user.ID, p.ID)
	assert.Equal(t, entityID, p.EntityID)
	require.NotNil(t, p.AccountID)
	assert.Equal(t, accountID, *p.AccountID)
	assert.Equal(t, RoleAccountAdmin, p.Role)

	p = user.PrincipalFor(nil)
	assert.Nil(t, p.AccountID)
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"PLATFORM_ADMIN", RolePlatformAdmin, false},
		{"account_admin", RoleAccountAdmin, false},
		{"  Entity_Admin ", RoleEntityAdmin, false},
		{"ENTITY_USER", RoleEntityUser, false},
		{"SUPERUSER", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestRoleIsAdmin(t *testing.T) {
	assert.True(t, RolePlatformAdmin.IsAdmin())
	assert.True(t, RoleAccountAdmin.IsAdmin())
	assert.True(t, RoleEntityAdmin.IsAdmin())
	assert.False(t, RoleEntityUser.IsAdmin())
}
