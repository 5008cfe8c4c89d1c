package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	r, ok = ParseRole("User")
	assert.True(t, ok)
	assert.Equal(t, RoleUser, r)

	_, ok = ParseRole("owner")
	assert.False(t, ok)
}

func TestAuthorize(t *testing.T) {
	assert.True(t, Authorize(RoleAdmin, PermManageUsers))
	assert.True(t, Authorize(RoleUser, PermManageCatalog))
	assert.True(t, Authorize(RoleUser, PermViewUsers))
	assert.False(t, Authorize(RoleUser, PermManageUsers))
	assert.False(t, Authorize(Role(""), PermViewDashboard))
}

func TestPermissions(t *testing.T) {
	assert.Len(t, Permissions(RoleAdmin), len(allPermissions))
	assert.NotContains(t, Permissions(RoleUser), PermManageUsers)
	assert.Empty(t, Permissions(Role("guest")))
}
