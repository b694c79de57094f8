package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleList_HasAnyIntersection(t *testing.T) {
	roles := RoleList{RoleSeller, RoleAdmin}

	assert.True(t, roles.HasAny(RoleAdmin))
	assert.True(t, roles.HasAny(RoleSuperAdmin, RoleSeller))
	assert.False(t, roles.HasAny(RoleSuperAdmin))
	assert.False(t, RoleList{}.HasAny(RoleSeller))
}

func TestRoleList_AddIsSetLike(t *testing.T) {
	roles := RoleList{RoleSeller}
	roles = roles.Add(RoleAdmin)
	roles = roles.Add(RoleAdmin)
	assert.Equal(t, RoleList{RoleSeller, RoleAdmin}, roles)
}

func TestRoleList_Remove(t *testing.T) {
	roles := RoleList{RoleSeller, RoleAdmin, RoleSuperAdmin}
	roles = roles.Remove(RoleAdmin)
	assert.Equal(t, RoleList{RoleSeller, RoleSuperAdmin}, roles)

	// removing an absent role is a no-op
	assert.Equal(t, roles, roles.Remove(RoleAdmin))
}

func TestRoleList_StringsRoundTrip(t *testing.T) {
	roles := RoleList{RoleSeller, RoleAdmin}
	assert.Equal(t, []string{"SELLER", "ADMIN"}, roles.Strings())
	assert.Equal(t, roles, RolesFromStrings(roles.Strings()))
}
