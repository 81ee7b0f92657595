package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, value := range []string{"hr", "manager", "employee"} {
		role, err := ParseRole(value)
		require.NoError(t, err)
		assert.Equal(t, Role(value), role)
	}

	_, err := ParseRole("admin")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestParseRegisterRoleMapsAdminToHR(t *testing.T) {
	role, err := ParseRegisterRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleHR, role)

	role, err = ParseRegisterRole("employee")
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, role)

	_, err = ParseRegisterRole("superuser")
	assert.Error(t, err)
}

func TestHomePath(t *testing.T) {
	assert.Equal(t, "/hr", RoleHR.HomePath())
	assert.Equal(t, "/manager", RoleManager.HomePath())
	assert.Equal(t, "/employee", RoleEmployee.HomePath())
}

func TestCanApproveLeave(t *testing.T) {
	assert.True(t, RoleHR.CanApproveLeave())
	assert.True(t, RoleManager.CanApproveLeave())
	assert.False(t, RoleEmployee.CanApproveLeave())
}
