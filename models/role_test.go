package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryRoleHasDefaults(t *testing.T) {
	for _, role := range Roles {
		assert.True(t, role.Valid())
		perms := DefaultPermissions(role)
		assert.True(t, perms.CanViewReports, "every role can at least view reports: %s", role)
	}
}

func TestUnknownRoleDeniesEverything(t *testing.T) {
	perms := DefaultPermissions(Role("intern"))
	assert.Equal(t, Permissions{}, perms)
	assert.False(t, Role("intern").Valid())
}

func TestDerivePermissionsIsPure(t *testing.T) {
	yes := true
	overrides := &PermissionOverrides{CanManageUsers: &yes}

	first := DerivePermissions(RoleGoldAppraiser, overrides)
	second := DerivePermissions(RoleGoldAppraiser, overrides)
	assert.Equal(t, first, second)

	// Deriving with overrides must not mutate the role defaults
	assert.False(t, DefaultPermissions(RoleGoldAppraiser).CanManageUsers)
}

func TestDerivePermissionsOverrides(t *testing.T) {
	yes, no := true, false

	perms := DerivePermissions(RoleTraineeAppraiser, &PermissionOverrides{
		CanEditSessions:   &yes,
		CanCreateSessions: &no,
	})
	assert.True(t, perms.CanEditSessions, "grant override wins")
	assert.False(t, perms.CanCreateSessions, "revoke override wins")
	assert.True(t, perms.CanViewReports, "untouched fields keep the role default")

	assert.Equal(t, DefaultPermissions(RoleViewer), DerivePermissions(RoleViewer, nil))
	assert.Equal(t, DefaultPermissions(RoleViewer), DerivePermissions(RoleViewer, &PermissionOverrides{}))
}

func TestRoleSeparation(t *testing.T) {
	assert.True(t, DefaultPermissions(RoleBankAdmin).CanManageSettings)
	assert.False(t, DefaultPermissions(RoleBranchManager).CanManageSettings)
	assert.True(t, DefaultPermissions(RoleBranchManager).CanManageUsers)
	assert.True(t, DefaultPermissions(RoleSeniorAppraiser).CanApproveAppraisals)
	assert.False(t, DefaultPermissions(RoleGoldAppraiser).CanApproveAppraisals)
	assert.False(t, DefaultPermissions(RoleTraineeAppraiser).CanEditSessions)
	assert.True(t, DefaultPermissions(RoleAuditor).CanExportData)
	assert.False(t, DefaultPermissions(RoleViewer).CanCreateSessions)
}
