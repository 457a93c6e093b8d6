package models

// Role is the fixed set of tenant user roles
type Role string

const (
	RoleBankAdmin        Role = "bank_admin"
	RoleBranchManager    Role = "branch_manager"
	RoleSeniorAppraiser  Role = "senior_appraiser"
	RoleGoldAppraiser    Role = "gold_appraiser"
	RoleTraineeAppraiser Role = "trainee_appraiser"
	RoleAuditor          Role = "auditor"
	RoleViewer           Role = "viewer"
)

// Roles lists every valid role
var Roles = []Role{
	RoleBankAdmin,
	RoleBranchManager,
	RoleSeniorAppraiser,
	RoleGoldAppraiser,
	RoleTraineeAppraiser,
	RoleAuditor,
	RoleViewer,
}

// Valid reports whether r is one of the defined roles
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Permissions is the effective capability set for a user
type Permissions struct {
	CanCreateSessions    bool `json:"can_create_sessions"`
	CanEditSessions      bool `json:"can_edit_sessions"`
	CanDeleteSessions    bool `json:"can_delete_sessions"`
	CanViewReports       bool `json:"can_view_reports"`
	CanManageUsers       bool `json:"can_manage_users"`
	CanManageSettings    bool `json:"can_manage_settings"`
	CanApproveAppraisals bool `json:"can_approve_appraisals"`
	CanExportData        bool `json:"can_export_data"`
}

// PermissionOverrides carries optional per-user capability overrides. A nil
// field falls back to the role default.
type PermissionOverrides struct {
	CanCreateSessions    *bool `json:"can_create_sessions,omitempty"`
	CanEditSessions      *bool `json:"can_edit_sessions,omitempty"`
	CanDeleteSessions    *bool `json:"can_delete_sessions,omitempty"`
	CanViewReports       *bool `json:"can_view_reports,omitempty"`
	CanManageUsers       *bool `json:"can_manage_users,omitempty"`
	CanManageSettings    *bool `json:"can_manage_settings,omitempty"`
	CanApproveAppraisals *bool `json:"can_approve_appraisals,omitempty"`
	CanExportData        *bool `json:"can_export_data,omitempty"`
}

// roleDefaults maps each role to its default capability set
var roleDefaults = map[Role]Permissions{
	RoleBankAdmin: {
		CanCreateSessions:    true,
		CanEditSessions:      true,
		CanDeleteSessions:    true,
		CanViewReports:       true,
		CanManageUsers:       true,
		CanManageSettings:    true,
		CanApproveAppraisals: true,
		CanExportData:        true,
	},
	RoleBranchManager: {
		CanCreateSessions:    true,
		CanEditSessions:      true,
		CanDeleteSessions:    true,
		CanViewReports:       true,
		CanManageUsers:       true,
		CanApproveAppraisals: true,
		CanExportData:        true,
	},
	RoleSeniorAppraiser: {
		CanCreateSessions:    true,
		CanEditSessions:      true,
		CanViewReports:       true,
		CanApproveAppraisals: true,
	},
	RoleGoldAppraiser: {
		CanCreateSessions: true,
		CanEditSessions:   true,
		CanViewReports:    true,
	},
	RoleTraineeAppraiser: {
		CanCreateSessions: true,
		CanViewReports:    true,
	},
	RoleAuditor: {
		CanViewReports: true,
		CanExportData:  true,
	},
	RoleViewer: {
		CanViewReports: true,
	},
}

// DefaultPermissions returns the default capability set for a role. Unknown
// roles get the empty (default-deny) set.
func DefaultPermissions(role Role) Permissions {
	return roleDefaults[role]
}

// DerivePermissions computes the effective capability set for a role with
// optional per-user overrides. Pure: identical inputs always yield identical
// outputs.
func DerivePermissions(role Role, overrides *PermissionOverrides) Permissions {
	perms := roleDefaults[role]
	if overrides == nil {
		return perms
	}
	apply := func(target *bool, override *bool) {
		if override != nil {
			*target = *override
		}
	}
	apply(&perms.CanCreateSessions, overrides.CanCreateSessions)
	apply(&perms.CanEditSessions, overrides.CanEditSessions)
	apply(&perms.CanDeleteSessions, overrides.CanDeleteSessions)
	apply(&perms.CanViewReports, overrides.CanViewReports)
	apply(&perms.CanManageUsers, overrides.CanManageUsers)
	apply(&perms.CanManageSettings, overrides.CanManageSettings)
	apply(&perms.CanApproveAppraisals, overrides.CanApproveAppraisals)
	apply(&perms.CanExportData, overrides.CanExportData)
	return perms
}
