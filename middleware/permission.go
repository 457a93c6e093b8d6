package middleware

import (
	"goldloan/models"

	"github.com/gofiber/fiber/v2"
)

// adminRolePermissions maps the admin login roles carried in JWTs to their
// capability sets. These are accounts from the admin tables (plus the
// env-credential super admin), not tenant users, so they do not go through
// the tenant role table.
var adminRolePermissions = map[string]models.Permissions{
	"super_admin": {
		CanCreateSessions:    true,
		CanEditSessions:      true,
		CanDeleteSessions:    true,
		CanViewReports:       true,
		CanManageUsers:       true,
		CanManageSettings:    true,
		CanApproveAppraisals: true,
		CanExportData:        true,
	},
	"bank_admin": models.DefaultPermissions(models.RoleBankAdmin),
	// Branch admins run their branch: users yes, tenant settings no.
	"branch_admin": models.DefaultPermissions(models.RoleBranchManager),
}

// permissionsForRole resolves a JWT role to its capability set: admin login
// roles first, then the tenant role table. Unknown roles deny everything.
func permissionsForRole(role string) models.Permissions {
	if perms, ok := adminRolePermissions[role]; ok {
		return perms
	}
	return models.DefaultPermissions(models.Role(role))
}

// RequireCapability returns a middleware that checks whether the capability
// selected from the caller's role-derived permission set is granted. The role
// comes from the JWT claims set by JWTMiddleware, so this must run after it.
func RequireCapability(capability func(models.Permissions) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Unauthorized: role not found",
				"data":    nil,
			})
		}

		perms := permissionsForRole(role)
		if !capability(perms) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  false,
				"message": "You do not have permission to access this resource!",
				"data":    nil,
			})
		}

		return c.Next()
	}
}
