package tenantRoutes

import (
	tenantControllers "goldloan/controllers/tenant"
	"goldloan/middleware"
	"goldloan/models"
	tenantValidators "goldloan/validators/tenant"

	"github.com/gofiber/fiber/v2"
)

func SetupTenantRoutes(app *fiber.App) {
	tenantGroup := app.Group("/api/tenant")

	tenantGroup.Get("/banks/:bankId/users", tenantControllers.ListUsersByBank)
	tenantGroup.Get("/branches/:branchId/users", tenantControllers.ListUsersByBranch)
	tenantGroup.Post("/users", tenantValidators.CreateUser(), middleware.JWTMiddleware,
		middleware.RequireCapability(func(p models.Permissions) bool { return p.CanManageUsers }),
		tenantControllers.CreateUser)
	tenantGroup.Get("/resolve-context", tenantControllers.ResolveContext)
	tenantGroup.Get("/hierarchy", tenantControllers.Hierarchy)
}
