package branchRoutes

import (
	branchControllers "goldloan/controllers/branch"
	"goldloan/middleware"
	"goldloan/models"
	branchValidators "goldloan/validators/branch"

	"github.com/gofiber/fiber/v2"
)

func SetupBranchRoutes(app *fiber.App) {
	branchGroup := app.Group("/api/branch")

	branchGroup.Get("/", branchControllers.ListBranches)
	branchGroup.Get("/bank/:bankId", branchControllers.ListBranchesByBank)
	branchGroup.Get("/:id", branchControllers.GetBranch)
	branchGroup.Post("/", branchValidators.CreateBranch(), middleware.JWTMiddleware,
		middleware.RequireCapability(func(p models.Permissions) bool { return p.CanManageSettings }),
		branchControllers.CreateBranch)
	branchGroup.Put("/:id", middleware.JWTMiddleware,
		middleware.RequireCapability(func(p models.Permissions) bool { return p.CanManageSettings }),
		branchControllers.UpdateBranch)
	branchGroup.Delete("/:id", middleware.JWTMiddleware,
		middleware.RequireCapability(func(p models.Permissions) bool { return p.CanManageSettings }),
		branchControllers.DeleteBranch)
}
